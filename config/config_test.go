package config

import (
	"testing"
	"time"
)

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without SESSION_SECRET")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", " S3 ")
	t.Setenv("S3_BUCKET", "attachments")
	t.Setenv("MAX_ATTACHMENTS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppPort != "9090" {
		t.Errorf("AppPort = %q", cfg.AppPort)
	}
	if cfg.StorageDriver != "s3" {
		t.Errorf("StorageDriver = %q, want s3", cfg.StorageDriver)
	}
	if cfg.S3Bucket != "attachments" {
		t.Errorf("S3Bucket = %q", cfg.S3Bucket)
	}
	if cfg.MaxAttachments != 3 {
		t.Errorf("MaxAttachments = %d", cfg.MaxAttachments)
	}
	if cfg.SessionCacheTTL != 10*time.Minute {
		t.Errorf("SessionCacheTTL = %v", cfg.SessionCacheTTL)
	}
	if cfg.IsProduction() {
		t.Error("default env should not be production")
	}
}

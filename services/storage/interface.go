package storage

import (
	"context"
	"fmt"
	"io"
)

// BlobStore persists attachment bytes and returns a URL clients can fetch them from.
type BlobStore interface {
	Put(ctx context.Context, name string, body io.Reader, contentType string) (string, error)
}

// Config selects and configures a BlobStore driver.
type Config struct {
	Driver string
	Folder string

	LocalPath    string
	LocalBaseURL string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	GCSBucket          string
	GCSCredentialsFile string
}

// New builds the BlobStore named by cfg.Driver.
func New(ctx context.Context, cfg Config) (BlobStore, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.LocalPath, cfg.LocalBaseURL, cfg.Folder)
	case "cloudinary":
		return NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.Folder)
	case "s3":
		return NewS3Store(ctx, cfg)
	case "gcs":
		return NewGCSStore(ctx, cfg.GCSCredentialsFile, cfg.GCSBucket, cfg.Folder)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Session tokens are issued by the external auth service and signed with this secret.
	SessionSecret   string        `mapstructure:"SESSION_SECRET"`
	SessionCacheTTL time.Duration `mapstructure:"SESSION_CACHE_TTL"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`
	QueueEnabled  bool   `mapstructure:"QUEUE_ENABLED"`

	// Attachment storage. STORAGE_DRIVER is one of "local", "cloudinary", "s3", "gcs".
	StorageDriver       string `mapstructure:"STORAGE_DRIVER"`
	StorageFolder       string `mapstructure:"STORAGE_FOLDER"`
	LocalStoragePath    string `mapstructure:"LOCAL_STORAGE_PATH"`
	LocalStorageBaseURL string `mapstructure:"LOCAL_STORAGE_BASE_URL"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	S3Endpoint          string `mapstructure:"S3_ENDPOINT"`
	S3Region            string `mapstructure:"S3_REGION"`
	S3Bucket            string `mapstructure:"S3_BUCKET"`
	S3AccessKey         string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey         string `mapstructure:"S3_SECRET_KEY"`
	GCSBucket           string `mapstructure:"GCS_BUCKET"`
	MaxAttachmentBytes  int64  `mapstructure:"MAX_ATTACHMENT_BYTES"`
	MaxAttachments      int    `mapstructure:"MAX_ATTACHMENTS"`

	// Path to a Firebase service account JSON. Push notifications are disabled when empty.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

// Load reads .env, config.yaml and the environment, in increasing precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	v := viper.New()
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	// Set default values.
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "service_marketplace")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_CACHE_TTL", 10*time.Minute)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 3)
	v.SetDefault("QUEUE_ENABLED", true)
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_FOLDER", "booking-attachments")
	v.SetDefault("LOCAL_STORAGE_PATH", "./uploads")
	v.SetDefault("LOCAL_STORAGE_BASE_URL", "/uploads")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("GCS_BUCKET", "")
	v.SetDefault("MAX_ATTACHMENT_BYTES", 10<<20)
	v.SetDefault("MAX_ATTACHMENTS", 5)
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET must be set")
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

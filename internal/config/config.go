// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// Storage drivers understood by storage.New.
const (
	DriverMinio  = "minio"
	DriverS3     = "s3"
	DriverMemory = "memory"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	// Object storage. The minio driver talks to any S3-compatible endpoint,
	// the s3 driver goes through the AWS SDK and its default credential chain.
	StorageDriver     string
	StorageEndpoint   string
	StorageAccessKey  string
	StorageSecretKey  string
	StorageBucket     string
	StorageRegion     string
	StorageUseSSL     bool
	StoragePublicBase string // browser-accessible base URL, e.g. "http://localhost:9000/qr-codes"

	// QRSize is the edge length of rendered PNGs in pixels.
	QRSize int
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	driver := getEnv("STORAGE_DRIVER", DriverMinio)
	bucket := getEnv("STORAGE_BUCKET", getEnv("S3_BUCKET_NAME", "qr-codes"))

	publicBaseDefault := ""
	if driver == DriverMinio {
		publicBaseDefault = "http://localhost:9000/" + bucket
	}

	endpointDefault := "localhost:9000"
	if driver != DriverMinio {
		endpointDefault = ""
	}

	accessDefault, secretDefault := "minioadmin", "minioadmin"
	if driver != DriverMinio {
		accessDefault, secretDefault = "", ""
	}

	return &Config{
		Port:     getEnv("PORT", "3000"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StorageDriver:     driver,
		StorageEndpoint:   getEnv("STORAGE_ENDPOINT", endpointDefault),
		StorageAccessKey:  getEnv("STORAGE_ACCESS_KEY", getEnv("AWS_ACCESS_KEY_ID", accessDefault)),
		StorageSecretKey:  getEnv("STORAGE_SECRET_KEY", getEnv("AWS_SECRET_ACCESS_KEY", secretDefault)),
		StorageBucket:     bucket,
		StorageRegion:     getEnv("STORAGE_REGION", getEnv("AWS_REGION", "us-east-1")),
		StorageUseSSL:     getEnv("STORAGE_USE_SSL", "false") == "true",
		StoragePublicBase: getEnv("STORAGE_PUBLIC_BASE", publicBaseDefault),

		QRSize: getEnvInt("QR_SIZE", 256),
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var err error
	switch c.StorageDriver {
	case DriverMinio:
		if c.StorageEndpoint == "" {
			err = multierr.Append(err, fmt.Errorf("STORAGE_ENDPOINT is required for the %s driver", DriverMinio))
		}
	case DriverS3, DriverMemory:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}
	if c.StorageBucket == "" {
		err = multierr.Append(err, fmt.Errorf("STORAGE_BUCKET is required"))
	}
	if p, perr := strconv.Atoi(c.Port); perr != nil || p <= 0 || p > 65535 {
		err = multierr.Append(err, fmt.Errorf("invalid PORT %q", c.Port))
	}
	if c.QRSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("QR_SIZE must be positive, got %d", c.QRSize))
	}
	return err
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// Validate rejects it.
		return -1
	}
	return n
}

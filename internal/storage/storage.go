// Package storage defines the interface for object storage operations.
// Swap implementations by changing STORAGE_DRIVER: the MinIO implementation
// works with any S3-compatible provider, the S3 implementation goes through
// the AWS SDK, and the memory implementation keeps objects in process.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/qrcodeapi/service/internal/config"
)

// ErrUnknownDriver is returned by New for an unsupported STORAGE_DRIVER.
var ErrUnknownDriver = errors.New("unknown storage driver")

// ErrNotFound is returned when an object does not exist.
var ErrNotFound = errors.New("object not found")

// Storage is the interface for uploading and addressing objects.
type Storage interface {
	// Upload streams data to the store under the given key. Objects are
	// written publicly readable and replace any existing object at key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}

// New builds the Storage selected by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverMinio:
		store, err := NewMinioStorage(ctx, logger,
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageRegion,
			cfg.StorageBucket,
			cfg.StoragePublicBase,
			cfg.StorageUseSSL,
		)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverS3:
		store, err := NewS3Storage(S3Options{
			Region:     cfg.StorageRegion,
			Endpoint:   cfg.StorageEndpoint,
			AccessKey:  cfg.StorageAccessKey,
			SecretKey:  cfg.StorageSecretKey,
			Bucket:     cfg.StorageBucket,
			PublicBase: cfg.StoragePublicBase,
			UseSSL:     cfg.StorageUseSSL,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverMemory:
		logger.Warn("using in-memory storage, objects are lost on restart")
		return NewMemoryStorage(cfg.StoragePublicBase), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StorageDriver)
	}
}

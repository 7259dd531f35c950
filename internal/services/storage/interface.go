package storage

import (
	"context"
	"io"
)

// StorageInterface defines the common interface for storage backends
type StorageInterface interface {
	BucketName() string
	UploadWithMetadata(ctx context.Context, key string, data io.Reader, size int64, contentType string, metadata map[string]string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}

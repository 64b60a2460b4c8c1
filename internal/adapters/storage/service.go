// Package storage provides a domain-agnostic interface for
// S3-compatible object storage.
package storage

import "context"

// ObjectStorage defines the operations the application needs from an
// object store. Implementations must accept zero-length content.
type ObjectStorage interface {
	// EnsureBucketExists creates the bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context, bucket string) error

	// Upload writes an object under the given key and returns when the
	// write is durable.
	Upload(ctx context.Context, bucket, key, contentType string, content []byte) error

	// Download reads an object's full content.
	Download(ctx context.Context, bucket, key string) ([]byte, error)

	// MaxFileSize returns the configured maximum object size in bytes.
	MaxFileSize() int64
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	IsMinIOEnabled() bool
}

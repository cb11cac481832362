package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Storage interface for object storage operations. Keys are slash-separated
// paths such as "index_uu/index.faiss".
type Storage interface {
	// Put stores an object under key
	Put(ctx context.Context, key string, data io.Reader) error

	// Open retrieves an object by key
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object by key
	Delete(ctx context.Context, key string) error
}

// ErrNotFound is returned by Open when the key does not exist
var ErrNotFound = errors.New("object not found")

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType `yaml:"type"`
	LocalPath    string      `yaml:"local_path"` // For local storage
	S3Bucket     string      `yaml:"s3_bucket"`  // For S3 storage
	S3Region     string      `yaml:"s3_region"`  // For S3 storage
	AWSAccessKey string      `yaml:"-"`
	AWSSecretKey string      `yaml:"-"`
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal, "":
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("s3 storage requires a bucket")
		}
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// ReadAll opens key and reads it fully
func ReadAll(ctx context.Context, s Storage, key string) ([]byte, error) {
	rc, err := s.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

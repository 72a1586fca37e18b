package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("stored object not found")

// Storage persists uploaded package images under relative paths.
type Storage interface {
	Save(ctx context.Context, path string, content io.Reader) error
	// Get returns ErrNotFound (wrapped) when nothing is stored at path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete is a no-op for missing paths.
	Delete(ctx context.Context, path string) error
}

package storage

import (
	"context"
	"io"
)

// Storage defines the interface for file storage operations. Paths are
// relative to the storage root.
type Storage interface {
	// Save writes the content under the given path, creating parent
	// directories as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the given path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at the given path. Deleting a missing
	// file is not an error.
	Delete(ctx context.Context, path string) error
}

package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage persists produced export files. The engine hands over a blob
// and a path; how the file ultimately reaches the user (download link,
// disk share, HTTP response) is the storage's concern.
type FileStorage interface {
	// Upload writes a file and returns the stored path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a stored file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a stored file
	Delete(ctx context.Context, path string) error

	// GetURL generates a public URL for a stored file
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists checks if a file exists
	Exists(ctx context.Context, path string) (bool, error)
}

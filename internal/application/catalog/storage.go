package catalog

import (
	"context"
	"io"
	"time"
)

// ObjectStorage is the blob store holding product images and deliverables
type ObjectStorage interface {
	// PresignDownload returns a time-limited GET URL for key
	PresignDownload(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
	// PresignUpload returns a time-limited PUT URL for key
	PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// Upload stores body under key
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}

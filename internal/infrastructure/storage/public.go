package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	catalogapp "github.com/ikpixels/marketplace/internal/application/catalog"
)

var _ catalogapp.ObjectStorage = (*PublicObjectStorage)(nil)

// PublicObjectStorage serves objects from a static public location, such as
// a CDN or the web server's media directory. It is used when S3 storage is
// disabled: download links are plain URLs and writes are not supported.
type PublicObjectStorage struct {
	baseURL string
}

// NewPublicObjectStorage creates storage rooted at baseURL
func NewPublicObjectStorage(baseURL string) *PublicObjectStorage {
	return &PublicObjectStorage{baseURL: strings.TrimRight(baseURL, "/")}
}

// PresignDownload joins key onto the base URL. The link never expires.
func (s *PublicObjectStorage) PresignDownload(_ context.Context, key string, _ time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, ErrEmptyKey
	}
	return s.baseURL + "/" + escapeKey(key), time.Time{}, nil
}

// PresignUpload is unsupported without S3
func (s *PublicObjectStorage) PresignUpload(context.Context, string, string, time.Duration) (string, time.Time, error) {
	return "", time.Time{}, ErrReadOnly
}

// Upload is unsupported without S3
func (s *PublicObjectStorage) Upload(context.Context, string, io.Reader, string) error {
	return ErrReadOnly
}

// Delete is a no-op; public assets are managed outside the application
func (s *PublicObjectStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}

func escapeKey(key string) string {
	parts := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

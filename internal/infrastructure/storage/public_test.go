package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicObjectStorage(t *testing.T) {
	ctx := context.Background()
	s := NewPublicObjectStorage("https://cdn.example.com/media/")

	u, expiresAt, err := s.PresignDownload(ctx, "products/images/my cover.png", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/media/products/images/my%20cover.png", u)
	assert.True(t, expiresAt.IsZero())

	_, _, err = s.PresignDownload(ctx, "", time.Minute)
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, _, err = s.PresignUpload(ctx, "k", "image/png", time.Minute)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.ErrorIs(t, s.Upload(ctx, "k", strings.NewReader("x"), ""), ErrReadOnly)

	assert.NoError(t, s.Delete(ctx, "k"))
}

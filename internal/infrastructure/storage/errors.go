package storage

import "github.com/ikpixels/marketplace/internal/domain/shared"

// ErrReadOnly is returned by storage that cannot accept writes
var ErrReadOnly = shared.InvalidState("object storage is not configured for uploads")

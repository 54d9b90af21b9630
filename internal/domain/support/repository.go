package support

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/shared"
)

// ContactFilter narrows the admin inbox
type ContactFilter struct {
	shared.Filter
	Handled *bool
}

// ContactRepository persists contact messages
type ContactRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ContactMessage, error)
	FindAll(ctx context.Context, filter ContactFilter) ([]ContactMessage, int64, error)
	Save(ctx context.Context, msg *ContactMessage) error
}

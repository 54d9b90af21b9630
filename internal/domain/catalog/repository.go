package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/shared"
)

// ProductFilter narrows marketplace listings
type ProductFilter struct {
	shared.Filter
	Category *Category
}

// ProductRepository persists products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	Save(ctx context.Context, product *Product) error
	// Delete fails with INVALID_STATE when order items still reference the product
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementViews bumps the view counter in storage without a read-modify-write
	IncrementViews(ctx context.Context, id uuid.UUID) error
	// IncrementSold adds qty to sold_count and sets booked
	IncrementSold(ctx context.Context, id uuid.UUID, qty int) error
}

// GalleryRepository persists gallery items
type GalleryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GalleryItem, error)
	// FindAll pages through every item, active or not
	FindAll(ctx context.Context, filter shared.Filter) ([]GalleryItem, int64, error)
	// ListActive returns up to limit active items, newest first unless
	// oldestFirst is set
	ListActive(ctx context.Context, limit int, oldestFirst bool) ([]GalleryItem, error)
	Save(ctx context.Context, item *GalleryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

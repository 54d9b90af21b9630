package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists orders together with their items
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByIDForUpdate loads the order holding a row lock until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)
	// GetOrCreatePending returns the client's single unpaid order, creating
	// it when none exists. Uniqueness is enforced by storage.
	GetOrCreatePending(ctx context.Context, clientID uuid.UUID) (*Order, error)
	FindPaidByClient(ctx context.Context, clientID uuid.UUID) ([]Order, error)
	// Save writes the order and replaces its items. A paid order is only
	// written if the stored row is still unpaid.
	Save(ctx context.Context, o *Order) error
}

package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/shared"
)

// AttemptRepository persists payment attempts
type AttemptRepository interface {
	FindByTxRef(ctx context.Context, txRef string) (*Attempt, error)
	// FindByTxRefForUpdate loads the attempt holding a row lock until the
	// surrounding transaction ends
	FindByTxRefForUpdate(ctx context.Context, txRef string) (*Attempt, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]Attempt, error)
	// Create inserts a new attempt; a duplicate tx_ref is ALREADY_EXISTS
	Create(ctx context.Context, attempt *Attempt) error
	// SettleIfPending writes status and raw response only while the stored
	// row is still pending. It reports whether the row was updated.
	SettleIfPending(ctx context.Context, attempt *Attempt) (bool, error)
	// UpdateRawResponse stores a payload on a still-pending attempt
	UpdateRawResponse(ctx context.Context, attempt *Attempt) error
}

// WithdrawalFilter narrows withdrawal listings
type WithdrawalFilter struct {
	shared.Filter
	ClientID *uuid.UUID
	Status   *WithdrawalStatus
}

// WithdrawalRepository persists withdrawal requests
type WithdrawalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Withdrawal, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Withdrawal, error)
	FindAll(ctx context.Context, filter WithdrawalFilter) ([]Withdrawal, int64, error)
	Save(ctx context.Context, w *Withdrawal) error
}

package identity

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository persists accounts
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Save fails with ALREADY_EXISTS on a duplicate username
	Save(ctx context.Context, account *Account) error
}

// ClientRepository persists clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*Client, error)
	// GetOrCreateByAccountID returns the account's client, creating it when
	// missing. Concurrent callers observe the same row.
	GetOrCreateByAccountID(ctx context.Context, accountID uuid.UUID) (*Client, error)
	Save(ctx context.Context, client *Client) error
}

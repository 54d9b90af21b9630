package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/identity"
)

// ClientService resolves the marketplace profile of an account
type ClientService struct {
	clients identity.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clients identity.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// EnsureClient returns the account's client, creating it on first use.
// Concurrent calls for one account return the same client.
func (s *ClientService) EnsureClient(ctx context.Context, accountID uuid.UUID) (*identity.Client, error) {
	return s.clients.GetOrCreateByAccountID(ctx, accountID)
}

// Save persists client changes
func (s *ClientService) Save(ctx context.Context, client *identity.Client) error {
	return s.clients.Save(ctx, client)
}

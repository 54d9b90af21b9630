package support

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/identity"
	"github.com/ikpixels/marketplace/internal/domain/support"
	"github.com/stretchr/testify/mock"
)

// MockContactRepository is a mock implementation of support.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*support.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*support.ContactMessage), args.Error(1)
}

func (m *MockContactRepository) FindAll(ctx context.Context, filter support.ContactFilter) ([]support.ContactMessage, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]support.ContactMessage), args.Get(1).(int64), args.Error(2)
}

func (m *MockContactRepository) Save(ctx context.Context, msg *support.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

// MockClientRepository is a mock implementation of identity.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Client), args.Error(1)
}

func (m *MockClientRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*identity.Client, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Client), args.Error(1)
}

func (m *MockClientRepository) GetOrCreateByAccountID(ctx context.Context, accountID uuid.UUID) (*identity.Client, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *identity.Client) error {
	return m.Called(ctx, client).Error(0)
}

var (
	_ support.ContactRepository = (*MockContactRepository)(nil)
	_ identity.ClientRepository = (*MockClientRepository)(nil)
)

package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/catalog"
	"github.com/ikpixels/marketplace/internal/domain/identity"
	"github.com/ikpixels/marketplace/internal/domain/order"
	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of identity.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) (*identity.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *identity.Account) error {
	return m.Called(ctx, account).Error(0)
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

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) IncrementSold(ctx context.Context, id uuid.UUID, qty int) error {
	return m.Called(ctx, id, qty).Error(0)
}

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrCreatePending(ctx context.Context, clientID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindPaidByClient(ctx context.Context, clientID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

// MockAttemptRepository is a mock implementation of payment.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) FindByTxRef(ctx context.Context, txRef string) (*payment.Attempt, error) {
	args := m.Called(ctx, txRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) FindByTxRefForUpdate(ctx context.Context, txRef string) (*payment.Attempt, error) {
	args := m.Called(ctx, txRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]payment.Attempt, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]payment.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *payment.Attempt) error {
	return m.Called(ctx, attempt).Error(0)
}

func (m *MockAttemptRepository) SettleIfPending(ctx context.Context, attempt *payment.Attempt) (bool, error) {
	args := m.Called(ctx, attempt)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) UpdateRawResponse(ctx context.Context, attempt *payment.Attempt) error {
	return m.Called(ctx, attempt).Error(0)
}

// MockWithdrawalRepository is a mock implementation of payment.WithdrawalRepository
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*payment.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) FindAll(ctx context.Context, filter payment.WithdrawalFilter) ([]payment.Withdrawal, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]payment.Withdrawal), args.Get(1).(int64), args.Error(2)
}

func (m *MockWithdrawalRepository) Save(ctx context.Context, w *payment.Withdrawal) error {
	return m.Called(ctx, w).Error(0)
}

// MockGateway is a mock implementation of payment.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) InitiateMobileCharge(ctx context.Context, req payment.MobileChargeRequest) (payment.ChargeResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.ChargeResult), args.Error(1)
}

func (m *MockGateway) InitiateCardCharge(ctx context.Context, req payment.CardChargeRequest) (payment.ChargeResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.ChargeResult), args.Error(1)
}

func (m *MockGateway) VerifyCharge(ctx context.Context, externalRef string, channel payment.Channel) payment.VerifyResult {
	args := m.Called(ctx, externalRef, channel)
	return args.Get(0).(payment.VerifyResult)
}

func (m *MockGateway) InitiatePayout(ctx context.Context, req payment.PayoutRequest) (payment.PayoutResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.PayoutResult), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

// fakeTxScope runs fn directly against the mocks, standing in for a
// database transaction
type fakeTxScope struct {
	orders      *MockOrderRepository
	attempts    *MockAttemptRepository
	products    *MockProductRepository
	withdrawals *MockWithdrawalRepository
}

func (s *fakeTxScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *fakeTxScope) Orders() order.Repository                  { return s.orders }
func (s *fakeTxScope) Attempts() payment.AttemptRepository       { return s.attempts }
func (s *fakeTxScope) Products() catalog.ProductRepository       { return s.products }
func (s *fakeTxScope) Withdrawals() payment.WithdrawalRepository { return s.withdrawals }

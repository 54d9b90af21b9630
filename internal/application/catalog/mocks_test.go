package catalog

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/catalog"
	"github.com/ikpixels/marketplace/internal/domain/identity"
	"github.com/ikpixels/marketplace/internal/domain/order"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

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

// MockGalleryRepository is a mock implementation of catalog.GalleryRepository
type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.GalleryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.GalleryItem, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.GalleryItem), args.Get(1).(int64), args.Error(2)
}

func (m *MockGalleryRepository) ListActive(ctx context.Context, limit int, oldestFirst bool) ([]catalog.GalleryItem, error) {
	args := m.Called(ctx, limit, oldestFirst)
	return args.Get(0).([]catalog.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) Save(ctx context.Context, item *catalog.GalleryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockGalleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
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

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) PresignDownload(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	return m.Called(ctx, key, body, contentType).Error(0)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

var (
	_ catalog.ProductRepository = (*MockProductRepository)(nil)
	_ catalog.GalleryRepository = (*MockGalleryRepository)(nil)
	_ identity.ClientRepository = (*MockClientRepository)(nil)
	_ order.Repository          = (*MockOrderRepository)(nil)
	_ ObjectStorage             = (*MockObjectStorage)(nil)
)

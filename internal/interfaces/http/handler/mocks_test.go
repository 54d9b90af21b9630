package handler

import (
	"context"

	"github.com/google/uuid"
	catalogapp "github.com/ikpixels/marketplace/internal/application/catalog"
	identityapp "github.com/ikpixels/marketplace/internal/application/identity"
	paymentapp "github.com/ikpixels/marketplace/internal/application/payment"
	supportapp "github.com/ikpixels/marketplace/internal/application/support"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/auth"
	"github.com/stretchr/testify/mock"
)

// MockCheckout implements CheckoutUseCases for testing
type MockCheckout struct {
	mock.Mock
}

func (m *MockCheckout) InitiateMobileCharge(ctx context.Context, in paymentapp.InitiateMobileInput) (*paymentapp.ChargeOutcome, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentapp.ChargeOutcome), args.Error(1)
}

func (m *MockCheckout) InitiateCardCharge(ctx context.Context, in paymentapp.InitiateCardInput) (*paymentapp.ChargeOutcome, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentapp.ChargeOutcome), args.Error(1)
}

func (m *MockCheckout) VerifyCharge(ctx context.Context, txRef string) (*paymentapp.VerifyOutcome, error) {
	args := m.Called(ctx, txRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentapp.VerifyOutcome), args.Error(1)
}

// MockCatalog implements CatalogUseCases for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListMarketplace(ctx context.Context, q catalogapp.MarketplaceQuery) (*catalogapp.MarketplacePage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.MarketplacePage), args.Error(1)
}

func (m *MockCatalog) GetProductDetail(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockCatalog) GetProduct(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockCatalog) CreateProduct(ctx context.Context, req catalogapp.ProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockCatalog) UpdateProduct(ctx context.Context, id uuid.UUID, req catalogapp.ProductRequest) (*catalogapp.ProductResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockCatalog) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalog) CreateUploadURL(ctx context.Context, req catalogapp.UploadURLRequest) (*catalogapp.UploadURLResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.UploadURLResponse), args.Error(1)
}

func (m *MockCatalog) ProductDownloadURL(ctx context.Context, accountID, productID uuid.UUID) (*catalogapp.DownloadResponse, error) {
	args := m.Called(ctx, accountID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.DownloadResponse), args.Error(1)
}

// MockWithdrawals implements WithdrawalUseCases for testing
type MockWithdrawals struct {
	mock.Mock
}

func (m *MockWithdrawals) RequestWithdrawal(ctx context.Context, accountID uuid.UUID, in paymentapp.RequestWithdrawalInput) (*paymentapp.WithdrawalResponse, error) {
	args := m.Called(ctx, accountID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentapp.WithdrawalResponse), args.Error(1)
}

func (m *MockWithdrawals) ListMyWithdrawals(ctx context.Context, accountID uuid.UUID, f paymentapp.WithdrawalListFilter) (*shared.Paginated[paymentapp.WithdrawalResponse], error) {
	args := m.Called(ctx, accountID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[paymentapp.WithdrawalResponse]), args.Error(1)
}

func (m *MockWithdrawals) ListWithdrawals(ctx context.Context, f paymentapp.WithdrawalListFilter) (*shared.Paginated[paymentapp.WithdrawalResponse], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[paymentapp.WithdrawalResponse]), args.Error(1)
}

func (m *MockWithdrawals) ProcessWithdrawal(ctx context.Context, id uuid.UUID, in paymentapp.ProcessWithdrawalInput) (*paymentapp.WithdrawalResponse, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentapp.WithdrawalResponse), args.Error(1)
}

func (m *MockWithdrawals) FailWithdrawal(ctx context.Context, id uuid.UUID, reason string) (*paymentapp.WithdrawalResponse, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentapp.WithdrawalResponse), args.Error(1)
}

// MockAuth implements AuthUseCases for testing
type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) Register(ctx context.Context, in identityapp.RegisterInput) (*identityapp.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.AuthResult), args.Error(1)
}

func (m *MockAuth) Login(ctx context.Context, in identityapp.LoginInput) (*identityapp.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.AuthResult), args.Error(1)
}

func (m *MockAuth) Refresh(ctx context.Context, in identityapp.RefreshInput) (*identityapp.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.AuthResult), args.Error(1)
}

func (m *MockAuth) Logout(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuth) Me(ctx context.Context, accountID uuid.UUID) (*identityapp.ProfileResponse, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.ProfileResponse), args.Error(1)
}

func (m *MockAuth) UpdateProfile(ctx context.Context, accountID uuid.UUID, in identityapp.UpdateProfileInput) (*identityapp.ProfileResponse, error) {
	args := m.Called(ctx, accountID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.ProfileResponse), args.Error(1)
}

var (
	_ CheckoutUseCases   = (*MockCheckout)(nil)
	_ CatalogUseCases    = (*MockCatalog)(nil)
	_ WithdrawalUseCases = (*MockWithdrawals)(nil)
	_ AuthUseCases       = (*MockAuth)(nil)
	_ GalleryUseCases    = (*MockGallery)(nil)
	_ ContactUseCases    = (*MockContact)(nil)
)

// MockGallery implements GalleryUseCases for testing
type MockGallery struct {
	mock.Mock
}

func (m *MockGallery) ListGallery(ctx context.Context) ([]catalogapp.GalleryItemResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalogapp.GalleryItemResponse), args.Error(1)
}

func (m *MockGallery) Home(ctx context.Context) (*catalogapp.HomeResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.HomeResponse), args.Error(1)
}

func (m *MockGallery) ListGalleryAdmin(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalogapp.GalleryItemResponse], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalogapp.GalleryItemResponse]), args.Error(1)
}

func (m *MockGallery) GetGalleryItem(ctx context.Context, id uuid.UUID) (*catalogapp.GalleryItemResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.GalleryItemResponse), args.Error(1)
}

func (m *MockGallery) CreateGalleryItem(ctx context.Context, req catalogapp.GalleryRequest) (*catalogapp.GalleryItemResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.GalleryItemResponse), args.Error(1)
}

func (m *MockGallery) UpdateGalleryItem(ctx context.Context, id uuid.UUID, req catalogapp.GalleryRequest) (*catalogapp.GalleryItemResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.GalleryItemResponse), args.Error(1)
}

func (m *MockGallery) DeleteGalleryItem(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockContact implements ContactUseCases for testing
type MockContact struct {
	mock.Mock
}

func (m *MockContact) Submit(ctx context.Context, accountID *uuid.UUID, req supportapp.ContactRequest) (*supportapp.ContactResponse, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supportapp.ContactResponse), args.Error(1)
}

func (m *MockContact) List(ctx context.Context, f supportapp.ContactListFilter) (*shared.Paginated[supportapp.ContactResponse], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[supportapp.ContactResponse]), args.Error(1)
}

func (m *MockContact) MarkHandled(ctx context.Context, id uuid.UUID) (*supportapp.ContactResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supportapp.ContactResponse), args.Error(1)
}

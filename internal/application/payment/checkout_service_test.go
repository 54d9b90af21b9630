package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/catalog"
	"github.com/ikpixels/marketplace/internal/domain/identity"
	"github.com/ikpixels/marketplace/internal/domain/order"
	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type checkoutFixture struct {
	accounts *MockAccountRepository
	clients  *MockClientRepository
	products *MockProductRepository
	attempts *MockAttemptRepository
	orders   *MockOrderRepository
	gateway  *MockGateway
	events   *MockEventPublisher
	service  *CheckoutService

	account *identity.Account
	client  *identity.Client
	product *catalog.Product
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		accounts: new(MockAccountRepository),
		clients:  new(MockClientRepository),
		products: new(MockProductRepository),
		attempts: new(MockAttemptRepository),
		orders:   new(MockOrderRepository),
		gateway:  new(MockGateway),
		events:   new(MockEventPublisher),
	}
	tx := &fakeTxScope{orders: f.orders, attempts: f.attempts, products: f.products}
	f.service = NewCheckoutService(f.accounts, f.clients, f.products, f.attempts, f.gateway, tx, f.events,
		CheckoutConfig{CardRedirectURL: "https://shop.example.com/payment/callback"}, zap.NewNop())

	f.account = &identity.Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          "chikondi",
		Email:             "chikondi@example.com",
	}
	client, err := identity.NewClient(f.account.ID)
	require.NoError(t, err)
	f.client = client
	product, err := catalog.NewProduct(catalog.ProductDetails{
		Title:    "Inventory dashboard",
		Price:    decimal.NewFromInt(15000),
		Category: catalog.CategoryWebsites,
	})
	require.NoError(t, err)
	f.product = product
	return f
}

// expectResolve wires the lookups every charge performs before the gateway
// call and returns the pending order checkout will reuse.
func (f *checkoutFixture) expectResolve(t *testing.T) *order.Order {
	t.Helper()
	pending, err := order.NewPendingOrder(f.client.ID)
	require.NoError(t, err)

	f.accounts.On("FindByID", mock.Anything, f.account.ID).Return(f.account, nil)
	f.products.On("FindByID", mock.Anything, f.product.ID).Return(f.product, nil)
	f.clients.On("GetOrCreateByAccountID", mock.Anything, f.account.ID).Return(f.client, nil)
	f.orders.On("GetOrCreatePending", mock.Anything, f.client.ID).Return(pending, nil)
	f.orders.On("Save", mock.Anything, pending).Return(nil)
	return pending
}

func (f *checkoutFixture) mobileInput(provider string) InitiateMobileInput {
	return InitiateMobileInput{
		AccountID: f.account.ID,
		ProductID: f.product.ID,
		Phone:     " 0991234567 ",
		Provider:  provider,
	}
}

func TestCheckoutService_InitiateMobileCharge_Validation(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		prov    string
		wantErr error
		wantMsg string
	}{
		{name: "missing phone", phone: " ", prov: "airtel", wantErr: shared.ErrInvalidInput, wantMsg: "phone is required"},
		{name: "missing provider", phone: "0991234567", prov: "", wantErr: shared.ErrInvalidInput, wantMsg: "provider is required"},
		{name: "unknown operator", phone: "0991234567", prov: "mtn", wantErr: payment.ErrInvalidOperator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture(t)

			_, err := f.service.InitiateMobileCharge(context.Background(), InitiateMobileInput{
				AccountID: f.account.ID,
				ProductID: f.product.ID,
				Phone:     tt.phone,
				Provider:  tt.prov,
			})

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			f.accounts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
			f.gateway.AssertNotCalled(t, "InitiateMobileCharge", mock.Anything, mock.Anything)
			f.attempts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckoutService_InitiateMobileCharge_Success(t *testing.T) {
	f := newCheckoutFixture(t)
	pending := f.expectResolve(t)
	f.gateway.On("InitiateMobileCharge", mock.Anything, payment.MobileChargeRequest{
		Phone:    "0991234567",
		Operator: payment.OperatorAirtel,
		Amount:   f.product.Price,
		Currency: "MWK",
		Email:    "chikondi@example.com",
	}).Return(payment.ChargeResult{
		Status:      payment.OutcomeSuccess,
		ExternalRef: "PCH-123",
		RawResponse: `{"status":"success"}`,
	}, nil)
	f.attempts.On("Create", mock.Anything, mock.MatchedBy(func(a *payment.Attempt) bool {
		return a.TxRef == "PCH-123" &&
			a.Channel == payment.ChannelMobile &&
			a.Method == payment.MethodAirtel &&
			a.Status == payment.AttemptPending &&
			a.Amount.Equal(f.product.Price) &&
			a.OrderID != nil && *a.OrderID == pending.ID &&
			a.Metadata["product_id"] == f.product.ID.String() &&
			a.Metadata["client_id"] == f.client.ID.String() &&
			a.Metadata["operator"] == "airtel"
	})).Return(nil)

	out, err := f.service.InitiateMobileCharge(context.Background(), f.mobileInput("Airtel Money"))

	require.NoError(t, err)
	assert.Equal(t, "success", out.Status)
	assert.Equal(t, "PCH-123", out.TxRef)
	assert.Equal(t, pending.ID, out.OrderID)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, f.product.ID, pending.Items[0].ProductID)
	f.gateway.AssertExpectations(t)
	f.attempts.AssertExpectations(t)
	f.orders.AssertExpectations(t)
}

func TestCheckoutService_InitiateMobileCharge_ReplacesOtherPendingItems(t *testing.T) {
	f := newCheckoutFixture(t)
	pending := f.expectResolve(t)
	other, err := catalog.NewProduct(catalog.ProductDetails{
		Title: "Landing page kit", Price: decimal.NewFromInt(4000), Category: catalog.CategoryTemplates,
	})
	require.NoError(t, err)
	_, err = pending.AddLineItem(other, 1)
	require.NoError(t, err)

	f.gateway.On("InitiateMobileCharge", mock.Anything, mock.Anything).
		Return(payment.ChargeResult{Status: payment.OutcomeSuccess, ExternalRef: "PCH-9"}, nil)
	f.attempts.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err = f.service.InitiateMobileCharge(context.Background(), f.mobileInput("mpamba"))

	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, f.product.ID, pending.Items[0].ProductID)
	assert.True(t, pending.Subtotal().Equal(f.product.Price))
}

func TestCheckoutService_InitiateMobileCharge_GatewayRejects(t *testing.T) {
	tests := []struct {
		name    string
		status  payment.OutcomeStatus
		wantErr error
	}{
		{name: "declined", status: payment.OutcomeFailed, wantErr: payment.ErrGatewayDeclined},
		{name: "unavailable", status: payment.OutcomeUnavailable, wantErr: payment.ErrGatewayUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			f.expectResolve(t)
			f.gateway.On("InitiateMobileCharge", mock.Anything, mock.Anything).
				Return(payment.ChargeResult{Status: tt.status, Message: "Wallet is locked"}, nil)

			_, err := f.service.InitiateMobileCharge(context.Background(), f.mobileInput("airtel"))

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, "Wallet is locked", err.Error())
			f.attempts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckoutService_InitiateMobileCharge_UnknownProduct(t *testing.T) {
	f := newCheckoutFixture(t)
	f.accounts.On("FindByID", mock.Anything, f.account.ID).Return(f.account, nil)
	f.products.On("FindByID", mock.Anything, f.product.ID).Return(nil, shared.NotFound("product"))

	_, err := f.service.InitiateMobileCharge(context.Background(), f.mobileInput("airtel"))

	assert.True(t, errors.Is(err, shared.ErrNotFound))
	f.orders.AssertNotCalled(t, "GetOrCreatePending", mock.Anything, mock.Anything)
	f.gateway.AssertNotCalled(t, "InitiateMobileCharge", mock.Anything, mock.Anything)
}

func TestCheckoutService_InitiateCardCharge(t *testing.T) {
	t.Run("missing card field", func(t *testing.T) {
		f := newCheckoutFixture(t)

		_, err := f.service.InitiateCardCharge(context.Background(), InitiateCardInput{
			AccountID:  f.account.ID,
			ProductID:  f.product.ID,
			CardNumber: "4111111111111111",
			Expiry:     "12/29",
			CVV:        "123",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		assert.Contains(t, err.Error(), "cardholder_name")
		f.accounts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("redirect for authentication", func(t *testing.T) {
		f := newCheckoutFixture(t)
		pending := f.expectResolve(t)
		f.gateway.On("InitiateCardCharge", mock.Anything, mock.MatchedBy(func(req payment.CardChargeRequest) bool {
			return req.RedirectURL == "https://shop.example.com/payment/callback" &&
				req.Amount.Equal(f.product.Price) &&
				req.Card.HolderName == "C Banda"
		})).Return(payment.ChargeResult{
			Status:      payment.OutcomeSuccess,
			ExternalRef: "PCH-CARD-1",
			RedirectURL: "https://3ds.example.com/auth",
		}, nil)
		f.attempts.On("Create", mock.Anything, mock.MatchedBy(func(a *payment.Attempt) bool {
			return a.Channel == payment.ChannelCard &&
				a.Method == payment.MethodVisa &&
				a.Metadata["card_last4"] == "1111"
		})).Return(nil)

		out, err := f.service.InitiateCardCharge(context.Background(), InitiateCardInput{
			AccountID:      f.account.ID,
			ProductID:      f.product.ID,
			CardNumber:     "4111111111111111",
			Expiry:         "12/29",
			CVV:            "123",
			CardholderName: "C Banda",
		})

		require.NoError(t, err)
		assert.Equal(t, "PCH-CARD-1", out.TxRef)
		assert.Equal(t, pending.ID, out.OrderID)
		assert.Equal(t, "https://3ds.example.com/auth", out.RedirectURL)
		f.attempts.AssertExpectations(t)
	})
}

// paidFixture prepares a pending attempt for an order holding the product
func (f *checkoutFixture) paidFixture(t *testing.T) (*payment.Attempt, *order.Order) {
	t.Helper()
	o, err := order.NewPendingOrder(f.client.ID)
	require.NoError(t, err)
	_, err = o.AddLineItem(f.product, 1)
	require.NoError(t, err)
	attempt, err := payment.NewAttempt(&o.ID, "PCH-555", payment.ChannelMobile, payment.MethodAirtel, f.product.Price, f.account.Email, "")
	require.NoError(t, err)
	attempt.Metadata["product_id"] = f.product.ID.String()
	return attempt, o
}

func TestCheckoutService_VerifyCharge_Success(t *testing.T) {
	f := newCheckoutFixture(t)
	attempt, o := f.paidFixture(t)

	f.attempts.On("FindByTxRef", mock.Anything, "PCH-555").Return(attempt, nil)
	f.gateway.On("VerifyCharge", mock.Anything, "PCH-555", payment.ChannelMobile).
		Return(payment.VerifyResult{Status: payment.OutcomeSuccess, RawPayload: `{"status":"success"}`})
	f.attempts.On("FindByTxRefForUpdate", mock.Anything, "PCH-555").Return(attempt, nil)
	f.attempts.On("SettleIfPending", mock.Anything, attempt).Return(true, nil)
	f.orders.On("FindByIDForUpdate", mock.Anything, o.ID).Return(o, nil)
	f.orders.On("Save", mock.Anything, o).Return(nil)
	f.products.On("IncrementSold", mock.Anything, f.product.ID, 1).Return(nil)
	f.events.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		if len(events) != 2 {
			return false
		}
		return events[0].EventType() == payment.EventTypePaymentSucceeded &&
			events[1].EventType() == order.EventTypeOrderPaid
	})).Return(nil)

	out, err := f.service.VerifyCharge(context.Background(), " PCH-555 ")

	require.NoError(t, err)
	assert.Equal(t, "success", out.Status)
	assert.Equal(t, "Payment successful", out.Message)
	assert.Equal(t, payment.AttemptSuccess, attempt.Status)
	assert.True(t, o.Paid)
	assert.True(t, o.Total.Equal(f.product.Price))
	f.products.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestCheckoutService_VerifyCharge_OrderRepointed(t *testing.T) {
	f := newCheckoutFixture(t)
	attempt, o := f.paidFixture(t)
	attempt.Metadata["product_id"] = uuid.NewString()

	f.attempts.On("FindByTxRef", mock.Anything, "PCH-555").Return(attempt, nil)
	f.gateway.On("VerifyCharge", mock.Anything, "PCH-555", payment.ChannelMobile).
		Return(payment.VerifyResult{Status: payment.OutcomeSuccess, RawPayload: `{"status":"success"}`})
	f.attempts.On("FindByTxRefForUpdate", mock.Anything, "PCH-555").Return(attempt, nil)
	f.attempts.On("SettleIfPending", mock.Anything, attempt).Return(true, nil)
	f.orders.On("FindByIDForUpdate", mock.Anything, o.ID).Return(o, nil)
	f.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

	out, err := f.service.VerifyCharge(context.Background(), "PCH-555")

	require.NoError(t, err)
	assert.Equal(t, "success", out.Status)
	assert.False(t, o.Paid)
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.products.AssertNotCalled(t, "IncrementSold", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_VerifyCharge_Failed(t *testing.T) {
	f := newCheckoutFixture(t)
	attempt, _ := f.paidFixture(t)

	f.attempts.On("FindByTxRef", mock.Anything, "PCH-555").Return(attempt, nil)
	f.gateway.On("VerifyCharge", mock.Anything, "PCH-555", payment.ChannelMobile).
		Return(payment.VerifyResult{Status: payment.OutcomeFailed, RawPayload: `{"status":"failed"}`})
	f.attempts.On("FindByTxRefForUpdate", mock.Anything, "PCH-555").Return(attempt, nil)
	f.attempts.On("SettleIfPending", mock.Anything, attempt).Return(true, nil)
	f.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

	out, err := f.service.VerifyCharge(context.Background(), "PCH-555")

	require.NoError(t, err)
	assert.Equal(t, "failed", out.Status)
	assert.Equal(t, `{"status":"failed"}`, attempt.RawResponse)
	f.orders.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	f.products.AssertNotCalled(t, "IncrementSold", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_VerifyCharge_FinalAttemptSkipsGateway(t *testing.T) {
	f := newCheckoutFixture(t)
	attempt, _ := f.paidFixture(t)
	require.NoError(t, attempt.MarkSucceeded(""))
	f.attempts.On("FindByTxRef", mock.Anything, "PCH-555").Return(attempt, nil)

	out, err := f.service.VerifyCharge(context.Background(), "PCH-555")

	require.NoError(t, err)
	assert.Equal(t, "success", out.Status)
	f.gateway.AssertNotCalled(t, "VerifyCharge", mock.Anything, mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCheckoutService_VerifyCharge_Pending(t *testing.T) {
	f := newCheckoutFixture(t)
	attempt, _ := f.paidFixture(t)
	f.attempts.On("FindByTxRef", mock.Anything, "PCH-555").Return(attempt, nil)
	f.gateway.On("VerifyCharge", mock.Anything, "PCH-555", payment.ChannelMobile).
		Return(payment.VerifyResult{Status: payment.OutcomePending, Message: "Awaiting approval", RawPayload: `{"status":"pending"}`})
	f.attempts.On("UpdateRawResponse", mock.Anything, attempt).Return(nil)

	out, err := f.service.VerifyCharge(context.Background(), "PCH-555")

	require.NoError(t, err)
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "Awaiting approval", out.Message)
	assert.Equal(t, `{"status":"pending"}`, attempt.RawResponse)
	f.attempts.AssertNotCalled(t, "SettleIfPending", mock.Anything, mock.Anything)
}

func TestCheckoutService_VerifyCharge_Unavailable(t *testing.T) {
	f := newCheckoutFixture(t)
	attempt, _ := f.paidFixture(t)
	f.attempts.On("FindByTxRef", mock.Anything, "PCH-555").Return(attempt, nil)
	f.gateway.On("VerifyCharge", mock.Anything, "PCH-555", payment.ChannelMobile).
		Return(payment.VerifyResult{Status: payment.OutcomeUnavailable})

	_, err := f.service.VerifyCharge(context.Background(), "PCH-555")

	require.Error(t, err)
	assert.True(t, errors.Is(err, payment.ErrGatewayUnavailable))
	assert.Equal(t, payment.AttemptPending, attempt.Status)
	f.attempts.AssertNotCalled(t, "UpdateRawResponse", mock.Anything, mock.Anything)
}

func TestCheckoutService_VerifyCharge_LostRace(t *testing.T) {
	f := newCheckoutFixture(t)
	attempt, _ := f.paidFixture(t)
	f.attempts.On("FindByTxRef", mock.Anything, "PCH-555").Return(attempt, nil)
	f.gateway.On("VerifyCharge", mock.Anything, "PCH-555", payment.ChannelMobile).
		Return(payment.VerifyResult{Status: payment.OutcomeSuccess})
	f.attempts.On("FindByTxRefForUpdate", mock.Anything, "PCH-555").Return(attempt, nil)
	f.attempts.On("SettleIfPending", mock.Anything, attempt).Return(false, nil)

	_, err := f.service.VerifyCharge(context.Background(), "PCH-555")

	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
	f.orders.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCheckoutService_VerifyCharge_UnknownReference(t *testing.T) {
	f := newCheckoutFixture(t)
	f.attempts.On("FindByTxRef", mock.Anything, "nope").Return(nil, shared.NotFound("payment attempt"))

	_, err := f.service.VerifyCharge(context.Background(), "nope")

	assert.True(t, errors.Is(err, shared.ErrNotFound))
	f.gateway.AssertNotCalled(t, "VerifyCharge", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_VerifyCharge_EmptyReference(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.service.VerifyCharge(context.Background(), "  ")

	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

package persistence

import (
	"context"
	"sync"
	"testing"

	apppayment "github.com/ikpixels/marketplace/internal/application/payment"
	"github.com/ikpixels/marketplace/internal/domain/catalog"
	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// scriptedGateway answers charges with a fixed reference and verifications
// with a fixed status.
type scriptedGateway struct {
	mu           sync.Mutex
	chargeStatus payment.OutcomeStatus
	chargeRef    string
	verifyStatus payment.OutcomeStatus
	verifyCalls  int
}

func (g *scriptedGateway) InitiateMobileCharge(_ context.Context, req payment.MobileChargeRequest) (payment.ChargeResult, error) {
	if err := req.Validate(); err != nil {
		return payment.ChargeResult{}, err
	}
	return payment.ChargeResult{Status: g.chargeStatus, ExternalRef: g.chargeRef, RawResponse: `{"status":"success"}`}, nil
}

func (g *scriptedGateway) InitiateCardCharge(_ context.Context, req payment.CardChargeRequest) (payment.ChargeResult, error) {
	if err := req.Validate(); err != nil {
		return payment.ChargeResult{}, err
	}
	return payment.ChargeResult{Status: g.chargeStatus, ExternalRef: g.chargeRef, RawResponse: `{"status":"success"}`}, nil
}

func (g *scriptedGateway) VerifyCharge(_ context.Context, _ string, _ payment.Channel) payment.VerifyResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifyCalls++
	return payment.VerifyResult{Status: g.verifyStatus, RawPayload: `{"status":"` + string(g.verifyStatus) + `"}`}
}

func (g *scriptedGateway) InitiatePayout(_ context.Context, _ payment.PayoutRequest) (payment.PayoutResult, error) {
	return payment.PayoutResult{Status: payment.OutcomeSuccess}, nil
}

type checkoutFixture struct {
	db      *gorm.DB
	gateway *scriptedGateway
	svc     *apppayment.CheckoutService
	product *catalog.Product
	input   apppayment.InitiateMobileInput
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	db := newTestDB(t)
	gw := &scriptedGateway{chargeStatus: payment.OutcomeSuccess, chargeRef: "abc123", verifyStatus: payment.OutcomeSuccess}
	svc := apppayment.NewCheckoutService(
		NewGormAccountRepository(db),
		NewGormClientRepository(db),
		NewGormProductRepository(db),
		NewGormPaymentAttemptRepository(db),
		gw,
		NewGormTransactionScope(db),
		nil,
		apppayment.CheckoutConfig{Currency: "MWK"},
		zap.NewNop(),
	)
	account := seedAccount(t, db, "buyer")
	product := seedProduct(t, db, "Point of sale system", 1000)
	return &checkoutFixture{
		db:      db,
		gateway: gw,
		svc:     svc,
		product: product,
		input: apppayment.InitiateMobileInput{
			AccountID: account.ID,
			ProductID: product.ID,
			Phone:     "0991234567",
			Provider:  "airtel money",
		},
	}
}

func (f *checkoutFixture) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func TestCheckout_MobileScenario(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	out, err := f.svc.InitiateMobileCharge(ctx, f.input)
	require.NoError(t, err)
	assert.Equal(t, "abc123", out.TxRef)

	attempts := NewGormPaymentAttemptRepository(f.db)
	attempt, err := attempts.FindByTxRef(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, payment.AttemptPending, attempt.Status)
	assert.Equal(t, payment.MethodAirtel, attempt.Method)

	orders := NewGormOrderRepository(f.db)
	o, err := orders.FindByID(ctx, out.OrderID)
	require.NoError(t, err)
	assert.False(t, o.Paid)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 1, o.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(1000).Equal(o.Items[0].UnitPrice))

	verified, err := f.svc.VerifyCharge(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "success", verified.Status)

	o, err = orders.FindByID(ctx, out.OrderID)
	require.NoError(t, err)
	assert.True(t, o.Paid)
	assert.True(t, decimal.NewFromInt(1000).Equal(o.Total))

	p, err := NewGormProductRepository(f.db).FindByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.SoldCount)
	assert.True(t, p.Booked)
}

func TestCheckout_ReverifyHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	_, err := f.svc.InitiateMobileCharge(ctx, f.input)
	require.NoError(t, err)
	_, err = f.svc.VerifyCharge(ctx, "abc123")
	require.NoError(t, err)

	again, err := f.svc.VerifyCharge(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "success", again.Status)
	assert.Equal(t, 1, f.gateway.verifyCalls)

	p, err := NewGormProductRepository(f.db).FindByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.SoldCount)
}

func TestCheckout_ConcurrentVerificationAppliesOnce(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	_, err := f.svc.InitiateMobileCharge(ctx, f.input)
	require.NoError(t, err)

	// Callers that read the attempt before it settles all reach the
	// transaction; the row lock and conditional update pick one winner.
	const workers = 5
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := f.svc.VerifyCharge(ctx, "abc123")
			if assert.NoError(t, err) {
				assert.Equal(t, "success", out.Status)
			}
		}()
	}
	wg.Wait()

	p, err := NewGormProductRepository(f.db).FindByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.SoldCount)
	assert.Equal(t, int64(1), f.count(t, &models.OrderModel{}, "paid = ?", true))
}

func TestCheckout_FailedVerificationLeavesOrderUnpaid(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.gateway.verifyStatus = payment.OutcomeFailed

	out, err := f.svc.InitiateMobileCharge(ctx, f.input)
	require.NoError(t, err)
	verified, err := f.svc.VerifyCharge(ctx, out.TxRef)
	require.NoError(t, err)
	assert.Equal(t, "failed", verified.Status)

	o, err := NewGormOrderRepository(f.db).FindByID(ctx, out.OrderID)
	require.NoError(t, err)
	assert.False(t, o.Paid)
	assert.True(t, o.Total.IsZero())
}

func TestCheckout_PendingVerificationKeepsAttemptPending(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.gateway.verifyStatus = payment.OutcomePending

	out, err := f.svc.InitiateMobileCharge(ctx, f.input)
	require.NoError(t, err)
	verified, err := f.svc.VerifyCharge(ctx, out.TxRef)
	require.NoError(t, err)
	assert.Equal(t, "pending", verified.Status)

	attempt, err := NewGormPaymentAttemptRepository(f.db).FindByTxRef(ctx, out.TxRef)
	require.NoError(t, err)
	assert.Equal(t, payment.AttemptPending, attempt.Status)
	assert.Equal(t, `{"status":"pending"}`, attempt.RawResponse)
}

func TestCheckout_VerificationIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	out, err := f.svc.InitiateMobileCharge(ctx, f.input)
	require.NoError(t, err)

	// Make the sold-count increment fail inside the verification transaction.
	require.NoError(t, f.db.Exec("DELETE FROM products WHERE id = ?", f.product.ID).Error)

	_, err = f.svc.VerifyCharge(ctx, out.TxRef)
	require.Error(t, err)

	attempt, err := NewGormPaymentAttemptRepository(f.db).FindByTxRef(ctx, out.TxRef)
	require.NoError(t, err)
	assert.Equal(t, payment.AttemptPending, attempt.Status)

	o, err := NewGormOrderRepository(f.db).FindByID(ctx, out.OrderID)
	require.NoError(t, err)
	assert.False(t, o.Paid)
}

func TestCheckout_UnknownOperatorWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.input.Provider = "unknown"

	_, err := f.svc.InitiateMobileCharge(ctx, f.input)
	assert.ErrorIs(t, err, payment.ErrInvalidOperator)
	assert.Zero(t, f.count(t, &models.OrderModel{}, ""))
	assert.Zero(t, f.count(t, &models.PaymentAttemptModel{}, ""))
}

func TestCheckout_DeclinedChargeCreatesNoAttempt(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)
	f.gateway.chargeStatus = payment.OutcomeFailed

	_, err := f.svc.InitiateMobileCharge(ctx, f.input)
	assert.ErrorIs(t, err, payment.ErrGatewayDeclined)
	assert.Zero(t, f.count(t, &models.PaymentAttemptModel{}, ""))
}

func TestCheckout_VerifyUnknownTxRef(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.svc.VerifyCharge(context.Background(), "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Zero(t, f.gateway.verifyCalls)
}

func TestCheckout_StaleAttemptDoesNotPayRepointedOrder(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t)

	f.gateway.chargeRef = "cheap-ref"
	cheap, err := f.svc.InitiateMobileCharge(ctx, f.input)
	require.NoError(t, err)

	expensive := seedProduct(t, f.db, "Hospital management system", 50000)
	f.gateway.chargeRef = "expensive-ref"
	second := f.input
	second.ProductID = expensive.ID
	out, err := f.svc.InitiateMobileCharge(ctx, second)
	require.NoError(t, err)
	require.Equal(t, cheap.OrderID, out.OrderID)

	verified, err := f.svc.VerifyCharge(ctx, "cheap-ref")
	require.NoError(t, err)
	assert.Equal(t, "success", verified.Status)

	orders := NewGormOrderRepository(f.db)
	products := NewGormProductRepository(f.db)
	o, err := orders.FindByID(ctx, out.OrderID)
	require.NoError(t, err)
	assert.False(t, o.Paid)
	for _, id := range []any{f.product.ID, expensive.ID} {
		assert.Zero(t, f.count(t, &models.ProductModel{}, "id = ? AND sold_count > 0", id))
	}

	_, err = f.svc.VerifyCharge(ctx, "expensive-ref")
	require.NoError(t, err)
	o, err = orders.FindByID(ctx, out.OrderID)
	require.NoError(t, err)
	assert.True(t, o.Paid)
	assert.True(t, decimal.NewFromInt(50000).Equal(o.Total))
	p, err := products.FindByID(ctx, expensive.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.SoldCount)
}

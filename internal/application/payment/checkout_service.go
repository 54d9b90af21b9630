package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/catalog"
	"github.com/ikpixels/marketplace/internal/domain/identity"
	"github.com/ikpixels/marketplace/internal/domain/order"
	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"github.com/ikpixels/marketplace/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutConfig holds checkout settings
type CheckoutConfig struct {
	Currency        string
	CardRedirectURL string
}

// CheckoutService initiates gateway charges for products and reconciles
// their outcome with orders and the catalog.
type CheckoutService struct {
	accounts identity.AccountRepository
	clients  identity.ClientRepository
	products catalog.ProductRepository
	attempts payment.AttemptRepository
	gateway  payment.Gateway
	txScope  TransactionScope
	events   shared.EventPublisher
	config   CheckoutConfig
	logger   *zap.Logger
}

// NewCheckoutService creates a new CheckoutService. events may be nil.
func NewCheckoutService(
	accounts identity.AccountRepository,
	clients identity.ClientRepository,
	products catalog.ProductRepository,
	attempts payment.AttemptRepository,
	gateway payment.Gateway,
	txScope TransactionScope,
	events shared.EventPublisher,
	config CheckoutConfig,
	logger *zap.Logger,
) *CheckoutService {
	if config.Currency == "" {
		config.Currency = "MWK"
	}
	return &CheckoutService{
		accounts: accounts,
		clients:  clients,
		products: products,
		attempts: attempts,
		gateway:  gateway,
		txScope:  txScope,
		events:   events,
		config:   config,
		logger:   logger.Named("checkout"),
	}
}

// checkoutContext is what both charge channels resolve before calling the gateway
type checkoutContext struct {
	account *identity.Account
	client  *identity.Client
	product *catalog.Product
}

// InitiateMobileCharge charges the product price to a mobile money wallet.
// The operator and inputs are validated before anything is written; a
// rejected charge leaves no payment attempt behind.
func (s *CheckoutService) InitiateMobileCharge(ctx context.Context, in InitiateMobileInput) (*ChargeOutcome, error) {
	if strings.TrimSpace(in.Phone) == "" {
		return nil, shared.InvalidInput("phone is required")
	}
	if strings.TrimSpace(in.Provider) == "" {
		return nil, shared.InvalidInput("provider is required")
	}
	operator, err := payment.ParseOperator(in.Provider)
	if err != nil {
		return nil, err
	}

	cc, err := s.resolve(ctx, in.AccountID, in.ProductID)
	if err != nil {
		return nil, err
	}
	req := payment.MobileChargeRequest{
		Phone:    strings.TrimSpace(in.Phone),
		Operator: operator,
		Amount:   cc.product.Price,
		Currency: s.config.Currency,
		Email:    cc.account.Email,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pending, err := s.preparePendingOrder(ctx, cc)
	if err != nil {
		return nil, err
	}

	log := logger.Enrich(ctx, s.logger).With(
		zap.String("channel", string(payment.ChannelMobile)),
		zap.String("operator", string(operator)),
		zap.String("phone", logger.MaskPhone(req.Phone)),
		zap.String("order_id", pending.ID.String()),
	)
	result, err := s.gateway.InitiateMobileCharge(ctx, req)
	if err != nil {
		return nil, err
	}
	if !result.Status.IsSuccess() {
		log.Warn("Mobile charge rejected", zap.String("status", string(result.Status)), zap.String("message", result.Message))
		return nil, gatewayError(result.Status, result.Message)
	}

	attempt, err := s.recordAttempt(ctx, pending, cc, result, payment.ChannelMobile, payment.MethodForOperator(operator), map[string]string{
		"operator": string(operator),
	})
	if err != nil {
		log.Error("Failed to record accepted mobile charge", zap.String("tx_ref", result.ExternalRef), zap.Error(err))
		return nil, err
	}
	log.Info("Mobile charge initiated", zap.String("tx_ref", attempt.TxRef))

	return &ChargeOutcome{
		Status:  string(payment.OutcomeSuccess),
		TxRef:   attempt.TxRef,
		OrderID: pending.ID,
		Message: "Payment initiated. Approve the request on your phone.",
	}, nil
}

// InitiateCardCharge charges the product price to a card. The response may
// carry a redirect URL for 3-D Secure authentication.
func (s *CheckoutService) InitiateCardCharge(ctx context.Context, in InitiateCardInput) (*ChargeOutcome, error) {
	card := payment.CardDetails{
		Number:     strings.TrimSpace(in.CardNumber),
		Expiry:     strings.TrimSpace(in.Expiry),
		CVV:        strings.TrimSpace(in.CVV),
		HolderName: strings.TrimSpace(in.CardholderName),
	}
	cardCheck := payment.CardChargeRequest{Card: card, Amount: decimal.NewFromInt(1)}
	if err := cardCheck.Validate(); err != nil {
		return nil, err
	}

	cc, err := s.resolve(ctx, in.AccountID, in.ProductID)
	if err != nil {
		return nil, err
	}
	redirect := strings.TrimSpace(in.RedirectURL)
	if redirect == "" {
		redirect = s.config.CardRedirectURL
	}
	req := payment.CardChargeRequest{
		Card:        card,
		Amount:      cc.product.Price,
		Currency:    s.config.Currency,
		Email:       cc.account.Email,
		RedirectURL: redirect,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pending, err := s.preparePendingOrder(ctx, cc)
	if err != nil {
		return nil, err
	}

	log := logger.Enrich(ctx, s.logger).With(
		zap.String("channel", string(payment.ChannelCard)),
		zap.String("card_last4", card.Last4()),
		zap.String("order_id", pending.ID.String()),
	)
	result, err := s.gateway.InitiateCardCharge(ctx, req)
	if err != nil {
		return nil, err
	}
	if !result.Status.IsSuccess() {
		log.Warn("Card charge rejected", zap.String("status", string(result.Status)), zap.String("message", result.Message))
		return nil, gatewayError(result.Status, result.Message)
	}

	attempt, err := s.recordAttempt(ctx, pending, cc, result, payment.ChannelCard, payment.MethodVisa, map[string]string{
		"card_last4": card.Last4(),
	})
	if err != nil {
		log.Error("Failed to record accepted card charge", zap.String("tx_ref", result.ExternalRef), zap.Error(err))
		return nil, err
	}
	log.Info("Card charge initiated", zap.String("tx_ref", attempt.TxRef))

	message := "Payment initiated."
	if result.RedirectURL != "" {
		message = "Complete the payment on the card authentication page."
	}
	return &ChargeOutcome{
		Status:      string(payment.OutcomeSuccess),
		TxRef:       attempt.TxRef,
		OrderID:     pending.ID,
		RedirectURL: result.RedirectURL,
		Message:     message,
	}, nil
}

// VerifyCharge asks the gateway for the outcome of txRef and applies it.
// A terminal attempt is returned as recorded without contacting the
// gateway. On success the order is marked paid with the attempt amount and
// every line item's product sold count is incremented, all in one
// transaction together with the attempt's status change.
func (s *CheckoutService) VerifyCharge(ctx context.Context, txRef string) (*VerifyOutcome, error) {
	txRef = strings.TrimSpace(txRef)
	if txRef == "" {
		return nil, shared.InvalidInput("tx_ref is required")
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "verify_charge", telemetry.SpanAttrTxRef, txRef)
	defer span.End()

	attempt, err := s.attempts.FindByTxRef(ctx, txRef)
	if err != nil {
		return nil, err
	}
	if attempt.Status.IsFinal() {
		return attemptOutcome(attempt), nil
	}

	log := logger.Enrich(ctx, s.logger).With(zap.String("tx_ref", txRef), zap.String("channel", string(attempt.Channel)))
	result := s.gateway.VerifyCharge(ctx, attempt.TxRef, attempt.Channel)
	telemetry.SetAttributes(span, telemetry.SpanAttrChannel, string(attempt.Channel), telemetry.SpanAttrOutcome, string(result.Status))

	switch result.Status {
	case payment.OutcomeUnavailable:
		log.Warn("Verification unavailable", zap.String("message", result.Message))
		return nil, gatewayError(result.Status, result.Message)
	case payment.OutcomePending:
		return s.recordPendingCheck(ctx, attempt, result)
	}

	var (
		settled *payment.Attempt
		events  []shared.DomainEvent
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		events = nil
		locked, err := repos.Attempts().FindByTxRefForUpdate(ctx, txRef)
		if err != nil {
			return err
		}
		settled = locked
		if locked.Status.IsFinal() {
			return nil
		}

		if result.Status == payment.OutcomeSuccess {
			err = locked.MarkSucceeded(result.RawPayload)
		} else {
			err = locked.MarkFailed(result.RawPayload)
		}
		if err != nil {
			return err
		}
		updated, err := repos.Attempts().SettleIfPending(ctx, locked)
		if err != nil {
			return err
		}
		if !updated {
			return shared.ErrConcurrencyConflict
		}
		events = append(events, locked.PendingEvents()...)

		if locked.Status != payment.AttemptSuccess || locked.OrderID == nil {
			return nil
		}
		orderEvents, err := s.applyPaidOrder(ctx, repos, locked, log)
		if err != nil {
			return err
		}
		events = append(events, orderEvents...)
		return nil
	})
	if err != nil {
		log.Error("Failed to apply verification", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("apply verification for %s: %w", txRef, err)
	}

	log.Info("Payment verified", zap.String("status", string(settled.Status)))
	s.publish(ctx, events)
	return attemptOutcome(settled), nil
}

func (s *CheckoutService) applyPaidOrder(ctx context.Context, repos TransactionalRepositories, attempt *payment.Attempt, log *zap.Logger) ([]shared.DomainEvent, error) {
	o, err := repos.Orders().FindByIDForUpdate(ctx, *attempt.OrderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Warn("Order for successful payment no longer exists", zap.String("order_id", attempt.OrderID.String()))
			return nil, nil
		}
		return nil, err
	}
	if o.Paid {
		// An older attempt for the same order settled after a newer one
		// already paid it; the money is recorded on the attempt only.
		log.Warn("Order already paid by another attempt", zap.String("order_id", o.ID.String()))
		return nil, nil
	}

	if !chargedFor(o, attempt) {
		// The order was re-pointed at another product after this attempt
		// was started; the money is recorded on the attempt only.
		log.Warn("Order no longer matches the charged product",
			zap.String("order_id", o.ID.String()),
			zap.String("product_id", attempt.Metadata["product_id"]),
		)
		return nil, nil
	}

	if err := o.Finalize(attempt.Amount); err != nil {
		return nil, err
	}
	if err := repos.Orders().Save(ctx, o); err != nil {
		return nil, err
	}
	for _, item := range o.Items {
		if err := repos.Products().IncrementSold(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, fmt.Errorf("increment sold count for product %s: %w", item.ProductID, err)
		}
	}
	return o.PendingEvents(), nil
}

// chargedFor reports whether o still holds exactly what attempt charged for.
func chargedFor(o *order.Order, attempt *payment.Attempt) bool {
	if len(o.Items) != 1 || o.Items[0].ProductID.String() != attempt.Metadata["product_id"] {
		return false
	}
	return o.Subtotal().Equal(attempt.Amount)
}

func (s *CheckoutService) recordPendingCheck(ctx context.Context, attempt *payment.Attempt, result payment.VerifyResult) (*VerifyOutcome, error) {
	if err := attempt.RecordCheck(result.RawPayload); err != nil {
		return nil, err
	}
	if err := s.attempts.UpdateRawResponse(ctx, attempt); err != nil {
		if errors.Is(err, payment.ErrAttemptSettled) {
			current, findErr := s.attempts.FindByTxRef(ctx, attempt.TxRef)
			if findErr != nil {
				return nil, findErr
			}
			return attemptOutcome(current), nil
		}
		return nil, err
	}
	out := attemptOutcome(attempt)
	if result.Message != "" {
		out.Message = result.Message
	}
	return out, nil
}

func (s *CheckoutService) resolve(ctx context.Context, accountID, productID uuid.UUID) (*checkoutContext, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.GetOrCreateByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &checkoutContext{account: account, client: client, product: product}, nil
}

// preparePendingOrder reduces the client's pending order to the product
// being bought, so the charged amount always equals the order subtotal.
func (s *CheckoutService) preparePendingOrder(ctx context.Context, cc *checkoutContext) (*order.Order, error) {
	var pending *order.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().GetOrCreatePending(ctx, cc.client.ID)
		if err != nil {
			return err
		}
		if err := o.RetainOnly(cc.product.ID); err != nil {
			return err
		}
		if _, err := o.AddLineItem(cc.product, 1); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, o); err != nil {
			return err
		}
		pending = o
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("prepare pending order: %w", err)
	}
	return pending, nil
}

func (s *CheckoutService) recordAttempt(
	ctx context.Context,
	pending *order.Order,
	cc *checkoutContext,
	result payment.ChargeResult,
	channel payment.Channel,
	method payment.Method,
	extra map[string]string,
) (*payment.Attempt, error) {
	orderID := pending.ID
	attempt, err := payment.NewAttempt(&orderID, result.ExternalRef, channel, method, cc.product.Price, cc.account.Email, result.RawResponse)
	if err != nil {
		return nil, err
	}
	attempt.Metadata["product_id"] = cc.product.ID.String()
	attempt.Metadata["client_id"] = cc.client.ID.String()
	for k, v := range extra {
		attempt.Metadata[k] = v
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *CheckoutService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to publish payment events", zap.Error(err))
	}
}

// gatewayError maps a non-success gateway outcome to its domain error,
// carrying the gateway's message when there is one.
func gatewayError(status payment.OutcomeStatus, message string) error {
	base := status.Err()
	if base == nil {
		base = payment.ErrGatewayUnavailable
	}
	de, ok := shared.AsDomainError(base)
	if !ok || message == "" {
		return base
	}
	return shared.NewDomainError(de.Code, message)
}

package payment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeAttempt is the aggregate type for payment attempts
const AggregateTypeAttempt = "PaymentAttempt"

// AttemptStatus is the lifecycle state of a payment attempt
type AttemptStatus string

const (
	AttemptPending AttemptStatus = "pending"
	AttemptSuccess AttemptStatus = "success"
	AttemptFailed  AttemptStatus = "failed"
)

// IsValid reports whether s is a known status
func (s AttemptStatus) IsValid() bool {
	switch s {
	case AttemptPending, AttemptSuccess, AttemptFailed:
		return true
	}
	return false
}

// IsFinal reports whether s is terminal
func (s AttemptStatus) IsFinal() bool {
	return s == AttemptSuccess || s == AttemptFailed
}

// String returns the status name
func (s AttemptStatus) String() string {
	return string(s)
}

// Method is how the payer paid
type Method string

const (
	MethodVisa   Method = "visa"
	MethodAirtel Method = "airtel"
	MethodMpamba Method = "mpamba"
)

// MethodForOperator returns the payment method for a mobile operator
func MethodForOperator(op Operator) Method {
	if op == OperatorMpamba {
		return MethodMpamba
	}
	return MethodAirtel
}

// Attempt records a charge the gateway accepted. TxRef correlates it
// with the gateway; Status changes at most once, from pending.
type Attempt struct {
	shared.BaseAggregateRoot
	OrderID     *uuid.UUID
	TxRef       string
	Channel     Channel
	Method      Method
	Amount      decimal.Decimal
	Email       string
	Metadata    map[string]string
	Status      AttemptStatus
	RawResponse string
	VerifiedAt  *time.Time
}

// NewAttempt creates a pending attempt from an accepted charge
func NewAttempt(orderID *uuid.UUID, txRef string, channel Channel, method Method, amount decimal.Decimal, email string, rawResponse string) (*Attempt, error) {
	txRef = strings.TrimSpace(txRef)
	if txRef == "" {
		return nil, shared.InvalidInput("transaction reference is required")
	}
	if !channel.IsValid() {
		return nil, shared.InvalidInput("unknown payment channel: " + string(channel))
	}
	if amount.IsNegative() {
		return nil, shared.InvalidInput("payment amount cannot be negative")
	}
	return &Attempt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		TxRef:             txRef,
		Channel:           channel,
		Method:            method,
		Amount:            amount,
		Email:             email,
		Metadata:          map[string]string{},
		Status:            AttemptPending,
		RawResponse:       rawResponse,
	}, nil
}

// ErrAttemptSettled is returned when a settled attempt is transitioned again
var ErrAttemptSettled = shared.InvalidState("payment attempt is already settled")

// MarkSucceeded settles the attempt as success, keeping the gateway payload
func (a *Attempt) MarkSucceeded(rawPayload string) error {
	if err := a.settle(AttemptSuccess, rawPayload); err != nil {
		return err
	}
	a.RecordEvent(newSettledEvent(EventTypePaymentSucceeded, a))
	return nil
}

// MarkFailed settles the attempt as failed, keeping the gateway payload
func (a *Attempt) MarkFailed(rawPayload string) error {
	if err := a.settle(AttemptFailed, rawPayload); err != nil {
		return err
	}
	a.RecordEvent(newSettledEvent(EventTypePaymentFailed, a))
	return nil
}

// RecordCheck stores an inconclusive verification payload without
// changing status
func (a *Attempt) RecordCheck(rawPayload string) error {
	if a.Status.IsFinal() {
		return ErrAttemptSettled
	}
	a.RawResponse = rawPayload
	a.UpdatedAt = time.Now()
	return nil
}

func (a *Attempt) settle(to AttemptStatus, rawPayload string) error {
	if a.Status.IsFinal() {
		return ErrAttemptSettled
	}
	now := time.Now()
	a.Status = to
	a.RawResponse = rawPayload
	a.VerifiedAt = &now
	a.UpdatedAt = now
	a.BumpVersion()
	return nil
}

// Event types raised by attempts
const (
	EventTypePaymentSucceeded = "PaymentSucceeded"
	EventTypePaymentFailed    = "PaymentFailed"
)

// SettledEvent is raised when an attempt reaches a terminal status
type SettledEvent struct {
	shared.BaseDomainEvent
	TxRef   string          `json:"tx_ref"`
	OrderID *uuid.UUID      `json:"order_id,omitempty"`
	Channel Channel         `json:"channel"`
	Amount  decimal.Decimal `json:"amount"`
	Email   string          `json:"email,omitempty"`
	Status  AttemptStatus   `json:"status"`
}

func newSettledEvent(eventType string, a *Attempt) *SettledEvent {
	return &SettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeAttempt, a.ID),
		TxRef:           a.TxRef,
		OrderID:         a.OrderID,
		Channel:         a.Channel,
		Amount:          a.Amount,
		Email:           a.Email,
		Status:          a.Status,
	}
}

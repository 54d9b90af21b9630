package payment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// WithdrawalMethod is where a payout is sent
type WithdrawalMethod string

const (
	WithdrawalBank   WithdrawalMethod = "bank"
	WithdrawalAirtel WithdrawalMethod = "airtel"
	WithdrawalMpamba WithdrawalMethod = "mpamba"
	WithdrawalPaypal WithdrawalMethod = "paypal"
)

// IsValid reports whether m is a known method
func (m WithdrawalMethod) IsValid() bool {
	switch m {
	case WithdrawalBank, WithdrawalAirtel, WithdrawalMpamba, WithdrawalPaypal:
		return true
	}
	return false
}

// Operator returns the mobile money operator for mobile methods
func (m WithdrawalMethod) Operator() (Operator, bool) {
	switch m {
	case WithdrawalAirtel:
		return OperatorAirtel, true
	case WithdrawalMpamba:
		return OperatorMpamba, true
	}
	return "", false
}

// WithdrawalStatus is the lifecycle state of a withdrawal
type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalProcessed WithdrawalStatus = "processed"
	WithdrawalFailed    WithdrawalStatus = "failed"
)

// IsFinal reports whether s is terminal
func (s WithdrawalStatus) IsFinal() bool {
	return s == WithdrawalProcessed || s == WithdrawalFailed
}

// Withdrawal is an outbound payout request from a client. It is not tied
// to any order or payment attempt.
type Withdrawal struct {
	shared.BaseAggregateRoot
	ClientID        uuid.UUID
	Amount          decimal.Decimal
	Method          WithdrawalMethod
	AccountInfo     string
	Status          WithdrawalStatus
	PayoutReference string
	FailureReason   string
	RawResponse     string
	ProcessedAt     *time.Time
}

// NewWithdrawal creates a pending withdrawal request
func NewWithdrawal(clientID uuid.UUID, amount decimal.Decimal, method WithdrawalMethod, accountInfo string) (*Withdrawal, error) {
	if clientID == uuid.Nil {
		return nil, shared.InvalidInput("client ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.InvalidInput("withdrawal amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.InvalidInput("unknown withdrawal method: " + string(method))
	}
	accountInfo = strings.TrimSpace(accountInfo)
	if accountInfo == "" {
		return nil, shared.InvalidInput("account_info is required")
	}
	return &Withdrawal{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Amount:            amount,
		Method:            method,
		AccountInfo:       accountInfo,
		Status:            WithdrawalPending,
	}, nil
}

// ErrWithdrawalSettled is returned when a settled withdrawal is changed again
var ErrWithdrawalSettled = shared.InvalidState("withdrawal request is already settled")

// MarkProcessed settles the withdrawal as paid out
func (w *Withdrawal) MarkProcessed(reference, rawResponse string) error {
	if w.Status.IsFinal() {
		return ErrWithdrawalSettled
	}
	w.settle(WithdrawalProcessed, rawResponse)
	w.PayoutReference = reference
	return nil
}

// MarkFailed settles the withdrawal as failed
func (w *Withdrawal) MarkFailed(reason, rawResponse string) error {
	if w.Status.IsFinal() {
		return ErrWithdrawalSettled
	}
	w.settle(WithdrawalFailed, rawResponse)
	w.FailureReason = reason
	return nil
}

func (w *Withdrawal) settle(to WithdrawalStatus, rawResponse string) {
	now := time.Now()
	w.Status = to
	w.RawResponse = rawResponse
	w.ProcessedAt = &now
	w.UpdatedAt = now
	w.BumpVersion()
}

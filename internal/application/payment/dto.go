package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// InitiateMobileInput is a mobile money checkout for one product
type InitiateMobileInput struct {
	AccountID uuid.UUID
	ProductID uuid.UUID
	Phone     string
	Provider  string
}

// InitiateCardInput is a card checkout for one product
type InitiateCardInput struct {
	AccountID      uuid.UUID
	ProductID      uuid.UUID
	CardNumber     string
	Expiry         string
	CVV            string
	CardholderName string
	RedirectURL    string
}

// ChargeOutcome is returned once the gateway accepted a charge
type ChargeOutcome struct {
	Status      string    `json:"status"`
	TxRef       string    `json:"tx_ref"`
	OrderID     uuid.UUID `json:"order_id"`
	RedirectURL string    `json:"redirect_url,omitempty"`
	Message     string    `json:"message"`
}

// VerifyOutcome reports an attempt's status after verification
type VerifyOutcome struct {
	Status  string     `json:"status"`
	TxRef   string     `json:"tx_ref"`
	OrderID *uuid.UUID `json:"order_id,omitempty"`
	Message string     `json:"message"`
}

// RequestWithdrawalInput creates a payout request
type RequestWithdrawalInput struct {
	Amount      decimal.Decimal
	Method      string
	AccountInfo string
}

// ProcessWithdrawalInput carries the manual payout reference for
// non-mobile methods
type ProcessWithdrawalInput struct {
	Reference string
}

// WithdrawalListFilter narrows withdrawal listings
type WithdrawalListFilter struct {
	Status   string
	Page     int
	PageSize int
}

// WithdrawalResponse represents a withdrawal request in API responses
type WithdrawalResponse struct {
	ID              uuid.UUID       `json:"id"`
	ClientID        uuid.UUID       `json:"client_id"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	AccountInfo     string          `json:"account_info"`
	Status          string          `json:"status"`
	PayoutReference string          `json:"payout_reference,omitempty"`
	FailureReason   string          `json:"failure_reason,omitempty"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToWithdrawalResponse converts a domain withdrawal to its response
func ToWithdrawalResponse(w *payment.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:              w.ID,
		ClientID:        w.ClientID,
		Amount:          w.Amount,
		Method:          string(w.Method),
		AccountInfo:     w.AccountInfo,
		Status:          string(w.Status),
		PayoutReference: w.PayoutReference,
		FailureReason:   w.FailureReason,
		ProcessedAt:     w.ProcessedAt,
		CreatedAt:       w.CreatedAt,
	}
}

func attemptOutcome(a *payment.Attempt) *VerifyOutcome {
	out := &VerifyOutcome{
		Status:  string(a.Status),
		TxRef:   a.TxRef,
		OrderID: a.OrderID,
	}
	switch a.Status {
	case payment.AttemptSuccess:
		out.Message = "Payment successful"
	case payment.AttemptFailed:
		out.Message = "Payment failed"
	default:
		out.Message = "Payment is still pending"
	}
	return out
}

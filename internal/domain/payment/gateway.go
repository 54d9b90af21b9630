package payment

import (
	"context"
	"strings"

	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Gateway error codes
const (
	CodeInvalidOperator    = "INVALID_OPERATOR"
	CodeGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	CodeGatewayDeclined    = "GATEWAY_DECLINED"
)

var (
	// ErrInvalidOperator is returned for an unrecognized mobile money operator
	ErrInvalidOperator = shared.NewDomainError(CodeInvalidOperator, "Invalid operator selected")
	// ErrGatewayUnavailable means the gateway could not be reached or its
	// response could not be read. The operation may be retried.
	ErrGatewayUnavailable = shared.NewDomainError(CodeGatewayUnavailable, "Payment gateway temporarily unavailable")
	// ErrGatewayDeclined means the gateway explicitly rejected the request
	ErrGatewayDeclined = shared.NewDomainError(CodeGatewayDeclined, "Payment was declined by the gateway")
)

// Channel is the rail a charge travels over
type Channel string

const (
	ChannelMobile Channel = "mobile"
	ChannelCard   Channel = "card"
)

// IsValid reports whether c is a known channel
func (c Channel) IsValid() bool {
	return c == ChannelMobile || c == ChannelCard
}

// String returns the channel name
func (c Channel) String() string {
	return string(c)
}

// ParseChannel accepts "card" or "mobile" (also "mobile_money"), case-insensitively
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "card":
		return ChannelCard, nil
	case "mobile", "mobile_money", "mobile-money":
		return ChannelMobile, nil
	}
	return "", shared.InvalidInput("unknown payment type: " + s)
}

// Operator is a mobile money network
type Operator string

const (
	OperatorAirtel Operator = "airtel"
	OperatorMpamba Operator = "mpamba"
)

// IsValid reports whether o is a known operator
func (o Operator) IsValid() bool {
	return o == OperatorAirtel || o == OperatorMpamba
}

// String returns the operator code
func (o Operator) String() string {
	return string(o)
}

// DisplayName returns the operator's customer-facing name
func (o Operator) DisplayName() string {
	switch o {
	case OperatorAirtel:
		return "Airtel Money"
	case OperatorMpamba:
		return "TNM Mpamba"
	}
	return string(o)
}

// ParseOperator maps a provider name as typed by a payer to an Operator.
// Matching ignores case and surrounding whitespace.
func ParseOperator(provider string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "airtel money", "airtel":
		return OperatorAirtel, nil
	case "tnm mpamba", "mpamba":
		return OperatorMpamba, nil
	}
	return "", ErrInvalidOperator
}

// OutcomeStatus is the normalized result of a gateway call
type OutcomeStatus string

const (
	OutcomeSuccess     OutcomeStatus = "success"
	OutcomeFailed      OutcomeStatus = "failed"
	OutcomePending     OutcomeStatus = "pending"
	OutcomeUnavailable OutcomeStatus = "unavailable"
)

// IsSuccess reports whether the outcome is success
func (s OutcomeStatus) IsSuccess() bool {
	return s == OutcomeSuccess
}

// String returns the outcome name
func (s OutcomeStatus) String() string {
	return string(s)
}

// Err returns the domain error matching a non-success outcome, or nil
func (s OutcomeStatus) Err() error {
	switch s {
	case OutcomeFailed:
		return ErrGatewayDeclined
	case OutcomeUnavailable:
		return ErrGatewayUnavailable
	}
	return nil
}

// MobileChargeRequest asks the gateway to collect from a mobile wallet
type MobileChargeRequest struct {
	Phone    string
	Operator Operator
	Amount   decimal.Decimal
	Currency string
	Email    string
}

// Validate validates the request
func (r *MobileChargeRequest) Validate() error {
	if strings.TrimSpace(r.Phone) == "" {
		return shared.InvalidInput("phone is required")
	}
	if !r.Operator.IsValid() {
		return ErrInvalidOperator
	}
	if !r.Amount.IsPositive() {
		return shared.InvalidInput("charge amount must be positive")
	}
	return nil
}

// CardDetails holds the payer's card. It is never persisted or logged.
type CardDetails struct {
	Number     string
	Expiry     string
	CVV        string
	HolderName string
}

// Digits returns the card number without grouping spaces or dashes
func (c CardDetails) Digits() string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(c.Number))
}

// Last4 returns the last four digits of the card number
func (c CardDetails) Last4() string {
	n := c.Digits()
	if len(n) < 4 {
		return n
	}
	return n[len(n)-4:]
}

// CardChargeRequest asks the gateway to charge a card
type CardChargeRequest struct {
	Card        CardDetails
	Amount      decimal.Decimal
	Currency    string
	Email       string
	RedirectURL string
}

// Validate validates the request
func (r *CardChargeRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Card.Number) == "":
		return shared.InvalidInput("card_number is required")
	case strings.TrimSpace(r.Card.Expiry) == "":
		return shared.InvalidInput("expiry is required")
	case strings.TrimSpace(r.Card.CVV) == "":
		return shared.InvalidInput("cvv is required")
	case strings.TrimSpace(r.Card.HolderName) == "":
		return shared.InvalidInput("cardholder_name is required")
	}
	if !r.Amount.IsPositive() {
		return shared.InvalidInput("charge amount must be positive")
	}
	return nil
}

// ChargeResult is the outcome of a charge initiation
type ChargeResult struct {
	Status      OutcomeStatus
	ExternalRef string
	Message     string
	RedirectURL string
	RawResponse string
}

// VerifyResult is the outcome of a charge verification
type VerifyResult struct {
	Status     OutcomeStatus
	Message    string
	RawPayload string
}

// PayoutRequest asks the gateway to send money to a mobile wallet
type PayoutRequest struct {
	Operator Operator
	Phone    string
	Amount   decimal.Decimal
}

// Validate validates the request
func (r *PayoutRequest) Validate() error {
	if !r.Operator.IsValid() {
		return ErrInvalidOperator
	}
	if strings.TrimSpace(r.Phone) == "" {
		return shared.InvalidInput("payout phone is required")
	}
	if !r.Amount.IsPositive() {
		return shared.InvalidInput("payout amount must be positive")
	}
	return nil
}

// PayoutResult is the outcome of a payout initiation
type PayoutResult struct {
	Status      OutcomeStatus
	Reference   string
	Message     string
	RawResponse string
}

// Gateway is the external payment API. Implementations never return a Go
// error for transport or decoding problems; they report
// OutcomeUnavailable so callers can persist state regardless.
// Validation problems are still returned as errors before any request.
type Gateway interface {
	InitiateMobileCharge(ctx context.Context, req MobileChargeRequest) (ChargeResult, error)
	InitiateCardCharge(ctx context.Context, req CardChargeRequest) (ChargeResult, error)
	VerifyCharge(ctx context.Context, externalRef string, channel Channel) VerifyResult
	InitiatePayout(ctx context.Context, req PayoutRequest) (PayoutResult, error)
}

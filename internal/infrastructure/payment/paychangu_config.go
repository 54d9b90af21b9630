package payment

import (
	"errors"
	"net/url"
	"time"

	"github.com/ikpixels/marketplace/internal/domain/payment"
)

const (
	// DefaultPayChanguBaseURL is the production API root
	DefaultPayChanguBaseURL = "https://api.paychangu.com"
	// DefaultPayChanguTimeout bounds every request to the gateway
	DefaultPayChanguTimeout = 30 * time.Second

	defaultAirtelOperatorRef = "20be6c20-adeb-4b5b-a7ba-0769820df4fb"
	defaultMpambaOperatorRef = "27494cb5-ba9e-437f-a114-4e7a7686bcca"
)

// PayChanguConfig configures the PayChangu adapter
type PayChanguConfig struct {
	// BaseURL is the API root without a trailing slash
	BaseURL string
	// SecretKey is sent as the bearer token on every call
	SecretKey string
	// Currency is the ISO code charged and paid out, MWK by default
	Currency string
	// Platform is echoed in charge metadata
	Platform string
	// Timeout is the per-request HTTP client timeout
	Timeout time.Duration
	// OperatorRefs maps each mobile money operator to its PayChangu ref id
	OperatorRefs map[payment.Operator]string
}

// Errors for configuration validation
var (
	ErrPayChanguMissingSecretKey = errors.New("paychangu: missing secret key")
	ErrPayChanguInvalidBaseURL   = errors.New("paychangu: invalid base URL")
	ErrPayChanguMissingCurrency  = errors.New("paychangu: missing currency")
	ErrPayChanguMissingOperator  = errors.New("paychangu: missing operator ref id")
)

// DefaultOperatorRefs returns the published ref ids for Airtel Money and TNM Mpamba
func DefaultOperatorRefs() map[payment.Operator]string {
	return map[payment.Operator]string{
		payment.OperatorAirtel: defaultAirtelOperatorRef,
		payment.OperatorMpamba: defaultMpambaOperatorRef,
	}
}

// Validate validates the configuration
func (c *PayChanguConfig) Validate() error {
	if c.SecretKey == "" {
		return ErrPayChanguMissingSecretKey
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrPayChanguInvalidBaseURL
	}
	if c.Currency == "" {
		return ErrPayChanguMissingCurrency
	}
	for _, op := range []payment.Operator{payment.OperatorAirtel, payment.OperatorMpamba} {
		if c.OperatorRefs[op] == "" {
			return ErrPayChanguMissingOperator
		}
	}
	return nil
}

func (c *PayChanguConfig) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultPayChanguBaseURL
	}
	if c.Currency == "" {
		c.Currency = "MWK"
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultPayChanguTimeout
	}
	if c.OperatorRefs == nil {
		c.OperatorRefs = DefaultOperatorRefs()
	}
}

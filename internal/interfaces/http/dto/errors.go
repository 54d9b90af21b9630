package dto

import (
	"net/http"

	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/ikpixels/marketplace/internal/domain/shared"
)

// Transport-level error codes. Domain codes come from the shared and
// payment packages and are passed through to clients unchanged.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeTokenExpired is used when the access token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the access token cannot be parsed or verified
	ErrCodeTokenInvalid = "INVALID_TOKEN"
	// ErrCodeTokenRevoked is used for tokens revoked by logout
	ErrCodeTokenRevoked = "TOKEN_REVOKED"
	// ErrCodeRateLimited is used when a client exceeds its request rate
	ErrCodeRateLimited = "RATE_LIMIT_EXCEEDED"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	// ErrCodeDuplicateRequest is used when an Idempotency-Key is reused
	// while the first request is in flight or after it succeeded
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Input
	shared.CodeInvalidInput:     http.StatusBadRequest,
	payment.CodeInvalidOperator: http.StatusBadRequest,
	ErrCodeBadRequest:           http.StatusBadRequest,

	// Auth
	shared.CodeUnauthorized:       http.StatusUnauthorized,
	shared.CodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:           http.StatusUnauthorized,
	ErrCodeTokenInvalid:           http.StatusUnauthorized,
	ErrCodeTokenRevoked:           http.StatusUnauthorized,
	shared.CodeForbidden:          http.StatusForbidden,

	// Resources
	shared.CodeNotFound:      http.StatusNotFound,
	shared.CodeAlreadyExists: http.StatusConflict,
	shared.CodeConcurrency:   http.StatusConflict,
	ErrCodeDuplicateRequest:  http.StatusConflict,

	// Business rules
	shared.CodeInvalidState: http.StatusUnprocessableEntity,

	// Gateway
	payment.CodeGatewayDeclined:    http.StatusPaymentRequired,
	payment.CodeGatewayUnavailable: http.StatusServiceUnavailable,

	// Limits
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsRetryable reports whether a client may retry the same request later
func IsRetryable(code string) bool {
	return code == payment.CodeGatewayUnavailable || code == ErrCodeRateLimited
}

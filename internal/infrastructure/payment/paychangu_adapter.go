package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"github.com/ikpixels/marketplace/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const (
	payChanguMobileChargePath = "/mobile-money/payments/initialize"
	payChanguCardChargePath   = "/charge-card/payments"
	payChanguCardVerifyPath   = "/charge-card/verify/%s"
	payChanguMobileVerifyPath = "/mobile-money/payments/%s/verify"
	payChanguPayoutPath       = "/mobile-money/payouts/initialize"

	// responses larger than this are truncated before parsing
	maxResponseBytes = 1 << 20
)

// PayChanguAdapter implements payment.Gateway against the PayChangu REST API
type PayChanguAdapter struct {
	config     PayChanguConfig
	httpClient *http.Client
	logger     *zap.Logger
}

var _ payment.Gateway = (*PayChanguAdapter)(nil)

// NewPayChanguAdapter creates a new PayChangu adapter
func NewPayChanguAdapter(cfg PayChanguConfig, log *zap.Logger) (*PayChanguAdapter, error) {
	cfg.applyDefaults()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PayChanguAdapter{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log.Named("paychangu"),
	}, nil
}

// InitiateMobileCharge asks the payer's wallet operator to collect the amount
func (a *PayChanguAdapter) InitiateMobileCharge(ctx context.Context, req payment.MobileChargeRequest) (payment.ChargeResult, error) {
	if err := req.Validate(); err != nil {
		return payment.ChargeResult{}, err
	}
	ref, err := a.operatorRef(req.Operator)
	if err != nil {
		return payment.ChargeResult{}, err
	}

	chargeID := uuid.NewString()
	body := mobileChargeBody{
		ChargeID:    chargeID,
		Mobile:      req.Phone,
		OperatorRef: ref,
		Amount:      json.Number(req.Amount.String()),
		Currency:    a.currency(req.Currency),
		Email:       req.Email,
	}
	if a.config.Platform != "" {
		body.Metadata = map[string]string{"platform": a.config.Platform}
	}

	log := logger.Enrich(ctx, a.logger).With(
		zap.String("charge_id", chargeID),
		zap.String("operator", req.Operator.String()),
		zap.String("phone", logger.MaskPhone(req.Phone)),
	)

	raw, env, err := a.call(ctx, http.MethodPost, payChanguMobileChargePath, body)
	if err != nil {
		log.Warn("Mobile charge request failed", zap.Error(err))
		return payment.ChargeResult{Status: payment.OutcomeUnavailable, Message: err.Error(), RawResponse: raw}, nil
	}

	result := payment.ChargeResult{RawResponse: raw, Message: env.message()}
	if env.Status != "success" {
		result.Status = payment.OutcomeFailed
		if result.Message == "" {
			result.Message = "Payment initialization failed"
		}
		log.Info("Mobile charge declined", zap.String("message", result.Message))
		return result, nil
	}

	var data mobileChargeData
	_ = json.Unmarshal(env.Data, &data)
	result.Status = payment.OutcomeSuccess
	result.ExternalRef = data.ChargeID
	if result.ExternalRef == "" {
		result.ExternalRef = chargeID
	}
	if result.Message == "" {
		result.Message = "Payment initialized successfully"
	}
	log.Info("Mobile charge initialized", zap.String("tx_ref", result.ExternalRef))
	return result, nil
}

// InitiateCardCharge submits card details; the payer may have to complete
// 3-D Secure at the returned redirect URL.
func (a *PayChanguAdapter) InitiateCardCharge(ctx context.Context, req payment.CardChargeRequest) (payment.ChargeResult, error) {
	if err := req.Validate(); err != nil {
		return payment.ChargeResult{}, err
	}

	chargeID := "charge_" + uuid.NewString()
	body := cardChargeBody{
		CardNumber:     req.Card.Digits(),
		Expiry:         req.Card.Expiry,
		CVV:            req.Card.CVV,
		CardholderName: req.Card.HolderName,
		Amount:         req.Amount.String(),
		Currency:       a.currency(req.Currency),
		Email:          req.Email,
		ChargeID:       chargeID,
		RedirectURL:    req.RedirectURL,
	}

	log := logger.Enrich(ctx, a.logger).With(
		zap.String("charge_id", chargeID),
		zap.String("card_last4", req.Card.Last4()),
	)

	raw, env, err := a.call(ctx, http.MethodPost, payChanguCardChargePath, body)
	if err != nil {
		log.Warn("Card charge request failed", zap.Error(err))
		return payment.ChargeResult{Status: payment.OutcomeUnavailable, Message: err.Error(), RawResponse: raw}, nil
	}

	result := payment.ChargeResult{RawResponse: raw, Message: env.message()}
	if env.Status != "success" {
		result.Status = payment.OutcomeFailed
		if result.Message == "" {
			result.Message = "Card payment initialization failed"
		}
		log.Info("Card charge declined", zap.String("message", result.Message))
		return result, nil
	}

	var data cardChargeData
	_ = json.Unmarshal(env.Data, &data)
	result.Status = payment.OutcomeSuccess
	result.ExternalRef = chargeID
	switch {
	case data.RedirectURL != "":
		result.RedirectURL = data.RedirectURL
	case data.Authorization.RedirectURL != "":
		result.RedirectURL = data.Authorization.RedirectURL
	default:
		result.RedirectURL = req.RedirectURL
	}
	if result.Message == "" {
		result.Message = "Card payment initialized successfully"
	}
	log.Info("Card charge initialized", zap.String("tx_ref", chargeID))
	return result, nil
}

// VerifyCharge asks PayChangu for the current state of a charge
func (a *PayChanguAdapter) VerifyCharge(ctx context.Context, externalRef string, channel payment.Channel) payment.VerifyResult {
	escaped := url.PathEscape(externalRef)
	path := fmt.Sprintf(payChanguMobileVerifyPath, escaped)
	if channel == payment.ChannelCard {
		path = fmt.Sprintf(payChanguCardVerifyPath, escaped)
	}

	log := logger.Enrich(ctx, a.logger).With(
		zap.String("tx_ref", externalRef),
		zap.String("channel", channel.String()),
	)

	raw, env, err := a.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		log.Warn("Verification request failed", zap.Error(err))
		return payment.VerifyResult{Status: payment.OutcomeUnavailable, Message: err.Error(), RawPayload: raw}
	}

	var data verifyData
	_ = json.Unmarshal(env.Data, &data)
	status := classifyVerification(env.Status, data.Status)
	log.Info("Charge verified",
		zap.String("status", status.String()),
		zap.String("gateway_status", data.Status),
	)
	return payment.VerifyResult{Status: status, Message: env.message(), RawPayload: raw}
}

// InitiatePayout sends money to a mobile wallet
func (a *PayChanguAdapter) InitiatePayout(ctx context.Context, req payment.PayoutRequest) (payment.PayoutResult, error) {
	if err := req.Validate(); err != nil {
		return payment.PayoutResult{}, err
	}
	ref, err := a.operatorRef(req.Operator)
	if err != nil {
		return payment.PayoutResult{}, err
	}

	chargeID := uuid.NewString()
	body := payoutBody{
		Amount:      json.Number(req.Amount.String()),
		Mobile:      req.Phone,
		OperatorRef: ref,
		Currency:    a.config.Currency,
		ChargeID:    chargeID,
	}

	log := logger.Enrich(ctx, a.logger).With(
		zap.String("charge_id", chargeID),
		zap.String("operator", req.Operator.String()),
		zap.String("phone", logger.MaskPhone(req.Phone)),
	)

	raw, env, err := a.call(ctx, http.MethodPost, payChanguPayoutPath, body)
	if err != nil {
		log.Warn("Payout request failed", zap.Error(err))
		return payment.PayoutResult{Status: payment.OutcomeUnavailable, Message: err.Error(), RawResponse: raw}, nil
	}

	var data payoutData
	_ = json.Unmarshal(env.Data, &data)
	result := payment.PayoutResult{
		Status:      classifyPayout(env.Status, data.Status),
		Reference:   chargeID,
		Message:     env.message(),
		RawResponse: raw,
	}
	if data.RefID != "" {
		result.Reference = data.RefID
	}
	log.Info("Payout initiated",
		zap.String("status", result.Status.String()),
		zap.String("reference", result.Reference),
	)
	return result, nil
}

func (a *PayChanguAdapter) operatorRef(op payment.Operator) (string, error) {
	ref, ok := a.config.OperatorRefs[op]
	if !ok || ref == "" {
		return "", payment.ErrInvalidOperator
	}
	return ref, nil
}

func (a *PayChanguAdapter) currency(requested string) string {
	if requested != "" {
		return requested
	}
	return a.config.Currency
}

// call performs one request and decodes the response envelope. The raw body
// is returned whenever one was read, even alongside an error. PayChangu
// reports declines as 4xx with a JSON envelope, which callers classify.
// Server errors and rejected credentials say nothing about the charge and
// are returned as errors.
func (a *PayChanguAdapter) call(ctx context.Context, method, path string, payload any) (_ string, _ *payChanguEnvelope, err error) {
	ctx, span := telemetry.StartClientSpan(ctx, "paychangu "+method, "http.request.method", method, "url.path", path)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return "", nil, fmt.Errorf("paychangu: failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.BaseURL+path, reqBody)
	if err != nil {
		return "", nil, fmt.Errorf("paychangu: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.SecretKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("paychangu: request failed: %w", err)
	}
	defer resp.Body.Close()
	telemetry.SetAttributes(span, "http.response.status_code", resp.StatusCode)

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", nil, fmt.Errorf("paychangu: failed to read response: %w", err)
	}
	raw := string(respBody)
	if !gatewayAnswered(resp.StatusCode) {
		return raw, nil, fmt.Errorf("paychangu: gateway error (HTTP %d)", resp.StatusCode)
	}

	var env payChanguEnvelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return raw, nil, fmt.Errorf("paychangu: unexpected response (HTTP %d): %w", resp.StatusCode, err)
	}
	return raw, &env, nil
}

// gatewayAnswered reports whether an HTTP status carries a verdict on the
// request itself.
func gatewayAnswered(code int) bool {
	switch {
	case code >= http.StatusInternalServerError:
		return false
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return false
	}
	return true
}

func classifyVerification(topStatus, dataStatus string) payment.OutcomeStatus {
	top := strings.ToLower(topStatus)
	switch strings.ToLower(dataStatus) {
	case "success", "successful", "completed":
		if top == "success" {
			return payment.OutcomeSuccess
		}
	case "failed", "cancelled", "canceled", "declined", "expired":
		return payment.OutcomeFailed
	}
	if top == "failed" {
		return payment.OutcomeFailed
	}
	return payment.OutcomePending
}

func classifyPayout(topStatus, dataStatus string) payment.OutcomeStatus {
	switch strings.ToLower(topStatus) {
	case "success":
		switch strings.ToLower(dataStatus) {
		case "failed", "cancelled", "canceled", "declined", "reversed":
			return payment.OutcomeFailed
		case "success", "successful", "completed":
			return payment.OutcomeSuccess
		}
		return payment.OutcomePending
	case "failed", "error":
		return payment.OutcomeFailed
	}
	return payment.OutcomePending
}

package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentapp "github.com/ikpixels/marketplace/internal/application/payment"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/interfaces/http/dto"
)

// statusFailed is the outer status of every rejected payment request
const statusFailed = "failed"

// CheckoutUseCases starts and confirms product charges
type CheckoutUseCases interface {
	InitiateMobileCharge(ctx context.Context, in paymentapp.InitiateMobileInput) (*paymentapp.ChargeOutcome, error)
	InitiateCardCharge(ctx context.Context, in paymentapp.InitiateCardInput) (*paymentapp.ChargeOutcome, error)
	VerifyCharge(ctx context.Context, txRef string) (*paymentapp.VerifyOutcome, error)
}

// PaymentHandler handles checkout and verification requests
type PaymentHandler struct {
	BaseHandler
	checkout CheckoutUseCases
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(checkout CheckoutUseCases) *PaymentHandler {
	return &PaymentHandler{checkout: checkout}
}

// MobileCharge godoc
// @ID           payMobile
// @Summary      Pay for a product with mobile money
// @Description  Creates or reuses the pending order and asks the gateway to push a payment prompt to the phone
// @Tags         payments
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        request body MobileChargeRequest true "Mobile money details"
// @Success      200 {object} PaymentResponse[paymentapp.ChargeOutcome]
// @Failure      400 {object} PaymentResponse[any]
// @Failure      402 {object} PaymentResponse[any]
// @Failure      404 {object} PaymentResponse[any]
// @Failure      503 {object} PaymentResponse[any]
// @Router       /pay/mobile/{product_id} [post]
func (h *PaymentHandler) MobileCharge(c *gin.Context) {
	buyer, err := accountID(c)
	if err != nil {
		h.paymentError(c, err)
		return
	}
	productID, err := pathUUID(c, "product_id")
	if err != nil {
		h.paymentError(c, err)
		return
	}
	var req MobileChargeRequest
	if err := c.ShouldBind(&req); err != nil {
		h.paymentBindError(c, err)
		return
	}

	outcome, err := h.checkout.InitiateMobileCharge(c.Request.Context(), paymentapp.InitiateMobileInput{
		AccountID: buyer,
		ProductID: productID,
		Phone:     strings.TrimSpace(req.Phone),
		Provider:  strings.TrimSpace(req.Provider),
	})
	if err != nil {
		h.paymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(outcome).WithStatus(outcome.Status))
}

// CardCharge godoc
// @ID           payCard
// @Summary      Pay for a product by card
// @Description  Creates or reuses the pending order and returns the gateway page the buyer completes the charge on
// @Tags         payments
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        request body CardChargeRequest true "Card details"
// @Success      200 {object} PaymentResponse[paymentapp.ChargeOutcome]
// @Failure      400 {object} PaymentResponse[any]
// @Failure      402 {object} PaymentResponse[any]
// @Failure      404 {object} PaymentResponse[any]
// @Failure      503 {object} PaymentResponse[any]
// @Router       /pay/card/{product_id} [post]
func (h *PaymentHandler) CardCharge(c *gin.Context) {
	buyer, err := accountID(c)
	if err != nil {
		h.paymentError(c, err)
		return
	}
	productID, err := pathUUID(c, "product_id")
	if err != nil {
		h.paymentError(c, err)
		return
	}
	var req CardChargeRequest
	if err := c.ShouldBind(&req); err != nil {
		h.paymentBindError(c, err)
		return
	}

	outcome, err := h.checkout.InitiateCardCharge(c.Request.Context(), paymentapp.InitiateCardInput{
		AccountID:      buyer,
		ProductID:      productID,
		CardNumber:     req.CardNumber,
		Expiry:         strings.TrimSpace(req.Expiry),
		CVV:            req.CVV,
		CardholderName: strings.TrimSpace(req.CardholderName),
		RedirectURL:    req.RedirectURL,
	})
	if err != nil {
		h.paymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(outcome).WithStatus(outcome.Status))
}

// Verify godoc
// @ID           verifyPayment
// @Summary      Verify a charge with the gateway
// @Description  Confirms the attempt identified by tx_ref and marks its order paid on success. Safe to call repeatedly.
// @Tags         payments
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        tx_ref path string true "Gateway transaction reference"
// @Param        request body VerifyRequest false "Channel hint"
// @Success      200 {object} PaymentResponse[paymentapp.VerifyOutcome]
// @Failure      404 {object} PaymentResponse[any]
// @Failure      503 {object} PaymentResponse[any]
// @Router       /pay/verify/{tx_ref} [post]
func (h *PaymentHandler) Verify(c *gin.Context) {
	txRef := strings.TrimSpace(c.Param("tx_ref"))
	if txRef == "" {
		h.paymentError(c, shared.InvalidInput("tx_ref is required"))
		return
	}
	var req VerifyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBind(&req); err != nil {
			h.paymentBindError(c, err)
			return
		}
	}

	outcome, err := h.checkout.VerifyCharge(c.Request.Context(), txRef)
	if err != nil {
		h.paymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(outcome).WithStatus(outcome.Status))
}

func (h *PaymentHandler) paymentError(c *gin.Context, err error) {
	status, resp := errorResponse(c, err)
	c.JSON(status, resp.WithStatus(statusFailed))
}

func (h *PaymentHandler) paymentBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, bindErrorResponse(c, err).WithStatus(statusFailed))
}

package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	paymentapp "github.com/ikpixels/marketplace/internal/application/payment"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// WithdrawalUseCases manages payout requests
type WithdrawalUseCases interface {
	RequestWithdrawal(ctx context.Context, accountID uuid.UUID, in paymentapp.RequestWithdrawalInput) (*paymentapp.WithdrawalResponse, error)
	ListMyWithdrawals(ctx context.Context, accountID uuid.UUID, f paymentapp.WithdrawalListFilter) (*shared.Paginated[paymentapp.WithdrawalResponse], error)
	ListWithdrawals(ctx context.Context, f paymentapp.WithdrawalListFilter) (*shared.Paginated[paymentapp.WithdrawalResponse], error)
	ProcessWithdrawal(ctx context.Context, id uuid.UUID, in paymentapp.ProcessWithdrawalInput) (*paymentapp.WithdrawalResponse, error)
	FailWithdrawal(ctx context.Context, id uuid.UUID, reason string) (*paymentapp.WithdrawalResponse, error)
}

// WithdrawalRequest asks for a payout of earned funds
type WithdrawalRequest struct {
	Amount      decimal.Decimal `json:"amount" form:"amount" swaggertype:"string" example:"15000.00"`
	Method      string          `json:"method" form:"method" binding:"required,oneof=bank airtel mpamba paypal"`
	AccountInfo string          `json:"account_info" form:"account_info" binding:"required,max=500"`
}

// WithdrawalListQuery filters withdrawal listings
type WithdrawalListQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending processed failed"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (q WithdrawalListQuery) filter() paymentapp.WithdrawalListFilter {
	return paymentapp.WithdrawalListFilter{Status: q.Status, Page: q.Page, PageSize: q.PageSize}
}

// ProcessWithdrawalRequest carries the manual transfer reference for bank
// and PayPal payouts
type ProcessWithdrawalRequest struct {
	Reference string `json:"reference" form:"reference" binding:"max=100"`
}

// FailWithdrawalRequest explains a rejected payout
type FailWithdrawalRequest struct {
	Reason string `json:"reason" form:"reason" binding:"required,max=500"`
}

// WithdrawalHandler handles payout requests
type WithdrawalHandler struct {
	BaseHandler
	withdrawals WithdrawalUseCases
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawals WithdrawalUseCases) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawals: withdrawals}
}

// Create godoc
// @ID           requestWithdrawal
// @Summary      Request a payout
// @Tags         withdrawals
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        request body WithdrawalRequest true "Payout details"
// @Success      201 {object} APIResponse[paymentapp.WithdrawalResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /withdrawals [post]
func (h *WithdrawalHandler) Create(c *gin.Context) {
	requester, err := accountID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req WithdrawalRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindError(c, err)
		return
	}

	w, err := h.withdrawals.RequestWithdrawal(c.Request.Context(), requester, paymentapp.RequestWithdrawalInput{
		Amount:      req.Amount,
		Method:      req.Method,
		AccountInfo: req.AccountInfo,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, w)
}

// ListMine godoc
// @ID           listMyWithdrawals
// @Summary      List my payout requests
// @Tags         withdrawals
// @Produce      json
// @Security     BearerAuth
// @Param        status    query string false "Status" Enums(pending, processed, failed)
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]paymentapp.WithdrawalResponse]
// @Router       /withdrawals [get]
func (h *WithdrawalHandler) ListMine(c *gin.Context) {
	requester, err := accountID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var q WithdrawalListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.withdrawals.ListMyWithdrawals(c.Request.Context(), requester, q.filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// List godoc
// @ID           adminListWithdrawals
// @Summary      List all payout requests
// @Tags         admin-withdrawals
// @Produce      json
// @Security     BearerAuth
// @Param        status    query string false "Status" Enums(pending, processed, failed)
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} APIResponse[[]paymentapp.WithdrawalResponse]
// @Router       /admin/withdrawals [get]
func (h *WithdrawalHandler) List(c *gin.Context) {
	var q WithdrawalListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.withdrawals.ListWithdrawals(c.Request.Context(), q.filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Process godoc
// @ID           adminProcessWithdrawal
// @Summary      Pay out a pending request
// @Description  Mobile money requests are paid through the gateway; bank and PayPal requests are marked processed with the given reference
// @Tags         admin-withdrawals
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Withdrawal ID" format(uuid)
// @Param        request body ProcessWithdrawalRequest false "Manual reference"
// @Success      200 {object} APIResponse[paymentapp.WithdrawalResponse]
// @Failure      402 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /admin/withdrawals/{id}/process [post]
func (h *WithdrawalHandler) Process(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req ProcessWithdrawalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBind(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	w, err := h.withdrawals.ProcessWithdrawal(c.Request.Context(), id, paymentapp.ProcessWithdrawalInput{Reference: req.Reference})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, w)
}

// Fail godoc
// @ID           adminFailWithdrawal
// @Summary      Reject a pending request
// @Tags         admin-withdrawals
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Withdrawal ID" format(uuid)
// @Param        request body FailWithdrawalRequest true "Reason"
// @Success      200 {object} APIResponse[paymentapp.WithdrawalResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /admin/withdrawals/{id}/fail [post]
func (h *WithdrawalHandler) Fail(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req FailWithdrawalRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindError(c, err)
		return
	}

	w, err := h.withdrawals.FailWithdrawal(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, w)
}

package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	supportapp "github.com/ikpixels/marketplace/internal/application/support"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/interfaces/http/middleware"
)

// ContactUseCases runs the contact inbox
type ContactUseCases interface {
	Submit(ctx context.Context, accountID *uuid.UUID, req supportapp.ContactRequest) (*supportapp.ContactResponse, error)
	List(ctx context.Context, f supportapp.ContactListFilter) (*shared.Paginated[supportapp.ContactResponse], error)
	MarkHandled(ctx context.Context, id uuid.UUID) (*supportapp.ContactResponse, error)
}

// ContactHandler handles contact form submissions and the admin inbox
type ContactHandler struct {
	BaseHandler
	contact ContactUseCases
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contact ContactUseCases) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Submit godoc
// @ID           submitContact
// @Summary      Send a message to the marketplace team
// @Description  Open to everyone; a bearer token, when sent, links the message to the sender's client
// @Tags         contact
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request body supportapp.ContactRequest true "Message"
// @Success      201 {object} APIResponse[supportapp.ContactResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req supportapp.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var sender *uuid.UUID
	if id, ok := middleware.GetAccountID(c); ok {
		sender = &id
	}
	msg, err := h.contact.Submit(c.Request.Context(), sender, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, msg)
}

// List godoc
// @ID           adminListContactMessages
// @Summary      List contact messages
// @Tags         admin-contact
// @Produce      json
// @Security     BearerAuth
// @Param        handled   query bool false "Only handled or only open messages"
// @Param        page      query int  false "Page number"
// @Param        page_size query int  false "Page size"
// @Success      200 {object} APIResponse[[]supportapp.ContactResponse]
// @Router       /admin/contact-messages [get]
func (h *ContactHandler) List(c *gin.Context) {
	var q supportapp.ContactListFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.contact.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// MarkHandled godoc
// @ID           adminHandleContactMessage
// @Summary      Mark a contact message handled
// @Tags         admin-contact
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Message ID" format(uuid)
// @Success      200 {object} APIResponse[supportapp.ContactResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /admin/contact-messages/{id}/handle [post]
func (h *ContactHandler) MarkHandled(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	msg, err := h.contact.MarkHandled(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, msg)
}

package handler

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	supportapp "github.com/ikpixels/marketplace/internal/application/support"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func registerContactRoutes(router *gin.Engine, contact *MockContact) *gin.Engine {
	h := NewContactHandler(contact)
	router.POST("/contact", h.Submit)
	router.GET("/admin/contact-messages", h.List)
	router.POST("/admin/contact-messages/:id/handle", h.MarkHandled)
	return router
}

func createTestContactResponse() *supportapp.ContactResponse {
	return &supportapp.ContactResponse{
		ID:        uuid.New(),
		Email:     "chikondi@example.mw",
		Subject:   "Custom build",
		Message:   "Can you build a school fees portal?",
		CreatedAt: time.Now(),
	}
}

func TestContactHandler_Submit_Anonymous(t *testing.T) {
	contact := new(MockContact)
	contact.On("Submit", mock.Anything, (*uuid.UUID)(nil), mock.MatchedBy(func(req supportapp.ContactRequest) bool {
		return req.Email == "chikondi@example.mw" && req.Subject == "Custom build"
	})).Return(createTestContactResponse(), nil)

	router := registerContactRoutes(gin.New(), contact)
	w := serveForm(router, http.MethodPost, "/contact", url.Values{
		"email":   {"chikondi@example.mw"},
		"subject": {"Custom build"},
		"message": {"Can you build a school fees portal?"},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	contact.AssertExpectations(t)
}

func TestContactHandler_Submit_SignedIn(t *testing.T) {
	contact := new(MockContact)
	contact.On("Submit", mock.Anything, mock.MatchedBy(func(id *uuid.UUID) bool {
		return id != nil && *id == testAccountID
	}), mock.Anything).Return(createTestContactResponse(), nil)

	router := registerContactRoutes(setupTestRouter(), contact)
	w := serveJSON(router, http.MethodPost, "/contact",
		strings.NewReader(`{"email":"chikondi@example.mw","message":"Hello"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	contact.AssertExpectations(t)
}

func TestContactHandler_Submit_Validation(t *testing.T) {
	contact := new(MockContact)
	router := registerContactRoutes(gin.New(), contact)

	w := serveJSON(router, http.MethodPost, "/contact", strings.NewReader(`{"email":"not-an-email"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	fields := make([]string, 0)
	for _, d := range resp.Error.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"email", "message"}, fields)
	contact.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactHandler_List(t *testing.T) {
	contact := new(MockContact)
	contact.On("List", mock.Anything, mock.MatchedBy(func(f supportapp.ContactListFilter) bool {
		return f.Handled != nil && !*f.Handled && f.Page == 1
	})).Return(&shared.Paginated[supportapp.ContactResponse]{
		Items: []supportapp.ContactResponse{*createTestContactResponse()}, Total: 1, Page: 1, PageSize: 20, TotalPages: 1,
	}, nil)

	router := registerContactRoutes(setupTestRouter(), contact)
	w := serveJSON(router, http.MethodGet, "/admin/contact-messages?handled=false&page=1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Len(t, resp.Data, 1)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestContactHandler_MarkHandled(t *testing.T) {
	contact := new(MockContact)
	msg := createTestContactResponse()
	msg.Handled = true
	contact.On("MarkHandled", mock.Anything, msg.ID).Return(msg, nil).Once()
	contact.On("MarkHandled", mock.Anything, msg.ID).Return(nil, shared.InvalidState("contact message is already handled"))

	router := registerContactRoutes(setupTestRouter(), contact)
	path := "/admin/contact-messages/" + msg.ID.String() + "/handle"

	w := serveJSON(router, http.MethodPost, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeResponse(t, w).Data.(map[string]any)["handled"])

	w = serveJSON(router, http.MethodPost, path, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

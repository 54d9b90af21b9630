package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/interfaces/http/dto"
	"github.com/ikpixels/marketplace/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var testAccountID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// setupTestRouter returns an engine whose requests are authenticated as
// testAccountID
func setupTestRouter() *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.JWTAccountIDKey, testAccountID)
		c.Next()
	})
	return router
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func serveJSON(router *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func serveForm(router *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name:       "from context",
			setup:      func(c *gin.Context) { c.Set(middleware.RequestIDKey, "ctx-request-id") },
			expectedID: "ctx-request-id",
		},
		{
			name:       "from header when context empty",
			setup:      func(c *gin.Context) { c.Request.Header.Set(middleware.RequestIDHeader, "header-request-id") },
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set(middleware.RequestIDKey, "ctx-id")
				c.Request.Header.Set(middleware.RequestIDHeader, "header-id")
			},
			expectedID: "ctx-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(c)
			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestAccountID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := accountID(c)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)

	c.Set(middleware.JWTAccountIDKey, testAccountID)
	id, err := accountID(c)
	require.NoError(t, err)
	assert.Equal(t, testAccountID, id)
}

func TestPathUUID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, err := pathUUID(c, "id")
	require.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Contains(t, err.Error(), "invalid id")

	want := uuid.New()
	c.Params = gin.Params{{Key: "id", Value: want.String()}}
	got, err := pathUUID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBaseHandlerSuccessResponses(t *testing.T) {
	h := &BaseHandler{}

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		h.Success(c, gin.H{"message": "ok"})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		assert.Nil(t, resp.Error)
	})

	t.Run("with meta", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		h.SuccessWithMeta(c, []string{"a", "b"}, 25, 2, 10)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(25), resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("created", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		h.Created(c, gin.H{"id": "1"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("no content", func(t *testing.T) {
		router := gin.New()
		router.DELETE("/x", func(c *gin.Context) { h.NoContent(c) })
		w := serveJSON(router, http.MethodDelete, "/x", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
		retryable    bool
	}{
		{"not found", shared.NotFound("Product"), http.StatusNotFound, shared.CodeNotFound, false},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict, shared.CodeAlreadyExists, false},
		{"invalid input", shared.InvalidInput("phone is required"), http.StatusBadRequest, shared.CodeInvalidInput, false},
		{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized, shared.CodeUnauthorized, false},
		{"invalid credentials", shared.ErrInvalidCredentials, http.StatusUnauthorized, shared.CodeInvalidCredentials, false},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, shared.CodeForbidden, false},
		{"invalid state", shared.InvalidState("already processed"), http.StatusUnprocessableEntity, shared.CodeInvalidState, false},
		{"concurrency", shared.ErrConcurrencyConflict, http.StatusConflict, shared.CodeConcurrency, false},
		{"invalid operator", payment.ErrInvalidOperator, http.StatusBadRequest, payment.CodeInvalidOperator, false},
		{"gateway declined", payment.ErrGatewayDeclined, http.StatusPaymentRequired, payment.CodeGatewayDeclined, false},
		{"gateway unavailable", payment.ErrGatewayUnavailable, http.StatusServiceUnavailable, payment.CodeGatewayUnavailable, true},
		{"wrapped domain error", fmt.Errorf("checkout: %w", shared.NotFound("Product")), http.StatusNotFound, shared.CodeNotFound, false},
		{"plain error", assert.AnError, http.StatusInternalServerError, dto.ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Set(middleware.RequestIDKey, "req-42")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
			assert.Equal(t, "req-42", resp.Error.RequestID)
			assert.Equal(t, tt.retryable, resp.Error.Retryable)
			assert.Len(t, c.Errors, 1)
		})
	}
}

func TestBaseHandlerHandleError_HidesInternalText(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(c, fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused"))

	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestBaseHandlerHandleError_Nil(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.HandleError(c, nil)

	assert.Empty(t, w.Body.String())
	assert.Empty(t, c.Errors)
}

func TestBaseHandlerBindError(t *testing.T) {
	type form struct {
		Phone    string `json:"phone" binding:"required,mwphone"`
		Provider string `json:"provider" binding:"required"`
	}
	h := &BaseHandler{}
	router := gin.New()
	router.POST("/bind", func(c *gin.Context) {
		var req form
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
		h.Success(c, req)
	})

	t.Run("each missing field is named", func(t *testing.T) {
		w := serveJSON(router, http.MethodPost, "/bind", strings.NewReader(`{}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, shared.CodeInvalidInput, resp.Error.Code)
		assert.Equal(t, "phone: This field is required", resp.Error.Message)
		require.Len(t, resp.Error.Details, 2)
		assert.Equal(t, "provider", resp.Error.Details[1].Field)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := serveJSON(router, http.MethodPost, "/bind", strings.NewReader(`{"phone":`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})
}

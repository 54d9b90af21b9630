package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/ikpixels/marketplace/internal/application/identity"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/auth"
	"github.com/ikpixels/marketplace/internal/interfaces/http/middleware"
)

// AuthUseCases is the account side of the identity service
type AuthUseCases interface {
	Register(ctx context.Context, in identityapp.RegisterInput) (*identityapp.AuthResult, error)
	Login(ctx context.Context, in identityapp.LoginInput) (*identityapp.AuthResult, error)
	Refresh(ctx context.Context, in identityapp.RefreshInput) (*identityapp.AuthResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, accountID uuid.UUID) (*identityapp.ProfileResponse, error)
	UpdateProfile(ctx context.Context, accountID uuid.UUID, in identityapp.UpdateProfileInput) (*identityapp.ProfileResponse, error)
}

// AuthHandler handles sign-up, sign-in and profile requests
type AuthHandler struct {
	BaseHandler
	auth AuthUseCases
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthUseCases) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register godoc
// @ID           registerAccount
// @Summary      Register an account
// @Description  Creates an account and its client profile and returns a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.RegisterInput true "Registration form"
// @Success      201 {object} APIResponse[identityapp.AuthResult]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Login godoc
// @ID           loginAccount
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginInput true "Credentials"
// @Success      200 {object} APIResponse[identityapp.AuthResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh godoc
// @ID           refreshToken
// @Summary      Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.RefreshInput true "Refresh token"
// @Success      200 {object} APIResponse[identityapp.AuthResult]
// @Failure      401 {object} ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout godoc
// @ID           logoutAccount
// @Summary      Revoke the current access token
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Me godoc
// @ID           getProfile
// @Summary      Current account profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[identityapp.ProfileResponse]
// @Failure      401 {object} ErrorResponse
// @Router       /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	id, err := accountID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	profile, err := h.auth.Me(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateProfile godoc
// @ID           updateProfile
// @Summary      Update contact details
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body identityapp.UpdateProfileInput true "Profile fields"
// @Success      200 {object} APIResponse[identityapp.ProfileResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /me [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	id, err := accountID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req identityapp.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	profile, err := h.auth.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/identity"
	"github.com/ikpixels/marketplace/internal/infrastructure/auth"
)

// RegisterInput is the sign-up form
type RegisterInput struct {
	Username        string `json:"username" binding:"required,max=150"`
	Email           string `json:"email" binding:"omitempty,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name" binding:"max=150"`
	LastName        string `json:"last_name" binding:"max=150"`
}

// LoginInput is the sign-in form
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshInput carries a refresh token
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileInput replaces the client's contact details
type UpdateProfileInput struct {
	Phone     string `json:"phone" binding:"max=20"`
	District  string `json:"district" binding:"max=100"`
	Location  string `json:"location"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
}

// AuthResult is returned by Register, Login and Refresh
type AuthResult struct {
	AccessToken           string          `json:"access_token"`
	RefreshToken          string          `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time       `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time       `json:"refresh_token_expires_at"`
	TokenType             string          `json:"token_type"`
	Profile               ProfileResponse `json:"profile"`
}

// ProfileResponse is the account together with its client profile
type ProfileResponse struct {
	AccountID  uuid.UUID  `json:"account_id"`
	ClientID   uuid.UUID  `json:"client_id"`
	Username   string     `json:"username"`
	Email      string     `json:"email,omitempty"`
	FullName   string     `json:"full_name"`
	FirstName  string     `json:"first_name,omitempty"`
	LastName   string     `json:"last_name,omitempty"`
	IsAdmin    bool       `json:"is_admin"`
	Phone      string     `json:"phone,omitempty"`
	District   string     `json:"district,omitempty"`
	Location   string     `json:"location,omitempty"`
	IsVerified bool       `json:"is_verified"`
	JoinDate   time.Time  `json:"join_date"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

func toProfileResponse(a *identity.Account, c *identity.Client) ProfileResponse {
	return ProfileResponse{
		AccountID:  a.ID,
		ClientID:   c.ID,
		Username:   a.Username,
		Email:      a.Email,
		FullName:   a.FullName(),
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		IsAdmin:    a.IsAdmin,
		Phone:      c.Phone,
		District:   c.District,
		Location:   c.Location,
		IsVerified: c.IsVerified,
		JoinDate:   c.JoinDate,
		LastLogin:  a.LastLoginAt,
	}
}

func toAuthResult(pair *auth.TokenPair, profile ProfileResponse) *AuthResult {
	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		Profile:               profile,
	}
}

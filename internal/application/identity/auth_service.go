// Package identity implements sign-up, sign-in and profile management.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/domain/identity"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/auth"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrInvalidRefreshToken is returned for a bad, expired or revoked refresh token
var ErrInvalidRefreshToken = shared.NewDomainError(shared.CodeUnauthorized, "Invalid or expired refresh token")

// TokenIssuer issues and validates token pairs
type TokenIssuer interface {
	GenerateTokenPair(sub auth.Subject) (*auth.TokenPair, error)
	ValidateRefreshToken(token string) (*auth.Claims, error)
}

// AuthService handles registration, login and logout
type AuthService struct {
	accounts  identity.AccountRepository
	clients   *ClientService
	tokens    TokenIssuer
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	accounts identity.AccountRepository,
	clients *ClientService,
	tokens TokenIssuer,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accounts:  accounts,
		clients:   clients,
		tokens:    tokens,
		blacklist: blacklist,
		logger:    logger.Named("auth"),
	}
}

// Register creates an account with its client profile and signs it in
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, shared.InvalidInput("username is required")
	}
	if in.Password == "" {
		return nil, shared.InvalidInput("password is required")
	}
	if in.Password != in.ConfirmPassword {
		return nil, shared.InvalidInput("passwords do not match")
	}

	exists, err := s.accounts.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "username is already taken")
	}

	account, err := identity.NewAccount(username, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	account.SetName(in.FirstName, in.LastName)
	account.RecordLogin()
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, err
	}

	// A missing client is recreated lazily, so this need not share a
	// transaction with the account insert.
	client, err := s.clients.EnsureClient(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("create client profile: %w", err)
	}

	logger.Enrich(ctx, s.logger).Info("Account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("username", account.Username))
	return s.issue(account, client)
}

// Login verifies credentials. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	log := logger.Enrich(ctx, s.logger).With(zap.String("username", in.Username))

	account, err := s.accounts.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Warn("Login for unknown username")
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if !account.VerifyPassword(in.Password) {
		log.Warn("Invalid password attempt")
		return nil, shared.ErrInvalidCredentials
	}

	client, err := s.clients.EnsureClient(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve client profile: %w", err)
	}

	account.RecordLogin()
	if err := s.accounts.Save(ctx, account); err != nil {
		log.Error("Failed to record login", zap.Error(err))
	}

	log.Info("Account logged in", zap.String("account_id", account.ID.String()))
	return s.issue(account, client)
}

// Refresh exchanges a valid refresh token for a new pair. The presented
// refresh token is revoked.
func (s *AuthService) Refresh(ctx context.Context, in RefreshInput) (*AuthResult, error) {
	claims, err := s.tokens.ValidateRefreshToken(in.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check refresh token: %w", err)
	}
	if revoked {
		return nil, ErrInvalidRefreshToken
	}
	accountID, err := claims.AccountUUID()
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	client, err := s.clients.EnsureClient(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve client profile: %w", err)
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}
	return s.issue(account, client)
}

// Logout revokes the access token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return shared.ErrUnauthorized
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	logger.Enrich(ctx, s.logger).Info("Account logged out", zap.String("account_id", claims.AccountID))
	return nil
}

// Me returns the caller's profile
func (s *AuthService) Me(ctx context.Context, accountID uuid.UUID) (*ProfileResponse, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.EnsureClient(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	resp := toProfileResponse(account, client)
	return &resp, nil
}

// UpdateProfile replaces the caller's contact details and name
func (s *AuthService) UpdateProfile(ctx context.Context, accountID uuid.UUID, in UpdateProfileInput) (*ProfileResponse, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.EnsureClient(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	if err := client.UpdateContact(in.Phone, in.District, in.Location); err != nil {
		return nil, err
	}
	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	if in.FirstName != account.FirstName || in.LastName != account.LastName {
		account.SetName(in.FirstName, in.LastName)
		if err := s.accounts.Save(ctx, account); err != nil {
			return nil, err
		}
	}

	resp := toProfileResponse(account, client)
	return &resp, nil
}

func (s *AuthService) issue(account *identity.Account, client *identity.Client) (*AuthResult, error) {
	clientID := client.ID
	pair, err := s.tokens.GenerateTokenPair(auth.Subject{
		AccountID: account.ID,
		ClientID:  &clientID,
		Username:  account.Username,
		IsAdmin:   account.IsAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return toAuthResult(pair, toProfileResponse(account, client)), nil
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/infrastructure/auth"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"github.com/ikpixels/marketplace/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey    = "jwt_claims"
	JWTAccountIDKey = "jwt_account_id"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
)

// AccessTokenValidator validates bearer access tokens
type AccessTokenValidator interface {
	ValidateAccessToken(tokenString string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// Tokens is required for token validation
	Tokens AccessTokenValidator
	// Blacklist is optional; revoked token IDs are rejected when set
	Blacklist auth.TokenBlacklist
	// Logger for middleware logging
	Logger *zap.Logger
}

// JWTAuth requires a valid, unrevoked access token and stores its claims
// on the gin context. The account and client IDs are also attached to the
// request context so service logs carry them.
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, log, auth.ErrInvalidToken, "Missing or malformed authorization header")
			return
		}

		claims, err := cfg.Tokens.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, log, err, "Token validation failed")
			return
		}
		accountID, err := claims.AccountUUID()
		if err != nil {
			abortUnauthorized(c, log, auth.ErrInvalidClaims, "Malformed account_id claim")
			return
		}

		if cfg.Blacklist != nil && claims.ID != "" {
			revoked, err := cfg.Blacklist.IsRevoked(c.Request.Context(), claims.ID)
			switch {
			case err != nil:
				// Fail open: a blacklist outage must not lock every buyer out
				log.Error("Failed to check token blacklist", zap.String("jti", claims.ID), zap.Error(err))
			case revoked:
				abortUnauthorized(c, log, auth.ErrTokenBlacklisted, "Token has been revoked")
				return
			}
		}

		attachClaims(c, claims, accountID)
		c.Next()
	}
}

// OptionalJWTAuth attaches the caller's claims when a valid, unrevoked
// access token is presented and lets every other request through as
// anonymous.
func OptionalJWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		claims, err := cfg.Tokens.ValidateAccessToken(tokenString)
		if err != nil {
			log.Debug("Ignoring invalid optional token", zap.Error(err))
			c.Next()
			return
		}
		accountID, err := claims.AccountUUID()
		if err != nil {
			c.Next()
			return
		}
		if cfg.Blacklist != nil && claims.ID != "" {
			if revoked, err := cfg.Blacklist.IsRevoked(c.Request.Context(), claims.ID); err == nil && revoked {
				c.Next()
				return
			}
		}

		attachClaims(c, claims, accountID)
		c.Next()
	}
}

func attachClaims(c *gin.Context, claims *auth.Claims, accountID uuid.UUID) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTAccountIDKey, accountID)

	ctx := logger.WithAccountID(c.Request.Context(), claims.AccountID)
	if claims.ClientID != "" {
		ctx = logger.WithClientID(ctx, claims.ClientID)
	}
	c.Request = c.Request.WithContext(ctx)
}

// RequireAdmin rejects authenticated callers without the admin flag.
// It must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				"UNAUTHORIZED", "Authentication required", GetRequestID(c)))
			return
		}
		if !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				"FORBIDDEN", "Administrator access required", GetRequestID(c)))
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, err error, reason string) {
	log.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
	)

	code, message := "UNAUTHORIZED", "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		code, message = dto.ErrCodeTokenRevoked, "Token has been revoked"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingAccountID):
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, GetRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetAccountID returns the authenticated account ID
func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	if v, exists := c.Get(JWTAccountIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ikpixels/marketplace/internal/infrastructure/auth"
	"github.com/ikpixels/marketplace/internal/infrastructure/config"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"github.com/ikpixels/marketplace/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "marketplace-test",
	})
}

func newTestSubject(admin bool) auth.Subject {
	clientID := uuid.New()
	return auth.Subject{
		AccountID: uuid.New(),
		ClientID:  &clientID,
		Username:  "buyer",
		IsAdmin:   admin,
	}
}

func newJWTRouter(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), JWTAuth(JWTMiddlewareConfig{Tokens: jwtService, Blacklist: blacklist}))
	router.Use(extra...)
	router.GET("/test", func(c *gin.Context) {
		accountID, _ := GetAccountID(c)
		c.JSON(http.StatusOK, gin.H{
			"account_id":     accountID.String(),
			"ctx_account_id": logger.GetAccountID(c.Request.Context()),
			"ctx_client_id":  logger.GetClientID(c.Request.Context()),
		})
	})
	return router
}

func serveWithToken(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	sub := newTestSubject(false)
	pair, err := jwtService.GenerateTokenPair(sub)
	require.NoError(t, err)

	w := serveWithToken(newJWTRouter(jwtService, nil), pair.AccessToken)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, sub.AccountID.String(), body["account_id"])
	assert.Equal(t, sub.AccountID.String(), body["ctx_account_id"])
	assert.Equal(t, sub.ClientID.String(), body["ctx_client_id"])
}

func TestJWTAuth_Rejections(t *testing.T) {
	jwtService := newTestJWTService()
	pair, err := jwtService.GenerateTokenPair(newTestSubject(false))
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		wantCode string
	}{
		{"missing header", "", "UNAUTHORIZED"},
		{"garbage token", "not-a-jwt", dto.ErrCodeTokenInvalid},
		{"refresh token used as access", pair.RefreshToken, dto.ErrCodeTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveWithToken(newJWTRouter(jwtService, nil), tt.token)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			errInfo := decodeError(t, w)
			assert.Equal(t, tt.wantCode, errInfo.Code)
			assert.NotEmpty(t, errInfo.RequestID)
		})
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "marketplace-test",
	})
	pair, err := expired.GenerateTokenPair(newTestSubject(false))
	require.NoError(t, err)

	w := serveWithToken(newJWTRouter(newTestJWTService(), nil), pair.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenExpired, decodeError(t, w).Code)
}

func TestJWTAuth_RevokedToken(t *testing.T) {
	jwtService := newTestJWTService()
	pair, err := jwtService.GenerateTokenPair(newTestSubject(false))
	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	blacklist := auth.NewInMemoryTokenBlacklist()
	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Minute))

	w := serveWithToken(newJWTRouter(jwtService, blacklist), pair.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenRevoked, decodeError(t, w).Code)
}

func TestRequireAdmin(t *testing.T) {
	jwtService := newTestJWTService()

	t.Run("admin passes", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair(newTestSubject(true))
		require.NoError(t, err)

		w := serveWithToken(newJWTRouter(jwtService, nil, RequireAdmin()), pair.AccessToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair(newTestSubject(false))
		require.NoError(t, err)

		w := serveWithToken(newJWTRouter(jwtService, nil, RequireAdmin()), pair.AccessToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", decodeError(t, w).Code)
	})

	t.Run("without claims", func(t *testing.T) {
		router := gin.New()
		router.Use(RequireAdmin())
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := serveWithToken(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalJWTAuth(t *testing.T) {
	jwtService := newTestJWTService()
	sub := newTestSubject(false)
	pair, err := jwtService.GenerateTokenPair(sub)
	require.NoError(t, err)

	revokedPair, err := jwtService.GenerateTokenPair(newTestSubject(false))
	require.NoError(t, err)
	revokedClaims, err := jwtService.ValidateAccessToken(revokedPair.AccessToken)
	require.NoError(t, err)
	blacklist := auth.NewInMemoryTokenBlacklist()
	require.NoError(t, blacklist.Revoke(context.Background(), revokedClaims.ID, time.Minute))

	router := gin.New()
	router.Use(OptionalJWTAuth(JWTMiddlewareConfig{Tokens: jwtService, Blacklist: blacklist}))
	router.GET("/test", func(c *gin.Context) {
		id, ok := GetAccountID(c)
		c.JSON(http.StatusOK, gin.H{"signed_in": ok, "account_id": id.String()})
	})

	tests := []struct {
		name         string
		token        string
		wantSignedIn bool
	}{
		{"anonymous", "", false},
		{"valid token", pair.AccessToken, true},
		{"garbage token", "not-a-jwt", false},
		{"revoked token", revokedPair.AccessToken, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveWithToken(router, tt.token)

			require.Equal(t, http.StatusOK, w.Code)
			var body struct {
				SignedIn  bool   `json:"signed_in"`
				AccountID string `json:"account_id"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantSignedIn, body.SignedIn)
			if tt.wantSignedIn {
				assert.Equal(t, sub.AccountID.String(), body.AccountID)
			}
		})
	}
}

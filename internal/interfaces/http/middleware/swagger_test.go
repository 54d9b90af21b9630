package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikpixels/marketplace/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveSwagger(cfg config.SwaggerConfig, auth gin.HandlerFunc, remoteAddr, token string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg, auth), func(c *gin.Context) {
		c.String(http.StatusOK, "swagger")
	})

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSwaggerProtection_Disabled(t *testing.T) {
	w := serveSwagger(config.SwaggerConfig{Enabled: false}, nil, "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestSwaggerProtection_Open(t *testing.T) {
	w := serveSwagger(config.SwaggerConfig{Enabled: true}, nil, "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "swagger", w.Body.String())
}

func TestSwaggerProtection_AllowList(t *testing.T) {
	cfg := config.SwaggerConfig{
		Enabled:    true,
		AllowedIPs: []string{"127.0.0.1", "10.0.0.0/8", "not-an-ip", "::1"},
	}

	tests := []struct {
		name       string
		remoteAddr string
		want       int
	}{
		{"exact address", "127.0.0.1:5000", http.StatusOK},
		{"inside CIDR", "10.20.30.40:5000", http.StatusOK},
		{"ipv6 loopback", "[::1]:5000", http.StatusOK},
		{"outside list", "192.168.1.10:5000", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serveSwagger(cfg, nil, tt.remoteAddr, "").Code)
		})
	}
}

func TestSwaggerProtection_RequireAuth(t *testing.T) {
	jwtService := newTestJWTService()
	auth := JWTAuth(JWTMiddlewareConfig{Tokens: jwtService})
	cfg := config.SwaggerConfig{Enabled: true, RequireAuth: true}

	assert.Equal(t, http.StatusUnauthorized, serveSwagger(cfg, auth, "", "").Code)

	pair, err := jwtService.GenerateTokenPair(newTestSubject(true))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, serveSwagger(cfg, auth, "", pair.AccessToken).Code)
}

func TestParseAllowList(t *testing.T) {
	prefixes := parseAllowList([]string{" 192.168.0.0/16 ", "10.1.1.1", "bogus", "300.1.1.1"})

	require.Len(t, prefixes, 2)
	assert.True(t, ipAllowed("192.168.4.4", prefixes))
	assert.True(t, ipAllowed("10.1.1.1", prefixes))
	assert.False(t, ipAllowed("10.1.1.2", prefixes))
	assert.False(t, ipAllowed("garbage", prefixes))
}

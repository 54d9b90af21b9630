package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikpixels/marketplace/internal/infrastructure/cache"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"github.com/ikpixels/marketplace/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries the client-chosen key of a retryable request
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

// IdempotencyConfig configures the Idempotency middleware
type IdempotencyConfig struct {
	Store  cache.IdempotencyStore
	TTL    time.Duration
	Logger *zap.Logger
}

// Idempotency rejects a repeated Idempotency-Key with 409 so a double
// submitted checkout does not reach the gateway twice. Keys are scoped to
// the authenticated account and route. A request that ends with an error
// status releases its key so the buyer can retry with it. Requests without
// the header pass through, and a store failure lets the request proceed.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = cache.DefaultIdempotencyTTL
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" || cfg.Store == nil {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrCodeBadRequest,
				"Idempotency-Key cannot exceed 128 characters",
				GetRequestID(c),
			).WithStatus("failed"))
			return
		}

		scoped := c.FullPath() + ":" + key
		if accountID, ok := GetAccountID(c); ok {
			scoped = accountID.String() + ":" + scoped
		}

		ctx := c.Request.Context()
		claimed, err := cfg.Store.Claim(ctx, scoped, ttl)
		if err != nil {
			logger.Enrich(ctx, log).Warn("Idempotency store unavailable, processing request anyway", zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(
				dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key was already submitted",
				GetRequestID(c),
			).WithStatus("failed"))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := cfg.Store.Release(ctx, scoped); err != nil {
				logger.Enrich(ctx, log).Warn("Failed to release idempotency key", zap.Error(err))
			}
		}
	}
}

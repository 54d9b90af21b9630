package cache

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// inMemoryCleanupInterval is how often the in-memory fallback drops
// expired keys
const inMemoryCleanupInterval = 5 * time.Minute

// NewIdempotencyStore returns a Redis-backed store when client is set and
// falls back to an in-memory store otherwise. The fallback only
// deduplicates requests that reach the same instance.
func NewIdempotencyStore(client redis.UniversalClient, log *zap.Logger) IdempotencyStore {
	if log == nil {
		log = zap.NewNop()
	}
	if client != nil {
		log.Info("Using Redis idempotency store")
		return NewRedisIdempotencyStore(client)
	}
	log.Warn("Redis disabled, using in-memory idempotency store; retries reaching another instance are not deduplicated")
	return NewInMemoryIdempotencyStore(inMemoryCleanupInterval)
}

// Package cache holds short-lived shared state: the idempotency keys that
// stop a retried payment request from charging the buyer twice.
package cache

import (
	"context"
	"time"
)

// DefaultIdempotencyTTL is how long a claimed request key is remembered
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers request keys for a TTL
type IdempotencyStore interface {
	// Claim records key. It returns false when key is already held and
	// has not expired.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release forgets key so the same request may be sent again
	Release(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}

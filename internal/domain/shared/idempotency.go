package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys that were already claimed, so that a
// replayed request (e.g. a duplicated payment confirmation) is processed once.
type IdempotencyStore interface {
	// MarkProcessed claims the key with a TTL.
	// Returns true if the key was newly claimed, false if it was already claimed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been claimed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release drops a claim, used when the guarded work failed and may be retried
	Release(ctx context.Context, key string) error

	Close() error
}

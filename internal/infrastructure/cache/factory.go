package cache

import (
	"github.com/redis/go-redis/v9"
	"github.com/renztrending/backend/internal/application/catalog"
	"github.com/renztrending/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Stores bundles the Redis-or-memory components the server needs
type Stores struct {
	Idempotency shared.IdempotencyStore
	Products    catalog.ProductCache
}

// NewStores picks Redis-backed stores when client is non-nil. Without Redis,
// idempotency falls back to process memory and product detail caching is off.
func NewStores(client redis.UniversalClient, opts ProductCacheOptions, logger *zap.Logger) Stores {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		logger.Warn("Redis disabled: using in-memory idempotency store and no product cache. " +
			"Payment replays are only detected within this instance.")
		return Stores{
			Idempotency: NewInMemoryIdempotencyStore(),
			Products:    catalog.NopProductCache{},
		}
	}
	logger.Info("Using Redis product cache and idempotency store")
	return Stores{
		Idempotency: NewRedisIdempotencyStore(client, opts.KeyPrefix),
		Products:    NewRedisProductCache(client, opts, logger),
	}
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/renztrending/backend/internal/application/catalog"
	"go.uber.org/zap"
)

const defaultProductTTL = 10 * time.Minute

// ProductCacheOptions configures the product detail cache
type ProductCacheOptions struct {
	KeyPrefix string
	TTL       time.Duration
}

// RedisProductCache caches product detail responses by slug as JSON
type RedisProductCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisProductCache creates a product cache on an existing Redis client
func NewRedisProductCache(client redis.UniversalClient, opts ProductCacheOptions, logger *zap.Logger) *RedisProductCache {
	if opts.TTL <= 0 {
		opts.TTL = defaultProductTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisProductCache{
		client: client,
		prefix: opts.KeyPrefix + "product:",
		ttl:    opts.TTL,
		logger: logger,
	}
}

// Get returns nil without error on a miss. Undecodable entries are dropped
// and reported as misses.
func (c *RedisProductCache) Get(ctx context.Context, slug string) (*catalog.ProductDetailResponse, error) {
	data, err := c.client.Get(ctx, c.key(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read product cache: %w", err)
	}

	var detail catalog.ProductDetailResponse
	if err := json.Unmarshal(data, &detail); err != nil {
		c.logger.Warn("Dropping undecodable product cache entry", zap.String("slug", slug), zap.Error(err))
		_ = c.client.Del(ctx, c.key(slug)).Err()
		return nil, nil
	}
	return &detail, nil
}

// Set stores a product detail response
func (c *RedisProductCache) Set(ctx context.Context, slug string, detail *catalog.ProductDetailResponse) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to encode product cache entry: %w", err)
	}
	if err := c.client.Set(ctx, c.key(slug), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write product cache: %w", err)
	}
	return nil
}

// Invalidate removes the entries for the given slugs
func (c *RedisProductCache) Invalidate(ctx context.Context, slugs ...string) error {
	keys := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if s != "" {
			keys = append(keys, c.key(s))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	return nil
}

func (c *RedisProductCache) key(slug string) string {
	return c.prefix + slug
}

var _ catalog.ProductCache = (*RedisProductCache)(nil)

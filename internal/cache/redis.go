package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studyforge/studyforge/internal/domain"
)

// keyPrefix namespaces cache keys so the instance can share a Redis
// database with other consumers.
const keyPrefix = "studyforge:response:"

// RedisCache is a ResponseCache backed by Redis. Expiry is delegated to the
// server via SET with TTL, which covers both lazy eviction and the periodic
// sweep required of the in-memory variant. Backend errors are absorbed: a
// failed read is a miss, a failed write a no-op.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache creates a RedisCache on an existing client.
// ttl <= 0 selects DefaultTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "response_cache_redis"),
	}
}

// Get returns the cached result for key if present and unexpired.
func (c *RedisCache) Get(ctx context.Context, key string) (*domain.GenerationResult, bool) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.WarnContext(ctx, "cache read failed, treating as miss",
			"key", key,
			"error", err)
		return nil, false
	}

	var value domain.GenerationResult
	if err := json.Unmarshal(data, &value); err != nil {
		c.logger.WarnContext(ctx, "cache entry corrupt, treating as miss",
			"key", key,
			"error", err)
		return nil, false
	}
	return &value, true
}

// Set stores value under key with a fresh TTL, unconditionally overwriting
// any existing entry.
func (c *RedisCache) Set(ctx context.Context, key string, value *domain.GenerationResult) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "cache value marshal failed, skipping write",
			"key", key,
			"error", err)
		return
	}

	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache write failed",
			"key", key,
			"error", err)
	}
}

// Compile-time check that RedisCache satisfies ResponseCache.
var _ ResponseCache = (*RedisCache)(nil)

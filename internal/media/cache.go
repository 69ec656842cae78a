package media

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "adlauncher:image:"

// Cache remembers image hashes by source key so re-launching with the same
// creative does not re-upload identical bytes. A nil *Cache is a no-op, so
// the pipeline works without Redis.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache wraps a Redis client with the given entry TTL.
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// GetImageHash looks up a previously uploaded hash by source key.
func (c *Cache) GetImageHash(ctx context.Context, key string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	hash, err := c.rdb.Get(ctx, cachePrefix+key).Result()
	if err != nil {
		return "", false
	}
	return hash, hash != ""
}

// SetImageHash records an uploaded hash. Failures are ignored; the cache is
// an optimization, never a source of truth.
func (c *Cache) SetImageHash(ctx context.Context, key, hash string) {
	if c == nil || c.rdb == nil || hash == "" {
		return
	}
	c.rdb.Set(ctx, cachePrefix+key, hash, c.ttl)
}

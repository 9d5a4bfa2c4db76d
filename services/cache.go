package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps redis but fails safe: connectivity problems behave like
// misses so the booking flow never depends on redis being up.
type Cache struct {
	client *redis.Client
}

// NewCache returns nil when no address is configured; a nil Cache is
// valid and disables duplicate-submit detection.
func NewCache(addr, password string, db int) *Cache {
	if addr == "" {
		return nil
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Cache{client: redis.NewClient(opts)}
}

// Acquire claims key for ttl and reports whether this caller got it
// first. Redis errors report true: a duplicate slipping through beats a
// booking lost to a cache outage.
func (c *Cache) Acquire(ctx context.Context, key string, ttl time.Duration) bool {
	if c == nil || c.client == nil {
		return true
	}
	ok, err := c.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

// Release frees a claimed key, ignoring redis errors.
func (c *Cache) Release(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, key)
}

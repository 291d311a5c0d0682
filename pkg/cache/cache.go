package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// unread counts are cheap to recompute, so a short TTL keeps the cache
// honest even if an invalidation is missed
const unreadCountTTL = 5 * time.Minute

// Cache keeps per-user unread notification counts in Redis.
// A nil Cache (no Redis configured) falls through to the database on
// every read.
type Cache struct {
	client *redis.Client
}

// New connects to Redis using a redis:// URL. An empty URL returns a
// nil Cache.
func New(redisURL string) (*Cache, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: parse redis url: %w", err)
	}
	return &Cache{client: redis.NewClient(opts)}, nil
}

// NewWithClient wraps an existing client. Used by tests with miniredis
// or a local instance.
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Ping verifies the connection. Nil caches report healthy.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func unreadCountKey(userID string) string {
	return "boardguru:unread:" + userID
}

// UnreadCount returns the cached unread count for a user. The second
// return value reports whether the cache had an answer.
func (c *Cache) UnreadCount(ctx context.Context, userID string) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	n, err := c.client.Get(ctx, unreadCountKey(userID)).Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetUnreadCount stores a freshly computed unread count.
func (c *Cache) SetUnreadCount(ctx context.Context, userID string, count int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, unreadCountKey(userID), count, unreadCountTTL)
}

// InvalidateUnreadCount drops the cached count after any write that
// changes a user's notifications.
func (c *Cache) InvalidateUnreadCount(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, unreadCountKey(userID))
}

package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	_, ok := c.UnreadCount(ctx, "u-1")
	assert.False(t, ok)

	// none of these may panic
	c.SetUnreadCount(ctx, "u-1", 3)
	c.InvalidateUnreadCount(ctx, "u-1")
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestNewWithEmptyURL(t *testing.T) {
	c, err := New("")
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewWithBadURL(t *testing.T) {
	_, err := New("http://not-redis")
	assert.Error(t, err)
}

func TestUnreadCountKey(t *testing.T) {
	assert.Equal(t, "boardguru:unread:u-1", unreadCountKey("u-1"))
}

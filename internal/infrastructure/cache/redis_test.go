package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// TestRedisCache runs against a real server when TEST_REDIS_ADDR is set,
// e.g. localhost:6379.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	c := NewRedisCache(addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	require.NoError(t, c.Connect(ctx))
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Ping(ctx))

	prefix := "test:" + uuid.NewString() + ":"

	t.Run("miss leaves dest untouched", func(t *testing.T) {
		dest := cachedUser{Username: "unchanged"}
		found, err := c.Get(ctx, prefix+"missing", &dest)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, "unchanged", dest.Username)
	})

	t.Run("set get delete", func(t *testing.T) {
		key := prefix + "user"
		require.NoError(t, c.Set(ctx, key, cachedUser{ID: "1", Username: "alice"}, time.Minute))

		var got cachedUser
		found, err := c.Get(ctx, key, &got)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, cachedUser{ID: "1", Username: "alice"}, got)

		require.NoError(t, c.Delete(ctx, key))
		found, err = c.Get(ctx, key, &got)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("counter with expiry", func(t *testing.T) {
		key := prefix + "fail"
		t.Cleanup(func() { _ = c.Delete(ctx, key) })

		n, err := c.Increment(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		n, err = c.Increment(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		require.NoError(t, c.Expire(ctx, key, time.Minute))
		ttl, err := c.TTL(ctx, key)
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)

		// The counter is a JSON number, so it reads back through Get
		var failures int64
		found, err := c.Get(ctx, key, &failures)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(2), failures)
	})

	t.Run("delete without keys", func(t *testing.T) {
		assert.NoError(t, c.Delete(ctx))
	})
}

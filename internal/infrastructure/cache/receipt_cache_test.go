package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptTextKey(t *testing.T) {
	assert.Equal(t, "receipt:text:abc:40", ReceiptTextKey("abc", 40))
}

func TestNullReceiptCache(t *testing.T) {
	c := NewNullReceiptCache()
	require.NoError(t, c.Set(context.Background(), "tok", 40, "text"))

	_, ok, err := c.Get(context.Background(), "tok", 40)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisReceiptCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping redis integration test")
	}

	client, err := NewRedisClient(&config.CacheConfig{RedisAddr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	c := NewRedisReceiptCache(client, time.Minute)
	ctx := context.Background()
	token := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, ReceiptTextKey(token, 40)) })

	_, ok, err := c.Get(ctx, token, 40)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, token, 40, "rendered"))

	text, ok, err := c.Get(ctx, token, 40)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "rendered", text)

	_, ok, err = c.Get(ctx, token, 41)
	require.NoError(t, err)
	assert.False(t, ok)
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sangkips/receipt-api/internal/config"
)

// ReceiptTextCache stores rendered public receipts keyed by token and width.
// Receipts never change after creation, so entries only expire by TTL.
type ReceiptTextCache interface {
	Get(ctx context.Context, token string, width int) (string, bool, error)
	Set(ctx context.Context, token string, width int, text string) error
}

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(cfg *config.CacheConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}

type redisReceiptCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReceiptCache creates a redis-backed receipt text cache
func NewRedisReceiptCache(client *redis.Client, ttl time.Duration) ReceiptTextCache {
	return &redisReceiptCache{client: client, ttl: ttl}
}

// ReceiptTextKey is the redis key for a rendered receipt
func ReceiptTextKey(token string, width int) string {
	return fmt.Sprintf("receipt:text:%s:%d", token, width)
}

func (c *redisReceiptCache) Get(ctx context.Context, token string, width int) (string, bool, error) {
	text, err := c.client.Get(ctx, ReceiptTextKey(token, width)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

func (c *redisReceiptCache) Set(ctx context.Context, token string, width int, text string) error {
	return c.client.Set(ctx, ReceiptTextKey(token, width), text, c.ttl).Err()
}

type nullReceiptCache struct{}

// NewNullReceiptCache returns a cache that never stores anything, used when
// no redis address is configured.
func NewNullReceiptCache() ReceiptTextCache {
	return nullReceiptCache{}
}

func (nullReceiptCache) Get(context.Context, string, int) (string, bool, error) {
	return "", false, nil
}

func (nullReceiptCache) Set(context.Context, string, int, string) error {
	return nil
}

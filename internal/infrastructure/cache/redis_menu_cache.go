package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	menuapp "github.com/salon/backend/internal/application/menu"
	"github.com/salon/backend/internal/infrastructure/config"
)

const menuCacheKey = "menu:published"

// RedisMenuCache caches the published menu in Redis so that the public
// menu listing does not hit the database on every request. Suitable for
// distributed deployments where multiple instances share the cache.
type RedisMenuCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisMenuCache creates a menu cache with its own Redis connection
func NewRedisMenuCache(cfg *config.RedisConfig, ttl time.Duration) (*RedisMenuCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisMenuCacheWithClient(client, ttl), nil
}

// NewRedisMenuCacheWithClient creates a menu cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisMenuCacheWithClient(client *redis.Client, ttl time.Duration) *RedisMenuCache {
	return &RedisMenuCache{
		client: client,
		key:    menuCacheKey,
		ttl:    ttl,
	}
}

// GetMenu returns the cached published menu, or (nil, nil) on a miss
func (c *RedisMenuCache) GetMenu(ctx context.Context) ([]menuapp.MenuItemResponse, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read menu cache: %w", err)
	}

	var items []menuapp.MenuItemResponse
	if err := json.Unmarshal(data, &items); err != nil {
		// A corrupt entry is treated as a miss so it gets overwritten
		return nil, nil
	}
	return items, nil
}

// SetMenu stores the published menu with the configured TTL
func (c *RedisMenuCache) SetMenu(ctx context.Context, items []menuapp.MenuItemResponse) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode menu for cache: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write menu cache: %w", err)
	}
	return nil
}

// InvalidateMenu drops the cached menu
func (c *RedisMenuCache) InvalidateMenu(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate menu cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisMenuCache) Close() error {
	return c.client.Close()
}

// Ensure RedisMenuCache implements MenuCache
var _ menuapp.MenuCache = (*RedisMenuCache)(nil)

package cache

import (
	"fmt"

	"go.uber.org/zap"

	menuapp "github.com/salon/backend/internal/application/menu"
	"github.com/salon/backend/internal/infrastructure/config"
)

// MenuCacheFactory creates menu caches based on configuration
type MenuCacheFactory struct {
	redisConfig           config.RedisConfig
	cacheConfig           config.CacheConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// MenuCacheFactoryOption is a functional option for configuring the factory
type MenuCacheFactoryOption func(*MenuCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) MenuCacheFactoryOption {
	return func(f *MenuCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) MenuCacheFactoryOption {
	return func(f *MenuCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewMenuCacheFactory creates a new factory
func NewMenuCacheFactory(redisCfg config.RedisConfig, cacheCfg config.CacheConfig, opts ...MenuCacheFactoryOption) *MenuCacheFactory {
	f := &MenuCacheFactory{
		redisConfig:           redisCfg,
		cacheConfig:           cacheCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateMenuCache creates the menu cache for the deployment. Returns nil
// when caching is disabled; the menu service treats a nil cache as a
// pass-through.
func (f *MenuCacheFactory) CreateMenuCache() (menuapp.MenuCache, error) {
	if !f.cacheConfig.Enabled {
		f.logger.Info("menu cache disabled by configuration")
		return nil, nil
	}

	redisCache, err := NewRedisMenuCache(&f.redisConfig, f.cacheConfig.MenuTTL)
	if err == nil {
		f.logger.Info("using Redis menu cache",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Duration("ttl", f.cacheConfig.MenuTTL))
		return redisCache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("failed to create Redis menu cache: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory menu cache",
		zap.Error(err))
	return NewInMemoryMenuCache(f.cacheConfig.MenuTTL), nil
}

package cache

import (
	"context"
	"sync"
	"time"

	menuapp "github.com/salon/backend/internal/application/menu"
)

// InMemoryMenuCache is a process-local menu cache for single-instance
// deployments and tests. Entries expire after the configured TTL.
type InMemoryMenuCache struct {
	mu        sync.RWMutex
	items     []menuapp.MenuItemResponse
	expiresAt time.Time
	ttl       time.Duration
}

// NewInMemoryMenuCache creates an in-memory menu cache
func NewInMemoryMenuCache(ttl time.Duration) *InMemoryMenuCache {
	return &InMemoryMenuCache{ttl: ttl}
}

// GetMenu returns the cached published menu, or (nil, nil) on a miss
func (c *InMemoryMenuCache) GetMenu(_ context.Context) ([]menuapp.MenuItemResponse, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.items == nil || time.Now().After(c.expiresAt) {
		return nil, nil
	}

	// Copy so callers cannot mutate the cached slice
	items := make([]menuapp.MenuItemResponse, len(c.items))
	copy(items, c.items)
	return items, nil
}

// SetMenu stores the published menu with the configured TTL
func (c *InMemoryMenuCache) SetMenu(_ context.Context, items []menuapp.MenuItemResponse) error {
	stored := make([]menuapp.MenuItemResponse, len(items))
	copy(stored, items)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = stored
	c.expiresAt = time.Now().Add(c.ttl)
	return nil
}

// InvalidateMenu drops the cached menu
func (c *InMemoryMenuCache) InvalidateMenu(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return nil
}

// Ensure InMemoryMenuCache implements MenuCache
var _ menuapp.MenuCache = (*InMemoryMenuCache)(nil)

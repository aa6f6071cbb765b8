package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	menuapp "github.com/salon/backend/internal/application/menu"
)

func sampleMenu() []menuapp.MenuItemResponse {
	return []menuapp.MenuItemResponse{
		{Name: "Classic Haircut", Category: "HAIRCUTS", Price: decimal.RequireFromString("40.00"), DisplayOrder: 1},
		{Name: "Deep Tissue Massage", Category: "MASSAGE", Price: decimal.RequireFromString("85.00"), DisplayOrder: 2},
	}
}

func TestInMemoryMenuCache_GetSet(t *testing.T) {
	t.Run("returns nil on empty cache", func(t *testing.T) {
		c := NewInMemoryMenuCache(time.Minute)

		items, err := c.GetMenu(context.Background())

		assert.NoError(t, err)
		assert.Nil(t, items)
	})

	t.Run("returns stored menu", func(t *testing.T) {
		c := NewInMemoryMenuCache(time.Minute)

		require.NoError(t, c.SetMenu(context.Background(), sampleMenu()))

		items, err := c.GetMenu(context.Background())

		assert.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Classic Haircut", items[0].Name)
	})

	t.Run("expires entries after TTL", func(t *testing.T) {
		c := NewInMemoryMenuCache(10 * time.Millisecond)

		require.NoError(t, c.SetMenu(context.Background(), sampleMenu()))
		time.Sleep(20 * time.Millisecond)

		items, err := c.GetMenu(context.Background())

		assert.NoError(t, err)
		assert.Nil(t, items)
	})

	t.Run("caches an empty menu as a hit", func(t *testing.T) {
		c := NewInMemoryMenuCache(time.Minute)

		require.NoError(t, c.SetMenu(context.Background(), []menuapp.MenuItemResponse{}))

		items, err := c.GetMenu(context.Background())

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestInMemoryMenuCache_Invalidate(t *testing.T) {
	t.Run("invalidation clears the entry", func(t *testing.T) {
		c := NewInMemoryMenuCache(time.Minute)

		require.NoError(t, c.SetMenu(context.Background(), sampleMenu()))
		require.NoError(t, c.InvalidateMenu(context.Background()))

		items, err := c.GetMenu(context.Background())

		assert.NoError(t, err)
		assert.Nil(t, items)
	})
}

func TestInMemoryMenuCache_CallerCannotMutate(t *testing.T) {
	c := NewInMemoryMenuCache(time.Minute)

	require.NoError(t, c.SetMenu(context.Background(), sampleMenu()))

	items, err := c.GetMenu(context.Background())
	require.NoError(t, err)
	items[0].Name = "Changed"

	again, err := c.GetMenu(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Classic Haircut", again[0].Name)
}

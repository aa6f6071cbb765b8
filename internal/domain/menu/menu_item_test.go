package menu

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

func newTestItem(t *testing.T) *MenuItem {
	t.Helper()
	item, err := NewMenuItem(
		"Classic Manicure", "A 45-minute manicure with polish of your choice",
		MenuCategoryNails, MustNewServiceDuration(45),
		valueobject.MustNewPrice("28.00"), false, nil, 10,
	)
	require.NoError(t, err)
	item.ClearDomainEvents()
	return item
}

func newTestPackage(t *testing.T) *MenuItem {
	t.Helper()
	item, err := NewMenuItem(
		"Bridal Morning", "Hair, makeup and nails for the bride and party",
		MenuCategoryBridalPackages, MustNewServiceDuration(240),
		valueobject.MustNewPrice("350.00"), true,
		[]string{"Bridal updo", "Makeup application", "Classic Manicure"}, 1,
	)
	require.NoError(t, err)
	item.ClearDomainEvents()
	return item
}

func TestNewMenuItem(t *testing.T) {
	t.Run("creates a plain service item", func(t *testing.T) {
		item, err := NewMenuItem(
			"Classic Manicure", "A 45-minute manicure with polish of your choice",
			MenuCategoryNails, MustNewServiceDuration(45),
			valueobject.MustNewPrice("28.00"), false, nil, 10,
		)

		require.NoError(t, err)
		assert.False(t, item.IsPackage)
		assert.False(t, item.AdvanceBookingRequired)
		assert.Equal(t, MenuItemStatusActive, item.Status)
		assert.Len(t, item.GetDomainEvents(), 1)
	})

	t.Run("creates a package with forced advance booking", func(t *testing.T) {
		item := newTestPackage(t)

		assert.True(t, item.IsPackage)
		assert.True(t, item.AdvanceBookingRequired)
		assert.Equal(t, 1, item.AdvanceBookingDays)
		assert.Len(t, item.IncludedServices, 3)
	})

	t.Run("fails when the package flag contradicts the category", func(t *testing.T) {
		item, err := NewMenuItem(
			"Bridal Morning", "Hair, makeup and nails for the bride and party",
			MenuCategoryBridalPackages, MustNewServiceDuration(240),
			valueobject.MustNewPrice("350.00"), false,
			[]string{"Bridal updo"}, 1,
		)

		assert.Error(t, err)
		assert.Nil(t, item)
		assert.True(t, shared.IsBusinessRule(err))
	})

	t.Run("fails when a non-package claims to be one", func(t *testing.T) {
		_, err := NewMenuItem(
			"Classic Manicure", "A 45-minute manicure with polish of your choice",
			MenuCategoryNails, MustNewServiceDuration(45),
			valueobject.MustNewPrice("28.00"), true, nil, 10,
		)

		assert.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
	})

	t.Run("fails when a package has no included services", func(t *testing.T) {
		_, err := NewMenuItem(
			"Bridal Morning", "Hair, makeup and nails for the bride and party",
			MenuCategoryBridalPackages, MustNewServiceDuration(240),
			valueobject.MustNewPrice("350.00"), true, nil, 1,
		)

		assert.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
	})

	t.Run("fails with short name", func(t *testing.T) {
		_, err := NewMenuItem(
			"Ma", "A 45-minute manicure with polish of your choice",
			MenuCategoryNails, MustNewServiceDuration(45),
			valueobject.MustNewPrice("28.00"), false, nil, 10,
		)

		assert.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("fails with short description", func(t *testing.T) {
		_, err := NewMenuItem(
			"Classic Manicure", "too short",
			MenuCategoryNails, MustNewServiceDuration(45),
			valueobject.MustNewPrice("28.00"), false, nil, 10,
		)

		assert.Error(t, err)
	})

	t.Run("fails with overlong description", func(t *testing.T) {
		_, err := NewMenuItem(
			"Classic Manicure", strings.Repeat("a", 1001),
			MenuCategoryNails, MustNewServiceDuration(45),
			valueobject.MustNewPrice("28.00"), false, nil, 10,
		)

		assert.Error(t, err)
	})

	t.Run("fails with negative display order", func(t *testing.T) {
		_, err := NewMenuItem(
			"Classic Manicure", "A 45-minute manicure with polish of your choice",
			MenuCategoryNails, MustNewServiceDuration(45),
			valueobject.MustNewPrice("28.00"), false, nil, -1,
		)

		assert.Error(t, err)
	})
}

func TestMenuItemUpdateCategory(t *testing.T) {
	t.Run("moving to a package category recomputes flags", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.SetIncludedServices([]string{"Classic Manicure", "Pedicure"}))

		err := item.UpdateCategory(MenuCategorySeasonal)

		require.NoError(t, err)
		assert.True(t, item.IsPackage)
		assert.True(t, item.AdvanceBookingRequired)
		assert.Equal(t, 1, item.AdvanceBookingDays)
	})

	t.Run("moving back to a plain category clears the flags", func(t *testing.T) {
		item := newTestPackage(t)

		err := item.UpdateCategory(MenuCategoryStyling)

		require.NoError(t, err)
		assert.False(t, item.IsPackage)
		assert.False(t, item.AdvanceBookingRequired)
		assert.Equal(t, 0, item.AdvanceBookingDays)
	})

	t.Run("cannot move to a package category without included services", func(t *testing.T) {
		item := newTestItem(t)

		err := item.UpdateCategory(MenuCategorySpaPackages)

		assert.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
		assert.Equal(t, MenuCategoryNails, item.Category)
	})
}

func TestMenuItemAdvanceBooking(t *testing.T) {
	t.Run("enables advance booking with days", func(t *testing.T) {
		item := newTestItem(t)

		err := item.SetAdvanceBooking(true, 3)

		require.NoError(t, err)
		assert.True(t, item.AdvanceBookingRequired)
		assert.Equal(t, 3, item.AdvanceBookingDays)
	})

	t.Run("requires at least one day when enabled", func(t *testing.T) {
		item := newTestItem(t)

		err := item.SetAdvanceBooking(true, 0)

		assert.Error(t, err)
	})

	t.Run("cannot disable for a forcing category", func(t *testing.T) {
		item := newTestPackage(t)

		err := item.SetAdvanceBooking(false, 0)

		assert.Error(t, err)
		assert.True(t, item.AdvanceBookingRequired)
	})
}

func TestMenuItemSeasonalWindow(t *testing.T) {
	t.Run("availability follows the window", func(t *testing.T) {
		item := newTestItem(t)
		from := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
		require.NoError(t, item.SetSeasonalWindow(&from, &to))

		assert.True(t, item.IsAvailableOn(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)))
		assert.False(t, item.IsAvailableOn(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))
		assert.False(t, item.IsAvailableOn(time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("inactive items are never available", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.Deactivate())

		assert.False(t, item.IsAvailableOn(time.Now()))
	})

	t.Run("rejects inverted windows", func(t *testing.T) {
		item := newTestItem(t)
		from := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

		err := item.SetSeasonalWindow(&from, &to)

		assert.Error(t, err)
	})
}

func TestMenuItemTags(t *testing.T) {
	t.Run("tags are lower-cased and deduplicated", func(t *testing.T) {
		item := newTestItem(t)

		item.SetTags([]string{"Popular", "popular", " NEW ", "new", "", "gel"})

		assert.Equal(t, []string{"popular", "new", "gel"}, item.Tags)
	})
}

func TestMenuItemStatus(t *testing.T) {
	t.Run("deactivates and reactivates", func(t *testing.T) {
		item := newTestItem(t)

		require.NoError(t, item.Deactivate())
		assert.False(t, item.IsActive())
		assert.Error(t, item.Deactivate())

		require.NoError(t, item.Activate())
		assert.True(t, item.IsActive())
		assert.Error(t, item.Activate())
	})
}

package menu

import (
	"context"

	"github.com/google/uuid"

	"github.com/salon/backend/internal/domain/shared"
)

// MenuItemRepository defines the interface for menu item persistence
type MenuItemRepository interface {
	// FindByID finds a menu item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*MenuItem, error)

	// FindAll finds all menu items matching the filter.
	// Default order is display_order ascending.
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[MenuItem], error)

	// FindByCategory finds menu items in a category
	FindByCategory(ctx context.Context, category MenuCategory, filter shared.Filter) (shared.Paginated[MenuItem], error)

	// FindVisible returns every active menu item ordered by display
	// order, for the published menu listing
	FindVisible(ctx context.Context) ([]MenuItem, error)

	// Save creates or updates a menu item
	Save(ctx context.Context, item *MenuItem) error

	// Delete removes a menu item by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists checks if a menu item exists by ID
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByDisplayOrder checks if another item already occupies the
	// display order, excluding the given ID (pass uuid.Nil to check all)
	ExistsByDisplayOrder(ctx context.Context, displayOrder int, excludeID uuid.UUID) (bool, error)

	// Count counts menu items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

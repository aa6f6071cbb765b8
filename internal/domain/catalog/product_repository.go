package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/salon/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindAll finds all products matching the filter.
	// Default order is name ascending.
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[Product], error)

	// FindByCategory finds products in a category
	FindByCategory(ctx context.Context, category ProductCategory, filter shared.Filter) (shared.Paginated[Product], error)

	// FindByType finds products of a given type
	FindByType(ctx context.Context, productType ProductType, filter shared.Filter) (shared.Paginated[Product], error)

	// FindLowStock finds active physical products at or below their
	// low-stock threshold
	FindLowStock(ctx context.Context, filter shared.Filter) (shared.Paginated[Product], error)

	// NextSKUSequence reserves and returns the next SKU sequence number
	// for a category
	NextSKUSequence(ctx context.Context, category ProductCategory) (int, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete removes a product by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists checks if a product exists by ID
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsBySKU checks if a product with the SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

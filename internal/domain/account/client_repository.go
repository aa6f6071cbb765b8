package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/salon/backend/internal/domain/shared"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByCompanyName finds a client by its exact company name
	FindByCompanyName(ctx context.Context, companyName string) (*Client, error)

	// FindAll finds all clients matching the filter.
	// Default order is company_name ascending.
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[Client], error)

	// FindByBusinessType finds clients of a given business type
	FindByBusinessType(ctx context.Context, businessType BusinessType, filter shared.Filter) (shared.Paginated[Client], error)

	// FindWithExpiringContracts finds active clients whose contract ends
	// within the given number of days
	FindWithExpiringContracts(ctx context.Context, daysAhead int, filter shared.Filter) (shared.Paginated[Client], error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// Delete removes a client by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists checks if a client exists by ID
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByCompanyName checks if a client with the company name
	// exists, excluding the given ID (pass uuid.Nil to check all)
	ExistsByCompanyName(ctx context.Context, companyName string, excludeID uuid.UUID) (bool, error)

	// Count counts clients matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

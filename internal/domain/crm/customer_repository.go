package crm

import (
	"context"

	"github.com/google/uuid"

	"github.com/salon/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByEmail finds a customer by its normalized email
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// FindByPhone finds a customer by its normalized phone number
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// FindAll finds all customers matching the filter.
	// Default order is created_at descending.
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[Customer], error)

	// FindByStatus finds customers by lifecycle status
	FindByStatus(ctx context.Context, status CustomerStatus, filter shared.Filter) (shared.Paginated[Customer], error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete removes a customer by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists checks if a customer exists by ID
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByEmail checks if a customer with the email exists,
	// excluding the given ID (pass uuid.Nil to check all)
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	// ExistsByPhone checks if a customer with the phone exists,
	// excluding the given ID (pass uuid.Nil to check all)
	ExistsByPhone(ctx context.Context, phone string, excludeID uuid.UUID) (bool, error)

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

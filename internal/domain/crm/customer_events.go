package crm

import (
	"time"

	"github.com/google/uuid"

	"github.com/salon/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated       = "CustomerCreated"
	EventTypeCustomerUpdated       = "CustomerUpdated"
	EventTypeCustomerStatusChanged = "CustomerStatusChanged"
	EventTypeCustomerPointsChanged = "CustomerPointsChanged"
	EventTypeCustomerVisitRecorded = "CustomerVisitRecorded"
	EventTypeCustomerDeleted       = "CustomerDeleted"
)

// CustomerCreatedEvent is published when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
		Email:           customer.Email.String(),
	}
}

// CustomerUpdatedEvent is published when a customer's profile changes
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(customer *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
		Email:           customer.Email.String(),
		Phone:           customer.Phone.String(),
	}
}

// CustomerStatusChangedEvent is published when a customer's status changes
type CustomerStatusChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID      `json:"customer_id"`
	OldStatus  CustomerStatus `json:"old_status"`
	NewStatus  CustomerStatus `json:"new_status"`
}

// NewCustomerStatusChangedEvent creates a new CustomerStatusChangedEvent
func NewCustomerStatusChangedEvent(customer *Customer, oldStatus, newStatus CustomerStatus) *CustomerStatusChangedEvent {
	return &CustomerStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerStatusChanged, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// CustomerPointsChangedEvent is published on every earn or redeem operation
type CustomerPointsChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID   `json:"customer_id"`
	OldBalance int         `json:"old_balance"`
	NewBalance int         `json:"new_balance"`
	Operation  string      `json:"operation"` // "earn" or "redeem"
	Tier       LoyaltyTier `json:"tier"`
}

// NewCustomerPointsChangedEvent creates a new CustomerPointsChangedEvent
func NewCustomerPointsChangedEvent(customer *Customer, oldBalance int, operation string) *CustomerPointsChangedEvent {
	return &CustomerPointsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerPointsChanged, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		OldBalance:      oldBalance,
		NewBalance:      customer.Points.Value(),
		Operation:       operation,
		Tier:            customer.Tier(),
	}
}

// CustomerVisitRecordedEvent is published when a visit is recorded
type CustomerVisitRecordedEvent struct {
	shared.BaseDomainEvent
	CustomerID  uuid.UUID `json:"customer_id"`
	TotalVisits int       `json:"total_visits"`
	VisitedAt   time.Time `json:"visited_at"`
}

// NewCustomerVisitRecordedEvent creates a new CustomerVisitRecordedEvent
func NewCustomerVisitRecordedEvent(customer *Customer, visitedAt time.Time) *CustomerVisitRecordedEvent {
	return &CustomerVisitRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerVisitRecorded, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		TotalVisits:     customer.TotalVisits,
		VisitedAt:       visitedAt,
	}
}

// CustomerDeletedEvent is published when a customer is removed
type CustomerDeletedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewCustomerDeletedEvent creates a new CustomerDeletedEvent
func NewCustomerDeletedEvent(customerID uuid.UUID) *CustomerDeletedEvent {
	return &CustomerDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerDeleted, AggregateTypeCustomer, customerID),
		CustomerID:      customerID,
	}
}

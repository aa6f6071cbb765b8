package crm

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// CustomerStatus represents the lifecycle status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// VIP qualification thresholds.
const (
	vipVisitThreshold = 10
	vipPointThreshold = 1000
)

// Customer represents a salon customer in the CRM context.
// It is the aggregate root for customer-related operations.
type Customer struct {
	shared.BaseAggregateRoot
	Name        string
	Email       valueobject.Email
	Phone       valueobject.Phone
	Points      LoyaltyPoints
	TotalVisits int
	LastVisitAt *time.Time
	Status      CustomerStatus
	Notes       string
}

// NewCustomer creates a new customer with a zero point balance and no visits.
func NewCustomer(name string, email valueobject.Email, phone valueobject.Phone) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if email.IsZero() {
		return nil, shared.NewValidationError("email", "Email is required")
	}
	if phone.IsZero() {
		return nil, shared.NewValidationError("phone", "Phone is required")
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             email,
		Phone:             phone,
		Points:            ZeroLoyaltyPoints(),
		Status:            CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Rename updates the customer's display name
func (c *Customer) Rename(name string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// UpdateContact replaces the customer's email and phone. Uniqueness against
// other customers is checked by the application service and the store's
// unique indexes, not here.
func (c *Customer) UpdateContact(email valueobject.Email, phone valueobject.Phone) error {
	if email.IsZero() {
		return shared.NewValidationError("email", "Email is required")
	}
	if phone.IsZero() {
		return shared.NewValidationError("phone", "Phone is required")
	}

	c.Email = email
	c.Phone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// SetNotes updates free-form notes about the customer
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// EarnPoints credits loyalty points to the customer's balance
func (c *Customer) EarnPoints(points int) error {
	newBalance, err := c.Points.Add(points)
	if err != nil {
		return err
	}

	oldBalance := c.Points.Value()
	c.Points = newBalance
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerPointsChangedEvent(c, oldBalance, "earn"))

	return nil
}

// RedeemPoints debits loyalty points from the customer's balance.
// Redeeming more than the current balance is a business-rule violation.
func (c *Customer) RedeemPoints(points int) error {
	newBalance, err := c.Points.Subtract(points)
	if err != nil {
		return err
	}

	oldBalance := c.Points.Value()
	c.Points = newBalance
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerPointsChangedEvent(c, oldBalance, "redeem"))

	return nil
}

// RecordVisit increments the visit counter and stamps the last visit time
func (c *Customer) RecordVisit(at time.Time) error {
	if at.IsZero() {
		return shared.NewValidationError("visitedAt", "Visit time is required")
	}

	c.TotalVisits++
	visitedAt := at
	c.LastVisitAt = &visitedAt
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerVisitRecordedEvent(c, visitedAt))

	return nil
}

// Activate reactivates an inactive customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("CUSTOMER_ALREADY_ACTIVE", "Customer is already active")
	}

	oldStatus := c.Status
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, oldStatus, c.Status))

	return nil
}

// Deactivate marks the customer as inactive
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("CUSTOMER_ALREADY_INACTIVE", "Customer is already inactive")
	}

	oldStatus := c.Status
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, oldStatus, c.Status))

	return nil
}

// IsActive checks if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// Tier derives the loyalty tier from the current point balance
func (c *Customer) Tier() LoyaltyTier {
	return c.Points.Tier()
}

// DiscountPercent returns the discount percentage granted by the current tier
func (c *Customer) DiscountPercent() decimal.Decimal {
	return c.Points.Tier().DiscountPercent()
}

// IsVIP reports whether the customer qualifies for VIP treatment:
// at least 10 recorded visits or a balance of 1000 points or more.
func (c *Customer) IsVIP() bool {
	return c.TotalVisits >= vipVisitThreshold || c.Points.Value() >= vipPointThreshold
}

func validateCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return shared.NewValidationError("name", "Customer name must be at least 2 characters")
	}
	if len(name) > 100 {
		return shared.NewValidationError("name", "Customer name cannot exceed 100 characters")
	}
	return nil
}

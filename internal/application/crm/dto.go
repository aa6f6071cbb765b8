package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salon/backend/internal/domain/crm"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email,max=254"`
	Phone string `json:"phone" binding:"required,e164"`
	Notes string `json:"notes" binding:"max=2000"`
}

// UpdateCustomerRequest represents a request to update a customer.
// Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email,max=254"`
	Phone *string `json:"phone" binding:"omitempty,e164"`
	Notes *string `json:"notes" binding:"omitempty,max=2000"`
}

// PointsRequest represents an earn or redeem operation
type PointsRequest struct {
	Points int `json:"points" binding:"required,gt=0"`
}

// RecordVisitRequest represents a visit record. VisitedAt defaults to
// the current time when omitted.
type RecordVisitRequest struct {
	VisitedAt *time.Time `json:"visited_at"`
}

// CustomerResponse represents a customer in API responses, including
// the derived loyalty fields
type CustomerResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	LoyaltyPoints   int             `json:"loyalty_points"`
	Tier            string          `json:"tier"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	IsVIP           bool            `json:"is_vip"`
	TotalVisits     int             `json:"total_visits"`
	LastVisitAt     *time.Time      `json:"last_visit_at,omitempty"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *crm.Customer) CustomerResponse {
	return CustomerResponse{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email.String(),
		Phone:           c.Phone.String(),
		LoyaltyPoints:   c.Points.Value(),
		Tier:            string(c.Tier()),
		DiscountPercent: c.DiscountPercent(),
		IsVIP:           c.IsVIP(),
		TotalVisits:     c.TotalVisits,
		LastVisitAt:     c.LastVisitAt,
		Status:          string(c.Status),
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Version:         c.Version,
	}
}

// ToCustomerResponses converts a slice of domain Customers
func ToCustomerResponses(customers []crm.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

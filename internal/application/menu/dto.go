package menu

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salon/backend/internal/domain/menu"
)

// CreateMenuItemRequest represents a request to create a menu item
type CreateMenuItemRequest struct {
	Name             string          `json:"name" binding:"required,min=3,max=100"`
	Description      string          `json:"description" binding:"required,min=10,max=1000"`
	Category         string          `json:"category" binding:"required"`
	DurationMinutes  int             `json:"duration_minutes" binding:"required"`
	Price            decimal.Decimal `json:"price" binding:"required"`
	IsPackage        bool            `json:"is_package"`
	IncludedServices []string        `json:"included_services"`
	DisplayOrder     int             `json:"display_order" binding:"gte=0"`
}

// UpdateMenuItemRequest represents a request to update a menu item.
// Nil fields are left unchanged.
type UpdateMenuItemRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description" binding:"omitempty,min=10,max=1000"`
}

// ChangeCategoryRequest moves an item to another category
type ChangeCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

// DurationChangeRequest changes a service duration
type DurationChangeRequest struct {
	DurationMinutes int `json:"duration_minutes" binding:"required"`
}

// PriceChangeRequest changes a menu item price
type PriceChangeRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
}

// ServicesRequest replaces the bundled services of a package. An empty
// list is rejected by the domain for package items, not at binding time.
type ServicesRequest struct {
	Services []string `json:"services"`
}

// ListFieldRequest replaces a free-text list field
type ListFieldRequest struct {
	Items []string `json:"items"`
}

// AdvanceBookingRequest configures advance booking for an item
type AdvanceBookingRequest struct {
	Required bool `json:"required"`
	Days     int  `json:"days" binding:"gte=0"`
}

// SeasonalWindowRequest sets or clears the availability window
type SeasonalWindowRequest struct {
	ValidFrom *time.Time `json:"valid_from"`
	ValidTo   *time.Time `json:"valid_to"`
}

// DisplayOrderRequest moves an item within the published menu
type DisplayOrderRequest struct {
	DisplayOrder int `json:"display_order" binding:"gte=0"`
}

// TagsRequest replaces an item's tags
type TagsRequest struct {
	Tags []string `json:"tags"`
}

// MenuItemResponse represents a menu item in API responses
type MenuItemResponse struct {
	ID                     uuid.UUID       `json:"id"`
	Name                   string          `json:"name"`
	Description            string          `json:"description"`
	Category               string          `json:"category"`
	DurationMinutes        int             `json:"duration_minutes"`
	DurationLabel          string          `json:"duration_label"`
	Slots                  int             `json:"slots"`
	Price                  decimal.Decimal `json:"price"`
	IsPackage              bool            `json:"is_package"`
	IncludedServices       []string        `json:"included_services"`
	Requirements           []string        `json:"requirements,omitempty"`
	Benefits               []string        `json:"benefits,omitempty"`
	AdvanceBookingRequired bool            `json:"advance_booking_required"`
	AdvanceBookingDays     int             `json:"advance_booking_days,omitempty"`
	ValidFrom              *time.Time      `json:"valid_from,omitempty"`
	ValidTo                *time.Time      `json:"valid_to,omitempty"`
	DisplayOrder           int             `json:"display_order"`
	Tags                   []string        `json:"tags"`
	Status                 string          `json:"status"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
	Version                int             `json:"version"`
}

// MenuItemListFilter represents filter options for the menu item list
type MenuItemListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// ToMenuItemResponse converts a domain MenuItem to MenuItemResponse
func ToMenuItemResponse(m *menu.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:                     m.ID,
		Name:                   m.Name,
		Description:            m.Description,
		Category:               string(m.Category),
		DurationMinutes:        m.Duration.Minutes(),
		DurationLabel:          m.Duration.Format(),
		Slots:                  m.Duration.Slots(),
		Price:                  m.Price.Amount(),
		IsPackage:              m.IsPackage,
		IncludedServices:       m.IncludedServices,
		Requirements:           m.Requirements,
		Benefits:               m.Benefits,
		AdvanceBookingRequired: m.AdvanceBookingRequired,
		AdvanceBookingDays:     m.AdvanceBookingDays,
		ValidFrom:              m.ValidFrom,
		ValidTo:                m.ValidTo,
		DisplayOrder:           m.DisplayOrder,
		Tags:                   m.Tags,
		Status:                 string(m.Status),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
		Version:                m.Version,
	}
}

// ToMenuItemResponses converts a slice of domain MenuItems
func ToMenuItemResponses(items []menu.MenuItem) []MenuItemResponse {
	responses := make([]MenuItemResponse, len(items))
	for i := range items {
		responses[i] = ToMenuItemResponse(&items[i])
	}
	return responses
}

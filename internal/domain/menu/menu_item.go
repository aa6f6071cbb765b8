package menu

import (
	"strings"
	"time"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// MenuItemStatus represents the lifecycle status of a menu item
type MenuItemStatus string

const (
	MenuItemStatusActive   MenuItemStatus = "active"
	MenuItemStatusInactive MenuItemStatus = "inactive"
)

// MenuItem represents one bookable offering on the published service
// menu. It is the aggregate root for menu operations.
//
// IsPackage always equals Category.IsPackage(), and package items list
// at least one included service. A mismatch passed to the factory is a
// business-rule error.
type MenuItem struct {
	shared.BaseAggregateRoot
	Name                   string
	Description            string
	Category               MenuCategory
	Duration               ServiceDuration
	Price                  valueobject.Price
	IsPackage              bool
	IncludedServices       []string
	Requirements           []string
	Benefits               []string
	AdvanceBookingRequired bool
	AdvanceBookingDays     int
	ValidFrom              *time.Time
	ValidTo                *time.Time
	DisplayOrder           int
	Tags                   []string
	Status                 MenuItemStatus
}

// NewMenuItem creates a new menu item. The isPackage flag is accepted
// explicitly so that a caller's mismatch with the category surfaces as
// an error instead of being silently corrected.
func NewMenuItem(
	name, description string,
	category MenuCategory,
	duration ServiceDuration,
	price valueobject.Price,
	isPackage bool,
	includedServices []string,
	displayOrder int,
) (*MenuItem, error) {
	if err := validateMenuItemName(name); err != nil {
		return nil, err
	}
	if err := validateMenuItemDescription(description); err != nil {
		return nil, err
	}
	if err := validateMenuCategory(category); err != nil {
		return nil, err
	}
	if duration.IsZero() {
		return nil, shared.NewValidationError("duration", "Duration is required")
	}
	if price.IsZero() {
		return nil, shared.NewValidationError("price", "Price is required")
	}
	if isPackage != category.IsPackage() {
		return nil, shared.NewBusinessRuleError("PACKAGE_FLAG_MISMATCH",
			"The package flag must match the category")
	}
	if displayOrder < 0 {
		return nil, shared.NewValidationError("displayOrder", "Display order cannot be negative")
	}

	item := &MenuItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       strings.TrimSpace(description),
		Category:          category,
		Duration:          duration,
		Price:             price,
		IsPackage:         isPackage,
		IncludedServices:  normalizeList(includedServices),
		Requirements:      make([]string, 0),
		Benefits:          make([]string, 0),
		DisplayOrder:      displayOrder,
		Tags:              make([]string, 0),
		Status:            MenuItemStatusActive,
	}

	if err := item.checkPackageRules(); err != nil {
		return nil, err
	}

	if category.RequiresAdvanceBooking() {
		item.AdvanceBookingRequired = true
		item.AdvanceBookingDays = 1
	}

	item.AddDomainEvent(NewMenuItemCreatedEvent(item))

	return item, nil
}

func (m *MenuItem) checkPackageRules() error {
	if m.IsPackage && len(m.IncludedServices) == 0 {
		return shared.NewBusinessRuleError("PACKAGE_SERVICES_REQUIRED",
			"Package items must list at least one included service")
	}
	return nil
}

// Update updates the item's name and description
func (m *MenuItem) Update(name, description string) error {
	if err := validateMenuItemName(name); err != nil {
		return err
	}
	if err := validateMenuItemDescription(description); err != nil {
		return err
	}

	m.Name = strings.TrimSpace(name)
	m.Description = strings.TrimSpace(description)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMenuItemUpdatedEvent(m))

	return nil
}

// UpdateCategory moves the item to a new category and recomputes the
// dependent fields from the category's fixed mapping: the package flag
// and the advance-booking requirement.
func (m *MenuItem) UpdateCategory(category MenuCategory) error {
	if err := validateMenuCategory(category); err != nil {
		return err
	}
	if category.IsPackage() && len(m.IncludedServices) == 0 {
		return shared.NewBusinessRuleError("PACKAGE_SERVICES_REQUIRED",
			"Package items must list at least one included service")
	}

	m.Category = category
	m.IsPackage = category.IsPackage()
	if category.RequiresAdvanceBooking() {
		m.AdvanceBookingRequired = true
		if m.AdvanceBookingDays < 1 {
			m.AdvanceBookingDays = 1
		}
	} else {
		m.AdvanceBookingRequired = false
		m.AdvanceBookingDays = 0
	}
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMenuItemUpdatedEvent(m))

	return nil
}

// ChangeDuration replaces the service duration
func (m *MenuItem) ChangeDuration(duration ServiceDuration) error {
	if duration.IsZero() {
		return shared.NewValidationError("duration", "Duration is required")
	}

	m.Duration = duration
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMenuItemUpdatedEvent(m))

	return nil
}

// ChangePrice replaces the price
func (m *MenuItem) ChangePrice(price valueobject.Price) error {
	if price.IsZero() {
		return shared.NewValidationError("price", "Price is required")
	}

	m.Price = price
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMenuItemUpdatedEvent(m))

	return nil
}

// SetIncludedServices replaces the list of bundled services. Packages
// keep at least one entry.
func (m *MenuItem) SetIncludedServices(services []string) error {
	normalized := normalizeList(services)
	if m.IsPackage && len(normalized) == 0 {
		return shared.NewBusinessRuleError("PACKAGE_SERVICES_REQUIRED",
			"Package items must list at least one included service")
	}

	m.IncludedServices = normalized
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMenuItemUpdatedEvent(m))

	return nil
}

// SetRequirements replaces the preparation requirements list
func (m *MenuItem) SetRequirements(requirements []string) {
	m.Requirements = normalizeList(requirements)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// SetBenefits replaces the benefits list
func (m *MenuItem) SetBenefits(benefits []string) {
	m.Benefits = normalizeList(benefits)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// SetAdvanceBooking configures advance booking. Categories that force
// advance booking cannot have it disabled.
func (m *MenuItem) SetAdvanceBooking(required bool, days int) error {
	if !required && m.Category.RequiresAdvanceBooking() {
		return shared.NewBusinessRuleError("ADVANCE_BOOKING_FORCED",
			"Items in this category always require advance booking")
	}
	if required && days < 1 {
		return shared.NewValidationError("advanceBookingDays", "Advance booking days must be at least 1")
	}
	if !required {
		days = 0
	}

	m.AdvanceBookingRequired = required
	m.AdvanceBookingDays = days
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMenuItemUpdatedEvent(m))

	return nil
}

// SetSeasonalWindow sets or clears the validity window
func (m *MenuItem) SetSeasonalWindow(from, to *time.Time) error {
	if from != nil && to != nil && !from.Before(*to) {
		return shared.NewValidationError("validTo", "Valid-to must be after valid-from")
	}

	m.ValidFrom = from
	m.ValidTo = to
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMenuItemUpdatedEvent(m))

	return nil
}

// SetDisplayOrder moves the item in the listing. Uniqueness within the
// listing is enforced by the repository at write time.
func (m *MenuItem) SetDisplayOrder(order int) error {
	if order < 0 {
		return shared.NewValidationError("displayOrder", "Display order cannot be negative")
	}

	m.DisplayOrder = order
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMenuItemUpdatedEvent(m))

	return nil
}

// SetTags replaces the tag list. Tags are lower-cased and deduplicated.
func (m *MenuItem) SetTags(tags []string) {
	seen := make(map[string]bool, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}

	m.Tags = normalized
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// Activate returns the item to the published menu
func (m *MenuItem) Activate() error {
	if m.Status == MenuItemStatusActive {
		return shared.NewDomainError("MENU_ITEM_ALREADY_ACTIVE", "Menu item is already active")
	}

	oldStatus := m.Status
	m.Status = MenuItemStatusActive
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMenuItemStatusChangedEvent(m, oldStatus, m.Status))

	return nil
}

// Deactivate removes the item from the published menu
func (m *MenuItem) Deactivate() error {
	if m.Status == MenuItemStatusInactive {
		return shared.NewDomainError("MENU_ITEM_ALREADY_INACTIVE", "Menu item is already inactive")
	}

	oldStatus := m.Status
	m.Status = MenuItemStatusInactive
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMenuItemStatusChangedEvent(m, oldStatus, m.Status))

	return nil
}

// IsActive checks if the menu item is active
func (m *MenuItem) IsActive() bool {
	return m.Status == MenuItemStatusActive
}

// IsAvailableOn reports whether the item can be booked on the given
// date: it must be active and inside the seasonal window when one is
// set.
func (m *MenuItem) IsAvailableOn(date time.Time) bool {
	if m.Status != MenuItemStatusActive {
		return false
	}
	if m.ValidFrom != nil && date.Before(*m.ValidFrom) {
		return false
	}
	if m.ValidTo != nil && date.After(*m.ValidTo) {
		return false
	}
	return true
}

func normalizeList(items []string) []string {
	normalized := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			normalized = append(normalized, item)
		}
	}
	return normalized
}

func validateMenuItemName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return shared.NewValidationError("name", "Menu item name must be at least 3 characters")
	}
	if len(name) > 100 {
		return shared.NewValidationError("name", "Menu item name cannot exceed 100 characters")
	}
	return nil
}

func validateMenuItemDescription(description string) error {
	description = strings.TrimSpace(description)
	if len(description) < 10 {
		return shared.NewValidationError("description", "Menu item description must be at least 10 characters")
	}
	if len(description) > 1000 {
		return shared.NewValidationError("description", "Menu item description cannot exceed 1000 characters")
	}
	return nil
}

package menu

import (
	"github.com/google/uuid"

	"github.com/salon/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeMenuItem = "MenuItem"

// Event type constants
const (
	EventTypeMenuItemCreated       = "MenuItemCreated"
	EventTypeMenuItemUpdated       = "MenuItemUpdated"
	EventTypeMenuItemStatusChanged = "MenuItemStatusChanged"
	EventTypeMenuItemDeleted       = "MenuItemDeleted"
)

// MenuItemCreatedEvent is published when a new menu item is created
type MenuItemCreatedEvent struct {
	shared.BaseDomainEvent
	MenuItemID uuid.UUID    `json:"menu_item_id"`
	Name       string       `json:"name"`
	Category   MenuCategory `json:"category"`
	IsPackage  bool         `json:"is_package"`
}

// NewMenuItemCreatedEvent creates a new MenuItemCreatedEvent
func NewMenuItemCreatedEvent(item *MenuItem) *MenuItemCreatedEvent {
	return &MenuItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMenuItemCreated, AggregateTypeMenuItem, item.ID),
		MenuItemID:      item.ID,
		Name:            item.Name,
		Category:        item.Category,
		IsPackage:       item.IsPackage,
	}
}

// MenuItemUpdatedEvent is published when a menu item changes in any way
// that affects the published listing
type MenuItemUpdatedEvent struct {
	shared.BaseDomainEvent
	MenuItemID uuid.UUID    `json:"menu_item_id"`
	Name       string       `json:"name"`
	Category   MenuCategory `json:"category"`
}

// NewMenuItemUpdatedEvent creates a new MenuItemUpdatedEvent
func NewMenuItemUpdatedEvent(item *MenuItem) *MenuItemUpdatedEvent {
	return &MenuItemUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMenuItemUpdated, AggregateTypeMenuItem, item.ID),
		MenuItemID:      item.ID,
		Name:            item.Name,
		Category:        item.Category,
	}
}

// MenuItemStatusChangedEvent is published when a menu item is published
// or withdrawn
type MenuItemStatusChangedEvent struct {
	shared.BaseDomainEvent
	MenuItemID uuid.UUID      `json:"menu_item_id"`
	OldStatus  MenuItemStatus `json:"old_status"`
	NewStatus  MenuItemStatus `json:"new_status"`
}

// NewMenuItemStatusChangedEvent creates a new MenuItemStatusChangedEvent
func NewMenuItemStatusChangedEvent(item *MenuItem, oldStatus, newStatus MenuItemStatus) *MenuItemStatusChangedEvent {
	return &MenuItemStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMenuItemStatusChanged, AggregateTypeMenuItem, item.ID),
		MenuItemID:      item.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// MenuItemDeletedEvent is published when a menu item is removed
type MenuItemDeletedEvent struct {
	shared.BaseDomainEvent
	MenuItemID uuid.UUID `json:"menu_item_id"`
}

// NewMenuItemDeletedEvent creates a new MenuItemDeletedEvent
func NewMenuItemDeletedEvent(menuItemID uuid.UUID) *MenuItemDeletedEvent {
	return &MenuItemDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMenuItemDeleted, AggregateTypeMenuItem, menuItemID),
		MenuItemID:      menuItemID,
	}
}

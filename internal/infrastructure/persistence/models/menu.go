package models

import (
	"encoding/json"
	"time"

	"github.com/salon/backend/internal/domain/menu"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// MenuItemModel is the persistence model for the MenuItem aggregate.
// The string-list fields are stored as JSONB arrays.
type MenuItemModel struct {
	AggregateModel
	Name                   string            `gorm:"type:varchar(100);not null"`
	Description            string            `gorm:"type:text;not null"`
	Category               menu.MenuCategory `gorm:"type:varchar(30);not null;index"`
	DurationMinutes        int               `gorm:"not null"`
	Price                  valueobject.Price `gorm:"type:decimal(18,2);not null"`
	IsPackage              bool              `gorm:"not null;default:false"`
	IncludedServices       string            `gorm:"type:jsonb"`
	Requirements           string            `gorm:"type:jsonb"`
	Benefits               string            `gorm:"type:jsonb"`
	AdvanceBookingRequired bool              `gorm:"not null;default:false"`
	AdvanceBookingDays     int               `gorm:"not null;default:0"`
	ValidFrom              *time.Time
	ValidTo                *time.Time
	DisplayOrder           int                 `gorm:"not null;uniqueIndex:idx_menu_item_display_order"`
	Tags                   string              `gorm:"type:jsonb"`
	Status                 menu.MenuItemStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (MenuItemModel) TableName() string {
	return "menu_items"
}

func marshalStringList(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStringList(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return values, nil
}

// ToDomain converts the model to a domain MenuItem
func (m *MenuItemModel) ToDomain() (*menu.MenuItem, error) {
	included, err := unmarshalStringList(m.IncludedServices)
	if err != nil {
		return nil, err
	}
	requirements, err := unmarshalStringList(m.Requirements)
	if err != nil {
		return nil, err
	}
	benefits, err := unmarshalStringList(m.Benefits)
	if err != nil {
		return nil, err
	}
	tags, err := unmarshalStringList(m.Tags)
	if err != nil {
		return nil, err
	}

	return &menu.MenuItem{
		BaseAggregateRoot:      m.ToDomainAggregateRoot(),
		Name:                   m.Name,
		Description:            m.Description,
		Category:               m.Category,
		Duration:               menu.MustNewServiceDuration(m.DurationMinutes),
		Price:                  m.Price,
		IsPackage:              m.IsPackage,
		IncludedServices:       included,
		Requirements:           requirements,
		Benefits:               benefits,
		AdvanceBookingRequired: m.AdvanceBookingRequired,
		AdvanceBookingDays:     m.AdvanceBookingDays,
		ValidFrom:              m.ValidFrom,
		ValidTo:                m.ValidTo,
		DisplayOrder:           m.DisplayOrder,
		Tags:                   tags,
		Status:                 m.Status,
	}, nil
}

// FromDomain populates the model from a domain MenuItem
func (m *MenuItemModel) FromDomain(item *menu.MenuItem) error {
	included, err := marshalStringList(item.IncludedServices)
	if err != nil {
		return err
	}
	requirements, err := marshalStringList(item.Requirements)
	if err != nil {
		return err
	}
	benefits, err := marshalStringList(item.Benefits)
	if err != nil {
		return err
	}
	tags, err := marshalStringList(item.Tags)
	if err != nil {
		return err
	}

	m.FromDomainAggregateRoot(item.BaseAggregateRoot)
	m.Name = item.Name
	m.Description = item.Description
	m.Category = item.Category
	m.DurationMinutes = item.Duration.Minutes()
	m.Price = item.Price
	m.IsPackage = item.IsPackage
	m.IncludedServices = included
	m.Requirements = requirements
	m.Benefits = benefits
	m.AdvanceBookingRequired = item.AdvanceBookingRequired
	m.AdvanceBookingDays = item.AdvanceBookingDays
	m.ValidFrom = item.ValidFrom
	m.ValidTo = item.ValidTo
	m.DisplayOrder = item.DisplayOrder
	m.Tags = tags
	m.Status = item.Status
	return nil
}

// MenuItemModelFromDomain creates a model from a domain MenuItem
func MenuItemModelFromDomain(item *menu.MenuItem) (*MenuItemModel, error) {
	m := &MenuItemModel{}
	if err := m.FromDomain(item); err != nil {
		return nil, err
	}
	return m, nil
}

package models

import (
	"time"

	"github.com/salon/backend/internal/domain/crm"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// CustomerModel is the persistence model for the Customer aggregate.
type CustomerModel struct {
	AggregateModel
	Name        string             `gorm:"type:varchar(100);not null"`
	Email       string             `gorm:"type:varchar(254);not null;uniqueIndex:idx_customer_email"`
	Phone       string             `gorm:"type:varchar(20);not null;uniqueIndex:idx_customer_phone"`
	Points      int                `gorm:"not null;default:0"`
	TotalVisits int                `gorm:"not null;default:0"`
	LastVisitAt *time.Time         `gorm:"index"`
	Status      crm.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes       string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain Customer. The stored values
// were validated on the way in, so reconstruction uses the Must
// constructors.
func (m *CustomerModel) ToDomain() *crm.Customer {
	return &crm.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             valueobject.MustNewEmail(m.Email),
		Phone:             valueobject.MustNewPhone(m.Phone),
		Points:            crm.MustNewLoyaltyPoints(m.Points),
		TotalVisits:       m.TotalVisits,
		LastVisitAt:       m.LastVisitAt,
		Status:            m.Status,
		Notes:             m.Notes,
	}
}

// FromDomain populates the model from a domain Customer
func (m *CustomerModel) FromDomain(c *crm.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email.String()
	m.Phone = c.Phone.String()
	m.Points = c.Points.Value()
	m.TotalVisits = c.TotalVisits
	m.LastVisitAt = c.LastVisitAt
	m.Status = c.Status
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a model from a domain Customer
func CustomerModelFromDomain(c *crm.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

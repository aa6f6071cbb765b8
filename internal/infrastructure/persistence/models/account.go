package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salon/backend/internal/domain/account"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// ClientModel is the persistence model for the corporate Client
// aggregate. Contacts are stored as JSONB documents.
type ClientModel struct {
	AggregateModel
	CompanyName       string               `gorm:"type:varchar(200);not null;uniqueIndex:idx_client_company_name"`
	BusinessType      account.BusinessType `gorm:"type:varchar(30);not null;index"`
	PrimaryContact    string               `gorm:"type:jsonb;not null"`
	SecondaryContacts string               `gorm:"type:jsonb"`
	BillingAddress    string               `gorm:"type:text;not null"`
	PaymentTerms      account.PaymentTerms `gorm:"type:varchar(20);not null"`
	CreditLimit       decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	CurrentBalance    decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountPercent   decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0"`
	ContractStartDate *time.Time
	ContractEndDate   *time.Time `gorm:"index"`
	Status            account.ClientStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// contactDoc is the JSON shape of a contact person inside the
// contacts columns.
type contactDoc struct {
	Name      string `json:"name"`
	Position  string `json:"position,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsPrimary bool   `json:"is_primary"`
}

func contactToDoc(c account.ContactPerson) contactDoc {
	return contactDoc{
		Name:      c.Name,
		Position:  c.Position,
		Email:     c.Email.String(),
		Phone:     c.Phone.String(),
		IsPrimary: c.IsPrimary,
	}
}

func (d contactDoc) toDomain() account.ContactPerson {
	return account.ContactPerson{
		Name:      d.Name,
		Position:  d.Position,
		Email:     valueobject.MustNewEmail(d.Email),
		Phone:     valueobject.MustNewPhone(d.Phone),
		IsPrimary: d.IsPrimary,
	}
}

// ToDomain converts the model to a domain Client
func (m *ClientModel) ToDomain() (*account.Client, error) {
	var primaryDoc contactDoc
	if err := json.Unmarshal([]byte(m.PrimaryContact), &primaryDoc); err != nil {
		return nil, err
	}

	var secondaries []account.ContactPerson
	if m.SecondaryContacts != "" {
		var docs []contactDoc
		if err := json.Unmarshal([]byte(m.SecondaryContacts), &docs); err != nil {
			return nil, err
		}
		secondaries = make([]account.ContactPerson, 0, len(docs))
		for _, d := range docs {
			secondaries = append(secondaries, d.toDomain())
		}
	}

	return &account.Client{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CompanyName:       m.CompanyName,
		BusinessType:      m.BusinessType,
		PrimaryContact:    primaryDoc.toDomain(),
		SecondaryContacts: secondaries,
		BillingAddress:    m.BillingAddress,
		CreditTerms:       account.MustNewCreditTerms(m.PaymentTerms, m.CreditLimit, m.CurrentBalance, m.DiscountPercent),
		ContractStartDate: m.ContractStartDate,
		ContractEndDate:   m.ContractEndDate,
		Status:            m.Status,
	}, nil
}

// FromDomain populates the model from a domain Client
func (m *ClientModel) FromDomain(c *account.Client) error {
	primaryJSON, err := json.Marshal(contactToDoc(c.PrimaryContact))
	if err != nil {
		return err
	}

	docs := make([]contactDoc, 0, len(c.SecondaryContacts))
	for _, contact := range c.SecondaryContacts {
		docs = append(docs, contactToDoc(contact))
	}
	secondaryJSON, err := json.Marshal(docs)
	if err != nil {
		return err
	}

	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CompanyName = c.CompanyName
	m.BusinessType = c.BusinessType
	m.PrimaryContact = string(primaryJSON)
	m.SecondaryContacts = string(secondaryJSON)
	m.BillingAddress = c.BillingAddress
	m.PaymentTerms = c.CreditTerms.Terms()
	m.CreditLimit = c.CreditTerms.CreditLimit()
	m.CurrentBalance = c.CreditTerms.CurrentBalance()
	m.DiscountPercent = c.CreditTerms.DiscountPercent()
	m.ContractStartDate = c.ContractStartDate
	m.ContractEndDate = c.ContractEndDate
	m.Status = c.Status
	return nil
}

// ClientModelFromDomain creates a model from a domain Client
func ClientModelFromDomain(c *account.Client) (*ClientModel, error) {
	m := &ClientModel{}
	if err := m.FromDomain(c); err != nil {
		return nil, err
	}
	return m, nil
}

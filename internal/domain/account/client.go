package account

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salon/backend/internal/domain/shared"
)

// BusinessType classifies a B2B client account.
type BusinessType string

const (
	BusinessTypeSalon          BusinessType = "SALON"
	BusinessTypeSpa            BusinessType = "SPA"
	BusinessTypeBarbershop     BusinessType = "BARBERSHOP"
	BusinessTypeHotel          BusinessType = "HOTEL"
	BusinessTypeGym            BusinessType = "GYM"
	BusinessTypeWellnessCenter BusinessType = "WELLNESS_CENTER"
	BusinessTypeBeautySchool   BusinessType = "BEAUTY_SCHOOL"
	BusinessTypeRetailer       BusinessType = "RETAILER"
	BusinessTypeOther          BusinessType = "OTHER"
)

// String returns the business type code
func (t BusinessType) String() string {
	return string(t)
}

func validateBusinessType(t BusinessType) error {
	switch t {
	case BusinessTypeSalon, BusinessTypeSpa, BusinessTypeBarbershop, BusinessTypeHotel,
		BusinessTypeGym, BusinessTypeWellnessCenter, BusinessTypeBeautySchool,
		BusinessTypeRetailer, BusinessTypeOther:
		return nil
	default:
		return shared.NewValidationError("businessType", "Unknown business type: "+string(t))
	}
}

// ClientStatus represents the lifecycle status of a client account
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// MaxSecondaryContacts caps the number of secondary contacts per client.
const MaxSecondaryContacts = 5

// Client represents a B2B account (another salon, spa, hotel and so on)
// buying products or services wholesale. It is the aggregate root for
// account operations.
//
// Exactly one contact is primary. All contact emails across the account
// must be unique, compared exactly on the stored lower-cased value.
type Client struct {
	shared.BaseAggregateRoot
	CompanyName       string
	BusinessType      BusinessType
	PrimaryContact    ContactPerson
	SecondaryContacts []ContactPerson
	BillingAddress    string
	CreditTerms       CreditTerms
	ContractStartDate *time.Time
	ContractEndDate   *time.Time
	Status            ClientStatus
}

// NewClient creates a new client account. The contract window is
// optional; pass nil for both dates to leave it unset.
func NewClient(
	companyName string,
	businessType BusinessType,
	primaryContact ContactPerson,
	billingAddress string,
	creditTerms CreditTerms,
	contractStart, contractEnd *time.Time,
) (*Client, error) {
	if err := validateCompanyName(companyName); err != nil {
		return nil, err
	}
	if err := validateBusinessType(businessType); err != nil {
		return nil, err
	}
	if !primaryContact.IsPrimary {
		return nil, shared.NewBusinessRuleError("PRIMARY_CONTACT_REQUIRED",
			"The primary contact must have isPrimary set")
	}
	if err := validateBillingAddress(billingAddress); err != nil {
		return nil, err
	}
	if err := validateContractWindow(contractStart, contractEnd, true); err != nil {
		return nil, err
	}

	client := &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyName:       strings.TrimSpace(companyName),
		BusinessType:      businessType,
		PrimaryContact:    primaryContact,
		SecondaryContacts: make([]ContactPerson, 0),
		BillingAddress:    strings.TrimSpace(billingAddress),
		CreditTerms:       creditTerms,
		ContractStartDate: contractStart,
		ContractEndDate:   contractEnd,
		Status:            ClientStatusActive,
	}

	client.AddDomainEvent(NewClientCreatedEvent(client))

	return client, nil
}

// Rename updates the company name. Uniqueness against other clients is
// checked by the application service and the store's unique index.
func (c *Client) Rename(companyName string) error {
	if err := validateCompanyName(companyName); err != nil {
		return err
	}

	c.CompanyName = strings.TrimSpace(companyName)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientUpdatedEvent(c))

	return nil
}

// UpdateBillingAddress replaces the billing address
func (c *Client) UpdateBillingAddress(address string) error {
	if err := validateBillingAddress(address); err != nil {
		return err
	}

	c.BillingAddress = strings.TrimSpace(address)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientUpdatedEvent(c))

	return nil
}

// AddSecondaryContact adds a secondary contact. Fails when the account
// already has five, when the contact claims to be primary, or when its
// email collides with any existing contact email.
func (c *Client) AddSecondaryContact(contact ContactPerson) error {
	if len(c.SecondaryContacts) >= MaxSecondaryContacts {
		return shared.NewBusinessRuleError("SECONDARY_CONTACTS_FULL",
			"A client cannot have more than 5 secondary contacts")
	}
	if contact.IsPrimary {
		return shared.NewBusinessRuleError("DUPLICATE_PRIMARY_CONTACT",
			"A client has exactly one primary contact")
	}
	if c.hasContactEmail(contact.Email.String()) {
		return shared.NewBusinessRuleError("DUPLICATE_CONTACT_EMAIL",
			"Contact email is already used by another contact on this account")
	}

	c.SecondaryContacts = append(c.SecondaryContacts, contact)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientContactAddedEvent(c, contact))

	return nil
}

// RemoveSecondaryContact removes the secondary contact with the given
// email
func (c *Client) RemoveSecondaryContact(email string) error {
	for i, contact := range c.SecondaryContacts {
		if contact.Email.String() == email {
			c.SecondaryContacts = append(c.SecondaryContacts[:i], c.SecondaryContacts[i+1:]...)
			c.UpdatedAt = time.Now()
			c.IncrementVersion()
			return nil
		}
	}
	return shared.NewNotFoundError("contact", email)
}

// ReplacePrimaryContact swaps the primary contact. The replacement must
// be primary and must not reuse a secondary contact's email.
func (c *Client) ReplacePrimaryContact(contact ContactPerson) error {
	if !contact.IsPrimary {
		return shared.NewBusinessRuleError("PRIMARY_CONTACT_REQUIRED",
			"The primary contact must have isPrimary set")
	}
	for _, existing := range c.SecondaryContacts {
		if existing.Email.Equals(contact.Email) {
			return shared.NewBusinessRuleError("DUPLICATE_CONTACT_EMAIL",
				"Contact email is already used by another contact on this account")
		}
	}

	c.PrimaryContact = contact
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientUpdatedEvent(c))

	return nil
}

func (c *Client) hasContactEmail(email string) bool {
	if c.PrimaryContact.Email.String() == email {
		return true
	}
	for _, contact := range c.SecondaryContacts {
		if contact.Email.String() == email {
			return true
		}
	}
	return false
}

// AddCharge records a charge against the account's credit terms.
// Inactive accounts refuse new charges; payments stay allowed so an
// outstanding balance can still be settled.
func (c *Client) AddCharge(amount decimal.Decimal) error {
	if c.Status != ClientStatusActive {
		return shared.NewBusinessRuleError("ACCOUNT_INACTIVE",
			"Charges cannot be recorded on an inactive account")
	}

	terms, err := c.CreditTerms.AddCharge(amount)
	if err != nil {
		return err
	}

	c.CreditTerms = terms
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientChargedEvent(c, amount))

	return nil
}

// ProcessPayment records a payment against the outstanding balance
func (c *Client) ProcessPayment(amount decimal.Decimal) error {
	terms, err := c.CreditTerms.ProcessPayment(amount)
	if err != nil {
		return err
	}

	c.CreditTerms = terms
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientPaymentProcessedEvent(c, amount))

	return nil
}

// UpdateCreditTerms replaces the credit terms wholesale, carrying the
// outstanding balance unless the new terms bypass balance tracking.
func (c *Client) UpdateCreditTerms(terms CreditTerms) error {
	if !terms.Terms().BypassesBalanceTracking() &&
		c.CreditTerms.CurrentBalance().GreaterThan(terms.CreditLimit()) {
		return shared.NewBusinessRuleError("BALANCE_EXCEEDS_NEW_LIMIT",
			"Outstanding balance exceeds the new credit limit")
	}

	c.CreditTerms = terms
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientUpdatedEvent(c))

	return nil
}

// SetContractPeriod sets or replaces the contract window
func (c *Client) SetContractPeriod(start, end *time.Time) error {
	if err := validateContractWindow(start, end, false); err != nil {
		return err
	}

	c.ContractStartDate = start
	c.ContractEndDate = end
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientUpdatedEvent(c))

	return nil
}

// IsContractExpiring reports whether the contract ends within the given
// number of days from now. False when no end date is set.
func (c *Client) IsContractExpiring(daysAhead int) bool {
	if c.ContractEndDate == nil {
		return false
	}
	now := time.Now()
	deadline := now.AddDate(0, 0, daysAhead)
	return !c.ContractEndDate.Before(now) && !c.ContractEndDate.After(deadline)
}

// Activate reactivates an inactive client
func (c *Client) Activate() error {
	if c.Status == ClientStatusActive {
		return shared.NewDomainError("CLIENT_ALREADY_ACTIVE", "Client is already active")
	}

	oldStatus := c.Status
	c.Status = ClientStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientStatusChangedEvent(c, oldStatus, c.Status))

	return nil
}

// Deactivate marks the client as inactive
func (c *Client) Deactivate() error {
	if c.Status == ClientStatusInactive {
		return shared.NewDomainError("CLIENT_ALREADY_INACTIVE", "Client is already inactive")
	}

	oldStatus := c.Status
	c.Status = ClientStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientStatusChangedEvent(c, oldStatus, c.Status))

	return nil
}

// IsActive checks if the client is active
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

// Contacts returns the primary contact followed by the secondary
// contacts
func (c *Client) Contacts() []ContactPerson {
	contacts := make([]ContactPerson, 0, len(c.SecondaryContacts)+1)
	contacts = append(contacts, c.PrimaryContact)
	contacts = append(contacts, c.SecondaryContacts...)
	return contacts
}

func validateCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return shared.NewValidationError("companyName", "Company name must be at least 2 characters")
	}
	if len(name) > 200 {
		return shared.NewValidationError("companyName", "Company name cannot exceed 200 characters")
	}
	return nil
}

func validateBillingAddress(address string) error {
	address = strings.TrimSpace(address)
	if len(address) < 10 {
		return shared.NewValidationError("billingAddress", "Billing address must be at least 10 characters")
	}
	if len(address) > 500 {
		return shared.NewValidationError("billingAddress", "Billing address cannot exceed 500 characters")
	}
	return nil
}

// validateContractWindow checks start < end and, at creation time, that
// the end date is not already in the past.
func validateContractWindow(start, end *time.Time, atCreation bool) error {
	if start != nil && end != nil && !start.Before(*end) {
		return shared.NewValidationError("contractEndDate", "Contract end date must be after the start date")
	}
	if atCreation && end != nil && end.Before(time.Now()) {
		return shared.NewValidationError("contractEndDate", "Contract end date cannot be in the past")
	}
	return nil
}

package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salon/backend/internal/domain/account"
)

// ContactRequest represents a contact person in requests
type ContactRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Position  string `json:"position" binding:"max=100"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Phone     string `json:"phone" binding:"required,e164"`
	IsPrimary bool   `json:"is_primary"`
}

// CreditTermsRequest represents credit terms in requests
type CreditTermsRequest struct {
	PaymentTerms    string          `json:"payment_terms" binding:"required,oneof=PREPAID IMMEDIATE NET_15 NET_30 NET_60"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	CompanyName       string             `json:"company_name" binding:"required,min=2,max=200"`
	BusinessType      string             `json:"business_type" binding:"required"`
	PrimaryContact    ContactRequest     `json:"primary_contact" binding:"required"`
	BillingAddress    string             `json:"billing_address" binding:"required,min=10,max=500"`
	CreditTerms       CreditTermsRequest `json:"credit_terms" binding:"required"`
	ContractStartDate *time.Time         `json:"contract_start_date"`
	ContractEndDate   *time.Time         `json:"contract_end_date"`
}

// UpdateClientRequest represents a request to update a client.
// Nil fields are left unchanged.
type UpdateClientRequest struct {
	CompanyName    *string `json:"company_name" binding:"omitempty,min=2,max=200"`
	BillingAddress *string `json:"billing_address" binding:"omitempty,min=10,max=500"`
}

// AmountRequest represents a charge or payment amount
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ContractPeriodRequest represents a contract window change
type ContractPeriodRequest struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// ContactResponse represents a contact person in API responses
type ContactResponse struct {
	Name      string `json:"name"`
	Position  string `json:"position,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsPrimary bool   `json:"is_primary"`
}

// CreditTermsResponse represents credit terms in API responses
type CreditTermsResponse struct {
	PaymentTerms    string          `json:"payment_terms"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID                uuid.UUID           `json:"id"`
	CompanyName       string              `json:"company_name"`
	BusinessType      string              `json:"business_type"`
	PrimaryContact    ContactResponse     `json:"primary_contact"`
	SecondaryContacts []ContactResponse   `json:"secondary_contacts"`
	BillingAddress    string              `json:"billing_address"`
	CreditTerms       CreditTermsResponse `json:"credit_terms"`
	ContractStartDate *time.Time          `json:"contract_start_date,omitempty"`
	ContractEndDate   *time.Time          `json:"contract_end_date,omitempty"`
	ContractExpiring  bool                `json:"contract_expiring"`
	Status            string              `json:"status"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	Version           int                 `json:"version"`
}

// ClientListFilter represents filter options for the client list
type ClientListFilter struct {
	Page             int    `form:"page"`
	PageSize         int    `form:"page_size"`
	OrderBy          string `form:"order_by"`
	OrderDir         string `form:"order_dir"`
	Search           string `form:"search"`
	BusinessType     string `form:"business_type"`
	Status           string `form:"status" binding:"omitempty,oneof=active inactive"`
	ExpiringContract bool   `form:"expiring_contract"`
}

// contractExpiryWindowDays is the default look-ahead for the
// contract-expiring derived field.
const contractExpiryWindowDays = 30

// ToContactResponse converts a domain ContactPerson
func ToContactResponse(c account.ContactPerson) ContactResponse {
	return ContactResponse{
		Name:      c.Name,
		Position:  c.Position,
		Email:     c.Email.String(),
		Phone:     c.Phone.String(),
		IsPrimary: c.IsPrimary,
	}
}

// ToClientResponse converts a domain Client to ClientResponse
func ToClientResponse(c *account.Client) ClientResponse {
	secondary := make([]ContactResponse, len(c.SecondaryContacts))
	for i, contact := range c.SecondaryContacts {
		secondary[i] = ToContactResponse(contact)
	}

	return ClientResponse{
		ID:                c.ID,
		CompanyName:       c.CompanyName,
		BusinessType:      string(c.BusinessType),
		PrimaryContact:    ToContactResponse(c.PrimaryContact),
		SecondaryContacts: secondary,
		BillingAddress:    c.BillingAddress,
		CreditTerms: CreditTermsResponse{
			PaymentTerms:    string(c.CreditTerms.Terms()),
			CreditLimit:     c.CreditTerms.CreditLimit(),
			CurrentBalance:  c.CreditTerms.CurrentBalance(),
			AvailableCredit: c.CreditTerms.AvailableCredit(),
			DiscountPercent: c.CreditTerms.DiscountPercent(),
		},
		ContractStartDate: c.ContractStartDate,
		ContractEndDate:   c.ContractEndDate,
		ContractExpiring:  c.IsContractExpiring(contractExpiryWindowDays),
		Status:            string(c.Status),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
		Version:           c.Version,
	}
}

// ToClientResponses converts a slice of domain Clients
func ToClientResponses(clients []account.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses
}

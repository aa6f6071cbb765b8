package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salon/backend/internal/domain/account"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// ClientService handles B2B client account operations
type ClientService struct {
	clientRepo account.ClientRepository
	events     shared.EventPublisher
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo account.ClientRepository, events shared.EventPublisher) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		events:     events,
	}
}

// Create creates a new client account. The company name check is
// advisory; the store's unique index is the last line of defense.
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	primary, err := buildContact(req.PrimaryContact)
	if err != nil {
		return nil, err
	}

	terms, err := buildCreditTerms(req.CreditTerms)
	if err != nil {
		return nil, err
	}

	exists, err := s.clientRepo.ExistsByCompanyName(ctx, req.CompanyName, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("Client with this company name already exists")
	}

	client, err := account.NewClient(
		req.CompanyName,
		account.BusinessType(req.BusinessType),
		primary,
		req.BillingAddress,
		terms,
		req.ContractStartDate,
		req.ContractEndDate,
	)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, client)

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves a page of clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, filter ClientListFilter) (shared.Paginated[ClientResponse], error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "company_name"
		domainFilter.OrderDir = "asc"
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	domainFilter = domainFilter.Normalize()

	var (
		page shared.Paginated[account.Client]
		err  error
	)
	switch {
	case filter.ExpiringContract:
		page, err = s.clientRepo.FindWithExpiringContracts(ctx, contractExpiryWindowDays, domainFilter)
	case filter.BusinessType != "":
		page, err = s.clientRepo.FindByBusinessType(ctx, account.BusinessType(filter.BusinessType), domainFilter)
	default:
		page, err = s.clientRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return shared.Paginated[ClientResponse]{}, err
	}

	return shared.NewPaginated(ToClientResponses(page.Items), page.Total, page.Page, page.PageSize), nil
}

// Update updates a client's company name and billing address
func (s *ClientService) Update(ctx context.Context, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil && *req.CompanyName != client.CompanyName {
		exists, err := s.clientRepo.ExistsByCompanyName(ctx, *req.CompanyName, client.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflictError("Client with this company name already exists")
		}
		if err := client.Rename(*req.CompanyName); err != nil {
			return nil, err
		}
	}

	if req.BillingAddress != nil {
		if err := client.UpdateBillingAddress(*req.BillingAddress); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, client)

	response := ToClientResponse(client)
	return &response, nil
}

// AddSecondaryContact adds a secondary contact to a client
func (s *ClientService) AddSecondaryContact(ctx context.Context, clientID uuid.UUID, req ContactRequest) (*ClientResponse, error) {
	contact, err := buildContact(req)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, clientID, func(client *account.Client) error {
		return client.AddSecondaryContact(contact)
	})
}

// RemoveSecondaryContact removes a secondary contact by email
func (s *ClientService) RemoveSecondaryContact(ctx context.Context, clientID uuid.UUID, email string) (*ClientResponse, error) {
	return s.mutate(ctx, clientID, func(client *account.Client) error {
		return client.RemoveSecondaryContact(email)
	})
}

// ReplacePrimaryContact replaces the primary contact
func (s *ClientService) ReplacePrimaryContact(ctx context.Context, clientID uuid.UUID, req ContactRequest) (*ClientResponse, error) {
	contact, err := buildContact(req)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, clientID, func(client *account.Client) error {
		return client.ReplacePrimaryContact(contact)
	})
}

// AddCharge records a charge against the client's credit line
func (s *ClientService) AddCharge(ctx context.Context, clientID uuid.UUID, req AmountRequest) (*ClientResponse, error) {
	return s.mutate(ctx, clientID, func(client *account.Client) error {
		return client.AddCharge(req.Amount)
	})
}

// ProcessPayment records a payment against the client's balance
func (s *ClientService) ProcessPayment(ctx context.Context, clientID uuid.UUID, req AmountRequest) (*ClientResponse, error) {
	return s.mutate(ctx, clientID, func(client *account.Client) error {
		return client.ProcessPayment(req.Amount)
	})
}

// UpdateCreditTerms replaces the client's credit terms. The current
// balance is carried over and must fit within the new limit.
func (s *ClientService) UpdateCreditTerms(ctx context.Context, clientID uuid.UUID, req CreditTermsRequest) (*ClientResponse, error) {
	return s.mutate(ctx, clientID, func(client *account.Client) error {
		terms, err := account.NewCreditTerms(
			account.PaymentTerms(req.PaymentTerms),
			req.CreditLimit,
			client.CreditTerms.CurrentBalance(),
			req.DiscountPercent,
		)
		if err != nil {
			return err
		}
		return client.UpdateCreditTerms(terms)
	})
}

// SetContractPeriod sets or clears the client's contract window
func (s *ClientService) SetContractPeriod(ctx context.Context, clientID uuid.UUID, req ContractPeriodRequest) (*ClientResponse, error) {
	return s.mutate(ctx, clientID, func(client *account.Client) error {
		return client.SetContractPeriod(req.StartDate, req.EndDate)
	})
}

// Activate reactivates a client account
func (s *ClientService) Activate(ctx context.Context, clientID uuid.UUID) (*ClientResponse, error) {
	return s.mutate(ctx, clientID, func(client *account.Client) error {
		return client.Activate()
	})
}

// Deactivate deactivates a client account
func (s *ClientService) Deactivate(ctx context.Context, clientID uuid.UUID) (*ClientResponse, error) {
	return s.mutate(ctx, clientID, func(client *account.Client) error {
		return client.Deactivate()
	})
}

// Delete removes a client account
func (s *ClientService) Delete(ctx context.Context, clientID uuid.UUID) error {
	if err := s.clientRepo.Delete(ctx, clientID); err != nil {
		return err
	}
	if s.events != nil {
		_ = s.events.Publish(ctx, account.NewClientDeletedEvent(clientID))
	}
	return nil
}

// mutate loads a client, applies the mutation and saves the result
func (s *ClientService) mutate(ctx context.Context, clientID uuid.UUID, fn func(*account.Client) error) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if err := fn(client); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, client)

	response := ToClientResponse(client)
	return &response, nil
}

func (s *ClientService) publishEvents(ctx context.Context, client *account.Client) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, client.GetDomainEvents()...)
	client.ClearDomainEvents()
}

func buildContact(req ContactRequest) (account.ContactPerson, error) {
	email, err := valueobject.NewEmail(req.Email)
	if err != nil {
		return account.ContactPerson{}, err
	}
	phone, err := valueobject.NewPhone(req.Phone)
	if err != nil {
		return account.ContactPerson{}, err
	}
	return account.NewContactPerson(req.Name, req.Position, email, phone, req.IsPrimary)
}

func buildCreditTerms(req CreditTermsRequest) (account.CreditTerms, error) {
	return account.NewCreditTerms(
		account.PaymentTerms(req.PaymentTerms),
		req.CreditLimit,
		decimal.Zero,
		req.DiscountPercent,
	)
}

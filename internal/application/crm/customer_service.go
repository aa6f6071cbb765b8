package crm

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salon/backend/internal/domain/crm"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// MetricsRecorder receives counters for customer lifecycle operations.
// A nil recorder is a no-op.
type MetricsRecorder interface {
	RecordCustomerRegistered(ctx context.Context)
	RecordVisit(ctx context.Context)
	RecordPointsEarned(ctx context.Context, points int64)
	RecordPointsRedeemed(ctx context.Context, points int64)
}

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo crm.CustomerRepository
	events       shared.EventPublisher
	metrics      MetricsRecorder
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo crm.CustomerRepository, events shared.EventPublisher) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		events:       events,
	}
}

// SetMetricsRecorder attaches a metrics recorder. Must be called before
// the service starts handling requests.
func (s *CustomerService) SetMetricsRecorder(metrics MetricsRecorder) {
	s.metrics = metrics
}

// Create creates a new customer. The duplicate checks are advisory; the
// store's unique indexes are the last line of defense and surface as
// conflict errors from Save.
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	email, err := valueobject.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}
	phone, err := valueobject.NewPhone(req.Phone)
	if err != nil {
		return nil, err
	}

	exists, err := s.customerRepo.ExistsByEmail(ctx, email.String(), uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("Customer with this email already exists")
	}

	exists, err = s.customerRepo.ExistsByPhone(ctx, phone.String(), uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("Customer with this phone already exists")
	}

	customer, err := crm.NewCustomer(req.Name, email, phone)
	if err != nil {
		return nil, err
	}

	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	if s.metrics != nil {
		s.metrics.RecordCustomerRegistered(ctx)
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a page of customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) (shared.Paginated[CustomerResponse], error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "created_at"
		domainFilter.OrderDir = "desc"
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	domainFilter = domainFilter.Normalize()

	page, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}

	return shared.NewPaginated(ToCustomerResponses(page.Items), page.Total, page.Page, page.PageSize), nil
}

// Update updates a customer's profile fields
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := customer.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Email != nil || req.Phone != nil {
		email := customer.Email
		phone := customer.Phone

		if req.Email != nil {
			email, err = valueobject.NewEmail(*req.Email)
			if err != nil {
				return nil, err
			}
			if !email.Equals(customer.Email) {
				exists, err := s.customerRepo.ExistsByEmail(ctx, email.String(), customer.ID)
				if err != nil {
					return nil, err
				}
				if exists {
					return nil, shared.NewConflictError("Customer with this email already exists")
				}
			}
		}
		if req.Phone != nil {
			phone, err = valueobject.NewPhone(*req.Phone)
			if err != nil {
				return nil, err
			}
			if !phone.Equals(customer.Phone) {
				exists, err := s.customerRepo.ExistsByPhone(ctx, phone.String(), customer.ID)
				if err != nil {
					return nil, err
				}
				if exists {
					return nil, shared.NewConflictError("Customer with this phone already exists")
				}
			}
		}

		if err := customer.UpdateContact(email, phone); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// EarnPoints credits loyalty points to a customer
func (s *CustomerService) EarnPoints(ctx context.Context, customerID uuid.UUID, req PointsRequest) (*CustomerResponse, error) {
	resp, err := s.mutate(ctx, customerID, func(customer *crm.Customer) error {
		return customer.EarnPoints(req.Points)
	})
	if err == nil && s.metrics != nil {
		s.metrics.RecordPointsEarned(ctx, int64(req.Points))
	}
	return resp, err
}

// RedeemPoints debits loyalty points from a customer
func (s *CustomerService) RedeemPoints(ctx context.Context, customerID uuid.UUID, req PointsRequest) (*CustomerResponse, error) {
	resp, err := s.mutate(ctx, customerID, func(customer *crm.Customer) error {
		return customer.RedeemPoints(req.Points)
	})
	if err == nil && s.metrics != nil {
		s.metrics.RecordPointsRedeemed(ctx, int64(req.Points))
	}
	return resp, err
}

// RecordVisit records a salon visit for a customer
func (s *CustomerService) RecordVisit(ctx context.Context, customerID uuid.UUID, req RecordVisitRequest) (*CustomerResponse, error) {
	visitedAt := time.Now()
	if req.VisitedAt != nil {
		visitedAt = *req.VisitedAt
	}
	resp, err := s.mutate(ctx, customerID, func(customer *crm.Customer) error {
		return customer.RecordVisit(visitedAt)
	})
	if err == nil && s.metrics != nil {
		s.metrics.RecordVisit(ctx)
	}
	return resp, err
}

// Activate reactivates a customer
func (s *CustomerService) Activate(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	return s.mutate(ctx, customerID, func(customer *crm.Customer) error {
		return customer.Activate()
	})
}

// Deactivate deactivates a customer
func (s *CustomerService) Deactivate(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	return s.mutate(ctx, customerID, func(customer *crm.Customer) error {
		return customer.Deactivate()
	})
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, customerID); err != nil {
		return err
	}
	if s.events != nil {
		_ = s.events.Publish(ctx, crm.NewCustomerDeletedEvent(customerID))
	}
	return nil
}

// mutate loads a customer, applies the mutation and saves the result
func (s *CustomerService) mutate(ctx context.Context, customerID uuid.UUID, fn func(*crm.Customer) error) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := fn(customer); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

func (s *CustomerService) publishEvents(ctx context.Context, customer *crm.Customer) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, customer.GetDomainEvents()...)
	customer.ClearDomainEvents()
}

package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salon/backend/internal/domain/crm"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// MockCustomerRepository is a mock implementation of crm.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*crm.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*crm.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[crm.Customer], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[crm.Customer]), args.Error(1)
}

func (m *MockCustomerRepository) FindByStatus(ctx context.Context, status crm.CustomerStatus, filter shared.Filter) (shared.Paginated[crm.Customer], error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).(shared.Paginated[crm.Customer]), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *crm.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, phone string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, phone, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func existingCustomer(t *testing.T) *crm.Customer {
	t.Helper()
	customer, err := crm.NewCustomer(
		"Jamie Rivera",
		valueobject.MustNewEmail("jamie@example.com"),
		valueobject.MustNewPhone("+14155552671"),
	)
	require.NoError(t, err)
	customer.ClearDomainEvents()
	return customer
}

func TestCustomerServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates customer when email and phone are free", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, nil)

		repo.On("ExistsByEmail", ctx, "jamie@example.com", uuid.Nil).Return(false, nil)
		repo.On("ExistsByPhone", ctx, "+14155552671", uuid.Nil).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*crm.Customer")).Return(nil)

		resp, err := service.Create(ctx, CreateCustomerRequest{
			Name:  "Jamie Rivera",
			Email: "Jamie@Example.com",
			Phone: "+1 415 555 2671",
		})

		require.NoError(t, err)
		assert.Equal(t, "jamie@example.com", resp.Email)
		assert.Equal(t, "+14155552671", resp.Phone)
		assert.Equal(t, 0, resp.LoyaltyPoints)
		assert.Equal(t, "bronze", resp.Tier)
		assert.False(t, resp.IsVIP)
		repo.AssertExpectations(t)
	})

	t.Run("returns conflict for a taken email", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, nil)

		repo.On("ExistsByEmail", ctx, "jamie@example.com", uuid.Nil).Return(true, nil)

		_, err := service.Create(ctx, CreateCustomerRequest{
			Name:  "Jamie Rivera",
			Email: "jamie@example.com",
			Phone: "+14155552671",
		})

		assert.Error(t, err)
		assert.True(t, shared.IsConflict(err))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("propagates email validation failure unchanged", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, nil)

		_, err := service.Create(ctx, CreateCustomerRequest{
			Name:  "Jamie Rivera",
			Email: "not-an-email",
			Phone: "+14155552671",
		})

		assert.Error(t, err)
		assert.True(t, shared.IsValidation(err))
		repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCustomerServicePoints(t *testing.T) {
	ctx := context.Background()

	t.Run("earn points saves and maps derived fields", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, nil)
		customer := existingCustomer(t)

		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repo.On("Save", ctx, customer).Return(nil)

		resp, err := service.EarnPoints(ctx, customer.ID, PointsRequest{Points: 1200})

		require.NoError(t, err)
		assert.Equal(t, 1200, resp.LoyaltyPoints)
		assert.Equal(t, "gold", resp.Tier)
		assert.True(t, resp.IsVIP)
	})

	t.Run("redeem with insufficient balance does not save", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, nil)
		customer := existingCustomer(t)

		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)

		_, err := service.RedeemPoints(ctx, customer.ID, PointsRequest{Points: 10})

		assert.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing customer propagates not found", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, nil)
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.NewNotFoundError("customer", id.String()))

		_, err := service.EarnPoints(ctx, id, PointsRequest{Points: 10})

		assert.Error(t, err)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestCustomerServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("changing email re-checks uniqueness excluding self", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, nil)
		customer := existingCustomer(t)
		newEmail := "newjamie@example.com"

		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repo.On("ExistsByEmail", ctx, newEmail, customer.ID).Return(false, nil)
		repo.On("Save", ctx, customer).Return(nil)

		resp, err := service.Update(ctx, customer.ID, UpdateCustomerRequest{Email: &newEmail})

		require.NoError(t, err)
		assert.Equal(t, newEmail, resp.Email)
		repo.AssertExpectations(t)
	})

	t.Run("unchanged email skips the uniqueness check", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, nil)
		customer := existingCustomer(t)
		sameEmail := "jamie@example.com"

		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repo.On("Save", ctx, customer).Return(nil)

		_, err := service.Update(ctx, customer.ID, UpdateCustomerRequest{Email: &sameEmail})

		require.NoError(t, err)
		repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, nil)
		customer := existingCustomer(t)
		name := "New Name"

		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repo.On("Save", ctx, customer).Return(errors.New("connection reset"))

		_, err := service.Update(ctx, customer.ID, UpdateCustomerRequest{Name: &name})

		assert.Error(t, err)
	})
}

func TestCustomerServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to created_at desc and normalizes paging", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, nil)
		customer := existingCustomer(t)

		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.OrderBy == "created_at" && f.OrderDir == "desc" && f.Page == 1 && f.PageSize == shared.DefaultPageSize
		})).Return(shared.NewPaginated([]crm.Customer{*customer}, 1, 1, shared.DefaultPageSize), nil)

		page, err := service.List(ctx, CustomerListFilter{})

		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("page size is capped", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, nil)

		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.PageSize == shared.MaxPageSize
		})).Return(shared.NewPaginated([]crm.Customer{}, 0, 1, shared.MaxPageSize), nil)

		_, err := service.List(ctx, CustomerListFilter{PageSize: 5000})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

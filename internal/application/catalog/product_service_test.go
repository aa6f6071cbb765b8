package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salon/backend/internal/domain/catalog"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, category catalog.ProductCategory, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	args := m.Called(ctx, category, filter)
	return args.Get(0).(shared.Paginated[catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) FindByType(ctx context.Context, productType catalog.ProductType, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	args := m.Called(ctx, productType, filter)
	return args.Get(0).(shared.Paginated[catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) NextSKUSequence(ctx context.Context, category catalog.ProductCategory) (int, error) {
	args := m.Called(ctx, category)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func existingPhysical(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewPhysicalProduct(
		"Argan Oil Shampoo", "Sulfate-free shampoo, 250ml",
		valueobject.MustNewPrice("18.50"), catalog.CategoryHairCare,
		catalog.MustNewSKU("HC-002"), 10, 3,
	)
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("generates the SKU from category prefix and sequence", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		duration := 45

		repo.On("NextSKUSequence", ctx, catalog.CategoryHairCare).Return(7, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, CreateProductRequest{
			Name:            "Classic Haircut",
			Description:     "A 45-minute cut and finish",
			Price:           decimal.NewFromFloat(35.00),
			Category:        "HAIR_CARE",
			Type:            "SERVICE",
			DurationMinutes: &duration,
		})

		require.NoError(t, err)
		assert.Equal(t, "HC-007", resp.SKU)
		assert.Equal(t, 45, *resp.DurationMinutes)
		repo.AssertExpectations(t)
	})

	t.Run("service with stock fields is a business-rule violation", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		duration := 45
		stock := 10

		repo.On("NextSKUSequence", ctx, catalog.CategoryHairCare).Return(8, nil)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:            "Classic Haircut",
			Description:     "A 45-minute cut and finish",
			Price:           decimal.NewFromFloat(35.00),
			Category:        "HAIR_CARE",
			Type:            "SERVICE",
			DurationMinutes: &duration,
			StockLevel:      &stock,
		})

		assert.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown categories before touching the repository", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:     "Mystery Item",
			Price:    decimal.NewFromFloat(10.00),
			Category: "GROCERIES",
			Type:     "SERVICE",
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "NextSKUSequence", mock.Anything, mock.Anything)
	})

	t.Run("rejects a three-decimal price", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:     "Classic Haircut",
			Price:    decimal.RequireFromString("35.005"),
			Category: "HAIR_CARE",
			Type:     "SERVICE",
		})

		assert.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestProductServiceStock(t *testing.T) {
	ctx := context.Background()

	t.Run("restock saves and maps derived fields", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		product := existingPhysical(t)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		resp, err := service.Restock(ctx, product.ID, StockRequest{Quantity: 15})

		require.NoError(t, err)
		assert.Equal(t, 25, *resp.StockLevel)
		assert.False(t, resp.LowStock)
	})

	t.Run("deduction to zero reports out of stock", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		product := existingPhysical(t)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		resp, err := service.DeductStock(ctx, product.ID, StockRequest{Quantity: 10})

		require.NoError(t, err)
		assert.True(t, resp.OutOfStock)
	})

	t.Run("over-deduction fails without saving", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)
		product := existingPhysical(t)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.DeductStock(ctx, product.ID, StockRequest{Quantity: 11})

		assert.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to name asc", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.OrderBy == "name" && f.OrderDir == "asc"
		})).Return(shared.NewPaginated([]catalog.Product{}, 0, 1, shared.DefaultPageSize), nil)

		_, err := service.List(ctx, ProductListFilter{})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("low-stock listing uses the dedicated finder", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo, nil)

		repo.On("FindLowStock", ctx, mock.Anything).
			Return(shared.NewPaginated([]catalog.Product{}, 0, 1, shared.DefaultPageSize), nil)

		_, err := service.List(ctx, ProductListFilter{LowStock: true})

		require.NoError(t, err)
		repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})
}

package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/salon/backend/internal/domain/catalog"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	events      shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, events shared.EventPublisher) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		events:      events,
	}
}

// Create creates a new product with a generated SKU
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	price, err := valueobject.NewPrice(req.Price)
	if err != nil {
		return nil, err
	}

	category := catalog.ProductCategory(req.Category)
	if !category.IsValid() {
		return nil, shared.NewValidationError("category", "Unknown product category: "+req.Category)
	}

	sequence, err := s.productRepo.NextSKUSequence(ctx, category)
	if err != nil {
		return nil, err
	}
	sku, err := catalog.GenerateSKU(category.SKUPrefix(), sequence)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(
		req.Name, req.Description, price, category,
		catalog.ProductType(req.Type), sku,
		req.DurationMinutes, req.StockLevel, req.LowStockThreshold,
	)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	parsed, err := catalog.NewSKU(sku)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindBySKU(ctx, parsed.String())
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a page of products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (shared.Paginated[ProductResponse], error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "name"
		domainFilter.OrderDir = "asc"
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	domainFilter = domainFilter.Normalize()

	var page shared.Paginated[catalog.Product]
	var err error
	if filter.LowStock {
		page, err = s.productRepo.FindLowStock(ctx, domainFilter)
	} else {
		page, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}

	return shared.NewPaginated(ToProductResponses(page.Items), page.Total, page.Page, page.PageSize), nil
}

// Update updates a product's basic fields
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		price, err := valueobject.NewPrice(*req.Price)
		if err != nil {
			return nil, err
		}
		if err := product.ChangePrice(price); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Restock adds stock to a physical product
func (s *ProductService) Restock(ctx context.Context, productID uuid.UUID, req StockRequest) (*ProductResponse, error) {
	return s.mutate(ctx, productID, func(product *catalog.Product) error {
		return product.Restock(req.Quantity)
	})
}

// DeductStock removes stock from a physical product
func (s *ProductService) DeductStock(ctx context.Context, productID uuid.UUID, req StockRequest) (*ProductResponse, error) {
	return s.mutate(ctx, productID, func(product *catalog.Product) error {
		return product.DeductStock(req.Quantity)
	})
}

// UpdateDuration changes a service's duration
func (s *ProductService) UpdateDuration(ctx context.Context, productID uuid.UUID, req DurationRequest) (*ProductResponse, error) {
	return s.mutate(ctx, productID, func(product *catalog.Product) error {
		return product.UpdateDuration(req.DurationMinutes)
	})
}

// SetLowStockThreshold changes a physical product's low-stock threshold
func (s *ProductService) SetLowStockThreshold(ctx context.Context, productID uuid.UUID, req ThresholdRequest) (*ProductResponse, error) {
	return s.mutate(ctx, productID, func(product *catalog.Product) error {
		return product.SetLowStockThreshold(req.LowStockThreshold)
	})
}

// Activate reactivates a product
func (s *ProductService) Activate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.mutate(ctx, productID, func(product *catalog.Product) error {
		return product.Activate()
	})
}

// Deactivate deactivates a product
func (s *ProductService) Deactivate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.mutate(ctx, productID, func(product *catalog.Product) error {
		return product.Deactivate()
	})
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	if s.events != nil {
		_ = s.events.Publish(ctx, catalog.NewProductDeletedEvent(productID))
	}
	return nil
}

func (s *ProductService) mutate(ctx context.Context, productID uuid.UUID, fn func(*catalog.Product) error) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := fn(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, product.GetDomainEvents()...)
	product.ClearDomainEvents()
}

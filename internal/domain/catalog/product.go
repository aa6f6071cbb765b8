package catalog

import (
	"strings"
	"time"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Service duration constraints in minutes.
const (
	MinDurationMinutes  = 5
	MaxDurationMinutes  = 480
	DurationStepMinutes = 5
)

// Product represents a sellable catalog entry: a bookable service, a
// physical retail product, or a package. It is the aggregate root for
// catalog operations.
//
// Duration fields are present iff the type requires a duration (services
// and packages); stock fields are present iff the type tracks inventory
// (physical products). Violations of either rule are business-rule
// errors, not field validation errors.
type Product struct {
	shared.BaseAggregateRoot
	Name              string
	Description       string
	Price             valueobject.Price
	Category          ProductCategory
	Type              ProductType
	SKU               SKU
	Status            ProductStatus
	DurationMinutes   *int
	StockLevel        *int
	LowStockThreshold *int
}

// NewProduct creates a new product. Pass nil for the duration and stock
// fields that the product type does not require.
func NewProduct(
	name, description string,
	price valueobject.Price,
	category ProductCategory,
	productType ProductType,
	sku SKU,
	durationMinutes, stockLevel, lowStockThreshold *int,
) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateProductDescription(description); err != nil {
		return nil, err
	}
	if price.IsZero() {
		return nil, shared.NewValidationError("price", "Price is required")
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := validateProductType(productType); err != nil {
		return nil, err
	}
	if sku.IsZero() {
		return nil, shared.NewValidationError("sku", "SKU is required")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       strings.TrimSpace(description),
		Price:             price,
		Category:          category,
		Type:              productType,
		SKU:               sku,
		Status:            ProductStatusActive,
		DurationMinutes:   durationMinutes,
		StockLevel:        stockLevel,
		LowStockThreshold: lowStockThreshold,
	}

	if err := product.checkTypeFieldRules(); err != nil {
		return nil, err
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// NewService creates a bookable service product
func NewService(name, description string, price valueobject.Price, category ProductCategory, sku SKU, durationMinutes int) (*Product, error) {
	return NewProduct(name, description, price, category, ProductTypeService, sku, &durationMinutes, nil, nil)
}

// NewPhysicalProduct creates a stock-tracked retail product
func NewPhysicalProduct(name, description string, price valueobject.Price, category ProductCategory, sku SKU, stockLevel, lowStockThreshold int) (*Product, error) {
	return NewProduct(name, description, price, category, ProductTypePhysical, sku, nil, &stockLevel, &lowStockThreshold)
}

// NewPackageProduct creates a multi-service package product
func NewPackageProduct(name, description string, price valueobject.Price, sku SKU, durationMinutes int) (*Product, error) {
	return NewProduct(name, description, price, CategoryPackages, ProductTypePackage, sku, &durationMinutes, nil, nil)
}

// checkTypeFieldRules enforces the presence rules between product type
// and the duration/stock field groups.
func (p *Product) checkTypeFieldRules() error {
	if p.Type.RequiresDuration() {
		if p.DurationMinutes == nil {
			return shared.NewBusinessRuleError("DURATION_REQUIRED",
				"Products of type "+p.Type.String()+" must have a duration")
		}
		if err := validateDurationMinutes(*p.DurationMinutes); err != nil {
			return err
		}
	} else if p.DurationMinutes != nil {
		return shared.NewBusinessRuleError("DURATION_NOT_ALLOWED",
			"Products of type "+p.Type.String()+" cannot have a duration")
	}

	if p.Type.RequiresInventory() {
		if p.StockLevel == nil || p.LowStockThreshold == nil {
			return shared.NewBusinessRuleError("STOCK_FIELDS_REQUIRED",
				"Physical products must have a stock level and low-stock threshold")
		}
		if *p.StockLevel < 0 {
			return shared.NewBusinessRuleError("INVALID_STOCK_LEVEL", "Stock level cannot be negative")
		}
		if *p.LowStockThreshold < 0 {
			return shared.NewBusinessRuleError("INVALID_STOCK_THRESHOLD", "Low-stock threshold cannot be negative")
		}
	} else if p.StockLevel != nil || p.LowStockThreshold != nil {
		return shared.NewBusinessRuleError("STOCK_FIELDS_NOT_ALLOWED",
			"Products of type "+p.Type.String()+" cannot track stock")
	}

	return nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateProductDescription(description); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// ChangePrice replaces the product's price
func (p *Product) ChangePrice(price valueobject.Price) error {
	if price.IsZero() {
		return shared.NewValidationError("price", "Price is required")
	}

	oldPrice := p.Price
	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))

	return nil
}

// UpdateDuration changes the service duration. Fails for product types
// that do not carry a duration.
func (p *Product) UpdateDuration(minutes int) error {
	if !p.Type.RequiresDuration() {
		return shared.NewBusinessRuleError("DURATION_NOT_ALLOWED",
			"Products of type "+p.Type.String()+" cannot have a duration")
	}
	if err := validateDurationMinutes(minutes); err != nil {
		return err
	}

	p.DurationMinutes = &minutes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// Restock adds units to the stock level. Fails for product types that do
// not track inventory and for negative quantities.
func (p *Product) Restock(quantity int) error {
	if !p.Type.RequiresInventory() {
		return shared.NewBusinessRuleError("STOCK_NOT_TRACKED",
			"Products of type "+p.Type.String()+" do not track stock")
	}
	if quantity < 0 {
		return shared.NewBusinessRuleError("INVALID_RESTOCK_QUANTITY", "Restock quantity cannot be negative")
	}

	newLevel := *p.StockLevel + quantity
	p.StockLevel = &newLevel
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, newLevel-quantity))

	return nil
}

// DeductStock removes units from the stock level, failing when the
// deduction exceeds what is on hand.
func (p *Product) DeductStock(quantity int) error {
	if !p.Type.RequiresInventory() {
		return shared.NewBusinessRuleError("STOCK_NOT_TRACKED",
			"Products of type "+p.Type.String()+" do not track stock")
	}
	if quantity < 0 {
		return shared.NewBusinessRuleError("INVALID_DEDUCT_QUANTITY", "Deduction quantity cannot be negative")
	}
	if quantity > *p.StockLevel {
		return shared.ErrInsufficientStock
	}

	newLevel := *p.StockLevel - quantity
	p.StockLevel = &newLevel
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, newLevel+quantity))

	return nil
}

// SetLowStockThreshold changes the level at which the product is
// reported as running low
func (p *Product) SetLowStockThreshold(threshold int) error {
	if !p.Type.RequiresInventory() {
		return shared.NewBusinessRuleError("STOCK_NOT_TRACKED",
			"Products of type "+p.Type.String()+" do not track stock")
	}
	if threshold < 0 {
		return shared.NewBusinessRuleError("INVALID_STOCK_THRESHOLD", "Low-stock threshold cannot be negative")
	}

	p.LowStockThreshold = &threshold
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate reactivates an inactive product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("PRODUCT_ALREADY_ACTIVE", "Product is already active")
	}

	oldStatus := p.Status
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, p.Status))

	return nil
}

// Deactivate marks the product as inactive
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("PRODUCT_ALREADY_INACTIVE", "Product is already inactive")
	}

	oldStatus := p.Status
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, p.Status))

	return nil
}

// IsActive checks if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsOutOfStock reports whether a stock-tracked product has nothing on hand.
// Always false for services and packages.
func (p *Product) IsOutOfStock() bool {
	if !p.Type.RequiresInventory() || p.StockLevel == nil {
		return false
	}
	return *p.StockLevel == 0
}

// IsLowStock reports whether the stock level has fallen to the low-stock
// threshold without being exhausted. Always false for services and packages.
func (p *Product) IsLowStock() bool {
	if !p.Type.RequiresInventory() || p.StockLevel == nil || p.LowStockThreshold == nil {
		return false
	}
	return *p.StockLevel > 0 && *p.StockLevel <= *p.LowStockThreshold
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return shared.NewValidationError("name", "Product name must be at least 2 characters")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateProductDescription(description string) error {
	if len(description) > 2000 {
		return shared.NewValidationError("description", "Product description cannot exceed 2000 characters")
	}
	return nil
}

func validateDurationMinutes(minutes int) error {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return shared.NewBusinessRuleError("INVALID_DURATION",
			"Duration must be between 5 and 480 minutes")
	}
	if minutes%DurationStepMinutes != 0 {
		return shared.NewBusinessRuleError("INVALID_DURATION",
			"Duration must be a multiple of 5 minutes")
	}
	return nil
}

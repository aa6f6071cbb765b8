package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salon/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product.
// The SKU is generated server-side from the category prefix and the
// next free sequence number.
type CreateProductRequest struct {
	Name              string          `json:"name" binding:"required,min=2,max=200"`
	Description       string          `json:"description" binding:"max=2000"`
	Price             decimal.Decimal `json:"price" binding:"required"`
	Category          string          `json:"category" binding:"required"`
	Type              string          `json:"type" binding:"required,oneof=SERVICE PHYSICAL_PRODUCT PACKAGE"`
	DurationMinutes   *int            `json:"duration_minutes"`
	StockLevel        *int            `json:"stock_level"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=2,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
}

// StockRequest represents a restock or deduction quantity
type StockRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// DurationRequest represents a duration change
type DurationRequest struct {
	DurationMinutes int `json:"duration_minutes" binding:"required"`
}

// ThresholdRequest represents a low-stock threshold change
type ThresholdRequest struct {
	LowStockThreshold int `json:"low_stock_threshold" binding:"gte=0"`
}

// ProductResponse represents a product in API responses, including the
// derived stock fields
type ProductResponse struct {
	ID                uuid.UUID       `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Category          string          `json:"category"`
	Type              string          `json:"type"`
	Status            string          `json:"status"`
	DurationMinutes   *int            `json:"duration_minutes,omitempty"`
	StockLevel        *int            `json:"stock_level,omitempty"`
	LowStockThreshold *int            `json:"low_stock_threshold,omitempty"`
	OutOfStock        bool            `json:"out_of_stock"`
	LowStock          bool            `json:"low_stock"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Category string `form:"category"`
	Type     string `form:"type" binding:"omitempty,oneof=SERVICE PHYSICAL_PRODUCT PACKAGE"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	LowStock bool   `form:"low_stock"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU.String(),
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price.Amount(),
		Category:          string(p.Category),
		Type:              string(p.Type),
		Status:            string(p.Status),
		DurationMinutes:   p.DurationMinutes,
		StockLevel:        p.StockLevel,
		LowStockThreshold: p.LowStockThreshold,
		OutOfStock:        p.IsOutOfStock(),
		LowStock:          p.IsLowStock(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Version:           p.Version,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

package models

import (
	"github.com/salon/backend/internal/domain/catalog"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// ProductModel is the persistence model for the Product aggregate.
// Duration, stock level and threshold are nullable because only the
// product types that track them carry a value.
type ProductModel struct {
	AggregateModel
	Name              string                  `gorm:"type:varchar(200);not null"`
	Description       string                  `gorm:"type:text"`
	Price             valueobject.Price       `gorm:"type:decimal(18,2);not null"`
	Category          catalog.ProductCategory `gorm:"type:varchar(30);not null;index"`
	Type              catalog.ProductType     `gorm:"type:varchar(20);not null"`
	SKU               string                  `gorm:"type:varchar(30);not null;uniqueIndex:idx_product_sku"`
	Status            catalog.ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	DurationMinutes   *int
	StockLevel        *int
	LowStockThreshold *int
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		Category:          m.Category,
		Type:              m.Type,
		SKU:               catalog.MustNewSKU(m.SKU),
		Status:            m.Status,
		DurationMinutes:   m.DurationMinutes,
		StockLevel:        m.StockLevel,
		LowStockThreshold: m.LowStockThreshold,
	}
}

// FromDomain populates the model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.Category = p.Category
	m.Type = p.Type
	m.SKU = p.SKU.String()
	m.Status = p.Status
	m.DurationMinutes = p.DurationMinutes
	m.StockLevel = p.StockLevel
	m.LowStockThreshold = p.LowStockThreshold
}

// ProductModelFromDomain creates a model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// SKUSequenceModel tracks the last issued SKU sequence number per
// product category.
type SKUSequenceModel struct {
	Category  catalog.ProductCategory `gorm:"type:varchar(30);primary_key"`
	LastValue int                     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SKUSequenceModel) TableName() string {
	return "sku_sequences"
}

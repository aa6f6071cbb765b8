// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GormStockMetricsProvider implements StockMetricsProvider using GORM.
// It queries the products table directly for aggregated metrics.
type GormStockMetricsProvider struct {
	db *gorm.DB
}

// NewGormStockMetricsProvider creates a new GormStockMetricsProvider.
func NewGormStockMetricsProvider(db *gorm.DB) *GormStockMetricsProvider {
	return &GormStockMetricsProvider{db: db}
}

// GetLowStockCount returns the number of active tracked products at or below
// their low stock threshold.
func (p *GormStockMetricsProvider) GetLowStockCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Where("status = ?", "active").
		Where("stock_level IS NOT NULL AND low_stock_threshold IS NOT NULL").
		Where("stock_level <= low_stock_threshold").
		Count(&count).Error

	return count, err
}

// GormContractMetricsProvider implements ContractMetricsProvider using GORM.
// It queries the clients table directly.
type GormContractMetricsProvider struct {
	db *gorm.DB
}

// NewGormContractMetricsProvider creates a new GormContractMetricsProvider.
func NewGormContractMetricsProvider(db *gorm.DB) *GormContractMetricsProvider {
	return &GormContractMetricsProvider{db: db}
}

// CountExpiringContracts returns the number of active clients whose contracts
// end within the next daysAhead days.
func (p *GormContractMetricsProvider) CountExpiringContracts(ctx context.Context, daysAhead int) (int64, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, daysAhead)

	var count int64
	err := p.db.WithContext(ctx).
		Table("clients").
		Where("status = ?", "active").
		Where("contract_end_date IS NOT NULL").
		Where("contract_end_date BETWEEN ? AND ?", now, cutoff).
		Count(&count).Error

	return count, err
}

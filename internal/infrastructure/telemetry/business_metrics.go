// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the salon backend.
// It tracks customer activity, loyalty point movement, menu cache
// effectiveness, and catalog/account health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	customerRegisteredTotal *Counter
	customerVisitTotal      *Counter
	loyaltyPointsTotal      *Counter
	menuCacheRequestsTotal  *Counter

	// Gauge metrics (point-in-time values)
	lowStockProducts  *Gauge
	expiringContracts *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data providers for periodic collection
	stockProvider      StockMetricsProvider
	contractProvider   ContractMetricsProvider
	contractWindowDays int
}

// StockMetricsProvider provides catalog stock data for periodic metrics
// collection. This interface allows the telemetry layer to query product
// state without depending on the catalog domain directly.
type StockMetricsProvider interface {
	// GetLowStockCount returns the number of active physical products at or
	// below their low stock threshold.
	GetLowStockCount(ctx context.Context) (int64, error)
}

// ContractMetricsProvider provides corporate client contract data for
// periodic metrics collection.
type ContractMetricsProvider interface {
	// CountExpiringContracts returns the number of active clients whose
	// contracts end within the next daysAhead days.
	CountExpiringContracts(ctx context.Context, daysAhead int) (int64, error)
}

// DefaultContractWindowDays is the expiry window used when the config does
// not set one.
const DefaultContractWindowDays = 30

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter              metric.Meter
	Logger             *zap.Logger
	CollectInterval    time.Duration // Default: 5 minutes
	StockProvider      StockMetricsProvider
	ContractProvider   ContractMetricsProvider
	ContractWindowDays int // Default: 30 days
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	windowDays := cfg.ContractWindowDays
	if windowDays <= 0 {
		windowDays = DefaultContractWindowDays
	}

	bm := &BusinessMetrics{
		meter:              cfg.Meter,
		logger:             logger,
		stopChan:           make(chan struct{}),
		stockProvider:      cfg.StockProvider,
		contractProvider:   cfg.ContractProvider,
		contractWindowDays: windowDays,
	}

	// Initialize counter metrics
	var err error

	// Customer metrics
	bm.customerRegisteredTotal, err = NewCounter(
		cfg.Meter,
		"salon_customer_registered_total",
		"Total number of customers registered",
		"{customers}",
	)
	if err != nil {
		return nil, err
	}

	bm.customerVisitTotal, err = NewCounter(
		cfg.Meter,
		"salon_customer_visit_total",
		"Total number of customer visits recorded",
		"{visits}",
	)
	if err != nil {
		return nil, err
	}

	// Loyalty metrics
	bm.loyaltyPointsTotal, err = NewCounter(
		cfg.Meter,
		"salon_loyalty_points_total",
		"Total loyalty points moved, labeled by direction",
		"{points}",
	)
	if err != nil {
		return nil, err
	}

	// Menu cache metrics
	bm.menuCacheRequestsTotal, err = NewCounter(
		cfg.Meter,
		"salon_menu_cache_requests_total",
		"Total menu cache lookups, labeled by result",
		"{requests}",
	)
	if err != nil {
		return nil, err
	}

	// Catalog and account gauge metrics
	bm.lowStockProducts, err = NewGauge(
		cfg.Meter,
		"salon_low_stock_products",
		"Number of products at or below their low stock threshold",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	bm.expiringContracts, err = NewGauge(
		cfg.Meter,
		"salon_expiring_contracts",
		"Number of client contracts expiring within the configured window",
		"{clients}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Customer Metrics
// =============================================================================

// RecordCustomerRegistered records a customer registration event.
// This should be called from the application layer when a customer is created.
func (bm *BusinessMetrics) RecordCustomerRegistered(ctx context.Context) {
	bm.customerRegisteredTotal.Inc(ctx)
}

// RecordVisit records a completed customer visit.
func (bm *BusinessMetrics) RecordVisit(ctx context.Context) {
	bm.customerVisitTotal.Inc(ctx)
}

// RecordVisitWithPoints is a convenience method that records both the visit
// and the loyalty points it earned.
func (bm *BusinessMetrics) RecordVisitWithPoints(ctx context.Context, pointsEarned int64) {
	bm.RecordVisit(ctx)

	if pointsEarned > 0 {
		bm.RecordPointsEarned(ctx, pointsEarned)
	}
}

// =============================================================================
// Loyalty Metrics
// =============================================================================

// PointsDirection labels whether loyalty points were earned or redeemed.
type PointsDirection string

const (
	PointsEarned   PointsDirection = "earned"
	PointsRedeemed PointsDirection = "redeemed"
)

// RecordPointsEarned records loyalty points added to a customer balance.
func (bm *BusinessMetrics) RecordPointsEarned(ctx context.Context, points int64) {
	bm.loyaltyPointsTotal.Add(ctx, points,
		AttrPointsDirection.String(string(PointsEarned)),
	)
}

// RecordPointsRedeemed records loyalty points deducted from a customer balance.
func (bm *BusinessMetrics) RecordPointsRedeemed(ctx context.Context, points int64) {
	bm.loyaltyPointsTotal.Add(ctx, points,
		AttrPointsDirection.String(string(PointsRedeemed)),
	)
}

// =============================================================================
// Menu Cache Metrics
// =============================================================================

// CacheResult labels the outcome of a menu cache lookup.
type CacheResult string

const (
	CacheResultHit  CacheResult = "hit"
	CacheResultMiss CacheResult = "miss"
)

// RecordMenuCacheLookup records a menu cache lookup outcome.
// This should be called when the published menu is served.
func (bm *BusinessMetrics) RecordMenuCacheLookup(ctx context.Context, result CacheResult) {
	bm.menuCacheRequestsTotal.Inc(ctx,
		AttrCacheResult.String(string(result)),
	)
}

// RecordMenuCacheHit records a menu cache hit.
func (bm *BusinessMetrics) RecordMenuCacheHit(ctx context.Context) {
	bm.RecordMenuCacheLookup(ctx, CacheResultHit)
}

// RecordMenuCacheMiss records a menu cache miss.
func (bm *BusinessMetrics) RecordMenuCacheMiss(ctx context.Context) {
	bm.RecordMenuCacheLookup(ctx, CacheResultMiss)
}

// =============================================================================
// Catalog and Account Metrics
// =============================================================================

// RecordLowStockCount records the number of products at or below threshold.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordLowStockCount(ctx context.Context, count int64) {
	bm.lowStockProducts.Record(ctx, count)
}

// RecordExpiringContracts records the number of contracts nearing expiry.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordExpiringContracts(ctx context.Context, count int64) {
	bm.expiringContracts.Record(ctx, count)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It refreshes stock and contract gauges every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectGaugeMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectGaugeMetrics(ctx)
		}
	}
}

// collectGaugeMetrics refreshes the stock and contract gauges.
func (bm *BusinessMetrics) collectGaugeMetrics(ctx context.Context) {
	if bm.stockProvider == nil && bm.contractProvider == nil {
		bm.logger.Debug("No metrics providers configured, skipping gauge collection")
		return
	}

	if bm.stockProvider != nil {
		lowStock, err := bm.stockProvider.GetLowStockCount(ctx)
		if err != nil {
			bm.logger.Warn("Failed to get low stock count", zap.Error(err))
		} else {
			bm.RecordLowStockCount(ctx, lowStock)
		}
	}

	if bm.contractProvider != nil {
		expiring, err := bm.contractProvider.CountExpiringContracts(ctx, bm.contractWindowDays)
		if err != nil {
			bm.logger.Warn("Failed to count expiring contracts", zap.Error(err))
		} else {
			bm.RecordExpiringContracts(ctx, expiring)
		}
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

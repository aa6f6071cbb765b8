package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salon/backend/internal/domain/catalog"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySKU finds a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("sku = ?", strings.ToUpper(sku)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
}

// FindByCategory finds products in a category
func (r *GormProductRepository) FindByCategory(ctx context.Context, category catalog.ProductCategory, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	return r.findPage(
		ctx,
		r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("category = ?", category),
		filter,
	)
}

// FindByType finds products of a given type
func (r *GormProductRepository) FindByType(ctx context.Context, productType catalog.ProductType, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	return r.findPage(
		ctx,
		r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("type = ?", productType),
		filter,
	)
}

// FindLowStock finds active physical products at or below their low-stock threshold
func (r *GormProductRepository) FindLowStock(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	return r.findPage(
		ctx,
		r.db.WithContext(ctx).Model(&models.ProductModel{}).
			Where("status = ?", catalog.ProductStatusActive).
			Where("stock_level IS NOT NULL AND low_stock_threshold IS NOT NULL").
			Where("stock_level <= low_stock_threshold"),
		filter,
	)
}

// NextSKUSequence reserves and returns the next SKU sequence number
// for a category. The sequence row is locked for the duration of the
// transaction so concurrent callers get distinct numbers.
func (r *GormProductRepository) NextSKUSequence(ctx context.Context, category catalog.ProductCategory) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq models.SKUSequenceModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&seq, "category = ?", category).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			seq = models.SKUSequenceModel{Category: category, LastValue: 1}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			seq.LastValue++
			if err := tx.Save(&seq).Error; err != nil {
				return err
			}
		}
		next = seq.LastValue
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("A product with the same SKU already exists")
		}
		return err
	}
	return nil
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists checks if a product exists by ID
func (r *GormProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsBySKU checks if a product with the given SKU exists
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	if sku == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("sku = ?", strings.ToUpper(sku)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormProductRepository) findPage(ctx context.Context, base *gorm.DB, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(base.Session(&gorm.Session{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return shared.Paginated[catalog.Product]{}, err
	}

	var productModels []models.ProductModel
	query := r.applyFilter(base.Session(&gorm.Session{}), filter)
	if err := query.Find(&productModels).Error; err != nil {
		return shared.Paginated[catalog.Product]{}, err
	}

	products := make([]catalog.Product, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return shared.NewPaginated(products, total, filter.Page, filter.PageSize), nil
}

// applyFilter applies filter options to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, ProductSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR description ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		}
	}

	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salon/backend/internal/domain/menu"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/persistence/models"
)

// GormMenuItemRepository implements MenuItemRepository using GORM
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// FindByID finds a menu item by its ID
func (r *GormMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	var model models.MenuItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll finds all menu items matching the filter
func (r *GormMenuItemRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[menu.MenuItem], error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Model(&models.MenuItemModel{}), filter)
}

// FindByCategory finds menu items in a category
func (r *GormMenuItemRepository) FindByCategory(ctx context.Context, category menu.MenuCategory, filter shared.Filter) (shared.Paginated[menu.MenuItem], error) {
	return r.findPage(
		ctx,
		r.db.WithContext(ctx).Model(&models.MenuItemModel{}).Where("category = ?", category),
		filter,
	)
}

// FindVisible returns every active menu item ordered by display order
func (r *GormMenuItemRepository) FindVisible(ctx context.Context) ([]menu.MenuItem, error) {
	var itemModels []models.MenuItemModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", menu.MenuItemStatusActive).
		Order("display_order ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]menu.MenuItem, len(itemModels))
	for i := range itemModels {
		item, err := itemModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		items[i] = *item
	}
	return items, nil
}

// Save creates or updates a menu item
func (r *GormMenuItemRepository) Save(ctx context.Context, item *menu.MenuItem) error {
	model, err := models.MenuItemModelFromDomain(item)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("A menu item with the same display order already exists")
		}
		return err
	}
	return nil
}

// Delete deletes a menu item
func (r *GormMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MenuItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists checks if a menu item exists by ID
func (r *GormMenuItemRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MenuItemModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByDisplayOrder checks if another item already occupies the display order
func (r *GormMenuItemRepository) ExistsByDisplayOrder(ctx context.Context, displayOrder int, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MenuItemModel{}).
		Where("display_order = ?", displayOrder)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts menu items matching the filter
func (r *GormMenuItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.MenuItemModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormMenuItemRepository) findPage(ctx context.Context, base *gorm.DB, filter shared.Filter) (shared.Paginated[menu.MenuItem], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(base.Session(&gorm.Session{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return shared.Paginated[menu.MenuItem]{}, err
	}

	var itemModels []models.MenuItemModel
	query := r.applyFilter(base.Session(&gorm.Session{}), filter)
	if err := query.Find(&itemModels).Error; err != nil {
		return shared.Paginated[menu.MenuItem]{}, err
	}

	items := make([]menu.MenuItem, len(itemModels))
	for i := range itemModels {
		item, err := itemModels[i].ToDomain()
		if err != nil {
			return shared.Paginated[menu.MenuItem]{}, err
		}
		items[i] = *item
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// applyFilter applies filter options to the query
func (r *GormMenuItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, MenuItemSortFields, "display_order")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormMenuItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?",
			searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "is_package":
			query = query.Where("is_package = ?", value)
		}
	}

	return query
}

// Ensure GormMenuItemRepository implements MenuItemRepository
var _ menu.MenuItemRepository = (*GormMenuItemRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salon/backend/internal/domain/crm"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/persistence/models"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a customer by email
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email string) (*crm.Customer, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhone finds a customer by phone number
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone string) (*crm.Customer, error) {
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[crm.Customer], error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)
}

// FindByStatus finds customers by lifecycle status
func (r *GormCustomerRepository) FindByStatus(ctx context.Context, status crm.CustomerStatus, filter shared.Filter) (shared.Paginated[crm.Customer], error) {
	return r.findPage(
		ctx,
		r.db.WithContext(ctx).Model(&models.CustomerModel{}).Where("status = ?", status),
		filter,
	)
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *crm.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("A customer with the same email or phone already exists")
		}
		return err
	}
	return nil
}

// Delete deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists checks if a customer exists by ID
func (r *GormCustomerRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail checks if a customer with the given email exists
func (r *GormCustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	if email == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("email = ?", strings.ToLower(email))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByPhone checks if a customer with the given phone exists
func (r *GormCustomerRepository) ExistsByPhone(ctx context.Context, phone string, excludeID uuid.UUID) (bool, error) {
	if phone == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("phone = ?", phone)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CustomerModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// findPage runs the count and the page query against the same base
// query and assembles the paginated result.
func (r *GormCustomerRepository) findPage(ctx context.Context, base *gorm.DB, filter shared.Filter) (shared.Paginated[crm.Customer], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(base.Session(&gorm.Session{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return shared.Paginated[crm.Customer]{}, err
	}

	var customerModels []models.CustomerModel
	query := r.applyFilter(base.Session(&gorm.Session{}), filter)
	if err := query.Find(&customerModels).Error; err != nil {
		return shared.Paginated[crm.Customer]{}, err
	}

	customers := make([]crm.Customer, len(customerModels))
	for i, model := range customerModels {
		customers[i] = *model.ToDomain()
	}
	return shared.NewPaginated(customers, total, filter.Page, filter.PageSize), nil
}

// applyFilter applies filter options to the query
func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, CustomerSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCustomerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "min_points":
			query = query.Where("points >= ?", value)
		case "has_visits":
			if value == true {
				query = query.Where("total_visits > 0")
			} else {
				query = query.Where("total_visits = 0")
			}
		}
	}

	return query
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ crm.CustomerRepository = (*GormCustomerRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salon/backend/internal/domain/account"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/infrastructure/persistence/models"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByCompanyName finds a client by its exact company name
func (r *GormClientRepository) FindByCompanyName(ctx context.Context, companyName string) (*account.Client, error) {
	if companyName == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("company_name = ?", companyName).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll finds all clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[account.Client], error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Model(&models.ClientModel{}), filter)
}

// FindByBusinessType finds clients of a given business type
func (r *GormClientRepository) FindByBusinessType(ctx context.Context, businessType account.BusinessType, filter shared.Filter) (shared.Paginated[account.Client], error) {
	return r.findPage(
		ctx,
		r.db.WithContext(ctx).Model(&models.ClientModel{}).Where("business_type = ?", businessType),
		filter,
	)
}

// FindWithExpiringContracts finds active clients whose contract ends
// within the given number of days
func (r *GormClientRepository) FindWithExpiringContracts(ctx context.Context, daysAhead int, filter shared.Filter) (shared.Paginated[account.Client], error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, daysAhead)
	return r.findPage(
		ctx,
		r.db.WithContext(ctx).Model(&models.ClientModel{}).
			Where("status = ?", account.ClientStatusActive).
			Where("contract_end_date IS NOT NULL").
			Where("contract_end_date BETWEEN ? AND ?", now, cutoff),
		filter,
	)
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *account.Client) error {
	model, err := models.ClientModelFromDomain(client)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("A client with the same company name already exists")
		}
		return err
	}
	return nil
}

// Delete deletes a client
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists checks if a client exists by ID
func (r *GormClientRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByCompanyName checks if a client with the given company name exists
func (r *GormClientRepository) ExistsByCompanyName(ctx context.Context, companyName string, excludeID uuid.UUID) (bool, error) {
	if companyName == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("company_name = ?", companyName)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts clients matching the filter
func (r *GormClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ClientModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormClientRepository) findPage(ctx context.Context, base *gorm.DB, filter shared.Filter) (shared.Paginated[account.Client], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(base.Session(&gorm.Session{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return shared.Paginated[account.Client]{}, err
	}

	var clientModels []models.ClientModel
	query := r.applyFilter(base.Session(&gorm.Session{}), filter)
	if err := query.Find(&clientModels).Error; err != nil {
		return shared.Paginated[account.Client]{}, err
	}

	clients := make([]account.Client, len(clientModels))
	for i := range clientModels {
		client, err := clientModels[i].ToDomain()
		if err != nil {
			return shared.Paginated[account.Client]{}, err
		}
		clients[i] = *client
	}
	return shared.NewPaginated(clients, total, filter.Page, filter.PageSize), nil
}

// applyFilter applies filter options to the query
func (r *GormClientRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, ClientSortFields, "company_name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormClientRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Search covers the company name and the JSON contact documents
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("company_name ILIKE ? OR billing_address ILIKE ? OR primary_contact::text ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "business_type":
			query = query.Where("business_type = ?", value)
		case "payment_terms":
			query = query.Where("payment_terms = ?", value)
		case "has_balance":
			if value == true {
				query = query.Where("current_balance > 0")
			} else {
				query = query.Where("current_balance = 0")
			}
		}
	}

	return query
}

// Ensure GormClientRepository implements ClientRepository
var _ account.ClientRepository = (*GormClientRepository)(nil)

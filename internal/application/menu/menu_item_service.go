package menu

import (
	"context"

	"github.com/google/uuid"

	"github.com/salon/backend/internal/domain/menu"
	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// MenuCache caches the published menu listing. Implementations return
// (nil, nil) on a cache miss; errors are treated as misses too.
type MenuCache interface {
	GetMenu(ctx context.Context) ([]MenuItemResponse, error)
	SetMenu(ctx context.Context, items []MenuItemResponse) error
	InvalidateMenu(ctx context.Context) error
}

// CacheMetricsRecorder counts published menu cache hits and misses.
// A nil recorder is a no-op.
type CacheMetricsRecorder interface {
	RecordMenuCacheHit(ctx context.Context)
	RecordMenuCacheMiss(ctx context.Context)
}

// MenuItemService handles menu item operations
type MenuItemService struct {
	menuRepo     menu.MenuItemRepository
	cache        MenuCache
	cacheMetrics CacheMetricsRecorder
	events       shared.EventPublisher
}

// NewMenuItemService creates a new MenuItemService. The cache is
// optional; pass nil to serve the published menu from the store.
func NewMenuItemService(menuRepo menu.MenuItemRepository, cache MenuCache, events shared.EventPublisher) *MenuItemService {
	return &MenuItemService{
		menuRepo: menuRepo,
		cache:    cache,
		events:   events,
	}
}

// SetCacheMetricsRecorder attaches a cache metrics recorder. Must be
// called before the service starts handling requests.
func (s *MenuItemService) SetCacheMetricsRecorder(metrics CacheMetricsRecorder) {
	s.cacheMetrics = metrics
}

// Create creates a new menu item. The display order check is advisory;
// the store's unique index is the last line of defense.
func (s *MenuItemService) Create(ctx context.Context, req CreateMenuItemRequest) (*MenuItemResponse, error) {
	duration, err := menu.NewServiceDuration(req.DurationMinutes)
	if err != nil {
		return nil, err
	}
	price, err := valueobject.NewPrice(req.Price)
	if err != nil {
		return nil, err
	}

	taken, err := s.menuRepo.ExistsByDisplayOrder(ctx, req.DisplayOrder, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewConflictError("Another menu item already uses this display order")
	}

	item, err := menu.NewMenuItem(
		req.Name,
		req.Description,
		menu.MenuCategory(req.Category),
		duration,
		price,
		req.IsPackage,
		req.IncludedServices,
		req.DisplayOrder,
	)
	if err != nil {
		return nil, err
	}

	if err := s.menuRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.afterChange(ctx, item)

	response := ToMenuItemResponse(item)
	return &response, nil
}

// GetByID retrieves a menu item by ID
func (s *MenuItemService) GetByID(ctx context.Context, itemID uuid.UUID) (*MenuItemResponse, error) {
	item, err := s.menuRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	response := ToMenuItemResponse(item)
	return &response, nil
}

// List retrieves a page of menu items with filtering and pagination
func (s *MenuItemService) List(ctx context.Context, filter MenuItemListFilter) (shared.Paginated[MenuItemResponse], error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "display_order"
		domainFilter.OrderDir = "asc"
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	domainFilter = domainFilter.Normalize()

	var (
		page shared.Paginated[menu.MenuItem]
		err  error
	)
	if filter.Category != "" {
		page, err = s.menuRepo.FindByCategory(ctx, menu.MenuCategory(filter.Category), domainFilter)
	} else {
		page, err = s.menuRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return shared.Paginated[MenuItemResponse]{}, err
	}

	return shared.NewPaginated(ToMenuItemResponses(page.Items), page.Total, page.Page, page.PageSize), nil
}

// PublishedMenu returns every active menu item in display order. The
// listing is read through the cache when one is configured.
func (s *MenuItemService) PublishedMenu(ctx context.Context) ([]MenuItemResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetMenu(ctx); err == nil && cached != nil {
			if s.cacheMetrics != nil {
				s.cacheMetrics.RecordMenuCacheHit(ctx)
			}
			return cached, nil
		}
		if s.cacheMetrics != nil {
			s.cacheMetrics.RecordMenuCacheMiss(ctx)
		}
	}

	items, err := s.menuRepo.FindVisible(ctx)
	if err != nil {
		return nil, err
	}

	responses := ToMenuItemResponses(items)
	if s.cache != nil {
		_ = s.cache.SetMenu(ctx, responses)
	}
	return responses, nil
}

// Update updates a menu item's name and description
func (s *MenuItemService) Update(ctx context.Context, itemID uuid.UUID, req UpdateMenuItemRequest) (*MenuItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *menu.MenuItem) error {
		name := item.Name
		description := item.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		return item.Update(name, description)
	})
}

// ChangeCategory moves a menu item to another category
func (s *MenuItemService) ChangeCategory(ctx context.Context, itemID uuid.UUID, req ChangeCategoryRequest) (*MenuItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *menu.MenuItem) error {
		return item.UpdateCategory(menu.MenuCategory(req.Category))
	})
}

// ChangeDuration changes a menu item's service duration
func (s *MenuItemService) ChangeDuration(ctx context.Context, itemID uuid.UUID, req DurationChangeRequest) (*MenuItemResponse, error) {
	duration, err := menu.NewServiceDuration(req.DurationMinutes)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, itemID, func(item *menu.MenuItem) error {
		return item.ChangeDuration(duration)
	})
}

// ChangePrice changes a menu item's price
func (s *MenuItemService) ChangePrice(ctx context.Context, itemID uuid.UUID, req PriceChangeRequest) (*MenuItemResponse, error) {
	price, err := valueobject.NewPrice(req.Price)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, itemID, func(item *menu.MenuItem) error {
		return item.ChangePrice(price)
	})
}

// SetIncludedServices replaces the bundled services of a package
func (s *MenuItemService) SetIncludedServices(ctx context.Context, itemID uuid.UUID, req ServicesRequest) (*MenuItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *menu.MenuItem) error {
		return item.SetIncludedServices(req.Services)
	})
}

// SetRequirements replaces a menu item's requirements
func (s *MenuItemService) SetRequirements(ctx context.Context, itemID uuid.UUID, req ListFieldRequest) (*MenuItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *menu.MenuItem) error {
		item.SetRequirements(req.Items)
		return nil
	})
}

// SetBenefits replaces a menu item's benefits
func (s *MenuItemService) SetBenefits(ctx context.Context, itemID uuid.UUID, req ListFieldRequest) (*MenuItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *menu.MenuItem) error {
		item.SetBenefits(req.Items)
		return nil
	})
}

// SetAdvanceBooking configures advance booking for a menu item
func (s *MenuItemService) SetAdvanceBooking(ctx context.Context, itemID uuid.UUID, req AdvanceBookingRequest) (*MenuItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *menu.MenuItem) error {
		return item.SetAdvanceBooking(req.Required, req.Days)
	})
}

// SetSeasonalWindow sets or clears a menu item's availability window
func (s *MenuItemService) SetSeasonalWindow(ctx context.Context, itemID uuid.UUID, req SeasonalWindowRequest) (*MenuItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *menu.MenuItem) error {
		return item.SetSeasonalWindow(req.ValidFrom, req.ValidTo)
	})
}

// SetDisplayOrder moves a menu item within the published menu
func (s *MenuItemService) SetDisplayOrder(ctx context.Context, itemID uuid.UUID, req DisplayOrderRequest) (*MenuItemResponse, error) {
	taken, err := s.menuRepo.ExistsByDisplayOrder(ctx, req.DisplayOrder, itemID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewConflictError("Another menu item already uses this display order")
	}
	return s.mutate(ctx, itemID, func(item *menu.MenuItem) error {
		return item.SetDisplayOrder(req.DisplayOrder)
	})
}

// SetTags replaces a menu item's tags
func (s *MenuItemService) SetTags(ctx context.Context, itemID uuid.UUID, req TagsRequest) (*MenuItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *menu.MenuItem) error {
		item.SetTags(req.Tags)
		return nil
	})
}

// Activate puts a menu item back on the published menu
func (s *MenuItemService) Activate(ctx context.Context, itemID uuid.UUID) (*MenuItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *menu.MenuItem) error {
		return item.Activate()
	})
}

// Deactivate removes a menu item from the published menu
func (s *MenuItemService) Deactivate(ctx context.Context, itemID uuid.UUID) (*MenuItemResponse, error) {
	return s.mutate(ctx, itemID, func(item *menu.MenuItem) error {
		return item.Deactivate()
	})
}

// Delete removes a menu item
func (s *MenuItemService) Delete(ctx context.Context, itemID uuid.UUID) error {
	if err := s.menuRepo.Delete(ctx, itemID); err != nil {
		return err
	}
	if s.events != nil {
		_ = s.events.Publish(ctx, menu.NewMenuItemDeletedEvent(itemID))
	}
	if s.cache != nil {
		_ = s.cache.InvalidateMenu(ctx)
	}
	return nil
}

// mutate loads a menu item, applies the mutation and saves the result
func (s *MenuItemService) mutate(ctx context.Context, itemID uuid.UUID, fn func(*menu.MenuItem) error) (*MenuItemResponse, error) {
	item, err := s.menuRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := fn(item); err != nil {
		return nil, err
	}

	if err := s.menuRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.afterChange(ctx, item)

	response := ToMenuItemResponse(item)
	return &response, nil
}

// afterChange publishes collected events and drops the cached menu
func (s *MenuItemService) afterChange(ctx context.Context, item *menu.MenuItem) {
	if s.events != nil {
		_ = s.events.Publish(ctx, item.GetDomainEvents()...)
	}
	item.ClearDomainEvents()
	if s.cache != nil {
		_ = s.cache.InvalidateMenu(ctx)
	}
}

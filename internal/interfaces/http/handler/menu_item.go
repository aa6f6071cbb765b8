package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	menuapp "github.com/salon/backend/internal/application/menu"
)

// MenuItemHandler handles service menu HTTP requests
type MenuItemHandler struct {
	BaseHandler
	service *menuapp.MenuItemService
}

// NewMenuItemHandler creates a new menu item handler
func NewMenuItemHandler(service *menuapp.MenuItemService) *MenuItemHandler {
	return &MenuItemHandler{service: service}
}

// Create handles POST /api/v1/menu/items
// @Summary Create a menu item
// @Description Creates a service or package entry on the salon menu
// @Tags menu
// @Accept json
// @Produce json
// @Param request body menu.CreateMenuItemRequest true "Menu item data"
// @Success 201 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 400 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /menu/items [post]
func (h *MenuItemHandler) Create(c *gin.Context) {
	var req menuapp.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// Get handles GET /api/v1/menu/items/:id
// @Summary Get a menu item by ID
// @Tags menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Router /menu/items/{id} [get]
func (h *MenuItemHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// List handles GET /api/v1/menu/items
// @Summary List menu items
// @Description Lists menu items with pagination, search, category and status filtering
// @Tags menu
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param search query string false "Search in name and description"
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status" Enums(active, inactive)
// @Success 200 {object} dto.Response{data=[]menu.MenuItemResponse}
// @Router /menu/items [get]
func (h *MenuItemHandler) List(c *gin.Context) {
	var filter menuapp.MenuItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Published handles GET /api/v1/menu/published
// @Summary Get the published menu
// @Description Returns every active item in display order. Served from cache when warm.
// @Tags menu
// @Produce json
// @Success 200 {object} dto.Response{data=[]menu.MenuItemResponse}
// @Router /menu/published [get]
func (h *MenuItemHandler) Published(c *gin.Context) {
	items, err := h.service.PublishedMenu(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// Update handles PUT /api/v1/menu/items/:id
// @Summary Update a menu item
// @Description Applies a partial update to name and description
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body menu.UpdateMenuItemRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Router /menu/items/{id} [put]
func (h *MenuItemHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req menuapp.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// ChangeCategory handles PUT /api/v1/menu/items/:id/category
// @Summary Move a menu item to another category
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body menu.ChangeCategoryRequest true "Target category"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /menu/items/{id}/category [put]
func (h *MenuItemHandler) ChangeCategory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req menuapp.ChangeCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := h.service.ChangeCategory(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// ChangeDuration handles PUT /api/v1/menu/items/:id/duration
// @Summary Change a menu item duration
// @Description Duration must fall on a 15-minute slot boundary
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body menu.DurationChangeRequest true "New duration in minutes"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /menu/items/{id}/duration [put]
func (h *MenuItemHandler) ChangeDuration(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req menuapp.DurationChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := h.service.ChangeDuration(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// ChangePrice handles PUT /api/v1/menu/items/:id/price
// @Summary Change a menu item price
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body menu.PriceChangeRequest true "New price"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /menu/items/{id}/price [put]
func (h *MenuItemHandler) ChangePrice(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req menuapp.PriceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := h.service.ChangePrice(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// SetIncludedServices handles PUT /api/v1/menu/items/:id/services
// @Summary Replace the bundled services of a package
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body menu.ServicesRequest true "Bundled service names"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /menu/items/{id}/services [put]
func (h *MenuItemHandler) SetIncludedServices(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req menuapp.ServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := h.service.SetIncludedServices(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// SetRequirements handles PUT /api/v1/menu/items/:id/requirements
// @Summary Replace a menu item's requirements
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body menu.ListFieldRequest true "Requirement lines"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Router /menu/items/{id}/requirements [put]
func (h *MenuItemHandler) SetRequirements(c *gin.Context) {
	h.listFieldOp(c, h.service.SetRequirements)
}

// SetBenefits handles PUT /api/v1/menu/items/:id/benefits
// @Summary Replace a menu item's benefits
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body menu.ListFieldRequest true "Benefit lines"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Router /menu/items/{id}/benefits [put]
func (h *MenuItemHandler) SetBenefits(c *gin.Context) {
	h.listFieldOp(c, h.service.SetBenefits)
}

// SetAdvanceBooking handles PUT /api/v1/menu/items/:id/advance-booking
// @Summary Configure advance booking
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body menu.AdvanceBookingRequest true "Advance booking settings"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /menu/items/{id}/advance-booking [put]
func (h *MenuItemHandler) SetAdvanceBooking(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req menuapp.AdvanceBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := h.service.SetAdvanceBooking(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// SetSeasonalWindow handles PUT /api/v1/menu/items/:id/seasonal-window
// @Summary Set or clear the seasonal availability window
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body menu.SeasonalWindowRequest true "Availability window; omit both dates to clear"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /menu/items/{id}/seasonal-window [put]
func (h *MenuItemHandler) SetSeasonalWindow(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req menuapp.SeasonalWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := h.service.SetSeasonalWindow(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// SetDisplayOrder handles PUT /api/v1/menu/items/:id/display-order
// @Summary Move a menu item within the published menu
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body menu.DisplayOrderRequest true "New display position"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Router /menu/items/{id}/display-order [put]
func (h *MenuItemHandler) SetDisplayOrder(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req menuapp.DisplayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := h.service.SetDisplayOrder(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// SetTags handles PUT /api/v1/menu/items/:id/tags
// @Summary Replace a menu item's tags
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body menu.TagsRequest true "Tags"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Router /menu/items/{id}/tags [put]
func (h *MenuItemHandler) SetTags(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req menuapp.TagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := h.service.SetTags(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Activate handles POST /api/v1/menu/items/:id/activate
// @Summary Activate a menu item
// @Tags menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Router /menu/items/{id}/activate [post]
func (h *MenuItemHandler) Activate(c *gin.Context) {
	h.statusOp(c, h.service.Activate)
}

// Deactivate handles POST /api/v1/menu/items/:id/deactivate
// @Summary Deactivate a menu item
// @Tags menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} dto.Response{data=menu.MenuItemResponse}
// @Failure 404 {object} dto.Response
// @Router /menu/items/{id}/deactivate [post]
func (h *MenuItemHandler) Deactivate(c *gin.Context) {
	h.statusOp(c, h.service.Deactivate)
}

// Delete handles DELETE /api/v1/menu/items/:id
// @Summary Delete a menu item
// @Description Soft-deletes a menu item and invalidates the published menu cache
// @Tags menu
// @Param id path string true "Menu item ID"
// @Success 204
// @Failure 404 {object} dto.Response
// @Router /menu/items/{id} [delete]
func (h *MenuItemHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *MenuItemHandler) listFieldOp(c *gin.Context, op func(context.Context, uuid.UUID, menuapp.ListFieldRequest) (*menuapp.MenuItemResponse, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req menuapp.ListFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := op(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

func (h *MenuItemHandler) statusOp(c *gin.Context, op func(context.Context, uuid.UUID) (*menuapp.MenuItemResponse, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	item, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

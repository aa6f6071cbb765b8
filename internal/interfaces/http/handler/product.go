package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/salon/backend/internal/application/catalog"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	BaseHandler
	service *catalogapp.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /api/v1/catalog/products
// @Summary Create a product
// @Description Creates a service, physical product or package. The SKU is generated server-side.
// @Tags products
// @Accept json
// @Produce json
// @Param request body catalog.CreateProductRequest true "Product data"
// @Success 201 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 400 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /catalog/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Get handles GET /api/v1/catalog/products/:id
// @Summary Get a product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 404 {object} dto.Response
// @Router /catalog/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// GetBySKU handles GET /api/v1/catalog/products/sku/:sku
// @Summary Get a product by SKU
// @Tags products
// @Produce json
// @Param sku path string true "Product SKU"
// @Success 200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 404 {object} dto.Response
// @Router /catalog/products/sku/{sku} [get]
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	product, err := h.service.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List handles GET /api/v1/catalog/products
// @Summary List products
// @Description Lists products with pagination, search, category, type, status and low-stock filtering
// @Tags products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param search query string false "Search in name and SKU"
// @Param category query string false "Filter by category"
// @Param type query string false "Filter by type" Enums(SERVICE, PHYSICAL_PRODUCT, PACKAGE)
// @Param status query string false "Filter by status" Enums(active, inactive)
// @Param low_stock query bool false "Only products at or below their low-stock threshold"
// @Success 200 {object} dto.Response{data=[]catalog.ProductResponse}
// @Router /catalog/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
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

// Update handles PUT /api/v1/catalog/products/:id
// @Summary Update a product
// @Description Applies a partial update; omitted fields are left unchanged
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body catalog.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 404 {object} dto.Response
// @Router /catalog/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Restock handles POST /api/v1/catalog/products/:id/stock/restock
// @Summary Restock a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body catalog.StockRequest true "Quantity to add"
// @Success 200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /catalog/products/{id}/stock/restock [post]
func (h *ProductHandler) Restock(c *gin.Context) {
	h.stockOp(c, h.service.Restock)
}

// DeductStock handles POST /api/v1/catalog/products/:id/stock/deduct
// @Summary Deduct product stock
// @Description Deducts stock; fails when the quantity exceeds the level on hand
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body catalog.StockRequest true "Quantity to deduct"
// @Success 200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /catalog/products/{id}/stock/deduct [post]
func (h *ProductHandler) DeductStock(c *gin.Context) {
	h.stockOp(c, h.service.DeductStock)
}

// UpdateDuration handles PUT /api/v1/catalog/products/:id/duration
// @Summary Change a service duration
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body catalog.DurationRequest true "New duration in minutes"
// @Success 200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /catalog/products/{id}/duration [put]
func (h *ProductHandler) UpdateDuration(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.DurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.service.UpdateDuration(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// SetLowStockThreshold handles PUT /api/v1/catalog/products/:id/stock/threshold
// @Summary Change the low-stock threshold
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body catalog.ThresholdRequest true "New threshold"
// @Success 200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /catalog/products/{id}/stock/threshold [put]
func (h *ProductHandler) SetLowStockThreshold(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.ThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.service.SetLowStockThreshold(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Activate handles POST /api/v1/catalog/products/:id/activate
// @Summary Activate a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 404 {object} dto.Response
// @Router /catalog/products/{id}/activate [post]
func (h *ProductHandler) Activate(c *gin.Context) {
	h.statusOp(c, h.service.Activate)
}

// Deactivate handles POST /api/v1/catalog/products/:id/deactivate
// @Summary Deactivate a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 404 {object} dto.Response
// @Router /catalog/products/{id}/deactivate [post]
func (h *ProductHandler) Deactivate(c *gin.Context) {
	h.statusOp(c, h.service.Deactivate)
}

// Delete handles DELETE /api/v1/catalog/products/:id
// @Summary Delete a product
// @Description Soft-deletes a product; returns 404 when the ID does not exist
// @Tags products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} dto.Response
// @Router /catalog/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
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

func (h *ProductHandler) stockOp(c *gin.Context, op func(context.Context, uuid.UUID, catalogapp.StockRequest) (*catalogapp.ProductResponse, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := op(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

func (h *ProductHandler) statusOp(c *gin.Context, op func(context.Context, uuid.UUID) (*catalogapp.ProductResponse, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	crmapp "github.com/salon/backend/internal/application/crm"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	BaseHandler
	service *crmapp.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service *crmapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Create handles POST /api/v1/crm/customers
// @Summary Create a customer
// @Description Registers a new salon customer with a unique email and phone
// @Tags customers
// @Accept json
// @Produce json
// @Param request body crm.CreateCustomerRequest true "Customer data"
// @Success 201 {object} dto.Response{data=crm.CustomerResponse}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Router /crm/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req crmapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	customer, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, customer)
}

// Get handles GET /api/v1/crm/customers/:id
// @Summary Get a customer by ID
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.Response{data=crm.CustomerResponse}
// @Failure 404 {object} dto.Response
// @Router /crm/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	customer, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// List handles GET /api/v1/crm/customers
// @Summary List customers
// @Description Lists customers with pagination, search and status filtering
// @Tags customers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param search query string false "Search in name, email and phone"
// @Param status query string false "Filter by status" Enums(active, inactive)
// @Success 200 {object} dto.Response{data=[]crm.CustomerResponse}
// @Router /crm/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var filter crmapp.CustomerListFilter
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

// Update handles PUT /api/v1/crm/customers/:id
// @Summary Update a customer
// @Description Applies a partial update; omitted fields are left unchanged
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body crm.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=crm.CustomerResponse}
// @Failure 404 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Router /crm/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req crmapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	customer, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// EarnPoints handles POST /api/v1/crm/customers/:id/points/earn
// @Summary Add loyalty points
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body crm.PointsRequest true "Points to add"
// @Success 200 {object} dto.Response{data=crm.CustomerResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /crm/customers/{id}/points/earn [post]
func (h *CustomerHandler) EarnPoints(c *gin.Context) {
	h.pointsOp(c, h.service.EarnPoints)
}

// RedeemPoints handles POST /api/v1/crm/customers/:id/points/redeem
// @Summary Redeem loyalty points
// @Description Deducts points from the balance; fails when the balance is insufficient
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body crm.PointsRequest true "Points to redeem"
// @Success 200 {object} dto.Response{data=crm.CustomerResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /crm/customers/{id}/points/redeem [post]
func (h *CustomerHandler) RedeemPoints(c *gin.Context) {
	h.pointsOp(c, h.service.RedeemPoints)
}

// RecordVisit handles POST /api/v1/crm/customers/:id/visits
// @Summary Record a customer visit
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body crm.RecordVisitRequest false "Visit data"
// @Success 200 {object} dto.Response{data=crm.CustomerResponse}
// @Failure 404 {object} dto.Response
// @Router /crm/customers/{id}/visits [post]
func (h *CustomerHandler) RecordVisit(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req crmapp.RecordVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	customer, err := h.service.RecordVisit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Activate handles POST /api/v1/crm/customers/:id/activate
// @Summary Activate a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.Response{data=crm.CustomerResponse}
// @Failure 404 {object} dto.Response
// @Router /crm/customers/{id}/activate [post]
func (h *CustomerHandler) Activate(c *gin.Context) {
	h.statusOp(c, h.service.Activate)
}

// Deactivate handles POST /api/v1/crm/customers/:id/deactivate
// @Summary Deactivate a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.Response{data=crm.CustomerResponse}
// @Failure 404 {object} dto.Response
// @Router /crm/customers/{id}/deactivate [post]
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	h.statusOp(c, h.service.Deactivate)
}

// Delete handles DELETE /api/v1/crm/customers/:id
// @Summary Delete a customer
// @Description Soft-deletes a customer; returns 404 when the ID does not exist
// @Tags customers
// @Param id path string true "Customer ID"
// @Success 204
// @Failure 404 {object} dto.Response
// @Router /crm/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
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

func (h *CustomerHandler) pointsOp(c *gin.Context, op func(context.Context, uuid.UUID, crmapp.PointsRequest) (*crmapp.CustomerResponse, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req crmapp.PointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	customer, err := op(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

func (h *CustomerHandler) statusOp(c *gin.Context, op func(context.Context, uuid.UUID) (*crmapp.CustomerResponse, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	customer, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

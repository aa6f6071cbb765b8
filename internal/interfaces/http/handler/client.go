package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountapp "github.com/salon/backend/internal/application/account"
)

// ClientHandler handles business client account HTTP requests
type ClientHandler struct {
	BaseHandler
	service *accountapp.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(service *accountapp.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create handles POST /api/v1/accounts/clients
// @Summary Create a business client
// @Description Registers a corporate client with a primary contact and credit terms
// @Tags clients
// @Accept json
// @Produce json
// @Param request body account.CreateClientRequest true "Client data"
// @Success 201 {object} dto.Response{data=account.ClientResponse}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Router /accounts/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req accountapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	client, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// Get handles GET /api/v1/accounts/clients/:id
// @Summary Get a client by ID
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.Response{data=account.ClientResponse}
// @Failure 404 {object} dto.Response
// @Router /accounts/clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	client, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// List handles GET /api/v1/accounts/clients
// @Summary List clients
// @Description Lists clients with pagination, search, business type, status and expiring-contract filtering
// @Tags clients
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param search query string false "Search in company name and contact email"
// @Param business_type query string false "Filter by business type"
// @Param status query string false "Filter by status" Enums(active, inactive)
// @Param expiring_contract query bool false "Only clients whose contract ends within 30 days"
// @Success 200 {object} dto.Response{data=[]account.ClientResponse}
// @Router /accounts/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	var filter accountapp.ClientListFilter
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

// Update handles PUT /api/v1/accounts/clients/:id
// @Summary Update a client
// @Description Applies a partial update; omitted fields are left unchanged
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body account.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=account.ClientResponse}
// @Failure 404 {object} dto.Response
// @Router /accounts/clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req accountapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	client, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// AddSecondaryContact handles POST /api/v1/accounts/clients/:id/contacts
// @Summary Add a secondary contact
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body account.ContactRequest true "Contact data"
// @Success 200 {object} dto.Response{data=account.ClientResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /accounts/clients/{id}/contacts [post]
func (h *ClientHandler) AddSecondaryContact(c *gin.Context) {
	h.contactOp(c, h.service.AddSecondaryContact)
}

// RemoveSecondaryContact handles DELETE /api/v1/accounts/clients/:id/contacts/:email
// @Summary Remove a secondary contact by email
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Param email path string true "Contact email"
// @Success 200 {object} dto.Response{data=account.ClientResponse}
// @Failure 404 {object} dto.Response
// @Router /accounts/clients/{id}/contacts/{email} [delete]
func (h *ClientHandler) RemoveSecondaryContact(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	client, err := h.service.RemoveSecondaryContact(c.Request.Context(), id, c.Param("email"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// ReplacePrimaryContact handles PUT /api/v1/accounts/clients/:id/contacts/primary
// @Summary Replace the primary contact
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body account.ContactRequest true "New primary contact"
// @Success 200 {object} dto.Response{data=account.ClientResponse}
// @Failure 404 {object} dto.Response
// @Router /accounts/clients/{id}/contacts/primary [put]
func (h *ClientHandler) ReplacePrimaryContact(c *gin.Context) {
	h.contactOp(c, h.service.ReplacePrimaryContact)
}

// AddCharge handles POST /api/v1/accounts/clients/:id/charges
// @Summary Charge a client account
// @Description Adds a charge to the running balance; fails when it would exceed the credit limit
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body account.AmountRequest true "Charge amount"
// @Success 200 {object} dto.Response{data=account.ClientResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /accounts/clients/{id}/charges [post]
func (h *ClientHandler) AddCharge(c *gin.Context) {
	h.amountOp(c, h.service.AddCharge)
}

// ProcessPayment handles POST /api/v1/accounts/clients/:id/payments
// @Summary Record a payment against the balance
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body account.AmountRequest true "Payment amount"
// @Success 200 {object} dto.Response{data=account.ClientResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /accounts/clients/{id}/payments [post]
func (h *ClientHandler) ProcessPayment(c *gin.Context) {
	h.amountOp(c, h.service.ProcessPayment)
}

// UpdateCreditTerms handles PUT /api/v1/accounts/clients/:id/credit-terms
// @Summary Change the credit terms
// @Description Replaces payment terms, credit limit and discount; fails when the new limit is below the current balance
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body account.CreditTermsRequest true "New credit terms"
// @Success 200 {object} dto.Response{data=account.ClientResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /accounts/clients/{id}/credit-terms [put]
func (h *ClientHandler) UpdateCreditTerms(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req accountapp.CreditTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	client, err := h.service.UpdateCreditTerms(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// SetContractPeriod handles PUT /api/v1/accounts/clients/:id/contract
// @Summary Set the contract period
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body account.ContractPeriodRequest true "Contract window"
// @Success 200 {object} dto.Response{data=account.ClientResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /accounts/clients/{id}/contract [put]
func (h *ClientHandler) SetContractPeriod(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req accountapp.ContractPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	client, err := h.service.SetContractPeriod(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Activate handles POST /api/v1/accounts/clients/:id/activate
// @Summary Activate a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.Response{data=account.ClientResponse}
// @Failure 404 {object} dto.Response
// @Router /accounts/clients/{id}/activate [post]
func (h *ClientHandler) Activate(c *gin.Context) {
	h.statusOp(c, h.service.Activate)
}

// Deactivate handles POST /api/v1/accounts/clients/:id/deactivate
// @Summary Deactivate a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.Response{data=account.ClientResponse}
// @Failure 404 {object} dto.Response
// @Router /accounts/clients/{id}/deactivate [post]
func (h *ClientHandler) Deactivate(c *gin.Context) {
	h.statusOp(c, h.service.Deactivate)
}

// Delete handles DELETE /api/v1/accounts/clients/:id
// @Summary Delete a client
// @Description Soft-deletes a client; returns 404 when the ID does not exist
// @Tags clients
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} dto.Response
// @Router /accounts/clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
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

func (h *ClientHandler) contactOp(c *gin.Context, op func(context.Context, uuid.UUID, accountapp.ContactRequest) (*accountapp.ClientResponse, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req accountapp.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	client, err := op(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

func (h *ClientHandler) amountOp(c *gin.Context, op func(context.Context, uuid.UUID, accountapp.AmountRequest) (*accountapp.ClientResponse, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req accountapp.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	client, err := op(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

func (h *ClientHandler) statusOp(c *gin.Context, op func(context.Context, uuid.UUID) (*accountapp.ClientResponse, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	client, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

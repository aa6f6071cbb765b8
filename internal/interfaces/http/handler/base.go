package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/interfaces/http/dto"
	"github.com/salon/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common functionality for all HTTP handlers.
// Embed it in concrete handlers to get uniform response envelopes and
// domain error mapping.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler
func NewBaseHandler() BaseHandler {
	return BaseHandler{}
}

// Success sends a 200 response with the given data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response with the given data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given HTTP status and error code
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, h.getRequestID(c)))
}

// ErrorWithCode sends an error response deriving the HTTP status from the code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Conflict sends a 409 response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.Error(c, http.StatusConflict, dto.ErrCodeConflict, message)
}

// UnprocessableEntity sends a 422 response for business rule violations
func (h *BaseHandler) UnprocessableEntity(c *gin.Context, code, message string) {
	h.Error(c, http.StatusUnprocessableEntity, code, message)
}

// InternalError sends a 500 response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 response with per-field validation details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed", h.getRequestID(c), details))
}

// HandleBindingError maps a gin binding failure to a validation response.
// Validator errors become field-level details, anything else is a bad request.
func (h *BaseHandler) HandleBindingError(c *gin.Context, err error) {
	if details := middleware.FormatValidationErrors(err); len(details) > 0 {
		h.ValidationError(c, details)
		return
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
}

// HandleError maps application and domain errors to HTTP responses.
// Domain error codes with a known mapping get their mapped status; unmapped
// codes fall back to a status derived from the error kind.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		if status, ok := dto.ErrorCodeHTTPStatus[code]; ok {
			h.Error(c, status, code, domainErr.Message)
			return
		}
		h.Error(c, statusForKind(domainErr.Kind), domainErr.Code, domainErr.Message)
		return
	}
	h.InternalError(c, "An internal error occurred")
}

func statusForKind(kind shared.ErrorKind) int {
	switch kind {
	case shared.KindValidation:
		return http.StatusBadRequest
	case shared.KindNotFound:
		return http.StatusNotFound
	case shared.KindConflict:
		return http.StatusConflict
	case shared.KindBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// getRequestID extracts the request ID set by the RequestID middleware
func (h *BaseHandler) getRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}

// parseID parses the :id path parameter as a UUID, responding with a 400
// and returning false when it is malformed
func (h *BaseHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationFormat, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not_found", ErrCodeNotFound, http.StatusNotFound},
		{"already_exists", ErrCodeAlreadyExists, http.StatusConflict},
		{"conflict", ErrCodeConflict, http.StatusConflict},
		{"concurrency_conflict", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"validation", ErrCodeValidation, http.StatusBadRequest},
		{"invalid_state", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"business_rule", ErrCodeBusinessRule, http.StatusUnprocessableEntity},
		{"insufficient_stock", ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{"insufficient_points", ErrCodeInsufficientPoints, http.StatusUnprocessableEntity},
		{"credit_limit_exceeded", ErrCodeCreditLimitExceeded, http.StatusUnprocessableEntity},
		{"bad_request", ErrCodeBadRequest, http.StatusBadRequest},
		{"rate_limited", ErrCodeRateLimited, http.StatusTooManyRequests},
		{"request_too_large", ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{"internal", ErrCodeInternal, http.StatusInternalServerError},
		{"unknown_code_defaults_to_500", "ERR_SOMETHING_NEW", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"not_found", "NOT_FOUND", ErrCodeNotFound},
		{"already_exists", "ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"validation_error", "VALIDATION_ERROR", ErrCodeValidation},
		{"insufficient_points", "INSUFFICIENT_POINTS", ErrCodeInsufficientPoints},
		{"credit_limit_exceeded", "CREDIT_LIMIT_EXCEEDED", ErrCodeCreditLimitExceeded},
		{"concurrency_conflict", "CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict},
		{"already_normalized", ErrCodeNotFound, ErrCodeNotFound},
		{"unmapped_passes_through", "SKU_CATEGORY_MISMATCH", "SKU_CATEGORY_MISMATCH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.code))
		})
	}
}

func TestNewSuccessResponse(t *testing.T) {
	data := map[string]string{"name": "Classic Manicure"}
	resp := NewSuccessResponse(data)

	assert.True(t, resp.Success)
	assert.Equal(t, data, resp.Data)
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.Meta)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		page           int
		pageSize       int
		wantTotalPages int
	}{
		{"exact_pages", 40, 1, 20, 2},
		{"partial_last_page", 41, 1, 20, 3},
		{"single_page", 5, 1, 20, 1},
		{"empty", 0, 1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSuccessResponseWithMeta([]string{}, tt.total, tt.page, tt.pageSize)

			assert.True(t, resp.Success)
			assert.NotNil(t, resp.Meta)
			assert.Equal(t, tt.total, resp.Meta.Total)
			assert.Equal(t, tt.page, resp.Meta.Page)
			assert.Equal(t, tt.pageSize, resp.Meta.PageSize)
			assert.Equal(t, tt.wantTotalPages, resp.Meta.TotalPages)
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Resource not found")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code) // Should be normalized
	assert.Equal(t, "Resource not found", resp.Error.Message)
	assert.NotZero(t, resp.Error.Timestamp)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	requestID := "req-123-456"
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Resource not found", requestID)

	assert.False(t, resp.Success)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Resource not found", resp.Error.Message)
	assert.Equal(t, requestID, resp.Error.RequestID)
	assert.NotZero(t, resp.Error.Timestamp)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "email", Message: "Invalid email format"},
		{Field: "phone", Message: "Must be a valid E.164 phone number"},
	}
	requestID := "req-789"

	resp := NewValidationErrorResponse("Validation failed", requestID, details)

	assert.False(t, resp.Success)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "Validation failed", resp.Error.Message)
	assert.Equal(t, requestID, resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "email", resp.Error.Details[0].Field)
	assert.Equal(t, "Invalid email format", resp.Error.Details[0].Message)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Customer not found", "req-test-123")

	data, err := json.Marshal(resp)
	assert.NoError(t, err)

	var decoded Response
	err = json.Unmarshal(data, &decoded)
	assert.NoError(t, err)

	assert.False(t, decoded.Success)
	assert.NotNil(t, decoded.Error)
	assert.Equal(t, ErrCodeNotFound, decoded.Error.Code)
	assert.Equal(t, "Customer not found", decoded.Error.Message)
	assert.Equal(t, "req-test-123", decoded.Error.RequestID)
}

func TestDefaultListRequest(t *testing.T) {
	req := DefaultListRequest()

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.PageSize)
	assert.Equal(t, "created_at", req.OrderBy)
	assert.Equal(t, "desc", req.OrderDir)
}

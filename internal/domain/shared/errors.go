package shared

import "fmt"

// ErrorKind classifies domain errors so callers can map them to transport
// semantics (HTTP status, retry policy) without string matching.
type ErrorKind string

const (
	// KindValidation marks single-field constraint failures (format, range, required).
	KindValidation ErrorKind = "validation"
	// KindBusinessRule marks cross-field or cross-entity invariant violations.
	KindBusinessRule ErrorKind = "business_rule"
	// KindNotFound marks references to identifiers that do not exist.
	KindNotFound ErrorKind = "not_found"
	// KindConflict marks uniqueness constraint violations.
	KindConflict ErrorKind = "conflict"
)

// DomainError represents a domain-level error with a machine code and a
// human-readable message. Field is set for field-scoped validation errors,
// Resource for not-found errors.
type DomainError struct {
	Kind     ErrorKind `json:"kind"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Field    string    `json:"field,omitempty"`
	Resource string    `json:"resource,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error of business-rule kind.
// Kept for compatibility with call sites that only care about code+message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Kind: KindBusinessRule, Code: code, Message: message}
}

// NewValidationError creates a field-scoped validation error. Pass an empty
// field for value-level failures that are not tied to a named field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: message, Field: field}
}

// NewBusinessRuleError creates a business-rule violation error
func NewBusinessRuleError(code, message string) *DomainError {
	return &DomainError{Kind: KindBusinessRule, Code: code, Message: message}
}

// NewNotFoundError creates a not-found error carrying the resource type and identifier
func NewNotFoundError(resource, id string) *DomainError {
	return &DomainError{
		Kind:     KindNotFound,
		Code:     "NOT_FOUND",
		Message:  fmt.Sprintf("%s with identifier %q not found", resource, id),
		Resource: resource,
	}
}

// NewConflictError creates a uniqueness-conflict error
func NewConflictError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Code: "ALREADY_EXISTS", Message: message}
}

// IsValidation reports whether err is a validation domain error
func IsValidation(err error) bool { return kindOf(err) == KindValidation }

// IsBusinessRule reports whether err is a business-rule domain error
func IsBusinessRule(err error) bool { return kindOf(err) == KindBusinessRule }

// IsNotFound reports whether err is a not-found domain error
func IsNotFound(err error) bool { return kindOf(err) == KindNotFound }

// IsConflict reports whether err is a conflict domain error
func IsConflict(err error) bool { return kindOf(err) == KindConflict }

func kindOf(err error) ErrorKind {
	if de, ok := err.(*DomainError); ok {
		return de.Kind
	}
	return ""
}

// Common domain errors
var (
	ErrNotFound            = &DomainError{Kind: KindNotFound, Code: "NOT_FOUND", Message: "Resource not found"}
	ErrAlreadyExists       = &DomainError{Kind: KindConflict, Code: "ALREADY_EXISTS", Message: "Resource already exists"}
	ErrInvalidInput        = &DomainError{Kind: KindValidation, Code: "INVALID_INPUT", Message: "Invalid input provided"}
	ErrConcurrencyConflict = &DomainError{Kind: KindConflict, Code: "CONCURRENCY_CONFLICT", Message: "Resource was modified by another process"}
	ErrInvalidState        = &DomainError{Kind: KindBusinessRule, Code: "INVALID_STATE", Message: "Operation not allowed in current state"}
	ErrInsufficientStock   = &DomainError{Kind: KindBusinessRule, Code: "INSUFFICIENT_STOCK", Message: "Insufficient stock available"}
	ErrInsufficientPoints  = &DomainError{Kind: KindBusinessRule, Code: "INSUFFICIENT_POINTS", Message: "Insufficient loyalty points available"}
	ErrCreditLimitExceeded = &DomainError{Kind: KindBusinessRule, Code: "CREDIT_LIMIT_EXCEEDED", Message: "Charge would exceed the credit limit"}
)

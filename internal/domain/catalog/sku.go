package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/salon/backend/internal/domain/shared"
)

// MaxSKUSequence is the largest sequence number a SKU can encode.
const MaxSKUSequence = 999999

var skuPattern = regexp.MustCompile(`^[A-Z]{2}-\d{3,6}$`)

// SKU is a Value Object identifying a catalog product.
// Format: two-letter category prefix, a hyphen, and a zero-padded
// sequence of three to six digits (e.g. "HC-001", "SP-123456").
type SKU struct {
	value string
}

// NewSKU parses an existing SKU string
func NewSKU(value string) (SKU, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return SKU{}, shared.NewValidationError("sku", "SKU is required")
	}
	if !skuPattern.MatchString(value) {
		return SKU{}, shared.NewValidationError("sku", "SKU must match the format XX-000 (two letters, hyphen, 3-6 digits)")
	}
	return SKU{value: value}, nil
}

// MustNewSKU parses a SKU string, panicking if validation fails.
// Use this only for static initialization where values are known to be valid.
func MustNewSKU(value string) SKU {
	sku, err := NewSKU(value)
	if err != nil {
		panic(fmt.Sprintf("invalid SKU: %v", err))
	}
	return sku
}

// GenerateSKU builds a SKU from a two-letter prefix and a sequence number.
// The sequence is zero-padded to at least three digits.
func GenerateSKU(prefix string, sequence int) (SKU, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if len(prefix) != 2 || !isLetters(prefix) {
		return SKU{}, shared.NewValidationError("prefix", "SKU prefix must be exactly 2 letters")
	}
	if sequence < 1 || sequence > MaxSKUSequence {
		return SKU{}, shared.NewValidationError("sequence", fmt.Sprintf("SKU sequence must be between 1 and %d", MaxSKUSequence))
	}
	return SKU{value: fmt.Sprintf("%s-%03d", prefix, sequence)}, nil
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// String returns the SKU string
func (s SKU) String() string {
	return s.value
}

// IsZero reports whether the SKU is unset
func (s SKU) IsZero() bool {
	return s.value == ""
}

// Prefix returns the two-letter category prefix
func (s SKU) Prefix() string {
	if s.value == "" {
		return ""
	}
	return s.value[:2]
}

// Equals compares two SKUs by value
func (s SKU) Equals(other SKU) bool {
	return s.value == other.value
}

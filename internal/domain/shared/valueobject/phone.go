package valueobject

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var phoneAllowedRegex = regexp.MustCompile(`^\+?[\d\s\-().]+$`)

// Phone is a value object wrapping a phone number in a normalized,
// E.164-like form: an optional leading '+' followed by 7-15 digits.
// Formatting characters (spaces, hyphens, parentheses, dots) are stripped
// during construction. The zero value represents "no phone".
type Phone struct {
	value string
}

// NewPhone creates a Phone from a raw string
func NewPhone(raw string) (Phone, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Phone{}, errors.New("phone cannot be empty")
	}
	if !phoneAllowedRegex.MatchString(trimmed) {
		return Phone{}, fmt.Errorf("invalid phone number format: %s", trimmed)
	}
	var b strings.Builder
	for i, r := range trimmed {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	normalized := b.String()
	digits := strings.TrimPrefix(normalized, "+")
	if len(digits) < 7 || len(digits) > 15 {
		return Phone{}, fmt.Errorf("phone number must have between 7 and 15 digits, got %d", len(digits))
	}
	return Phone{value: normalized}, nil
}

// MustNewPhone creates a Phone and panics on error. Intended for tests.
func MustNewPhone(raw string) Phone {
	p, err := NewPhone(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the normalized phone number
func (p Phone) String() string {
	return p.value
}

// IsZero returns true if no phone is set
func (p Phone) IsZero() bool {
	return p.value == ""
}

// Equals compares two phones by normalized value
func (p Phone) Equals(other Phone) bool {
	return p.value == other.value
}

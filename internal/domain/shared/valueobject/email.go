package valueobject

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// maxEmailLength follows RFC 5321's 254-octet limit on the forward path.
const maxEmailLength = 254

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// Email is a value object wrapping a normalized (trimmed, lower-cased)
// email address. The zero value represents "no email".
type Email struct {
	value string
}

// NewEmail creates an Email from a raw string. The input is trimmed and
// lower-cased before validation; the stored value is the normalized form.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Email{}, errors.New("email cannot be empty")
	}
	if len(normalized) > maxEmailLength {
		return Email{}, fmt.Errorf("email cannot exceed %d characters", maxEmailLength)
	}
	if !emailRegex.MatchString(normalized) {
		return Email{}, fmt.Errorf("invalid email format: %s", normalized)
	}
	// The regexp admits consecutive or edge dots; reject empty labels explicitly.
	local, domain, _ := strings.Cut(normalized, "@")
	for _, part := range []string{local, domain} {
		if strings.Contains(part, "..") || strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") {
			return Email{}, fmt.Errorf("invalid email format: %s", normalized)
		}
	}
	return Email{value: normalized}, nil
}

// MustNewEmail creates an Email and panics on error. Intended for tests.
func MustNewEmail(raw string) Email {
	e, err := NewEmail(raw)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the normalized email address
func (e Email) String() string {
	return e.value
}

// IsZero returns true if no email is set
func (e Email) IsZero() bool {
	return e.value == ""
}

// Equals compares two emails by normalized value
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// Domain returns the part after the '@'
func (e Email) Domain() string {
	_, domain, _ := strings.Cut(e.value, "@")
	return domain
}

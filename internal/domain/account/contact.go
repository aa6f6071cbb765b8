package account

import (
	"strings"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

// ContactPerson is a Value Object describing a named contact at a client
// business. Contacts are embedded in the Client aggregate and never
// referenced from outside it.
type ContactPerson struct {
	Name      string
	Position  string
	Email     valueobject.Email
	Phone     valueobject.Phone
	IsPrimary bool
}

// NewContactPerson creates a contact person
func NewContactPerson(name, position string, email valueobject.Email, phone valueobject.Phone, isPrimary bool) (ContactPerson, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return ContactPerson{}, shared.NewValidationError("contactName", "Contact name must be at least 2 characters")
	}
	if len(name) > 100 {
		return ContactPerson{}, shared.NewValidationError("contactName", "Contact name cannot exceed 100 characters")
	}
	if len(position) > 100 {
		return ContactPerson{}, shared.NewValidationError("contactPosition", "Contact position cannot exceed 100 characters")
	}
	if email.IsZero() {
		return ContactPerson{}, shared.NewValidationError("contactEmail", "Contact email is required")
	}
	if phone.IsZero() {
		return ContactPerson{}, shared.NewValidationError("contactPhone", "Contact phone is required")
	}

	return ContactPerson{
		Name:      name,
		Position:  strings.TrimSpace(position),
		Email:     email,
		Phone:     phone,
		IsPrimary: isPrimary,
	}, nil
}

// Equals compares two contacts field-wise
func (c ContactPerson) Equals(other ContactPerson) bool {
	return c.Name == other.Name &&
		c.Position == other.Position &&
		c.Email.Equals(other.Email) &&
		c.Phone.Equals(other.Phone) &&
		c.IsPrimary == other.IsPrimary
}

package menu

import (
	"fmt"

	"github.com/salon/backend/internal/domain/shared"
)

// Booking slot granularity in minutes.
const SlotMinutes = 15

// ServiceDuration constraints in minutes.
const (
	MinServiceMinutes = 15
	MaxServiceMinutes = 480
)

// ServiceDuration is a Value Object holding how long a menu item takes.
// Durations are multiples of 15 minutes between 15 minutes and 8 hours.
type ServiceDuration struct {
	minutes int
}

// NewServiceDuration creates a duration from minutes
func NewServiceDuration(minutes int) (ServiceDuration, error) {
	if minutes < MinServiceMinutes || minutes > MaxServiceMinutes {
		return ServiceDuration{}, shared.NewValidationError("duration",
			fmt.Sprintf("Duration must be between %d and %d minutes", MinServiceMinutes, MaxServiceMinutes))
	}
	if minutes%SlotMinutes != 0 {
		return ServiceDuration{}, shared.NewValidationError("duration",
			fmt.Sprintf("Duration must be a multiple of %d minutes", SlotMinutes))
	}
	return ServiceDuration{minutes: minutes}, nil
}

// MustNewServiceDuration creates a duration, panicking if validation fails.
// Use this only for static initialization where values are known to be valid.
func MustNewServiceDuration(minutes int) ServiceDuration {
	duration, err := NewServiceDuration(minutes)
	if err != nil {
		panic(fmt.Sprintf("invalid service duration: %v", err))
	}
	return duration
}

// Minutes returns the duration in minutes
func (d ServiceDuration) Minutes() int {
	return d.minutes
}

// IsZero reports whether the duration is unset
func (d ServiceDuration) IsZero() bool {
	return d.minutes == 0
}

// Slots returns the number of 15-minute booking slots the duration
// occupies
func (d ServiceDuration) Slots() int {
	return (d.minutes + SlotMinutes - 1) / SlotMinutes
}

// Format renders the duration for display, e.g. "45m", "1h", "1h 30m".
func (d ServiceDuration) Format() string {
	hours := d.minutes / 60
	minutes := d.minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}

// Equals compares two durations by value
func (d ServiceDuration) Equals(other ServiceDuration) bool {
	return d.minutes == other.minutes
}

// String returns the display format
func (d ServiceDuration) String() string {
	return d.Format()
}

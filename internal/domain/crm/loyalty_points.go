package crm

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/salon/backend/internal/domain/shared"
)

// MaxLoyaltyPoints is the hard cap on a customer's point balance.
const MaxLoyaltyPoints = 999999

// LoyaltyTier represents a customer's tier derived from the point balance.
type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "bronze"
	TierSilver   LoyaltyTier = "silver"
	TierGold     LoyaltyTier = "gold"
	TierPlatinum LoyaltyTier = "platinum"
)

// Point thresholds for the upper tiers.
const (
	silverThreshold   = 500
	goldThreshold     = 1000
	platinumThreshold = 2000
)

// DiscountPercent returns the discount percentage granted by the tier.
func (t LoyaltyTier) DiscountPercent() decimal.Decimal {
	switch t {
	case TierSilver:
		return decimal.NewFromInt(5)
	case TierGold:
		return decimal.NewFromInt(10)
	case TierPlatinum:
		return decimal.NewFromInt(15)
	default:
		return decimal.Zero
	}
}

// String returns the tier code
func (t LoyaltyTier) String() string {
	return string(t)
}

// LoyaltyPoints is a Value Object holding a customer's point balance.
// It is immutable - Add and Subtract return new instances.
type LoyaltyPoints struct {
	value int
}

// NewLoyaltyPoints creates a point balance, rejecting values outside [0, MaxLoyaltyPoints].
func NewLoyaltyPoints(value int) (LoyaltyPoints, error) {
	if value < 0 {
		return LoyaltyPoints{}, shared.NewValidationError("loyaltyPoints", "Loyalty points cannot be negative")
	}
	if value > MaxLoyaltyPoints {
		return LoyaltyPoints{}, shared.NewValidationError("loyaltyPoints", fmt.Sprintf("Loyalty points cannot exceed %d", MaxLoyaltyPoints))
	}
	return LoyaltyPoints{value: value}, nil
}

// MustNewLoyaltyPoints creates a point balance, panicking if validation fails.
// Use this only for static initialization where values are known to be valid.
func MustNewLoyaltyPoints(value int) LoyaltyPoints {
	points, err := NewLoyaltyPoints(value)
	if err != nil {
		panic(fmt.Sprintf("invalid loyalty points: %v", err))
	}
	return points
}

// ZeroLoyaltyPoints returns an empty point balance.
func ZeroLoyaltyPoints() LoyaltyPoints {
	return LoyaltyPoints{}
}

// Value returns the raw point count
func (p LoyaltyPoints) Value() int {
	return p.value
}

// Add returns a new balance credited with n points. It fails when n is
// negative or when the result would exceed the cap.
func (p LoyaltyPoints) Add(n int) (LoyaltyPoints, error) {
	if n < 0 {
		return LoyaltyPoints{}, shared.NewValidationError("points", "Points to add cannot be negative")
	}
	if p.value+n > MaxLoyaltyPoints {
		return LoyaltyPoints{}, shared.NewBusinessRuleError("POINTS_CAP_EXCEEDED",
			fmt.Sprintf("Point balance cannot exceed %d", MaxLoyaltyPoints))
	}
	return LoyaltyPoints{value: p.value + n}, nil
}

// Subtract returns a new balance debited by n points. It fails when n is
// negative or exceeds the current balance.
func (p LoyaltyPoints) Subtract(n int) (LoyaltyPoints, error) {
	if n < 0 {
		return LoyaltyPoints{}, shared.NewValidationError("points", "Points to subtract cannot be negative")
	}
	if n > p.value {
		return LoyaltyPoints{}, shared.ErrInsufficientPoints
	}
	return LoyaltyPoints{value: p.value - n}, nil
}

// Tier derives the loyalty tier from the balance.
// Boundaries: bronze 0-499, silver 500-999, gold 1000-1999, platinum 2000+.
func (p LoyaltyPoints) Tier() LoyaltyTier {
	switch {
	case p.value >= platinumThreshold:
		return TierPlatinum
	case p.value >= goldThreshold:
		return TierGold
	case p.value >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// Equals compares two balances by value
func (p LoyaltyPoints) Equals(other LoyaltyPoints) bool {
	return p.value == other.value
}

// String returns the balance as a decimal string
func (p LoyaltyPoints) String() string {
	return fmt.Sprintf("%d", p.value)
}


package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxPriceAmount is the upper bound for any monetary amount in the system.
var MaxPriceAmount = decimal.RequireFromString("999999.99")

// Price is a value object representing a positive monetary amount with at
// most two fractional digits. It is immutable - all operations return new
// Price instances.
type Price struct {
	amount decimal.Decimal
}

// NewPrice creates a new Price from a decimal amount
func NewPrice(amount decimal.Decimal) (Price, error) {
	if !amount.IsPositive() {
		return Price{}, errors.New("price must be greater than zero")
	}
	if amount.GreaterThan(MaxPriceAmount) {
		return Price{}, fmt.Errorf("price cannot exceed %s", MaxPriceAmount.StringFixed(2))
	}
	if amount.Exponent() < -2 {
		return Price{}, errors.New("price cannot have more than two decimal places")
	}
	return Price{amount: amount}, nil
}

// NewPriceFromFloat creates a Price from a float64 value
func NewPriceFromFloat(amount float64) (Price, error) {
	return NewPrice(decimal.NewFromFloat(amount))
}

// NewPriceFromString creates a Price from a string representation
func NewPriceFromString(amount string) (Price, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price string: %w", err)
	}
	return NewPrice(d)
}

// MustNewPrice creates a Price and panics on error. Intended for tests and
// compile-time constants only.
func MustNewPrice(amount string) Price {
	p, err := NewPriceFromString(amount)
	if err != nil {
		panic(err)
	}
	return p
}

// Amount returns the decimal amount
func (p Price) Amount() decimal.Decimal {
	return p.amount
}

// IsZero returns true for the zero value of Price (an unset price)
func (p Price) IsZero() bool {
	return p.amount.IsZero()
}

// ApplyDiscount returns a new Price reduced by the given percentage,
// rounded half-up to the cent. The percentage must be within [0,100].
func (p Price) ApplyDiscount(percent decimal.Decimal) (Price, error) {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return Price{}, errors.New("discount percent must be between 0 and 100")
	}
	factor := decimal.NewFromInt(1).Sub(percent.Div(decimal.NewFromInt(100)))
	discounted := p.amount.Mul(factor).Round(2)
	if !discounted.IsPositive() {
		// A 100% discount floors at one cent rather than producing an
		// invalid zero price; free items are modeled at the entity level.
		discounted = decimal.RequireFromString("0.01")
	}
	return Price{amount: discounted}, nil
}

// Equals returns true if both prices carry the same amount
func (p Price) Equals(other Price) bool {
	return p.amount.Equal(other.amount)
}

// LessThan returns true if this price is less than the other
func (p Price) LessThan(other Price) bool {
	return p.amount.LessThan(other.amount)
}

// String returns the amount formatted with two decimal places
func (p Price) String() string {
	return p.amount.StringFixed(2)
}

// Float64 returns the amount as a float64 (may lose precision)
func (p Price) Float64() float64 {
	f, _ := p.amount.Float64()
	return f
}

// MarshalJSON implements json.Marshaler
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.amount.StringFixed(2))
}

// UnmarshalJSON implements json.Unmarshaler, validating through NewPrice
func (p *Price) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	price, err := NewPriceFromString(s)
	if err != nil {
		return err
	}
	*p = price
	return nil
}

// Value implements driver.Valuer for database storage
func (p Price) Value() (driver.Value, error) {
	return p.amount.StringFixed(2), nil
}

// Scan implements sql.Scanner for database retrieval
func (p *Price) Scan(value interface{}) error {
	if value == nil {
		return errors.New("cannot scan nil into Price")
	}
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case float64:
		s = decimal.NewFromFloat(v).String()
	default:
		return fmt.Errorf("cannot scan %T into Price", value)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid price value %q: %w", s, err)
	}
	p.amount = d
	return nil
}

package account

import (
	"github.com/shopspring/decimal"

	"github.com/salon/backend/internal/domain/shared"
)

// PaymentTerms represents a client's payment schedule.
type PaymentTerms string

const (
	PaymentTermsPrepaid   PaymentTerms = "PREPAID"
	PaymentTermsImmediate PaymentTerms = "IMMEDIATE"
	PaymentTermsNet15     PaymentTerms = "NET_15"
	PaymentTermsNet30     PaymentTerms = "NET_30"
	PaymentTermsNet60     PaymentTerms = "NET_60"
)

// BypassesBalanceTracking reports whether the terms settle at point of
// sale. Prepaid and immediate clients never accrue a balance, so charges
// against them always succeed.
func (t PaymentTerms) BypassesBalanceTracking() bool {
	return t == PaymentTermsPrepaid || t == PaymentTermsImmediate
}

// String returns the terms code
func (t PaymentTerms) String() string {
	return string(t)
}

func validatePaymentTerms(terms PaymentTerms) error {
	switch terms {
	case PaymentTermsPrepaid, PaymentTermsImmediate, PaymentTermsNet15, PaymentTermsNet30, PaymentTermsNet60:
		return nil
	default:
		return shared.NewValidationError("paymentTerms", "Unknown payment terms: "+string(terms))
	}
}

// CreditTerms is a Value Object bundling a client's payment terms,
// credit limit, running balance and negotiated discount. It is immutable;
// AddCharge and ProcessPayment return new instances.
type CreditTerms struct {
	terms           PaymentTerms
	creditLimit     decimal.Decimal
	currentBalance  decimal.Decimal
	discountPercent decimal.Decimal
}

// NewCreditTerms creates credit terms
func NewCreditTerms(terms PaymentTerms, creditLimit, currentBalance, discountPercent decimal.Decimal) (CreditTerms, error) {
	if err := validatePaymentTerms(terms); err != nil {
		return CreditTerms{}, err
	}
	if creditLimit.IsNegative() {
		return CreditTerms{}, shared.NewValidationError("creditLimit", "Credit limit cannot be negative")
	}
	if currentBalance.IsNegative() {
		return CreditTerms{}, shared.NewValidationError("currentBalance", "Current balance cannot be negative")
	}
	if currentBalance.GreaterThan(creditLimit) && !terms.BypassesBalanceTracking() {
		return CreditTerms{}, shared.NewValidationError("currentBalance", "Current balance cannot exceed the credit limit")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return CreditTerms{}, shared.NewValidationError("discountPercent", "Discount percent must be between 0 and 100")
	}

	return CreditTerms{
		terms:           terms,
		creditLimit:     creditLimit,
		currentBalance:  currentBalance,
		discountPercent: discountPercent,
	}, nil
}

// MustNewCreditTerms creates credit terms or panics. Only for
// reconstructing terms from trusted storage.
func MustNewCreditTerms(terms PaymentTerms, creditLimit, currentBalance, discountPercent decimal.Decimal) CreditTerms {
	ct, err := NewCreditTerms(terms, creditLimit, currentBalance, discountPercent)
	if err != nil {
		panic(err)
	}
	return ct
}

// NewPrepaidTerms creates prepaid terms with no balance tracking
func NewPrepaidTerms(discountPercent decimal.Decimal) (CreditTerms, error) {
	return NewCreditTerms(PaymentTermsPrepaid, decimal.Zero, decimal.Zero, discountPercent)
}

// Terms returns the payment terms
func (ct CreditTerms) Terms() PaymentTerms {
	return ct.terms
}

// CreditLimit returns the credit limit
func (ct CreditTerms) CreditLimit() decimal.Decimal {
	return ct.creditLimit
}

// CurrentBalance returns the outstanding balance
func (ct CreditTerms) CurrentBalance() decimal.Decimal {
	return ct.currentBalance
}

// DiscountPercent returns the negotiated discount percentage
func (ct CreditTerms) DiscountPercent() decimal.Decimal {
	return ct.discountPercent
}

// AvailableCredit returns the remaining headroom under the limit.
// Zero for terms that bypass balance tracking.
func (ct CreditTerms) AvailableCredit() decimal.Decimal {
	if ct.terms.BypassesBalanceTracking() {
		return decimal.Zero
	}
	return ct.creditLimit.Sub(ct.currentBalance)
}

// CanProcessCharge reports whether a charge of the given amount would be
// accepted: false for non-positive amounts, unconditionally true for
// prepaid/immediate terms, otherwise true iff the balance stays within
// the limit.
func (ct CreditTerms) CanProcessCharge(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	if ct.terms.BypassesBalanceTracking() {
		return true
	}
	return ct.currentBalance.Add(amount).LessThanOrEqual(ct.creditLimit)
}

// AddCharge returns new terms with the charge applied. Prepaid and
// immediate terms pass through unchanged since they settle at point of
// sale.
func (ct CreditTerms) AddCharge(amount decimal.Decimal) (CreditTerms, error) {
	if !amount.IsPositive() {
		return CreditTerms{}, shared.NewValidationError("amount", "Charge amount must be positive")
	}
	if ct.terms.BypassesBalanceTracking() {
		return ct, nil
	}
	if !ct.CanProcessCharge(amount) {
		return CreditTerms{}, shared.ErrCreditLimitExceeded
	}

	next := ct
	next.currentBalance = ct.currentBalance.Add(amount)
	return next, nil
}

// ProcessPayment returns new terms with the payment applied against the
// balance. Payments cannot exceed the outstanding balance.
func (ct CreditTerms) ProcessPayment(amount decimal.Decimal) (CreditTerms, error) {
	if !amount.IsPositive() {
		return CreditTerms{}, shared.NewValidationError("amount", "Payment amount must be positive")
	}
	if ct.terms.BypassesBalanceTracking() {
		return ct, nil
	}
	if amount.GreaterThan(ct.currentBalance) {
		return CreditTerms{}, shared.NewBusinessRuleError("PAYMENT_EXCEEDS_BALANCE",
			"Payment cannot exceed the outstanding balance")
	}

	next := ct
	next.currentBalance = ct.currentBalance.Sub(amount)
	return next, nil
}

// Equals compares two credit terms field-wise
func (ct CreditTerms) Equals(other CreditTerms) bool {
	return ct.terms == other.terms &&
		ct.creditLimit.Equal(other.creditLimit) &&
		ct.currentBalance.Equal(other.currentBalance) &&
		ct.discountPercent.Equal(other.discountPercent)
}

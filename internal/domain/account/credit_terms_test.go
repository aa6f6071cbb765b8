package account

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salon/backend/internal/domain/shared"
)

func net30Terms(t *testing.T, limit, balance int64) CreditTerms {
	t.Helper()
	terms, err := NewCreditTerms(PaymentTermsNet30, decimal.NewFromInt(limit), decimal.NewFromInt(balance), decimal.Zero)
	require.NoError(t, err)
	return terms
}

func TestNewCreditTerms(t *testing.T) {
	t.Run("creates net terms", func(t *testing.T) {
		terms, err := NewCreditTerms(PaymentTermsNet30, decimal.NewFromInt(1000), decimal.NewFromInt(250), decimal.NewFromInt(10))

		require.NoError(t, err)
		assert.Equal(t, PaymentTermsNet30, terms.Terms())
		assert.True(t, terms.CreditLimit().Equal(decimal.NewFromInt(1000)))
		assert.True(t, terms.CurrentBalance().Equal(decimal.NewFromInt(250)))
		assert.True(t, terms.AvailableCredit().Equal(decimal.NewFromInt(750)))
	})

	t.Run("fails with unknown terms", func(t *testing.T) {
		_, err := NewCreditTerms("NET_90", decimal.Zero, decimal.Zero, decimal.Zero)

		assert.Error(t, err)
	})

	t.Run("fails with negative limit or balance", func(t *testing.T) {
		_, err := NewCreditTerms(PaymentTermsNet30, decimal.NewFromInt(-1), decimal.Zero, decimal.Zero)
		assert.Error(t, err)

		_, err = NewCreditTerms(PaymentTermsNet30, decimal.NewFromInt(100), decimal.NewFromInt(-1), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("fails when balance exceeds limit", func(t *testing.T) {
		_, err := NewCreditTerms(PaymentTermsNet30, decimal.NewFromInt(100), decimal.NewFromInt(101), decimal.Zero)

		assert.Error(t, err)
	})

	t.Run("fails with discount outside 0-100", func(t *testing.T) {
		_, err := NewCreditTerms(PaymentTermsNet30, decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(101))
		assert.Error(t, err)

		_, err = NewCreditTerms(PaymentTermsNet30, decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestCreditTermsCharges(t *testing.T) {
	t.Run("charge within the limit succeeds", func(t *testing.T) {
		terms := net30Terms(t, 1000, 900)

		next, err := terms.AddCharge(decimal.NewFromInt(50))

		require.NoError(t, err)
		assert.True(t, next.CurrentBalance().Equal(decimal.NewFromInt(950)))
		assert.True(t, terms.CurrentBalance().Equal(decimal.NewFromInt(900))) // original unchanged
	})

	t.Run("charge over the limit fails", func(t *testing.T) {
		terms := net30Terms(t, 1000, 900)

		_, err := terms.AddCharge(decimal.NewFromInt(200))

		assert.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
	})

	t.Run("charge up to the limit exactly succeeds", func(t *testing.T) {
		terms := net30Terms(t, 1000, 900)

		next, err := terms.AddCharge(decimal.NewFromInt(100))

		require.NoError(t, err)
		assert.True(t, next.CurrentBalance().Equal(decimal.NewFromInt(1000)))
	})

	t.Run("prepaid terms always accept charges", func(t *testing.T) {
		terms, err := NewPrepaidTerms(decimal.Zero)
		require.NoError(t, err)

		assert.True(t, terms.CanProcessCharge(decimal.NewFromInt(1000000)))

		next, err := terms.AddCharge(decimal.NewFromInt(1000000))
		require.NoError(t, err)
		assert.True(t, next.CurrentBalance().IsZero())
	})

	t.Run("immediate terms bypass balance tracking", func(t *testing.T) {
		terms, err := NewCreditTerms(PaymentTermsImmediate, decimal.Zero, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		next, err := terms.AddCharge(decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.True(t, next.CurrentBalance().IsZero())
	})

	t.Run("non-positive charges are rejected", func(t *testing.T) {
		terms := net30Terms(t, 1000, 0)

		assert.False(t, terms.CanProcessCharge(decimal.Zero))
		assert.False(t, terms.CanProcessCharge(decimal.NewFromInt(-5)))

		_, err := terms.AddCharge(decimal.Zero)
		assert.Error(t, err)
	})
}

func TestCreditTermsPayments(t *testing.T) {
	t.Run("payment reduces the balance", func(t *testing.T) {
		terms := net30Terms(t, 1000, 400)

		next, err := terms.ProcessPayment(decimal.NewFromInt(150))

		require.NoError(t, err)
		assert.True(t, next.CurrentBalance().Equal(decimal.NewFromInt(250)))
	})

	t.Run("payment cannot exceed the balance", func(t *testing.T) {
		terms := net30Terms(t, 1000, 400)

		_, err := terms.ProcessPayment(decimal.NewFromInt(401))

		assert.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
	})

	t.Run("payment of the full balance clears it", func(t *testing.T) {
		terms := net30Terms(t, 1000, 400)

		next, err := terms.ProcessPayment(decimal.NewFromInt(400))

		require.NoError(t, err)
		assert.True(t, next.CurrentBalance().IsZero())
	})
}

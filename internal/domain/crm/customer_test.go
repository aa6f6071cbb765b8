package crm

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salon/backend/internal/domain/shared"
	"github.com/salon/backend/internal/domain/shared/valueobject"
)

func newTestCustomer(t *testing.T) *Customer {
	t.Helper()
	customer, err := NewCustomer(
		"Jamie Rivera",
		valueobject.MustNewEmail("jamie.rivera@example.com"),
		valueobject.MustNewPhone("+14155552671"),
	)
	require.NoError(t, err)
	customer.ClearDomainEvents()
	return customer
}

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer successfully", func(t *testing.T) {
		customer, err := NewCustomer(
			"Jamie Rivera",
			valueobject.MustNewEmail("Jamie.Rivera@Example.com"),
			valueobject.MustNewPhone("+1 (415) 555-2671"),
		)

		require.NoError(t, err)
		assert.NotNil(t, customer)
		assert.Equal(t, "Jamie Rivera", customer.Name)
		assert.Equal(t, "jamie.rivera@example.com", customer.Email.String())
		assert.Equal(t, "+14155552671", customer.Phone.String())
		assert.Equal(t, 0, customer.Points.Value())
		assert.Equal(t, 0, customer.TotalVisits)
		assert.Nil(t, customer.LastVisitAt)
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.Len(t, customer.GetDomainEvents(), 1)
	})

	t.Run("trims surrounding whitespace from name", func(t *testing.T) {
		customer, err := NewCustomer(
			"  Jamie Rivera  ",
			valueobject.MustNewEmail("jamie@example.com"),
			valueobject.MustNewPhone("+14155552671"),
		)

		require.NoError(t, err)
		assert.Equal(t, "Jamie Rivera", customer.Name)
	})

	t.Run("fails with short name", func(t *testing.T) {
		customer, err := NewCustomer(
			"J",
			valueobject.MustNewEmail("jamie@example.com"),
			valueobject.MustNewPhone("+14155552671"),
		)

		assert.Error(t, err)
		assert.Nil(t, customer)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("fails with overlong name", func(t *testing.T) {
		customer, err := NewCustomer(
			strings.Repeat("a", 101),
			valueobject.MustNewEmail("jamie@example.com"),
			valueobject.MustNewPhone("+14155552671"),
		)

		assert.Error(t, err)
		assert.Nil(t, customer)
	})

	t.Run("fails with zero email", func(t *testing.T) {
		customer, err := NewCustomer("Jamie Rivera", valueobject.Email{}, valueobject.MustNewPhone("+14155552671"))

		assert.Error(t, err)
		assert.Nil(t, customer)
	})

	t.Run("fails with zero phone", func(t *testing.T) {
		customer, err := NewCustomer("Jamie Rivera", valueobject.MustNewEmail("jamie@example.com"), valueobject.Phone{})

		assert.Error(t, err)
		assert.Nil(t, customer)
	})
}

func TestCustomerPoints(t *testing.T) {
	t.Run("earns points", func(t *testing.T) {
		customer := newTestCustomer(t)

		err := customer.EarnPoints(120)

		require.NoError(t, err)
		assert.Equal(t, 120, customer.Points.Value())
		assert.Equal(t, 2, customer.GetVersion())
		assert.Len(t, customer.GetDomainEvents(), 1)
	})

	t.Run("redeems points", func(t *testing.T) {
		customer := newTestCustomer(t)
		require.NoError(t, customer.EarnPoints(120))

		err := customer.RedeemPoints(50)

		require.NoError(t, err)
		assert.Equal(t, 70, customer.Points.Value())
	})

	t.Run("earn then redeem restores the balance", func(t *testing.T) {
		customer := newTestCustomer(t)
		require.NoError(t, customer.EarnPoints(300))

		for _, n := range []int{0, 1, 250, 999} {
			before := customer.Points.Value()
			require.NoError(t, customer.EarnPoints(n))
			require.NoError(t, customer.RedeemPoints(n))
			assert.Equal(t, before, customer.Points.Value())
		}
	})

	t.Run("fails redeeming more than the balance", func(t *testing.T) {
		customer := newTestCustomer(t)
		require.NoError(t, customer.EarnPoints(40))

		err := customer.RedeemPoints(41)

		assert.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
		assert.Equal(t, 40, customer.Points.Value())
	})

	t.Run("fails earning negative points", func(t *testing.T) {
		customer := newTestCustomer(t)

		err := customer.EarnPoints(-5)

		assert.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("fails earning past the cap", func(t *testing.T) {
		customer := newTestCustomer(t)
		require.NoError(t, customer.EarnPoints(MaxLoyaltyPoints))

		err := customer.EarnPoints(1)

		assert.Error(t, err)
		assert.Equal(t, MaxLoyaltyPoints, customer.Points.Value())
	})
}

func TestCustomerTier(t *testing.T) {
	t.Run("derives tier and discount from balance", func(t *testing.T) {
		customer := newTestCustomer(t)

		assert.Equal(t, TierBronze, customer.Tier())
		assert.True(t, customer.DiscountPercent().Equal(decimal.Zero))

		require.NoError(t, customer.EarnPoints(500))
		assert.Equal(t, TierSilver, customer.Tier())
		assert.True(t, customer.DiscountPercent().Equal(decimal.NewFromInt(5)))

		require.NoError(t, customer.EarnPoints(500))
		assert.Equal(t, TierGold, customer.Tier())
		assert.True(t, customer.DiscountPercent().Equal(decimal.NewFromInt(10)))

		require.NoError(t, customer.EarnPoints(1000))
		assert.Equal(t, TierPlatinum, customer.Tier())
		assert.True(t, customer.DiscountPercent().Equal(decimal.NewFromInt(15)))
	})
}

func TestCustomerVIP(t *testing.T) {
	t.Run("new customer is not VIP", func(t *testing.T) {
		customer := newTestCustomer(t)

		assert.False(t, customer.IsVIP())
	})

	t.Run("qualifies by visit count", func(t *testing.T) {
		customer := newTestCustomer(t)
		for i := 0; i < 10; i++ {
			require.NoError(t, customer.RecordVisit(time.Now()))
		}

		assert.True(t, customer.IsVIP())
	})

	t.Run("qualifies by point balance", func(t *testing.T) {
		customer := newTestCustomer(t)
		require.NoError(t, customer.EarnPoints(1000))

		assert.True(t, customer.IsVIP())
	})

	t.Run("nine visits and 999 points is not VIP", func(t *testing.T) {
		customer := newTestCustomer(t)
		require.NoError(t, customer.EarnPoints(999))
		for i := 0; i < 9; i++ {
			require.NoError(t, customer.RecordVisit(time.Now()))
		}

		assert.False(t, customer.IsVIP())
	})
}

func TestCustomerRecordVisit(t *testing.T) {
	t.Run("increments visits and stamps last visit", func(t *testing.T) {
		customer := newTestCustomer(t)
		visitedAt := time.Date(2026, 8, 14, 15, 30, 0, 0, time.UTC)

		err := customer.RecordVisit(visitedAt)

		require.NoError(t, err)
		assert.Equal(t, 1, customer.TotalVisits)
		require.NotNil(t, customer.LastVisitAt)
		assert.True(t, customer.LastVisitAt.Equal(visitedAt))
		assert.Len(t, customer.GetDomainEvents(), 1)
	})

	t.Run("fails with zero time", func(t *testing.T) {
		customer := newTestCustomer(t)

		err := customer.RecordVisit(time.Time{})

		assert.Error(t, err)
		assert.Equal(t, 0, customer.TotalVisits)
	})
}

func TestCustomerRename(t *testing.T) {
	t.Run("renames customer", func(t *testing.T) {
		customer := newTestCustomer(t)

		err := customer.Rename("Jamie R. Nguyen")

		require.NoError(t, err)
		assert.Equal(t, "Jamie R. Nguyen", customer.Name)
		assert.Equal(t, 2, customer.GetVersion())
	})

	t.Run("fails with invalid name", func(t *testing.T) {
		customer := newTestCustomer(t)

		err := customer.Rename("")

		assert.Error(t, err)
		assert.Equal(t, "Jamie Rivera", customer.Name)
	})
}

func TestCustomerUpdateContact(t *testing.T) {
	t.Run("replaces email and phone", func(t *testing.T) {
		customer := newTestCustomer(t)

		err := customer.UpdateContact(
			valueobject.MustNewEmail("new.address@example.com"),
			valueobject.MustNewPhone("+442071838750"),
		)

		require.NoError(t, err)
		assert.Equal(t, "new.address@example.com", customer.Email.String())
		assert.Equal(t, "+442071838750", customer.Phone.String())
	})

	t.Run("fails with zero values", func(t *testing.T) {
		customer := newTestCustomer(t)

		err := customer.UpdateContact(valueobject.Email{}, customer.Phone)

		assert.Error(t, err)
	})
}

func TestCustomerStatus(t *testing.T) {
	t.Run("deactivates and reactivates", func(t *testing.T) {
		customer := newTestCustomer(t)

		require.NoError(t, customer.Deactivate())
		assert.Equal(t, CustomerStatusInactive, customer.Status)
		assert.False(t, customer.IsActive())

		require.NoError(t, customer.Activate())
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.True(t, customer.IsActive())
	})

	t.Run("fails activating an active customer", func(t *testing.T) {
		customer := newTestCustomer(t)

		err := customer.Activate()

		assert.Error(t, err)
	})

	t.Run("fails deactivating an inactive customer", func(t *testing.T) {
		customer := newTestCustomer(t)
		require.NoError(t, customer.Deactivate())

		err := customer.Deactivate()

		assert.Error(t, err)
	})
}

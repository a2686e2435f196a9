package allocation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarjima/translation_center_app/internal/apperrors"
	"github.com/tarjima/translation_center_app/internal/core/domain"
	"github.com/tarjima/translation_center_app/internal/utils/allocation"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func debt(orderID, remaining string, createdAt time.Time) domain.OrderDebt {
	return domain.OrderDebt{OrderID: orderID, RemainingDebt: dec(remaining), CreatedAt: createdAt}
}

func TestPlan_ZeroDebts_FullRemainder(t *testing.T) {
	plan, err := allocation.Plan(nil, dec("500"))
	require.NoError(t, err)
	assert.Empty(t, plan.Allocations)
	assert.True(t, plan.UnallocatedRemainder.Equal(dec("500")))
}

func TestPlan_ExactPayment_SingleOrder(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	plan, err := allocation.Plan([]domain.OrderDebt{debt("A", "300", t1)}, dec("300"))
	require.NoError(t, err)
	require.Len(t, plan.Allocations, 1)
	assert.Equal(t, "A", plan.Allocations[0].OrderID)
	assert.True(t, plan.Allocations[0].Amount.Equal(dec("300")))
	assert.True(t, plan.UnallocatedRemainder.IsZero())
}

func TestPlan_OverpaymentAcrossMultipleOrders(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	debts := []domain.OrderDebt{
		debt("A", "200", t1),
		debt("B", "150", t2),
	}

	plan, err := allocation.Plan(debts, dec("500"))
	require.NoError(t, err)
	require.Len(t, plan.Allocations, 2)
	assert.Equal(t, "A", plan.Allocations[0].OrderID)
	assert.True(t, plan.Allocations[0].Amount.Equal(dec("200")))
	assert.Equal(t, "B", plan.Allocations[1].OrderID)
	assert.True(t, plan.Allocations[1].Amount.Equal(dec("150")))
	assert.True(t, plan.UnallocatedRemainder.Equal(dec("150")))
}

func TestPlan_PartialPayment_FIFOOrderRespected(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	debts := []domain.OrderDebt{
		debt("A", "200", t1),
		debt("B", "300", t2),
	}

	plan, err := allocation.Plan(debts, dec("250"))
	require.NoError(t, err)
	require.Len(t, plan.Allocations, 2)
	assert.True(t, plan.Allocations[0].Amount.Equal(dec("200")), "oldest order settled first")
	assert.True(t, plan.Allocations[1].Amount.Equal(dec("50")), "next order gets the rest")
	assert.True(t, plan.UnallocatedRemainder.IsZero())
}

func TestPlan_NoOverAllocation(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	debts := []domain.OrderDebt{
		debt("A", "99.99", t1),
		debt("B", "0.01", t1.Add(time.Minute)),
	}

	plan, err := allocation.Plan(debts, dec("1000"))
	require.NoError(t, err)
	for i, alloc := range plan.Allocations {
		assert.True(t, alloc.Amount.LessThanOrEqual(debts[i].RemainingDebt),
			"allocation %d exceeds its debt", i)
		assert.True(t, alloc.Amount.GreaterThan(decimal.Zero))
	}
	assert.True(t, plan.UnallocatedRemainder.Equal(dec("900")))
}

func TestPlan_Conservation(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	debts := []domain.OrderDebt{
		debt("A", "120.50", t1),
		debt("B", "79.25", t1.Add(time.Minute)),
		debt("C", "310.00", t1.Add(2*time.Minute)),
	}

	for _, amount := range []string{"0.01", "120.50", "199.75", "509.75", "999.99"} {
		plan, err := allocation.Plan(debts, dec(amount))
		require.NoError(t, err)
		total := plan.TotalAllocated().Add(plan.UnallocatedRemainder)
		assert.True(t, total.Equal(dec(amount)),
			"amount %s: allocated %s + remainder %s must equal the payment",
			amount, plan.TotalAllocated(), plan.UnallocatedRemainder)
	}
}

func TestPlan_Deterministic(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	debts := []domain.OrderDebt{
		debt("A", "42", t1),
		debt("B", "58", t1.Add(time.Second)),
		debt("C", "17", t1.Add(2*time.Second)),
	}

	first, err := allocation.Plan(debts, dec("75"))
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := allocation.Plan(debts, dec("75"))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPlan_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"0", "-1", "-0.01"} {
		_, err := allocation.Plan(nil, dec(amount))
		require.Error(t, err, "amount %s", amount)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestPlan_SkipsNonPositiveDebtsDefensively(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	debts := []domain.OrderDebt{
		debt("A", "0", t1),
		debt("B", "100", t1.Add(time.Minute)),
	}

	plan, err := allocation.Plan(debts, dec("40"))
	require.NoError(t, err)
	require.Len(t, plan.Allocations, 1)
	assert.Equal(t, "B", plan.Allocations[0].OrderID)
	assert.True(t, plan.Allocations[0].Amount.Equal(dec("40")))
}

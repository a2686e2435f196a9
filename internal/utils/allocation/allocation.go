// Package allocation implements the FIFO debt-settlement planner.
// It is pure: no I/O, fully deterministic given its inputs, so both the
// payment service (previews) and the payment repository (inside the write
// transaction) call it against whatever debt snapshot they hold.
package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tarjima/translation_center_app/internal/apperrors"
	"github.com/tarjima/translation_center_app/internal/core/domain"
)

// Plan walks the debts in the given order (oldest first) and allocates
// min(remaining debt, amount left) to each until the amount is exhausted.
// Whatever cannot be applied to any debt is surfaced as the plan's
// UnallocatedRemainder, never discarded.
//
// The debts slice must already be FIFO-ordered (created_at asc, order id asc);
// Plan does not re-sort because the ledger reader owns that ordering.
func Plan(debts []domain.OrderDebt, amount decimal.Decimal) (domain.AllocationPlan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.AllocationPlan{}, fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}

	plan := domain.AllocationPlan{
		Allocations:          make([]domain.Allocation, 0, len(debts)),
		UnallocatedRemainder: decimal.Zero,
	}

	amountLeft := amount
	for _, debt := range debts {
		if amountLeft.IsZero() {
			break
		}
		if debt.RemainingDebt.LessThanOrEqual(decimal.Zero) {
			// The ledger reader filters these out; skip defensively.
			continue
		}

		applied := decimal.Min(debt.RemainingDebt, amountLeft)
		plan.Allocations = append(plan.Allocations, domain.Allocation{
			OrderID: debt.OrderID,
			Amount:  applied,
		})
		amountLeft = amountLeft.Sub(applied)
	}

	plan.UnallocatedRemainder = amountLeft
	return plan, nil
}

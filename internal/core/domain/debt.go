package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDebt is one open debt position as seen by the ledger reader.
// Sequences of OrderDebt are always ordered oldest-first (created_at, then
// order id) because the FIFO planner depends on that ordering.
type OrderDebt struct {
	OrderID       string          `json:"orderID"`
	RemainingDebt decimal.Decimal `json:"remainingDebt"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Allocation is one planned application of money to one order.
type Allocation struct {
	OrderID string          `json:"orderID"`
	Amount  decimal.Decimal `json:"amount"`
}

// AllocationPlan is the deterministic output of the FIFO planner: which order
// gets how much, and what is left over once every debt is settled.
type AllocationPlan struct {
	Allocations          []Allocation    `json:"allocations"`
	UnallocatedRemainder decimal.Decimal `json:"unallocatedRemainder"`
}

// TotalAllocated sums the planned allocations.
func (p AllocationPlan) TotalAllocated() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Allocations {
		total = total.Add(a.Amount)
	}
	return total
}

// DebtorFilter narrows the top-debtors report. Nil pointer fields mean "no
// filter". BranchID is the caller's access scope, already resolved by the
// boundary (a branch-scoped staff member only ever sees their own branch).
type DebtorFilter struct {
	IsAgency *bool
	BranchID *string
	Limit    int
}

// DebtorSummary is one row of the top-debtors report.
type DebtorSummary struct {
	CustomerID string          `json:"customerID"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	IsAgency   bool            `json:"isAgency"`
	TotalDebt  decimal.Decimal `json:"totalDebt"`
	OrderCount int             `json:"orderCount"`
}

// PaymentStats aggregates the payment history for reporting. AmountApplied is
// computed from the links, not from the payments' declared amounts, so
// overpayment remainders are not counted as settled debt.
type PaymentStats struct {
	PaymentCount    int             `json:"paymentCount"`
	AmountApplied   decimal.Decimal `json:"amountApplied"`
	AmountDeclared  decimal.Decimal `json:"amountDeclared"`
	OrdersSettled   int             `json:"ordersSettled"`
	FullyPaidOrders int             `json:"fullyPaidOrders"`
}

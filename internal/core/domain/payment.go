package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates how a payment was collected.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
)

// IsValid reports whether the method is one of the supported values.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer:
		return true
	}
	return false
}

// BulkPayment is a single lump payment collected from a customer and distributed
// across their outstanding orders. Invariant: Amount equals the sum of the link
// amounts plus UnallocatedRemainder; nothing is ever silently dropped.
type BulkPayment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key (UUID)
	CustomerID  string          `json:"customerID"`
	Amount      decimal.Decimal `json:"amount"` // Strictly positive
	Method      PaymentMethod   `json:"method"`
	ReceiptNote string          `json:"receiptNote"`
	// IdempotencyKey is the caller-supplied token guarding against duplicate
	// submissions. Empty means the caller opted out of the guard.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
	// UnallocatedRemainder is the portion left after all known debts were
	// settled (overpayment). It is recorded, not turned into spendable credit.
	UnallocatedRemainder decimal.Decimal    `json:"unallocatedRemainder"`
	OrdersPaid           int                `json:"ordersPaid"`
	FullyPaidOrders      int                `json:"fullyPaidOrders"`
	RemainingDebtAfter   decimal.Decimal    `json:"remainingDebtAfter"`
	ProcessedBy          string             `json:"processedBy"` // StaffID
	ProcessedAt          time.Time          `json:"processedAt"`
	BranchID             *string            `json:"branchID"`
	Links                []PaymentOrderLink `json:"links,omitempty"`
}

// PaymentOrderLink records the portion of one bulk payment applied to one order.
// Links are created once, atomically with the payment, and never mutated;
// corrections are new compensating payments.
type PaymentOrderLink struct {
	LinkID           string          `json:"linkID"` // Primary Key (UUID)
	PaymentID        string          `json:"paymentID"`
	OrderID          string          `json:"orderID"`
	AmountApplied    decimal.Decimal `json:"amountApplied"` // 0 < AmountApplied <= remaining debt at allocation time
	PreviousReceived decimal.Decimal `json:"previousReceived"`
	NewReceived      decimal.Decimal `json:"newReceived"`
	FullyPaid        bool            `json:"fullyPaid"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// DirectPayment carries the parameters of a single-order payment recorded
// outside the bulk-settlement path (e.g. a customer paying for one order at
// the counter). Applied under the same row lock as bulk payments.
type DirectPayment struct {
	OrderID string
	// Amount is the partial payment to add; ignored when AcceptFully is set.
	Amount decimal.Decimal
	// AcceptFully marks the order as fully paid. When the received amount is
	// still short of the total due, ForceAccept must be set (owner override).
	AcceptFully bool
	ForceAccept bool
	// ExtraFee, when non-nil, replaces the order's extra fee before payment.
	ExtraFee            *decimal.Decimal
	ExtraFeeDescription string
	ProcessedBy         string // StaffID
}

// PaymentReceipt is the result surfaced to the caller after a payment is applied.
// Duplicate is set when an idempotency-key replay returned the original result
// instead of re-executing the application.
type PaymentReceipt struct {
	Payment   BulkPayment `json:"payment"`
	Duplicate bool        `json:"duplicate"`
}

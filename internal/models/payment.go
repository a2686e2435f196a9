package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod mirrors domain.PaymentMethod at the persistence layer.
type PaymentMethod string

// BulkPayment is the database representation of a lump payment.
type BulkPayment struct {
	PaymentID            string          `json:"paymentID"` // Primary Key (UUID)
	CustomerID           string          `json:"customerID"`
	Amount               decimal.Decimal `json:"amount"`
	Method               PaymentMethod   `json:"method"`
	ReceiptNote          string          `json:"receiptNote"`
	IdempotencyKey       *string         `json:"idempotencyKey"` // Nullable, UNIQUE when set
	UnallocatedRemainder decimal.Decimal `json:"unallocatedRemainder"`
	OrdersPaid           int             `json:"ordersPaid"`
	FullyPaidOrders      int             `json:"fullyPaidOrders"`
	RemainingDebtAfter   decimal.Decimal `json:"remainingDebtAfter"`
	ProcessedBy          string          `json:"processedBy"`
	ProcessedAt          time.Time       `json:"processedAt"`
	BranchID             *string         `json:"branchID"` // Nullable
}

// PaymentOrderLink is the database representation of one payment-to-order
// application. Rows are insert-only.
type PaymentOrderLink struct {
	LinkID           string          `json:"linkID"` // Primary Key (UUID)
	PaymentID        string          `json:"paymentID"`
	OrderID          string          `json:"orderID"`
	AmountApplied    decimal.Decimal `json:"amountApplied"`
	PreviousReceived decimal.Decimal `json:"previousReceived"`
	NewReceived      decimal.Decimal `json:"newReceived"`
	FullyPaid        bool            `json:"fullyPaid"`
	CreatedAt        time.Time       `json:"createdAt"`
}

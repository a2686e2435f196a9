package domain

import "github.com/shopspring/decimal"

// OrderStatus tracks an order through the payment and fulfilment workflow.
type OrderStatus string

const (
	OrderPending          OrderStatus = "pending"
	OrderPaymentPending   OrderStatus = "payment_pending"
	OrderPaymentReceived  OrderStatus = "payment_received"
	OrderPaymentConfirmed OrderStatus = "payment_confirmed"
	OrderInProgress       OrderStatus = "in_progress"
	OrderReady            OrderStatus = "ready"
	OrderCompleted        OrderStatus = "completed"
	OrderCancelled        OrderStatus = "cancelled"
)

// CanConfirmPayment reports whether an order in this status may transition to
// payment_confirmed once it is fully paid. Orders already past the payment phase
// keep their status.
func (s OrderStatus) CanConfirmPayment() bool {
	switch s {
	case OrderPending, OrderPaymentPending, OrderPaymentReceived:
		return true
	}
	return false
}

// Order is the aggregate root for debt. TotalPrice is fixed once the order is
// priced; ReceivedAmount only ever grows and never exceeds the total due.
type Order struct {
	OrderID             string          `json:"orderID"` // Primary Key (UUID)
	CustomerID          string          `json:"customerID"`
	BranchID            *string         `json:"branchID"`
	Description         string          `json:"description"`
	TotalPrice          decimal.Decimal `json:"totalPrice"`
	ExtraFee            decimal.Decimal `json:"extraFee"`
	ExtraFeeDescription string          `json:"extraFeeDescription"`
	ReceivedAmount      decimal.Decimal `json:"receivedAmount"`
	// PaymentAcceptedFully forces remaining debt to zero regardless of the
	// received amount (owner override for write-offs).
	PaymentAcceptedFully bool        `json:"paymentAcceptedFully"`
	Status               OrderStatus `json:"status"`
	AuditFields
}

// TotalDue is the full amount owed for the order: base price plus any extra fee.
func (o Order) TotalDue() decimal.Decimal {
	return o.TotalPrice.Add(o.ExtraFee)
}

// RemainingDebt derives the outstanding balance. It is never stored: cancelled
// orders and fully-accepted orders carry zero debt, everything else owes
// TotalDue minus ReceivedAmount, floored at zero.
func (o Order) RemainingDebt() decimal.Decimal {
	if o.Status == OrderCancelled || o.PaymentAcceptedFully {
		return decimal.Zero
	}
	remaining := o.TotalDue().Sub(o.ReceivedAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsFullyPaid reports whether the received amount covers the total due.
func (o Order) IsFullyPaid() bool {
	return o.PaymentAcceptedFully || o.ReceivedAmount.GreaterThanOrEqual(o.TotalDue())
}

package models

import "github.com/shopspring/decimal"

// OrderStatus mirrors domain.OrderStatus at the persistence layer.
type OrderStatus string

// Order is the database representation of an order.
// RemainingDebt is always derived from these columns, never stored.
type Order struct {
	OrderID              string          `json:"orderID"` // Primary Key (UUID)
	CustomerID           string          `json:"customerID"`
	BranchID             *string         `json:"branchID"` // Nullable
	Description          string          `json:"description"`
	TotalPrice           decimal.Decimal `json:"totalPrice"`
	ExtraFee             decimal.Decimal `json:"extraFee"`
	ExtraFeeDescription  string          `json:"extraFeeDescription"`
	ReceivedAmount       decimal.Decimal `json:"receivedAmount"`
	PaymentAcceptedFully bool            `json:"paymentAcceptedFully"`
	Status               OrderStatus     `json:"status"`
	AuditFields
}

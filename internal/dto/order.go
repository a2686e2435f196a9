package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarjima/translation_center_app/internal/core/domain"
)

// CreateOrderRequest is the payload for creating a priced order.
// TotalPrice is an input here: pricing happens upstream and is never
// recomputed by the ledger.
type CreateOrderRequest struct {
	CustomerID  string          `json:"customerID" binding:"required"`
	Description string          `json:"description"`
	TotalPrice  decimal.Decimal `json:"totalPrice" binding:"required"`
	ExtraFee    decimal.Decimal `json:"extraFee"`
	BranchID    *string         `json:"branchID"`
}

// OrderResponse is the API representation of an order, including the derived
// remaining debt.
type OrderResponse struct {
	OrderID              string          `json:"orderID"`
	CustomerID           string          `json:"customerID"`
	Description          string          `json:"description,omitempty"`
	TotalPrice           decimal.Decimal `json:"totalPrice"`
	ExtraFee             decimal.Decimal `json:"extraFee"`
	ReceivedAmount       decimal.Decimal `json:"receivedAmount"`
	RemainingDebt        decimal.Decimal `json:"remainingDebt"`
	PaymentAcceptedFully bool            `json:"paymentAcceptedFully"`
	Status               string          `json:"status"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// ToOrderResponse converts a domain Order to its API representation.
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:              o.OrderID,
		CustomerID:           o.CustomerID,
		Description:          o.Description,
		TotalPrice:           o.TotalPrice,
		ExtraFee:             o.ExtraFee,
		ReceivedAmount:       o.ReceivedAmount,
		RemainingDebt:        o.RemainingDebt(),
		PaymentAcceptedFully: o.PaymentAcceptedFully,
		Status:               string(o.Status),
		CreatedAt:            o.CreatedAt,
	}
}

// ToOrderResponses converts a slice of domain Orders.
func ToOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

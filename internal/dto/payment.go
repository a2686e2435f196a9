package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarjima/translation_center_app/internal/core/domain"
)

// ApplyBulkPaymentRequest is the payload for settling a customer's debts with
// one lump payment.
type ApplyBulkPaymentRequest struct {
	CustomerID  string          `json:"customerID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,paymentmethod"`
	ReceiptNote string          `json:"receiptNote"`
	// IdempotencyKey guards against duplicate submissions. Clients should
	// generate it before sending so retries reference the same key.
	IdempotencyKey string `json:"idempotencyKey"`
}

// PreviewAllocationRequest asks how a payment would be distributed, without
// applying anything.
type PreviewAllocationRequest struct {
	CustomerID string          `json:"customerID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// RecordOrderPaymentRequest is the payload for a direct single-order payment.
type RecordOrderPaymentRequest struct {
	Amount              *decimal.Decimal `json:"amount"`
	AcceptFully         bool             `json:"acceptFully"`
	ForceAccept         bool             `json:"forceAccept"`
	ExtraFee            *decimal.Decimal `json:"extraFee"`
	ExtraFeeDescription string           `json:"extraFeeDescription"`
}

// PaymentOrderLinkResponse is one per-order line of a payment breakdown.
type PaymentOrderLinkResponse struct {
	OrderID          string          `json:"orderID"`
	AmountApplied    decimal.Decimal `json:"amountApplied"`
	PreviousReceived decimal.Decimal `json:"previousReceived"`
	NewReceived      decimal.Decimal `json:"newReceived"`
	FullyPaid        bool            `json:"fullyPaid"`
}

// BulkPaymentResponse is the API representation of a recorded bulk payment.
type BulkPaymentResponse struct {
	PaymentID            string                     `json:"paymentID"`
	CustomerID           string                     `json:"customerID"`
	Amount               decimal.Decimal            `json:"amount"`
	Method               string                     `json:"method"`
	ReceiptNote          string                     `json:"receiptNote,omitempty"`
	UnallocatedRemainder decimal.Decimal            `json:"unallocatedRemainder"`
	OrdersPaid           int                        `json:"ordersPaid"`
	FullyPaidOrders      int                        `json:"fullyPaidOrders"`
	RemainingDebtAfter   decimal.Decimal            `json:"remainingDebtAfter"`
	ProcessedBy          string                     `json:"processedBy"`
	ProcessedAt          time.Time                  `json:"processedAt"`
	Links                []PaymentOrderLinkResponse `json:"links,omitempty"`
}

// PaymentReceiptResponse wraps a payment with the duplicate-submission flag.
type PaymentReceiptResponse struct {
	Payment   BulkPaymentResponse `json:"payment"`
	Duplicate bool                `json:"duplicate"`
}

// AllocationPlanResponse is the API representation of a (preview) allocation.
type AllocationPlanResponse struct {
	Allocations          []AllocationResponse `json:"allocations"`
	UnallocatedRemainder decimal.Decimal      `json:"unallocatedRemainder"`
}

// AllocationResponse is one planned application of money to one order.
type AllocationResponse struct {
	OrderID string          `json:"orderID"`
	Amount  decimal.Decimal `json:"amount"`
}

// ListPaymentsParams holds parameters for listing the payment history.
type ListPaymentsParams struct {
	CustomerID *string
	Method     *string
	Limit      int
	NextToken  *string
}

// ListPaymentsResponse is a page of the payment history.
type ListPaymentsResponse struct {
	Payments  []BulkPaymentResponse `json:"payments"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToBulkPaymentResponse converts a domain BulkPayment to its API representation.
func ToBulkPaymentResponse(p *domain.BulkPayment) BulkPaymentResponse {
	links := make([]PaymentOrderLinkResponse, len(p.Links))
	for i, l := range p.Links {
		links[i] = PaymentOrderLinkResponse{
			OrderID:          l.OrderID,
			AmountApplied:    l.AmountApplied,
			PreviousReceived: l.PreviousReceived,
			NewReceived:      l.NewReceived,
			FullyPaid:        l.FullyPaid,
		}
	}
	return BulkPaymentResponse{
		PaymentID:            p.PaymentID,
		CustomerID:           p.CustomerID,
		Amount:               p.Amount,
		Method:               string(p.Method),
		ReceiptNote:          p.ReceiptNote,
		UnallocatedRemainder: p.UnallocatedRemainder,
		OrdersPaid:           p.OrdersPaid,
		FullyPaidOrders:      p.FullyPaidOrders,
		RemainingDebtAfter:   p.RemainingDebtAfter,
		ProcessedBy:          p.ProcessedBy,
		ProcessedAt:          p.ProcessedAt,
		Links:                links,
	}
}

// ToPaymentReceiptResponse converts a domain PaymentReceipt to its API representation.
func ToPaymentReceiptResponse(r *domain.PaymentReceipt) PaymentReceiptResponse {
	return PaymentReceiptResponse{
		Payment:   ToBulkPaymentResponse(&r.Payment),
		Duplicate: r.Duplicate,
	}
}

// ToAllocationPlanResponse converts a domain AllocationPlan to its API representation.
func ToAllocationPlanResponse(p *domain.AllocationPlan) AllocationPlanResponse {
	allocations := make([]AllocationResponse, len(p.Allocations))
	for i, a := range p.Allocations {
		allocations[i] = AllocationResponse{OrderID: a.OrderID, Amount: a.Amount}
	}
	return AllocationPlanResponse{
		Allocations:          allocations,
		UnallocatedRemainder: p.UnallocatedRemainder,
	}
}

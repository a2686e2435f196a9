package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tarjima/translation_center_app/internal/core/domain"
	"github.com/tarjima/translation_center_app/internal/dto"
)

// PaymentSvcFacade defines the payment workflows.
type PaymentSvcFacade interface {
	// ApplyPayment settles a customer's debts with one lump payment. When the
	// request carries an idempotency key that was already processed, the stored
	// receipt is returned with Duplicate set and nothing is applied again.
	ApplyPayment(ctx context.Context, req dto.ApplyBulkPaymentRequest, processedBy string) (*domain.PaymentReceipt, error)
	// PreviewAllocation computes how an amount would be distributed over the
	// customer's open debts without persisting anything.
	PreviewAllocation(ctx context.Context, customerID string, amount decimal.Decimal) (*domain.AllocationPlan, error)
	// RecordOrderPayment applies a payment directly to a single order.
	RecordOrderPayment(ctx context.Context, orderID string, req dto.RecordOrderPaymentRequest, processedBy string) (*domain.Order, error)
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.BulkPayment, error)
	ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)
}

package repositories

import (
	"context"

	"github.com/tarjima/translation_center_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a bulk payment with its order links.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.BulkPayment, error)

	// FindPaymentByIdempotencyKey retrieves the bulk payment recorded under
	// the given idempotency key, with its order links.
	FindPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.BulkPayment, error)

	// ListPayments retrieves a paginated list of bulk payments, newest first,
	// optionally filtered by customer and method. Returns the payments and a
	// token for the next page.
	ListPayments(ctx context.Context, customerID *string, method *domain.PaymentMethod, limit int, nextToken *string) ([]domain.BulkPayment, *string, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// ApplyBulkPayment executes the whole settlement as one atomic unit of
	// work: it locks the customer's open orders, re-reads their debts under
	// the lock, plans the FIFO allocation, inserts the payment and its links,
	// and bumps each order's received amount. Either everything commits or
	// nothing does.
	//
	// Returns apperrors.ErrDuplicate when the payment's idempotency key is
	// already recorded, and apperrors.ErrConcurrentModification when the row
	// locks could not be acquired within the configured timeout.
	ApplyBulkPayment(ctx context.Context, payment domain.BulkPayment) (*domain.BulkPayment, error)

	// RecordOrderPayment applies a direct (non-bulk) payment to one order
	// under the same row lock, returning the updated order.
	RecordOrderPayment(ctx context.Context, payment domain.DirectPayment) (*domain.Order, error)
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

package repositories

import (
	"context"

	"github.com/tarjima/translation_center_app/internal/core/domain"
)

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves a specific order by its unique identifier.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrdersByCustomer retrieves all orders belonging to a customer,
	// newest first.
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)

	// ListDebtsByCustomer retrieves every open debt position for a customer in
	// a single query: non-cancelled orders with a positive remaining balance,
	// ordered by created_at ascending with order id as the tie-break. This
	// ordering is load-bearing; the FIFO planner depends on it.
	ListDebtsByCustomer(ctx context.Context, customerID string) ([]domain.OrderDebt, error)
}

// OrderWriter defines write operations for order data
type OrderWriter interface {
	// SaveOrder persists a new order.
	SaveOrder(ctx context.Context, order domain.Order) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}

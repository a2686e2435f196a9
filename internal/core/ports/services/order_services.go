package ports

import (
	"context"

	"github.com/tarjima/translation_center_app/internal/core/domain"
	"github.com/tarjima/translation_center_app/internal/dto"
)

// OrderSvcFacade defines order management operations.
type OrderSvcFacade interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, createdBy string) (*domain.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

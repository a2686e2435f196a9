package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tarjima/translation_center_app/internal/apperrors"
	"github.com/tarjima/translation_center_app/internal/core/domain"
	portsrepo "github.com/tarjima/translation_center_app/internal/core/ports/repositories"
	portssvc "github.com/tarjima/translation_center_app/internal/core/ports/services"
	"github.com/tarjima/translation_center_app/internal/dto"
)

// OrderService implements order management. Pricing happens upstream; this
// service only records the priced order so the debt ledger can track it.
type OrderService struct {
	BaseService
	orderRepo    portsrepo.OrderRepositoryFacade
	customerRepo portsrepo.CustomerReader
}

var _ portssvc.OrderSvcFacade = (*OrderService)(nil)

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade, customerRepo portsrepo.CustomerReader) *OrderService {
	return &OrderService{orderRepo: orderRepo, customerRepo: customerRepo}
}

func (s *OrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, createdBy string) (*domain.Order, error) {
	if req.TotalPrice.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "order total price must be positive", apperrors.ErrValidation)
	}
	if req.ExtraFee.IsNegative() {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "extra fee must not be negative", apperrors.ErrValidation)
	}

	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("customer not found: " + req.CustomerID)
		}
		return nil, err
	}

	now := time.Now()
	order := domain.Order{
		OrderID:        uuid.NewString(),
		CustomerID:     req.CustomerID,
		Description:    req.Description,
		TotalPrice:     req.TotalPrice,
		ExtraFee:       req.ExtraFee,
		ReceivedAmount: decimal.Zero,
		Status:         domain.OrderPending,
		BranchID:       req.BranchID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "failed to save order", "customer_id", req.CustomerID)
		return nil, err
	}

	s.LogInfo(ctx, "order created",
		"order_id", order.OrderID,
		"customer_id", order.CustomerID,
		"total_due", order.TotalDue().String())
	return &order, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("order not found: " + orderID)
		}
		s.LogError(ctx, err, "failed to get order", "order_id", orderID)
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("customer not found: " + customerID)
		}
		return nil, err
	}
	orders, err := s.orderRepo.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "failed to list orders", "customer_id", customerID)
		return nil, err
	}
	return orders, nil
}

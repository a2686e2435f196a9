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
	"github.com/tarjima/translation_center_app/internal/utils/allocation"
)

const (
	defaultPaymentPageSize = 20
	maxPaymentPageSize     = 100
)

// PaymentService implements the payment workflows on top of the payment,
// order and customer repositories.
type PaymentService struct {
	BaseService
	paymentRepo  portsrepo.PaymentRepositoryFacade
	orderRepo    portsrepo.OrderReader
	customerRepo portsrepo.CustomerReader
}

var _ portssvc.PaymentSvcFacade = (*PaymentService)(nil)

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, orderRepo portsrepo.OrderReader, customerRepo portsrepo.CustomerReader) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
	}
}

// ApplyPayment settles a customer's debts with one lump payment.
//
// The actual allocation and writes happen inside the repository under row
// locks; this layer validates the request, resolves the customer, and handles
// idempotency-key replays by returning the stored receipt instead of failing.
func (s *PaymentService) ApplyPayment(ctx context.Context, req dto.ApplyBulkPaymentRequest, processedBy string) (*domain.PaymentReceipt, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "payment amount must be positive", apperrors.ErrValidation)
	}
	method := domain.PaymentMethod(req.Method)
	if !method.IsValid() {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "unsupported payment method: "+req.Method, apperrors.ErrValidation)
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("customer not found: " + req.CustomerID)
		}
		s.LogError(ctx, err, "failed to load customer for payment", "customer_id", req.CustomerID)
		return nil, err
	}

	payment := domain.BulkPayment{
		PaymentID:      uuid.NewString(),
		CustomerID:     customer.CustomerID,
		Amount:         req.Amount,
		Method:         method,
		ReceiptNote:    req.ReceiptNote,
		IdempotencyKey: req.IdempotencyKey,
		ProcessedBy:    processedBy,
		ProcessedAt:    time.Now(),
		BranchID:       customer.BranchID,
	}

	applied, err := s.paymentRepo.ApplyBulkPayment(ctx, payment)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) && req.IdempotencyKey != "" {
			return s.replayPayment(ctx, req.IdempotencyKey)
		}
		if errors.Is(err, apperrors.ErrConcurrentModification) {
			s.LogInfo(ctx, "payment lost the row lock race, telling client to retry",
				"customer_id", req.CustomerID, "idempotency_key", req.IdempotencyKey)
			return nil, err
		}
		s.LogError(ctx, err, "failed to apply bulk payment", "customer_id", req.CustomerID)
		return nil, err
	}

	if err := checkConservation(applied); err != nil {
		// The transaction already committed, so surface loudly rather than
		// pretending the receipt is trustworthy.
		s.LogError(ctx, err, "allocation conservation violated", "payment_id", applied.PaymentID)
		return nil, err
	}

	s.LogInfo(ctx, "bulk payment applied",
		"payment_id", applied.PaymentID,
		"customer_id", applied.CustomerID,
		"amount", applied.Amount.String(),
		"orders_paid", applied.OrdersPaid,
		"remainder", applied.UnallocatedRemainder.String())

	return &domain.PaymentReceipt{Payment: *applied, Duplicate: false}, nil
}

// replayPayment returns the receipt stored under an already-used idempotency key.
func (s *PaymentService) replayPayment(ctx context.Context, key string) (*domain.PaymentReceipt, error) {
	stored, err := s.paymentRepo.FindPaymentByIdempotencyKey(ctx, key)
	if err != nil {
		s.LogError(ctx, err, "duplicate key detected but stored payment not readable", "idempotency_key", key)
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to load original payment for duplicate request", err)
	}
	s.LogInfo(ctx, "duplicate payment submission, returning stored receipt",
		"payment_id", stored.PaymentID, "idempotency_key", key)
	return &domain.PaymentReceipt{Payment: *stored, Duplicate: true}, nil
}

// checkConservation verifies that the applied links plus the remainder add up
// to exactly the declared amount.
func checkConservation(p *domain.BulkPayment) error {
	total := p.UnallocatedRemainder
	for _, l := range p.Links {
		total = total.Add(l.AmountApplied)
	}
	if !total.Equal(p.Amount) {
		return apperrors.NewAppError(http.StatusInternalServerError,
			"allocated total "+total.String()+" does not match payment amount "+p.Amount.String(),
			apperrors.ErrInternal)
	}
	return nil
}

// PreviewAllocation computes the FIFO distribution of an amount over the
// customer's current open debts without writing anything. The preview reads
// without locks, so a concurrent payment can make it stale; the apply path
// always re-plans under the lock.
func (s *PaymentService) PreviewAllocation(ctx context.Context, customerID string, amount decimal.Decimal) (*domain.AllocationPlan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "payment amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("customer not found: " + customerID)
		}
		return nil, err
	}

	debts, err := s.orderRepo.ListDebtsByCustomer(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "failed to list debts for preview", "customer_id", customerID)
		return nil, err
	}

	plan, err := allocation.Plan(debts, amount)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// RecordOrderPayment applies a payment directly to one order.
func (s *PaymentService) RecordOrderPayment(ctx context.Context, orderID string, req dto.RecordOrderPaymentRequest, processedBy string) (*domain.Order, error) {
	direct := domain.DirectPayment{
		OrderID:             orderID,
		AcceptFully:         req.AcceptFully,
		ForceAccept:         req.ForceAccept,
		ExtraFee:            req.ExtraFee,
		ExtraFeeDescription: req.ExtraFeeDescription,
		ProcessedBy:         processedBy,
	}

	if req.ExtraFee != nil && req.ExtraFee.IsNegative() {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "extra fee must not be negative", apperrors.ErrValidation)
	}
	if !req.AcceptFully {
		if req.Amount == nil || req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewAppError(http.StatusBadRequest, "payment amount must be positive", apperrors.ErrValidation)
		}
		direct.Amount = *req.Amount
	} else if req.Amount != nil {
		direct.Amount = *req.Amount
	}

	order, err := s.paymentRepo.RecordOrderPayment(ctx, direct)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("order not found: " + orderID)
		}
		s.LogError(ctx, err, "failed to record order payment", "order_id", orderID)
		return nil, err
	}

	s.LogInfo(ctx, "order payment recorded",
		"order_id", order.OrderID,
		"received_amount", order.ReceivedAmount.String(),
		"status", string(order.Status))
	return order, nil
}

// GetPaymentByID retrieves a bulk payment with its order links.
func (s *PaymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.BulkPayment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("payment not found: " + paymentID)
		}
		s.LogError(ctx, err, "failed to get payment", "payment_id", paymentID)
		return nil, err
	}
	return payment, nil
}

// ListPayments returns a page of the payment history, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPaymentPageSize
	}
	if limit > maxPaymentPageSize {
		limit = maxPaymentPageSize
	}

	var method *domain.PaymentMethod
	if params.Method != nil && *params.Method != "" {
		m := domain.PaymentMethod(*params.Method)
		if !m.IsValid() {
			return nil, apperrors.NewAppError(http.StatusBadRequest, "unsupported payment method: "+*params.Method, apperrors.ErrValidation)
		}
		method = &m
	}

	payments, nextToken, err := s.paymentRepo.ListPayments(ctx, params.CustomerID, method, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to list payments")
		return nil, err
	}

	resp := dto.ListPaymentsResponse{
		Payments:  make([]dto.BulkPaymentResponse, len(payments)),
		NextToken: nextToken,
	}
	for i := range payments {
		resp.Payments[i] = dto.ToBulkPaymentResponse(&payments[i])
	}
	return &resp, nil
}

package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tarjima/translation_center_app/internal/apperrors"
	"github.com/tarjima/translation_center_app/internal/core/domain"
	portsrepo "github.com/tarjima/translation_center_app/internal/core/ports/repositories"
	portssvc "github.com/tarjima/translation_center_app/internal/core/ports/services"
	"github.com/tarjima/translation_center_app/internal/dto"
)

const (
	defaultDebtorLimit = 20
	maxDebtorLimit     = 100

	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// DebtService implements debt inspection and reporting over the order,
// customer and reporting repositories.
type DebtService struct {
	BaseService
	orderRepo     portsrepo.OrderReader
	customerRepo  portsrepo.CustomerReader
	reportingRepo portsrepo.ReportingRepository
}

var _ portssvc.DebtSvcFacade = (*DebtService)(nil)

// NewDebtService creates a new DebtService.
func NewDebtService(orderRepo portsrepo.OrderReader, customerRepo portsrepo.CustomerReader, reportingRepo portsrepo.ReportingRepository) *DebtService {
	return &DebtService{
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		reportingRepo: reportingRepo,
	}
}

// ListDebts returns a customer's open debts, oldest first.
func (s *DebtService) ListDebts(ctx context.Context, customerID string) ([]domain.OrderDebt, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("customer not found: " + customerID)
		}
		return nil, err
	}
	debts, err := s.orderRepo.ListDebtsByCustomer(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "failed to list customer debts", "customer_id", customerID)
		return nil, err
	}
	return debts, nil
}

// TopDebtors ranks customers by total outstanding debt, descending.
func (s *DebtService) TopDebtors(ctx context.Context, params dto.TopDebtorsParams) ([]domain.DebtorSummary, error) {
	filter := domain.DebtorFilter{
		BranchID: params.BranchID,
		Limit:    params.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultDebtorLimit
	}
	if filter.Limit > maxDebtorLimit {
		filter.Limit = maxDebtorLimit
	}

	switch strings.ToLower(params.CustomerType) {
	case "":
		// no filter
	case "agency":
		isAgency := true
		filter.IsAgency = &isAgency
	case "individual":
		isAgency := false
		filter.IsAgency = &isAgency
	default:
		return nil, apperrors.NewAppError(http.StatusBadRequest, "unsupported customer type: "+params.CustomerType, apperrors.ErrValidation)
	}

	debtors, err := s.reportingRepo.GetTopDebtors(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "failed to get top debtors")
		return nil, err
	}
	return debtors, nil
}

// SearchCustomersWithDebt finds customers by name or phone fragment, with
// their current total debt attached.
func (s *DebtService) SearchCustomersWithDebt(ctx context.Context, query string, limit int) ([]domain.DebtorSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "search query must not be empty", apperrors.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	results, err := s.customerRepo.SearchCustomersWithDebt(ctx, query, limit)
	if err != nil {
		s.LogError(ctx, err, "failed to search customers with debt", "query", query)
		return nil, err
	}
	return results, nil
}

// PaymentStats aggregates bulk-payment activity over [from, to).
func (s *DebtService) PaymentStats(ctx context.Context, from, to time.Time, branchID *string) (*domain.PaymentStats, error) {
	if !to.After(from) {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "stats period end must be after start", apperrors.ErrValidation)
	}
	stats, err := s.reportingRepo.GetPaymentStats(ctx, from, to, branchID)
	if err != nil {
		s.LogError(ctx, err, "failed to get payment stats")
		return nil, err
	}
	return stats, nil
}

package ports

import (
	"context"
	"time"

	"github.com/tarjima/translation_center_app/internal/core/domain"
	"github.com/tarjima/translation_center_app/internal/dto"
)

// DebtSvcFacade defines the debt inspection and reporting operations.
type DebtSvcFacade interface {
	// ListDebts returns a customer's open debts ordered oldest-first.
	ListDebts(ctx context.Context, customerID string) ([]domain.OrderDebt, error)
	// TopDebtors ranks customers by total outstanding debt.
	TopDebtors(ctx context.Context, params dto.TopDebtorsParams) ([]domain.DebtorSummary, error)
	// SearchCustomersWithDebt finds customers by name or phone fragment, each
	// annotated with their current total debt.
	SearchCustomersWithDebt(ctx context.Context, query string, limit int) ([]domain.DebtorSummary, error)
	// PaymentStats aggregates bulk-payment activity over a period.
	PaymentStats(ctx context.Context, from, to time.Time, branchID *string) (*domain.PaymentStats, error)
}

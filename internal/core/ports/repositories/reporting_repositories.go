package repositories

import (
	"context"
	"time"

	"github.com/tarjima/translation_center_app/internal/core/domain"
)

// ReportingRepository defines read-only aggregation queries for reporting.
// These run as single aggregating queries over a consistent snapshot; they do
// not lock and are never used as the authoritative input to a payment.
type ReportingRepository interface {
	// GetTopDebtors ranks customers by total outstanding debt, descending,
	// customer id ascending on ties. Cost is O(customers), one GROUP BY query.
	GetTopDebtors(ctx context.Context, filter domain.DebtorFilter) ([]domain.DebtorSummary, error)

	// GetPaymentStats aggregates bulk-payment activity for a period. Applied
	// amounts come from the links, not the payments' declared amounts.
	GetPaymentStats(ctx context.Context, from, to time.Time, branchID *string) (*domain.PaymentStats, error)
}

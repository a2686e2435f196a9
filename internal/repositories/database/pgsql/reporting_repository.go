package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tarjima/translation_center_app/internal/apperrors"
	"github.com/tarjima/translation_center_app/internal/core/domain"
	portsrepo "github.com/tarjima/translation_center_app/internal/core/ports/repositories"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for reporting queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetTopDebtors ranks customers by total outstanding debt with one GROUP BY
// query. Ties break on customer id ascending so pages are stable.
func (r *ReportingRepository) GetTopDebtors(ctx context.Context, filter domain.DebtorFilter) ([]domain.DebtorSummary, error) {
	query := `
		SELECT c.customer_id, c.name, c.phone, c.is_agency,
		       SUM(o.total_price + o.extra_fee - o.received_amount) AS total_debt,
		       COUNT(o.order_id) AS order_count
		FROM customers c
		JOIN orders o ON o.customer_id = c.customer_id
		WHERE o.status != 'cancelled'
		  AND NOT o.payment_accepted_fully
		  AND (o.total_price + o.extra_fee - o.received_amount) > 0
	`
	args := []interface{}{}

	if filter.IsAgency != nil {
		args = append(args, *filter.IsAgency)
		query += ` AND c.is_agency = $` + strconv.Itoa(len(args))
	}
	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		query += ` AND c.branch_id = $` + strconv.Itoa(len(args))
	}

	args = append(args, filter.Limit)
	query += `
		GROUP BY c.customer_id, c.name, c.phone, c.is_agency
		ORDER BY total_debt DESC, c.customer_id ASC
		LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query top debtors", err)
	}
	defer rows.Close()

	debtors := []domain.DebtorSummary{}
	for rows.Next() {
		var d domain.DebtorSummary
		if err := rows.Scan(&d.CustomerID, &d.Name, &d.Phone, &d.IsAgency, &d.TotalDebt, &d.OrderCount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan top debtor row", err)
		}
		debtors = append(debtors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating top debtor rows", err)
	}

	return debtors, nil
}

// GetPaymentStats aggregates bulk-payment activity over [from, to). Applied
// amounts come from the links, so overpayment remainders do not inflate the
// settled figure.
func (r *ReportingRepository) GetPaymentStats(ctx context.Context, from, to time.Time, branchID *string) (*domain.PaymentStats, error) {
	// Declared amounts are aggregated separately from the link amounts because
	// a join would count a payment's declared amount once per link.
	query := `
		WITH period_payments AS (
			SELECT payment_id, amount
			FROM bulk_payments
			WHERE processed_at >= $1 AND processed_at < $2
	`
	args := []interface{}{from, to}
	if branchID != nil {
		args = append(args, *branchID)
		query += ` AND branch_id = $` + strconv.Itoa(len(args))
	}
	query += `
		)
		SELECT (SELECT COUNT(*) FROM period_payments),
		       COALESCE((SELECT SUM(l.amount_applied) FROM payment_order_links l JOIN period_payments pp ON pp.payment_id = l.payment_id), 0),
		       COALESCE((SELECT SUM(amount) FROM period_payments), 0),
		       (SELECT COUNT(*) FROM payment_order_links l JOIN period_payments pp ON pp.payment_id = l.payment_id),
		       (SELECT COUNT(*) FROM payment_order_links l JOIN period_payments pp ON pp.payment_id = l.payment_id WHERE l.fully_paid);
	`

	var stats domain.PaymentStats
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&stats.PaymentCount,
		&stats.AmountApplied,
		&stats.AmountDeclared,
		&stats.OrdersSettled,
		&stats.FullyPaidOrders,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment stats", err)
	}

	return &stats, nil
}

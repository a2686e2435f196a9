package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tarjima/translation_center_app/internal/apperrors"
	"github.com/tarjima/translation_center_app/internal/core/domain"
	portsrepo "github.com/tarjima/translation_center_app/internal/core/ports/repositories"
	"github.com/tarjima/translation_center_app/internal/models"
	"github.com/tarjima/translation_center_app/internal/utils/mapping"
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

// SaveCustomer persists a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	modelCustomer := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (customer_id, name, phone, is_agency, branch_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelCustomer.CustomerID,
		modelCustomer.Name,
		modelCustomer.Phone,
		modelCustomer.IsAgency,
		modelCustomer.BranchID,
		modelCustomer.CreatedAt,
		modelCustomer.CreatedBy,
		modelCustomer.LastUpdatedAt,
		modelCustomer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.NewAppError(409, "customer already exists "+modelCustomer.CustomerID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert customer "+modelCustomer.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, name, phone, is_agency, branch_id, created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE customer_id = $1;
	`
	var modelCustomer models.Customer
	err := r.Pool.QueryRow(ctx, query, customerID).Scan(
		&modelCustomer.CustomerID,
		&modelCustomer.Name,
		&modelCustomer.Phone,
		&modelCustomer.IsAgency,
		&modelCustomer.BranchID,
		&modelCustomer.CreatedAt,
		&modelCustomer.CreatedBy,
		&modelCustomer.LastUpdatedAt,
		&modelCustomer.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}

	domainCustomer := mapping.ToDomainCustomer(modelCustomer)
	return &domainCustomer, nil
}

// SearchCustomersWithDebt finds customers whose name or phone matches the query
// and who currently carry outstanding debt. One aggregating query; the per-order
// remaining balance is computed in SQL with the same rule the domain uses.
func (r *PgxCustomerRepository) SearchCustomersWithDebt(ctx context.Context, query string, limit int) ([]domain.DebtorSummary, error) {
	sqlQuery := `
		SELECT c.customer_id, c.name, c.phone, c.is_agency,
		       COALESCE(SUM(o.total_price + o.extra_fee - o.received_amount), 0) AS total_debt,
		       COUNT(o.order_id) AS order_count
		FROM customers c
		JOIN orders o ON o.customer_id = c.customer_id
		WHERE (c.name ILIKE '%' || $1 || '%' OR c.phone ILIKE '%' || $1 || '%')
		  AND o.status != 'cancelled'
		  AND NOT o.payment_accepted_fully
		  AND (o.total_price + o.extra_fee - o.received_amount) > 0
		GROUP BY c.customer_id, c.name, c.phone, c.is_agency
		ORDER BY total_debt DESC, c.customer_id ASC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to search customers with debt", err)
	}
	defer rows.Close()

	results := []domain.DebtorSummary{}
	for rows.Next() {
		var d domain.DebtorSummary
		if err := rows.Scan(&d.CustomerID, &d.Name, &d.Phone, &d.IsAgency, &d.TotalDebt, &d.OrderCount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer search row", err)
		}
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer search rows", err)
	}

	return results, nil
}

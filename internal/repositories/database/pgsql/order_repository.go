package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tarjima/translation_center_app/internal/apperrors"
	"github.com/tarjima/translation_center_app/internal/core/domain"
	portsrepo "github.com/tarjima/translation_center_app/internal/core/ports/repositories"
	"github.com/tarjima/translation_center_app/internal/models"
	"github.com/tarjima/translation_center_app/internal/utils/mapping"
)

const orderColumns = `order_id, customer_id, branch_id, description, total_price, extra_fee, extra_fee_description, received_amount, payment_accepted_fully, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for order data.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

func scanOrder(row pgx.Row) (*models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
		&m.CustomerID,
		&m.BranchID,
		&m.Description,
		&m.TotalPrice,
		&m.ExtraFee,
		&m.ExtraFeeDescription,
		&m.ReceivedAmount,
		&m.PaymentAcceptedFully,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveOrder persists a new order.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	modelOrder := mapping.ToModelOrder(order)
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelOrder.OrderID,
		modelOrder.CustomerID,
		modelOrder.BranchID,
		modelOrder.Description,
		modelOrder.TotalPrice,
		modelOrder.ExtraFee,
		modelOrder.ExtraFeeDescription,
		modelOrder.ReceivedAmount,
		modelOrder.PaymentAcceptedFully,
		modelOrder.Status,
		modelOrder.CreatedAt,
		modelOrder.CreatedBy,
		modelOrder.LastUpdatedAt,
		modelOrder.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert order "+modelOrder.OrderID, err)
	}
	return nil
}

// FindOrderByID retrieves an order by its ID.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`

	modelOrder, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find order by ID "+orderID, err)
	}

	domainOrder := mapping.ToDomainOrder(*modelOrder)
	return &domainOrder, nil
}

// ListOrdersByCustomer retrieves all orders belonging to a customer, newest first.
func (r *PgxOrderRepository) ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC, order_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query orders for customer "+customerID, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan order row for customer "+customerID, err)
		}
		orders = append(orders, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating order rows for customer "+customerID, err)
	}

	return mapping.ToDomainOrderSlice(orders), nil
}

// ListDebtsByCustomer retrieves every open debt position for a customer in one
// query, oldest first with order id as the tie-break. The ordering feeds the
// FIFO planner directly, so it must stay stable.
func (r *PgxOrderRepository) ListDebtsByCustomer(ctx context.Context, customerID string) ([]domain.OrderDebt, error) {
	query := `
		SELECT order_id, (total_price + extra_fee - received_amount) AS remaining_debt, created_at
		FROM orders
		WHERE customer_id = $1
		  AND status != 'cancelled'
		  AND NOT payment_accepted_fully
		  AND (total_price + extra_fee - received_amount) > 0
		ORDER BY created_at ASC, order_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query debts for customer "+customerID, err)
	}
	defer rows.Close()

	debts := []domain.OrderDebt{}
	for rows.Next() {
		var d domain.OrderDebt
		if err := rows.Scan(&d.OrderID, &d.RemainingDebt, &d.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan debt row for customer "+customerID, err)
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating debt rows for customer "+customerID, err)
	}

	return debts, nil
}

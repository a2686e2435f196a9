package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tarjima/translation_center_app/internal/apperrors"
	"github.com/tarjima/translation_center_app/internal/core/domain"
	portsrepo "github.com/tarjima/translation_center_app/internal/core/ports/repositories"
	"github.com/tarjima/translation_center_app/internal/models"
	"github.com/tarjima/translation_center_app/internal/utils/allocation"
	"github.com/tarjima/translation_center_app/internal/utils/mapping"
	"github.com/tarjima/translation_center_app/internal/utils/pagination"
)

const paymentColumns = `payment_id, customer_id, amount, method, receipt_note, idempotency_key, unallocated_remainder, orders_paid, fully_paid_orders, remaining_debt_after, processed_by, processed_at, branch_id`

type PgxPaymentRepository struct {
	BaseRepository
	lockTimeout time.Duration
}

// newPgxPaymentRepository creates a new repository for payment data.
// lockTimeout bounds how long a settlement waits for row locks held by a
// concurrent writer before giving up with ErrConcurrentModification.
func newPgxPaymentRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		lockTimeout:    lockTimeout,
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// setLockTimeout applies the configured lock timeout to the current transaction.
// SET LOCAL keeps it scoped to the transaction, so pooled connections are not
// polluted.
func (r *PgxPaymentRepository) setLockTimeout(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds()))
	if err != nil {
		return apperrors.NewAppError(500, "failed to set lock timeout", err)
	}
	return nil
}

// lockOpenOrders selects the customer's open orders FOR UPDATE, oldest first.
// Everything the settlement reads afterwards is read under these locks, so two
// concurrent payments for the same customer serialize here.
func (r *PgxPaymentRepository) lockOpenOrders(ctx context.Context, tx pgx.Tx, customerID string) ([]models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		  AND status != 'cancelled'
		  AND NOT payment_accepted_fully
		  AND (total_price + extra_fee - received_amount) > 0
		ORDER BY created_at ASC, order_id ASC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, customerID)
	if err != nil {
		return nil, mapLockError(err, "failed to lock open orders for customer "+customerID)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked order row", err)
		}
		orders = append(orders, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapLockError(err, "error iterating locked order rows for customer "+customerID)
	}

	return orders, nil
}

// mapLockError translates a lock-timeout failure into ErrConcurrentModification
// and wraps everything else as an internal error.
func mapLockError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == lockNotAvailableCode {
		return apperrors.NewAppError(409, msg, apperrors.ErrConcurrentModification)
	}
	return apperrors.NewAppError(500, msg, err)
}

// ApplyBulkPayment settles a customer's debts as one atomic unit of work: it
// locks the open orders, re-plans the FIFO allocation against the balances read
// under the lock, inserts the payment with its links, and bumps each order's
// received amount. Either everything commits or nothing does.
func (r *PgxPaymentRepository) ApplyBulkPayment(ctx context.Context, payment domain.BulkPayment) (*domain.BulkPayment, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.setLockTimeout(ctx, tx); err != nil {
		return nil, err
	}

	lockedOrders, err := r.lockOpenOrders(ctx, tx, payment.CustomerID)
	if err != nil {
		return nil, err
	}

	// Plan against balances read under the lock, never against what the
	// caller previewed earlier.
	debts := make([]domain.OrderDebt, len(lockedOrders))
	totalDebt := decimal.Zero
	for i, m := range lockedOrders {
		d := mapping.ToDomainOrder(m)
		debts[i] = domain.OrderDebt{
			OrderID:       d.OrderID,
			RemainingDebt: d.RemainingDebt(),
			CreatedAt:     d.CreatedAt,
		}
		totalDebt = totalDebt.Add(debts[i].RemainingDebt)
	}

	plan, err := allocation.Plan(debts, payment.Amount)
	if err != nil {
		return nil, err
	}

	now := payment.ProcessedAt
	byOrderID := make(map[string]*models.Order, len(lockedOrders))
	for i := range lockedOrders {
		byOrderID[lockedOrders[i].OrderID] = &lockedOrders[i]
	}

	links := make([]domain.PaymentOrderLink, 0, len(plan.Allocations))
	fullyPaidCount := 0
	for _, alloc := range plan.Allocations {
		m, ok := byOrderID[alloc.OrderID]
		if !ok {
			return nil, apperrors.NewAppError(500, "planned order "+alloc.OrderID+" missing from locked set", nil)
		}

		previous := m.ReceivedAmount
		newReceived := previous.Add(alloc.Amount)
		totalDue := m.TotalPrice.Add(m.ExtraFee)
		fullyPaid := newReceived.GreaterThanOrEqual(totalDue)
		if fullyPaid {
			fullyPaidCount++
		}

		newStatus := m.Status
		if fullyPaid && domain.OrderStatus(m.Status).CanConfirmPayment() {
			newStatus = models.OrderStatus(domain.OrderPaymentConfirmed)
		}

		_, err := tx.Exec(ctx, `
			UPDATE orders
			SET received_amount = $1, status = $2, last_updated_at = $3, last_updated_by = $4
			WHERE order_id = $5;
		`, newReceived, newStatus, now, payment.ProcessedBy, m.OrderID)
		if err != nil {
			return nil, mapLockError(err, "failed to update order "+m.OrderID)
		}

		links = append(links, domain.PaymentOrderLink{
			LinkID:           uuid.NewString(),
			PaymentID:        payment.PaymentID,
			OrderID:          m.OrderID,
			AmountApplied:    alloc.Amount,
			PreviousReceived: previous,
			NewReceived:      newReceived,
			FullyPaid:        fullyPaid,
			CreatedAt:        now,
		})
	}

	payment.UnallocatedRemainder = plan.UnallocatedRemainder
	payment.OrdersPaid = len(plan.Allocations)
	payment.FullyPaidOrders = fullyPaidCount
	payment.RemainingDebtAfter = totalDebt.Sub(plan.TotalAllocated())
	payment.Links = links

	modelPayment := mapping.ToModelBulkPayment(payment)
	_, err = tx.Exec(ctx, `
		INSERT INTO bulk_payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		modelPayment.PaymentID,
		modelPayment.CustomerID,
		modelPayment.Amount,
		modelPayment.Method,
		modelPayment.ReceiptNote,
		modelPayment.IdempotencyKey,
		modelPayment.UnallocatedRemainder,
		modelPayment.OrdersPaid,
		modelPayment.FullyPaidOrders,
		modelPayment.RemainingDebtAfter,
		modelPayment.ProcessedBy,
		modelPayment.ProcessedAt,
		modelPayment.BranchID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.NewAppError(409, "payment already recorded under this idempotency key", apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to insert bulk payment "+modelPayment.PaymentID, err)
	}

	batch := &pgx.Batch{}
	linkQuery := `
		INSERT INTO payment_order_links (link_id, payment_id, order_id, amount_applied, previous_received, new_received, fully_paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, link := range links {
		modelLink := mapping.ToModelPaymentOrderLink(link)
		batch.Queue(linkQuery,
			modelLink.LinkID,
			modelLink.PaymentID,
			modelLink.OrderID,
			modelLink.AmountApplied,
			modelLink.PreviousReceived,
			modelLink.NewReceived,
			modelLink.FullyPaid,
			modelLink.CreatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute link batch for payment "+payment.PaymentID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &payment, nil
}

// RecordOrderPayment applies a direct payment to one order under the same row
// lock the bulk path uses.
func (r *PgxPaymentRepository) RecordOrderPayment(ctx context.Context, payment domain.DirectPayment) (*domain.Order, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.setLockTimeout(ctx, tx); err != nil {
		return nil, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1 FOR UPDATE;`
	m, err := scanOrder(tx.QueryRow(ctx, query, payment.OrderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapLockError(err, "failed to lock order "+payment.OrderID)
	}

	order := mapping.ToDomainOrder(*m)
	if order.Status == domain.OrderCancelled {
		return nil, apperrors.NewAppError(409, "cannot record payment on a cancelled order", apperrors.ErrConflict)
	}

	if payment.ExtraFee != nil {
		order.ExtraFee = *payment.ExtraFee
		order.ExtraFeeDescription = payment.ExtraFeeDescription
		if order.ReceivedAmount.GreaterThan(order.TotalDue()) && !payment.AcceptFully {
			return nil, apperrors.NewAppError(400, "extra fee update drops total due below the received amount for order "+order.OrderID, apperrors.ErrValidation)
		}
	}

	if payment.Amount.IsPositive() {
		newReceived := order.ReceivedAmount.Add(payment.Amount)
		if newReceived.GreaterThan(order.TotalDue()) && !payment.AcceptFully {
			return nil, apperrors.NewAppError(400, "payment exceeds remaining debt for order "+order.OrderID, apperrors.ErrValidation)
		}
		order.ReceivedAmount = newReceived
	}

	if payment.AcceptFully {
		if order.ReceivedAmount.LessThan(order.TotalDue()) && !payment.ForceAccept {
			return nil, apperrors.NewAppError(409, "received amount is short of total due, force accept required", apperrors.ErrConflict)
		}
		// Accept-fully settles at exactly the total due; received_amount never
		// exceeds it.
		if order.ReceivedAmount.GreaterThan(order.TotalDue()) {
			order.ReceivedAmount = order.TotalDue()
		}
		order.PaymentAcceptedFully = true
	}

	if order.IsFullyPaid() && order.Status.CanConfirmPayment() {
		order.Status = domain.OrderPaymentConfirmed
	}
	order.LastUpdatedAt = time.Now()
	order.LastUpdatedBy = payment.ProcessedBy

	_, err = tx.Exec(ctx, `
		UPDATE orders
		SET extra_fee = $1, extra_fee_description = $2, received_amount = $3,
		    payment_accepted_fully = $4, status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE order_id = $8;
	`,
		order.ExtraFee,
		order.ExtraFeeDescription,
		order.ReceivedAmount,
		order.PaymentAcceptedFully,
		string(order.Status),
		order.LastUpdatedAt,
		order.LastUpdatedBy,
		order.OrderID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update order "+order.OrderID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *PgxPaymentRepository) findPayment(ctx context.Context, whereClause string, arg any) (*domain.BulkPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM bulk_payments WHERE ` + whereClause + `;`

	var m models.BulkPayment
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.PaymentID,
		&m.CustomerID,
		&m.Amount,
		&m.Method,
		&m.ReceiptNote,
		&m.IdempotencyKey,
		&m.UnallocatedRemainder,
		&m.OrdersPaid,
		&m.FullyPaidOrders,
		&m.RemainingDebtAfter,
		&m.ProcessedBy,
		&m.ProcessedAt,
		&m.BranchID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bulk payment", err)
	}

	payment := mapping.ToDomainBulkPayment(m)
	links, err := r.findLinksByPaymentID(ctx, payment.PaymentID)
	if err != nil {
		return nil, err
	}
	payment.Links = links

	return &payment, nil
}

func (r *PgxPaymentRepository) findLinksByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentOrderLink, error) {
	query := `
		SELECT link_id, payment_id, order_id, amount_applied, previous_received, new_received, fully_paid, created_at
		FROM payment_order_links
		WHERE payment_id = $1
		ORDER BY created_at ASC, link_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query links for payment "+paymentID, err)
	}
	defer rows.Close()

	links := []models.PaymentOrderLink{}
	for rows.Next() {
		var l models.PaymentOrderLink
		err := rows.Scan(
			&l.LinkID,
			&l.PaymentID,
			&l.OrderID,
			&l.AmountApplied,
			&l.PreviousReceived,
			&l.NewReceived,
			&l.FullyPaid,
			&l.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan link row for payment "+paymentID, err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating link rows for payment "+paymentID, err)
	}

	return mapping.ToDomainPaymentOrderLinkSlice(links), nil
}

// FindPaymentByID retrieves a bulk payment with its order links.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.BulkPayment, error) {
	return r.findPayment(ctx, "payment_id = $1", paymentID)
}

// FindPaymentByIdempotencyKey retrieves the bulk payment recorded under the
// given idempotency key, with its order links.
func (r *PgxPaymentRepository) FindPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.BulkPayment, error) {
	return r.findPayment(ctx, "idempotency_key = $1", key)
}

// ListPayments retrieves a paginated list of bulk payments, newest first, using
// token-based pagination on (processed_at, payment_id).
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, customerID *string, method *domain.PaymentMethod, limit int, nextToken *string) ([]domain.BulkPayment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + paymentColumns + ` FROM bulk_payments WHERE 1=1`
	args := []interface{}{}

	if customerID != nil && *customerID != "" {
		args = append(args, *customerID)
		query += ` AND customer_id = $` + strconv.Itoa(len(args))
	}
	if method != nil {
		args = append(args, string(*method))
		query += ` AND method = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastProcessedAt, lastPaymentID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastProcessedAt, lastPaymentID)
		query += ` AND (processed_at, payment_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY processed_at DESC, payment_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query bulk payments", err)
	}
	defer rows.Close()

	payments := []models.BulkPayment{}
	for rows.Next() {
		var m models.BulkPayment
		err := rows.Scan(
			&m.PaymentID,
			&m.CustomerID,
			&m.Amount,
			&m.Method,
			&m.ReceiptNote,
			&m.IdempotencyKey,
			&m.UnallocatedRemainder,
			&m.OrdersPaid,
			&m.FullyPaidOrders,
			&m.RemainingDebtAfter,
			&m.ProcessedBy,
			&m.ProcessedAt,
			&m.BranchID,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan bulk payment row", err)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating bulk payment rows", err)
	}

	var nextTokenVal *string
	if len(payments) > limit {
		payments = payments[:limit]
		last := payments[limit-1]
		token := pagination.EncodeToken(last.ProcessedAt, last.PaymentID)
		nextTokenVal = &token
	}

	results := make([]domain.BulkPayment, len(payments))
	for i, m := range payments {
		results[i] = mapping.ToDomainBulkPayment(m)
	}

	return results, nextTokenVal, nil
}

package pgsql_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/tarjima/translation_center_app/internal/apperrors"
	"github.com/tarjima/translation_center_app/internal/core/domain"
	portsrepo "github.com/tarjima/translation_center_app/internal/core/ports/repositories"
	"github.com/tarjima/translation_center_app/internal/repositories/database/pgsql"
)

// These tests run the real settlement transaction against Postgres. They are
// skipped when PGSQL_URL is not set.
type PaymentRepositoryTestSuite struct {
	suite.Suite
	pool    *pgxpool.Pool
	repos   portsrepo.RepositoryProvider
	staffID string
	ctx     context.Context
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (suite *PaymentRepositoryTestSuite) SetupSuite() {
	dbURL := os.Getenv("PGSQL_URL")
	if dbURL == "" {
		suite.T().Skip("PGSQL_URL not set, skipping database-backed tests")
	}
	suite.ctx = context.Background()

	m, err := migrate.New("file://../../../../migrations", dbURL)
	require.NoError(suite.T(), err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		suite.T().Fatalf("failed to run migrations: %v", err)
	}

	pool, err := pgxpool.New(suite.ctx, dbURL)
	require.NoError(suite.T(), err)
	suite.pool = pool
	suite.repos = pgsql.NewRepositoryProvider(pool, 5*time.Second)
	suite.staffID = suite.createStaff()
}

func (suite *PaymentRepositoryTestSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *PaymentRepositoryTestSuite) createStaff() string {
	staffID := uuid.NewString()
	now := time.Now().UTC()
	_, err := suite.pool.Exec(suite.ctx, `
		INSERT INTO staff_users (staff_id, username, name, password_hash, branch_id, can_manage_payments, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, NULL, TRUE, $5, $6, $5, $6);
	`, staffID, "cashier-"+staffID[:8], "Test Cashier", "x", now, staffID)
	require.NoError(suite.T(), err)
	return staffID
}

func (suite *PaymentRepositoryTestSuite) createCustomer() string {
	customerID := uuid.NewString()
	now := time.Now().UTC()
	_, err := suite.pool.Exec(suite.ctx, `
		INSERT INTO customers (customer_id, name, phone, is_agency, branch_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, '', FALSE, NULL, $3, $4, $3, $4);
	`, customerID, "Customer "+customerID[:8], now, suite.staffID)
	require.NoError(suite.T(), err)
	return customerID
}

func (suite *PaymentRepositoryTestSuite) createOrder(customerID, totalPrice, extraFee, received string, createdAt time.Time) string {
	orderID := uuid.NewString()
	_, err := suite.pool.Exec(suite.ctx, `
		INSERT INTO orders (order_id, customer_id, branch_id, description, total_price, extra_fee, extra_fee_description, received_amount, payment_accepted_fully, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, NULL, '', $3, $4, '', $5, FALSE, 'pending', $6, $7, $6, $7);
	`, orderID, customerID, dec(totalPrice), dec(extraFee), dec(received), createdAt, suite.staffID)
	require.NoError(suite.T(), err)
	return orderID
}

func (suite *PaymentRepositoryTestSuite) fetchOrder(orderID string) (received decimal.Decimal, status string, extraFee decimal.Decimal, acceptedFully bool) {
	err := suite.pool.QueryRow(suite.ctx, `
		SELECT received_amount, status, extra_fee, payment_accepted_fully FROM orders WHERE order_id = $1;
	`, orderID).Scan(&received, &status, &extraFee, &acceptedFully)
	require.NoError(suite.T(), err)
	return received, status, extraFee, acceptedFully
}

func (suite *PaymentRepositoryTestSuite) bulkPayment(customerID, amount, key string) domain.BulkPayment {
	return domain.BulkPayment{
		PaymentID:      uuid.NewString(),
		CustomerID:     customerID,
		Amount:         dec(amount),
		Method:         domain.MethodCash,
		IdempotencyKey: key,
		ProcessedBy:    suite.staffID,
		ProcessedAt:    time.Now().UTC(),
	}
}

func (suite *PaymentRepositoryTestSuite) TestApplyBulkPayment_SettlesOldestFirst() {
	customerID := suite.createCustomer()
	base := time.Now().UTC().Add(-time.Hour)
	oldest := suite.createOrder(customerID, "100", "0", "0", base)
	newest := suite.createOrder(customerID, "50", "0", "0", base.Add(time.Minute))

	applied, err := suite.repos.PaymentRepo.ApplyBulkPayment(suite.ctx, suite.bulkPayment(customerID, "120", uuid.NewString()))
	require.NoError(suite.T(), err)

	require.Len(suite.T(), applied.Links, 2)
	assert.Equal(suite.T(), oldest, applied.Links[0].OrderID)
	assert.True(suite.T(), applied.Links[0].AmountApplied.Equal(dec("100")))
	assert.True(suite.T(), applied.Links[0].FullyPaid)
	assert.Equal(suite.T(), newest, applied.Links[1].OrderID)
	assert.True(suite.T(), applied.Links[1].AmountApplied.Equal(dec("20")))
	assert.True(suite.T(), applied.UnallocatedRemainder.IsZero())
	assert.True(suite.T(), applied.RemainingDebtAfter.Equal(dec("30")))

	received, status, _, _ := suite.fetchOrder(oldest)
	assert.True(suite.T(), received.Equal(dec("100")))
	assert.Equal(suite.T(), string(domain.OrderPaymentConfirmed), status)
}

func (suite *PaymentRepositoryTestSuite) TestApplyBulkPayment_ConcurrentSettlementsNeverLoseUpdates() {
	customerID := suite.createCustomer()
	base := time.Now().UTC().Add(-time.Hour)
	first := suite.createOrder(customerID, "100", "0", "0", base)
	second := suite.createOrder(customerID, "50", "0", "0", base.Add(time.Minute))

	var wg sync.WaitGroup
	results := make([]*domain.BulkPayment, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = suite.repos.PaymentRepo.ApplyBulkPayment(suite.ctx, suite.bulkPayment(customerID, "60", uuid.NewString()))
		}(i)
	}
	wg.Wait()

	require.NoError(suite.T(), errs[0])
	require.NoError(suite.T(), errs[1])

	// Both settlements must be fully reflected; a lost update would leave the
	// received total short of the 120 paid in.
	var totalReceived decimal.Decimal
	err := suite.pool.QueryRow(suite.ctx, `
		SELECT COALESCE(SUM(received_amount), 0) FROM orders WHERE customer_id = $1;
	`, customerID).Scan(&totalReceived)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), totalReceived.Equal(dec("120")), "received total %s, want 120", totalReceived)

	for _, orderID := range []string{first, second} {
		received, _, _, _ := suite.fetchOrder(orderID)
		assert.True(suite.T(), received.LessThanOrEqual(dec("100")), "order %s overfilled to %s", orderID, received)
	}

	// Each receipt conserves its own amount regardless of which one won the lock.
	for i, applied := range results {
		total := applied.UnallocatedRemainder
		for _, l := range applied.Links {
			total = total.Add(l.AmountApplied)
		}
		assert.True(suite.T(), total.Equal(dec("60")), "receipt %d conserves %s, want 60", i, total)
	}
}

func (suite *PaymentRepositoryTestSuite) TestApplyBulkPayment_LockTimeoutMapsToConcurrentModification() {
	customerID := suite.createCustomer()
	orderID := suite.createOrder(customerID, "100", "0", "0", time.Now().UTC())

	blocker, err := suite.pool.Begin(suite.ctx)
	require.NoError(suite.T(), err)
	defer blocker.Rollback(suite.ctx)
	_, err = blocker.Exec(suite.ctx, `SELECT 1 FROM orders WHERE order_id = $1 FOR UPDATE;`, orderID)
	require.NoError(suite.T(), err)

	impatient := pgsql.NewRepositoryProvider(suite.pool, 100*time.Millisecond)
	_, err = impatient.PaymentRepo.ApplyBulkPayment(suite.ctx, suite.bulkPayment(customerID, "40", uuid.NewString()))

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrConcurrentModification)
}

func (suite *PaymentRepositoryTestSuite) TestApplyBulkPayment_DuplicateIdempotencyKey() {
	customerID := suite.createCustomer()
	orderID := suite.createOrder(customerID, "100", "0", "0", time.Now().UTC())
	key := uuid.NewString()

	_, err := suite.repos.PaymentRepo.ApplyBulkPayment(suite.ctx, suite.bulkPayment(customerID, "40", key))
	require.NoError(suite.T(), err)

	_, err = suite.repos.PaymentRepo.ApplyBulkPayment(suite.ctx, suite.bulkPayment(customerID, "40", key))
	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)

	// The rejected retry must not have touched the order.
	received, _, _, _ := suite.fetchOrder(orderID)
	assert.True(suite.T(), received.Equal(dec("40")))
}

func (suite *PaymentRepositoryTestSuite) TestRecordOrderPayment_AcceptFullySettlesAtTotalDue() {
	customerID := suite.createCustomer()
	orderID := suite.createOrder(customerID, "100", "0", "90", time.Now().UTC())

	amount := dec("50")
	order, err := suite.repos.PaymentRepo.RecordOrderPayment(suite.ctx, domain.DirectPayment{
		OrderID:     orderID,
		Amount:      amount,
		AcceptFully: true,
		ProcessedBy: suite.staffID,
	})
	require.NoError(suite.T(), err)

	assert.True(suite.T(), order.ReceivedAmount.Equal(dec("100")), "received %s, want cap at total due", order.ReceivedAmount)
	assert.True(suite.T(), order.PaymentAcceptedFully)
	assert.Equal(suite.T(), domain.OrderPaymentConfirmed, order.Status)

	received, _, _, acceptedFully := suite.fetchOrder(orderID)
	assert.True(suite.T(), received.Equal(dec("100")))
	assert.True(suite.T(), acceptedFully)
}

func (suite *PaymentRepositoryTestSuite) TestRecordOrderPayment_ExtraFeeCannotDropBelowReceived() {
	customerID := suite.createCustomer()
	orderID := suite.createOrder(customerID, "100", "20", "110", time.Now().UTC())

	lowered := dec("0")
	_, err := suite.repos.PaymentRepo.RecordOrderPayment(suite.ctx, domain.DirectPayment{
		OrderID:     orderID,
		ExtraFee:    &lowered,
		ProcessedBy: suite.staffID,
	})

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	_, _, extraFee, _ := suite.fetchOrder(orderID)
	assert.True(suite.T(), extraFee.Equal(dec("20")), "rejected update must leave the fee untouched")
}

func TestPaymentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentRepositoryTestSuite))
}

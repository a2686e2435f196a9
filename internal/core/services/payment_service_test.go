package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tarjima/translation_center_app/internal/apperrors"
	"github.com/tarjima/translation_center_app/internal/core/domain"
	portsrepo "github.com/tarjima/translation_center_app/internal/core/ports/repositories"
	"github.com/tarjima/translation_center_app/internal/core/services"
	"github.com/tarjima/translation_center_app/internal/dto"
)

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) ApplyBulkPayment(ctx context.Context, payment domain.BulkPayment) (*domain.BulkPayment, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkPayment), args.Error(1)
}

func (m *MockPaymentRepository) RecordOrderPayment(ctx context.Context, payment domain.DirectPayment) (*domain.Order, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.BulkPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkPayment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.BulkPayment, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkPayment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, customerID *string, method *domain.PaymentMethod, limit int, nextToken *string) ([]domain.BulkPayment, *string, error) {
	args := m.Called(ctx, customerID, method, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.BulkPayment), returnedNextToken, args.Error(2)
}

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

var _ portsrepo.OrderRepositoryFacade = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListDebtsByCustomer(ctx context.Context, customerID string) ([]domain.OrderDebt, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderDebt), args.Error(1)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SearchCustomersWithDebt(ctx context.Context, query string, limit int) ([]domain.DebtorSummary, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtorSummary), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// --- Test Suite Setup ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo  *MockPaymentRepository
	mockOrderRepo    *MockOrderRepository
	mockCustomerRepo *MockCustomerRepository
	service          *services.PaymentService
	customer         domain.Customer
	staffID          string
	ctx              context.Context
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockOrderRepo, suite.mockCustomerRepo)

	suite.staffID = uuid.NewString()
	suite.customer = domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       "Aisha Karimova",
		Phone:      "+998901112233",
	}
	suite.ctx = context.Background()
}

func (suite *PaymentServiceTestSuite) validRequest() dto.ApplyBulkPaymentRequest {
	return dto.ApplyBulkPaymentRequest{
		CustomerID:     suite.customer.CustomerID,
		Amount:         decimal.NewFromInt(500),
		Method:         "cash",
		IdempotencyKey: uuid.NewString(),
	}
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_Success() {
	req := suite.validRequest()
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil)

	applied := domain.BulkPayment{
		PaymentID:  uuid.NewString(),
		CustomerID: suite.customer.CustomerID,
		Amount:     decimal.NewFromInt(500),
		Method:     domain.MethodCash,
		Links: []domain.PaymentOrderLink{
			{OrderID: "o1", AmountApplied: decimal.NewFromInt(300), FullyPaid: true},
			{OrderID: "o2", AmountApplied: decimal.NewFromInt(200)},
		},
		OrdersPaid:           2,
		FullyPaidOrders:      1,
		UnallocatedRemainder: decimal.Zero,
		ProcessedBy:          suite.staffID,
		ProcessedAt:          time.Now(),
	}
	suite.mockPaymentRepo.On("ApplyBulkPayment", suite.ctx, mock.MatchedBy(func(p domain.BulkPayment) bool {
		return p.CustomerID == suite.customer.CustomerID &&
			p.Amount.Equal(decimal.NewFromInt(500)) &&
			p.Method == domain.MethodCash &&
			p.IdempotencyKey == req.IdempotencyKey &&
			p.ProcessedBy == suite.staffID
	})).Return(&applied, nil)

	receipt, err := suite.service.ApplyPayment(suite.ctx, req, suite.staffID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), receipt)
	assert.False(suite.T(), receipt.Duplicate)
	assert.Equal(suite.T(), 2, receipt.Payment.OrdersPaid)
	assert.Equal(suite.T(), 1, receipt.Payment.FullyPaidOrders)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_InvalidAmount() {
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		req := suite.validRequest()
		req.Amount = amount

		receipt, err := suite.service.ApplyPayment(suite.ctx, req, suite.staffID)

		assert.Nil(suite.T(), receipt)
		assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	}
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "ApplyBulkPayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_InvalidMethod() {
	req := suite.validRequest()
	req.Method = "bitcoin"

	receipt, err := suite.service.ApplyPayment(suite.ctx, req, suite.staffID)

	assert.Nil(suite.T(), receipt)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "ApplyBulkPayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_CustomerNotFound() {
	req := suite.validRequest()
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(nil, apperrors.ErrNotFound)

	receipt, err := suite.service.ApplyPayment(suite.ctx, req, suite.staffID)

	assert.Nil(suite.T(), receipt)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_DuplicateKeyReturnsStoredReceipt() {
	req := suite.validRequest()
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil)
	suite.mockPaymentRepo.On("ApplyBulkPayment", suite.ctx, mock.Anything).
		Return(nil, apperrors.NewAppError(409, "duplicate", apperrors.ErrDuplicate))

	stored := domain.BulkPayment{
		PaymentID:      uuid.NewString(),
		CustomerID:     suite.customer.CustomerID,
		Amount:         decimal.NewFromInt(500),
		Method:         domain.MethodCash,
		IdempotencyKey: req.IdempotencyKey,
		ProcessedAt:    time.Now().Add(-time.Minute),
	}
	suite.mockPaymentRepo.On("FindPaymentByIdempotencyKey", suite.ctx, req.IdempotencyKey).Return(&stored, nil)

	receipt, err := suite.service.ApplyPayment(suite.ctx, req, suite.staffID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), receipt)
	assert.True(suite.T(), receipt.Duplicate)
	assert.Equal(suite.T(), stored.PaymentID, receipt.Payment.PaymentID)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_ConcurrentModificationPropagates() {
	req := suite.validRequest()
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil)
	suite.mockPaymentRepo.On("ApplyBulkPayment", suite.ctx, mock.Anything).
		Return(nil, apperrors.NewAppError(409, "locked", apperrors.ErrConcurrentModification))

	receipt, err := suite.service.ApplyPayment(suite.ctx, req, suite.staffID)

	assert.Nil(suite.T(), receipt)
	assert.ErrorIs(suite.T(), err, apperrors.ErrConcurrentModification)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_ConservationViolationDetected() {
	req := suite.validRequest()
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil)

	// Repo returns links that do not add up to the declared amount.
	corrupted := domain.BulkPayment{
		PaymentID:            uuid.NewString(),
		CustomerID:           suite.customer.CustomerID,
		Amount:               decimal.NewFromInt(500),
		Links:                []domain.PaymentOrderLink{{OrderID: "o1", AmountApplied: decimal.NewFromInt(100)}},
		UnallocatedRemainder: decimal.Zero,
	}
	suite.mockPaymentRepo.On("ApplyBulkPayment", suite.ctx, mock.Anything).Return(&corrupted, nil)

	receipt, err := suite.service.ApplyPayment(suite.ctx, req, suite.staffID)

	assert.Nil(suite.T(), receipt)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInternal)
}

func (suite *PaymentServiceTestSuite) TestPreviewAllocation_FIFO() {
	now := time.Now()
	debts := []domain.OrderDebt{
		{OrderID: "oldest", RemainingDebt: decimal.NewFromInt(200), CreatedAt: now.Add(-48 * time.Hour)},
		{OrderID: "newer", RemainingDebt: decimal.NewFromInt(150), CreatedAt: now.Add(-24 * time.Hour)},
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil)
	suite.mockOrderRepo.On("ListDebtsByCustomer", suite.ctx, suite.customer.CustomerID).Return(debts, nil)

	plan, err := suite.service.PreviewAllocation(suite.ctx, suite.customer.CustomerID, decimal.NewFromInt(250))

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), plan.Allocations, 2)
	assert.Equal(suite.T(), "oldest", plan.Allocations[0].OrderID)
	assert.True(suite.T(), plan.Allocations[0].Amount.Equal(decimal.NewFromInt(200)))
	assert.Equal(suite.T(), "newer", plan.Allocations[1].OrderID)
	assert.True(suite.T(), plan.Allocations[1].Amount.Equal(decimal.NewFromInt(50)))
	assert.True(suite.T(), plan.UnallocatedRemainder.IsZero())
}

func (suite *PaymentServiceTestSuite) TestPreviewAllocation_OverpaymentRemainder() {
	debts := []domain.OrderDebt{
		{OrderID: "only", RemainingDebt: decimal.NewFromInt(120), CreatedAt: time.Now()},
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil)
	suite.mockOrderRepo.On("ListDebtsByCustomer", suite.ctx, suite.customer.CustomerID).Return(debts, nil)

	plan, err := suite.service.PreviewAllocation(suite.ctx, suite.customer.CustomerID, decimal.NewFromInt(500))

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), plan.Allocations, 1)
	assert.True(suite.T(), plan.UnallocatedRemainder.Equal(decimal.NewFromInt(380)))
}

func (suite *PaymentServiceTestSuite) TestRecordOrderPayment_RequiresAmountUnlessAcceptFully() {
	req := dto.RecordOrderPaymentRequest{}

	order, err := suite.service.RecordOrderPayment(suite.ctx, "order-1", req, suite.staffID)

	assert.Nil(suite.T(), order)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "RecordOrderPayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordOrderPayment_Success() {
	amount := decimal.NewFromInt(100)
	req := dto.RecordOrderPaymentRequest{Amount: &amount}

	updated := domain.Order{
		OrderID:        "order-1",
		CustomerID:     suite.customer.CustomerID,
		TotalPrice:     decimal.NewFromInt(100),
		ReceivedAmount: decimal.NewFromInt(100),
		Status:         domain.OrderPaymentConfirmed,
	}
	suite.mockPaymentRepo.On("RecordOrderPayment", suite.ctx, mock.MatchedBy(func(p domain.DirectPayment) bool {
		return p.OrderID == "order-1" && p.Amount.Equal(amount) && p.ProcessedBy == suite.staffID
	})).Return(&updated, nil)

	order, err := suite.service.RecordOrderPayment(suite.ctx, "order-1", req, suite.staffID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.OrderPaymentConfirmed, order.Status)
}

func (suite *PaymentServiceTestSuite) TestListPayments_RejectsUnknownMethodFilter() {
	method := "check"
	_, err := suite.service.ListPayments(suite.ctx, dto.ListPaymentsParams{Method: &method})

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestListPayments_ClampsLimit() {
	suite.mockPaymentRepo.On("ListPayments", suite.ctx, (*string)(nil), (*domain.PaymentMethod)(nil), 100, (*string)(nil)).
		Return([]domain.BulkPayment{}, nil, nil)

	_, err := suite.service.ListPayments(suite.ctx, dto.ListPaymentsParams{Limit: 5000})

	assert.NoError(suite.T(), err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

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

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTopDebtors(ctx context.Context, filter domain.DebtorFilter) ([]domain.DebtorSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtorSummary), args.Error(1)
}

func (m *MockReportingRepository) GetPaymentStats(ctx context.Context, from, to time.Time, branchID *string) (*domain.PaymentStats, error) {
	args := m.Called(ctx, from, to, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentStats), args.Error(1)
}

// --- Test Suite Setup ---
type DebtServiceTestSuite struct {
	suite.Suite
	mockOrderRepo     *MockOrderRepository
	mockCustomerRepo  *MockCustomerRepository
	mockReportingRepo *MockReportingRepository
	service           *services.DebtService
	ctx               context.Context
}

func (suite *DebtServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewDebtService(suite.mockOrderRepo, suite.mockCustomerRepo, suite.mockReportingRepo)
	suite.ctx = context.Background()
}

func (suite *DebtServiceTestSuite) TestListDebts_CustomerNotFound() {
	customerID := uuid.NewString()
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, customerID).Return(nil, apperrors.ErrNotFound)

	debts, err := suite.service.ListDebts(suite.ctx, customerID)

	assert.Nil(suite.T(), debts)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "ListDebtsByCustomer", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestListDebts_ReturnsOldestFirst() {
	customer := domain.Customer{CustomerID: uuid.NewString(), Name: "Bekzod Translations"}
	now := time.Now()
	debts := []domain.OrderDebt{
		{OrderID: "o1", RemainingDebt: decimal.NewFromInt(100), CreatedAt: now.Add(-72 * time.Hour)},
		{OrderID: "o2", RemainingDebt: decimal.NewFromInt(40), CreatedAt: now.Add(-24 * time.Hour)},
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, customer.CustomerID).Return(&customer, nil)
	suite.mockOrderRepo.On("ListDebtsByCustomer", suite.ctx, customer.CustomerID).Return(debts, nil)

	got, err := suite.service.ListDebts(suite.ctx, customer.CustomerID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 2)
	assert.Equal(suite.T(), "o1", got[0].OrderID)
}

func (suite *DebtServiceTestSuite) TestTopDebtors_AgencyFilter() {
	suite.mockReportingRepo.On("GetTopDebtors", suite.ctx, mock.MatchedBy(func(f domain.DebtorFilter) bool {
		return f.IsAgency != nil && *f.IsAgency && f.Limit == 20
	})).Return([]domain.DebtorSummary{}, nil)

	_, err := suite.service.TopDebtors(suite.ctx, dto.TopDebtorsParams{CustomerType: "agency"})

	assert.NoError(suite.T(), err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestTopDebtors_IndividualFilter() {
	suite.mockReportingRepo.On("GetTopDebtors", suite.ctx, mock.MatchedBy(func(f domain.DebtorFilter) bool {
		return f.IsAgency != nil && !*f.IsAgency
	})).Return([]domain.DebtorSummary{}, nil)

	_, err := suite.service.TopDebtors(suite.ctx, dto.TopDebtorsParams{CustomerType: "Individual"})

	assert.NoError(suite.T(), err)
}

func (suite *DebtServiceTestSuite) TestTopDebtors_UnknownTypeRejected() {
	_, err := suite.service.TopDebtors(suite.ctx, dto.TopDebtorsParams{CustomerType: "corporate"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetTopDebtors", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestTopDebtors_ClampsLimit() {
	suite.mockReportingRepo.On("GetTopDebtors", suite.ctx, mock.MatchedBy(func(f domain.DebtorFilter) bool {
		return f.IsAgency == nil && f.Limit == 100
	})).Return([]domain.DebtorSummary{}, nil)

	_, err := suite.service.TopDebtors(suite.ctx, dto.TopDebtorsParams{Limit: 10000})

	assert.NoError(suite.T(), err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestSearchCustomersWithDebt_EmptyQueryRejected() {
	_, err := suite.service.SearchCustomersWithDebt(suite.ctx, "   ", 10)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "SearchCustomersWithDebt", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestSearchCustomersWithDebt_DefaultsLimit() {
	suite.mockCustomerRepo.On("SearchCustomersWithDebt", suite.ctx, "karimova", 10).
		Return([]domain.DebtorSummary{{CustomerID: "c1", Name: "Aisha Karimova", TotalDebt: decimal.NewFromInt(250)}}, nil)

	results, err := suite.service.SearchCustomersWithDebt(suite.ctx, " karimova ", 0)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 1)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestPaymentStats_RejectsInvertedPeriod() {
	now := time.Now()

	_, err := suite.service.PaymentStats(suite.ctx, now, now.Add(-time.Hour), nil)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetPaymentStats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestPaymentStats_PassesBranchScope() {
	from := time.Now().Add(-24 * time.Hour)
	to := time.Now()
	branch := "tashkent-main"
	stats := &domain.PaymentStats{PaymentCount: 3, AmountApplied: decimal.NewFromInt(900)}
	suite.mockReportingRepo.On("GetPaymentStats", suite.ctx, from, to, &branch).Return(stats, nil)

	got, err := suite.service.PaymentStats(suite.ctx, from, to, &branch)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, got.PaymentCount)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestDebtServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DebtServiceTestSuite))
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarjima/translation_center_app/internal/core/domain"
)

// TopDebtorsParams narrows the top-debtors report.
// CustomerType accepts "agency", "individual" or empty for all.
type TopDebtorsParams struct {
	CustomerType string
	BranchID     *string
	Limit        int
}

// DebtorSummaryResponse is one row of the top-debtors report.
type DebtorSummaryResponse struct {
	CustomerID   string          `json:"customerID"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	CustomerType string          `json:"customerType"`
	TotalDebt    decimal.Decimal `json:"totalDebt"`
	OrderCount   int             `json:"orderCount"`
}

// OrderDebtResponse is one open debt position of a customer.
type OrderDebtResponse struct {
	OrderID       string          `json:"orderID"`
	RemainingDebt decimal.Decimal `json:"remainingDebt"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// CustomerDebtDetailsResponse lists a customer's open debts oldest-first,
// with the aggregate total.
type CustomerDebtDetailsResponse struct {
	CustomerID string              `json:"customerID"`
	TotalDebt  decimal.Decimal     `json:"totalDebt"`
	Orders     []OrderDebtResponse `json:"orders"`
}

// PaymentStatsResponse aggregates bulk-payment activity for a period.
type PaymentStatsResponse struct {
	PaymentCount    int             `json:"paymentCount"`
	AmountApplied   decimal.Decimal `json:"amountApplied"`
	AmountDeclared  decimal.Decimal `json:"amountDeclared"`
	OrdersSettled   int             `json:"ordersSettled"`
	FullyPaidOrders int             `json:"fullyPaidOrders"`
}

// ToDebtorSummaryResponse converts a domain DebtorSummary to its API representation.
func ToDebtorSummaryResponse(d domain.DebtorSummary) DebtorSummaryResponse {
	customerType := "individual"
	if d.IsAgency {
		customerType = "agency"
	}
	return DebtorSummaryResponse{
		CustomerID:   d.CustomerID,
		Name:         d.Name,
		Phone:        d.Phone,
		CustomerType: customerType,
		TotalDebt:    d.TotalDebt,
		OrderCount:   d.OrderCount,
	}
}

// ToDebtorSummaryResponses converts a slice of domain DebtorSummary values.
func ToDebtorSummaryResponses(ds []domain.DebtorSummary) []DebtorSummaryResponse {
	out := make([]DebtorSummaryResponse, len(ds))
	for i, d := range ds {
		out[i] = ToDebtorSummaryResponse(d)
	}
	return out
}

// ToCustomerDebtDetailsResponse builds the per-customer debt breakdown.
func ToCustomerDebtDetailsResponse(customerID string, debts []domain.OrderDebt) CustomerDebtDetailsResponse {
	orders := make([]OrderDebtResponse, len(debts))
	total := decimal.Zero
	for i, d := range debts {
		orders[i] = OrderDebtResponse{
			OrderID:       d.OrderID,
			RemainingDebt: d.RemainingDebt,
			CreatedAt:     d.CreatedAt,
		}
		total = total.Add(d.RemainingDebt)
	}
	return CustomerDebtDetailsResponse{
		CustomerID: customerID,
		TotalDebt:  total,
		Orders:     orders,
	}
}

// ToPaymentStatsResponse converts domain PaymentStats to its API representation.
func ToPaymentStatsResponse(s *domain.PaymentStats) PaymentStatsResponse {
	return PaymentStatsResponse{
		PaymentCount:    s.PaymentCount,
		AmountApplied:   s.AmountApplied,
		AmountDeclared:  s.AmountDeclared,
		OrdersSettled:   s.OrdersSettled,
		FullyPaidOrders: s.FullyPaidOrders,
	}
}

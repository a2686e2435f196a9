package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tarjima/translation_center_app/internal/core/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOrder_TotalDue(t *testing.T) {
	order := domain.Order{TotalPrice: dec("150.00"), ExtraFee: dec("25.50")}
	assert.True(t, order.TotalDue().Equal(dec("175.50")))
}

func TestOrder_RemainingDebt(t *testing.T) {
	tests := []struct {
		name     string
		order    domain.Order
		expected string
	}{
		{
			name:     "nothing received",
			order:    domain.Order{TotalPrice: dec("100"), Status: domain.OrderPending},
			expected: "100",
		},
		{
			name:     "partial payment with extra fee",
			order:    domain.Order{TotalPrice: dec("100"), ExtraFee: dec("20"), ReceivedAmount: dec("50"), Status: domain.OrderInProgress},
			expected: "70",
		},
		{
			name:     "fully paid",
			order:    domain.Order{TotalPrice: dec("100"), ReceivedAmount: dec("100"), Status: domain.OrderPaymentConfirmed},
			expected: "0",
		},
		{
			name:     "cancelled order carries no debt",
			order:    domain.Order{TotalPrice: dec("100"), Status: domain.OrderCancelled},
			expected: "0",
		},
		{
			name:     "accepted-fully override zeroes the debt",
			order:    domain.Order{TotalPrice: dec("100"), ReceivedAmount: dec("30"), PaymentAcceptedFully: true, Status: domain.OrderCompleted},
			expected: "0",
		},
		{
			name:     "overpaid floors at zero",
			order:    domain.Order{TotalPrice: dec("100"), ReceivedAmount: dec("120"), Status: domain.OrderCompleted},
			expected: "0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.order.RemainingDebt().Equal(dec(tt.expected)),
				"got %s, want %s", tt.order.RemainingDebt(), tt.expected)
		})
	}
}

func TestOrder_IsFullyPaid(t *testing.T) {
	assert.False(t, domain.Order{TotalPrice: dec("100"), ReceivedAmount: dec("99.99")}.IsFullyPaid())
	assert.True(t, domain.Order{TotalPrice: dec("100"), ReceivedAmount: dec("100")}.IsFullyPaid())
	assert.True(t, domain.Order{TotalPrice: dec("100"), ReceivedAmount: dec("0"), PaymentAcceptedFully: true}.IsFullyPaid())
	assert.False(t, domain.Order{TotalPrice: dec("100"), ExtraFee: dec("10"), ReceivedAmount: dec("100")}.IsFullyPaid())
}

func TestOrderStatus_CanConfirmPayment(t *testing.T) {
	confirmable := []domain.OrderStatus{domain.OrderPending, domain.OrderPaymentPending, domain.OrderPaymentReceived}
	for _, s := range confirmable {
		assert.True(t, s.CanConfirmPayment(), "status %s", s)
	}
	locked := []domain.OrderStatus{
		domain.OrderPaymentConfirmed, domain.OrderInProgress, domain.OrderReady,
		domain.OrderCompleted, domain.OrderCancelled,
	}
	for _, s := range locked {
		assert.False(t, s.CanConfirmPayment(), "status %s", s)
	}
}

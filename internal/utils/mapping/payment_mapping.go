package mapping

import (
	"github.com/tarjima/translation_center_app/internal/core/domain"
	"github.com/tarjima/translation_center_app/internal/models"
)

// ToModelBulkPayment converts a domain BulkPayment to a model BulkPayment
func ToModelBulkPayment(d domain.BulkPayment) models.BulkPayment {
	m := models.BulkPayment{
		PaymentID:            d.PaymentID,
		CustomerID:           d.CustomerID,
		Amount:               d.Amount,
		Method:               models.PaymentMethod(d.Method),
		ReceiptNote:          d.ReceiptNote,
		UnallocatedRemainder: d.UnallocatedRemainder,
		OrdersPaid:           d.OrdersPaid,
		FullyPaidOrders:      d.FullyPaidOrders,
		RemainingDebtAfter:   d.RemainingDebtAfter,
		ProcessedBy:          d.ProcessedBy,
		ProcessedAt:          d.ProcessedAt,
		BranchID:             d.BranchID,
	}
	// An empty key means the caller opted out; persist NULL so the unique
	// constraint only guards real keys.
	if d.IdempotencyKey != "" {
		key := d.IdempotencyKey
		m.IdempotencyKey = &key
	}
	return m
}

// ToDomainBulkPayment converts a model BulkPayment to a domain BulkPayment
func ToDomainBulkPayment(m models.BulkPayment) domain.BulkPayment {
	d := domain.BulkPayment{
		PaymentID:            m.PaymentID,
		CustomerID:           m.CustomerID,
		Amount:               m.Amount,
		Method:               domain.PaymentMethod(m.Method),
		ReceiptNote:          m.ReceiptNote,
		UnallocatedRemainder: m.UnallocatedRemainder,
		OrdersPaid:           m.OrdersPaid,
		FullyPaidOrders:      m.FullyPaidOrders,
		RemainingDebtAfter:   m.RemainingDebtAfter,
		ProcessedBy:          m.ProcessedBy,
		ProcessedAt:          m.ProcessedAt,
		BranchID:             m.BranchID,
	}
	if m.IdempotencyKey != nil {
		d.IdempotencyKey = *m.IdempotencyKey
	}
	return d
}

// ToModelPaymentOrderLink converts a domain PaymentOrderLink to a model PaymentOrderLink
func ToModelPaymentOrderLink(d domain.PaymentOrderLink) models.PaymentOrderLink {
	return models.PaymentOrderLink{
		LinkID:           d.LinkID,
		PaymentID:        d.PaymentID,
		OrderID:          d.OrderID,
		AmountApplied:    d.AmountApplied,
		PreviousReceived: d.PreviousReceived,
		NewReceived:      d.NewReceived,
		FullyPaid:        d.FullyPaid,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainPaymentOrderLink converts a model PaymentOrderLink to a domain PaymentOrderLink
func ToDomainPaymentOrderLink(m models.PaymentOrderLink) domain.PaymentOrderLink {
	return domain.PaymentOrderLink{
		LinkID:           m.LinkID,
		PaymentID:        m.PaymentID,
		OrderID:          m.OrderID,
		AmountApplied:    m.AmountApplied,
		PreviousReceived: m.PreviousReceived,
		NewReceived:      m.NewReceived,
		FullyPaid:        m.FullyPaid,
		CreatedAt:        m.CreatedAt,
	}
}

// ToDomainPaymentOrderLinkSlice converts a slice of model links to domain links
func ToDomainPaymentOrderLinkSlice(ms []models.PaymentOrderLink) []domain.PaymentOrderLink {
	out := make([]domain.PaymentOrderLink, len(ms))
	for i, m := range ms {
		out[i] = ToDomainPaymentOrderLink(m)
	}
	return out
}

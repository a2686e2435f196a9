package mapping

import (
	"github.com/tarjima/translation_center_app/internal/core/domain"
	"github.com/tarjima/translation_center_app/internal/models"
)

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:              d.OrderID,
		CustomerID:           d.CustomerID,
		BranchID:             d.BranchID,
		Description:          d.Description,
		TotalPrice:           d.TotalPrice,
		ExtraFee:             d.ExtraFee,
		ExtraFeeDescription:  d.ExtraFeeDescription,
		ReceivedAmount:       d.ReceivedAmount,
		PaymentAcceptedFully: d.PaymentAcceptedFully,
		Status:               models.OrderStatus(d.Status),
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:              m.OrderID,
		CustomerID:           m.CustomerID,
		BranchID:             m.BranchID,
		Description:          m.Description,
		TotalPrice:           m.TotalPrice,
		ExtraFee:             m.ExtraFee,
		ExtraFeeDescription:  m.ExtraFeeDescription,
		ReceivedAmount:       m.ReceivedAmount,
		PaymentAcceptedFully: m.PaymentAcceptedFully,
		Status:               domain.OrderStatus(m.Status),
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrderSlice converts a slice of model Orders to domain Orders
func ToDomainOrderSlice(ms []models.Order) []domain.Order {
	out := make([]domain.Order, len(ms))
	for i, m := range ms {
		out[i] = ToDomainOrder(m)
	}
	return out
}

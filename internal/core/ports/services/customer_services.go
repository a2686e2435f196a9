package ports

import (
	"context"

	"github.com/tarjima/translation_center_app/internal/core/domain"
	"github.com/tarjima/translation_center_app/internal/dto"
)

// CustomerSvcFacade defines customer management operations.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, createdBy string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
}

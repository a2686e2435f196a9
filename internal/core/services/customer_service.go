package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tarjima/translation_center_app/internal/apperrors"
	"github.com/tarjima/translation_center_app/internal/core/domain"
	portsrepo "github.com/tarjima/translation_center_app/internal/core/ports/repositories"
	portssvc "github.com/tarjima/translation_center_app/internal/core/ports/services"
	"github.com/tarjima/translation_center_app/internal/dto"
)

// CustomerService implements customer management.
type CustomerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

var _ portssvc.CustomerSvcFacade = (*CustomerService)(nil)

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, createdBy string) (*domain.Customer, error) {
	now := time.Now()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		Phone:      req.Phone,
		IsAgency:   req.IsAgency,
		BranchID:   req.BranchID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "failed to save customer", "name", req.Name)
		return nil, err
	}

	s.LogInfo(ctx, "customer created", "customer_id", customer.CustomerID)
	return &customer, nil
}

func (s *CustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("customer not found: " + customerID)
		}
		s.LogError(ctx, err, "failed to get customer", "customer_id", customerID)
		return nil, err
	}
	return customer, nil
}

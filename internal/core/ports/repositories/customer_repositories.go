package repositories

import (
	"context"

	"github.com/tarjima/translation_center_app/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer by its unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// SearchCustomersWithDebt finds customers whose name or phone matches the
	// query and who currently carry outstanding debt, with their totals.
	SearchCustomersWithDebt(ctx context.Context, query string, limit int) ([]domain.DebtorSummary, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}

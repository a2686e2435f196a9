package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tarjima/translation_center_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgsql repositories against a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	customerRepo := newPgxCustomerRepository(dbPool)
	orderRepo := newPgxOrderRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool, lockTimeout)
	reportingRepo := newReportingRepository(dbPool)
	staffRepo := newPgxStaffRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CustomerRepo:  customerRepo,
		OrderRepo:     orderRepo,
		PaymentRepo:   paymentRepo,
		ReportingRepo: reportingRepo,
		StaffRepo:     staffRepo,
	}
}

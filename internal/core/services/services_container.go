package services

import (
	"time"

	portsrepo "github.com/tarjima/translation_center_app/internal/core/ports/repositories"
	portssvc "github.com/tarjima/translation_center_app/internal/core/ports/services"
)

// NewServiceContainer wires all services with their repository dependencies.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Customer: NewCustomerService(repos.CustomerRepo),
		Order:    NewOrderService(repos.OrderRepo, repos.CustomerRepo),
		Payment:  NewPaymentService(repos.PaymentRepo, repos.OrderRepo, repos.CustomerRepo),
		Debt:     NewDebtService(repos.OrderRepo, repos.CustomerRepo, repos.ReportingRepo),
		Staff:    NewStaffService(repos.StaffRepo, jwtSecret, jwtExpiry, jwtIssuer),
	}
}

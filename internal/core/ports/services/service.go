package ports

// ServiceContainer bundles the service facades for injection into handlers.
type ServiceContainer struct {
	Customer CustomerSvcFacade
	Order    OrderSvcFacade
	Payment  PaymentSvcFacade
	Debt     DebtSvcFacade
	Staff    StaffSvcFacade
}

package domain

// StaffUser is a back-office user who records payments and views reports.
type StaffUser struct {
	StaffID      string  `json:"staffID"` // Primary Key (UUID)
	Username     string  `json:"username"`
	Name         string  `json:"name"`
	PasswordHash string  `json:"-"`
	BranchID     *string `json:"branchID"` // nil means center-wide scope
	// CanManagePayments gates bulk-payment processing. It is checked at the
	// HTTP boundary; the payment core trusts the caller already verified it.
	CanManagePayments bool `json:"canManagePayments"`
	AuditFields
}

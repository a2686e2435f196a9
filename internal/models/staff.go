package models

// StaffUser is the database representation of a back-office user.
type StaffUser struct {
	StaffID           string  `json:"staffID"` // Primary Key (UUID)
	Username          string  `json:"username"`
	Name              string  `json:"name"`
	PasswordHash      string  `json:"-"`
	BranchID          *string `json:"branchID"` // Nullable
	CanManagePayments bool    `json:"canManagePayments"`
	AuditFields
}

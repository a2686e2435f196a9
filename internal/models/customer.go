package models

// Customer is the database representation of a debt owner.
type Customer struct {
	CustomerID string  `json:"customerID"` // Primary Key (UUID)
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	IsAgency   bool    `json:"isAgency"`
	BranchID   *string `json:"branchID"` // Nullable
	AuditFields
}

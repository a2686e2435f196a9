package domain

// Customer represents a debt owner: either an individual (B2C) or an agency (B2B).
// IsAgency is a filter dimension for reporting; pricing tiers live outside this core.
type Customer struct {
	CustomerID string  `json:"customerID"` // Primary Key (UUID)
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	IsAgency   bool    `json:"isAgency"`
	BranchID   *string `json:"branchID"` // Branch the customer was registered at, nullable
	AuditFields
}

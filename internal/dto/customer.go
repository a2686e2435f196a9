package dto

import "github.com/tarjima/translation_center_app/internal/core/domain"

// CreateCustomerRequest is the payload for registering a customer.
type CreateCustomerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Phone    string  `json:"phone"`
	IsAgency bool    `json:"isAgency"`
	BranchID *string `json:"branchID"`
}

// CustomerResponse is the API representation of a customer.
type CustomerResponse struct {
	CustomerID string  `json:"customerID"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	IsAgency   bool    `json:"isAgency"`
	BranchID   *string `json:"branchID,omitempty"`
}

// ToCustomerResponse converts a domain Customer to its API representation.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Phone:      c.Phone,
		IsAgency:   c.IsAgency,
		BranchID:   c.BranchID,
	}
}

package dto

// LoginRequest is the payload for staff authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the staff profile the UI needs.
type LoginResponse struct {
	Token             string `json:"token"`
	StaffID           string `json:"staffID"`
	Name              string `json:"name"`
	CanManagePayments bool   `json:"canManagePayments"`
}

// CreateStaffRequest is the payload for registering a staff user.
type CreateStaffRequest struct {
	Username          string  `json:"username" binding:"required"`
	Password          string  `json:"password" binding:"required,min=8"`
	Name              string  `json:"name" binding:"required"`
	BranchID          *string `json:"branchID"`
	CanManagePayments bool    `json:"canManagePayments"`
}

// StaffResponse is the API representation of a staff user.
type StaffResponse struct {
	StaffID           string  `json:"staffID"`
	Username          string  `json:"username"`
	Name              string  `json:"name"`
	BranchID          *string `json:"branchID,omitempty"`
	CanManagePayments bool    `json:"canManagePayments"`
}

package repositories

import (
	"context"

	"github.com/tarjima/translation_center_app/internal/core/domain"
)

// StaffReader defines read operations for staff data
type StaffReader interface {
	// FindStaffByID retrieves a staff user by its unique identifier.
	FindStaffByID(ctx context.Context, staffID string) (*domain.StaffUser, error)

	// FindStaffByUsername retrieves a staff user by username (login).
	FindStaffByUsername(ctx context.Context, username string) (*domain.StaffUser, error)
}

// StaffWriter defines write operations for staff data
type StaffWriter interface {
	// SaveStaff persists a new staff user.
	SaveStaff(ctx context.Context, staff domain.StaffUser) error
}

// StaffRepositoryFacade combines all staff-related repository interfaces
type StaffRepositoryFacade interface {
	StaffReader
	StaffWriter
}

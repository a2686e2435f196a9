package ports

import (
	"context"

	"github.com/tarjima/translation_center_app/internal/core/domain"
	"github.com/tarjima/translation_center_app/internal/dto"
)

// StaffSvcFacade defines staff account and authentication operations.
type StaffSvcFacade interface {
	CreateStaff(ctx context.Context, req dto.CreateStaffRequest, createdBy string) (*domain.StaffUser, error)
	GetStaffByID(ctx context.Context, staffID string) (*domain.StaffUser, error)
	// Login verifies credentials and issues a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

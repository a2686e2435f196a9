package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tarjima/translation_center_app/internal/apperrors"
	"github.com/tarjima/translation_center_app/internal/core/domain"
	portsrepo "github.com/tarjima/translation_center_app/internal/core/ports/repositories"
	portssvc "github.com/tarjima/translation_center_app/internal/core/ports/services"
	"github.com/tarjima/translation_center_app/internal/dto"
	"github.com/tarjima/translation_center_app/internal/utils"
)

// StaffService implements staff accounts and authentication.
type StaffService struct {
	BaseService
	staffRepo portsrepo.StaffRepositoryFacade

	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

var _ portssvc.StaffSvcFacade = (*StaffService)(nil)

// NewStaffService creates a new StaffService.
func NewStaffService(staffRepo portsrepo.StaffRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) *StaffService {
	return &StaffService{
		staffRepo: staffRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

func (s *StaffService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest, createdBy string) (*domain.StaffUser, error) {
	existing, err := s.staffRepo.FindStaffByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed to check username availability", "username", req.Username)
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewAppError(http.StatusConflict, "username already taken: "+req.Username, apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password")
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to hash password", err)
	}

	now := time.Now()
	staff := domain.StaffUser{
		StaffID:           uuid.NewString(),
		Username:          req.Username,
		Name:              req.Name,
		PasswordHash:      hash,
		BranchID:          req.BranchID,
		CanManagePayments: req.CanManagePayments,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	if err := s.staffRepo.SaveStaff(ctx, staff); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(http.StatusConflict, "username already taken: "+req.Username, apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "failed to save staff user", "username", req.Username)
		return nil, err
	}

	s.LogInfo(ctx, "staff user created", "staff_id", staff.StaffID, "username", staff.Username)
	return &staff, nil
}

func (s *StaffService) GetStaffByID(ctx context.Context, staffID string) (*domain.StaffUser, error) {
	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("staff user not found: " + staffID)
		}
		s.LogError(ctx, err, "failed to get staff user", "staff_id", staffID)
		return nil, err
	}
	return staff, nil
}

// Login verifies credentials and issues a signed token. Bad username and bad
// password deliberately produce the same error.
func (s *StaffService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	staff, err := s.staffRepo.FindStaffByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid credentials", apperrors.ErrForbidden)
		}
		s.LogError(ctx, err, "failed to load staff user for login", "username", req.Username)
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, staff.PasswordHash) {
		s.LogInfo(ctx, "login failed, wrong password", "username", req.Username)
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid credentials", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(staff.StaffID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "failed to sign token", "staff_id", staff.StaffID)
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to issue token", err)
	}

	s.LogInfo(ctx, "staff user logged in", "staff_id", staff.StaffID)
	return &dto.LoginResponse{
		Token:             token,
		StaffID:           staff.StaffID,
		Name:              staff.Name,
		CanManagePayments: staff.CanManagePayments,
	}, nil
}

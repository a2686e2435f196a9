package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tarjima/translation_center_app/internal/apperrors"
	"github.com/tarjima/translation_center_app/internal/core/domain"
	portsrepo "github.com/tarjima/translation_center_app/internal/core/ports/repositories"
	"github.com/tarjima/translation_center_app/internal/models"
	"github.com/tarjima/translation_center_app/internal/utils/mapping"
)

const staffColumns = `staff_id, username, name, password_hash, branch_id, can_manage_payments, created_at, created_by, last_updated_at, last_updated_by`

type PgxStaffRepository struct {
	BaseRepository
}

// newPgxStaffRepository creates a new repository for staff data.
func newPgxStaffRepository(pool *pgxpool.Pool) portsrepo.StaffRepositoryFacade {
	return &PgxStaffRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.StaffRepositoryFacade = (*PgxStaffRepository)(nil)

func scanStaff(row pgx.Row) (*models.StaffUser, error) {
	var m models.StaffUser
	err := row.Scan(
		&m.StaffID,
		&m.Username,
		&m.Name,
		&m.PasswordHash,
		&m.BranchID,
		&m.CanManagePayments,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveStaff persists a new staff user.
func (r *PgxStaffRepository) SaveStaff(ctx context.Context, staff domain.StaffUser) error {
	modelStaff := mapping.ToModelStaffUser(staff)
	query := `
		INSERT INTO staff_users (` + staffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelStaff.StaffID,
		modelStaff.Username,
		modelStaff.Name,
		modelStaff.PasswordHash,
		modelStaff.BranchID,
		modelStaff.CanManagePayments,
		modelStaff.CreatedAt,
		modelStaff.CreatedBy,
		modelStaff.LastUpdatedAt,
		modelStaff.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.NewAppError(409, "staff username already taken "+modelStaff.Username, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert staff user "+modelStaff.StaffID, err)
	}
	return nil
}

// FindStaffByID retrieves a staff user by its ID.
func (r *PgxStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE staff_id = $1;`

	m, err := scanStaff(r.Pool.QueryRow(ctx, query, staffID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find staff user by ID "+staffID, err)
	}

	domainStaff := mapping.ToDomainStaffUser(*m)
	return &domainStaff, nil
}

// FindStaffByUsername retrieves a staff user by username.
func (r *PgxStaffRepository) FindStaffByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE username = $1;`

	m, err := scanStaff(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find staff user by username", err)
	}

	domainStaff := mapping.ToDomainStaffUser(*m)
	return &domainStaff, nil
}

package mapping

import (
	"github.com/tarjima/translation_center_app/internal/core/domain"
	"github.com/tarjima/translation_center_app/internal/models"
)

// ToModelStaffUser converts a domain StaffUser to a model StaffUser
func ToModelStaffUser(d domain.StaffUser) models.StaffUser {
	return models.StaffUser{
		StaffID:           d.StaffID,
		Username:          d.Username,
		Name:              d.Name,
		PasswordHash:      d.PasswordHash,
		BranchID:          d.BranchID,
		CanManagePayments: d.CanManagePayments,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStaffUser converts a model StaffUser to a domain StaffUser
func ToDomainStaffUser(m models.StaffUser) domain.StaffUser {
	return domain.StaffUser{
		StaffID:           m.StaffID,
		Username:          m.Username,
		Name:              m.Name,
		PasswordHash:      m.PasswordHash,
		BranchID:          m.BranchID,
		CanManagePayments: m.CanManagePayments,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarjima/translation_center_app/internal/core/domain"
	portssvc "github.com/tarjima/translation_center_app/internal/core/ports/services"
	"github.com/tarjima/translation_center_app/internal/dto"
	"github.com/tarjima/translation_center_app/internal/middleware"
)

// staffHandler handles HTTP requests related to staff users.
type staffHandler struct {
	staffService portssvc.StaffSvcFacade
}

func newStaffHandler(ss portssvc.StaffSvcFacade) *staffHandler {
	return &staffHandler{staffService: ss}
}

// registerStaffRoutes registers all staff-related routes.
func registerStaffRoutes(rg *gin.RouterGroup, ss portssvc.StaffSvcFacade) {
	h := newStaffHandler(ss)

	staff := rg.Group("/staff")
	{
		staff.POST("", h.createStaff)
		staff.GET("/me", h.getCurrentStaff)
		staff.GET("/:id", h.getStaff)
	}
}

func toStaffResponse(s *domain.StaffUser) dto.StaffResponse {
	return dto.StaffResponse{
		StaffID:           s.StaffID,
		Username:          s.Username,
		Name:              s.Name,
		BranchID:          s.BranchID,
		CanManagePayments: s.CanManagePayments,
	}
}

func (h *staffHandler) createStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create staff request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetStaffIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, err, "Failed to create staff user")
		return
	}

	c.JSON(http.StatusCreated, toStaffResponse(staff))
}

func (h *staffHandler) getStaff(c *gin.Context) {
	staffID := c.Param("id")

	staff, err := h.staffService.GetStaffByID(c.Request.Context(), staffID)
	if err != nil {
		respondError(c, err, "Failed to retrieve staff user")
		return
	}

	c.JSON(http.StatusOK, toStaffResponse(staff))
}

func (h *staffHandler) getCurrentStaff(c *gin.Context) {
	staffID, ok := middleware.GetStaffIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	staff, err := h.staffService.GetStaffByID(c.Request.Context(), staffID)
	if err != nil {
		respondError(c, err, "Failed to retrieve staff user")
		return
	}

	c.JSON(http.StatusOK, toStaffResponse(staff))
}

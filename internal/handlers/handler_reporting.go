package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tarjima/translation_center_app/internal/core/ports/services"
	"github.com/tarjima/translation_center_app/internal/dto"
	"github.com/tarjima/translation_center_app/internal/middleware"
)

// reportingHandler handles debt and payment reporting requests.
type reportingHandler struct {
	debtService  portssvc.DebtSvcFacade
	staffService portssvc.StaffSvcFacade
}

func newReportingHandler(ds portssvc.DebtSvcFacade, ss portssvc.StaffSvcFacade) *reportingHandler {
	return &reportingHandler{debtService: ds, staffService: ss}
}

// registerReportingRoutes registers all reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, ds portssvc.DebtSvcFacade, ss portssvc.StaffSvcFacade) {
	h := newReportingHandler(ds, ss)

	reports := rg.Group("/reports")
	{
		reports.GET("/top-debtors", h.topDebtors)
		reports.GET("/payment-stats", h.paymentStats)
	}
}

// resolveBranchScope narrows the requested branch filter to the caller's own
// branch when their account is branch scoped. Center-wide staff may request
// any branch.
func (h *reportingHandler) resolveBranchScope(c *gin.Context, requested *string) (*string, bool) {
	staffID, ok := middleware.GetStaffIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	staff, err := h.staffService.GetStaffByID(c.Request.Context(), staffID)
	if err != nil {
		respondError(c, err, "Failed to resolve staff scope")
		return nil, false
	}

	if staff.BranchID != nil {
		return staff.BranchID, true
	}
	return requested, true
}

func (h *reportingHandler) topDebtors(c *gin.Context) {
	params := dto.TopDebtorsParams{
		CustomerType: c.Query("customerType"),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		params.Limit = limit
	}

	var requested *string
	if branchID := c.Query("branchID"); branchID != "" {
		requested = &branchID
	}
	branchID, ok := h.resolveBranchScope(c, requested)
	if !ok {
		return
	}
	params.BranchID = branchID

	debtors, err := h.debtService.TopDebtors(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to get top debtors")
		return
	}

	c.JSON(http.StatusOK, gin.H{"debtors": dto.ToDebtorSummaryResponses(debtors)})
}

func (h *reportingHandler) paymentStats(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'from' parameter, expected RFC3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'to' parameter, expected RFC3339"})
		return
	}

	var requested *string
	if branchID := c.Query("branchID"); branchID != "" {
		requested = &branchID
	}
	branchID, ok := h.resolveBranchScope(c, requested)
	if !ok {
		return
	}

	stats, err := h.debtService.PaymentStats(c.Request.Context(), from, to, branchID)
	if err != nil {
		respondError(c, err, "Failed to get payment stats")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentStatsResponse(stats))
}

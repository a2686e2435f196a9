package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tarjima/translation_center_app/internal/core/ports/services"
	"github.com/tarjima/translation_center_app/internal/dto"
	"github.com/tarjima/translation_center_app/internal/middleware"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
	orderService    portssvc.OrderSvcFacade
	debtService     portssvc.DebtSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade, os portssvc.OrderSvcFacade, ds portssvc.DebtSvcFacade) *customerHandler {
	return &customerHandler{
		customerService: cs,
		orderService:    os,
		debtService:     ds,
	}
}

// registerCustomerRoutes registers all customer-related routes.
func registerCustomerRoutes(rg *gin.RouterGroup, cs portssvc.CustomerSvcFacade, os portssvc.OrderSvcFacade, ds portssvc.DebtSvcFacade) {
	h := newCustomerHandler(cs, os, ds)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("/search", h.searchCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.GET("/:id/orders", h.listCustomerOrders)
		customers.GET("/:id/debts", h.listCustomerDebts)
	}
}

func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create customer request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	staffID, ok := middleware.GetStaffIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, staffID)
	if err != nil {
		respondError(c, err, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) getCustomer(c *gin.Context) {
	customerID := c.Param("id")

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "Failed to retrieve customer")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) listCustomerOrders(c *gin.Context) {
	customerID := c.Param("id")

	orders, err := h.orderService.ListOrdersByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "Failed to list customer orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": dto.ToOrderResponses(orders)})
}

// listCustomerDebts returns the customer's open debts oldest-first with the
// aggregate total, the same view the settlement planner works from.
func (h *customerHandler) listCustomerDebts(c *gin.Context) {
	customerID := c.Param("id")

	debts, err := h.debtService.ListDebts(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "Failed to list customer debts")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerDebtDetailsResponse(customerID, debts))
}

func (h *customerHandler) searchCustomers(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	results, err := h.debtService.SearchCustomersWithDebt(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err, "Failed to search customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": dto.ToDebtorSummaryResponses(results)})
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tarjima/translation_center_app/internal/core/ports/services"
	"github.com/tarjima/translation_center_app/internal/dto"
	"github.com/tarjima/translation_center_app/internal/middleware"
)

// orderHandler handles HTTP requests related to orders.
type orderHandler struct {
	orderService   portssvc.OrderSvcFacade
	paymentService portssvc.PaymentSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade, ps portssvc.PaymentSvcFacade) *orderHandler {
	return &orderHandler{orderService: os, paymentService: ps}
}

// registerOrderRoutes registers all order-related routes. The direct payment
// route is gated on payment management permission like the bulk path.
func registerOrderRoutes(rg *gin.RouterGroup, os portssvc.OrderSvcFacade, ps portssvc.PaymentSvcFacade, requirePaymentManager gin.HandlerFunc) {
	h := newOrderHandler(os, ps)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("/:id", h.getOrder)
		orders.POST("/:id/payments", requirePaymentManager, h.recordOrderPayment)
	}
}

func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create order request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	staffID, ok := middleware.GetStaffIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, staffID)
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

func (h *orderHandler) getOrder(c *gin.Context) {
	orderID := c.Param("id")

	order, err := h.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *orderHandler) recordOrderPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("id")

	var req dto.RecordOrderPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind order payment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	staffID, ok := middleware.GetStaffIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.paymentService.RecordOrderPayment(c.Request.Context(), orderID, req, staffID)
	if err != nil {
		respondError(c, err, "Failed to record order payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

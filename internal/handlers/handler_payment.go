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

// paymentHandler handles HTTP requests related to bulk payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers all payment-related routes. Mutating routes
// sit behind the payment-manager check; everything is rate limited upstream.
func registerPaymentRoutes(rg *gin.RouterGroup, ps portssvc.PaymentSvcFacade, requirePaymentManager gin.HandlerFunc) {
	h := newPaymentHandler(ps)

	payments := rg.Group("/payments")
	{
		payments.POST("", requirePaymentManager, h.applyPayment)
		payments.POST("/preview", h.previewAllocation)
		payments.GET("", h.listPayments)
		payments.GET("/:id", h.getPayment)
	}
}

func (h *paymentHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ApplyBulkPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind bulk payment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	staffID, ok := middleware.GetStaffIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receipt, err := h.paymentService.ApplyPayment(c.Request.Context(), req, staffID)
	if err != nil {
		respondError(c, err, "Failed to apply payment")
		return
	}

	// Replays of an already-processed idempotency key come back as 200 with
	// the duplicate flag set; only a fresh application is a 201.
	status := http.StatusCreated
	if receipt.Duplicate {
		status = http.StatusOK
	}
	c.JSON(status, dto.ToPaymentReceiptResponse(receipt))
}

func (h *paymentHandler) previewAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PreviewAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind allocation preview request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	plan, err := h.paymentService.PreviewAllocation(c.Request.Context(), req.CustomerID, req.Amount)
	if err != nil {
		respondError(c, err, "Failed to preview allocation")
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationPlanResponse(plan))
}

func (h *paymentHandler) getPayment(c *gin.Context) {
	paymentID := c.Param("id")

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		respondError(c, err, "Failed to retrieve payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToBulkPaymentResponse(payment))
}

func (h *paymentHandler) listPayments(c *gin.Context) {
	params := dto.ListPaymentsParams{}

	if customerID := c.Query("customerID"); customerID != "" {
		params.CustomerID = &customerID
	}
	if method := c.Query("method"); method != "" {
		params.Method = &method
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	resp, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, resp)
}

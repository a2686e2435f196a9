package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/tarjima/translation_center_app/internal/core/domain"
	portssvc "github.com/tarjima/translation_center_app/internal/core/ports/services"
	"github.com/tarjima/translation_center_app/internal/middleware"
	"github.com/tarjima/translation_center_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// registerCustomValidators wires domain-aware validation tags into gin's
// binding validator.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
			return domain.PaymentMethod(fl.Field().String()).IsValid()
		})
	}
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Payment routes additionally sit behind a per-IP rate limit.
	rate, err := limiter.NewRateFromFormatted(cfg.PaymentRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("30-M")
	}
	paymentLimiter := limiter.New(memory.NewStore(), rate)
	rateLimited := v1.Group("", middleware.RateLimit(paymentLimiter))

	paymentManagerOnly := requirePaymentManager(services.Staff)

	registerCustomerRoutes(v1, services.Customer, services.Order, services.Debt)
	registerOrderRoutes(v1, services.Order, services.Payment, paymentManagerOnly)
	registerPaymentRoutes(rateLimited, services.Payment, paymentManagerOnly)
	registerReportingRoutes(v1, services.Debt, services.Staff)
	registerStaffRoutes(v1, services.Staff)
}

// requirePaymentManager gates payment-mutating routes on the staff user's
// CanManagePayments flag. The payment core trusts this boundary check.
func requirePaymentManager(staffService portssvc.StaffSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID, ok := middleware.GetStaffIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		staff, err := staffService.GetStaffByID(c.Request.Context(), staffID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if !staff.CanManagePayments {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Payment management permission required"})
			return
		}

		c.Next()
	}
}

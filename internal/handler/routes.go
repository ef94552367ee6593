package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"letly-be-svc/internal/auth"
	"letly-be-svc/internal/metrics"
	"letly-be-svc/internal/middleware"
	"letly-be-svc/internal/models"
	"letly-be-svc/internal/service"
	"letly-be-svc/pkg/logger"
)

// Services bundles what the HTTP layer calls into
type Services struct {
	User          service.UserService
	Property      service.PropertyService
	Bill          service.BillService
	Maintenance   service.MaintenanceService
	PasswordReset service.PasswordResetService
}

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping() error
}

// SetupRoutes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	services Services,
	jwtManager *auth.JWTManager,
	m *metrics.Metrics,
	db Pinger,
	logger *logger.Logger,
) {
	RegisterValidators()

	// Initialize handlers
	userHandler := NewUserHandler(services.User, logger)
	propertyHandler := NewPropertyHandler(services.Property, logger)
	billingHandler := NewBillingHandler(services.Bill, logger)
	paymentHandler := NewPaymentHandler(services.Bill, logger)
	dashboardHandler := NewDashboardHandler(services.Bill, logger)
	maintenanceHandler := NewMaintenanceHandler(services.Maintenance, logger)
	resetHandler := NewPasswordResetHandler(services.PasswordReset, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(m.Handler()))

	requireAuth := middleware.RequireAuth(jwtManager)
	landlordOnly := middleware.RequireRole(models.RoleLandlord)
	tenantOnly := middleware.RequireRole(models.RoleTenant)

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", HealthCheck(db))

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", userHandler.Register)
			authGroup.POST("/login", userHandler.Login)
			authGroup.GET("/me", requireAuth, userHandler.Me)
		}

		reset := v1.Group("/password-reset")
		{
			reset.POST("/request", resetHandler.RequestReset)
			reset.GET("/verify", resetHandler.VerifyToken)
			reset.POST("/reset", resetHandler.ResetPassword)
		}

		properties := v1.Group("/properties", requireAuth)
		{
			properties.POST("", landlordOnly, propertyHandler.CreateProperty)
			properties.GET("/landlord", landlordOnly, propertyHandler.ListProperties)
			properties.GET("/rentee", tenantOnly, propertyHandler.ListProperties)
			properties.POST("/add-tenant", landlordOnly, propertyHandler.AddTenant)
			properties.GET("/:id", propertyHandler.GetProperty)
			properties.PUT("/:id", landlordOnly, propertyHandler.UpdateProperty)
			properties.DELETE("/:id/tenants/:tenant_id", landlordOnly, propertyHandler.RemoveTenant)
		}

		bills := v1.Group("/bills", requireAuth)
		{
			bills.POST("/generate", landlordOnly, billingHandler.GenerateBills)
			bills.GET("/landlord", landlordOnly, billingHandler.ListLandlordBills)
			bills.GET("/landlord/summary", landlordOnly, dashboardHandler.LandlordSummary)
			bills.GET("/landlord/export", landlordOnly, dashboardHandler.ExportLandlordBills)
			bills.GET("/tenant", tenantOnly, billingHandler.ListTenantBills)
			bills.GET("/summary", tenantOnly, dashboardHandler.TenantSummary)
			bills.GET("/:id", billingHandler.GetBill)
			bills.PUT("/:id/paid", paymentHandler.MarkPaid)
		}

		maintenance := v1.Group("/maintenance", requireAuth)
		{
			maintenance.POST("", tenantOnly, maintenanceHandler.CreateRequest)
			maintenance.GET("/rentee", tenantOnly, maintenanceHandler.ListRequests)
			maintenance.GET("/landlord", landlordOnly, maintenanceHandler.ListRequests)
			maintenance.GET("/property/:property_id", maintenanceHandler.ListPropertyRequests)
			maintenance.PUT("/:id/status", landlordOnly, maintenanceHandler.UpdateStatus)
		}
	}
}

// HealthCheck reports liveness and database reachability
func HealthCheck(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "degraded",
				"message": "Database unreachable",
				"service": "Letly Backend Service",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Server is running",
			"service": "Letly Backend Service",
		})
	}
}

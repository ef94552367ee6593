package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"letly-be-svc/docs"
	"letly-be-svc/internal/auth"
	"letly-be-svc/internal/config"
	"letly-be-svc/internal/database"
	"letly-be-svc/internal/handler"
	"letly-be-svc/internal/lock"
	"letly-be-svc/internal/metrics"
	"letly-be-svc/internal/middleware"
	"letly-be-svc/internal/notifier"
	"letly-be-svc/internal/repository"
	"letly-be-svc/internal/scheduler"
	"letly-be-svc/internal/service"
	"letly-be-svc/pkg/logger"
)

// @title Letly Backend Service API
// @version 1.0
// @description RESTful API for property management: properties, tenants, bill splitting and maintenance
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "Letly Backend Service API"
	docs.SwaggerInfo.Description = "RESTful API for property management: properties, tenants, bill splitting and maintenance"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting Letly Backend Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.WithField("driver", cfg.Database.Driver).Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	propertyRepo := repository.NewPropertyRepository(db.DB)
	billRepo := repository.NewBillRepository(db.DB)
	maintenanceRepo := repository.NewMaintenanceRepository(db.DB)
	resetRepo := repository.NewPasswordResetRepository(db.DB)
	logSchedulerRepo := repository.NewLogSchedulerRepository(db.DB)

	// Bill generation lock, shared through Redis when configured
	var (
		locker   lock.Locker = lock.NewLocal()
		redisCli *redis.Client
	)
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisCli, err = lock.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		cancel()
		if err != nil {
			appLogger.WithField("error", err).Fatal("Failed to connect to redis")
		}
		locker = lock.NewRedis(redisCli, 30*time.Second, appLogger)
		appLogger.WithField("addr", cfg.Redis.Addr).Info("Using redis for bill generation locks")
	}

	// Mail delivery
	var sender notifier.Sender = notifier.NewLogSender(appLogger.Infof)
	if cfg.Mail.Enabled() {
		sender = notifier.NewSMTPSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
	} else {
		appLogger.Warn("SMTP_HOST not set, emails will only be logged")
	}
	mailer := notifier.NewMailer(sender, appLogger)

	appMetrics := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	// Initialize services
	billService := service.NewBillService(billRepo, propertyRepo, locker, mailer, appMetrics, appLogger)
	services := handler.Services{
		User:          service.NewUserService(userRepo, jwtManager, appLogger),
		Property:      service.NewPropertyService(propertyRepo, userRepo, appLogger),
		Bill:          billService,
		Maintenance:   service.NewMaintenanceService(maintenanceRepo, propertyRepo, mailer, appLogger),
		PasswordReset: service.NewPasswordResetService(userRepo, resetRepo, mailer, cfg.Mail.FrontendURL, appLogger),
	}

	// Initialize schedulers
	var overdueScheduler *scheduler.OverdueScheduler
	if cfg.Scheduler.OverdueSweepEnabled {
		overdueScheduler = scheduler.NewOverdueScheduler(billService, logSchedulerRepo, appLogger, cfg.Scheduler.OverdueSweepCron)
		if err := overdueScheduler.Start(); err != nil {
			appLogger.WithField("error", err).Fatal("Failed to start overdue scheduler")
		}
	}

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(&cfg.CORS))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler())
	router.Use(appMetrics.Middleware())
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())
	router.HandleMethodNotAllowed = true

	// Setup routes
	handler.SetupRoutes(router, services, jwtManager, appMetrics, db, appLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	appLogger.WithField("port", cfg.Server.Port).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Error("Server forced to shutdown")
	}

	if overdueScheduler != nil {
		overdueScheduler.Stop()
	}

	// Let queued emails go out
	mailer.Wait()

	if redisCli != nil {
		if err := redisCli.Close(); err != nil {
			appLogger.WithField("error", err).Error("Failed to close redis connection")
		}
	}

	// Close database connection
	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/srodrigo23/backend-otb-control/docs" // Swagger docs
	"github.com/srodrigo23/backend-otb-control/internal/config"
	"github.com/srodrigo23/backend-otb-control/internal/database"
	"github.com/srodrigo23/backend-otb-control/internal/handlers"
	"github.com/srodrigo23/backend-otb-control/internal/jobs"
	"github.com/srodrigo23/backend-otb-control/internal/middleware"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/internal/services"
	"github.com/srodrigo23/backend-otb-control/internal/storage"
	"github.com/srodrigo23/backend-otb-control/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title OTB Control API
// @version 1.0
// @description REST API for the debt and payment ledger of a neighborhood association (OTB)

// @contact.name API Support

// @license.name MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry (GlitchTip) when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Warn if Resend email is not configured
	if cfg.ResendAPIKey == "" || cfg.FromEmail == "" {
		logger.Warn("Resend email disabled: RESEND_API_KEY or FROM_EMAIL not set. Receipts and debt notices will not be emailed.")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database schema", "error", err)
		os.Exit(1)
	}

	// Initialize document archive
	archive, err := storage.NewLocalArchive(cfg.ArchivePath)
	if err != nil {
		logger.Error("Failed to initialize document archive", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized document archive", "path", cfg.ArchivePath)

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, cfg)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, archive)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				// Board member accounts
				admin.POST("/users", h.User.Create)
				admin.DELETE("/users/:id", h.User.Destroy)

				// Destructive ledger operations
				admin.DELETE("/neighbors/:id", h.Neighbor.Destroy)
				admin.DELETE("/measures/:id", h.Measure.Destroy)
				admin.DELETE("/measures/:id/debts", h.Measure.DestroyDebts)
				admin.DELETE("/debts/:id", h.Debt.Destroy)
				admin.DELETE("/meets/:id", h.Meet.Destroy)
				admin.DELETE("/collect-debts/:id", h.Collect.Destroy)

				// One-shot currency unit migration
				admin.POST("/debts/migrate-currency", h.Debt.MigrateCurrency)

				// Full attendance recount
				admin.POST("/meets/recalculate-all-statistics", h.Meet.RecalculateAllStatistics)
			}

			// Board member accounts (admin or owner)
			protected.GET("/users", h.User.Index)
			protected.GET("/users/:id", h.User.Show)
			protected.PUT("/users/:id", middleware.RequireAdminOrOwner(), h.User.Update)
			protected.POST("/users/:id/change-password", middleware.RequireAdminOrOwner(), h.User.ChangePassword)

			// Neighbors
			protected.GET("/neighbors", h.Neighbor.Index)
			protected.POST("/neighbors", h.Neighbor.Create)
			protected.GET("/neighbors/:id", h.Neighbor.Show)
			protected.PUT("/neighbors/:id", h.Neighbor.Update)
			protected.GET("/neighbors/:id/meters", h.Neighbor.Meters)
			protected.POST("/neighbors/:id/meters", h.Neighbor.CreateMeter)
			protected.GET("/neighbors/:id/payments", h.Neighbor.Payments)
			protected.GET("/neighbors/:id/debts/active", h.Neighbor.ActiveDebts)
			protected.GET("/neighbors/:id/debts/all", h.Neighbor.AllDebts)

			// Reading campaigns
			protected.GET("/measures", h.Measure.Index)
			protected.POST("/measures", h.Measure.Create)
			protected.GET("/measures/:id", h.Measure.Show)
			protected.PUT("/measures/:id", h.Measure.Update)
			protected.GET("/measures/:id/meter-readings", h.Measure.Readings)
			protected.POST("/measures/:id/meter-readings", h.Measure.CreateReading)
			protected.POST("/measures/:id/generate-debts", h.Measure.GenerateDebts)

			// Debt ledger
			protected.GET("/debts", h.Debt.Index)
			protected.POST("/debts", h.Debt.Create)
			protected.GET("/debts/:id", h.Debt.Show)
			protected.GET("/debt-types", h.Debt.Types)

			// Meetings and attendance
			protected.GET("/meets", h.Meet.Index)
			protected.POST("/meets", h.Meet.Create)
			protected.GET("/meets/:id", h.Meet.Show)
			protected.PUT("/meets/:id", h.Meet.Update)
			protected.GET("/meets/:id/assistances", h.Meet.Assistances)
			protected.POST("/meets/:id/assistances", h.Meet.RecordAssistance)
			protected.POST("/meets/:id/recalculate-statistics", h.Meet.RecalculateStatistics)

			// Collection sessions and payments
			protected.GET("/collect-debts", h.Collect.Index)
			protected.POST("/collect-debts", h.Collect.Create)
			protected.GET("/collect-debts/:id", h.Collect.Show)
			protected.PUT("/collect-debts/:id", h.Collect.Update)
			protected.GET("/collect-debts/:id/payments", h.Collect.Payments)
			protected.POST("/collect-debts/:id/payments", h.Collect.CreatePayment)
			protected.POST("/collect-debts/:id/recalculate", h.Collect.Recalculate)

			// Reports and exports
			protected.GET("/reports/collect-debts/:id/payments.xlsx", h.Report.SessionPaymentsXLSX)
			protected.GET("/reports/payments/:id/receipt.pdf", h.Report.PaymentReceiptPDF)
			protected.GET("/reports/neighbors/:id/statement.pdf", h.Report.NeighborStatementPDF)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Daily overdue debt scan: email a notice to every neighbor in arrears
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Scanning overdue debts...")
		_, err := svcs.Debt.NotifyOverdue(ctx)
		return err
	})

	// Refresh meeting attendance statistics every 6 hours
	worker.ScheduleEvery(6*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Recalculating meeting statistics...")
		_, err := svcs.Meet.RecalculateAllStatistics(ctx)
		return err
	})

	logger.Info("Scheduled recurring jobs")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	engagementapp "github.com/parkly/backend/internal/application/engagement"
	identityapp "github.com/parkly/backend/internal/application/identity"
	parkingapp "github.com/parkly/backend/internal/application/parking"
	reportapp "github.com/parkly/backend/internal/application/report"
	"github.com/parkly/backend/internal/domain/parking"
	"github.com/parkly/backend/internal/infrastructure/auth"
	"github.com/parkly/backend/internal/infrastructure/config"
	"github.com/parkly/backend/internal/infrastructure/logger"
	"github.com/parkly/backend/internal/infrastructure/payment"
	"github.com/parkly/backend/internal/infrastructure/persistence"
	"github.com/parkly/backend/internal/infrastructure/scheduler"
	"github.com/parkly/backend/internal/interfaces/http/handler"
	"github.com/parkly/backend/internal/interfaces/http/middleware"
	"github.com/parkly/backend/internal/interfaces/http/router"
)

// maxRequestBody caps request bodies well above the largest legitimate payload
const maxRequestBody = 1 << 20 // 1MB

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Parkly Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	authLogRepo := persistence.NewGormAuthLogRepository(db.DB)
	areaRepo := persistence.NewGormAreaRepository(db.DB)
	subAreaRepo := persistence.NewGormSubAreaRepository(db.DB)
	slotRepo := persistence.NewGormParkingSlotRepository(db.DB)
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	feedbackRepo := persistence.NewGormFeedbackRepository(db.DB)

	// Token blacklist backs logout; fall back to the in-memory store when
	// Redis is unreachable so a cache outage does not block startup
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisBlacklist(auth.RedisBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewMemoryBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	}

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(
		userRepo, authLogRepo, jwtService, blacklist,
		identityapp.DefaultAuthServiceConfig(), log,
	)

	// Payment confirmation tokens
	tokenService, err := payment.NewTokenService(&payment.Config{
		TokenSecret: cfg.Payment.TokenSecret,
		TokenTTL:    cfg.Payment.TokenTTL,
	})
	if err != nil {
		log.Fatal("Failed to initialize payment token service", zap.Error(err))
	}

	// Parking services
	bookingPolicy := parking.BookingConfig{
		GracePeriod: cfg.Booking.GracePeriod,
		HourlyRate:  decimal.NewFromInt(cfg.Booking.HourlyRate),
		MinLeadTime: cfg.Booking.MinLeadTime,
	}
	areaService := parkingapp.NewAreaService(areaRepo, subAreaRepo, slotRepo, log)
	bookingService := parkingapp.NewBookingService(bookingRepo, slotRepo, tokenService, bookingPolicy, log)

	// Engagement services
	contactService := engagementapp.NewContactService(contactRepo, log)
	feedbackService := engagementapp.NewFeedbackService(feedbackRepo, log)

	// Report services
	dashboardService := reportapp.NewFeedbackDashboardService(feedbackRepo, userRepo, log)
	exportService := reportapp.NewExportService(bookingRepo, slotRepo, userRepo, feedbackRepo, contactRepo, log)

	// Reservation expiry sweep
	if cfg.Sweep.Enabled {
		sweepScheduler := scheduler.NewScheduler(scheduler.SchedulerConfig{
			Enabled:           cfg.Sweep.Enabled,
			MaxConcurrentJobs: cfg.Sweep.Workers,
			JobTimeout:        cfg.Sweep.JobTimeout,
			RetryAttempts:     cfg.Sweep.RetryAttempts,
			RetryDelay:        cfg.Sweep.RetryDelay,
		}, scheduler.NewExpirySweepExecutor(bookingRepo, slotRepo, log), log)
		if err := sweepScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start sweep scheduler", zap.Error(err))
		}
		defer func() {
			if err := sweepScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping sweep scheduler", zap.Error(err))
			}
		}()

		sweepTrigger := scheduler.NewSweepTrigger(scheduler.SweepTriggerConfig{
			Enabled:  cfg.Sweep.Enabled,
			Interval: cfg.Sweep.CheckInterval,
		}, sweepScheduler, log)
		if err := sweepTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start sweep trigger", zap.Error(err))
		}
		defer sweepTrigger.Stop()

		log.Info("Expiry sweep started",
			zap.Duration("check_interval", cfg.Sweep.CheckInterval),
			zap.Int("workers", cfg.Sweep.Workers),
		)
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	areaHandler := handler.NewAreaHandler(areaService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	paymentHandler := handler.NewPaymentHandler(bookingService)
	engagementHandler := handler.NewEngagementHandler(
		contactService, feedbackService,
		middleware.OptionalJWTAuthMiddleware(jwtService),
	)
	reportHandler := handler.NewReportHandler(dashboardService, exportService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(maxRequestBody))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes with public
	// endpoints skipped
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/register",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/public",
		},
		Logger: log,
	}))

	r.Register(authHandler)
	r.Register(areaHandler)
	r.Register(bookingHandler)
	r.Register(paymentHandler)
	r.Register(engagementHandler)
	r.Register(reportHandler)
	r.Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

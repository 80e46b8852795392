package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appshipment "github.com/shipdesk/backend/internal/application/shipment"
	apptracking "github.com/shipdesk/backend/internal/application/tracking"
	"github.com/shipdesk/backend/internal/domain/tracking"
	"github.com/shipdesk/backend/internal/infrastructure/config"
	"github.com/shipdesk/backend/internal/infrastructure/logger"
	"github.com/shipdesk/backend/internal/infrastructure/persistence"
	"github.com/shipdesk/backend/internal/infrastructure/ratelimit"
	"github.com/shipdesk/backend/internal/infrastructure/shipsgo"
	"github.com/shipdesk/backend/internal/interfaces/http/handler"
	"github.com/shipdesk/backend/internal/interfaces/http/middleware"
	"github.com/shipdesk/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("Starting ShipDesk backend",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database migration completed")

	// Initialize tracking provider
	provider, fallback, trackingOpts := buildTrackingProvider(cfg, log)

	// Initialize services
	trackingService := apptracking.NewService(provider, fallback, log.Named("tracking"), trackingOpts)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	shipmentService := appshipment.NewService(shipmentRepo)

	// Initialize handlers
	trackingHandler := handler.NewTrackingHandler(trackingService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService, trackingService)
	systemHandler := handler.NewSystemHandler()

	// Setup Gin
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Liveness endpoint outside the versioned API
	engine.GET("/health", healthHandler(db))

	// Rate limiter guards the tracking surface only
	var rateLimit gin.HandlerFunc
	if cfg.HTTP.RateLimitEnabled {
		limiter, err := buildRateLimiter(cfg)
		if err != nil {
			log.Fatal("Failed to initialize rate limiter", zap.Error(err))
		}
		rateLimit = middleware.RateLimit(limiter, log.Named("ratelimit"))
		log.Info("Rate limiting enabled",
			zap.String("strategy", cfg.HTTP.RateLimitStrategy),
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	trackingRoutes := router.NewDomainGroup("tracking", "/tracking")
	if rateLimit != nil {
		trackingRoutes.Use(rateLimit)
	}
	trackingRoutes.
		GET("/container/:number", trackingHandler.TrackByContainer).
		GET("/bl/:number", trackingHandler.TrackByBillOfLading).
		GET("/booking/:number", trackingHandler.TrackByBooking).
		POST("/track", trackingHandler.Track).
		GET("/vessel/:mmsi/position", trackingHandler.GetVesselPosition).
		GET("/health", trackingHandler.GetHealth)

	shipmentRoutes := router.NewDomainGroup("shipments", "/shipments")
	shipmentRoutes.
		POST("", shipmentHandler.Create).
		GET("", shipmentHandler.List).
		GET("/:id", shipmentHandler.Get).
		PUT("/:id", shipmentHandler.Update).
		PATCH("/:id/status", shipmentHandler.UpdateStatus).
		DELETE("/:id", shipmentHandler.Delete).
		GET("/:id/tracking", shipmentHandler.Track)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.
		GET("/ping", systemHandler.Ping).
		GET("/info", systemHandler.GetSystemInfo)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(trackingRoutes).
		Register(shipmentRoutes).
		Register(systemRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
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

// buildTrackingProvider selects the live ShipsGo adapter or the mock
// provider depending on whether an API key is configured. Without a key the
// gateway still serves synthetic results so local development needs no
// credentials.
func buildTrackingProvider(cfg *config.Config, log *zap.Logger) (tracking.Provider, tracking.Provider, apptracking.Options) {
	opts := apptracking.Options{
		RateLimitCeiling: cfg.HTTP.RateLimitRequests,
	}

	if cfg.Provider.APIKey == "" {
		log.Warn("No provider API key configured, serving mock tracking data")
		opts.MockMode = true
		return shipsgo.NewMockProvider(), nil, opts
	}

	providerCfg := &shipsgo.Config{
		APIKey:         cfg.Provider.APIKey,
		Flavor:         cfg.Provider.Flavor,
		V2BaseURL:      cfg.Provider.V2BaseURL,
		LegacyBaseURL:  cfg.Provider.LegacyBaseURL,
		TimeoutSeconds: cfg.Provider.TimeoutSeconds,
	}
	adapter, err := shipsgo.NewAdapter(providerCfg)
	if err != nil {
		log.Fatal("Failed to initialize tracking provider", zap.Error(err))
	}

	opts.Configured = true
	if providerCfg.Flavor == shipsgo.FlavorLegacy {
		opts.ProviderBaseURL = providerCfg.LegacyBaseURL
	} else {
		opts.ProviderBaseURL = providerCfg.V2BaseURL
	}

	var fallback tracking.Provider
	if cfg.Provider.FallbackToMock {
		fallback = shipsgo.NewMockProvider()
	}
	return adapter, fallback, opts
}

// buildRateLimiter picks the limiter strategy. The in-memory limiter is
// per-process; the Redis limiter shares the window across instances.
func buildRateLimiter(cfg *config.Config) (ratelimit.Limiter, error) {
	limit := int64(cfg.HTTP.RateLimitRequests)
	window := cfg.HTTP.RateLimitWindow

	if cfg.HTTP.RateLimitStrategy == "redis" {
		limiter, err := ratelimit.NewRedisLimiter(ratelimit.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.HTTP.RateLimitKeyPrefix, limit, window)
		if err != nil {
			return nil, err
		}
		return limiter, nil
	}
	return ratelimit.NewInMemoryLimiter(limit, window), nil
}

// healthHandler reports process liveness and database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
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

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	accountapp "github.com/salon/backend/internal/application/account"
	catalogapp "github.com/salon/backend/internal/application/catalog"
	crmapp "github.com/salon/backend/internal/application/crm"
	menuapp "github.com/salon/backend/internal/application/menu"
	"github.com/salon/backend/internal/infrastructure/cache"
	"github.com/salon/backend/internal/infrastructure/config"
	"github.com/salon/backend/internal/infrastructure/event"
	"github.com/salon/backend/internal/infrastructure/logger"
	"github.com/salon/backend/internal/infrastructure/persistence"
	"github.com/salon/backend/internal/infrastructure/telemetry"
	"github.com/salon/backend/internal/interfaces/http/handler"
	"github.com/salon/backend/internal/interfaces/http/middleware"
	"github.com/salon/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			Salon Backend API
//	@version		1.0
//	@description	Salon CRM backend - customer, retail catalog, client account and menu management.

//	@contact.name	API Support
//	@contact.email	support@salon.example.com

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize base logger first so telemetry bootstrap has somewhere to log
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

	log.Info("Starting Salon Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Initialize OTEL tracer provider (no-op when telemetry is disabled)
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize OTEL meter provider
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Initialize OTEL logs provider and bridge zap into it so application
	// logs reach the collector alongside traces and metrics
	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logs provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := logsProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down logs provider", zap.Error(err))
		}
	}()

	if cfg.Telemetry.Enabled {
		bridged, err := telemetry.CreateBridgedLoggerFromConfig(&telemetry.BaseLoggerConfig{
			Level:      cfg.Log.Level,
			Format:     cfg.Log.Format,
			Output:     cfg.Log.Output,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		}, logsProvider, cfg.Telemetry.ServiceName)
		if err != nil {
			log.Warn("Failed to create OTEL-bridged logger, keeping base logger", zap.Error(err))
		} else {
			log = bridged
		}
	}

	// Continuous profiling via Pyroscope (no-op when disabled)
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:             cfg.Telemetry.ProfilerEnabled,
		ServerAddress:       cfg.Telemetry.ProfilerEndpoint,
		ApplicationName:     cfg.Telemetry.ServiceName,
		ProfileCPU:          true,
		ProfileAllocObjects: true,
		ProfileAllocSpace:   true,
		ProfileInuseObjects: true,
		ProfileInuseSpace:   true,
		ProfileGoroutines:   true,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

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

	// Register query tracing and pool/query metrics on the GORM instance
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:          cfg.Telemetry.Enabled,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "postgresql",
		WithoutVariables: true,
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DefaultDBMetricsConfig(), log)
	if err != nil {
		log.Warn("Failed to register database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		defer dbMetrics.Stop()
	}

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	menuItemRepo := persistence.NewGormMenuItemRepository(db.DB)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Audit log of every domain event
	loggingHandler := event.NewLoggingEventHandler(log)
	eventBus.Subscribe(loggingHandler)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Menu read cache: Redis when available, in-memory fallback otherwise
	menuCache, err := cache.NewMenuCacheFactory(cfg.Redis, cfg.Cache,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	).CreateMenuCache()
	if err != nil {
		log.Fatal("Failed to initialize menu cache", zap.Error(err))
	}
	if menuCache != nil {
		log.Info("Menu cache enabled", zap.Duration("ttl", cfg.Cache.MenuTTL))
	}

	// Initialize application services
	customerService := crmapp.NewCustomerService(customerRepo, eventBus)
	productService := catalogapp.NewProductService(productRepo, eventBus)
	clientService := accountapp.NewClientService(clientRepo, eventBus)
	menuItemService := menuapp.NewMenuItemService(menuItemRepo, menuCache, eventBus)

	// Business metrics (visits, points, low stock, expiring contracts)
	if meterProvider.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:            meterProvider.Meter("salon.business"),
			Logger:           log,
			StockProvider:    telemetry.NewGormStockMetricsProvider(db.DB),
			ContractProvider: telemetry.NewGormContractMetricsProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to initialize business metrics", zap.Error(err))
		} else {
			businessMetrics.StartPeriodicCollection(context.Background(), 5*time.Minute)
			defer businessMetrics.Stop()
			customerService.SetMetricsRecorder(businessMetrics)
			menuItemService.SetCacheMetricsRecorder(businessMetrics)
			log.Info("Business metrics collection started")
		}
	}

	// Initialize HTTP handlers
	customerHandler := handler.NewCustomerHandler(customerService)
	productHandler := handler.NewProductHandler(productService)
	clientHandler := handler.NewClientHandler(clientService)
	menuItemHandler := handler.NewMenuItemHandler(menuItemService)
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
	// 4. Tracing/Metrics/Profiling - Telemetry instrumentation
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
		engine.Use(middleware.TracingAttributeInjector())
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       true,
		}))
	}
	if cfg.Telemetry.ProfilerEnabled {
		engine.Use(middleware.ProfilingWithConfig(middleware.DefaultProfilingConfig()))
	}

	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// CRM domain (salon customers, loyalty, visits)
	crmRoutes := router.NewDomainGroup("crm", "/crm")
	crmRoutes.POST("/customers", customerHandler.Create)
	crmRoutes.GET("/customers", customerHandler.List)
	crmRoutes.GET("/customers/:id", customerHandler.Get)
	crmRoutes.PUT("/customers/:id", customerHandler.Update)
	crmRoutes.DELETE("/customers/:id", customerHandler.Delete)
	crmRoutes.POST("/customers/:id/points/earn", customerHandler.EarnPoints)
	crmRoutes.POST("/customers/:id/points/redeem", customerHandler.RedeemPoints)
	crmRoutes.POST("/customers/:id/visits", customerHandler.RecordVisit)
	crmRoutes.POST("/customers/:id/activate", customerHandler.Activate)
	crmRoutes.POST("/customers/:id/deactivate", customerHandler.Deactivate)

	// Catalog domain (retail products, stock)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/sku/:sku", productHandler.GetBySKU)
	catalogRoutes.GET("/products/:id", productHandler.Get)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)
	catalogRoutes.POST("/products/:id/stock/restock", productHandler.Restock)
	catalogRoutes.POST("/products/:id/stock/deduct", productHandler.DeductStock)
	catalogRoutes.PUT("/products/:id/stock/threshold", productHandler.SetLowStockThreshold)
	catalogRoutes.PUT("/products/:id/duration", productHandler.UpdateDuration)
	catalogRoutes.POST("/products/:id/activate", productHandler.Activate)
	catalogRoutes.POST("/products/:id/deactivate", productHandler.Deactivate)

	// Accounts domain (corporate clients, billing)
	accountRoutes := router.NewDomainGroup("accounts", "/accounts")
	accountRoutes.POST("/clients", clientHandler.Create)
	accountRoutes.GET("/clients", clientHandler.List)
	accountRoutes.GET("/clients/:id", clientHandler.Get)
	accountRoutes.PUT("/clients/:id", clientHandler.Update)
	accountRoutes.DELETE("/clients/:id", clientHandler.Delete)
	accountRoutes.POST("/clients/:id/contacts", clientHandler.AddSecondaryContact)
	accountRoutes.DELETE("/clients/:id/contacts/:email", clientHandler.RemoveSecondaryContact)
	accountRoutes.PUT("/clients/:id/contacts/primary", clientHandler.ReplacePrimaryContact)
	accountRoutes.POST("/clients/:id/charges", clientHandler.AddCharge)
	accountRoutes.POST("/clients/:id/payments", clientHandler.ProcessPayment)
	accountRoutes.PUT("/clients/:id/credit-terms", clientHandler.UpdateCreditTerms)
	accountRoutes.PUT("/clients/:id/contract", clientHandler.SetContractPeriod)
	accountRoutes.POST("/clients/:id/activate", clientHandler.Activate)
	accountRoutes.POST("/clients/:id/deactivate", clientHandler.Deactivate)

	// Menu domain (service menu items)
	menuRoutes := router.NewDomainGroup("menu", "/menu")
	menuRoutes.POST("/items", menuItemHandler.Create)
	menuRoutes.GET("/items", menuItemHandler.List)
	menuRoutes.GET("/items/:id", menuItemHandler.Get)
	menuRoutes.PUT("/items/:id", menuItemHandler.Update)
	menuRoutes.DELETE("/items/:id", menuItemHandler.Delete)
	menuRoutes.GET("/published", menuItemHandler.Published)
	menuRoutes.PUT("/items/:id/category", menuItemHandler.ChangeCategory)
	menuRoutes.PUT("/items/:id/duration", menuItemHandler.ChangeDuration)
	menuRoutes.PUT("/items/:id/price", menuItemHandler.ChangePrice)
	menuRoutes.PUT("/items/:id/services", menuItemHandler.SetIncludedServices)
	menuRoutes.PUT("/items/:id/requirements", menuItemHandler.SetRequirements)
	menuRoutes.PUT("/items/:id/benefits", menuItemHandler.SetBenefits)
	menuRoutes.PUT("/items/:id/advance-booking", menuItemHandler.SetAdvanceBooking)
	menuRoutes.PUT("/items/:id/seasonal-window", menuItemHandler.SetSeasonalWindow)
	menuRoutes.PUT("/items/:id/display-order", menuItemHandler.SetDisplayOrder)
	menuRoutes.PUT("/items/:id/tags", menuItemHandler.SetTags)
	menuRoutes.POST("/items/:id/activate", menuItemHandler.Activate)
	menuRoutes.POST("/items/:id/deactivate", menuItemHandler.Deactivate)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(crmRoutes).
		Register(catalogRoutes).
		Register(accountRoutes).
		Register(menuRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
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

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/opsuite/backend/internal/application/catalog"
	checkoutapp "github.com/opsuite/backend/internal/application/checkout"
	financeapp "github.com/opsuite/backend/internal/application/finance"
	identityapp "github.com/opsuite/backend/internal/application/identity"
	inventoryapp "github.com/opsuite/backend/internal/application/inventory"
	salesapp "github.com/opsuite/backend/internal/application/sales"
	"github.com/opsuite/backend/internal/infrastructure/cache"
	"github.com/opsuite/backend/internal/infrastructure/config"
	"github.com/opsuite/backend/internal/infrastructure/logger"
	"github.com/opsuite/backend/internal/infrastructure/persistence"
	"github.com/opsuite/backend/internal/interfaces/http/handler"
	"github.com/opsuite/backend/internal/interfaces/http/middleware"
	"github.com/opsuite/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

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

	log.Info("Starting OpSuite Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
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
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	lotRepo := persistence.NewGormLotRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	overrideRepo := persistence.NewGormOverrideRecordRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerEntryRepository(db.DB)

	// Transaction scopes
	checkoutScope := persistence.NewGormCheckoutTransactionScope(db.DB)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)

	// Initialize application services
	tenantService := identityapp.NewTenantService(tenantRepo)
	productService := catalogapp.NewProductService(productRepo)
	inventoryService := inventoryapp.NewInventoryService(productRepo, lotRepo, movementRepo, inventoryScope)
	checkoutService := checkoutapp.NewCheckoutService(tenantRepo, productRepo, lotRepo, movementRepo, checkoutScope)
	salesService := salesapp.NewSalesService(saleRepo, overrideRepo)
	financeService := financeapp.NewFinanceService(ledgerRepo)

	// Idempotency store for checkout finalization. Redis when available so
	// keys survive restarts and are shared across instances.
	if cfg.Redis.Enabled {
		store, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		checkoutService.SetIdempotencyStore(store)
		log.Info("Checkout idempotency backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		checkoutService.SetIdempotencyStore(cache.NewInMemoryIdempotencyStore())
		log.Info("Checkout idempotency backed by in-process store")
	}
	checkoutService.SetIdempotencyTTL(cfg.Checkout.IdempotencyTTL)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db.DB)
	tenantHandler := handler.NewTenantHandler(tenantService)
	productHandler := handler.NewProductHandler(productService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	inventoryHandler.SetExpiryLookaheadDays(cfg.Checkout.ExpiryLookaheadDays)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	saleHandler := handler.NewSaleHandler(salesService)
	financeHandler := handler.NewFinanceHandler(financeService)

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
	// 7. Tenant - Resolve the tenant from X-Tenant-ID
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Tenant resolution for everything under /api/v1 except health and
	// tenant registration
	tenantConfig := middleware.DefaultTenantConfig()
	tenantConfig.Logger = log
	engine.Use(middleware.TenantMiddlewareWithConfig(tenantConfig))

	// Health endpoints outside the versioned API
	engine.GET("/health", healthHandler.Health)
	engine.GET("/healthz", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/api/v1/health", healthHandler.Health)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	tenantRoutes := router.NewDomainGroup("identity", "/tenants")
	tenantRoutes.POST("", tenantHandler.Create)
	tenantRoutes.GET("/:id", tenantHandler.Get)
	tenantRoutes.PUT("/:id/expired-lot-policy", tenantHandler.SetExpiredLotPolicy)

	productRoutes := router.NewDomainGroup("catalog", "/products")
	productRoutes.POST("", productHandler.Create)
	productRoutes.GET("", productHandler.List)
	productRoutes.GET("/:id", productHandler.Get)
	productRoutes.PUT("/:id", productHandler.Update)
	productRoutes.DELETE("/:id", productHandler.Deactivate)

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/receipts", inventoryHandler.ReceiveStock)
	inventoryRoutes.GET("/products/:id/balance", inventoryHandler.ProductBalance)
	inventoryRoutes.GET("/products/:id/lots", inventoryHandler.LotBalances)
	inventoryRoutes.GET("/expiring", inventoryHandler.ExpiringLots)
	inventoryRoutes.GET("/below-minimum", inventoryHandler.BelowMinimum)
	inventoryRoutes.GET("/movements", inventoryHandler.ListMovements)

	checkoutRoutes := router.NewDomainGroup("checkout", "/checkout")
	checkoutRoutes.POST("/finalize", checkoutHandler.Finalize)
	checkoutRoutes.POST("/precheck", checkoutHandler.Precheck)

	salesRoutes := router.NewDomainGroup("sales", "/sales")
	salesRoutes.GET("", saleHandler.List)
	salesRoutes.GET("/:id", saleHandler.Get)

	overrideRoutes := router.NewDomainGroup("overrides", "/overrides")
	overrideRoutes.GET("", saleHandler.ListOverrides)

	financeRoutes := router.NewDomainGroup("finance", "/finance")
	financeRoutes.POST("/entries", financeHandler.CreateEntry)
	financeRoutes.GET("/entries", financeHandler.ListEntries)
	financeRoutes.GET("/entries/:id", financeHandler.GetEntry)
	financeRoutes.GET("/summary", financeHandler.Summary)

	r.Register(tenantRoutes).
		Register(productRoutes).
		Register(inventoryRoutes).
		Register(checkoutRoutes).
		Register(salesRoutes).
		Register(overrideRoutes).
		Register(financeRoutes)
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

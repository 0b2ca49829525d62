package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/sangkips/inventra-api/internal/application/service"
	"github.com/sangkips/inventra-api/internal/config"
	domainRepo "github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/infrastructure/database"
	"github.com/sangkips/inventra-api/internal/infrastructure/lock"
	"github.com/sangkips/inventra-api/internal/infrastructure/repository"
	"github.com/sangkips/inventra-api/internal/presentation/http/handler"
	"github.com/sangkips/inventra-api/internal/presentation/http/middleware"
	"github.com/sangkips/inventra-api/internal/presentation/http/routes"
	"github.com/sangkips/inventra-api/pkg/logger"
	"github.com/sangkips/inventra-api/pkg/utils"
)

const idempotencySweepInterval = time.Hour

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.Init(cfg.Log.Level)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, log); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Seed default data
	if err := database.SeedDefaultData(ctx, db, cfg.Seed, log); err != nil {
		log.WithError(err).Warn("Failed to seed default data")
	}

	locker, closeLocker := newLocker(ctx, cfg.Redis, log)
	defer closeLocker()

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	stockRepo := repository.NewStockRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	bomRepo := repository.NewBOMRepository(db)
	manufactureRepo := repository.NewManufactureOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	returnRepo := repository.NewSaleReturnRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	tx := service.Tx{
		Manager:   repository.NewTxManager(db),
		Sequencer: repository.NewSequencer(db),
		Locker:    locker,
	}
	region := cfg.App.DefaultRegion

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, categoryRepo, brandRepo, stockRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	brandService := service.NewBrandService(brandRepo)
	warehouseService := service.NewWarehouseService(warehouseRepo, stockRepo, region)
	stockService := service.NewStockService(tx, stockRepo, productRepo, warehouseRepo)
	transferService := service.NewTransferService(tx, transferRepo, productRepo, warehouseRepo, stockRepo)
	bomService := service.NewBOMService(tx, bomRepo, manufactureRepo, productRepo, stockRepo)
	manufactureService := service.NewManufactureService(tx, manufactureRepo, bomRepo, warehouseRepo, productRepo, stockRepo)
	customerService := service.NewCustomerService(tx, customerRepo, region)
	supplierService := service.NewSupplierService(tx, supplierRepo, region)
	purchaseService := service.NewPurchaseService(tx, purchaseRepo, supplierRepo, warehouseRepo, productRepo, stockRepo)
	saleService := service.NewSaleService(tx, saleRepo, customerRepo, productRepo, warehouseRepo, stockRepo, cfg.Sales.TaxRate)
	returnService := service.NewReturnService(tx, returnRepo, saleRepo, customerRepo, productRepo, stockRepo, cfg.Sales.ReturnPolicy)
	dashboardService := service.NewDashboardService(dashboardRepo)
	reportService := service.NewReportService(stockRepo, customerService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(userService),
		Product:     handler.NewProductHandler(productService),
		Category:    handler.NewCategoryHandler(categoryService),
		Brand:       handler.NewBrandHandler(brandService),
		Warehouse:   handler.NewWarehouseHandler(warehouseService, stockService),
		Transfer:    handler.NewTransferHandler(transferService),
		BOM:         handler.NewBOMHandler(bomService),
		Manufacture: handler.NewManufactureHandler(manufactureService),
		Customer:    handler.NewCustomerHandler(customerService, reportService),
		Supplier:    handler.NewSupplierHandler(supplierService),
		Purchase:    handler.NewPurchaseHandler(purchaseService),
		Sale:        handler.NewSaleHandler(saleService),
		Return:      handler.NewReturnHandler(returnService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Report:      handler.NewReportHandler(reportService),
	}

	limiter := newRateLimiter(cfg.RateLimit)
	if limiter != nil {
		defer limiter.Stop()
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          log,
		RateLimiter:     limiter,
	})

	go sweepIdempotencyKeys(ctx, idempotencyRepo, log)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port": port,
			"env":  cfg.App.Env,
		}).Infof("Starting %s server", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		os.Exit(1)
	}
	log.Info("Server exited")
}

// newLocker uses redis when an address is configured and falls back to
// in-process locks otherwise
func newLocker(ctx context.Context, cfg config.RedisConfig, log *logrus.Logger) (domainRepo.Locker, func()) {
	if cfg.Address == "" {
		log.Info("Redis not configured, using in-process locks")
		return lock.NewLocalLocker(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.WithError(err).Fatal("Failed to connect to redis")
	}

	log.WithField("address", cfg.Address).Info("Using redis locks")
	return lock.NewRedisLocker(rdb, cfg.LockTTL, log), func() {
		if err := rdb.Close(); err != nil {
			log.WithError(err).Warn("Failed to close redis client")
		}
	}
}

// newRateLimiter converts "N requests per D seconds" into a token bucket.
// A non-positive request count disables limiting.
func newRateLimiter(cfg config.RateLimitConfig) *middleware.RateLimiter {
	if cfg.Requests <= 0 {
		return nil
	}
	seconds := cfg.Duration
	if seconds <= 0 {
		seconds = 60
	}

	rlCfg := middleware.DefaultRateLimiterConfig()
	rlCfg.RequestsPerSecond = float64(cfg.Requests) / float64(seconds)
	rlCfg.BurstSize = cfg.Requests
	return middleware.NewRateLimiter(rlCfg)
}

func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *logrus.Logger) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.WithError(err).Warn("Failed to delete expired idempotency keys")
			}
		}
	}
}

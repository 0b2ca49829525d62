package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sangkips/inventra-api/internal/config"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	domainRepo "github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/presentation/http/dto/request"
	"github.com/sangkips/inventra-api/internal/presentation/http/handler"
	"github.com/sangkips/inventra-api/internal/presentation/http/middleware"
	"github.com/sangkips/inventra-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Product     *handler.ProductHandler
	Category    *handler.CategoryHandler
	Brand       *handler.BrandHandler
	Warehouse   *handler.WarehouseHandler
	Transfer    *handler.TransferHandler
	BOM         *handler.BOMHandler
	Manufacture *handler.ManufactureHandler
	Customer    *handler.CustomerHandler
	Supplier    *handler.SupplierHandler
	Purchase    *handler.PurchaseHandler
	Sale        *handler.SaleHandler
	Return      *handler.ReturnHandler
	Dashboard   *handler.DashboardHandler
	Report      *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *logrus.Logger
	// RateLimiter is optional; nil disables rate limiting
	RateLimiter *middleware.RateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	request.RegisterValidators()

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Logger: deps.Logger,
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		public := v1.Group("")
		if deps.RateLimiter != nil {
			public.Use(deps.RateLimiter.Middleware())
		}
		registerAuthRoutes(public, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, idempotent)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	// Profile
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	registerCatalogRoutes(protected, h)
	registerStockRoutes(protected, h, idempotent)
	registerProductionRoutes(protected, h, idempotent)
	registerCustomerRoutes(protected, h, idempotent)
	registerSupplierRoutes(protected, h, idempotent)
	registerSalesRoutes(protected, h, idempotent)
	registerReportRoutes(protected, h)
	registerUserRoutes(protected, h)
}

// Catalog reads are open to every signed-in user, writes need manage-catalog
func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	manage := middleware.RequirePermission(enum.PermissionManageCatalog)

	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", manage, h.Product.Create)
		products.PUT("/:id", manage, h.Product.Update)
		products.DELETE("/:id", manage, h.Product.Delete)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", manage, h.Category.Create)
		categories.PUT("/:id", manage, h.Category.Update)
		categories.DELETE("/:id", manage, h.Category.Delete)
	}

	brands := protected.Group("/brands")
	{
		brands.GET("", h.Brand.List)
		brands.GET("/:id", h.Brand.Get)
		brands.POST("", manage, h.Brand.Create)
		brands.PUT("/:id", manage, h.Brand.Update)
		brands.DELETE("/:id", manage, h.Brand.Delete)
	}
}

func registerStockRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	warehouses := protected.Group("/warehouses")
	warehouses.Use(middleware.RequirePermission(enum.PermissionManageStock))
	{
		warehouses.GET("", h.Warehouse.List)
		warehouses.POST("", h.Warehouse.Create)
		warehouses.GET("/:id", h.Warehouse.Get)
		warehouses.PUT("/:id", h.Warehouse.Update)
		warehouses.DELETE("/:id", h.Warehouse.Delete)
	}

	stock := protected.Group("/stock")
	stock.Use(middleware.RequirePermission(enum.PermissionManageStock))
	{
		stock.GET("", h.Warehouse.ListStock)
		stock.POST("", h.Warehouse.OpenStock)
		stock.GET("/adjustments", h.Warehouse.ListAdjustments)
		stock.GET("/:id", h.Warehouse.GetStock)
		stock.PUT("/:id/limits", h.Warehouse.UpdateLimits)
		stock.POST("/:id/adjust", idempotent, h.Warehouse.Adjust)
	}

	transfers := protected.Group("/transfers")
	transfers.Use(middleware.RequirePermission(enum.PermissionManageStock))
	{
		transfers.GET("", h.Transfer.List)
		transfers.POST("", idempotent, h.Transfer.Create)
		transfers.GET("/:id", h.Transfer.Get)
		transfers.PUT("/:id/status", h.Transfer.UpdateStatus)
	}
}

func registerProductionRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	boms := protected.Group("/boms")
	boms.Use(middleware.RequirePermission(enum.PermissionManageProduction))
	{
		boms.GET("", h.BOM.List)
		boms.POST("", h.BOM.Create)
		boms.GET("/:id", h.BOM.Get)
		boms.GET("/:id/availability", h.BOM.Availability)
		boms.PUT("/:id", h.BOM.Update)
		boms.DELETE("/:id", h.BOM.Delete)
	}

	orders := protected.Group("/manufacture-orders")
	orders.Use(middleware.RequirePermission(enum.PermissionManageProduction))
	{
		orders.GET("", h.Manufacture.List)
		orders.POST("", idempotent, h.Manufacture.Create)
		orders.GET("/:id", h.Manufacture.Get)
		orders.PUT("/:id/status", h.Manufacture.UpdateStatus)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission(enum.PermissionManageCustomers))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/payments", h.Customer.ListPayments)
		customers.POST("/:id/payments", idempotent, h.Customer.RecordPayment)
		customers.DELETE("/:id/payments/:paymentId", h.Customer.DeletePayment)
		customers.GET("/:id/ledger", h.Customer.Ledger)
		customers.GET("/:id/ledger/export", h.Customer.ExportLedger)
		customers.GET("/:id/statement", h.Customer.Statement)
		customers.POST("/:id/reconcile", h.Customer.Reconcile)
	}
}

func registerSupplierRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	suppliers := protected.Group("/suppliers")
	suppliers.Use(middleware.RequirePermission(enum.PermissionManageSuppliers))
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
		suppliers.GET("/:id/payments", h.Supplier.ListPayments)
		suppliers.POST("/:id/payments", idempotent, h.Supplier.RecordPayment)
		suppliers.DELETE("/:id/payments/:paymentId", h.Supplier.DeletePayment)
		suppliers.POST("/:id/reconcile", h.Supplier.Reconcile)
	}

	purchases := protected.Group("/purchases")
	purchases.Use(middleware.RequirePermission(enum.PermissionManageSuppliers))
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", idempotent, h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.POST("/:id/receive", h.Purchase.Receive)
		purchases.POST("/:id/cancel", h.Purchase.Cancel)
	}
}

func registerSalesRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission(enum.PermissionManageSales))
	{
		sales.GET("", h.Sale.List)
		sales.POST("", idempotent, h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
	}

	returns := protected.Group("/returns")
	returns.Use(middleware.RequirePermission(enum.PermissionManageSales))
	{
		returns.GET("", h.Return.List)
		returns.POST("", idempotent, h.Return.Create)
		returns.GET("/:id", h.Return.Get)
		returns.POST("/:id/approve", h.Return.Approve)
		returns.POST("/:id/reject", h.Return.Reject)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission(enum.PermissionViewReports))
	{
		reports.GET("/stock/export", h.Report.ExportStock)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission(enum.PermissionManageUsers))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}

	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission(enum.PermissionManageUsers))
	{
		roles.GET("", h.User.ListRoles)
	}
}

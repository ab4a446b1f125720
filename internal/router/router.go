package router

import (
	"context"
	"time"

	"unboxx/internal/config"
	"unboxx/internal/handler"
	"unboxx/internal/infra"
	"unboxx/internal/middleware"
	"unboxx/internal/model"
	"unboxx/internal/realtime"
	"unboxx/internal/repository"
	"unboxx/internal/service"
	"unboxx/internal/viewstate"
	"unboxx/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// viewStateTTL bounds how long an idle user's expanded rows are remembered.
const viewStateTTL = 7 * 24 * time.Hour

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
//
// rdb may be nil: the dashboard is then uncached, row expansion is kept in
// memory and orders are created without queueing confirmation jobs.
// ctx bounds the background dashboard cache invalidator.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, hub *realtime.Hub) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	if cfg.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimiter(cfg.RateLimitPerMin, time.Minute))
	}

	// ── Infrastructure ───────────────────────────────────────────────────────
	var (
		rows  viewstate.Store = viewstate.NewMemory()
		cache service.Cache
		jobs  service.OrderJobs
	)
	if rdb != nil {
		rows = viewstate.NewRedis(rdb, viewStateTTL)
		cache = infra.NewRedisCache(rdb)
		jobs = worker.NewDispatcher(rdb)
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	authUserRepo := repository.NewAuthUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(authUserRepo, profileRepo, cfg)
	profileSvc := service.NewProfileService(profileRepo)
	companySvc := service.NewCompanyService(customerRepo, profileRepo)
	orderSvc := service.NewOrderService(orderRepo, profileRepo, jobs)
	inventorySvc := service.NewInventoryService(productRepo, rows)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, profileRepo)
	dashboardSvc := service.NewDashboardService(reportRepo, productRepo, profileRepo, cache, time.Duration(cfg.DashboardCacheTTLSeconds)*time.Second)
	reportSvc := service.NewReportService(reportRepo, profileRepo)

	if cache != nil {
		service.StartDashboardInvalidator(ctx, hub, dashboardSvc)
	}

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, handler.SessionCookie{
		Name:   cfg.SessionCookie,
		MaxAge: cfg.JWTExpirationHours * 3600,
		Secure: cfg.Env == "production",
	})
	profileH := handler.NewProfileHandler(profileSvc)
	companyH := handler.NewCompanyHandler(companySvc)
	ordersH := handler.NewOrdersHandler(orderSvc, hub)
	inventoryH := handler.NewInventoryHandler(inventorySvc, hub)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc, hub)
	dashboardH := handler.NewDashboardHandler(dashboardSvc, reportSvc, hub)
	realtimeH := handler.NewRealtimeHandler(hub, infra.WatchedTables)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/logout", authH.Logout)
	}

	// Protected routes; every role may read, scoping happens in the services.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret, cfg.SessionCookie, cfg.LoginPath)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		v1.GET("/profile", profileH.Get)
		v1.PUT("/profile", profileH.Save)
		v1.PATCH("/profile/personal", profileH.UpdatePersonal)

		v1.GET("/company", companyH.Get)
		v1.PUT("/company", companyH.Save)

		orders := v1.Group("/orders")
		{
			orders.GET("", ordersH.List)
			orders.POST("", ordersH.Create)
			orders.GET("/live", ordersH.Live)
			orders.GET("/:id", ordersH.Get)
			orders.GET("/:id/pdf", ordersH.PDF)
			orders.PATCH("/:id/status", adminOnly, ordersH.UpdateStatus)
		}

		inv := v1.Group("/inventory")
		{
			inv.GET("", inventoryH.List)
			inv.GET("/stores", inventoryH.Stores)
			inv.GET("/live", inventoryH.Live)
			inv.POST("/toggle-all", inventoryH.ToggleAll)
			inv.POST("/:id/toggle", inventoryH.Toggle)
			inv.PATCH("/variants/:id/stock", adminOnly, inventoryH.SetVariantStock)
		}

		invoices := v1.Group("/invoices")
		{
			invoices.GET("", invoicesH.List)
			invoices.GET("/export", invoicesH.Export)
			invoices.GET("/live", invoicesH.Live)
		}

		v1.GET("/dashboard", dashboardH.Get)
		v1.GET("/dashboard/live", dashboardH.Live)
		v1.GET("/reports", dashboardH.Reports)

		v1.GET("/realtime/:table", realtimeH.Stream)
	}

	return r
}

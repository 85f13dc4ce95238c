package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/it-inventory/backend/internal/config"
	"github.com/it-inventory/backend/internal/http/handlers"
	"github.com/it-inventory/backend/internal/middleware"
	"github.com/it-inventory/backend/internal/rbac"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	employeeHandler *handlers.EmployeeHandler,
	assetHandler *handlers.AssetHandler,
	allocationHandler *handlers.AllocationHandler,
	auditHandler *handlers.AuditHandler,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// Auth (public, rate-limited against brute force)
	authGroup := api.Group("/auth", middleware.RateLimitMiddleware(rdb, cfg.AuthRateLimit, cfg.AuthRateWindow))
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a valid token
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	protected.Get("/me", authHandler.Me)

	viewInventory := middleware.RequirePermission(rbac.PermViewInventory)
	manageEmployees := middleware.RequirePermission(rbac.PermManageEmployees)
	manageAssets := middleware.RequirePermission(rbac.PermManageAssets)
	allocate := middleware.RequirePermission(rbac.PermAllocateAssets)

	// Employees
	protected.Get("/employees", viewInventory, employeeHandler.List)
	protected.Get("/employees/:id", viewInventory, employeeHandler.Get)
	protected.Post("/employees", manageEmployees, employeeHandler.Create)
	protected.Put("/employees/:id", manageEmployees, employeeHandler.Update)
	protected.Delete("/employees/:id", manageEmployees, employeeHandler.Delete)
	protected.Post("/employees/import", manageEmployees, employeeHandler.Import)

	// Assets
	protected.Get("/assets", viewInventory, assetHandler.List)
	protected.Get("/assets/:id", viewInventory, assetHandler.Get)
	protected.Post("/assets", manageAssets, assetHandler.Create)
	protected.Put("/assets/:id", manageAssets, assetHandler.Update)
	protected.Delete("/assets/:id", manageAssets, assetHandler.Delete)
	protected.Post("/assets/import", manageAssets, assetHandler.Import)
	protected.Patch("/assets/:id/status", middleware.RequirePermission(rbac.PermOverrideStatus), assetHandler.OverrideStatus)

	// Allocations
	protected.Post("/allocations/assign", allocate, allocationHandler.Assign)
	protected.Post("/allocations/return", allocate, allocationHandler.Return)
	protected.Get("/allocations", viewInventory, allocationHandler.List)
	protected.Get("/allocations/search", viewInventory, allocationHandler.Search)

	// Audit trail
	auditView := middleware.RequirePermission(rbac.PermViewAuditLogs)
	protected.Get("/audit-logs", auditView, auditHandler.List)
	protected.Get("/audit-logs/actions", auditView, auditHandler.Actions)
}

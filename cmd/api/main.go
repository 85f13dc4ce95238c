package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/it-inventory/backend/internal/config"
	"github.com/it-inventory/backend/internal/db"
	apphttp "github.com/it-inventory/backend/internal/http"
	"github.com/it-inventory/backend/internal/http/handlers"
	"github.com/it-inventory/backend/internal/repositories"
	"github.com/it-inventory/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	employeeRepo := repositories.NewEmployeeRepo(pool)
	assetRepo := repositories.NewAssetRepo(pool)
	allocationRepo := repositories.NewAllocationRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Services
	auditService := services.NewAuditService(auditRepo, log)
	allocationService := services.NewAllocationService(pool, employeeRepo, assetRepo, allocationRepo, auditService, log)
	employeeService := services.NewEmployeeService(employeeRepo, allocationRepo, auditService, log)
	assetService := services.NewAssetService(pool, assetRepo, auditService, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg, log)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, log)
	assetHandler := handlers.NewAssetHandler(assetService, log)
	allocationHandler := handlers.NewAllocationHandler(allocationService, allocationRepo, log)
	auditHandler := handlers.NewAuditHandler(auditService, log)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, employeeHandler, assetHandler, allocationHandler, auditHandler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

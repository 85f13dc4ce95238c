package main

import (
	"context"
	"errors"

	"github.com/it-inventory/backend/internal/auth"
	"github.com/it-inventory/backend/internal/config"
	"github.com/it-inventory/backend/internal/db"
	"github.com/it-inventory/backend/internal/models"
	"github.com/it-inventory/backend/internal/repositories"
	"go.uber.org/zap"
)

// Seed creates the initial super admin account from ADMIN_* env vars. Safe to
// run repeatedly: an existing account with the same username is left alone.
func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	if cfg.AdminPassword == "" || cfg.AdminEmail == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	userRepo := repositories.NewUserRepo(pool)

	existing, err := userRepo.GetByUsername(ctx, cfg.AdminUsername)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		log.Fatal("admin lookup failed", zap.Error(err))
	}
	if existing != nil {
		log.Info("admin account already exists", zap.String("username", existing.Username))
		return
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatal("password hash failed", zap.Error(err))
	}

	admin := &models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		FullName:     "Super Admin",
		Email:        cfg.AdminEmail,
		Role:         models.RoleSuperAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal("admin create failed", zap.Error(err))
	}
	log.Info("super admin created", zap.String("username", admin.Username), zap.String("id", admin.ID.String()))
}

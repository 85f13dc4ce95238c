package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/it-inventory/backend/internal/actor"
	"github.com/it-inventory/backend/internal/auth"
	"github.com/it-inventory/backend/internal/config"
	"github.com/it-inventory/backend/internal/rbac"
	"go.uber.org/zap"
)

const CtxActor = "actor"

// AuthMiddleware verifies the bearer token and threads the acting identity
// through both fiber locals and the request context, so services resolve the
// actor without touching the HTTP layer.
func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		act := actor.Actor{
			UserID:   claims.UserID,
			Username: claims.Username,
			FullName: claims.FullName,
			Email:    claims.Email,
			Role:     claims.Role,
		}
		c.Locals(CtxActor, act)
		c.SetUserContext(actor.NewContext(c.UserContext(), act))

		return c.Next()
	}
}

func GetActor(c *fiber.Ctx) (actor.Actor, bool) {
	a, ok := c.Locals(CtxActor).(actor.Actor)
	return a, ok
}

// RequirePermission gates a route on the actor's role having the given
// permission. It assumes AuthMiddleware already ran.
func RequirePermission(perm rbac.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		act, ok := GetActor(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		if !rbac.HasPermission(act.Role, perm) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
		}
		return c.Next()
	}
}

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/it-inventory/backend/internal/http/dto"
	"github.com/it-inventory/backend/internal/repositories"
	"github.com/it-inventory/backend/internal/services"
	"go.uber.org/zap"
)

type AuditHandler struct {
	audit *services.AuditService
	log   *zap.Logger
}

func NewAuditHandler(audit *services.AuditService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{audit: audit, log: log}
}

// List returns audit entries newest first. The service narrows visibility by
// the requesting actor's role before the query runs.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	limit, offset := paging(c)
	filter := repositories.AuditFilter{
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}
	if v := c.Query("action"); v != "" {
		filter.Action = &v
	}
	if v := c.Query("actor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid actor_id"})
		}
		filter.ActorID = &id
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid from, want RFC3339"})
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid to, want RFC3339"})
		}
		filter.To = &t
	}

	entries, total, err := h.audit.List(c.UserContext(), filter)
	if err != nil {
		h.log.Error("audit list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.PagedResponse{Items: entries, Total: total}})
}

func (h *AuditHandler) Actions(c *fiber.Ctx) error {
	actions, err := h.audit.Actions(c.UserContext())
	if err != nil {
		h.log.Error("audit actions failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: actions})
}

package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/it-inventory/backend/internal/http/dto"
	"github.com/it-inventory/backend/internal/repositories"
	"github.com/it-inventory/backend/internal/services"
)

const auditWarning = "change saved but its audit entry could not be written"

func paging(c *fiber.Ctx) (limit, offset int) {
	limit, offset = 20, 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// respondMutation maps a service mutation result onto HTTP. An audit write
// failure does not fail the request: the mutation committed, so the client
// gets the data plus a warning.
func respondMutation(c *fiber.Ctx, status int, data any, err error) error {
	if errors.Is(err, services.ErrAuditWrite) {
		return c.Status(status).JSON(dto.SuccessResponse{OK: true, Data: data, Warning: auditWarning})
	}
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(status).JSON(dto.SuccessResponse{OK: true, Data: data})
}

// serviceError maps the service error taxonomy onto status codes.
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, services.ErrUnknownEmployee),
		errors.Is(err, services.ErrAssetNotFound),
		errors.Is(err, services.ErrNoActiveAllocation),
		errors.Is(err, repositories.ErrNotFound):
		status, msg = fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrAssetNotAvailable),
		errors.Is(err, services.ErrDuplicate),
		errors.Is(err, services.ErrEmployeeHasAssets),
		errors.Is(err, services.ErrAssetAllocated):
		status, msg = fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrInvalidTransition):
		status, msg = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrAllocationInvariant):
		// Corrupt allocation state. Surfaced as-is so operators notice.
		status, msg = fiber.StatusInternalServerError, err.Error()
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
}

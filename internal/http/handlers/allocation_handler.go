package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/it-inventory/backend/internal/http/dto"
	"github.com/it-inventory/backend/internal/middleware"
	"github.com/it-inventory/backend/internal/models"
	"github.com/it-inventory/backend/internal/repositories"
	"github.com/it-inventory/backend/internal/services"
	"go.uber.org/zap"
)

type AllocationHandler struct {
	allocations *services.AllocationService
	history     *repositories.AllocationRepo
	log         *zap.Logger
}

func NewAllocationHandler(allocations *services.AllocationService, history *repositories.AllocationRepo, log *zap.Logger) *AllocationHandler {
	return &AllocationHandler{allocations: allocations, history: history, log: log}
}

// Assign hands an Available asset to an employee. Responds 409 when the asset
// is in any other status and 404 when the employee or asset does not exist.
func (h *AllocationHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.EmployeeEmail == "" || req.AssetID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "employee_email and asset_id are required"})
	}

	var handledBy *uuid.UUID
	if act, ok := middleware.GetActor(c); ok {
		id := act.UserID
		handledBy = &id
	}

	res, err := h.allocations.Assign(c.UserContext(), services.AssignParams{
		EmployeeEmail: req.EmployeeEmail,
		AssetID:       req.AssetID,
		HandledBy:     handledBy,
		Meta: models.AssignmentMetadata{
			AssignedDate:             req.AssignedDate,
			AllocationReason:         req.AllocationReason,
			AssetConditionOnAlloc:    req.AssetConditionOnAlloc,
			ChargerStatus:            req.ChargerStatus,
			BagStatus:                req.BagStatus,
			KeyboardAndTouchpadState: req.KeyboardAndTouchpadState,
			AllocationLocation:       req.AllocationLocation,
			DeliveryType:             req.DeliveryType,
			AllocationDocketID:       req.AllocationDocketID,
		},
	})
	return respondMutation(c, fiber.StatusCreated, res, err)
}

// Return takes an asset back from the employee currently holding it.
func (h *AllocationHandler) Return(c *fiber.Ctx) error {
	var req dto.ReturnAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.EmployeeEmail == "" || req.AssetID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "employee_email and asset_id are required"})
	}

	res, err := h.allocations.Return(c.UserContext(), services.ReturnParams{
		EmployeeEmail: req.EmployeeEmail,
		AssetID:       req.AssetID,
		Meta: models.ReturnMetadata{
			ReturnedDate:        req.ReturnedDate,
			ReturnReason:        req.ReturnReason,
			Purpose:             req.Purpose,
			AssetPowerStatus:    req.AssetPowerStatus,
			AssetScreenStatus:   req.AssetScreenStatus,
			ChargerReturnStatus: req.ChargerReturnStatus,
			BagReturnStatus:     req.BagReturnStatus,
			ReturnLocation:      req.ReturnLocation,
			ReturnDocketID:      req.ReturnDocketID,
			Remarks:             req.Remarks,
		},
	})
	return respondMutation(c, fiber.StatusOK, res, err)
}

// List returns allocation history, newest first.
func (h *AllocationHandler) List(c *fiber.Ctx) error {
	limit, offset := paging(c)
	filter := repositories.AllocationFilter{Limit: limit, Offset: offset}

	if v := c.Query("employee_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid employee_id"})
		}
		filter.EmployeeID = &id
	}
	if v := c.Query("asset_id"); v != "" {
		filter.AssetID = &v
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	list, err := h.history.List(c.UserContext(), filter)
	if err != nil {
		h.log.Error("allocation list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: list})
}

// Search matches allocation history against an asset or employee fragment.
// type=asset matches asset id and serial; type=employee matches name and
// email.
func (h *AllocationHandler) Search(c *fiber.Ctx) error {
	searchType := c.Query("type", "asset")
	if searchType != "asset" && searchType != "employee" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "type must be asset or employee"})
	}
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "q is required"})
	}
	limit, offset := paging(c)

	list, err := h.history.Search(c.UserContext(), searchType, query, limit, offset)
	if err != nil {
		h.log.Error("allocation search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: list})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/it-inventory/backend/internal/http/dto"
	"github.com/it-inventory/backend/internal/models"
	"github.com/it-inventory/backend/internal/repositories"
	"github.com/it-inventory/backend/internal/services"
	"go.uber.org/zap"
)

type EmployeeHandler struct {
	employees *services.EmployeeService
	log       *zap.Logger
}

func NewEmployeeHandler(employees *services.EmployeeService, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, log: log}
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.FullName == "" || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "full_name and email are required"})
	}

	e := &models.Employee{
		FullName:      req.FullName,
		Email:         req.Email,
		Designation:   req.Designation,
		Status:        req.Status,
		DateOfJoining: req.DateOfJoining,
	}
	err := h.employees.Create(c.UserContext(), e)
	return respondMutation(c, fiber.StatusCreated, e, err)
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid employee id"})
	}
	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	e, err := h.employees.Get(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Designation != nil {
		e.Designation = req.Designation
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	if req.DateOfJoining != nil {
		e.DateOfJoining = req.DateOfJoining
	}

	err = h.employees.Update(c.UserContext(), e)
	return respondMutation(c, fiber.StatusOK, e, err)
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid employee id"})
	}
	err = h.employees.Delete(c.UserContext(), id)
	return respondMutation(c, fiber.StatusOK, nil, err)
}

func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid employee id"})
	}
	e, err := h.employees.Get(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: e})
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	limit, offset := paging(c)
	filter := repositories.EmployeeFilter{
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	list, err := h.employees.List(c.UserContext(), filter)
	if err != nil {
		h.log.Error("employee list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: list})
}

// Import ingests a CSV upload. Bad rows are reported back per line without
// aborting the good ones.
func (h *EmployeeHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "multipart field 'file' is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cannot read uploaded file"})
	}
	defer f.Close()

	summary, err := h.employees.ImportCSV(c.UserContext(), f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: summary})
}

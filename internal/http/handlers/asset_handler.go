package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/it-inventory/backend/internal/http/dto"
	"github.com/it-inventory/backend/internal/models"
	"github.com/it-inventory/backend/internal/repositories"
	"github.com/it-inventory/backend/internal/services"
	"go.uber.org/zap"
)

type AssetHandler struct {
	assets *services.AssetService
	log    *zap.Logger
}

func NewAssetHandler(assets *services.AssetService, log *zap.Logger) *AssetHandler {
	return &AssetHandler{assets: assets, log: log}
}

func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.AssetID == "" || req.SerialNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "asset_id and serial_number are required"})
	}

	a := &models.Asset{
		AssetID:        req.AssetID,
		AssetType:      req.AssetType,
		Brand:          req.Brand,
		Model:          req.Model,
		SerialNumber:   req.SerialNumber,
		Processor:      req.Processor,
		RAMGB:          req.RAMGB,
		StorageSizeGB:  req.StorageSizeGB,
		PurchaseDate:   req.PurchaseDate,
		WarrantyExpiry: req.WarrantyExpiry,
		Status:         req.Status,
		Remarks:        req.Remarks,
	}
	err := h.assets.Create(c.UserContext(), a)
	return respondMutation(c, fiber.StatusCreated, a, err)
}

func (h *AssetHandler) Update(c *fiber.Ctx) error {
	assetID := c.Params("id")
	var req dto.UpdateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	a, err := h.assets.Get(c.UserContext(), assetID)
	if err != nil {
		return serviceError(c, err)
	}
	if req.AssetType != nil {
		a.AssetType = *req.AssetType
	}
	if req.SerialNumber != nil {
		a.SerialNumber = *req.SerialNumber
	}
	if req.Brand != nil {
		a.Brand = req.Brand
	}
	if req.Model != nil {
		a.Model = req.Model
	}
	if req.Processor != nil {
		a.Processor = req.Processor
	}
	if req.RAMGB != nil {
		a.RAMGB = req.RAMGB
	}
	if req.StorageSizeGB != nil {
		a.StorageSizeGB = req.StorageSizeGB
	}
	if req.PurchaseDate != nil {
		a.PurchaseDate = req.PurchaseDate
	}
	if req.WarrantyExpiry != nil {
		a.WarrantyExpiry = req.WarrantyExpiry
	}
	if req.Remarks != nil {
		a.Remarks = req.Remarks
	}

	err = h.assets.Update(c.UserContext(), a)
	return respondMutation(c, fiber.StatusOK, a, err)
}

// OverrideStatus applies a manual administrative transition, e.g. sending an
// asset to repair or retiring it. Allocation status moves stay with the
// allocation endpoints.
func (h *AssetHandler) OverrideStatus(c *fiber.Ctx) error {
	assetID := c.Params("id")
	var req dto.OverrideStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "status is required"})
	}

	a, err := h.assets.OverrideStatus(c.UserContext(), assetID, req.Status)
	return respondMutation(c, fiber.StatusOK, a, err)
}

func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	err := h.assets.Delete(c.UserContext(), c.Params("id"))
	return respondMutation(c, fiber.StatusOK, nil, err)
}

func (h *AssetHandler) Get(c *fiber.Ctx) error {
	a, err := h.assets.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: a})
}

func (h *AssetHandler) List(c *fiber.Ctx) error {
	limit, offset := paging(c)
	filter := repositories.AssetFilter{
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("type"); v != "" {
		filter.Type = &v
	}

	list, err := h.assets.List(c.UserContext(), filter)
	if err != nil {
		h.log.Error("asset list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: list})
}

func (h *AssetHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "multipart field 'file' is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cannot read uploaded file"})
	}
	defer f.Close()

	summary, err := h.assets.ImportCSV(c.UserContext(), f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: summary})
}

package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/it-inventory/backend/internal/models"
	"github.com/it-inventory/backend/internal/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type AssetService struct {
	pool   *pgxpool.Pool
	assets *repositories.AssetRepo
	audit  Auditor
	log    *zap.Logger
}

func NewAssetService(pool *pgxpool.Pool, assets *repositories.AssetRepo, audit Auditor, log *zap.Logger) *AssetService {
	return &AssetService{pool: pool, assets: assets, audit: audit, log: log}
}

func (s *AssetService) Create(ctx context.Context, a *models.Asset) error {
	if a.AssetType == "" {
		a.AssetType = "Laptop"
	}
	if a.Status == "" {
		a.Status = models.AssetStatusAvailable
	}
	if a.Status == models.AssetStatusAllocated {
		// Allocated is only reachable through the state machine.
		return fmt.Errorf("%w: cannot create an asset as %s", ErrInvalidTransition, models.AssetStatusAllocated)
	}
	if err := s.assets.Create(ctx, a); err != nil {
		if repositories.IsUniqueViolation(err) {
			return fmt.Errorf("%w: asset %s / serial %s", ErrDuplicate, a.AssetID, a.SerialNumber)
		}
		return err
	}
	return s.audit.Record(ctx, models.ActionAssetCreated, map[string]any{
		"asset_id":     a.AssetID,
		"asset_serial": a.SerialNumber,
		"asset_model":  a.Model,
	})
}

// Update edits the descriptive fields. Status is untouched here; it moves only
// through the state machine or OverrideStatus.
func (s *AssetService) Update(ctx context.Context, a *models.Asset) error {
	if err := s.assets.Update(ctx, a); err != nil {
		if repositories.IsUniqueViolation(err) {
			return fmt.Errorf("%w: serial %s", ErrDuplicate, a.SerialNumber)
		}
		return err
	}
	return s.audit.Record(ctx, models.ActionAssetUpdated, map[string]any{
		"asset_id":     a.AssetID,
		"asset_serial": a.SerialNumber,
		"asset_model":  a.Model,
	})
}

// OverrideStatus applies a manual administrative transition (Under Repair,
// Retired, back to Available). Guarded by the transition table and a
// compare-and-swap on the current status.
func (s *AssetService) OverrideStatus(ctx context.Context, assetID, newStatus string) (*models.Asset, error) {
	a, err := s.assets.GetByID(ctx, s.pool, assetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, assetID)
		}
		return nil, err
	}

	if !models.IsValidAssetTransition(a.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, newStatus)
	}

	if err := s.assets.OverrideStatus(ctx, assetID, a.Status, newStatus); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Someone changed the status between the read and the swap.
			return nil, fmt.Errorf("%w: %s changed concurrently", ErrInvalidTransition, assetID)
		}
		return nil, err
	}

	oldStatus := a.Status
	a.Status = newStatus
	auditErr := s.audit.Record(ctx, models.ActionAssetUpdated, map[string]any{
		"asset_id":     a.AssetID,
		"asset_serial": a.SerialNumber,
		"old_status":   oldStatus,
		"new_status":   newStatus,
	})
	return a, auditErr
}

// Delete removes an asset. Forbidden while the asset is Allocated.
func (s *AssetService) Delete(ctx context.Context, assetID string) error {
	a, err := s.assets.GetByID(ctx, s.pool, assetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrAssetNotFound, assetID)
		}
		return err
	}
	if a.Status == models.AssetStatusAllocated {
		return fmt.Errorf("%w: %s", ErrAssetAllocated, assetID)
	}

	if err := s.assets.Delete(ctx, assetID); err != nil {
		return err
	}
	return s.audit.Record(ctx, models.ActionAssetDeleted, map[string]any{
		"deleted_asset_id":     a.AssetID,
		"deleted_asset_serial": a.SerialNumber,
		"deleted_asset_model":  a.Model,
	})
}

func (s *AssetService) Get(ctx context.Context, assetID string) (*models.Asset, error) {
	a, err := s.assets.GetByID(ctx, s.pool, assetID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, assetID)
	}
	return a, err
}

func (s *AssetService) List(ctx context.Context, filter repositories.AssetFilter) ([]models.Asset, error) {
	return s.assets.List(ctx, filter)
}

// ImportCSV bulk-creates assets from an uploaded CSV, mirroring the employee
// import: per-row failures are collected, the rest proceed.
func (s *AssetService) ImportCSV(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	rows, rowErrs, err := ParseAssetsCSV(r)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{Failed: rowErrs}
	for i := range rows {
		if err := s.Create(ctx, &rows[i].Asset); err != nil {
			if errors.Is(err, ErrAuditWrite) {
				summary.Created++
				summary.AuditWarnings++
				continue
			}
			summary.Failed = append(summary.Failed, RowError{Line: rows[i].Line, Message: err.Error()})
			continue
		}
		summary.Created++
	}
	return summary, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/it-inventory/backend/internal/db"
	"github.com/it-inventory/backend/internal/metrics"
	"github.com/it-inventory/backend/internal/models"
	"github.com/it-inventory/backend/internal/repositories"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TxBeginner opens the transaction each Assign/Return runs in. *pgxpool.Pool
// satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type EmployeeStore interface {
	GetByEmail(ctx context.Context, q db.Querier, email string) (*models.Employee, error)
}

type AssetStore interface {
	GetByID(ctx context.Context, q db.Querier, assetID string) (*models.Asset, error)
	ClaimForAllocation(ctx context.Context, q db.Querier, assetID string) (*models.Asset, error)
	Release(ctx context.Context, q db.Querier, assetID string) error
}

type AllocationStore interface {
	Create(ctx context.Context, q db.Querier, a *models.Allocation) error
	CountActive(ctx context.Context, q db.Querier, assetID string) (int, error)
	GetActiveForUpdate(ctx context.Context, q db.Querier, assetID string, employeeID uuid.UUID) (*models.Allocation, error)
	Close(ctx context.Context, q db.Querier, id uuid.UUID, returnedDate time.Time, meta models.ReturnMetadata) error
}

// Auditor records the audit side effect of a committed transition.
type Auditor interface {
	Record(ctx context.Context, action string, details map[string]any) error
}

// AllocationService is the allocation/return state machine. Each operation's
// precondition check and writes run as one database transaction, so a
// concurrent operator racing on the same asset loses at the status guard
// instead of creating a second active allocation.
type AllocationService struct {
	db          TxBeginner
	employees   EmployeeStore
	assets      AssetStore
	allocations AllocationStore
	audit       Auditor
	log         *zap.Logger
}

func NewAllocationService(
	db TxBeginner,
	employees EmployeeStore,
	assets AssetStore,
	allocations AllocationStore,
	audit Auditor,
	log *zap.Logger,
) *AllocationService {
	return &AllocationService{
		db:          db,
		employees:   employees,
		assets:      assets,
		allocations: allocations,
		audit:       audit,
		log:         log,
	}
}

type AssignParams struct {
	EmployeeEmail string
	AssetID       string
	HandledBy     *uuid.UUID
	Meta          models.AssignmentMetadata
}

type ReturnParams struct {
	EmployeeEmail string
	AssetID       string
	Meta          models.ReturnMetadata
}

// Result reports the outcome of a successful transition: the allocation row
// affected and the asset's new status.
type Result struct {
	Allocation  *models.Allocation `json:"allocation"`
	AssetStatus string             `json:"asset_status"`
	AssetSerial string             `json:"asset_serial"`
	Employee    string             `json:"employee"`
}

// Assign moves an Available asset to Allocated, creating the allocation row.
// On ErrAuditWrite the returned Result is still valid: the business mutation
// committed and only the audit row is missing.
func (s *AllocationService) Assign(ctx context.Context, p AssignParams) (*Result, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	emp, err := s.employees.GetByEmail(ctx, tx, p.EmployeeEmail)
	if errors.Is(err, repositories.ErrNotFound) {
		metrics.AllocationFailures.WithLabelValues("unknown_employee").Inc()
		return nil, fmt.Errorf("%w: %s", ErrUnknownEmployee, p.EmployeeEmail)
	}
	if err != nil {
		return nil, err
	}

	asset, err := s.assets.ClaimForAllocation(ctx, tx, p.AssetID)
	if errors.Is(err, repositories.ErrNotFound) {
		// Distinguish a missing asset from one in the wrong status.
		existing, getErr := s.assets.GetByID(ctx, tx, p.AssetID)
		if errors.Is(getErr, repositories.ErrNotFound) {
			metrics.AllocationFailures.WithLabelValues("asset_not_found").Inc()
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, p.AssetID)
		}
		if getErr != nil {
			return nil, getErr
		}
		metrics.AllocationFailures.WithLabelValues("asset_not_available").Inc()
		return nil, fmt.Errorf("%w: %s is %s", ErrAssetNotAvailable, p.AssetID, existing.Status)
	}
	if err != nil {
		return nil, err
	}

	// The asset claimed as Available, so any active allocation row means the
	// store is corrupt. Fail loudly, never pick a row to trust.
	active, err := s.allocations.CountActive(ctx, tx, p.AssetID)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		metrics.InvariantViolations.Inc()
		s.log.Error("active allocation exists for an Available asset",
			zap.String("asset_id", p.AssetID),
			zap.Int("active_count", active))
		return nil, fmt.Errorf("%w: %s has %d active allocations while Available", ErrAllocationInvariant, p.AssetID, active)
	}

	assignedDate := time.Now()
	if p.Meta.AssignedDate != nil {
		assignedDate = *p.Meta.AssignedDate
	}

	alloc := &models.Allocation{
		AssetID:                  asset.AssetID,
		EmployeeID:               emp.ID,
		HandledBy:                p.HandledBy,
		AssignedDate:             &assignedDate,
		AllocationReason:         p.Meta.AllocationReason,
		AssetConditionOnAlloc:    p.Meta.AssetConditionOnAlloc,
		ChargerStatus:            p.Meta.ChargerStatus,
		BagStatus:                p.Meta.BagStatus,
		KeyboardAndTouchpadState: p.Meta.KeyboardAndTouchpadState,
		AllocationLocation:       p.Meta.AllocationLocation,
		DeliveryType:             p.Meta.DeliveryType,
		AllocationDocketID:       p.Meta.AllocationDocketID,
		TransactionStatus:        models.TransactionStatusAllocated,
	}
	if err := s.allocations.Create(ctx, tx, alloc); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	metrics.AssignmentsTotal.Inc()
	s.log.Info("asset assigned",
		zap.String("asset_id", asset.AssetID),
		zap.String("employee", emp.Email),
		zap.String("allocation_id", alloc.ID.String()))

	result := &Result{
		Allocation:  alloc,
		AssetStatus: models.AssetStatusAllocated,
		AssetSerial: asset.SerialNumber,
		Employee:    emp.FullName,
	}
	if err := s.audit.Record(ctx, models.ActionAssetAssigned, map[string]any{
		"employee_name": emp.FullName,
		"asset_serial":  asset.SerialNumber,
		"asset_model":   asset.Model,
		"allocation_id": alloc.ID,
	}); err != nil {
		return result, err
	}
	return result, nil
}

// Return ends the active cycle for the (employee, asset) pair: the allocation
// row is mutated in place with the return leg and the asset goes back to
// Available. The email must match the asset's actual holder; anything else is
// ErrNoActiveAllocation, never a silent reassignment.
func (s *AllocationService) Return(ctx context.Context, p ReturnParams) (*Result, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	emp, err := s.employees.GetByEmail(ctx, tx, p.EmployeeEmail)
	if errors.Is(err, repositories.ErrNotFound) {
		metrics.AllocationFailures.WithLabelValues("unknown_employee").Inc()
		return nil, fmt.Errorf("%w: %s", ErrUnknownEmployee, p.EmployeeEmail)
	}
	if err != nil {
		return nil, err
	}

	asset, err := s.assets.GetByID(ctx, tx, p.AssetID)
	if errors.Is(err, repositories.ErrNotFound) {
		metrics.AllocationFailures.WithLabelValues("asset_not_found").Inc()
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, p.AssetID)
	}
	if err != nil {
		return nil, err
	}

	active, err := s.allocations.CountActive(ctx, tx, p.AssetID)
	if err != nil {
		return nil, err
	}
	if active > 1 {
		metrics.InvariantViolations.Inc()
		s.log.Error("multiple active allocations for one asset",
			zap.String("asset_id", p.AssetID),
			zap.Int("active_count", active))
		return nil, fmt.Errorf("%w: %s has %d active allocations", ErrAllocationInvariant, p.AssetID, active)
	}

	alloc, err := s.allocations.GetActiveForUpdate(ctx, tx, p.AssetID, emp.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		metrics.AllocationFailures.WithLabelValues("no_active_allocation").Inc()
		return nil, fmt.Errorf("%w: asset %s, employee %s", ErrNoActiveAllocation, p.AssetID, p.EmployeeEmail)
	}
	if err != nil {
		return nil, err
	}

	returnedDate := time.Now()
	if p.Meta.ReturnedDate != nil {
		returnedDate = *p.Meta.ReturnedDate
	}

	if err := s.allocations.Close(ctx, tx, alloc.ID, returnedDate, p.Meta); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Lost a race with a concurrent return of the same row.
			metrics.AllocationFailures.WithLabelValues("no_active_allocation").Inc()
			return nil, fmt.Errorf("%w: asset %s, employee %s", ErrNoActiveAllocation, p.AssetID, p.EmployeeEmail)
		}
		return nil, err
	}

	if err := s.assets.Release(ctx, tx, p.AssetID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// An active allocation existed but the asset was not Allocated:
			// status and allocation rows disagree.
			metrics.InvariantViolations.Inc()
			s.log.Error("asset status disagrees with its active allocation",
				zap.String("asset_id", p.AssetID),
				zap.String("status", asset.Status))
			return nil, fmt.Errorf("%w: %s is %s with an active allocation", ErrAllocationInvariant, p.AssetID, asset.Status)
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	metrics.ReturnsTotal.Inc()
	s.log.Info("asset returned",
		zap.String("asset_id", asset.AssetID),
		zap.String("employee", emp.Email),
		zap.String("allocation_id", alloc.ID.String()))

	returned := *alloc
	returned.ReturnedDate = &returnedDate
	returned.ReturnReason = p.Meta.ReturnReason
	returned.Purpose = p.Meta.Purpose
	returned.AssetPowerStatus = p.Meta.AssetPowerStatus
	returned.AssetScreenStatus = p.Meta.AssetScreenStatus
	returned.ChargerReturnStatus = p.Meta.ChargerReturnStatus
	returned.BagReturnStatus = p.Meta.BagReturnStatus
	returned.ReturnLocation = p.Meta.ReturnLocation
	returned.ReturnDocketID = p.Meta.ReturnDocketID
	if p.Meta.Remarks != nil {
		returned.Remarks = p.Meta.Remarks
	}
	returned.TransactionStatus = models.TransactionStatusReturned

	result := &Result{
		Allocation:  &returned,
		AssetStatus: models.AssetStatusAvailable,
		AssetSerial: asset.SerialNumber,
		Employee:    emp.FullName,
	}
	if err := s.audit.Record(ctx, models.ActionAssetReturned, map[string]any{
		"employee_name": emp.FullName,
		"asset_serial":  asset.SerialNumber,
		"asset_model":   asset.Model,
		"allocation_id": alloc.ID,
	}); err != nil {
		return result, err
	}
	return result, nil
}

package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/it-inventory/backend/internal/db"
	"github.com/it-inventory/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AllocationRepo struct {
	pool *pgxpool.Pool
}

func NewAllocationRepo(pool *pgxpool.Pool) *AllocationRepo {
	return &AllocationRepo{pool: pool}
}

const allocationColumns = `id, asset_id, employee_id, handled_by,
	assigned_date, allocation_reason, asset_condition_on_alloc, charger_status, bag_status,
	keyboard_and_touchpad_status, allocation_location, delivery_type, allocation_docket_id,
	returned_date, return_reason, purpose, asset_power_status, asset_screen_status,
	charger_return_status, bag_return_status, return_location, return_docket_id, remarks,
	transaction_status, created_at, updated_at`

// Create inserts the assignment leg of a new cycle. Runs inside the state
// machine's transaction.
func (r *AllocationRepo) Create(ctx context.Context, q db.Querier, a *models.Allocation) error {
	return q.QueryRow(ctx, `
		INSERT INTO allocations (asset_id, employee_id, handled_by,
			assigned_date, allocation_reason, asset_condition_on_alloc, charger_status, bag_status,
			keyboard_and_touchpad_status, allocation_location, delivery_type, allocation_docket_id,
			transaction_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`, a.AssetID, a.EmployeeID, a.HandledBy,
		a.AssignedDate, a.AllocationReason, a.AssetConditionOnAlloc, a.ChargerStatus, a.BagStatus,
		a.KeyboardAndTouchpadState, a.AllocationLocation, a.DeliveryType, a.AllocationDocketID,
		a.TransactionStatus).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// CountActive reports how many allocations are currently active for the asset.
// The state machine treats anything above one as a consistency failure.
func (r *AllocationRepo) CountActive(ctx context.Context, q db.Querier, assetID string) (int, error) {
	var count int
	err := q.QueryRow(ctx, `
		SELECT count(*) FROM allocations
		WHERE asset_id = $1 AND transaction_status = $2
	`, assetID, models.TransactionStatusAllocated).Scan(&count)
	return count, err
}

// GetActiveForUpdate locks and returns the single active allocation for the
// (employee, asset) pair, or ErrNotFound when the pair has none, including
// when the asset is actually held by a different employee.
func (r *AllocationRepo) GetActiveForUpdate(ctx context.Context, q db.Querier, assetID string, employeeID uuid.UUID) (*models.Allocation, error) {
	return scanAllocation(q.QueryRow(ctx, `
		SELECT `+allocationColumns+`
		FROM allocations
		WHERE asset_id = $1 AND employee_id = $2 AND transaction_status = $3
		FOR UPDATE
	`, assetID, employeeID, models.TransactionStatusAllocated))
}

// Close populates the return leg in place and flips the row to Returned. The
// status guard makes a concurrent double-return lose cleanly.
func (r *AllocationRepo) Close(ctx context.Context, q db.Querier, id uuid.UUID, returnedDate time.Time, meta models.ReturnMetadata) error {
	tag, err := q.Exec(ctx, `
		UPDATE allocations
		SET returned_date = $1, return_reason = $2, purpose = $3, asset_power_status = $4,
			asset_screen_status = $5, charger_return_status = $6, bag_return_status = $7,
			return_location = $8, return_docket_id = $9, remarks = COALESCE($10, remarks),
			transaction_status = $11, updated_at = now()
		WHERE id = $12 AND transaction_status = $13
	`, returnedDate, meta.ReturnReason, meta.Purpose, meta.AssetPowerStatus,
		meta.AssetScreenStatus, meta.ChargerReturnStatus, meta.BagReturnStatus,
		meta.ReturnLocation, meta.ReturnDocketID, meta.Remarks,
		models.TransactionStatusReturned, id, models.TransactionStatusAllocated)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActiveByEmployee backs the employee deletion guard.
func (r *AllocationRepo) CountActiveByEmployee(ctx context.Context, employeeID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM allocations
		WHERE employee_id = $1 AND transaction_status = $2
	`, employeeID, models.TransactionStatusAllocated).Scan(&count)
	return count, err
}

type AllocationFilter struct {
	EmployeeID *uuid.UUID
	AssetID    *string
	Status     *string
	Limit      int
	Offset     int
}

// List returns allocation history with employee and asset display fields
// joined in, newest assignments first.
func (r *AllocationRepo) List(ctx context.Context, filter AllocationFilter) ([]models.AllocationWithDetails, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	sql := `
		SELECT ` + prefixedAllocationColumns + `,
			a.serial_number, a.model, a.brand, e.full_name, e.email
		FROM allocations al
		JOIN assets a ON a.asset_id = al.asset_id
		JOIN employees e ON e.id = al.employee_id
		WHERE 1=1`
	args := []any{}
	n := 1

	if filter.EmployeeID != nil {
		sql += ` AND al.employee_id = $` + strconv.Itoa(n)
		args = append(args, *filter.EmployeeID)
		n++
	}
	if filter.AssetID != nil {
		sql += ` AND al.asset_id = $` + strconv.Itoa(n)
		args = append(args, *filter.AssetID)
		n++
	}
	if filter.Status != nil {
		sql += ` AND al.transaction_status = $` + strconv.Itoa(n)
		args = append(args, *filter.Status)
		n++
	}
	sql += ` ORDER BY al.assigned_date DESC NULLS LAST LIMIT $` + strconv.Itoa(n) + ` OFFSET $` + strconv.Itoa(n+1)
	args = append(args, filter.Limit, filter.Offset)

	return r.queryDetails(ctx, sql, args...)
}

// Search is the "know transaction" feature: all cycles touching an employee
// (by name or email) or an asset (by tag or serial).
func (r *AllocationRepo) Search(ctx context.Context, searchType, query string, limit, offset int) ([]models.AllocationWithDetails, error) {
	if limit <= 0 {
		limit = 20
	}

	sql := `
		SELECT ` + prefixedAllocationColumns + `,
			a.serial_number, a.model, a.brand, e.full_name, e.email
		FROM allocations al
		JOIN assets a ON a.asset_id = al.asset_id
		JOIN employees e ON e.id = al.employee_id
		WHERE `
	if searchType == "asset" {
		sql += `(a.serial_number ILIKE $1 OR a.asset_id ILIKE $1)`
	} else {
		sql += `(e.full_name ILIKE $1 OR e.email ILIKE $1)`
	}
	sql += ` ORDER BY al.assigned_date DESC NULLS LAST LIMIT $2 OFFSET $3`

	return r.queryDetails(ctx, sql, "%"+query+"%", limit, offset)
}

// ActiveByEmployees fetches the currently held assets for a set of employees
// in one query, for list views.
func (r *AllocationRepo) ActiveByEmployees(ctx context.Context, employeeIDs []uuid.UUID) (map[uuid.UUID][]models.AllocationWithAsset, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+prefixedAllocationColumns+`, a.serial_number, a.model, a.brand
		FROM allocations al
		JOIN assets a ON a.asset_id = al.asset_id
		WHERE al.employee_id = ANY($1) AND al.transaction_status = $2
	`, employeeIDs, models.TransactionStatusAllocated)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]models.AllocationWithAsset)
	for rows.Next() {
		var aw models.AllocationWithAsset
		if err := scanAllocationWithAssetRow(rows, &aw); err != nil {
			return nil, err
		}
		result[aw.EmployeeID] = append(result[aw.EmployeeID], aw)
	}
	return result, rows.Err()
}

const prefixedAllocationColumns = `al.id, al.asset_id, al.employee_id, al.handled_by,
	al.assigned_date, al.allocation_reason, al.asset_condition_on_alloc, al.charger_status, al.bag_status,
	al.keyboard_and_touchpad_status, al.allocation_location, al.delivery_type, al.allocation_docket_id,
	al.returned_date, al.return_reason, al.purpose, al.asset_power_status, al.asset_screen_status,
	al.charger_return_status, al.bag_return_status, al.return_location, al.return_docket_id, al.remarks,
	al.transaction_status, al.created_at, al.updated_at`

func (r *AllocationRepo) queryDetails(ctx context.Context, sql string, args ...any) ([]models.AllocationWithDetails, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.AllocationWithDetails
	for rows.Next() {
		var d models.AllocationWithDetails
		if err := rows.Scan(allocationFields(&d.Allocation,
			&d.AssetSerial, &d.AssetModel, &d.AssetBrand, &d.EmployeeName, &d.EmployeeEmail)...); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func scanAllocationWithAssetRow(rows pgx.Rows, aw *models.AllocationWithAsset) error {
	return rows.Scan(allocationFields(&aw.Allocation, &aw.AssetSerial, &aw.AssetModel, &aw.AssetBrand)...)
}

func scanAllocation(row pgx.Row) (*models.Allocation, error) {
	var a models.Allocation
	err := row.Scan(allocationFields(&a)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// allocationFields returns scan destinations for allocationColumns plus any
// trailing extras.
func allocationFields(a *models.Allocation, extra ...any) []any {
	fields := []any{
		&a.ID, &a.AssetID, &a.EmployeeID, &a.HandledBy,
		&a.AssignedDate, &a.AllocationReason, &a.AssetConditionOnAlloc, &a.ChargerStatus, &a.BagStatus,
		&a.KeyboardAndTouchpadState, &a.AllocationLocation, &a.DeliveryType, &a.AllocationDocketID,
		&a.ReturnedDate, &a.ReturnReason, &a.Purpose, &a.AssetPowerStatus, &a.AssetScreenStatus,
		&a.ChargerReturnStatus, &a.BagReturnStatus, &a.ReturnLocation, &a.ReturnDocketID, &a.Remarks,
		&a.TransactionStatus, &a.CreatedAt, &a.UpdatedAt,
	}
	return append(fields, extra...)
}

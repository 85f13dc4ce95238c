package repositories

import (
	"context"
	"errors"
	"strconv"

	"github.com/it-inventory/backend/internal/db"
	"github.com/it-inventory/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AssetRepo struct {
	pool *pgxpool.Pool
}

func NewAssetRepo(pool *pgxpool.Pool) *AssetRepo {
	return &AssetRepo{pool: pool}
}

const assetColumns = `asset_id, asset_type, brand, model, serial_number, processor, ram_gb,
	storage_size_gb, purchase_date, warranty_expiry, status, remarks, created_at, updated_at`

func (r *AssetRepo) Create(ctx context.Context, a *models.Asset) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO assets (asset_id, asset_type, brand, model, serial_number, processor,
			ram_gb, storage_size_gb, purchase_date, warranty_expiry, status, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`, a.AssetID, a.AssetType, a.Brand, a.Model, a.SerialNumber, a.Processor,
		a.RAMGB, a.StorageSizeGB, a.PurchaseDate, a.WarrantyExpiry, a.Status, a.Remarks).
		Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *AssetRepo) Update(ctx context.Context, a *models.Asset) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE assets
		SET asset_type = $1, brand = $2, model = $3, serial_number = $4, processor = $5,
			ram_gb = $6, storage_size_gb = $7, purchase_date = $8, warranty_expiry = $9,
			remarks = $10, updated_at = now()
		WHERE asset_id = $11
	`, a.AssetType, a.Brand, a.Model, a.SerialNumber, a.Processor,
		a.RAMGB, a.StorageSizeGB, a.PurchaseDate, a.WarrantyExpiry, a.Remarks, a.AssetID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// OverrideStatus applies a manual administrative status change, guarded on the
// expected current status so concurrent edits cannot clobber each other.
func (r *AssetRepo) OverrideStatus(ctx context.Context, assetID, from, to string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE assets SET status = $1, updated_at = now()
		WHERE asset_id = $2 AND status = $3
	`, to, assetID, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AssetRepo) Delete(ctx context.Context, assetID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE asset_id = $1`, assetID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID takes a Querier so the state machine can read inside its transaction.
func (r *AssetRepo) GetByID(ctx context.Context, q db.Querier, assetID string) (*models.Asset, error) {
	return scanAsset(q.QueryRow(ctx, `
		SELECT `+assetColumns+` FROM assets WHERE asset_id = $1
	`, assetID))
}

// ClaimForAllocation atomically flips an Available asset to Allocated and
// returns it. ErrNotFound means the asset either does not exist or is not
// Available; the caller distinguishes the two with a follow-up read in the
// same transaction.
func (r *AssetRepo) ClaimForAllocation(ctx context.Context, q db.Querier, assetID string) (*models.Asset, error) {
	return scanAsset(q.QueryRow(ctx, `
		UPDATE assets SET status = $1, updated_at = now()
		WHERE asset_id = $2 AND status = $3
		RETURNING `+assetColumns+`
	`, models.AssetStatusAllocated, assetID, models.AssetStatusAvailable))
}

// Release flips an Allocated asset back to Available at return time.
func (r *AssetRepo) Release(ctx context.Context, q db.Querier, assetID string) error {
	tag, err := q.Exec(ctx, `
		UPDATE assets SET status = $1, updated_at = now()
		WHERE asset_id = $2 AND status = $3
	`, models.AssetStatusAvailable, assetID, models.AssetStatusAllocated)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type AssetFilter struct {
	Query  string // matches asset id, serial number, brand or model
	Status *string
	Type   *string
	Limit  int
	Offset int
}

func (r *AssetRepo) List(ctx context.Context, filter AssetFilter) ([]models.Asset, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	sql := `SELECT ` + assetColumns + ` FROM assets WHERE 1=1`
	args := []any{}
	n := 1

	if filter.Query != "" {
		sql += ` AND (asset_id ILIKE $1 OR serial_number ILIKE $1 OR brand ILIKE $1 OR model ILIKE $1)`
		args = append(args, "%"+filter.Query+"%")
		n++
	}
	if filter.Status != nil {
		sql += ` AND status = $` + strconv.Itoa(n)
		args = append(args, *filter.Status)
		n++
	}
	if filter.Type != nil {
		sql += ` AND asset_type = $` + strconv.Itoa(n)
		args = append(args, *filter.Type)
		n++
	}
	sql += ` ORDER BY purchase_date DESC NULLS LAST, asset_id LIMIT $` + strconv.Itoa(n) + ` OFFSET $` + strconv.Itoa(n+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.AssetID, &a.AssetType, &a.Brand, &a.Model, &a.SerialNumber, &a.Processor,
			&a.RAMGB, &a.StorageSizeGB, &a.PurchaseDate, &a.WarrantyExpiry, &a.Status, &a.Remarks,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func scanAsset(row pgx.Row) (*models.Asset, error) {
	var a models.Asset
	err := row.Scan(&a.AssetID, &a.AssetType, &a.Brand, &a.Model, &a.SerialNumber, &a.Processor,
		&a.RAMGB, &a.StorageSizeGB, &a.PurchaseDate, &a.WarrantyExpiry, &a.Status, &a.Remarks,
		&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

package repositories

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/it-inventory/backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepo appends and reads audit rows. There is deliberately no update or
// delete here; the schema-level guard trigger backs the same rule.
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Log(ctx context.Context, entry *models.AuditLog) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO audit_log (actor_id, actor_name, action, details)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, entry.ActorID, entry.ActorName, entry.Action, entry.Details).Scan(&entry.ID, &entry.CreatedAt)
}

type AuditFilter struct {
	Query   string // free-text match on details and actor name
	ActorID *uuid.UUID
	Action  *string
	From    *time.Time
	To      *time.Time

	// Visibility restrictions applied per requesting role
	ActorRole        *string // only rows whose actor holds this role
	ExcludeDeletions bool    // hide *_DELETED entries

	Limit  int
	Offset int
}

// List returns matching rows newest first, plus the total match count for
// pagination.
func (r *AuditRepo) List(ctx context.Context, filter AuditFilter) ([]models.AuditLog, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	sql := `
		SELECT l.id, l.actor_id, l.actor_name, l.action, l.details, l.created_at, count(*) OVER()
		FROM audit_log l`
	if filter.ActorRole != nil {
		sql += ` JOIN users u ON u.id = l.actor_id`
	}
	sql += ` WHERE 1=1`

	args := []any{}
	n := 1

	if filter.Query != "" {
		sql += ` AND (l.details::text ILIKE $1 OR l.actor_name ILIKE $1)`
		args = append(args, "%"+filter.Query+"%")
		n++
	}
	if filter.ActorID != nil {
		sql += ` AND l.actor_id = $` + strconv.Itoa(n)
		args = append(args, *filter.ActorID)
		n++
	}
	if filter.Action != nil {
		sql += ` AND l.action = $` + strconv.Itoa(n)
		args = append(args, *filter.Action)
		n++
	}
	if filter.From != nil {
		sql += ` AND l.created_at >= $` + strconv.Itoa(n)
		args = append(args, *filter.From)
		n++
	}
	if filter.To != nil {
		sql += ` AND l.created_at <= $` + strconv.Itoa(n)
		args = append(args, *filter.To)
		n++
	}
	if filter.ActorRole != nil {
		sql += ` AND u.role = $` + strconv.Itoa(n)
		args = append(args, *filter.ActorRole)
		n++
	}
	if filter.ExcludeDeletions {
		sql += ` AND l.action NOT LIKE '%_DELETED'`
	}
	sql += ` ORDER BY l.created_at DESC LIMIT $` + strconv.Itoa(n) + ` OFFSET $` + strconv.Itoa(n+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []models.AuditLog
	var total int
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.ActorID, &l.ActorName, &l.Action, &l.Details, &l.CreatedAt, &total); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}

// Actions returns the distinct action types present in the log, for filter
// dropdowns.
func (r *AuditRepo) Actions(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT action FROM audit_log ORDER BY action`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

package repositories

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/it-inventory/backend/internal/db"
	"github.com/it-inventory/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EmployeeRepo struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepo(pool *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{pool: pool}
}

const employeeColumns = `id, user_id, full_name, email, status, designation, date_of_joining, created_at, updated_at`

func (r *EmployeeRepo) Create(ctx context.Context, e *models.Employee) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO employees (user_id, full_name, email, status, designation, date_of_joining)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, e.UserID, e.FullName, e.Email, e.Status, e.Designation, e.DateOfJoining).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EmployeeRepo) Update(ctx context.Context, e *models.Employee) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE employees
		SET full_name = $1, email = $2, status = $3, designation = $4, date_of_joining = $5, updated_at = now()
		WHERE id = $6
	`, e.FullName, e.Email, e.Status, e.Designation, e.DateOfJoining, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return scanEmployee(r.pool.QueryRow(ctx, `
		SELECT `+employeeColumns+` FROM employees WHERE id = $1
	`, id))
}

// GetByEmail takes a Querier so the allocation state machine can resolve the
// employee inside its own transaction.
func (r *EmployeeRepo) GetByEmail(ctx context.Context, q db.Querier, email string) (*models.Employee, error) {
	return scanEmployee(q.QueryRow(ctx, `
		SELECT `+employeeColumns+` FROM employees WHERE lower(email) = lower($1)
	`, email))
}

type EmployeeFilter struct {
	Query  string // matches full name, email or designation
	Status *string
	Limit  int
	Offset int
}

func (r *EmployeeRepo) List(ctx context.Context, filter EmployeeFilter) ([]models.Employee, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	sql := `SELECT ` + employeeColumns + ` FROM employees WHERE 1=1`
	args := []any{}
	n := 1

	if filter.Query != "" {
		sql += ` AND (full_name ILIKE $1 OR email ILIKE $1 OR designation ILIKE $1)`
		args = append(args, "%"+filter.Query+"%")
		n++
	}
	if filter.Status != nil {
		sql += ` AND status = $` + strconv.Itoa(n)
		args = append(args, *filter.Status)
		n++
	}
	sql += ` ORDER BY full_name LIMIT $` + strconv.Itoa(n) + ` OFFSET $` + strconv.Itoa(n+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.UserID, &e.FullName, &e.Email, &e.Status, &e.Designation, &e.DateOfJoining, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.UserID, &e.FullName, &e.Email, &e.Status, &e.Designation, &e.DateOfJoining, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

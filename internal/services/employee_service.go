package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/it-inventory/backend/internal/models"
	"github.com/it-inventory/backend/internal/repositories"
	"go.uber.org/zap"
)

type EmployeeService struct {
	employees   *repositories.EmployeeRepo
	allocations *repositories.AllocationRepo
	audit       Auditor
	log         *zap.Logger
}

func NewEmployeeService(
	employees *repositories.EmployeeRepo,
	allocations *repositories.AllocationRepo,
	audit Auditor,
	log *zap.Logger,
) *EmployeeService {
	return &EmployeeService{employees: employees, allocations: allocations, audit: audit, log: log}
}

func (s *EmployeeService) Create(ctx context.Context, e *models.Employee) error {
	if e.Status == "" {
		e.Status = models.EmployeeStatusActive
	}
	if err := s.employees.Create(ctx, e); err != nil {
		if repositories.IsUniqueViolation(err) {
			return fmt.Errorf("%w: email %s", ErrDuplicate, e.Email)
		}
		return err
	}
	return s.audit.Record(ctx, models.ActionEmployeeCreated, map[string]any{
		"employee_id":    e.ID,
		"employee_name":  e.FullName,
		"employee_email": e.Email,
	})
}

func (s *EmployeeService) Update(ctx context.Context, e *models.Employee) error {
	if err := s.employees.Update(ctx, e); err != nil {
		if repositories.IsUniqueViolation(err) {
			return fmt.Errorf("%w: email %s", ErrDuplicate, e.Email)
		}
		return err
	}
	return s.audit.Record(ctx, models.ActionEmployeeUpdated, map[string]any{
		"employee_id":    e.ID,
		"employee_name":  e.FullName,
		"employee_email": e.Email,
	})
}

// Delete removes an employee record. Refused while the employee still holds
// allocated assets.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return err
	}

	active, err := s.allocations.CountActiveByEmployee(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("%w: %s holds %d", ErrEmployeeHasAssets, e.FullName, active)
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		return err
	}
	return s.audit.Record(ctx, models.ActionEmployeeDeleted, map[string]any{
		"deleted_employee_id":    e.ID,
		"deleted_employee_name":  e.FullName,
		"deleted_employee_email": e.Email,
	})
}

func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// List returns employees with their currently held assets joined in.
func (s *EmployeeService) List(ctx context.Context, filter repositories.EmployeeFilter) ([]models.EmployeeWithAssets, error) {
	employees, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
	}
	active, err := s.allocations.ActiveByEmployees(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.EmployeeWithAssets, len(employees))
	for i, e := range employees {
		result[i] = models.EmployeeWithAssets{Employee: e, ActiveAssets: active[e.ID]}
	}
	return result, nil
}

// ImportCSV bulk-creates employees from an uploaded CSV. Rows that fail keep
// the rest of the import going; each failure is reported with its line.
func (s *EmployeeService) ImportCSV(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	rows, rowErrs, err := ParseEmployeesCSV(r)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{Failed: rowErrs}
	for i := range rows {
		if err := s.Create(ctx, &rows[i].Employee); err != nil {
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

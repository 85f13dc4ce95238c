package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/it-inventory/backend/internal/db"
	"github.com/it-inventory/backend/internal/models"
	"github.com/it-inventory/backend/internal/repositories"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// fakeTx satisfies pgx.Tx via embedding; only Commit and Rollback are real.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	last *fakeTx
}

func (d *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	d.last = &fakeTx{}
	return d.last, nil
}

type fakeEmployees struct {
	byEmail map[string]*models.Employee
}

func (f *fakeEmployees) GetByEmail(ctx context.Context, q db.Querier, email string) (*models.Employee, error) {
	e, ok := f.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

type fakeAssets struct {
	byID map[string]*models.Asset
}

func (f *fakeAssets) GetByID(ctx context.Context, q db.Querier, assetID string) (*models.Asset, error) {
	a, ok := f.byID[assetID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAssets) ClaimForAllocation(ctx context.Context, q db.Querier, assetID string) (*models.Asset, error) {
	a, ok := f.byID[assetID]
	if !ok || a.Status != models.AssetStatusAvailable {
		return nil, repositories.ErrNotFound
	}
	a.Status = models.AssetStatusAllocated
	cp := *a
	return &cp, nil
}

func (f *fakeAssets) Release(ctx context.Context, q db.Querier, assetID string) error {
	a, ok := f.byID[assetID]
	if !ok || a.Status != models.AssetStatusAllocated {
		return repositories.ErrNotFound
	}
	a.Status = models.AssetStatusAvailable
	return nil
}

type fakeAllocations struct {
	rows []*models.Allocation
}

func (f *fakeAllocations) Create(ctx context.Context, q db.Querier, a *models.Allocation) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	cp := *a
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeAllocations) CountActive(ctx context.Context, q db.Querier, assetID string) (int, error) {
	n := 0
	for _, r := range f.rows {
		if r.AssetID == assetID && r.TransactionStatus == models.TransactionStatusAllocated {
			n++
		}
	}
	return n, nil
}

func (f *fakeAllocations) GetActiveForUpdate(ctx context.Context, q db.Querier, assetID string, employeeID uuid.UUID) (*models.Allocation, error) {
	for _, r := range f.rows {
		if r.AssetID == assetID && r.EmployeeID == employeeID && r.TransactionStatus == models.TransactionStatusAllocated {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAllocations) Close(ctx context.Context, q db.Querier, id uuid.UUID, returnedDate time.Time, meta models.ReturnMetadata) error {
	for _, r := range f.rows {
		if r.ID == id && r.TransactionStatus == models.TransactionStatusAllocated {
			r.TransactionStatus = models.TransactionStatusReturned
			r.ReturnedDate = &returnedDate
			r.ReturnReason = meta.ReturnReason
			r.ReturnLocation = meta.ReturnLocation
			return nil
		}
	}
	return repositories.ErrNotFound
}

type auditCall struct {
	action  string
	details map[string]any
}

type fakeAuditor struct {
	calls []auditCall
	err   error
}

func (f *fakeAuditor) Record(ctx context.Context, action string, details map[string]any) error {
	f.calls = append(f.calls, auditCall{action: action, details: details})
	return f.err
}

type allocFixture struct {
	svc         *AllocationService
	db          *fakeDB
	employees   *fakeEmployees
	assets      *fakeAssets
	allocations *fakeAllocations
	audit       *fakeAuditor
}

func newAllocFixture() *allocFixture {
	f := &allocFixture{
		db: &fakeDB{},
		employees: &fakeEmployees{byEmail: map[string]*models.Employee{
			"asha@corp.example": {ID: uuid.New(), FullName: "Asha Rao", Email: "asha@corp.example", Status: models.EmployeeStatusActive},
			"ben@corp.example":  {ID: uuid.New(), FullName: "Ben Ito", Email: "ben@corp.example", Status: models.EmployeeStatusActive},
		}},
		assets: &fakeAssets{byID: map[string]*models.Asset{
			"LAP-0042": {AssetID: "LAP-0042", SerialNumber: "SN123", Status: models.AssetStatusAvailable},
			"LAP-0099": {AssetID: "LAP-0099", SerialNumber: "SN999", Status: models.AssetStatusUnderRepair},
		}},
		allocations: &fakeAllocations{},
		audit:       &fakeAuditor{},
	}
	f.svc = NewAllocationService(f.db, f.employees, f.assets, f.allocations, f.audit, zap.NewNop())
	return f
}

func TestAssign(t *testing.T) {
	f := newAllocFixture()
	res, err := f.svc.Assign(context.Background(), AssignParams{
		EmployeeEmail: "asha@corp.example",
		AssetID:       "LAP-0042",
	})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if res.AssetStatus != models.AssetStatusAllocated {
		t.Errorf("asset status = %q, want Allocated", res.AssetStatus)
	}
	if f.assets.byID["LAP-0042"].Status != models.AssetStatusAllocated {
		t.Errorf("stored asset status = %q, want Allocated", f.assets.byID["LAP-0042"].Status)
	}
	if len(f.allocations.rows) != 1 {
		t.Fatalf("allocation rows = %d, want 1", len(f.allocations.rows))
	}
	row := f.allocations.rows[0]
	if row.TransactionStatus != models.TransactionStatusAllocated {
		t.Errorf("transaction status = %q, want Allocated", row.TransactionStatus)
	}
	if row.AssignedDate == nil {
		t.Error("assigned date should default to now")
	}
	if !f.db.last.committed {
		t.Error("transaction was not committed")
	}
	if len(f.audit.calls) != 1 || f.audit.calls[0].action != models.ActionAssetAssigned {
		t.Fatalf("audit calls = %+v, want one ASSET_ASSIGNED", f.audit.calls)
	}
	d := f.audit.calls[0].details
	if d["employee_name"] != "Asha Rao" || d["asset_serial"] != "SN123" {
		t.Errorf("audit details incomplete: %+v", d)
	}
}

func TestAssignUnknownEmployee(t *testing.T) {
	f := newAllocFixture()
	_, err := f.svc.Assign(context.Background(), AssignParams{
		EmployeeEmail: "ghost@corp.example",
		AssetID:       "LAP-0042",
	})
	if !errors.Is(err, ErrUnknownEmployee) {
		t.Fatalf("err = %v, want ErrUnknownEmployee", err)
	}
	if f.assets.byID["LAP-0042"].Status != models.AssetStatusAvailable {
		t.Error("asset must stay Available when the employee is unknown")
	}
	if len(f.allocations.rows) != 0 {
		t.Error("no allocation row may exist after a failed assign")
	}
	if len(f.audit.calls) != 0 {
		t.Error("failed assigns are not audited")
	}
}

func TestAssignAssetNotFound(t *testing.T) {
	f := newAllocFixture()
	_, err := f.svc.Assign(context.Background(), AssignParams{
		EmployeeEmail: "asha@corp.example",
		AssetID:       "LAP-0000",
	})
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("err = %v, want ErrAssetNotFound", err)
	}
}

func TestAssignAssetNotAvailable(t *testing.T) {
	f := newAllocFixture()
	_, err := f.svc.Assign(context.Background(), AssignParams{
		EmployeeEmail: "asha@corp.example",
		AssetID:       "LAP-0099",
	})
	if !errors.Is(err, ErrAssetNotAvailable) {
		t.Fatalf("err = %v, want ErrAssetNotAvailable", err)
	}
	if len(f.allocations.rows) != 0 {
		t.Error("no allocation row may exist after a failed claim")
	}
}

func TestAssignTwiceFailsSecond(t *testing.T) {
	f := newAllocFixture()
	if _, err := f.svc.Assign(context.Background(), AssignParams{EmployeeEmail: "asha@corp.example", AssetID: "LAP-0042"}); err != nil {
		t.Fatalf("first Assign: %v", err)
	}
	_, err := f.svc.Assign(context.Background(), AssignParams{EmployeeEmail: "ben@corp.example", AssetID: "LAP-0042"})
	if !errors.Is(err, ErrAssetNotAvailable) {
		t.Fatalf("second Assign err = %v, want ErrAssetNotAvailable", err)
	}
	if len(f.allocations.rows) != 1 {
		t.Errorf("allocation rows = %d, want 1", len(f.allocations.rows))
	}
}

func TestAssignDetectsCorruptState(t *testing.T) {
	f := newAllocFixture()
	// An active allocation next to an Available asset should never exist.
	f.allocations.rows = append(f.allocations.rows, &models.Allocation{
		ID: uuid.New(), AssetID: "LAP-0042",
		EmployeeID:        f.employees.byEmail["ben@corp.example"].ID,
		TransactionStatus: models.TransactionStatusAllocated,
	})
	_, err := f.svc.Assign(context.Background(), AssignParams{
		EmployeeEmail: "asha@corp.example",
		AssetID:       "LAP-0042",
	})
	if !errors.Is(err, ErrAllocationInvariant) {
		t.Fatalf("err = %v, want ErrAllocationInvariant", err)
	}
	if f.db.last.committed {
		t.Error("transaction must roll back on an invariant violation")
	}
}

func TestReturnRoundTrip(t *testing.T) {
	f := newAllocFixture()
	assigned, err := f.svc.Assign(context.Background(), AssignParams{
		EmployeeEmail: "asha@corp.example",
		AssetID:       "LAP-0042",
	})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}

	reason := "resignation"
	res, err := f.svc.Return(context.Background(), ReturnParams{
		EmployeeEmail: "asha@corp.example",
		AssetID:       "LAP-0042",
		Meta:          models.ReturnMetadata{ReturnReason: &reason},
	})
	if err != nil {
		t.Fatalf("Return: %v", err)
	}
	if res.AssetStatus != models.AssetStatusAvailable {
		t.Errorf("asset status = %q, want Available", res.AssetStatus)
	}
	if f.assets.byID["LAP-0042"].Status != models.AssetStatusAvailable {
		t.Errorf("stored asset status = %q, want Available", f.assets.byID["LAP-0042"].Status)
	}
	if res.Allocation.ID != assigned.Allocation.ID {
		t.Error("return must mutate the same allocation row, not create a new one")
	}
	if len(f.allocations.rows) != 1 {
		t.Fatalf("allocation rows = %d, want 1", len(f.allocations.rows))
	}
	row := f.allocations.rows[0]
	if row.TransactionStatus != models.TransactionStatusReturned {
		t.Errorf("transaction status = %q, want Returned", row.TransactionStatus)
	}
	if row.ReturnedDate == nil || row.ReturnReason == nil || *row.ReturnReason != "resignation" {
		t.Errorf("return leg not written: %+v", row)
	}
	if len(f.audit.calls) != 2 || f.audit.calls[1].action != models.ActionAssetReturned {
		t.Fatalf("audit calls = %+v, want ASSET_ASSIGNED then ASSET_RETURNED", f.audit.calls)
	}
}

func TestReturnWrongEmployee(t *testing.T) {
	f := newAllocFixture()
	if _, err := f.svc.Assign(context.Background(), AssignParams{EmployeeEmail: "asha@corp.example", AssetID: "LAP-0042"}); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	_, err := f.svc.Return(context.Background(), ReturnParams{
		EmployeeEmail: "ben@corp.example",
		AssetID:       "LAP-0042",
	})
	if !errors.Is(err, ErrNoActiveAllocation) {
		t.Fatalf("err = %v, want ErrNoActiveAllocation", err)
	}
	if f.assets.byID["LAP-0042"].Status != models.AssetStatusAllocated {
		t.Error("asset must stay Allocated after a mismatched return")
	}
	if f.allocations.rows[0].TransactionStatus != models.TransactionStatusAllocated {
		t.Error("allocation must stay active after a mismatched return")
	}
}

func TestReturnWithoutActiveAllocation(t *testing.T) {
	f := newAllocFixture()
	_, err := f.svc.Return(context.Background(), ReturnParams{
		EmployeeEmail: "asha@corp.example",
		AssetID:       "LAP-0042",
	})
	if !errors.Is(err, ErrNoActiveAllocation) {
		t.Fatalf("err = %v, want ErrNoActiveAllocation", err)
	}
}

func TestReturnDetectsStatusDisagreement(t *testing.T) {
	f := newAllocFixture()
	// Active allocation but the asset sits in Under Repair: Release must fail
	// and the whole return must surface the corruption.
	f.allocations.rows = append(f.allocations.rows, &models.Allocation{
		ID: uuid.New(), AssetID: "LAP-0099",
		EmployeeID:        f.employees.byEmail["asha@corp.example"].ID,
		TransactionStatus: models.TransactionStatusAllocated,
	})
	_, err := f.svc.Return(context.Background(), ReturnParams{
		EmployeeEmail: "asha@corp.example",
		AssetID:       "LAP-0099",
	})
	if !errors.Is(err, ErrAllocationInvariant) {
		t.Fatalf("err = %v, want ErrAllocationInvariant", err)
	}
	if f.db.last.committed {
		t.Error("transaction must roll back on an invariant violation")
	}
}

func TestAssignAuditFailureStillCommits(t *testing.T) {
	f := newAllocFixture()
	f.audit.err = ErrAuditWrite

	res, err := f.svc.Assign(context.Background(), AssignParams{
		EmployeeEmail: "asha@corp.example",
		AssetID:       "LAP-0042",
	})
	if !errors.Is(err, ErrAuditWrite) {
		t.Fatalf("err = %v, want ErrAuditWrite", err)
	}
	if res == nil || res.Allocation == nil {
		t.Fatal("the committed result must be returned alongside the audit error")
	}
	if f.assets.byID["LAP-0042"].Status != models.AssetStatusAllocated {
		t.Error("the business mutation must survive an audit failure")
	}
	if !f.db.last.committed {
		t.Error("transaction must commit before the audit write runs")
	}
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/it-inventory/backend/internal/actor"
	"github.com/it-inventory/backend/internal/models"
	"github.com/it-inventory/backend/internal/repositories"
	"go.uber.org/zap"
)

type fakeAuditStore struct {
	entries    []models.AuditLog
	logErr     error
	lastFilter repositories.AuditFilter
}

func (f *fakeAuditStore) Log(ctx context.Context, entry *models.AuditLog) error {
	if f.logErr != nil {
		return f.logErr
	}
	entry.ID = uuid.New()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditStore) List(ctx context.Context, filter repositories.AuditFilter) ([]models.AuditLog, int, error) {
	f.lastFilter = filter
	return f.entries, len(f.entries), nil
}

func (f *fakeAuditStore) Actions(ctx context.Context) ([]string, error) {
	return []string{models.ActionAssetAssigned}, nil
}

func adminCtx(role string) context.Context {
	return actor.NewContext(context.Background(), actor.Actor{
		UserID:   uuid.New(),
		Username: "ops",
		FullName: "Ops Admin",
		Role:     role,
	})
}

func TestRecordSkipsAnonymous(t *testing.T) {
	store := &fakeAuditStore{}
	svc := NewAuditService(store, zap.NewNop())

	if err := svc.Record(context.Background(), models.ActionAssetAssigned, nil); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(store.entries) != 0 {
		t.Error("anonymous work must not produce audit rows")
	}
}

func TestRecordElevatedActionGating(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		action string
		stored bool
	}{
		{"it_admin cannot log entity deletions", models.RoleITAdmin, models.ActionAssetDeleted, false},
		{"super_admin logs entity deletions", models.RoleSuperAdmin, models.ActionAssetDeleted, true},
		{"it_admin logs allocations", models.RoleITAdmin, models.ActionAssetAssigned, true},
		{"super_admin logs allocations", models.RoleSuperAdmin, models.ActionAssetReturned, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeAuditStore{}
			svc := NewAuditService(store, zap.NewNop())

			if err := svc.Record(adminCtx(tt.role), tt.action, map[string]any{"asset_serial": "SN123"}); err != nil {
				t.Fatalf("Record: %v", err)
			}
			if got := len(store.entries) == 1; got != tt.stored {
				t.Fatalf("stored = %v, want %v", got, tt.stored)
			}
			if tt.stored {
				e := store.entries[0]
				if e.Action != tt.action || e.ActorName != "Ops Admin" {
					t.Errorf("unexpected entry: %+v", e)
				}
				if d, ok := e.Details.(map[string]any); !ok || d["actor_name"] != "Ops Admin" {
					t.Errorf("actor_name missing from details: %+v", e.Details)
				}
			}
		})
	}
}

func TestRecordWriteFailure(t *testing.T) {
	store := &fakeAuditStore{logErr: errors.New("connection reset")}
	svc := NewAuditService(store, zap.NewNop())

	err := svc.Record(adminCtx(models.RoleITAdmin), models.ActionAssetAssigned, nil)
	if !errors.Is(err, ErrAuditWrite) {
		t.Fatalf("err = %v, want ErrAuditWrite", err)
	}
}

func TestListVisibility(t *testing.T) {
	store := &fakeAuditStore{}
	svc := NewAuditService(store, zap.NewNop())

	if _, _, err := svc.List(adminCtx(models.RoleITAdmin), repositories.AuditFilter{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if !store.lastFilter.ExcludeDeletions {
		t.Error("it_admin listing must exclude deletion entries")
	}
	if store.lastFilter.ActorRole == nil || *store.lastFilter.ActorRole != models.RoleITAdmin {
		t.Errorf("it_admin listing must restrict to it_admin actors, got %+v", store.lastFilter.ActorRole)
	}

	if _, _, err := svc.List(adminCtx(models.RoleSuperAdmin), repositories.AuditFilter{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if store.lastFilter.ExcludeDeletions || store.lastFilter.ActorRole != nil {
		t.Error("super_admin listing must be unrestricted")
	}
}

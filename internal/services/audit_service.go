package services

import (
	"context"
	"fmt"

	"github.com/it-inventory/backend/internal/actor"
	"github.com/it-inventory/backend/internal/metrics"
	"github.com/it-inventory/backend/internal/models"
	"github.com/it-inventory/backend/internal/rbac"
	"github.com/it-inventory/backend/internal/repositories"
	"go.uber.org/zap"
)

// AuditStore is the persistence surface the audit service needs. Append and
// read only; immutability is part of the contract.
type AuditStore interface {
	Log(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter repositories.AuditFilter) ([]models.AuditLog, int, error)
	Actions(ctx context.Context) ([]string, error)
}

// elevatedActions are the action types only recorded when the actor holds
// super-admin privilege. Allocation events need just an authenticated actor.
var elevatedActions = map[string]bool{
	models.ActionAssetCreated:    true,
	models.ActionAssetUpdated:    true,
	models.ActionAssetDeleted:    true,
	models.ActionEmployeeCreated: true,
	models.ActionEmployeeUpdated: true,
	models.ActionEmployeeDeleted: true,
}

type AuditService struct {
	store AuditStore
	log   *zap.Logger
}

func NewAuditService(store AuditStore, log *zap.Logger) *AuditService {
	return &AuditService{store: store, log: log}
}

// Record appends one audit row attributed to the actor in ctx. Anonymous or
// system-initiated work is not logged, and that is not an error: callers
// decide whether such actions should produce a trail at all. A failed write
// never blocks the (already committed) business mutation; it is counted,
// logged, and surfaced as ErrAuditWrite for the caller to relay as a warning.
func (s *AuditService) Record(ctx context.Context, action string, details map[string]any) error {
	act, ok := actor.FromContext(ctx)
	if !ok {
		return nil
	}
	if elevatedActions[action] && !act.Elevated() {
		return nil
	}

	if details == nil {
		details = map[string]any{}
	}
	details["actor_name"] = act.DisplayName()

	entry := &models.AuditLog{
		ActorID:   &act.UserID,
		ActorName: act.DisplayName(),
		Action:    action,
		Details:   details,
	}
	if err := s.store.Log(ctx, entry); err != nil {
		metrics.AuditWriteFailures.Inc()
		s.log.Error("audit write failed",
			zap.String("action", action),
			zap.String("actor", act.Username),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrAuditWrite, err)
	}
	return nil
}

// List applies the requesting actor's visibility before querying: IT admins
// see only entries produced by other IT admins and no deletion events.
func (s *AuditService) List(ctx context.Context, filter repositories.AuditFilter) ([]models.AuditLog, int, error) {
	if act, ok := actor.FromContext(ctx); ok && !act.Elevated() {
		if !rbac.HasPermission(act.Role, rbac.PermViewDeletionLogs) {
			filter.ExcludeDeletions = true
		}
		role := models.RoleITAdmin
		filter.ActorRole = &role
	}
	return s.store.List(ctx, filter)
}

func (s *AuditService) Actions(ctx context.Context) ([]string, error) {
	return s.store.Actions(ctx)
}

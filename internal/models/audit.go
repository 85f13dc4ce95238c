package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit action types
const (
	ActionAssetAssigned   = "ASSET_ASSIGNED"
	ActionAssetReturned   = "ASSET_RETURNED"
	ActionAssetCreated    = "ASSET_CREATED"
	ActionAssetUpdated    = "ASSET_UPDATED"
	ActionAssetDeleted    = "ASSET_DELETED"
	ActionEmployeeCreated = "EMPLOYEE_CREATED"
	ActionEmployeeUpdated = "EMPLOYEE_UPDATED"
	ActionEmployeeDeleted = "EMPLOYEE_DELETED"
)

// AuditLog is an append-only record of a state-changing event. Rows are never
// updated or deleted; the schema backs this with a guard trigger and the
// repository exposes no mutation beyond insert.
type AuditLog struct {
	ID        uuid.UUID  `json:"id"`
	ActorID   *uuid.UUID `json:"actor_id,omitempty"` // null once the account is deleted
	ActorName string     `json:"actor_name"`         // denormalized, survives account deletion
	Action    string     `json:"action"`
	Details   any        `json:"details,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

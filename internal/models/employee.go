package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee statuses
const (
	EmployeeStatusActive   = "Active"
	EmployeeStatusInactive = "Inactive"
	EmployeeStatusOnLeave  = "On Leave"
)

type Employee struct {
	ID            uuid.UUID  `json:"id"`
	UserID        *uuid.UUID `json:"user_id,omitempty"` // optional link to a login account
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	Status        string     `json:"status"`
	Designation   *string    `json:"designation,omitempty"`
	DateOfJoining *time.Time `json:"date_of_joining,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// EmployeeWithAssets embeds Employee and adds the currently held assets to
// avoid N+1 queries on list views.
type EmployeeWithAssets struct {
	Employee
	ActiveAssets []AllocationWithAsset `json:"active_assets,omitempty"`
}

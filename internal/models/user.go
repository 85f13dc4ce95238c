package models

import (
	"time"

	"github.com/google/uuid"
)

// Account roles
const (
	RoleEmployee   = "employee"
	RoleITAdmin    = "it_admin"
	RoleSuperAdmin = "super_admin"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleITAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User is a login account. It is distinct from Employee: an employee record
// may exist without an account and vice versa.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

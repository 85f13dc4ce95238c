package rbac

import (
	"testing"

	"github.com/it-inventory/backend/internal/models"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission Permission
		expected   bool
	}{
		{models.RoleSuperAdmin, PermManageAssets, true},
		{models.RoleSuperAdmin, PermManageEmployees, true},
		{models.RoleSuperAdmin, PermAllocateAssets, true},
		{models.RoleSuperAdmin, PermViewDeletionLogs, true},

		{models.RoleITAdmin, PermAllocateAssets, true},
		{models.RoleITAdmin, PermViewInventory, true},
		{models.RoleITAdmin, PermViewAuditLogs, true},
		{models.RoleITAdmin, PermManageAssets, false},
		{models.RoleITAdmin, PermManageEmployees, false},
		{models.RoleITAdmin, PermViewDeletionLogs, false},
		{models.RoleITAdmin, PermOverrideStatus, false},

		{models.RoleEmployee, PermViewInventory, false},
		{models.RoleEmployee, PermAllocateAssets, false},

		{"unknown", PermViewInventory, false},
		{models.RoleSuperAdmin, "unknown_permission", false},
	}

	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.permission); got != tt.expected {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.expected)
		}
	}
}

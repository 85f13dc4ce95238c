package rbac

import "github.com/it-inventory/backend/internal/models"

// Permission names a single capability a role may hold.
type Permission string

const (
	PermManageAssets     Permission = "manage_assets"      // create/update/delete assets, bulk import
	PermOverrideStatus   Permission = "override_status"    // manual Under Repair / Retired overrides
	PermManageEmployees  Permission = "manage_employees"   // create/update/delete employees, bulk import
	PermViewInventory    Permission = "view_inventory"     // list/search assets and employees
	PermAllocateAssets   Permission = "allocate_assets"    // assign and return
	PermViewAuditLogs    Permission = "view_audit_logs"    // read the audit trail
	PermViewDeletionLogs Permission = "view_deletion_logs" // DELETED entries in the audit trail
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]Permission{
	models.RoleSuperAdmin: {
		PermManageAssets, PermOverrideStatus, PermManageEmployees, PermViewInventory,
		PermAllocateAssets, PermViewAuditLogs, PermViewDeletionLogs,
	},
	models.RoleITAdmin: {
		PermViewInventory, PermAllocateAssets, PermViewAuditLogs,
		// IT admins CANNOT: PermManageAssets, PermManageEmployees, PermViewDeletionLogs
	},
	models.RoleEmployee: {},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role string, permission Permission) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

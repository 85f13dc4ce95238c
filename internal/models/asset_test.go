package models

import "testing"

func TestIsValidAssetTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Manual overrides
		{AssetStatusAvailable, AssetStatusUnderRepair, true},
		{AssetStatusAvailable, AssetStatusRetired, true},
		{AssetStatusUnderRepair, AssetStatusAvailable, true},
		{AssetStatusUnderRepair, AssetStatusRetired, true},

		// Allocated only moves through the allocation state machine
		{AssetStatusAllocated, AssetStatusAvailable, false},
		{AssetStatusAllocated, AssetStatusUnderRepair, false},
		{AssetStatusAllocated, AssetStatusRetired, false},
		{AssetStatusAvailable, AssetStatusAllocated, false},

		// Retired is terminal
		{AssetStatusRetired, AssetStatusAvailable, false},
		{AssetStatusRetired, AssetStatusUnderRepair, false},

		// No self-transitions or unknown states
		{AssetStatusAvailable, AssetStatusAvailable, false},
		{"Lost", AssetStatusRetired, false},
		{AssetStatusAvailable, "Lost", false},
	}

	for _, tt := range tests {
		if got := IsValidAssetTransition(tt.from, tt.to); got != tt.expected {
			t.Errorf("IsValidAssetTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{RoleEmployee, RoleITAdmin, RoleSuperAdmin} {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = false, want true", role)
		}
	}
	if IsValidRole("root") {
		t.Error("IsValidRole(\"root\") = true, want false")
	}
	if IsValidRole("") {
		t.Error("IsValidRole(\"\") = true, want false")
	}
}

package models

import "time"

// Asset statuses
const (
	AssetStatusAvailable   = "Available"
	AssetStatusAllocated   = "Allocated"
	AssetStatusUnderRepair = "Under Repair"
	AssetStatusRetired     = "Retired"
)

// ValidAssetTransitions lists the manual status overrides an administrator may
// apply directly. Allocated is absent on purpose: assets only enter and leave
// it through the allocation state machine.
var ValidAssetTransitions = map[string][]string{
	AssetStatusAvailable:   {AssetStatusUnderRepair, AssetStatusRetired},
	AssetStatusUnderRepair: {AssetStatusAvailable, AssetStatusRetired},
	AssetStatusAllocated:   {},
	AssetStatusRetired:     {},
}

func IsValidAssetTransition(from, to string) bool {
	allowed, ok := ValidAssetTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Asset is a trackable physical unit, keyed by its business asset tag rather
// than a surrogate id.
type Asset struct {
	AssetID        string     `json:"asset_id"`
	AssetType      string     `json:"asset_type"` // Laptop / Monitor / ...
	Brand          *string    `json:"brand,omitempty"`
	Model          *string    `json:"model,omitempty"`
	SerialNumber   string     `json:"serial_number"`
	Processor      *string    `json:"processor,omitempty"`
	RAMGB          *int       `json:"ram_gb,omitempty"`
	StorageSizeGB  *int       `json:"storage_size_gb,omitempty"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty"`
	WarrantyExpiry *time.Time `json:"warranty_expiry,omitempty"`
	Status         string     `json:"status"`
	Remarks        *string    `json:"remarks,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

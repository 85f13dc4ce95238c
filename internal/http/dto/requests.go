package dto

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Employees

type CreateEmployeeRequest struct {
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	Designation   *string    `json:"designation,omitempty"`
	Status        string     `json:"status,omitempty"`
	DateOfJoining *time.Time `json:"date_of_joining,omitempty"`
}

type UpdateEmployeeRequest struct {
	FullName      *string    `json:"full_name,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Designation   *string    `json:"designation,omitempty"`
	Status        *string    `json:"status,omitempty"`
	DateOfJoining *time.Time `json:"date_of_joining,omitempty"`
}

// Assets

type CreateAssetRequest struct {
	AssetID        string     `json:"asset_id"`
	AssetType      string     `json:"asset_type,omitempty"`
	Brand          *string    `json:"brand,omitempty"`
	Model          *string    `json:"model,omitempty"`
	SerialNumber   string     `json:"serial_number"`
	Processor      *string    `json:"processor,omitempty"`
	RAMGB          *int       `json:"ram_gb,omitempty"`
	StorageSizeGB  *int       `json:"storage_size_gb,omitempty"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty"`
	WarrantyExpiry *time.Time `json:"warranty_expiry,omitempty"`
	Status         string     `json:"status,omitempty"`
	Remarks        *string    `json:"remarks,omitempty"`
}

type UpdateAssetRequest struct {
	AssetType      *string    `json:"asset_type,omitempty"`
	Brand          *string    `json:"brand,omitempty"`
	Model          *string    `json:"model,omitempty"`
	SerialNumber   *string    `json:"serial_number,omitempty"`
	Processor      *string    `json:"processor,omitempty"`
	RAMGB          *int       `json:"ram_gb,omitempty"`
	StorageSizeGB  *int       `json:"storage_size_gb,omitempty"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty"`
	WarrantyExpiry *time.Time `json:"warranty_expiry,omitempty"`
	Remarks        *string    `json:"remarks,omitempty"`
}

type OverrideStatusRequest struct {
	Status string `json:"status"`
}

// Allocations

type AssignAssetRequest struct {
	EmployeeEmail string `json:"employee_email"`
	AssetID       string `json:"asset_id"`

	AssignedDate             *time.Time `json:"assigned_date,omitempty"`
	AllocationReason         *string    `json:"allocation_reason,omitempty"`
	AssetConditionOnAlloc    *string    `json:"asset_condition_on_alloc,omitempty"`
	ChargerStatus            *string    `json:"charger_status,omitempty"`
	BagStatus                *string    `json:"bag_status,omitempty"`
	KeyboardAndTouchpadState *string    `json:"keyboard_and_touchpad_status,omitempty"`
	AllocationLocation       *string    `json:"allocation_location,omitempty"`
	DeliveryType             *string    `json:"delivery_type,omitempty"`
	AllocationDocketID       *string    `json:"allocation_docket_id,omitempty"`
}

type ReturnAssetRequest struct {
	EmployeeEmail string `json:"employee_email"`
	AssetID       string `json:"asset_id"`

	ReturnedDate        *time.Time `json:"returned_date,omitempty"`
	ReturnReason        *string    `json:"return_reason,omitempty"`
	Purpose             *string    `json:"purpose,omitempty"`
	AssetPowerStatus    *string    `json:"asset_power_status,omitempty"`
	AssetScreenStatus   *string    `json:"asset_screen_status,omitempty"`
	ChargerReturnStatus *string    `json:"charger_return_status,omitempty"`
	BagReturnStatus     *string    `json:"bag_return_status,omitempty"`
	ReturnLocation      *string    `json:"return_location,omitempty"`
	ReturnDocketID      *string    `json:"return_docket_id,omitempty"`
	Remarks             *string    `json:"remarks,omitempty"`
}

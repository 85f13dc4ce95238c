package models

import (
	"time"

	"github.com/google/uuid"
)

// Allocation transaction statuses
const (
	TransactionStatusAllocated = "Allocated"
	TransactionStatusReturned  = "Returned"
	TransactionStatusInRepair  = "In Repair"
)

// Allocation is one assignment-to-return cycle for an (employee, asset) pair.
// The row is created at assignment time and mutated in place at return time;
// it is never re-created for the return leg.
type Allocation struct {
	ID         uuid.UUID  `json:"id"`
	AssetID    string     `json:"asset_id"`
	EmployeeID uuid.UUID  `json:"employee_id"`
	HandledBy  *uuid.UUID `json:"handled_by,omitempty"` // IT handler account id

	// Assignment leg
	AssignedDate             *time.Time `json:"assigned_date,omitempty"`
	AllocationReason         *string    `json:"allocation_reason,omitempty"`
	AssetConditionOnAlloc    *string    `json:"asset_condition_on_alloc,omitempty"`
	ChargerStatus            *string    `json:"charger_status,omitempty"`
	BagStatus                *string    `json:"bag_status,omitempty"`
	KeyboardAndTouchpadState *string    `json:"keyboard_and_touchpad_status,omitempty"`
	AllocationLocation       *string    `json:"allocation_location,omitempty"`
	DeliveryType             *string    `json:"delivery_type,omitempty"` // In Person / Courier
	AllocationDocketID       *string    `json:"allocation_docket_id,omitempty"`

	// Return leg, nullable until the asset comes back
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

	TransactionStatus string    `json:"transaction_status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AssignmentMetadata carries the caller-supplied fields of the assignment leg.
type AssignmentMetadata struct {
	AssignedDate             *time.Time
	AllocationReason         *string
	AssetConditionOnAlloc    *string
	ChargerStatus            *string
	BagStatus                *string
	KeyboardAndTouchpadState *string
	AllocationLocation       *string
	DeliveryType             *string
	AllocationDocketID       *string
}

// ReturnMetadata mirrors AssignmentMetadata for the return leg.
type ReturnMetadata struct {
	ReturnedDate        *time.Time
	ReturnReason        *string
	Purpose             *string
	AssetPowerStatus    *string
	AssetScreenStatus   *string
	ChargerReturnStatus *string
	BagReturnStatus     *string
	ReturnLocation      *string
	ReturnDocketID      *string
	Remarks             *string
}

// AllocationWithAsset embeds Allocation plus the asset's display fields.
type AllocationWithAsset struct {
	Allocation
	AssetSerial *string `json:"asset_serial,omitempty"`
	AssetModel  *string `json:"asset_model,omitempty"`
	AssetBrand  *string `json:"asset_brand,omitempty"`
}

// AllocationWithDetails adds employee display fields as well, for history and
// search views.
type AllocationWithDetails struct {
	AllocationWithAsset
	EmployeeName  *string `json:"employee_name,omitempty"`
	EmployeeEmail *string `json:"employee_email,omitempty"`
}

package services

import "errors"

// Failure kinds surfaced by the allocation state machine and the CRUD
// services. Handlers map them to HTTP responses with errors.Is.
var (
	// ErrUnknownEmployee: assign/return referenced an email with no matching
	// employee. No mutation occurs.
	ErrUnknownEmployee = errors.New("employee with this email does not exist")

	// ErrAssetNotFound: the asset tag matches nothing.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrAssetNotAvailable: assign attempted on a non-Available asset. No
	// mutation occurs.
	ErrAssetNotAvailable = errors.New("asset is not available for allocation")

	// ErrNoActiveAllocation: return attempted with no active allocation for
	// the (employee, asset) pair, including when the asset is held by a
	// different employee. No mutation occurs.
	ErrNoActiveAllocation = errors.New("no active allocation for this asset and employee combination")

	// ErrAllocationInvariant: more than one active allocation exists for one
	// asset, or the asset status disagrees with the allocation rows. Indicates
	// a prior bug or race; never auto-repaired.
	ErrAllocationInvariant = errors.New("allocation state corrupt for asset")

	// ErrAuditWrite: the business mutation committed but its audit record
	// failed to write. The result is still valid; the caller surfaces this as
	// a warning.
	ErrAuditWrite = errors.New("audit record could not be written")

	ErrDuplicate         = errors.New("record with this identifier already exists")
	ErrEmployeeHasAssets = errors.New("employee still holds allocated assets")
	ErrAssetAllocated    = errors.New("asset is currently allocated")
	ErrInvalidTransition = errors.New("invalid asset status transition")
)

package domain

import "errors"

// Lookup errors
var (
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrDockNotFound           = errors.New("dock not found")
	ErrYardSpotNotFound       = errors.New("yard spot not found")
	ErrManifestNotFound       = errors.New("cargo manifest not found")
	ErrReceivingOrderNotFound = errors.New("receiving order not found")
	ErrPalletNotFound         = errors.New("pallet not found")
	ErrInventoryNotFound      = errors.New("inventory record not found")
)

// Scheduling errors
var (
	ErrInvalidTimeRange        = errors.New("start time must be before end time")
	ErrInvalidAppointmentType  = errors.New("invalid appointment type")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrSlotUnavailable         = errors.New("dock slot overlaps an existing appointment")
	ErrNoScheduledAppointment  = errors.New("no scheduled appointment for truck today")
)

// Occupancy errors
var (
	ErrSpotUnavailable = errors.New("yard spot is not available")
	ErrDockOccupied    = errors.New("dock is already occupied")
)

// Manifest errors
var (
	ErrNoManifestLines         = errors.New("manifest must have at least one line")
	ErrManifestAlreadyAttached = errors.New("appointment already has a manifest")
)

// Materialization errors; these indicate an event published inconsistently
// with committed state and are fatal for that event
var (
	ErrMissingAccount = errors.New("receiving order has no billing account")
)

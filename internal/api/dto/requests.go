package dto

import "time"

// ScheduleAppointmentRequest represents the request to schedule a dock appointment
type ScheduleAppointmentRequest struct {
	AppointmentID string    `json:"appointmentId,omitempty"`
	DockID        string    `json:"dockId" binding:"required,dock_id"`
	TruckID       string    `json:"truckId,omitempty"`
	SupplierID    string    `json:"supplierId" binding:"required"`
	AccountID     string    `json:"accountId" binding:"required"`
	StartTime     time.Time `json:"startTime" binding:"required"`
	EndTime       time.Time `json:"endTime" binding:"required"`
	Type          string    `json:"type" binding:"required,oneof=receiving shipping"`
}

// RescheduleAppointmentRequest represents the request to move an appointment
// to a new window
type RescheduleAppointmentRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

// CancelAppointmentRequest represents the request to cancel an appointment
type CancelAppointmentRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ManifestLineRequest represents one declared material on a manifest
type ManifestLineRequest struct {
	MaterialID       string  `json:"materialId" binding:"required"`
	Description      string  `json:"description,omitempty"`
	ExpectedQuantity float64 `json:"expectedQuantity" binding:"required,gt=0"`
}

// AttachManifestRequest represents the request to attach a cargo manifest
// to an appointment
type AttachManifestRequest struct {
	Lines []ManifestLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// CheckInTruckRequest represents the request to check a truck into a yard spot
type CheckInTruckRequest struct {
	TruckID string `json:"truckId" binding:"required,truck_id"`
	SpotID  string `json:"spotId" binding:"required,spot_id"`
}

// AssignToDockRequest represents the request to move a checked-in truck
// from its yard spot to the appointment's dock
type AssignToDockRequest struct {
	SpotID        string `json:"spotId" binding:"required,spot_id"`
	AppointmentID string `json:"appointmentId" binding:"required"`
}

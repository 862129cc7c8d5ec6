package application

import "time"

// ScheduleAppointmentCommand represents a command to create a dock appointment
type ScheduleAppointmentCommand struct {
	// Optional explicit appointment ID (will be generated if not provided)
	AppointmentID string `json:"appointmentId"`

	DockID     string    `json:"dockId" binding:"required"`
	TruckID    string    `json:"truckId"`
	SupplierID string    `json:"supplierId" binding:"required"`
	AccountID  string    `json:"accountId" binding:"required"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
	Type       string    `json:"type" binding:"required,oneof=receiving shipping"`
}

// CancelAppointmentCommand represents a command to cancel an appointment
type CancelAppointmentCommand struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	Reason        string `json:"reason"`
}

// RescheduleAppointmentCommand represents a command to move an appointment window
type RescheduleAppointmentCommand struct {
	AppointmentID string    `json:"appointmentId" binding:"required"`
	StartTime     time.Time `json:"startTime" binding:"required"`
	EndTime       time.Time `json:"endTime" binding:"required"`
}

// ManifestLineInput represents one declared manifest line
type ManifestLineInput struct {
	MaterialID       string  `json:"materialId" binding:"required"`
	Description      string  `json:"description"`
	ExpectedQuantity float64 `json:"expectedQuantity" binding:"required,gt=0"`
}

// AttachManifestCommand represents a command to attach a cargo manifest
type AttachManifestCommand struct {
	AppointmentID string              `json:"appointmentId" binding:"required"`
	ManifestID    string              `json:"manifestId"`
	Lines         []ManifestLineInput `json:"lines" binding:"required,min=1,dive"`
}

// CheckInTruckCommand represents a command to check a truck in to a yard spot
type CheckInTruckCommand struct {
	TruckID string `json:"truckId" binding:"required"`
	SpotID  string `json:"spotId" binding:"required"`
}

// AssignToDockCommand represents a command to move a truck from its yard
// spot to the appointment's dock
type AssignToDockCommand struct {
	SpotID        string `json:"spotId" binding:"required"`
	AppointmentID string `json:"appointmentId" binding:"required"`
}

// VacateSpotCommand represents a command to release a yard spot
type VacateSpotCommand struct {
	SpotID string `json:"spotId" binding:"required"`
}

package domain

import "time"

// DomainEvent represents a domain event interface
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// AppointmentScheduledEvent is emitted when a dock appointment is created
type AppointmentScheduledEvent struct {
	AppointmentID string    `json:"appointmentId"`
	DockID        string    `json:"dockId"`
	TruckID       string    `json:"truckId,omitempty"`
	SupplierID    string    `json:"supplierId"`
	Type          string    `json:"type"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	ScheduledBy   string    `json:"scheduledBy"`
	OccurredAt_   time.Time `json:"occurredAt"`
}

func (e *AppointmentScheduledEvent) EventType() string     { return "yard.appointment.scheduled" }
func (e *AppointmentScheduledEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// AppointmentRescheduledEvent is emitted when an appointment window moves
type AppointmentRescheduledEvent struct {
	AppointmentID string    `json:"appointmentId"`
	DockID        string    `json:"dockId"`
	OldStartTime  time.Time `json:"oldStartTime"`
	OldEndTime    time.Time `json:"oldEndTime"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	RescheduledBy string    `json:"rescheduledBy"`
	OccurredAt_   time.Time `json:"occurredAt"`
}

func (e *AppointmentRescheduledEvent) EventType() string     { return "yard.appointment.rescheduled" }
func (e *AppointmentRescheduledEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// AppointmentCancelledEvent is emitted when an appointment is cancelled
type AppointmentCancelledEvent struct {
	AppointmentID string    `json:"appointmentId"`
	DockID        string    `json:"dockId"`
	Reason        string    `json:"reason,omitempty"`
	CancelledBy   string    `json:"cancelledBy"`
	OccurredAt_   time.Time `json:"occurredAt"`
}

func (e *AppointmentCancelledEvent) EventType() string     { return "yard.appointment.cancelled" }
func (e *AppointmentCancelledEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// TruckCheckedInEvent is emitted when a truck is checked in to a yard spot
type TruckCheckedInEvent struct {
	AppointmentID string    `json:"appointmentId"`
	TruckID       string    `json:"truckId"`
	SpotID        string    `json:"spotId"`
	CheckedInBy   string    `json:"checkedInBy"`
	CheckedInAt   time.Time `json:"checkedInAt"`
}

func (e *TruckCheckedInEvent) EventType() string     { return "yard.truck.checked_in" }
func (e *TruckCheckedInEvent) OccurredAt() time.Time { return e.CheckedInAt }

// DockStatusChangedEvent is emitted when a dock is occupied or vacated
type DockStatusChangedEvent struct {
	DockID        string    `json:"dockId"`
	Available     bool      `json:"available"`
	AppointmentID string    `json:"appointmentId,omitempty"`
	OccurredAt_   time.Time `json:"occurredAt"`
}

func (e *DockStatusChangedEvent) EventType() string     { return "yard.dock.status_changed" }
func (e *DockStatusChangedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// PalletReceivedEvent is raised by the receiving workflow after a pallet's
// lines complete processing; it carries the destination location for
// materialized inventory.
type PalletReceivedEvent struct {
	PalletID         string    `json:"palletId"`
	ReceivingOrderID string    `json:"receivingOrderId"`
	LocationID       string    `json:"locationId"`
	ReceivedBy       string    `json:"receivedBy"`
	ReceivedAt       time.Time `json:"receivedAt"`
}

func (e *PalletReceivedEvent) EventType() string     { return "receiving.pallet.received" }
func (e *PalletReceivedEvent) OccurredAt() time.Time { return e.ReceivedAt }

// MaterialReceivedEvent is raised when a single pallet line is re-measured
// or completed after the pallet-level event already fired
type MaterialReceivedEvent struct {
	PalletID         string    `json:"palletId"`
	PalletLineID     string    `json:"palletLineId"`
	ReceivingOrderID string    `json:"receivingOrderId"`
	LocationID       string    `json:"locationId"`
	ReceivedBy       string    `json:"receivedBy"`
	ReceivedAt       time.Time `json:"receivedAt"`
}

func (e *MaterialReceivedEvent) EventType() string     { return "receiving.material.received" }
func (e *MaterialReceivedEvent) OccurredAt() time.Time { return e.ReceivedAt }

// InventoryMaterializedEvent is emitted after inventory records for a pallet
// are committed
type InventoryMaterializedEvent struct {
	PalletID     string    `json:"palletId"`
	LocationID   string    `json:"locationId"`
	CreatedCount int       `json:"createdCount"`
	UpdatedCount int       `json:"updatedCount"`
	SkippedCount int       `json:"skippedCount"`
	OccurredAt_  time.Time `json:"occurredAt"`
}

func (e *InventoryMaterializedEvent) EventType() string     { return "inventory.materialized" }
func (e *InventoryMaterializedEvent) OccurredAt() time.Time { return e.OccurredAt_ }

// PutawayRequestedEvent is emitted once per non-cross-dock pallet after its
// inventory writes commit
type PutawayRequestedEvent struct {
	PalletID    string    `json:"palletId"`
	LocationID  string    `json:"locationId"`
	LineCount   int       `json:"lineCount"`
	RequestedAt time.Time `json:"requestedAt"`
}

func (e *PutawayRequestedEvent) EventType() string     { return "yard.putaway.requested" }
func (e *PutawayRequestedEvent) OccurredAt() time.Time { return e.RequestedAt }

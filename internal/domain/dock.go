package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dock is a physical loading bay with single-occupant semantics. Occupancy
// is tied to the appointment currently being worked at the dock.
type Dock struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DockID               string             `bson:"dockId" json:"dockId"`
	WarehouseID          string             `bson:"warehouseId" json:"warehouseId"`
	CurrentAppointmentID string             `bson:"currentAppointmentId" json:"currentAppointmentId,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
	DomainEvents         []DomainEvent      `bson:"-" json:"-"`
}

// NewDock creates a new Dock entity
func NewDock(dockID, warehouseID string) *Dock {
	now := time.Now().UTC()
	return &Dock{
		ID:           primitive.NewObjectID(),
		DockID:       dockID,
		WarehouseID:  warehouseID,
		CreatedAt:    now,
		UpdatedAt:    now,
		DomainEvents: make([]DomainEvent, 0),
	}
}

// IsOccupied returns true if an appointment currently holds the dock
func (d *Dock) IsOccupied() bool {
	return d.CurrentAppointmentID != ""
}

// Occupy binds the dock to an appointment. A dock can be occupied by at
// most one appointment at a time.
func (d *Dock) Occupy(appointmentID string) error {
	if d.IsOccupied() {
		return ErrDockOccupied
	}

	now := time.Now().UTC()
	d.CurrentAppointmentID = appointmentID
	d.UpdatedAt = now

	d.addDomainEvent(&DockStatusChangedEvent{
		DockID:        d.DockID,
		Available:     false,
		AppointmentID: appointmentID,
		OccurredAt_:   now,
	})

	return nil
}

// Vacate releases the dock. Vacating an already-free dock is a no-op.
func (d *Dock) Vacate() {
	if !d.IsOccupied() {
		return
	}

	now := time.Now().UTC()
	appointmentID := d.CurrentAppointmentID
	d.CurrentAppointmentID = ""
	d.UpdatedAt = now

	d.addDomainEvent(&DockStatusChangedEvent{
		DockID:        d.DockID,
		Available:     true,
		AppointmentID: appointmentID,
		OccurredAt_:   now,
	})
}

// addDomainEvent adds a domain event
func (d *Dock) addDomainEvent(event DomainEvent) {
	d.DomainEvents = append(d.DomainEvents, event)
}

// GetDomainEvents returns all domain events
func (d *Dock) GetDomainEvents() []DomainEvent {
	return d.DomainEvents
}

// ClearDomainEvents clears all domain events
func (d *Dock) ClearDomainEvents() {
	d.DomainEvents = make([]DomainEvent, 0)
}

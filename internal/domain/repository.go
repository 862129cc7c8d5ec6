package domain

import (
	"context"
	"time"
)

// AppointmentRepository defines the interface for appointment persistence
type AppointmentRepository interface {
	// Save persists an appointment (upsert)
	Save(ctx context.Context, appointment *Appointment) error

	// FindByID retrieves an appointment by its AppointmentID
	FindByID(ctx context.Context, appointmentID string) (*Appointment, error)

	// FindByDock retrieves non-cancelled appointments for a dock within a window
	FindByDock(ctx context.Context, dockID string, from, to time.Time) ([]*Appointment, error)

	// FindScheduledForTruck retrieves a truck's scheduled appointments whose
	// start time falls within [dayStart, dayEnd), ordered by start time
	FindScheduledForTruck(ctx context.Context, truckID string, dayStart, dayEnd time.Time) ([]*Appointment, error)

	// IsSlotAvailable reports whether [start, end) on a dock is free of
	// non-cancelled appointments, half-open interval semantics. An empty
	// excludeAppointmentID excludes nothing.
	IsSlotAvailable(ctx context.Context, dockID string, start, end time.Time, excludeAppointmentID string) (bool, error)

	// ScheduleIfAvailable checks slot availability and inserts the
	// appointment inside a single transaction; a losing concurrent writer
	// observes ErrSlotUnavailable
	ScheduleIfAvailable(ctx context.Context, appointment *Appointment) error

	// RescheduleIfAvailable checks the new window (excluding the appointment
	// itself) and saves inside a single transaction
	RescheduleIfAvailable(ctx context.Context, appointment *Appointment) error
}

// DockRepository defines the interface for dock persistence
type DockRepository interface {
	Save(ctx context.Context, dock *Dock) error
	FindByID(ctx context.Context, dockID string) (*Dock, error)
	FindByWarehouse(ctx context.Context, warehouseID string) ([]*Dock, error)

	// OccupyIfVacant persists the dock only if the stored dock holds no
	// current appointment; a concurrent assignment losing the race
	// observes ErrDockOccupied
	OccupyIfVacant(ctx context.Context, dock *Dock) error
}

// YardSpotRepository defines the interface for yard spot persistence
type YardSpotRepository interface {
	Save(ctx context.Context, spot *YardSpot) error
	FindByID(ctx context.Context, spotID string) (*YardSpot, error)
	FindAvailable(ctx context.Context, warehouseID string) ([]*YardSpot, error)

	// UpdateIfStatus persists the spot only if its stored status still
	// equals expectedStatus; a concurrent writer losing the race observes
	// ErrSpotUnavailable
	UpdateIfStatus(ctx context.Context, spot *YardSpot, expectedStatus SpotStatus) error
}

// ManifestRepository defines the interface for cargo manifest persistence
type ManifestRepository interface {
	Save(ctx context.Context, manifest *CargoManifest) error
	FindByID(ctx context.Context, manifestID string) (*CargoManifest, error)
	FindByAppointment(ctx context.Context, appointmentID string) (*CargoManifest, error)
}

// ReceivingRepository reads the receiving aggregate owned by the receiving
// workflow
type ReceivingRepository interface {
	FindByID(ctx context.Context, orderID string) (*ReceivingOrder, error)
	FindByPalletID(ctx context.Context, palletID string) (*ReceivingOrder, error)
}

// InventoryRepository defines the interface for inventory persistence
type InventoryRepository interface {
	Save(ctx context.Context, inventory *MaterialInventory) error
	FindByPalletLineID(ctx context.Context, palletLineID string) (*MaterialInventory, error)
	FindByPalletID(ctx context.Context, palletID string) ([]*MaterialInventory, error)
}

// UnitOfWork runs fn inside one transaction; all repository calls made with
// the context passed to fn join that transaction
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher defines the interface for publishing domain events.
// Publication happens strictly after the triggering transaction commits.
type EventPublisher interface {
	// Publish publishes a domain event
	Publish(ctx context.Context, event DomainEvent) error

	// PublishAll publishes multiple domain events
	PublishAll(ctx context.Context, events []DomainEvent) error
}

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentStatus represents the status of a dock appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// IsValid checks if the status is valid
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transitions are allowed
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// CanTransitionTo checks if the status can transition to another status
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	validTransitions := map[AppointmentStatus][]AppointmentStatus{
		AppointmentStatusScheduled:  {AppointmentStatusInProgress, AppointmentStatusCancelled},
		AppointmentStatusInProgress: {AppointmentStatusCompleted, AppointmentStatusCancelled},
		AppointmentStatusCompleted:  {},
		AppointmentStatusCancelled:  {},
	}

	allowedTargets, exists := validTransitions[s]
	if !exists {
		return false
	}

	for _, allowed := range allowedTargets {
		if target == allowed {
			return true
		}
	}
	return false
}

// AppointmentType distinguishes inbound from outbound appointments
type AppointmentType string

const (
	AppointmentTypeReceiving AppointmentType = "receiving"
	AppointmentTypeShipping  AppointmentType = "shipping"
)

// IsValid checks if the appointment type is valid
func (t AppointmentType) IsValid() bool {
	return t == AppointmentTypeReceiving || t == AppointmentTypeShipping
}

// Appointment is the aggregate root for dock reservations. State is mutated
// only through its methods; callers re-validate slot availability before
// Reschedule, which performs pure state mutation.
type Appointment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppointmentID string             `bson:"appointmentId" json:"appointmentId"`
	DockID        string             `bson:"dockId" json:"dockId"`
	TruckID       string             `bson:"truckId,omitempty" json:"truckId,omitempty"`
	SupplierID    string             `bson:"supplierId" json:"supplierId"`
	AccountID     string             `bson:"accountId" json:"accountId"`
	StartTime     time.Time          `bson:"startTime" json:"startTime"`
	EndTime       time.Time          `bson:"endTime" json:"endTime"`
	Type          AppointmentType    `bson:"type" json:"type"`
	Status        AppointmentStatus  `bson:"status" json:"status"`
	ManifestID    string             `bson:"manifestId,omitempty" json:"manifestId,omitempty"`
	CreatedBy     string             `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
	DomainEvents  []DomainEvent      `bson:"-" json:"-"`
}

// NewAppointment creates a new Appointment aggregate
func NewAppointment(
	appointmentID string,
	dockID string,
	truckID string,
	supplierID string,
	accountID string,
	startTime time.Time,
	endTime time.Time,
	appointmentType AppointmentType,
	actorID string,
) (*Appointment, error) {
	if !appointmentType.IsValid() {
		return nil, ErrInvalidAppointmentType
	}

	if !startTime.Before(endTime) {
		return nil, ErrInvalidTimeRange
	}

	now := time.Now().UTC()
	appointment := &Appointment{
		ID:            primitive.NewObjectID(),
		AppointmentID: appointmentID,
		DockID:        dockID,
		TruckID:       truckID,
		SupplierID:    supplierID,
		AccountID:     accountID,
		StartTime:     startTime,
		EndTime:       endTime,
		Type:          appointmentType,
		Status:        AppointmentStatusScheduled,
		CreatedBy:     actorID,
		CreatedAt:     now,
		UpdatedAt:     now,
		DomainEvents:  make([]DomainEvent, 0),
	}

	appointment.addDomainEvent(&AppointmentScheduledEvent{
		AppointmentID: appointmentID,
		DockID:        dockID,
		TruckID:       truckID,
		SupplierID:    supplierID,
		Type:          string(appointmentType),
		StartTime:     startTime,
		EndTime:       endTime,
		ScheduledBy:   actorID,
		OccurredAt_:   now,
	})

	return appointment, nil
}

// UpdateStatus sets the status unconditionally. Orchestration calls this
// after its side effects succeed and is responsible for sequencing.
func (a *Appointment) UpdateStatus(newStatus AppointmentStatus) error {
	if !newStatus.IsValid() {
		return ErrInvalidStatusTransition
	}

	a.Status = newStatus
	a.UpdatedAt = time.Now().UTC()

	return nil
}

// Start advances the appointment to in_progress when the truck reaches the dock
func (a *Appointment) Start() error {
	if !a.Status.CanTransitionTo(AppointmentStatusInProgress) {
		return ErrInvalidStatusTransition
	}

	a.Status = AppointmentStatusInProgress
	a.UpdatedAt = time.Now().UTC()

	return nil
}

// Complete marks the appointment as completed
func (a *Appointment) Complete() error {
	if !a.Status.CanTransitionTo(AppointmentStatusCompleted) {
		return ErrInvalidStatusTransition
	}

	a.Status = AppointmentStatusCompleted
	a.UpdatedAt = time.Now().UTC()

	return nil
}

// Cancel cancels the appointment. Appointments are never deleted.
func (a *Appointment) Cancel(reason, actorID string) error {
	if a.Status.IsTerminal() {
		return ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	a.Status = AppointmentStatusCancelled
	a.UpdatedAt = now

	a.addDomainEvent(&AppointmentCancelledEvent{
		AppointmentID: a.AppointmentID,
		DockID:        a.DockID,
		Reason:        reason,
		CancelledBy:   actorID,
		OccurredAt_:   now,
	})

	return nil
}

// Reschedule moves the appointment window. It does not re-run conflict
// detection; the caller must re-validate slot availability before the new
// window is committed.
func (a *Appointment) Reschedule(newStart, newEnd time.Time, actorID string) error {
	if a.Status.IsTerminal() {
		return ErrInvalidStatusTransition
	}

	if !newStart.Before(newEnd) {
		return ErrInvalidTimeRange
	}

	now := time.Now().UTC()
	oldStart := a.StartTime
	oldEnd := a.EndTime
	a.StartTime = newStart
	a.EndTime = newEnd
	a.UpdatedAt = now

	a.addDomainEvent(&AppointmentRescheduledEvent{
		AppointmentID: a.AppointmentID,
		DockID:        a.DockID,
		OldStartTime:  oldStart,
		OldEndTime:    oldEnd,
		StartTime:     newStart,
		EndTime:       newEnd,
		RescheduledBy: actorID,
		OccurredAt_:   now,
	})

	return nil
}

// AttachManifest links a cargo manifest to the appointment
func (a *Appointment) AttachManifest(manifestID string) error {
	if a.ManifestID != "" {
		return ErrManifestAlreadyAttached
	}

	a.ManifestID = manifestID
	a.UpdatedAt = time.Now().UTC()

	return nil
}

// Overlaps reports whether the appointment window overlaps [start, end)
// using half-open interval semantics
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime.After(start)
}

// addDomainEvent adds a domain event
func (a *Appointment) addDomainEvent(event DomainEvent) {
	a.DomainEvents = append(a.DomainEvents, event)
}

// GetDomainEvents returns all domain events
func (a *Appointment) GetDomainEvents() []DomainEvent {
	return a.DomainEvents
}

// ClearDomainEvents clears all domain events
func (a *Appointment) ClearDomainEvents() {
	a.DomainEvents = make([]DomainEvent, 0)
}

package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wms-platform/yard-service/internal/domain"
	"github.com/wms-platform/yard-service/pkg/logging"
	"github.com/wms-platform/yard-service/pkg/metrics"
)

// SchedulingService handles appointment scheduling operations
type SchedulingService struct {
	appointments domain.AppointmentRepository
	manifests    domain.ManifestRepository
	uow          domain.UnitOfWork
	publisher    domain.EventPublisher
	metrics      *metrics.Metrics
	logger       *logging.Logger
}

// NewSchedulingService creates a new SchedulingService
func NewSchedulingService(
	appointments domain.AppointmentRepository,
	manifests domain.ManifestRepository,
	uow domain.UnitOfWork,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *logging.Logger,
) *SchedulingService {
	return &SchedulingService{
		appointments: appointments,
		manifests:    manifests,
		uow:          uow,
		publisher:    publisher,
		metrics:      m,
		logger:       logger,
	}
}

// ScheduleAppointment creates a new appointment if the dock slot is free.
// The availability check and the insert run in one transaction; a losing
// concurrent writer observes ErrSlotUnavailable.
func (s *SchedulingService) ScheduleAppointment(ctx context.Context, cmd ScheduleAppointmentCommand, actor Actor) (*domain.Appointment, error) {
	actor = actor.OrSystem()

	appointmentID := cmd.AppointmentID
	if appointmentID == "" {
		appointmentID = fmt.Sprintf("APT-%s", uuid.New().String())
	}

	appointment, err := domain.NewAppointment(
		appointmentID,
		cmd.DockID,
		cmd.TruckID,
		cmd.SupplierID,
		cmd.AccountID,
		cmd.StartTime,
		cmd.EndTime,
		domain.AppointmentType(cmd.Type),
		actor.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.appointments.ScheduleIfAvailable(ctx, appointment); err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			s.metrics.RecordSchedulingConflict()
			s.logger.Warn("Rejected double-booking attempt",
				"dockId", cmd.DockID,
				"startTime", cmd.StartTime,
				"endTime", cmd.EndTime,
			)
		}
		return nil, err
	}

	s.publishEvents(ctx, appointment.GetDomainEvents())
	appointment.ClearDomainEvents()

	s.metrics.RecordAppointmentScheduled(cmd.Type)
	s.logger.Info("Scheduled appointment",
		"appointmentId", appointment.AppointmentID,
		"dockId", appointment.DockID,
		"startTime", appointment.StartTime,
		"endTime", appointment.EndTime,
		"scheduledBy", actor.ID,
	)

	return appointment, nil
}

// CancelAppointment cancels an appointment. Appointments are never deleted.
func (s *SchedulingService) CancelAppointment(ctx context.Context, cmd CancelAppointmentCommand, actor Actor) (*domain.Appointment, error) {
	actor = actor.OrSystem()

	appointment, err := s.appointments.FindByID(ctx, cmd.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, domain.ErrAppointmentNotFound
	}

	if err := appointment.Cancel(cmd.Reason, actor.ID); err != nil {
		return nil, err
	}

	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, appointment.GetDomainEvents())
	appointment.ClearDomainEvents()

	s.logger.Info("Cancelled appointment",
		"appointmentId", cmd.AppointmentID,
		"reason", cmd.Reason,
		"cancelledBy", actor.ID,
	)

	return appointment, nil
}

// RescheduleAppointment moves an appointment window. The aggregate performs
// pure state mutation; slot availability for the new window is re-validated
// by the repository inside the same transaction as the save.
func (s *SchedulingService) RescheduleAppointment(ctx context.Context, cmd RescheduleAppointmentCommand, actor Actor) (*domain.Appointment, error) {
	actor = actor.OrSystem()

	appointment, err := s.appointments.FindByID(ctx, cmd.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, domain.ErrAppointmentNotFound
	}

	if err := appointment.Reschedule(cmd.StartTime, cmd.EndTime, actor.ID); err != nil {
		return nil, err
	}

	if err := s.appointments.RescheduleIfAvailable(ctx, appointment); err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			s.metrics.RecordSchedulingConflict()
		}
		return nil, err
	}

	s.publishEvents(ctx, appointment.GetDomainEvents())
	appointment.ClearDomainEvents()

	s.logger.Info("Rescheduled appointment",
		"appointmentId", cmd.AppointmentID,
		"startTime", cmd.StartTime,
		"endTime", cmd.EndTime,
		"rescheduledBy", actor.ID,
	)

	return appointment, nil
}

// AttachManifest creates a cargo manifest and links it to the appointment.
// Duplicate materials in the declared lines collapse to the first
// occurrence.
func (s *SchedulingService) AttachManifest(ctx context.Context, cmd AttachManifestCommand, actor Actor) (*domain.CargoManifest, error) {
	actor = actor.OrSystem()

	appointment, err := s.appointments.FindByID(ctx, cmd.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, domain.ErrAppointmentNotFound
	}

	manifestID := cmd.ManifestID
	if manifestID == "" {
		manifestID = fmt.Sprintf("MAN-%s", uuid.New().String())
	}

	lines := make([]domain.ManifestLine, 0, len(cmd.Lines))
	for _, line := range cmd.Lines {
		lines = append(lines, domain.ManifestLine{
			MaterialID:       line.MaterialID,
			Description:      line.Description,
			ExpectedQuantity: line.ExpectedQuantity,
		})
	}

	manifest, duplicates, err := domain.NewCargoManifest(manifestID, cmd.AppointmentID, lines, actor.ID)
	if err != nil {
		return nil, err
	}

	for _, dup := range duplicates {
		s.logger.Warn("Dropped duplicate manifest line",
			"manifestId", manifestID,
			"materialId", dup.MaterialID,
			"expectedQuantity", dup.ExpectedQuantity,
		)
	}

	if err := appointment.AttachManifest(manifestID); err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		if err := s.manifests.Save(txCtx, manifest); err != nil {
			return err
		}
		return s.appointments.Save(txCtx, appointment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Attached manifest",
		"manifestId", manifestID,
		"appointmentId", cmd.AppointmentID,
		"lineCount", len(manifest.Lines),
	)

	return manifest, nil
}

// GetAppointment retrieves an appointment by id
func (s *SchedulingService) GetAppointment(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, domain.ErrAppointmentNotFound
	}
	return appointment, nil
}

// ListDockAppointments retrieves non-cancelled appointments for a dock
// within a window
func (s *SchedulingService) ListDockAppointments(ctx context.Context, dockID string, from, to time.Time) ([]*domain.Appointment, error) {
	return s.appointments.FindByDock(ctx, dockID, from, to)
}

// IsSlotAvailable reports whether a dock slot is free of non-cancelled
// appointments, half-open interval semantics
func (s *SchedulingService) IsSlotAvailable(ctx context.Context, dockID string, start, end time.Time) (bool, error) {
	if !start.Before(end) {
		return false, domain.ErrInvalidTimeRange
	}
	return s.appointments.IsSlotAvailable(ctx, dockID, start, end, "")
}

// GetManifest retrieves the manifest attached to an appointment
func (s *SchedulingService) GetManifest(ctx context.Context, appointmentID string) (*domain.CargoManifest, error) {
	manifest, err := s.manifests.FindByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if manifest == nil {
		return nil, domain.ErrManifestNotFound
	}
	return manifest, nil
}

func (s *SchedulingService) publishEvents(ctx context.Context, events []domain.DomainEvent) {
	if err := s.publisher.PublishAll(ctx, events); err != nil {
		s.logger.WithError(err).Error("Failed to publish domain events")
	}
}

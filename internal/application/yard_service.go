package application

import (
	"context"
	"time"

	"github.com/wms-platform/yard-service/internal/domain"
	"github.com/wms-platform/yard-service/pkg/logging"
	"github.com/wms-platform/yard-service/pkg/metrics"
)

// YardService orchestrates yard-spot and dock occupancy workflows
type YardService struct {
	appointments domain.AppointmentRepository
	docks        domain.DockRepository
	spots        domain.YardSpotRepository
	uow          domain.UnitOfWork
	publisher    domain.EventPublisher
	metrics      *metrics.Metrics
	logger       *logging.Logger
	location     *time.Location
}

// NewYardService creates a new YardService. The location defines the
// warehouse-local calendar day used for check-in eligibility.
func NewYardService(
	appointments domain.AppointmentRepository,
	docks domain.DockRepository,
	spots domain.YardSpotRepository,
	uow domain.UnitOfWork,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *logging.Logger,
	location *time.Location,
) *YardService {
	if location == nil {
		location = time.UTC
	}
	return &YardService{
		appointments: appointments,
		docks:        docks,
		spots:        spots,
		uow:          uow,
		publisher:    publisher,
		metrics:      m,
		logger:       logger,
		location:     location,
	}
}

// CheckInTruck checks a truck in to a yard spot against its scheduled
// appointment for the current warehouse-local day. The check-in event is
// emitted only after the occupancy write commits.
func (s *YardService) CheckInTruck(ctx context.Context, cmd CheckInTruckCommand, actor Actor) (string, error) {
	actor = actor.OrSystem()

	spot, err := s.spots.FindByID(ctx, cmd.SpotID)
	if err != nil {
		return "", err
	}
	if spot == nil {
		return "", domain.ErrYardSpotNotFound
	}

	if spot.Status != domain.SpotStatusAvailable {
		return "", domain.ErrSpotUnavailable
	}

	dayStart, dayEnd := s.dayWindow(time.Now())
	scheduled, err := s.appointments.FindScheduledForTruck(ctx, cmd.TruckID, dayStart, dayEnd)
	if err != nil {
		return "", err
	}
	if len(scheduled) == 0 {
		return "", domain.ErrNoScheduledAppointment
	}
	appointment := scheduled[0]

	if err := spot.Occupy(cmd.TruckID); err != nil {
		return "", err
	}

	// Conditional write: a concurrent check-in to the same spot loses with
	// ErrSpotUnavailable instead of silently overwriting.
	if err := s.spots.UpdateIfStatus(ctx, spot, domain.SpotStatusAvailable); err != nil {
		return "", err
	}

	checkedIn := &domain.TruckCheckedInEvent{
		AppointmentID: appointment.AppointmentID,
		TruckID:       cmd.TruckID,
		SpotID:        cmd.SpotID,
		CheckedInBy:   actor.ID,
		CheckedInAt:   time.Now().UTC(),
	}
	s.publishEvents(ctx, []domain.DomainEvent{checkedIn})

	s.metrics.RecordTruckCheckedIn()
	s.logger.Info("Truck checked in",
		"truckId", cmd.TruckID,
		"spotId", cmd.SpotID,
		"appointmentId", appointment.AppointmentID,
		"checkedInBy", actor.ID,
	)

	return spot.SpotID, nil
}

// AssignToDock moves a truck from its yard spot to the appointment's dock:
// vacate the spot, occupy the dock, advance the appointment, all in one
// transaction. The dock-status event fans out after commit; its delivery
// is fire-and-forget relative to the committed state change.
func (s *YardService) AssignToDock(ctx context.Context, cmd AssignToDockCommand, actor Actor) error {
	actor = actor.OrSystem()

	appointment, err := s.appointments.FindByID(ctx, cmd.AppointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return domain.ErrAppointmentNotFound
	}

	spot, err := s.spots.FindByID(ctx, cmd.SpotID)
	if err != nil {
		return err
	}
	if spot == nil {
		return domain.ErrYardSpotNotFound
	}

	dock, err := s.docks.FindByID(ctx, appointment.DockID)
	if err != nil {
		return err
	}
	if dock == nil {
		return domain.ErrDockNotFound
	}

	spot.Vacate()
	if err := dock.Occupy(appointment.AppointmentID); err != nil {
		return err
	}
	if err := appointment.UpdateStatus(domain.AppointmentStatusInProgress); err != nil {
		return err
	}

	// Conditional write on the dock: two concurrent assignments both pass
	// the in-memory occupancy check on their own copies; the second to
	// reach storage loses with ErrDockOccupied and the transaction aborts.
	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		if err := s.docks.OccupyIfVacant(txCtx, dock); err != nil {
			return err
		}
		if err := s.spots.Save(txCtx, spot); err != nil {
			return err
		}
		return s.appointments.Save(txCtx, appointment)
	})
	if err != nil {
		return err
	}

	s.publishEvents(ctx, dock.GetDomainEvents())
	dock.ClearDomainEvents()

	s.metrics.RecordDockAssignment()
	s.logger.Info("Truck assigned to dock",
		"appointmentId", cmd.AppointmentID,
		"spotId", cmd.SpotID,
		"dockId", dock.DockID,
		"assignedBy", actor.ID,
	)

	return nil
}

// VacateSpot releases a yard spot. Idempotent: vacating an available spot
// succeeds and leaves it available.
func (s *YardService) VacateSpot(ctx context.Context, cmd VacateSpotCommand, actor Actor) error {
	spot, err := s.spots.FindByID(ctx, cmd.SpotID)
	if err != nil {
		return err
	}
	if spot == nil {
		return domain.ErrYardSpotNotFound
	}

	spot.Vacate()

	if err := s.spots.Save(ctx, spot); err != nil {
		return err
	}

	s.logger.Info("Yard spot vacated",
		"spotId", cmd.SpotID,
		"vacatedBy", actor.OrSystem().ID,
	)

	return nil
}

// GetSpot retrieves a yard spot by id
func (s *YardService) GetSpot(ctx context.Context, spotID string) (*domain.YardSpot, error) {
	spot, err := s.spots.FindByID(ctx, spotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, domain.ErrYardSpotNotFound
	}
	return spot, nil
}

// ListAvailableSpots retrieves the available spots in a warehouse
func (s *YardService) ListAvailableSpots(ctx context.Context, warehouseID string) ([]*domain.YardSpot, error) {
	return s.spots.FindAvailable(ctx, warehouseID)
}

// GetDock retrieves a dock by id
func (s *YardService) GetDock(ctx context.Context, dockID string) (*domain.Dock, error) {
	dock, err := s.docks.FindByID(ctx, dockID)
	if err != nil {
		return nil, err
	}
	if dock == nil {
		return nil, domain.ErrDockNotFound
	}
	return dock, nil
}

// dayWindow returns [midnight, next midnight) of the warehouse-local
// calendar day containing now
func (s *YardService) dayWindow(now time.Time) (time.Time, time.Time) {
	local := now.In(s.location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	return start, start.AddDate(0, 0, 1)
}

func (s *YardService) publishEvents(ctx context.Context, events []domain.DomainEvent) {
	if err := s.publisher.PublishAll(ctx, events); err != nil {
		s.logger.WithError(err).Error("Failed to publish domain events")
	}
}

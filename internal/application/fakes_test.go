package application

import (
	"context"
	"sort"
	"time"

	"github.com/wms-platform/yard-service/internal/domain"
	"github.com/wms-platform/yard-service/pkg/logging"
	"github.com/wms-platform/yard-service/pkg/metrics"
)

type fakeAppointmentRepo struct {
	appointments map[string]*domain.Appointment
	saveErr      error
	findErr      error
}

func (f *fakeAppointmentRepo) Save(ctx context.Context, appointment *domain.Appointment) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.appointments == nil {
		f.appointments = make(map[string]*domain.Appointment)
	}
	f.appointments[appointment.AppointmentID] = appointment
	return nil
}

func (f *fakeAppointmentRepo) FindByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.appointments[appointmentID], nil
}

func (f *fakeAppointmentRepo) FindByDock(ctx context.Context, dockID string, from, to time.Time) ([]*domain.Appointment, error) {
	results := make([]*domain.Appointment, 0)
	for _, a := range f.appointments {
		if a.DockID == dockID && a.Status != domain.AppointmentStatusCancelled && a.Overlaps(from, to) {
			results = append(results, a)
		}
	}
	return results, nil
}

func (f *fakeAppointmentRepo) FindScheduledForTruck(ctx context.Context, truckID string, dayStart, dayEnd time.Time) ([]*domain.Appointment, error) {
	results := make([]*domain.Appointment, 0)
	for _, a := range f.appointments {
		if a.TruckID == truckID && a.Status == domain.AppointmentStatusScheduled &&
			!a.StartTime.Before(dayStart) && a.StartTime.Before(dayEnd) {
			results = append(results, a)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].StartTime.Before(results[j].StartTime) })
	return results, nil
}

func (f *fakeAppointmentRepo) IsSlotAvailable(ctx context.Context, dockID string, start, end time.Time, excludeAppointmentID string) (bool, error) {
	for _, a := range f.appointments {
		if a.DockID != dockID || a.Status == domain.AppointmentStatusCancelled {
			continue
		}
		if a.AppointmentID == excludeAppointmentID {
			continue
		}
		if a.Overlaps(start, end) {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeAppointmentRepo) ScheduleIfAvailable(ctx context.Context, appointment *domain.Appointment) error {
	available, err := f.IsSlotAvailable(ctx, appointment.DockID, appointment.StartTime, appointment.EndTime, "")
	if err != nil {
		return err
	}
	if !available {
		return domain.ErrSlotUnavailable
	}
	return f.Save(ctx, appointment)
}

func (f *fakeAppointmentRepo) RescheduleIfAvailable(ctx context.Context, appointment *domain.Appointment) error {
	available, err := f.IsSlotAvailable(ctx, appointment.DockID, appointment.StartTime, appointment.EndTime, appointment.AppointmentID)
	if err != nil {
		return err
	}
	if !available {
		return domain.ErrSlotUnavailable
	}
	return f.Save(ctx, appointment)
}

type fakeDockRepo struct {
	docks     map[string]*domain.Dock
	occupyErr error
}

func (f *fakeDockRepo) Save(ctx context.Context, dock *domain.Dock) error {
	if f.docks == nil {
		f.docks = make(map[string]*domain.Dock)
	}
	f.docks[dock.DockID] = dock
	return nil
}

func (f *fakeDockRepo) FindByID(ctx context.Context, dockID string) (*domain.Dock, error) {
	return f.docks[dockID], nil
}

func (f *fakeDockRepo) OccupyIfVacant(ctx context.Context, dock *domain.Dock) error {
	if f.occupyErr != nil {
		return f.occupyErr
	}
	stored, ok := f.docks[dock.DockID]
	if ok && stored != dock && stored.IsOccupied() {
		return domain.ErrDockOccupied
	}
	return f.Save(ctx, dock)
}

func (f *fakeDockRepo) FindByWarehouse(ctx context.Context, warehouseID string) ([]*domain.Dock, error) {
	results := make([]*domain.Dock, 0)
	for _, d := range f.docks {
		if d.WarehouseID == warehouseID {
			results = append(results, d)
		}
	}
	return results, nil
}

type fakeSpotRepo struct {
	spots map[string]*domain.YardSpot
}

func (f *fakeSpotRepo) Save(ctx context.Context, spot *domain.YardSpot) error {
	if f.spots == nil {
		f.spots = make(map[string]*domain.YardSpot)
	}
	f.spots[spot.SpotID] = spot
	return nil
}

func (f *fakeSpotRepo) FindByID(ctx context.Context, spotID string) (*domain.YardSpot, error) {
	return f.spots[spotID], nil
}

func (f *fakeSpotRepo) FindAvailable(ctx context.Context, warehouseID string) ([]*domain.YardSpot, error) {
	results := make([]*domain.YardSpot, 0)
	for _, s := range f.spots {
		if s.WarehouseID == warehouseID && s.Status == domain.SpotStatusAvailable {
			results = append(results, s)
		}
	}
	return results, nil
}

func (f *fakeSpotRepo) UpdateIfStatus(ctx context.Context, spot *domain.YardSpot, expectedStatus domain.SpotStatus) error {
	stored, ok := f.spots[spot.SpotID]
	if ok && stored != spot && stored.Status != expectedStatus {
		return domain.ErrSpotUnavailable
	}
	return f.Save(ctx, spot)
}

type fakeManifestRepo struct {
	manifests map[string]*domain.CargoManifest
}

func (f *fakeManifestRepo) Save(ctx context.Context, manifest *domain.CargoManifest) error {
	if f.manifests == nil {
		f.manifests = make(map[string]*domain.CargoManifest)
	}
	f.manifests[manifest.ManifestID] = manifest
	return nil
}

func (f *fakeManifestRepo) FindByID(ctx context.Context, manifestID string) (*domain.CargoManifest, error) {
	return f.manifests[manifestID], nil
}

func (f *fakeManifestRepo) FindByAppointment(ctx context.Context, appointmentID string) (*domain.CargoManifest, error) {
	for _, m := range f.manifests {
		if m.AppointmentID == appointmentID {
			return m, nil
		}
	}
	return nil, nil
}

type fakeReceivingRepo struct {
	orders map[string]*domain.ReceivingOrder
}

func (f *fakeReceivingRepo) FindByID(ctx context.Context, orderID string) (*domain.ReceivingOrder, error) {
	return f.orders[orderID], nil
}

func (f *fakeReceivingRepo) FindByPalletID(ctx context.Context, palletID string) (*domain.ReceivingOrder, error) {
	for _, o := range f.orders {
		if o.FindPallet(palletID) != nil {
			return o, nil
		}
	}
	return nil, nil
}

type fakeInventoryRepo struct {
	records map[string]*domain.MaterialInventory
	saveErr error
}

func (f *fakeInventoryRepo) Save(ctx context.Context, inventory *domain.MaterialInventory) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.records == nil {
		f.records = make(map[string]*domain.MaterialInventory)
	}
	f.records[inventory.PalletLineID] = inventory
	return nil
}

func (f *fakeInventoryRepo) FindByPalletLineID(ctx context.Context, palletLineID string) (*domain.MaterialInventory, error) {
	return f.records[palletLineID], nil
}

func (f *fakeInventoryRepo) FindByPalletID(ctx context.Context, palletID string) ([]*domain.MaterialInventory, error) {
	results := make([]*domain.MaterialInventory, 0)
	for _, r := range f.records {
		if r.PalletID == palletID {
			results = append(results, r)
		}
	}
	return results, nil
}

type fakeUnitOfWork struct {
	execErr error
}

func (f *fakeUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.execErr != nil {
		return f.execErr
	}
	return fn(ctx)
}

type fakePublisher struct {
	events []domain.DomainEvent
}

func (f *fakePublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	f.events = append(f.events, events...)
	return nil
}

func (f *fakePublisher) eventTypes() []string {
	types := make([]string, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.EventType())
	}
	return types
}

func testLogger() *logging.Logger {
	return logging.New(&logging.Config{Level: logging.LevelError, ServiceName: "test"})
}

func testMetrics() *metrics.Metrics {
	return metrics.New(metrics.DefaultConfig("test"))
}

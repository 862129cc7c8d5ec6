package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/yard-service/internal/domain"
)

func newSchedulingService(appointments *fakeAppointmentRepo, manifests *fakeManifestRepo, publisher *fakePublisher) *SchedulingService {
	return NewSchedulingService(appointments, manifests, &fakeUnitOfWork{}, publisher, testMetrics(), testLogger())
}

func scheduleCmd(dockID string, start, end time.Time) ScheduleAppointmentCommand {
	return ScheduleAppointmentCommand{
		DockID:     dockID,
		TruckID:    "TRK-100",
		SupplierID: "SUP-01",
		AccountID:  "ACC-01",
		StartTime:  start,
		EndTime:    end,
		Type:       "receiving",
	}
}

// TestScheduleAppointment tests the happy path
func TestScheduleAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	publisher := &fakePublisher{}
	service := newSchedulingService(repo, &fakeManifestRepo{}, publisher)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	appointment, err := service.ScheduleAppointment(context.Background(), scheduleCmd("DOCK-01", start, start.Add(time.Hour)), Actor{ID: "clerk1"})

	require.NoError(t, err)
	assert.NotEmpty(t, appointment.AppointmentID)
	assert.Equal(t, domain.AppointmentStatusScheduled, appointment.Status)
	assert.Empty(t, appointment.GetDomainEvents())

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "yard.appointment.scheduled", publisher.events[0].EventType())
}

// TestScheduleAppointmentConflicts tests overlap rejection end to end:
// 09:00-10:00 exists, 09:30-10:30 conflicts, 10:00-11:00 is adjacent and
// succeeds
func TestScheduleAppointmentConflicts(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	service := newSchedulingService(repo, &fakeManifestRepo{}, &fakePublisher{})
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	_, err := service.ScheduleAppointment(ctx, scheduleCmd("DOCK-01", base, base.Add(time.Hour)), Actor{ID: "clerk1"})
	require.NoError(t, err)

	_, err = service.ScheduleAppointment(ctx, scheduleCmd("DOCK-01", base.Add(30*time.Minute), base.Add(90*time.Minute)), Actor{ID: "clerk1"})
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	_, err = service.ScheduleAppointment(ctx, scheduleCmd("DOCK-01", base.Add(time.Hour), base.Add(2*time.Hour)), Actor{ID: "clerk1"})
	assert.NoError(t, err)

	// a different dock never conflicts
	_, err = service.ScheduleAppointment(ctx, scheduleCmd("DOCK-02", base, base.Add(time.Hour)), Actor{ID: "clerk1"})
	assert.NoError(t, err)
}

// TestScheduleAppointmentGeneratesUniqueIDs tests that back-to-back
// bookings get distinct ids and never collapse into one stored appointment
func TestScheduleAppointmentGeneratesUniqueIDs(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	service := newSchedulingService(repo, &fakeManifestRepo{}, &fakePublisher{})
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		appointment, err := service.ScheduleAppointment(ctx, scheduleCmd(fmt.Sprintf("DOCK-%02d", i), start, start.Add(time.Hour)), Actor{ID: "clerk1"})
		require.NoError(t, err)
		assert.False(t, seen[appointment.AppointmentID], "duplicate appointment id %s", appointment.AppointmentID)
		seen[appointment.AppointmentID] = true
	}
	assert.Len(t, repo.appointments, 20)
}

// TestScheduleAppointmentInvalidRange tests range validation
func TestScheduleAppointmentInvalidRange(t *testing.T) {
	service := newSchedulingService(&fakeAppointmentRepo{}, &fakeManifestRepo{}, &fakePublisher{})

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := service.ScheduleAppointment(context.Background(), scheduleCmd("DOCK-01", start, start), Actor{ID: "clerk1"})

	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

// TestScheduleAppointmentDefaultsToSystemActor tests the actor fallback
func TestScheduleAppointmentDefaultsToSystemActor(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	service := newSchedulingService(repo, &fakeManifestRepo{}, &fakePublisher{})

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	appointment, err := service.ScheduleAppointment(context.Background(), scheduleCmd("DOCK-01", start, start.Add(time.Hour)), Actor{})

	require.NoError(t, err)
	assert.Equal(t, "system", appointment.CreatedBy)
}

// TestCancelAppointment tests cancellation paths
func TestCancelAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	publisher := &fakePublisher{}
	service := newSchedulingService(repo, &fakeManifestRepo{}, publisher)
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	appointment, err := service.ScheduleAppointment(ctx, scheduleCmd("DOCK-01", start, start.Add(time.Hour)), Actor{ID: "clerk1"})
	require.NoError(t, err)

	cancelled, err := service.CancelAppointment(ctx, CancelAppointmentCommand{
		AppointmentID: appointment.AppointmentID,
		Reason:        "truck broke down",
	}, Actor{ID: "clerk2"})
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusCancelled, cancelled.Status)
	assert.Contains(t, publisher.eventTypes(), "yard.appointment.cancelled")

	// second cancel fails from terminal state
	_, err = service.CancelAppointment(ctx, CancelAppointmentCommand{AppointmentID: appointment.AppointmentID}, Actor{ID: "clerk2"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	// unknown appointment
	_, err = service.CancelAppointment(ctx, CancelAppointmentCommand{AppointmentID: "APT-missing"}, Actor{ID: "clerk2"})
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

// TestCancelFreesSlot tests that a cancelled appointment no longer blocks
// its window
func TestCancelFreesSlot(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	service := newSchedulingService(repo, &fakeManifestRepo{}, &fakePublisher{})
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	appointment, err := service.ScheduleAppointment(ctx, scheduleCmd("DOCK-01", start, start.Add(time.Hour)), Actor{ID: "clerk1"})
	require.NoError(t, err)

	_, err = service.CancelAppointment(ctx, CancelAppointmentCommand{AppointmentID: appointment.AppointmentID}, Actor{ID: "clerk1"})
	require.NoError(t, err)

	_, err = service.ScheduleAppointment(ctx, scheduleCmd("DOCK-01", start, start.Add(time.Hour)), Actor{ID: "clerk1"})
	assert.NoError(t, err)
}

// TestRescheduleAppointment tests window moves with re-validation
func TestRescheduleAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	publisher := &fakePublisher{}
	service := newSchedulingService(repo, &fakeManifestRepo{}, publisher)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	first, err := service.ScheduleAppointment(ctx, scheduleCmd("DOCK-01", base, base.Add(time.Hour)), Actor{ID: "clerk1"})
	require.NoError(t, err)
	second, err := service.ScheduleAppointment(ctx, scheduleCmd("DOCK-01", base.Add(2*time.Hour), base.Add(3*time.Hour)), Actor{ID: "clerk1"})
	require.NoError(t, err)

	// moving into the first appointment's window conflicts
	_, err = service.RescheduleAppointment(ctx, RescheduleAppointmentCommand{
		AppointmentID: second.AppointmentID,
		StartTime:     base.Add(30 * time.Minute),
		EndTime:       base.Add(90 * time.Minute),
	}, Actor{ID: "clerk1"})
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	// keeping its own slot does not conflict with itself
	moved, err := service.RescheduleAppointment(ctx, RescheduleAppointmentCommand{
		AppointmentID: first.AppointmentID,
		StartTime:     base.Add(15 * time.Minute),
		EndTime:       base.Add(75 * time.Minute),
	}, Actor{ID: "clerk1"})
	require.NoError(t, err)
	assert.Equal(t, base.Add(15*time.Minute), moved.StartTime)
	assert.Contains(t, publisher.eventTypes(), "yard.appointment.rescheduled")
}

// TestAttachManifest tests manifest creation with dedup
func TestAttachManifest(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	manifests := &fakeManifestRepo{}
	service := newSchedulingService(repo, manifests, &fakePublisher{})
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	appointment, err := service.ScheduleAppointment(ctx, scheduleCmd("DOCK-01", start, start.Add(time.Hour)), Actor{ID: "clerk1"})
	require.NoError(t, err)

	manifest, err := service.AttachManifest(ctx, AttachManifestCommand{
		AppointmentID: appointment.AppointmentID,
		Lines: []ManifestLineInput{
			{MaterialID: "MAT-X", ExpectedQuantity: 5},
			{MaterialID: "MAT-X", ExpectedQuantity: 3},
			{MaterialID: "MAT-Y", ExpectedQuantity: 2},
		},
	}, Actor{ID: "clerk1"})

	require.NoError(t, err)
	require.Len(t, manifest.Lines, 2)
	assert.Equal(t, 5.0, manifest.Lines[0].ExpectedQuantity)

	stored, err := service.GetAppointment(ctx, appointment.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, manifest.ManifestID, stored.ManifestID)

	// a second manifest is rejected
	_, err = service.AttachManifest(ctx, AttachManifestCommand{
		AppointmentID: appointment.AppointmentID,
		Lines:         []ManifestLineInput{{MaterialID: "MAT-Z", ExpectedQuantity: 1}},
	}, Actor{ID: "clerk1"})
	assert.ErrorIs(t, err, domain.ErrManifestAlreadyAttached)
}

// TestAttachManifestGeneratesUniqueIDs tests that manifests created in the
// same instant get distinct ids
func TestAttachManifestGeneratesUniqueIDs(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	manifests := &fakeManifestRepo{}
	service := newSchedulingService(repo, manifests, &fakePublisher{})
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	first, err := service.ScheduleAppointment(ctx, scheduleCmd("DOCK-01", start, start.Add(time.Hour)), Actor{ID: "clerk1"})
	require.NoError(t, err)
	second, err := service.ScheduleAppointment(ctx, scheduleCmd("DOCK-02", start, start.Add(time.Hour)), Actor{ID: "clerk1"})
	require.NoError(t, err)

	lines := []ManifestLineInput{{MaterialID: "MAT-X", ExpectedQuantity: 1}}
	m1, err := service.AttachManifest(ctx, AttachManifestCommand{AppointmentID: first.AppointmentID, Lines: lines}, Actor{ID: "clerk1"})
	require.NoError(t, err)
	m2, err := service.AttachManifest(ctx, AttachManifestCommand{AppointmentID: second.AppointmentID, Lines: lines}, Actor{ID: "clerk1"})
	require.NoError(t, err)

	assert.NotEqual(t, m1.ManifestID, m2.ManifestID)
}

// TestIsSlotAvailable tests the query contract
func TestIsSlotAvailable(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	service := newSchedulingService(repo, &fakeManifestRepo{}, &fakePublisher{})
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := service.ScheduleAppointment(ctx, scheduleCmd("DOCK-01", base, base.Add(time.Hour)), Actor{ID: "clerk1"})
	require.NoError(t, err)

	available, err := service.IsSlotAvailable(ctx, "DOCK-01", base.Add(30*time.Minute), base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.False(t, available)

	available, err = service.IsSlotAvailable(ctx, "DOCK-01", base.Add(time.Hour), base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, available)

	_, err = service.IsSlotAvailable(ctx, "DOCK-01", base, base)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

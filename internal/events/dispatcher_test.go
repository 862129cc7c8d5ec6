package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/yard-service/internal/domain"
	"github.com/wms-platform/yard-service/pkg/logging"
)

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(logging.New(&logging.Config{Level: "error", ServiceName: "test"}))
}

// TestDispatcherDeliversToRegisteredHandlers tests routing by event type
func TestDispatcherDeliversToRegisteredHandlers(t *testing.T) {
	dispatcher := newTestDispatcher()

	var checkedIn []string
	dispatcher.Register("yard.truck.checked_in", func(ctx context.Context, event domain.DomainEvent) error {
		checkedIn = append(checkedIn, event.(*domain.TruckCheckedInEvent).TruckID)
		return nil
	})

	var dockChanges int
	dispatcher.Register("yard.dock.status_changed", func(ctx context.Context, event domain.DomainEvent) error {
		dockChanges++
		return nil
	})

	err := dispatcher.Publish(context.Background(), &domain.TruckCheckedInEvent{
		TruckID:     "TRK-100",
		SpotID:      "YARD-01",
		CheckedInAt: time.Now().UTC(),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"TRK-100"}, checkedIn)
	assert.Zero(t, dockChanges)
}

// TestDispatcherWildcardHandler tests the catch-all registration
func TestDispatcherWildcardHandler(t *testing.T) {
	dispatcher := newTestDispatcher()

	var seen []string
	dispatcher.Register("*", func(ctx context.Context, event domain.DomainEvent) error {
		seen = append(seen, event.EventType())
		return nil
	})

	now := time.Now().UTC()
	err := dispatcher.PublishAll(context.Background(), []domain.DomainEvent{
		&domain.TruckCheckedInEvent{TruckID: "TRK-100", CheckedInAt: now},
		&domain.DockStatusChangedEvent{DockID: "DOCK-01", OccurredAt_: now},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"yard.truck.checked_in", "yard.dock.status_changed"}, seen)
}

// TestDispatcherHandlerErrorDoesNotStopOthers tests failure isolation
func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	dispatcher := newTestDispatcher()

	dispatcher.Register("yard.truck.checked_in", func(ctx context.Context, event domain.DomainEvent) error {
		return errors.New("handler exploded")
	})

	var called bool
	dispatcher.Register("yard.truck.checked_in", func(ctx context.Context, event domain.DomainEvent) error {
		called = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), &domain.TruckCheckedInEvent{
		TruckID:     "TRK-100",
		CheckedInAt: time.Now().UTC(),
	})

	assert.NoError(t, err)
	assert.True(t, called)
}

// TestDispatcherNoHandlers tests publishing with nothing registered
func TestDispatcherNoHandlers(t *testing.T) {
	dispatcher := newTestDispatcher()

	err := dispatcher.Publish(context.Background(), &domain.PutawayRequestedEvent{
		PalletID:    "PLT-001",
		RequestedAt: time.Now().UTC(),
	})

	assert.NoError(t, err)
}

package events

import (
	"context"
	"sync"

	"github.com/wms-platform/yard-service/internal/domain"
	"github.com/wms-platform/yard-service/pkg/logging"
)

// Handler processes a single domain event. Handlers that mutate state open
// their own transaction and must be safe to run more than once for the
// same event.
type Handler func(ctx context.Context, event domain.DomainEvent) error

// Dispatcher is an in-process publish/subscribe dispatcher for domain
// events. Callers publish strictly after their transaction commits; a
// failing handler is logged and never rolls back the committed state.
type Dispatcher struct {
	logger   *logging.Logger
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(logger *logging.Logger) *Dispatcher {
	return &Dispatcher{
		logger:   logger.WithComponent("event-dispatcher"),
		handlers: make(map[string][]Handler),
	}
}

// Register adds a handler for an event type. Use "*" to receive all events.
func (d *Dispatcher) Register(eventType string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

// Publish delivers an event to all handlers registered for its type.
// Handler errors are logged, not propagated: the triggering fact already
// committed and stands regardless of downstream success.
func (d *Dispatcher) Publish(ctx context.Context, event domain.DomainEvent) error {
	d.mu.RLock()
	handlers := make([]Handler, 0, len(d.handlers[event.EventType()])+len(d.handlers["*"]))
	handlers = append(handlers, d.handlers[event.EventType()]...)
	handlers = append(handlers, d.handlers["*"]...)
	d.mu.RUnlock()

	if len(handlers) == 0 {
		d.logger.Debug("No handlers registered for event",
			"eventType", event.EventType())
		return nil
	}

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			d.logger.WithError(err).Error("Event handler failed",
				"eventType", event.EventType(),
				"occurredAt", event.OccurredAt())
		}
	}

	return nil
}

// PublishAll delivers events in order
func (d *Dispatcher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	for _, event := range events {
		if err := d.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

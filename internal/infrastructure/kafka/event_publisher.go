package kafka

import (
	"context"
	"strings"

	"github.com/wms-platform/yard-service/internal/domain"
	"github.com/wms-platform/yard-service/pkg/cloudevents"
	"github.com/wms-platform/yard-service/pkg/kafka"
	"github.com/wms-platform/yard-service/pkg/logging"
	"github.com/wms-platform/yard-service/pkg/metrics"
	"github.com/wms-platform/yard-service/pkg/resilience"
)

// EventPublisher forwards domain events to Kafka as CloudEvents. It is
// registered on the in-process dispatcher as a wildcard handler, so every
// event published after commit also reaches the rest of the platform.
type EventPublisher struct {
	producer *kafka.Producer
	factory  *cloudevents.EventFactory
	breaker  *resilience.CircuitBreaker
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

func NewEventPublisher(
	producer *kafka.Producer,
	factory *cloudevents.EventFactory,
	breaker *resilience.CircuitBreaker,
	m *metrics.Metrics,
	logger *logging.Logger,
) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		factory:  factory,
		breaker:  breaker,
		metrics:  m,
		logger:   logger.WithComponent("kafka-publisher"),
	}
}

// Handle implements the dispatcher handler contract
func (p *EventPublisher) Handle(ctx context.Context, event domain.DomainEvent) error {
	topic := topicFor(event.EventType())
	cloudEvent := p.factory.CreateEvent(ctx, event.EventType(), subjectFor(event), event)

	_, err := p.breaker.Execute(ctx, func() (interface{}, error) {
		return nil, p.producer.PublishEvent(ctx, topic, cloudEvent)
	})

	p.metrics.RecordKafkaPublish(topic, event.EventType(), err == nil)
	if err != nil {
		p.logger.WithError(err).Error("Failed to publish event to Kafka",
			"topic", topic,
			"eventType", event.EventType(),
		)
		return err
	}

	p.logger.Debug("Published event to Kafka",
		"topic", topic,
		"eventType", event.EventType(),
		"eventId", cloudEvent.ID,
	)
	return nil
}

// topicFor routes events by their type prefix. Putaway requests go to the
// stow command topic because the stow service, not an event log, acts on
// them.
func topicFor(eventType string) string {
	switch {
	case eventType == "yard.putaway.requested":
		return kafka.Topics.StowCommands
	case strings.HasPrefix(eventType, "inventory."):
		return kafka.Topics.InventoryEvents
	case strings.HasPrefix(eventType, "receiving."):
		return kafka.Topics.ReceivingEvents
	default:
		return kafka.Topics.YardEvents
	}
}

func subjectFor(event domain.DomainEvent) string {
	switch e := event.(type) {
	case *domain.AppointmentScheduledEvent:
		return "appointment/" + e.AppointmentID
	case *domain.AppointmentRescheduledEvent:
		return "appointment/" + e.AppointmentID
	case *domain.AppointmentCancelledEvent:
		return "appointment/" + e.AppointmentID
	case *domain.TruckCheckedInEvent:
		return "appointment/" + e.AppointmentID
	case *domain.DockStatusChangedEvent:
		return "dock/" + e.DockID
	case *domain.PalletReceivedEvent:
		return "pallet/" + e.PalletID
	case *domain.MaterialReceivedEvent:
		return "pallet/" + e.PalletID
	case *domain.InventoryMaterializedEvent:
		return "pallet/" + e.PalletID
	case *domain.PutawayRequestedEvent:
		return "pallet/" + e.PalletID
	default:
		return event.EventType()
	}
}

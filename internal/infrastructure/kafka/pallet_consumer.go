package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wms-platform/yard-service/internal/application"
	"github.com/wms-platform/yard-service/internal/domain"
	"github.com/wms-platform/yard-service/pkg/cloudevents"
	"github.com/wms-platform/yard-service/pkg/kafka"
	"github.com/wms-platform/yard-service/pkg/logging"
	"github.com/wms-platform/yard-service/pkg/metrics"
)

// PalletConsumer drives the inventory materialization pipeline from the
// receiving event stream. Fatal errors are logged and the message committed
// so a bad event cannot wedge the partition; retriable errors leave the
// message uncommitted for redelivery.
type PalletConsumer struct {
	consumer        *kafka.Consumer
	materialization *application.MaterializationService
	metrics         *metrics.Metrics
	logger          *logging.Logger
}

func NewPalletConsumer(
	consumer *kafka.Consumer,
	materialization *application.MaterializationService,
	m *metrics.Metrics,
	logger *logging.Logger,
) *PalletConsumer {
	c := &PalletConsumer{
		consumer:        consumer,
		materialization: materialization,
		metrics:         m,
		logger:          logger.WithComponent("pallet-consumer"),
	}

	consumer.Subscribe(kafka.Topics.ReceivingEvents, "receiving.pallet.received", c.handlePalletReceived)
	consumer.Subscribe(kafka.Topics.ReceivingEvents, "receiving.material.received", c.handleMaterialReceived)

	return c
}

// Start blocks until the context is cancelled
func (c *PalletConsumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx)
}

func (c *PalletConsumer) handlePalletReceived(ctx context.Context, cloudEvent *cloudevents.CloudEvent) error {
	var event domain.PalletReceivedEvent
	if err := decodeEventData(cloudEvent, &event); err != nil {
		c.metrics.RecordKafkaConsume(kafka.Topics.ReceivingEvents, cloudEvent.Type, false)
		c.logger.WithError(err).Error("Malformed pallet-received event", "eventId", cloudEvent.ID)
		return nil
	}

	err := c.materialization.HandlePalletReceived(ctx, &event)
	return c.finishEvent(cloudEvent, event.PalletID, err)
}

func (c *PalletConsumer) handleMaterialReceived(ctx context.Context, cloudEvent *cloudevents.CloudEvent) error {
	var event domain.MaterialReceivedEvent
	if err := decodeEventData(cloudEvent, &event); err != nil {
		c.metrics.RecordKafkaConsume(kafka.Topics.ReceivingEvents, cloudEvent.Type, false)
		c.logger.WithError(err).Error("Malformed material-received event", "eventId", cloudEvent.ID)
		return nil
	}

	err := c.materialization.HandleMaterialReceived(ctx, &event)
	return c.finishEvent(cloudEvent, event.PalletID, err)
}

// finishEvent translates a materialization result into the consumer's
// commit semantics: nil commits, non-nil leaves the message for redelivery.
func (c *PalletConsumer) finishEvent(cloudEvent *cloudevents.CloudEvent, palletID string, err error) error {
	if err == nil {
		c.metrics.RecordKafkaConsume(kafka.Topics.ReceivingEvents, cloudEvent.Type, true)
		return nil
	}

	c.metrics.RecordKafkaConsume(kafka.Topics.ReceivingEvents, cloudEvent.Type, false)

	if application.IsFatalMaterializationError(err) {
		c.logger.WithError(err).Error("Dropping event that can never succeed",
			"eventType", cloudEvent.Type,
			"eventId", cloudEvent.ID,
			"palletId", palletID,
		)
		return nil
	}

	c.logger.WithError(err).Warn("Materialization failed, event will be redelivered",
		"eventType", cloudEvent.Type,
		"eventId", cloudEvent.ID,
		"palletId", palletID,
	)
	return err
}

func decodeEventData(cloudEvent *cloudevents.CloudEvent, target interface{}) error {
	data, err := json.Marshal(cloudEvent.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal event data: %w", err)
	}
	return nil
}

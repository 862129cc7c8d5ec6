package kafka

import (
	"time"
)

// Config holds Kafka configuration
type Config struct {
	Brokers       []string
	ConsumerGroup string
	ClientID      string

	// Producer settings
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int // 0: no ack, 1: leader ack, -1: all replicas ack

	// Consumer settings
	MinBytes      int
	MaxBytes      int
	MaxWait       time.Duration
	CommitTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Brokers:       []string{"localhost:9092"},
		ConsumerGroup: "yard-service",
		ClientID:      "yard-service",

		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: -1,

		MinBytes:      1,
		MaxBytes:      10e6,
		MaxWait:       500 * time.Millisecond,
		CommitTimeout: 5 * time.Second,
	}
}

// Topics contains the Kafka topic names the yard service produces to and
// consumes from
var Topics = struct {
	YardEvents      string
	ReceivingEvents string
	InventoryEvents string
	StowCommands    string
}{
	YardEvents:      "wms.yard.events",
	ReceivingEvents: "wms.receiving.events",
	InventoryEvents: "wms.inventory.events",
	StowCommands:    "wms.stow.commands",
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all yard-service metrics
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Kafka metrics
	KafkaEventsPublished *prometheus.CounterVec
	KafkaEventsConsumed  *prometheus.CounterVec

	// Business metrics
	AppointmentsScheduled   *prometheus.CounterVec
	SchedulingConflicts     prometheus.Counter
	TrucksCheckedIn         prometheus.Counter
	DockAssignments         prometheus.Counter
	PalletLinesMaterialized *prometheus.CounterVec
	PalletLinesSkipped      *prometheus.CounterVec
	MaterializationFailures *prometheus.CounterVec
	PutawayTriggers         prometheus.Counter
}

// Config holds metrics configuration
type Config struct {
	ServiceName string
	Namespace   string
}

// DefaultConfig returns default metrics configuration
func DefaultConfig(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		Namespace:   "wms",
	}
}

// New creates a new Metrics instance
func New(config *Config) *Metrics {
	registry := prometheus.NewRegistry()

	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		serviceName: config.ServiceName,
		registry:    registry,
	}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service", "method", "path"},
	)

	m.HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being processed",
			ConstLabels: prometheus.Labels{"service": config.ServiceName},
		},
	)

	m.KafkaEventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "kafka_events_published_total",
			Help:      "Total number of Kafka events published",
		},
		[]string{"service", "topic", "event_type", "status"},
	)

	m.KafkaEventsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "kafka_events_consumed_total",
			Help:      "Total number of Kafka events consumed",
		},
		[]string{"service", "topic", "event_type", "status"},
	)

	m.AppointmentsScheduled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "appointments_scheduled_total",
			Help:      "Total number of dock appointments scheduled",
		},
		[]string{"service", "type"},
	)

	m.SchedulingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "scheduling_conflicts_total",
			Help:        "Total number of rejected double-booking attempts",
			ConstLabels: prometheus.Labels{"service": config.ServiceName},
		},
	)

	m.TrucksCheckedIn = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "trucks_checked_in_total",
			Help:        "Total number of trucks checked in to yard spots",
			ConstLabels: prometheus.Labels{"service": config.ServiceName},
		},
	)

	m.DockAssignments = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "dock_assignments_total",
			Help:        "Total number of trucks moved from yard spots to docks",
			ConstLabels: prometheus.Labels{"service": config.ServiceName},
		},
	)

	m.PalletLinesMaterialized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "pallet_lines_materialized_total",
			Help:      "Total number of pallet lines materialized into inventory",
		},
		[]string{"service", "outcome"}, // created, updated
	)

	m.PalletLinesSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "pallet_lines_skipped_total",
			Help:      "Total number of pallet lines bypassed during materialization; a skip is not a failure",
		},
		[]string{"service", "reason"}, // not_processed, missing_barcode
	)

	m.MaterializationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "materialization_failures_total",
			Help:      "Total number of pallet-received events that failed materialization",
		},
		[]string{"service", "reason"},
	)

	m.PutawayTriggers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "putaway_triggers_total",
			Help:        "Total number of putaway trigger commands dispatched",
			ConstLabels: prometheus.Labels{"service": config.ServiceName},
		},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.KafkaEventsPublished,
		m.KafkaEventsConsumed,
		m.AppointmentsScheduled,
		m.SchedulingConflicts,
		m.TrucksCheckedIn,
		m.DockAssignments,
		m.PalletLinesMaterialized,
		m.PalletLinesSkipped,
		m.MaterializationFailures,
		m.PutawayTriggers,
	)

	return m
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// IncrementHTTPRequestsInFlight increments the in-flight gauge
func (m *Metrics) IncrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// DecrementHTTPRequestsInFlight decrements the in-flight gauge
func (m *Metrics) DecrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}

// RecordKafkaPublish records a Kafka publish attempt
func (m *Metrics) RecordKafkaPublish(topic, eventType string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.KafkaEventsPublished.WithLabelValues(m.serviceName, topic, eventType, status).Inc()
}

// RecordKafkaConsume records a Kafka consume attempt
func (m *Metrics) RecordKafkaConsume(topic, eventType string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.KafkaEventsConsumed.WithLabelValues(m.serviceName, topic, eventType, status).Inc()
}

// RecordAppointmentScheduled records a scheduled appointment
func (m *Metrics) RecordAppointmentScheduled(appointmentType string) {
	m.AppointmentsScheduled.WithLabelValues(m.serviceName, appointmentType).Inc()
}

// RecordSchedulingConflict records a rejected double-booking attempt
func (m *Metrics) RecordSchedulingConflict() {
	m.SchedulingConflicts.Inc()
}

// RecordTruckCheckedIn records a yard check-in
func (m *Metrics) RecordTruckCheckedIn() {
	m.TrucksCheckedIn.Inc()
}

// RecordDockAssignment records a truck moved to a dock
func (m *Metrics) RecordDockAssignment() {
	m.DockAssignments.Inc()
}

// RecordPalletLineMaterialized records a materialized pallet line
func (m *Metrics) RecordPalletLineMaterialized(outcome string) {
	m.PalletLinesMaterialized.WithLabelValues(m.serviceName, outcome).Inc()
}

// RecordPalletLineSkipped records a bypassed pallet line
func (m *Metrics) RecordPalletLineSkipped(reason string) {
	m.PalletLinesSkipped.WithLabelValues(m.serviceName, reason).Inc()
}

// RecordMaterializationFailure records a failed pallet-received event
func (m *Metrics) RecordMaterializationFailure(reason string) {
	m.MaterializationFailures.WithLabelValues(m.serviceName, reason).Inc()
}

// RecordPutawayTriggered records a dispatched putaway trigger
func (m *Metrics) RecordPutawayTriggered() {
	m.PutawayTriggers.Inc()
}

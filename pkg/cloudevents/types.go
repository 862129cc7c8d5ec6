package cloudevents

import "time"

// CloudEvent is the CloudEvents 1.0 envelope used for all events published
// by the yard service, with warehouse-specific extension attributes.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// Extension attributes
	CorrelationID string `json:"correlationid,omitempty"`
	WarehouseID   string `json:"warehouseid,omitempty"`
	ActorID       string `json:"actorid,omitempty"`
}

package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// Label lifecycle events
	EventLabelGenerated = "label.generated"
	EventLabelFallback  = "label.fallback"
	EventLabelDeleted   = "label.deleted"

	// Crisis events
	EventCrisisResponseGenerated = "crisis.response.generated"
)

// Exchange names
const (
	ExchangeLabelEvents = "label.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// LabelGeneratedEvent is published when a label is generated, fallback included
type LabelGeneratedEvent struct {
	LabelID     string `json:"label_id"`
	ProductID   string `json:"product_id,omitempty"`
	Market      string `json:"market"`
	Language    string `json:"language"`
	GeneratedBy string `json:"generated_by"`
}

// LabelDeletedEvent is published when a label is deleted
type LabelDeletedEvent struct {
	LabelID string `json:"label_id"`
}

// CrisisResponseGeneratedEvent is published when a crisis response is produced
type CrisisResponseGeneratedEvent struct {
	CrisisID   string   `json:"crisis_id"`
	CrisisType string   `json:"crisis_type"`
	Severity   string   `json:"severity"`
	Markets    []string `json:"markets"`
}

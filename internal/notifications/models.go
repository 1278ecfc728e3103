package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventSaleRecorded     EventType = "sale.recorded"
	EventSalesDailyReport EventType = "sales.daily_report"
)

// DomainEvent is published after the change it describes has committed.
type DomainEvent struct {
	ID          uuid.UUID              `json:"id"`
	Type        EventType              `json:"type"`
	AggregateID string                 `json:"aggregate_id"`
	OccurredAt  time.Time              `json:"occurred_at"`
	Payload     map[string]interface{} `json:"payload"`
}

func NewEvent(eventType EventType, aggregateID string, payload map[string]interface{}) *DomainEvent {
	return &DomainEvent{
		ID:          uuid.New(),
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}

func (e *DomainEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey keeps all events of one aggregate on one partition, in order.
func (e *DomainEvent) PartitionKey() string {
	if e.AggregateID != "" {
		return e.AggregateID
	}
	return e.ID.String()
}

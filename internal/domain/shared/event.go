package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents something that happened in the domain
type DomainEvent interface {
	GetEventID() uuid.UUID
	GetEventType() string
	GetAggregateID() uuid.UUID
	GetOccurredAt() time.Time
	GetVersion() int
}

// BaseDomainEvent provides common event functionality
type BaseDomainEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	EventType   string    `json:"event_type"`
	AggregateID uuid.UUID `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Version     int       `json:"version"`
}

// NewBaseDomainEvent creates a new base domain event
func NewBaseDomainEvent(eventType string, aggregateID uuid.UUID, version int) BaseDomainEvent {
	return BaseDomainEvent{
		EventID:     uuid.New(),
		EventType:   eventType,
		AggregateID: aggregateID,
		OccurredAt:  time.Now(),
		Version:     version,
	}
}

func (e BaseDomainEvent) GetEventID() uuid.UUID     { return e.EventID }
func (e BaseDomainEvent) GetEventType() string      { return e.EventType }
func (e BaseDomainEvent) GetAggregateID() uuid.UUID { return e.AggregateID }
func (e BaseDomainEvent) GetOccurredAt() time.Time  { return e.OccurredAt }
func (e BaseDomainEvent) GetVersion() int           { return e.Version }

package events

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Aggregate names the piece of engagement state an event describes.
type Aggregate string

const (
	AggregateDailyUsage Aggregate = "DailyUsage"
	AggregateStreak     Aggregate = "Streak"
	AggregatePoints     Aggregate = "Points"
	AggregatePlan       Aggregate = "Plan"
)

// Event is a change to engagement state, published after the change was persisted.
type Event interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateType() string
}

// BaseEvent carries the fields shared by every engagement event. Embed it.
type BaseEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Aggregate Aggregate `json:"aggregate"`
	At        time.Time `json:"at"`
}

func (e BaseEvent) EventID() uuid.UUID    { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) OccurredAt() time.Time { return e.At }
func (e BaseEvent) AggregateType() string { return string(e.Aggregate) }

// NewBaseEvent stamps a fresh id and the current UTC instant.
func NewBaseEvent(eventType string, aggregate Aggregate) BaseEvent {
	return BaseEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Aggregate: aggregate,
		At:        time.Now().UTC(),
	}
}

// logFields is the structured identity of an event used in bus logs.
func logFields(ev Event, extra ...zap.Field) []zap.Field {
	fields := []zap.Field{
		zap.String("event_type", ev.EventType()),
		zap.String("event_id", ev.EventID().String()),
		zap.String("aggregate", ev.AggregateType()),
	}
	return append(fields, extra...)
}

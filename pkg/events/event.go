package events

import "time"

// Event is the contract every cross-service event satisfies before it goes
// out on the broker.
type Event interface {
	// EventType returns the event code, e.g. "BRIEFING_CONCLUIDO".
	EventType() string

	// Payload returns the event data as published.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used for briefing lifecycle events;
// build one inline rather than defining a type per event.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

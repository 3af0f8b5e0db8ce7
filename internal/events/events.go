// Package events carries the outbound notifications the core emits for
// HUD and VFX consumers. Consumers subscribe and read; they never write back.
package events

import "time"

// EventType identifies what happened
type EventType string

const (
	// Player FSM lifecycle
	EventStateChanged      EventType = "player.state_changed"
	EventActionStarted     EventType = "player.action_started"
	EventActionFinished    EventType = "player.action_finished"
	EventActionInterrupted EventType = "player.action_interrupted"
	EventPlayerDied        EventType = "player.died"

	// Resource and buff lifecycle
	EventResourcesChanged EventType = "resources.changed"
	EventBuffApplied      EventType = "buff.applied"
	EventBuffExpired      EventType = "buff.expired"

	// Loadout lifecycle
	EventSlotAssigned EventType = "loadout.slot_assigned"
	EventSlotCleared  EventType = "loadout.slot_cleared"
	EventLoadoutReset EventType = "loadout.reset"
)

// Event is a single notification. Data keys are documented per emitter.
type Event struct {
	Type EventType
	At   time.Time
	Data map[string]any
}

// NewEvent creates an event with an initialized data map
func NewEvent(eventType EventType, at time.Time) *Event {
	return &Event{
		Type: eventType,
		At:   at,
		Data: make(map[string]any),
	}
}

// WithData adds a data entry (builder pattern)
func (e *Event) WithData(key string, value any) *Event {
	e.Data[key] = value
	return e
}

// GetString reads a string data entry, empty when absent or mistyped
func (e *Event) GetString(key string) string {
	if v, ok := e.Data[key].(string); ok {
		return v
	}
	return ""
}

// GetFloat reads a float data entry, zero when absent or mistyped
func (e *Event) GetFloat(key string) float64 {
	if v, ok := e.Data[key].(float64); ok {
		return v
	}
	return 0
}

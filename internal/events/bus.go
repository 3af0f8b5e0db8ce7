package events

import (
	"fmt"
	"sort"
	"sync"
)

// Listener receives events. Lower priority runs first.
type Listener interface {
	HandleEvent(event *Event) error
	Priority() int
}

// Bus manages listeners and dispatches events
type Bus struct {
	listeners map[EventType][]Listener
	mu        sync.RWMutex
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe adds a listener for a specific event type
func (b *Bus) Subscribe(eventType EventType, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], listener)
}

// Unsubscribe removes a listener for a specific event type
func (b *Bus) Unsubscribe(eventType EventType, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := b.listeners[eventType]
	for i, l := range listeners {
		if l == listener {
			listeners[i] = listeners[len(listeners)-1]
			b.listeners[eventType] = listeners[:len(listeners)-1]
			break
		}
	}
}

// Emit fires an event to all registered listeners in priority order
func (b *Bus) Emit(event *Event) error {
	if event == nil {
		return fmt.Errorf("cannot emit nil event")
	}

	listeners := b.getListeners(event.Type)
	if len(listeners) == 0 {
		return nil
	}

	sort.SliceStable(listeners, func(i, j int) bool {
		return listeners[i].Priority() < listeners[j].Priority()
	})

	for _, listener := range listeners {
		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("error handling event %s: %w", event.Type, err)
		}
	}

	return nil
}

// getListeners returns a copy of listeners for a specific event type
func (b *Bus) getListeners(eventType EventType) []Listener {
	b.mu.RLock()
	defer b.mu.RUnlock()

	original := b.listeners[eventType]
	if len(original) == 0 {
		return nil
	}

	listeners := make([]Listener, len(original))
	copy(listeners, original)
	return listeners
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]Listener)
}

// ListenerCount returns the number of listeners for a specific event type
func (b *Bus) ListenerCount(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.listeners[eventType])
}

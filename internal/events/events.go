// Package events provides the in-process change notification bus.
//
// The original client fired a window-level broadcast after every lead
// mutation and let each view reload itself. Here the stores publish on an
// explicit bus and view models subscribe, which makes refresh ordering
// deterministic: Publish delivers synchronously, in subscription order,
// before the mutating call returns.
package events

import (
	"sync"
	"time"
)

// EventType indicates which collection changed.
type EventType string

const (
	LeadsChanged     EventType = "leads_changed"
	RemindersChanged EventType = "reminders_changed"
)

// Event represents a store change notification.
type Event struct {
	Type       EventType
	EntityID   int       // id of the mutated record, 0 when not applicable
	Timestamp  time.Time // when the event occurred
	SequenceID int64     // monotonically increasing, for ordering assertions
}

// Handler receives published events.
type Handler func(Event)

// Publisher is the narrow interface stores depend on.
type Publisher interface {
	Publish(eventType EventType, entityID int)
}

// Bus is a synchronous observer registry. Safe for concurrent use: store
// operations run in Bubble Tea command goroutines, so publishes can overlap.
// Handlers are invoked with the bus lock held and must not subscribe or
// publish from inside a handler.
type Bus struct {
	mu       sync.Mutex
	handlers []subscription
	nextSub  int
	seq      int64
}

type subscription struct {
	id      int
	handler Handler
}

var _ Publisher = (*Bus)(nil)

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler and returns a cancel function.
func (b *Bus) Subscribe(h Handler) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSub
	b.nextSub++
	b.handlers = append(b.handlers, subscription{id: id, handler: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.handlers {
			if s.id == id {
				b.handlers = append(b.handlers[:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to every subscriber in subscription order.
// Overlapping publishes are serialized; each gets a distinct sequence id.
func (b *Bus) Publish(eventType EventType, entityID int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	evt := Event{
		Type:       eventType,
		EntityID:   entityID,
		Timestamp:  time.Now(),
		SequenceID: b.seq,
	}
	for _, s := range b.handlers {
		s.handler(evt)
	}
}

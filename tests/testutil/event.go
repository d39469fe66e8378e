package testutil

import (
	"context"
	"sync"

	"github.com/shopdash/backend/internal/domain/shared"
)

// EventRecorder collects the domain events delivered to it. It can be used
// as a publisher or subscribed to the event bus as a handler.
type EventRecorder struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

// NewEventRecorder creates an empty recorder
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

// Publish records events
func (r *EventRecorder) Publish(_ context.Context, events ...shared.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

// Handle records a single event
func (r *EventRecorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	return r.Publish(ctx, event)
}

// EventTypes returns nil so every event is delivered
func (r *EventRecorder) EventTypes() []string { return nil }

// Events returns a copy of the recorded events
func (r *EventRecorder) Events() []shared.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shared.DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order
func (r *EventRecorder) Types() []string {
	events := r.Events()
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.EventType()
	}
	return types
}

// Reset drops the recorded events
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

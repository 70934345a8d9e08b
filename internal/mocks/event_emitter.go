package mocks

import (
	"context"
	"sync"

	"github.com/moviecatalog/movie-api/internal/events"
)

// MockEventEmitter records emitted events.
type MockEventEmitter struct {
	// EmitFn allows for custom behavior; Err is returned otherwise
	EmitFn func(ctx context.Context, event *events.CatalogEvent) error
	Err    error

	mu     sync.Mutex
	events []*events.CatalogEvent
}

var _ events.EventEmitter = (*MockEventEmitter)(nil)

// EmitEvent implements events.EventEmitter
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.CatalogEvent) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()

	if m.EmitFn != nil {
		return m.EmitFn(ctx, event)
	}
	return m.Err
}

// Events returns a copy of the events emitted so far.
func (m *MockEventEmitter) Events() []*events.CatalogEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.CatalogEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Types returns the types of the events emitted so far, in order.
func (m *MockEventEmitter) Types() []events.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]events.EventType, 0, len(m.events))
	for _, e := range m.events {
		types = append(types, e.Type)
	}
	return types
}

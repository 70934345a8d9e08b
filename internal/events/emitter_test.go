package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventHandler records the events it receives.
type MockEventHandler struct {
	mu           sync.Mutex
	HandledCount int
	LastEvent    *CatalogEvent
	HandlerError error
}

func (m *MockEventHandler) HandleEvent(_ context.Context, event *CatalogEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HandledCount++
	m.LastEvent = event
	return m.HandlerError
}

func TestInMemoryEventEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		event, err := NewCatalogEvent(CategoryCreated, 1, nil)
		require.NoError(t, err)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event, err := NewCatalogEvent(MovieCreated, 3, MoviePayload{Name: "Heat"})
		require.NoError(t, err)

		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Same(t, event, handler1.LastEvent)
		assert.Same(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(nil)
		failing := &MockEventHandler{HandlerError: errors.New("handler error")}
		secondFailing := &MockEventHandler{HandlerError: errors.New("second error")}
		success := &MockEventHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(secondFailing)
		emitter.RegisterHandler(success)

		event, err := NewCatalogEvent(MovieDeleted, 3, nil)
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.EqualError(t, err, "handler error")
		assert.Equal(t, 1, success.HandledCount, "later handlers still run")
	})

	t.Run("handler func adapter", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		var got EventType
		emitter.RegisterHandler(HandlerFunc(func(_ context.Context, e *CatalogEvent) error {
			got = e.Type
			return nil
		}))

		event, _ := NewCatalogEvent(CategoryDeleted, 9, nil)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Equal(t, CategoryDeleted, got)
	})
}

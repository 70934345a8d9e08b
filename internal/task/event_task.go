package task

import (
	"context"

	"github.com/google/uuid"
	"github.com/moviecatalog/movie-api/internal/events"
)

// EventTask replays a catalog event against one handler in the background.
type EventTask struct {
	id      uuid.UUID
	name    string
	event   *events.CatalogEvent
	handler events.EventHandler
}

var _ Task = (*EventTask)(nil)

// NewEventTask creates a task delivering event to handler. name identifies
// the handler in the task type, e.g. "event:image_cleanup".
func NewEventTask(name string, handler events.EventHandler, event *events.CatalogEvent) *EventTask {
	return &EventTask{
		id:      uuid.New(),
		name:    name,
		event:   event,
		handler: handler,
	}
}

// ID implements Task.
func (t *EventTask) ID() uuid.UUID {
	return t.id
}

// Type implements Task.
func (t *EventTask) Type() string {
	return "event:" + t.name
}

// Event returns the event being delivered.
func (t *EventTask) Event() *events.CatalogEvent {
	return t.event
}

// Execute implements Task.
func (t *EventTask) Execute(ctx context.Context) error {
	return t.handler.HandleEvent(ctx, t.event)
}

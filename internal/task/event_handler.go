package task

import (
	"context"
	"log/slog"

	"github.com/moviecatalog/movie-api/internal/events"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
)

// AsyncEventHandler moves an event handler off the request path by
// submitting each event to a task runner.
type AsyncEventHandler struct {
	name      string
	handler   events.EventHandler
	submitter Submitter
	logger    *slog.Logger
}

var _ events.EventHandler = (*AsyncEventHandler)(nil)

// NewAsyncEventHandler wraps handler so that events are processed by submitter.
func NewAsyncEventHandler(
	name string,
	handler events.EventHandler,
	submitter Submitter,
	logger *slog.Logger,
) *AsyncEventHandler {
	if handler == nil || submitter == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("handler and submitter are required for AsyncEventHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AsyncEventHandler{
		name:      name,
		handler:   handler,
		submitter: submitter,
		logger:    logger.With("component", "async_event_handler", "handler", name),
	}
}

// HandleEvent implements events.EventHandler. When the runner refuses the
// task, the event is handled inline so that it is not lost.
func (h *AsyncEventHandler) HandleEvent(ctx context.Context, event *events.CatalogEvent) error {
	t := NewEventTask(h.name, h.handler, event)
	err := h.submitter.Submit(ctx, t)
	if err == nil {
		logger.FromContextOrDefault(ctx, h.logger).Debug("event handler task submitted",
			"task_id", t.ID(),
			"event_id", event.ID,
			"event_type", event.Type)
		return nil
	}

	logger.FromContextOrDefault(ctx, h.logger).Warn("task submission failed, handling event inline",
		"error", err,
		"event_id", event.ID,
		"event_type", event.Type)
	return h.handler.HandleEvent(context.WithoutCancel(ctx), event)
}

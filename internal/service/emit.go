package service

import (
	"context"
	"log/slog"

	"github.com/moviecatalog/movie-api/internal/events"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
)

// emitCatalogEvent publishes a committed change. The mutation has already
// succeeded, so handler failures are logged rather than returned.
func emitCatalogEvent(
	ctx context.Context,
	emitter events.EventEmitter,
	fallback *slog.Logger,
	eventType events.EventType,
	entityID int64,
	payload interface{},
) {
	log := logger.FromContextOrDefault(ctx, fallback)

	event, err := events.NewCatalogEvent(eventType, entityID, payload)
	if err != nil {
		log.Error("failed to build catalog event",
			"error", err,
			"event_type", eventType,
			"entity_id", entityID)
		return
	}

	if err := emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("catalog event handler failed",
			"error", err,
			"event_type", eventType,
			"entity_id", entityID)
	}
}

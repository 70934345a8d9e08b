package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/moviecatalog/movie-api/internal/platform/filestore"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
)

// CacheInvalidator drops cached catalog responses.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// CacheInvalidationHandler drops cached responses whenever the catalog changes.
type CacheInvalidationHandler struct {
	invalidator CacheInvalidator
	logger      *slog.Logger
}

// NewCacheInvalidationHandler creates a handler invalidating through invalidator.
func NewCacheInvalidationHandler(invalidator CacheInvalidator, logger *slog.Logger) *CacheInvalidationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CacheInvalidationHandler{
		invalidator: invalidator,
		logger:      logger.With("component", "cache_invalidation"),
	}
}

// HandleEvent implements EventHandler.
func (h *CacheInvalidationHandler) HandleEvent(ctx context.Context, event *CatalogEvent) error {
	if err := h.invalidator.Invalidate(ctx); err != nil {
		return fmt.Errorf("failed to invalidate response cache: %w", err)
	}
	logger.FromContextOrDefault(ctx, h.logger).Debug("response cache invalidated",
		"event_type", event.Type)
	return nil
}

// ImageCleanupHandler removes image files that movie changes left unreferenced.
type ImageCleanupHandler struct {
	images filestore.ImageStore
	logger *slog.Logger
}

// NewImageCleanupHandler creates a handler deleting stale images from images.
func NewImageCleanupHandler(images filestore.ImageStore, logger *slog.Logger) *ImageCleanupHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageCleanupHandler{
		images: images,
		logger: logger.With("component", "image_cleanup"),
	}
}

// HandleEvent implements EventHandler. Non-movie events are ignored.
func (h *ImageCleanupHandler) HandleEvent(ctx context.Context, event *CatalogEvent) error {
	if event.Type.Entity() != "movie" || len(event.Payload) == 0 {
		return nil
	}

	var payload MoviePayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to unmarshal movie payload: %w", err)
	}
	if payload.StaleImageLocalPath == "" {
		return nil
	}

	if err := h.images.Delete(ctx, payload.StaleImageLocalPath); err != nil {
		return fmt.Errorf("failed to remove stale image: %w", err)
	}

	logger.FromContextOrDefault(ctx, h.logger).Info("removed stale movie image",
		"movie_id", event.EntityID,
		"local_path", payload.StaleImageLocalPath)
	return nil
}

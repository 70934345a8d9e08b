package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType names a change to the catalog.
type EventType string

const (
	CategoryCreated EventType = "category.created"
	CategoryUpdated EventType = "category.updated"
	CategoryDeleted EventType = "category.deleted"
	MovieCreated    EventType = "movie.created"
	MovieUpdated    EventType = "movie.updated"
	MovieDeleted    EventType = "movie.deleted"
)

// Entity returns the part of the type before the dot, e.g. "movie".
func (t EventType) Entity() string {
	entity, _, _ := strings.Cut(string(t), ".")
	return entity
}

// CatalogEvent records a committed change to a category or movie.
type CatalogEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	Type EventType `json:"type"`

	// EntityID is the id of the category or movie that changed
	EntityID int64 `json:"entityId"`

	// Payload contains type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// MoviePayload accompanies movie events.
type MoviePayload struct {
	Name string `json:"name"`
	// StaleImageLocalPath is an image file no longer referenced by the movie,
	// set when an image was replaced or the movie deleted.
	StaleImageLocalPath string `json:"staleImageLocalPath,omitempty"`
}

// NewCatalogEvent creates a CatalogEvent with the specified type and payload.
// A nil payload leaves Payload empty.
func NewCatalogEvent(eventType EventType, entityID int64, payload interface{}) (*CatalogEvent, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &CatalogEvent{
		ID:        uuid.New(),
		Type:      eventType,
		EntityID:  entityID,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *CatalogEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// EventHandler defines an interface for components that react to catalog events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *CatalogEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *CatalogEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *CatalogEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *CatalogEvent) error
}

package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogEvent(t *testing.T) {
	event, err := NewCatalogEvent(MovieUpdated, 12, MoviePayload{Name: "Alien", StaleImageLocalPath: "images/a.png"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, MovieUpdated, event.Type)
	assert.Equal(t, int64(12), event.EntityID)
	assert.False(t, event.CreatedAt.IsZero())

	var payload MoviePayload
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, "images/a.png", payload.StaleImageLocalPath)

	_, err = NewCatalogEvent(MovieCreated, 1, make(chan int))
	assert.Error(t, err)
}

func TestEventType_Entity(t *testing.T) {
	assert.Equal(t, "movie", MovieDeleted.Entity())
	assert.Equal(t, "category", CategoryCreated.Entity())
	assert.Equal(t, "bare", EventType("bare").Entity())
}

package events

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/moviecatalog/movie-api/internal/platform/filestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageStore struct {
	deleted []string
	err     error
}

func (f *fakeImageStore) Save(context.Context, string, io.Reader) (*filestore.StoredImage, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeImageStore) Delete(_ context.Context, localPath string) error {
	f.deleted = append(f.deleted, localPath)
	return f.err
}

type countingInvalidator struct {
	calls int
	err   error
}

func (c *countingInvalidator) Invalidate(ctx context.Context) error {
	c.calls++
	return c.err
}

func TestCacheInvalidationHandler(t *testing.T) {
	ctx := context.Background()
	event, _ := NewCatalogEvent(CategoryUpdated, 1, nil)

	t.Run("invalidates on every event", func(t *testing.T) {
		inv := &countingInvalidator{}
		h := NewCacheInvalidationHandler(inv, nil)

		require.NoError(t, h.HandleEvent(ctx, event))
		require.NoError(t, h.HandleEvent(ctx, event))
		assert.Equal(t, 2, inv.calls)
	})

	t.Run("invalidation failure is returned", func(t *testing.T) {
		inv := &countingInvalidator{err: errors.New("redis down")}
		h := NewCacheInvalidationHandler(inv, nil)

		err := h.HandleEvent(ctx, event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis down")
	})
}

func TestImageCleanupHandler(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		eventType   EventType
		payload     interface{}
		storeErr    error
		wantDeleted []string
		wantErr     bool
	}{
		{
			name:        "deleted movie image removed",
			eventType:   MovieDeleted,
			payload:     MoviePayload{Name: "Heat", StaleImageLocalPath: "images/heat.png"},
			wantDeleted: []string{"images/heat.png"},
		},
		{
			name:      "update without replaced image",
			eventType: MovieUpdated,
			payload:   MoviePayload{Name: "Heat"},
		},
		{
			name:      "category events ignored",
			eventType: CategoryDeleted,
			payload:   MoviePayload{StaleImageLocalPath: "images/x.png"},
		},
		{
			name:      "no payload",
			eventType: MovieCreated,
		},
		{
			name:        "store failure reported",
			eventType:   MovieUpdated,
			payload:     MoviePayload{StaleImageLocalPath: "images/old.png"},
			storeErr:    errors.New("disk error"),
			wantDeleted: []string{"images/old.png"},
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images := &fakeImageStore{err: tt.storeErr}
			h := NewImageCleanupHandler(images, nil)

			event, err := NewCatalogEvent(tt.eventType, 5, tt.payload)
			require.NoError(t, err)

			err = h.HandleEvent(ctx, event)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantDeleted, images.deleted)
		})
	}
}

package cache

import (
	"context"
	"testing"

	"github.com/moviecatalog/movie-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsToMemory(t *testing.T) {
	c, err := New(context.Background(), config.CacheConfig{TTLSeconds: 30}, nil)
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.(*MemoryCache)
	assert.True(t, ok)
}

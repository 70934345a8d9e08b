package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/moviecatalog/movie-api/internal/config"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key. A zero ttl keeps the entry until it is deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeletePrefix removes every entry whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	Close() error
}

// New selects the Redis cache when an address is configured, otherwise the
// in-process cache.
func New(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RedisAddr != "" {
		c, err := NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		logger.Info("using redis response cache", slog.String("addr", cfg.RedisAddr))
		return c, nil
	}
	logger.Info("using in-memory response cache")
	return NewMemoryCache(time.Minute), nil
}

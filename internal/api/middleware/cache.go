package middleware

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/moviecatalog/movie-api/internal/platform/cache"
	"github.com/moviecatalog/movie-api/internal/platform/logger"
)

const (
	// CacheKeyPrefix starts every response cache key. Keys are the prefix
	// plus the request URI, so invalidating CacheKeyPrefix+"/api/" drops
	// every cached API response.
	CacheKeyPrefix = "GET:"

	// CacheStatusHeader reports HIT or MISS.
	CacheStatusHeader = "X-Cache"

	// maxCachedBody bounds the responses kept in the cache.
	maxCachedBody = 1 << 20
)

// ResponseCache caches successful anonymous GET responses.
type ResponseCache struct {
	cache  cache.Cache
	logger *slog.Logger

	// generation is bumped by Invalidate. A response is only kept when no
	// invalidation ran while it was being produced.
	generation atomic.Uint64
}

// NewResponseCache creates a ResponseCache backed by c.
func NewResponseCache(c cache.Cache, logger *slog.Logger) *ResponseCache {
	if c == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cache cannot be nil for ResponseCache")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResponseCache{
		cache:  c,
		logger: logger.With(slog.String("component", "response_cache")),
	}
}

// Invalidate drops every cached API response. Responses still being produced
// by a concurrent request are not stored afterwards.
func (rc *ResponseCache) Invalidate(ctx context.Context) error {
	rc.generation.Add(1)
	return rc.cache.DeletePrefix(ctx, CacheKeyPrefix+"/api/")
}

// CacheResponse serves GET requests from the cache for ttl after the first
// 200 response. Requests carrying credentials bypass the cache. A ttl of
// zero or less disables caching but still passes requests through.
func (rc *ResponseCache) CacheResponse(ttl time.Duration) func(http.Handler) http.Handler {
	cacheControl := fmt.Sprintf("public,max-age=%d", int(ttl.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ttl <= 0 || r.Method != http.MethodGet || r.Header.Get("Authorization") != "" {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromContextOrDefault(r.Context(), rc.logger)
			key := CacheKeyPrefix + r.URL.RequestURI()

			body, found, err := rc.cache.Get(r.Context(), key)
			if err != nil {
				log.Warn("response cache read failed", "error", err, "key", key)
			}
			if found {
				h := w.Header()
				h.Set("Content-Type", "application/json")
				h.Set("Cache-Control", cacheControl)
				h.Set(CacheStatusHeader, "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(body)
				return
			}

			w.Header().Set(CacheStatusHeader, "MISS")
			generation := rc.generation.Load()
			var buf bytes.Buffer
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&buf)
			ww.Header().Set("Cache-Control", cacheControl)

			next.ServeHTTP(ww, r)

			if ww.Status() != http.StatusOK || buf.Len() == 0 || buf.Len() > maxCachedBody {
				return
			}
			if rc.generation.Load() != generation {
				log.Debug("catalog changed during request, response not cached", "key", key)
				return
			}
			if err := rc.cache.Set(r.Context(), key, buf.Bytes(), ttl); err != nil {
				log.Warn("response cache write failed", "error", err, "key", key)
				return
			}
			// An invalidation between the check above and Set may have run
			// its delete before the write landed.
			if rc.generation.Load() != generation {
				if err := rc.cache.DeletePrefix(r.Context(), key); err != nil {
					log.Warn("failed to drop stale cache entry", "error", err, "key", key)
				}
			}
		})
	}
}

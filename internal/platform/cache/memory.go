package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryCache is an in-memory cache backed by sync.Map.
// Items can have optional TTL. A background cleanup goroutine
// runs when NewMemoryCache is given a positive cleanupInterval.
type MemoryCache struct {
	items sync.Map
	stop  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
	now   func() time.Time
}

type item struct {
	value      []byte
	expiration int64 // unix nano; 0 means no expiration
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache creates a new MemoryCache. If cleanupInterval > 0,
// a background goroutine will periodically remove expired items.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	m := &MemoryCache{
		stop: make(chan struct{}),
		now:  time.Now,
	}
	if cleanupInterval > 0 {
		m.wg.Add(1)
		go func() {
			ticker := time.NewTicker(cleanupInterval)
			defer ticker.Stop()
			defer m.wg.Done()
			for {
				select {
				case <-ticker.C:
					m.cleanup()
				case <-m.stop:
					return
				}
			}
		}()
	}
	return m
}

// Get implements Cache.
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.items.Load(key)
	if !ok {
		return nil, false, nil
	}
	it := v.(*item)
	if it.expiredAt(m.now().UnixNano()) {
		m.items.Delete(key)
		return nil, false, nil
	}
	return it.value, true, nil
}

// Set implements Cache. The value is copied.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var exp int64
	if ttl > 0 {
		exp = m.now().Add(ttl).UnixNano()
	}
	m.items.Store(key, &item{
		value:      append([]byte(nil), value...),
		expiration: exp,
	})
	return nil
}

// DeletePrefix implements Cache.
func (m *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	m.items.Range(func(k, _ any) bool {
		if ks, ok := k.(string); ok && strings.HasPrefix(ks, prefix) {
			m.items.Delete(k)
		}
		return true
	})
	return nil
}

// Len returns the number of unexpired entries.
func (m *MemoryCache) Len() int {
	n := 0
	now := m.now().UnixNano()
	m.items.Range(func(_, v any) bool {
		if !v.(*item).expiredAt(now) {
			n++
		}
		return true
	})
	return n
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (m *MemoryCache) Close() error {
	m.once.Do(func() {
		close(m.stop)
		m.wg.Wait()
	})
	return nil
}

func (it *item) expiredAt(now int64) bool {
	return it.expiration != 0 && now > it.expiration
}

func (m *MemoryCache) cleanup() {
	now := m.now().UnixNano()
	m.items.Range(func(k, v any) bool {
		if v.(*item).expiredAt(now) {
			m.items.Delete(k)
		}
		return true
	})
}

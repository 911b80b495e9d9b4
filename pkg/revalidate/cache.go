// Package revalidate provides a small read-through cache with a fixed TTL.
// Page renders go through it so that repeated requests within the window hit
// memory instead of SQLite, while offline imports can invalidate explicitly.
package revalidate

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache is a TTL read-through cache. A stale entry is refetched on the next
// read, not in the background; concurrent readers of the same key may each
// trigger a fetch, which is acceptable because fetches here are cheap local
// reads.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]entry{},
	}
}

// NewWithClock is New with an injectable clock for tests.
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	c := New(ttl)
	c.now = now
	return c
}

// Fetch returns the cached value for key if it is fresh, otherwise calls
// fetch, stores the result, and returns it. A fetch error is returned to the
// caller and nothing is cached, so the next read retries.
func (c *Cache) Fetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{value: value, fetchedAt: c.now()}
	c.mu.Unlock()
	return value, nil
}

// Invalidate drops a single key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll drops every entry. Import scripts call this through the
// refresh endpoint after mutating the database.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = map[string]entry{}
	c.mu.Unlock()
}

// Fetch is the generic form of Cache.Fetch, giving callers a typed result.
func Fetch[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	value, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}

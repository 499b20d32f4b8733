package assistant

import (
	"context"
	"sync"
	"time"

	"github.com/intelligent-lrt/transit-assistant/internal/transit"
)

// DefaultCacheTTL is how long a fetched collection stays fresh.
const DefaultCacheTTL = 60 * time.Second

// Collection is a TTL-guarded snapshot of one backend collection. Data is
// non-nil only after a fetch has ever succeeded.
type Collection[T any] struct {
	mu          sync.Mutex
	data        []T
	fetched     bool
	lastUpdated time.Time
	ttl         time.Duration
	now         func() time.Time
}

// NewCollection builds an empty collection with the given TTL.
func NewCollection[T any](ttl time.Duration) *Collection[T] {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Collection[T]{ttl: ttl, now: time.Now}
}

// Fresh reports whether the cached snapshot is within its TTL.
func (c *Collection[T]) Fresh() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.freshLocked()
}

func (c *Collection[T]) freshLocked() bool {
	return c.fetched && c.now().Sub(c.lastUpdated) <= c.ttl
}

// Peek returns the cached snapshot, fresh or stale, and whether any fetch
// has ever succeeded.
func (c *Collection[T]) Peek() ([]T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data, c.fetched
}

// Set stores a fetched snapshot and restarts the staleness clock.
func (c *Collection[T]) Set(data []T) {
	c.mu.Lock()
	c.data = data
	c.fetched = true
	c.lastUpdated = c.now()
	c.mu.Unlock()
}

// Get returns the cached snapshot when fresh; otherwise it runs fetch and
// stores the result. A failed fetch leaves the cache untouched.
func (c *Collection[T]) Get(ctx context.Context, fetch func(context.Context) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	if c.freshLocked() {
		data := c.data
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	data, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.Set(data)
	return data, nil
}

// Cache holds the three transit collections, each with an independent
// staleness clock.
type Cache struct {
	Trains    *Collection[transit.Train]
	Schedules *Collection[transit.Schedule]
	Notices   *Collection[transit.Notice]
}

// NewCache builds an empty cache with a shared TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		Trains:    NewCollection[transit.Train](ttl),
		Schedules: NewCollection[transit.Schedule](ttl),
		Notices:   NewCollection[transit.Notice](ttl),
	}
}

// Prefetch fills all three collections concurrently. Each fetch settles on
// its own; one failing or slow collection never blocks the others.
func (c *Cache) Prefetch(ctx context.Context, provider transit.Provider) {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		if trains, err := provider.Trains(ctx); err == nil {
			c.Trains.Set(trains)
		}
	}()
	go func() {
		defer wg.Done()
		if schedules, err := provider.Schedules(ctx); err == nil {
			c.Schedules.Set(schedules)
		}
	}()
	go func() {
		defer wg.Done()
		if notices, err := provider.Notices(ctx); err == nil {
			c.Notices.Set(notices)
		}
	}()

	wg.Wait()
}

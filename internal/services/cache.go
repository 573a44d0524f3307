package services

import (
	"sync"
	"time"
)

// derivedCache memoizes derived view results keyed by dataset version (or
// dataset version plus scenario key). Entries expire after a TTL, and the
// store flushes the whole cache whenever a new dataset is committed, since
// results for superseded versions can never be read again.
type derivedCache[V any] struct {
	mu    sync.RWMutex
	items map[string]derivedEntry[V]
	ttl   time.Duration
}

type derivedEntry[V any] struct {
	value    V
	deadline time.Time
}

func newDerivedCache[V any](ttl time.Duration) *derivedCache[V] {
	return &derivedCache[V]{
		items: make(map[string]derivedEntry[V]),
		ttl:   ttl,
	}
}

func (c *derivedCache[V]) get(key string) (V, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(entry.deadline) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return entry.value, true
}

func (c *derivedCache[V]) set(key string, value V) {
	c.mu.Lock()
	c.items[key] = derivedEntry[V]{value: value, deadline: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *derivedCache[V]) flush() {
	c.mu.Lock()
	c.items = make(map[string]derivedEntry[V])
	c.mu.Unlock()
}

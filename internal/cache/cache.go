package cache

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Cache is a keyed store of fetched responses with explicit invalidation,
// the client-side counterpart of the front-end query layer. Every mutating
// call invalidates the affected key prefixes so the next read refetches;
// reads between mutation and invalidation may be stale (at-least-once
// consistency, not strict).
type Cache struct {
	mu      sync.Mutex
	entries map[string]any
	seqs    map[string]uint64
}

// Ticket identifies one in-flight fetch for a key. Commit applies a result
// only while its ticket is still the newest for that key, so superseded
// responses are discarded by request identity rather than arrival time.
type Ticket struct {
	// RequestID tags the outgoing request for log correlation
	RequestID string

	key string
	seq uint64
}

// New creates an empty cache
func New() *Cache {
	return &Cache{
		entries: make(map[string]any),
		seqs:    make(map[string]uint64),
	}
}

// Key builds a cache key from hierarchical parts, e.g.
// Key("members", id, "subtree")
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

// Get returns the cached value for key, if present
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Begin registers a new fetch for key and returns its ticket. Any ticket
// issued earlier for the same key becomes stale immediately.
func (c *Cache) Begin(key string) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seqs[key]++
	return Ticket{RequestID: uuid.NewString(), key: key, seq: c.seqs[key]}
}

// Commit stores value under the ticket's key. It reports whether the value
// was applied; a stale ticket leaves the cache untouched.
func (c *Cache) Commit(t Ticket, value any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.seq != c.seqs[t.key] {
		return false
	}
	c.entries[t.key] = value
	return true
}

// Invalidate drops every entry at or under prefix and returns how many were
// removed. Invalidating an already-absent prefix is a no-op.
func (c *Cache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key := range c.entries {
		if key == prefix || strings.HasPrefix(key, prefix+"/") {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear drops every entry, used on logout so no authenticated data survives
// the session
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
}

// Fetch returns the cached value for key or, on a miss, runs fn and caches
// its result under a fresh ticket
func (c *Cache) Fetch(key string, fn func() (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	t := c.Begin(key)
	v, err := fn()
	if err != nil {
		return nil, err
	}
	c.Commit(t, v)
	return v, nil
}

package cache

import (
	"slices"
	"sync"

	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

// Listing is the last known content of one directory, in scan order.
// A Listing stored in the cache is never modified; updates store a new slice.
type Listing []scriptfs.Entry

// EvictFunc is called, outside the cache lock, for each key dropped by
// capacity pressure.
type EvictFunc func(path string)

// DirectoryCache is a bounded path -> Listing map.
// Safe for concurrent use by multiple goroutines; no method performs I/O.
type DirectoryCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]Listing
	order    []string // insertion order, oldest first
	onEvict  EvictFunc
}

// New creates a cache holding at most capacity listings.
func New(capacity int) *DirectoryCache {
	if capacity < 0 {
		capacity = 0
	}
	return &DirectoryCache{
		capacity: capacity,
		entries:  make(map[string]Listing, capacity),
	}
}

// OnEvict registers fn to observe capacity evictions. Not safe to call
// concurrently with Put.
func (c *DirectoryCache) OnEvict(fn EvictFunc) {
	c.onEvict = fn
}

// Capacity returns the maximum number of resident listings.
func (c *DirectoryCache) Capacity() int {
	return c.capacity
}

// Get returns the listing for path. It never triggers a scan and does not
// change eviction order.
func (c *DirectoryCache) Get(path string) (Listing, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.entries[path]
	return l, ok
}

// Put inserts or replaces the listing for path. Replacing keeps the key's
// insertion position. When the cache is over capacity the oldest key other
// than path is evicted.
func (c *DirectoryCache) Put(path string, listing Listing) {
	if c.capacity <= 0 {
		return
	}

	var evicted []string
	c.mu.Lock()
	if _, ok := c.entries[path]; !ok {
		c.order = append(c.order, path)
	}
	c.entries[path] = slices.Clip(listing)
	for len(c.entries) > c.capacity {
		victim := c.oldestExcept(path)
		if victim == "" {
			break
		}
		c.removeLocked(victim)
		evicted = append(evicted, victim)
	}
	onEvict := c.onEvict
	c.mu.Unlock()

	if onEvict != nil {
		for _, p := range evicted {
			onEvict(p)
		}
	}
}

// Update atomically replaces an existing listing with fn's result.
// fn runs under the cache lock and must not call back into the cache; it
// must return a new slice rather than modify the one it is given. Returns
// false when path is absent or fn reports no change.
func (c *DirectoryCache) Update(path string, fn func(Listing) (Listing, bool)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	current, ok := c.entries[path]
	if !ok {
		return false
	}
	next, changed := fn(current)
	if !changed {
		return false
	}
	c.entries[path] = slices.Clip(next)
	return true
}

// Remove drops path if present.
func (c *DirectoryCache) Remove(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(path)
}

// Clear drops every listing.
func (c *DirectoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Listing, c.capacity)
	c.order = nil
}

// Keys returns a snapshot of the resident paths, oldest first.
func (c *DirectoryCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.order)
}

// Drain atomically snapshots the resident paths and clears the cache.
func (c *DirectoryCache) Drain() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := c.order
	c.entries = make(map[string]Listing, c.capacity)
	c.order = nil
	return keys
}

// Len returns the number of resident listings.
func (c *DirectoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *DirectoryCache) oldestExcept(path string) string {
	for _, k := range c.order {
		if k != path {
			return k
		}
	}
	return ""
}

func (c *DirectoryCache) removeLocked(path string) {
	if _, ok := c.entries[path]; !ok {
		return
	}
	delete(c.entries, path)
	if i := slices.Index(c.order, path); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}

package lookup

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	hash string
	err  error
}

// Cache memoizes a Resolver for the lifetime of a run. Concurrent calls for
// the same filename share one upstream request. Results obtained while the
// caller's context was already done are not cached.
type Cache struct {
	next  Resolver
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]entry
}

// NewCache wraps next.
func NewCache(next Resolver) *Cache {
	return &Cache{next: next, entries: make(map[string]entry)}
}

// Resolve returns the memoized result for filename, querying next on a miss.
func (c *Cache) Resolve(ctx context.Context, filename string) (string, error) {
	c.mu.Lock()
	if e, ok := c.entries[filename]; ok {
		c.mu.Unlock()
		return e.hash, e.err
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(filename, func() (any, error) {
		hash, err := c.next.Resolve(ctx, filename)
		if ctx.Err() == nil {
			c.mu.Lock()
			c.entries[filename] = entry{hash: hash, err: err}
			c.mu.Unlock()
		}
		return hash, err
	})
	hash, _ := v.(string)
	return hash, err
}

// Len returns the number of memoized filenames.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

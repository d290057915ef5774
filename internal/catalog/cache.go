package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FetchError wraps a failed catalog load. It is non-fatal: the cache keeps
// its previous snapshot and the caller offers a retry.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "catalog load failed: " + e.Err.Error() }

func (e *FetchError) Unwrap() error { return e.Err }

// LoadFunc fetches the full entity collection from the entity source.
type LoadFunc func(ctx context.Context) ([]Entity, error)

// Cache holds an immutable snapshot of all selectable entities for one
// screen session. Load replaces the snapshot atomically; concurrent Load
// calls share a single in-flight fetch.
type Cache struct {
	loadFn LoadFunc
	group  singleflight.Group

	mu    sync.RWMutex
	byID  map[string]Entity
	order []string
}

func NewCache(load LoadFunc) *Cache {
	return &Cache{
		loadFn: load,
		byID:   make(map[string]Entity),
	}
}

// Load fetches the catalog and swaps in the new snapshot. On failure the
// previous snapshot is kept (empty on first failure). A context cancelled
// while the fetch is in flight discards the result.
func (c *Cache) Load(ctx context.Context) error {
	_, err, _ := c.group.Do("load", func() (any, error) {
		entities, err := c.loadFn(ctx)
		if err != nil {
			return nil, err
		}
		// The screen may have gone away while the fetch was running.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.replace(entities)
		return nil, nil
	})
	if err != nil {
		return &FetchError{Err: err}
	}
	return nil
}

func (c *Cache) replace(entities []Entity) {
	byID := make(map[string]Entity, len(entities))
	order := make([]string, 0, len(entities))
	for _, e := range entities {
		if _, dup := byID[e.ID]; dup {
			continue
		}
		byID[e.ID] = e
		order = append(order, e.ID)
	}

	c.mu.Lock()
	c.byID = byID
	c.order = order
	c.mu.Unlock()
}

// Get looks up an entity by id. ok is false for dangling references, which
// are legitimate: callers render a Placeholder instead.
func (c *Cache) Get(id string) (Entity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.byID[id]
	return e, ok
}

// All returns the snapshot in fetch order.
func (c *Cache) All() []Entity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entity, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

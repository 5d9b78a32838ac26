package client

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Tag names an entity type and optionally one entity of that type.
type Tag struct {
	Type string
	Id   string
}

func (t Tag) String() string {
	if t.Id == "" {
		return t.Type
	}
	return t.Type + ":" + t.Id
}

const (
	TagBooks     = "Books"
	TagOrders    = "Orders"
	TagFavorites = "Favorites"
)

// matches reports whether invalidating t hits an entry that provides p. A
// type-only tag hits every entry of that type.
func (t Tag) matches(p Tag) bool {
	if t.Type != p.Type {
		return false
	}
	return t.Id == "" || t.Id == p.Id
}

type fetchFunc func(ctx context.Context) (value any, tags []Tag, err error)

type entry struct {
	value any
	tags  []Tag
	fetch fetchFunc
}

type cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	watchers map[string]map[int]func()
	nextId   int
	group    singleflight.Group
	// gens counts invalidations per tag type.
	gens map[string]uint64
}

func newCache() *cache {
	return &cache{
		entries:  make(map[string]*entry),
		watchers: make(map[string]map[int]func()),
		gens:     make(map[string]uint64),
	}
}

func (c *cache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// load returns the cached value for key or runs fetch once, however many
// callers ask for the same key concurrently.
func (c *cache) load(ctx context.Context, key string, fetch fetchFunc) (any, error) {
	if v, ok := c.get(key); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.get(key); ok {
			return v, nil
		}
		return c.refresh(ctx, key, fetch)
	})
	return v, err
}

// refresh runs fetch and stores its result. A result whose tags were
// invalidated while fetch was running is returned but not stored.
func (c *cache) refresh(ctx context.Context, key string, fetch fetchFunc) (any, error) {
	c.mu.Lock()
	seen := make(map[string]uint64, len(c.gens))
	for t, g := range c.gens {
		seen[t] = g
	}
	c.mu.Unlock()

	value, tags, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tags {
		if c.gens[t.Type] != seen[t.Type] {
			log.Debug().Str("key", key).Msg("fetched value went stale, not cached")
			return value, nil
		}
	}
	c.entries[key] = &entry{value: value, tags: tags, fetch: fetch}
	return value, nil
}

// watch registers fn to be called whenever the entry under key is
// refetched after an invalidation.
func (c *cache) watch(key string, fn func()) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextId
	c.nextId++
	if c.watchers[key] == nil {
		c.watchers[key] = make(map[int]func())
	}
	c.watchers[key][id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.watchers[key], id)
		if len(c.watchers[key]) == 0 {
			delete(c.watchers, key)
		}
	}
}

// invalidate drops every entry providing one of tags. Entries somebody
// watches are fetched again and their watchers notified.
func (c *cache) invalidate(ctx context.Context, tags ...Tag) {
	type refetch struct {
		key   string
		fetch fetchFunc
	}
	var todo []refetch

	c.mu.Lock()
	for _, t := range tags {
		c.gens[t.Type]++
	}
	for key, e := range c.entries {
		if !hits(tags, e.tags) {
			continue
		}
		delete(c.entries, key)
		if len(c.watchers[key]) > 0 {
			todo = append(todo, refetch{key: key, fetch: e.fetch})
		}
	}
	c.mu.Unlock()

	for _, r := range todo {
		r := r
		c.group.Forget(r.key)
		_, err, _ := c.group.Do(r.key, func() (any, error) {
			return c.refresh(ctx, r.key, r.fetch)
		})
		if err != nil {
			log.Warn().Err(err).Str("key", r.key).Msg("refetch after invalidation failed")
			continue
		}
		c.notify(r.key)
	}
}

func (c *cache) notify(key string) {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.watchers[key]))
	for _, fn := range c.watchers[key] {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func hits(invalidated []Tag, provided []Tag) bool {
	for _, t := range invalidated {
		for _, p := range provided {
			if t.matches(p) {
				return true
			}
		}
	}
	return false
}

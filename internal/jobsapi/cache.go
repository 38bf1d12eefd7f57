package jobsapi

import (
	"context"
	"sync"
	"time"

	"github.com/octobees/job-market-dashboard/internal/metrics"
	"github.com/octobees/job-market-dashboard/internal/search"
)

const skillsCacheKey = "skill"

type cacheEntry struct {
	values  []string
	expires time.Time
}

// Cache keeps filter option lookups in memory for a fixed TTL. Searches and aggregates
// always go to the underlying source. Failed lookups are never cached.
type Cache struct {
	next Source
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCache wraps next. A non-positive ttl disables caching.
func NewCache(next Source, ttl time.Duration) *Cache {
	return &Cache{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cache) Search(ctx context.Context, q search.Query) (SearchPage, error) {
	return c.next.Search(ctx, q)
}

func (c *Cache) TopZones(ctx context.Context, zone Zone) ([]ZoneCount, error) {
	return c.next.TopZones(ctx, zone)
}

func (c *Cache) TopSkills(ctx context.Context) ([]SkillCount, error) {
	return c.next.TopSkills(ctx)
}

func (c *Cache) Lookup(ctx context.Context, kind LookupKind) ([]string, error) {
	return c.load(string(kind), func() ([]string, error) {
		return c.next.Lookup(ctx, kind)
	})
}

func (c *Cache) Skills(ctx context.Context) ([]string, error) {
	return c.load(skillsCacheKey, func() ([]string, error) {
		return c.next.Skills(ctx)
	})
}

// Invalidate drops every cached entry.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

func (c *Cache) load(key string, fetch func() ([]string, error)) ([]string, error) {
	if c.ttl <= 0 {
		return fetch()
	}

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && c.now().Before(entry.expires) {
		metrics.LookupCacheHits.WithLabelValues(key).Inc()
		return cloneValues(entry.values), nil
	}

	values, err := fetch()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{values: cloneValues(values), expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return values, nil
}

func cloneValues(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

var _ Source = (*Cache)(nil)

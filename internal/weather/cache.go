package weather

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/jaehokim/nalssibot/internal/metrics"
	"github.com/jaehokim/nalssibot/internal/models"
)

// DefaultTTL is how long a live observation stays servable from cache.
const DefaultTTL = 10 * time.Minute

// Fetcher produces an observation for a location. It must not fail: error
// paths are expected to return a synthetic observation instead.
type Fetcher func(ctx context.Context, sido, area string) models.Observation

// Persistence is the optional durable layer behind the in-memory cache.
// Implemented by the sqlite store; a restart inside the TTL window serves
// the durable copy instead of refetching.
type Persistence interface {
	GetCachedObservation(sido, area string, now time.Time) (*models.Observation, time.Time, error)
	PutCachedObservation(obs models.Observation, expiresAt time.Time) error
	DeleteExpiredObservations(now time.Time) (int64, error)
}

type entry struct {
	obs       models.Observation
	expiresAt time.Time
}

// Cache holds observations keyed by (sido, area) with a TTL, guaranteeing at
// most one fetch in flight per key. Different keys fetch in parallel.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	group   singleflight.Group
	ttl     time.Duration
	clock   clockwork.Clock
	durable Persistence
}

// NewCache builds a cache. durable may be nil to run memory-only.
func NewCache(ttl time.Duration, clock clockwork.Clock, durable Persistence) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   clock,
		durable: durable,
	}
}

// GetOrFetch returns a live cached observation for the key, or invokes fetch
// at most once concurrently per key. Only live results are cached: a
// synthetic fallback is returned as-is so the next call retries the network.
func (c *Cache) GetOrFetch(ctx context.Context, sido, area string, fetch Fetcher) models.Observation {
	key := sido + "/" + area

	if obs, ok := c.lookup(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("hit").Inc()
		return obs
	}

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent caller may have filled the entry while this one
		// was queuing on the flight group.
		if obs, ok := c.lookup(key); ok {
			metrics.CacheHitsTotal.WithLabelValues("hit").Inc()
			return obs, nil
		}

		if obs, ok := c.lookupDurable(key, sido, area); ok {
			metrics.CacheHitsTotal.WithLabelValues("durable_hit").Inc()
			return obs, nil
		}

		metrics.CacheHitsTotal.WithLabelValues("miss").Inc()
		obs := fetch(ctx, sido, area)
		if obs.Source == models.SourceLive {
			c.put(key, obs)
		}
		return obs, nil
	})
	return v.(models.Observation)
}

func (c *Cache) lookup(key string) (models.Observation, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !c.clock.Now().Before(e.expiresAt) {
		return models.Observation{}, false
	}
	obs := e.obs
	obs.Source = models.SourceCached
	return obs, true
}

func (c *Cache) lookupDurable(key, sido, area string) (models.Observation, bool) {
	if c.durable == nil {
		return models.Observation{}, false
	}
	obs, expiresAt, err := c.durable.GetCachedObservation(sido, area, c.clock.Now())
	if err != nil {
		log.Printf("cache: durable lookup %s: %v", key, err)
		return models.Observation{}, false
	}
	if obs == nil {
		return models.Observation{}, false
	}
	c.mu.Lock()
	c.entries[key] = entry{obs: *obs, expiresAt: expiresAt}
	c.mu.Unlock()
	out := *obs
	out.Source = models.SourceCached
	return out, true
}

func (c *Cache) put(key string, obs models.Observation) {
	expiresAt := c.clock.Now().Add(c.ttl)
	c.mu.Lock()
	c.entries[key] = entry{obs: obs, expiresAt: expiresAt}
	c.mu.Unlock()

	if c.durable != nil {
		if err := c.durable.PutCachedObservation(obs, expiresAt); err != nil {
			log.Printf("cache: persist %s: %v", key, err)
		}
	}
}

// Sweep drops expired entries. Reads and writes for live keys proceed while
// a sweep runs; only map access itself is serialized.
func (c *Cache) Sweep() {
	now := c.clock.Now()

	c.mu.Lock()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	if c.durable != nil {
		n, err := c.durable.DeleteExpiredObservations(now)
		if err != nil {
			log.Printf("cache: durable sweep: %v", err)
		} else if n > 0 {
			log.Printf("cache: swept %d durable entries", n)
		}
	}

	if removed > 0 {
		log.Printf("cache: swept %d entries", removed)
	}
}

// StartSweeper runs Sweep on the interval until the context ends.
func (c *Cache) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := c.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			c.Sweep()
		}
	}
}

// Len reports the number of physically stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

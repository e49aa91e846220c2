package search

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

const (
	defaultCacheEntries = 256
	metricNamespace     = "github.com/ironarian/ukr-jobs-japan/internal/search"

	// LookupResultKey labels search.cache.lookups with "hit" or "miss".
	LookupResultKey = "result"
)

type cacheKey struct {
	version  string
	criteria Criteria
}

// Cache memoizes Apply per catalog version and criteria. It never changes results.
type Cache struct {
	mu         sync.RWMutex
	items      map[cacheKey][]*domain.Job
	maxEntries int

	lookups        metric.Int64Counter
	lookupsEnabled bool
}

// CacheOption customises a Cache.
type CacheOption func(*Cache)

// WithMaxEntries bounds the number of memoized selections. The cache is emptied when full.
func WithMaxEntries(n int) CacheOption {
	return func(c *Cache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithMeter records cache lookups on the supplied meter.
func WithMeter(meter metric.Meter) CacheOption {
	return func(c *Cache) {
		if meter == nil {
			return
		}
		counter, err := meter.Int64Counter(
			"search.cache.lookups",
			metric.WithDescription("Filter cache lookups by result"),
		)
		c.lookups = counter
		c.lookupsEnabled = err == nil
	}
}

// NewCache constructs an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		items:      make(map[cacheKey][]*domain.Job),
		maxEntries: defaultCacheEntries,
	}
	WithMeter(otel.GetMeterProvider().Meter(metricNamespace))(c)
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Apply returns the memoized selection for (version, criteria), computing it on a miss.
func (c *Cache) Apply(ctx context.Context, version string, jobs []*domain.Job, criteria Criteria) Result {
	key := cacheKey{version: version, criteria: criteria}

	c.mu.RLock()
	cached, ok := c.items[key]
	c.mu.RUnlock()
	if ok {
		c.record(ctx, "hit")
		return Result{Jobs: cloneJobs(cached), Count: len(cached)}
	}

	c.record(ctx, "miss")
	result := Apply(jobs, criteria)

	c.mu.Lock()
	if len(c.items) >= c.maxEntries {
		c.items = make(map[cacheKey][]*domain.Job)
	}
	c.items[key] = cloneJobs(result.Jobs)
	c.mu.Unlock()

	return result
}

// Len reports the number of memoized selections.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) record(ctx context.Context, result string) {
	if !c.lookupsEnabled {
		return
	}
	c.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String(LookupResultKey, result)))
}

func cloneJobs(in []*domain.Job) []*domain.Job {
	out := make([]*domain.Job, len(in))
	copy(out, in)
	return out
}

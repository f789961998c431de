package reference

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/AusClimateService/gwls/internal/observability"
)

// Cached wraps a Source with a TTL cache keyed by phase. Only successful
// fetches are cached, so a failing source is retried on the next call.
type Cached struct {
	inner   Source
	cache   *cache.Cache
	metrics *observability.Metrics
}

// NewCached creates a cache decorator around a source with the given TTL.
func NewCached(inner Source, ttl time.Duration, metrics *observability.Metrics) *Cached {
	return &Cached{
		inner:   inner,
		cache:   cache.New(ttl, ttl*2),
		metrics: metrics,
	}
}

// Fetch returns the cached document text for a phase, fetching through to
// the inner source when absent or expired.
func (c *Cached) Fetch(ctx context.Context, phase string) (string, error) {
	if cached, found := c.cache.Get(phase); found {
		if text, ok := cached.(string); ok {
			c.metrics.DocCache.WithLabelValues("hit").Inc()
			return text, nil
		}
	}
	c.metrics.DocCache.WithLabelValues("miss").Inc()

	text, err := c.inner.Fetch(ctx, phase)
	if err != nil {
		return "", err
	}
	c.cache.Set(phase, text, cache.DefaultExpiration)
	return text, nil
}

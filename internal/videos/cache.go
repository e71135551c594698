package videos

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachingProvider wraps another Provider with a TTL-based in-memory cache.
type CachingProvider struct {
	base  Provider
	items *cache.Cache
}

// NewCachingProvider returns a Provider that caches lookups for the provided TTL.
func NewCachingProvider(base Provider, ttl time.Duration) *CachingProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachingProvider{
		base:  base,
		items: cache.New(ttl, 2*ttl),
	}
}

// Lookup returns cached metadata when available, otherwise it delegates to the
// underlying provider and stores the result. Failures are not cached.
func (c *CachingProvider) Lookup(ctx context.Context, url string) (Metadata, error) {
	if c == nil || c.base == nil {
		return Metadata{}, ErrProviderUnavailable
	}

	if cached, ok := c.items.Get(url); ok {
		return cached.(Metadata), nil
	}

	metadata, err := c.base.Lookup(ctx, url)
	if err != nil {
		return Metadata{}, err
	}

	c.items.Set(url, metadata, cache.DefaultExpiration)
	return metadata, nil
}

package middleware

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter controls how frequently a caller may perform an action.
type RateLimiter interface {
	Allow(key string) bool
}

// KeyedRateLimiter keeps one token bucket per key (typically scope plus
// client IP). Idle buckets expire after the configured ttl.
type KeyedRateLimiter struct {
	mu       sync.Mutex
	visitors *cache.Cache
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewKeyedRateLimiter allows up to requests events per window for each key,
// plus burst extra events. Buckets unused for ttl are forgotten.
func NewKeyedRateLimiter(requests int, window time.Duration, burst int, ttl time.Duration) *KeyedRateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Second
	}
	if burst <= 0 {
		burst = 1
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &KeyedRateLimiter{
		visitors: cache.New(ttl, ttl),
		limit:    rate.Every(window / time.Duration(requests)),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether key may perform another event now.
func (l *KeyedRateLimiter) Allow(key string) bool {
	if key == "" {
		key = "unknown"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var limiter *rate.Limiter
	if cached, ok := l.visitors.Get(key); ok {
		limiter = cached.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(l.limit, l.burst)
	}
	// Re-setting slides the expiry forward on every use.
	l.visitors.Set(key, limiter, cache.DefaultExpiration)

	return limiter.AllowN(l.now(), 1)
}

// Tracked returns the number of keys with a live bucket.
func (l *KeyedRateLimiter) Tracked() int {
	return l.visitors.ItemCount()
}

// WithNowFunc allows tests to override the time source.
func (l *KeyedRateLimiter) WithNowFunc(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

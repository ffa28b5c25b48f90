// Package limits provides per-key rate limiting for HTTP endpoints.
package limits

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
)

// ErrRateLimitExceeded is reported when a key ran out of tokens.
var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// RateLimiter limits the rate of operations per key.
type RateLimiter interface {
	// Allow returns true if the operation is allowed.
	Allow(key string) bool
}

// TokenBucket implements a token bucket rate limiter.
type TokenBucket struct {
	rate    float64 // tokens per second
	burst   int
	clock   core.Clock
	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens   float64
	lastFill time.Time
}

// Option configures a TokenBucket.
type Option func(*TokenBucket)

// WithClock sets the clock used to refill buckets.
func WithClock(c core.Clock) Option {
	return func(tb *TokenBucket) {
		tb.clock = c
	}
}

// NewTokenBucket creates a limiter refilling rate tokens per second up to
// burst.
func NewTokenBucket(rate float64, burst int, opts ...Option) *TokenBucket {
	tb := &TokenBucket{
		rate:    rate,
		burst:   burst,
		clock:   core.SystemClock(),
		buckets: make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(tb)
	}
	return tb
}

// Allow checks if an operation is allowed for key.
func (tb *TokenBucket) Allow(key string) bool {
	return tb.AllowN(key, 1)
}

// AllowN checks if n operations are allowed for key.
func (tb *TokenBucket) AllowN(key string, n int) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.clock.Now()
	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(tb.burst), lastFill: now}
		tb.buckets[key] = b
	}

	b.tokens += now.Sub(b.lastFill).Seconds() * tb.rate
	if b.tokens > float64(tb.burst) {
		b.tokens = float64(tb.burst)
	}
	b.lastFill = now

	if b.tokens >= float64(n) {
		b.tokens -= float64(n)
		return true
	}
	return false
}

// Sweep forgets buckets idle for longer than idle and returns how many were
// removed.
func (tb *TokenBucket) Sweep(idle time.Duration) int {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.clock.Now()
	removed := 0
	for key, b := range tb.buckets {
		if now.Sub(b.lastFill) > idle {
			delete(tb.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (tb *TokenBucket) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.buckets)
}

// Middleware rejects requests whose key ran out of tokens with 429.
func Middleware(limiter RateLimiter, keyFunc func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(keyFunc(r)) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, ErrRateLimitExceeded.Error(), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CookieKeyFunc keys requests by the value of cookie name, falling back to
// the remote address.
func CookieKeyFunc(name string) func(*http.Request) string {
	return func(r *http.Request) string {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return c.Value
		}
		return r.RemoteAddr
	}
}

package fetch

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// defaultBackoff applies when a server throttles without a usable Retry-After.
const defaultBackoff = 30 * time.Second

// hostLimiter throttles requests per host with a token bucket and honours
// Retry-After backoff reported by 429 and 503 responses.
type hostLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	hosts   map[string]*rate.Limiter
	retryAt map[string]time.Time
}

// newHostLimiter creates a limiter allowing requestsPerSecond per host.
// Zero or negative disables the token bucket; backoff still applies.
func newHostLimiter(requestsPerSecond float64) *hostLimiter {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &hostLimiter{
		limit:   limit,
		burst:   1,
		hosts:   make(map[string]*rate.Limiter),
		retryAt: make(map[string]time.Time),
	}
}

// Wait blocks until a request to host is allowed or ctx ends.
func (h *hostLimiter) Wait(ctx context.Context, host string) error {
	h.mu.Lock()
	limiter, ok := h.hosts[host]
	if !ok {
		limiter = rate.NewLimiter(h.limit, h.burst)
		h.hosts[host] = limiter
	}
	retryAt := h.retryAt[host]
	h.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return limiter.Wait(ctx)
}

// RecordRetryAfter sets a backoff for host from a Retry-After header value,
// either delay-seconds or an HTTP date.
func (h *hostLimiter) RecordRetryAfter(host, retryAfter string) {
	backoff := defaultBackoff
	if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
		backoff = time.Duration(seconds) * time.Second
	} else if when, err := time.Parse(time.RFC1123, retryAfter); err == nil {
		backoff = time.Until(when)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.retryAt[host] = time.Now().Add(backoff)
}

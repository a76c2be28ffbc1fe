package aggregate

import (
	"context"
	"sync"

	"github.com/rmehra/pricekart"
	"golang.org/x/time/rate"
)

var _ pricekart.SiteLimiter = (*SiteLimiter)(nil)

// SiteLimiter provides per-site rate limiting using token buckets.
// Each site gets its own limiter, so a slow site does not delay
// requests to the others.
type SiteLimiter struct {
	mu       sync.Mutex
	limiters map[pricekart.Site]*rate.Limiter
	rps      float64
}

// NewSiteLimiter creates a SiteLimiter with the specified requests per
// second limit. Each site gets a burst of 1 (no bursting allowed).
func NewSiteLimiter(rps float64) *SiteLimiter {
	return &SiteLimiter{
		limiters: make(map[pricekart.Site]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the site.
// Returns an error if the context is canceled before the wait completes.
func (l *SiteLimiter) Wait(ctx context.Context, site pricekart.Site) error {
	l.mu.Lock()
	limiter, ok := l.limiters[site]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[site] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}

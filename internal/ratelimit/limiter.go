// Package ratelimit provides a global request limiter shared by all
// interpretation workers.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles external interpretation calls across all workers so
// concurrent fan-out cannot exceed the provider's rate budget.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing requestsPerSecond sustained with the
// given burst. Non-positive values disable throttling.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until the next request is allowed or ctx is canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow checks if a request is allowed without waiting
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

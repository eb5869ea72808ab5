package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces batch job starts so concurrent documents don't stampede
// the oracle and search APIs
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a new limiter. A non-positive rate disables pacing.
func NewLimiter(jobsPerSecond float64, burst int) *Limiter {
	if jobsPerSecond <= 0 {
		return &Limiter{}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(jobsPerSecond), burst),
	}
}

// Wait blocks until the next job may start
func (l *Limiter) Wait(ctx context.Context) error {
	if l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}

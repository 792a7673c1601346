package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter caps how many files per second the pool dispatches. Local disks
// never need it; vaults on network mounts or cloud-synced folders do, where
// an unthrottled scan can saturate the share.
//
// A nil *Limiter is valid and means unthrottled.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing filesPerSecond sustained with the
// given burst. Returns nil (unthrottled) when filesPerSecond <= 0.
func NewLimiter(filesPerSecond float64, burst int) *Limiter {
	if filesPerSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(filesPerSecond), burst)}
}

// Wait blocks until the next file may be read, or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}

// Allow reports whether a file may be read right now without waiting.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.Allow()
}

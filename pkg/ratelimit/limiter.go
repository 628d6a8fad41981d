package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces outbound requests
type Limiter interface {
	// Wait blocks until a request may proceed or ctx is done
	Wait(ctx context.Context) error
	// Allow reports whether a request may proceed right now
	Allow() bool
}

// Throttle is a token-bucket Limiter. A nil Throttle, or one created with
// a non-positive rate, never blocks.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle allows requestsPerMinute requests with the given burst
func NewThrottle(requestsPerMinute, burst int) *Throttle {
	if requestsPerMinute <= 0 {
		return &Throttle{}
	}
	if burst < 1 {
		burst = 1
	}
	return &Throttle{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), burst),
	}
}

// Wait blocks until the bucket has a token
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.limiter == nil {
		return ctx.Err()
	}
	return t.limiter.Wait(ctx)
}

// Allow takes a token if one is available
func (t *Throttle) Allow() bool {
	if t == nil || t.limiter == nil {
		return true
	}
	return t.limiter.Allow()
}

// Unlimited reports whether the throttle never blocks
func (t *Throttle) Unlimited() bool {
	return t == nil || t.limiter == nil
}

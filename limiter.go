package main

import (
	"context"
	"math"
	"time"

	"golang.org/x/time/rate"
)

// A Limiter paces one generator with a token bucket sized for bursty
// delivery: capacity is 100x the sustained rate, so a temporarily stalled
// queue accumulates tokens instead of losing them, and the refill rate
// carries a 1% overshoot so integer rounding can't leave the category
// permanently under its target. The bucket starts empty; a fresh process
// ramps up over its first seconds rather than dumping a hundred seconds of
// records at once.
type Limiter struct {
	bucket *rate.Limiter
}

// NewLimiter builds a limiter targeting perSecond records per second,
// which must be positive. Disabled categories (rate 0) are skipped by the
// caller and never get a limiter.
func NewLimiter(perSecond int) *Limiter {
	burst := perSecond * 100
	refill := rate.Limit(math.Ceil(float64(perSecond) * 1.01))
	bucket := rate.NewLimiter(refill, burst)
	bucket.AllowN(time.Now(), burst) // drain the initial full bucket
	return &Limiter{bucket: bucket}
}

// Acquire blocks until a token is available and consumes it, or returns
// the context's error on cancellation. This is a generator's only
// scheduling point besides the queue push.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.bucket.Wait(ctx)
}

package throttler

import (
	"time"

	"golang.org/x/time/rate"
)

// TokenBucket is a RateLimiter backed by golang.org/x/time/rate. Instead of enforcing a strict
// trailing-window count like SlidingWindow, it spreads dispatches evenly across the window (with a
// burst of maxRequests), which can be preferable when the downstream service dislikes bursts. Attach
// it with Throttler.WithRateLimiter().
type TokenBucket struct {
	maxRequests uint32
	window      time.Duration
	limiter     *rate.Limiter
}

// This function creates a new TokenBucket that allows maxRequests dispatches per window.
// maxRequests must be greater than zero; a zero window disables throttling entirely.
func NewTokenBucket(maxRequests uint32, window time.Duration) (*TokenBucket, error) {
	if maxRequests == 0 {
		return nil, InvalidMaxRequestsError{}
	}
	if window < 0 {
		return nil, InvalidTimeWindowError{}
	}
	r := &TokenBucket{
		maxRequests: maxRequests,
		window:      window,
	}
	if window > 0 {
		r.limiter = rate.NewLimiter(rate.Every(window/time.Duration(maxRequests)), int(maxRequests))
	}
	return r, nil
}

// This returns the number of dispatches allowed per window.
func (t *TokenBucket) MaxRequests() uint32 {
	return t.maxRequests
}

// This returns the length of the window.
func (t *TokenBucket) Window() time.Duration {
	return t.window
}

// This reserves one dispatch and returns how long the caller must sleep before performing it. Not
// threadsafe in combination with the other methods; only the single processing loop may call this.
func (t *TokenBucket) RecordAndWait(now time.Time) time.Duration {
	if t.limiter == nil {
		return 0
	}
	return t.limiter.ReserveN(now, 1).DelayFrom(now)
}

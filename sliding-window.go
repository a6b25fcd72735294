package throttler

import "time"

// SlidingWindow is a RateLimiter that admits at most maxRequests dispatches in any rolling window,
// evaluated continuously against the timestamps of past dispatches rather than in fixed buckets.
// This is the default RateLimiter used by the Throttler.
type SlidingWindow struct {
	maxRequests uint32
	window      time.Duration
	stamps      []time.Time
}

// This function creates a new SlidingWindow. maxRequests must be greater than zero; a zero window
// disables throttling entirely.
func NewSlidingWindow(maxRequests uint32, window time.Duration) (*SlidingWindow, error) {
	if maxRequests == 0 {
		return nil, InvalidMaxRequestsError{}
	}
	if window < 0 {
		return nil, InvalidTimeWindowError{}
	}
	return &SlidingWindow{
		maxRequests: maxRequests,
		window:      window,
	}, nil
}

// This returns the number of dispatches allowed per window.
func (s *SlidingWindow) MaxRequests() uint32 {
	return s.maxRequests
}

// This returns the length of the rolling window.
func (s *SlidingWindow) Window() time.Duration {
	return s.window
}

// This evicts timestamps that have fallen out of the window, records the upcoming dispatch, and
// returns how long the caller must sleep before performing it. When the window is full, the oldest
// stamp is replaced by the projected dispatch instant (now plus the wait), so a single call per
// dispatch is enough to guarantee that no rolling window ever contains more than maxRequests
// dispatches, provided the caller actually sleeps for the returned duration. Not threadsafe; only
// the single processing loop may call this.
func (s *SlidingWindow) RecordAndWait(now time.Time) time.Duration {
	if s.window == 0 {
		return 0
	}

	// evict stamps outside the window
	cutoff := now.Add(-s.window)
	for len(s.stamps) > 0 && !s.stamps[0].After(cutoff) {
		s.stamps = s.stamps[1:]
	}

	// under capacity, dispatch immediately
	if uint32(len(s.stamps)) < s.maxRequests {
		s.stamps = append(s.stamps, now)
		return 0
	}

	// at capacity, the dispatch may happen once the oldest stamp leaves the window
	wait := s.window - now.Sub(s.stamps[0])
	if wait < 0 {
		wait = 0
	}
	s.stamps = s.stamps[1:]
	s.stamps = append(s.stamps, now.Add(wait))
	return wait
}

package throttler

import "time"

// RateLimiter decides how long the processing loop must wait before the next dispatch may proceed.
// The loop is the only caller, so implementations are not required to be threadsafe.
type RateLimiter interface {

	// MaxRequests returns the number of dispatches allowed per window.
	MaxRequests() uint32

	// Window returns the length of the rolling window.
	Window() time.Duration

	// RecordAndWait records a dispatch at the given time and returns how long the caller must
	// sleep before performing it. A zero return means the dispatch may proceed immediately.
	RecordAndWait(now time.Time) time.Duration
}

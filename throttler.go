package throttler

import (
	"context"
	"sync"
	"time"
)

const (
	throttlerPhaseUninitialized = iota
	throttlerPhaseStarted
	throttlerPhaseDraining
	throttlerPhaseStopped
)

type IThrottler interface {
	ieventer
	WithRateLimiter(rl RateLimiter) IThrottler
	WithFetcher(f Fetcher) IThrottler
	Enqueue(op *Operation) error
	OperationsInBuffer() uint32
	Start(ctx context.Context) (err error)
	Stop()
}

type Throttler struct {
	eventer

	// configuration items that should not change after Start()
	maxRequests uint32
	window      time.Duration
	ratelimiter RateLimiter
	fetcher     Fetcher

	// used for internal operations
	buffer *buffer

	// manage the phase
	phaseMutex sync.Mutex
	phase      int
	shutdown   sync.WaitGroup
}

// This function creates a new Throttler that dispatches at most maxRequests operations in any
// rolling window of the given length. Commonly after calling NewThrottler() you will chain some
// WithXXXX methods, for instance... `NewThrottler(5, time.Second).WithFetcher(f)`.
func NewThrottler(maxRequests uint32, window time.Duration) IThrottler {
	r := &Throttler{
		maxRequests: maxRequests,
		window:      window,
	}
	r.buffer = newBuffer()
	return r
}

// Use this method to replace the default SlidingWindow admission with a different RateLimiter, for
// instance a TokenBucket. The limiter is only ever called from the processing goroutine so it does
// not need to be threadsafe.
func (r *Throttler) WithRateLimiter(rl RateLimiter) IThrottler {
	r.phaseMutex.Lock()
	defer r.phaseMutex.Unlock()
	if r.phase != throttlerPhaseUninitialized {
		panic(InitializationOnlyError{})
	}
	r.ratelimiter = rl
	return r
}

// Use this method to replace the default HTTP GET transport, for instance with a stub in unit tests
// or a client that speaks something other than HTTP.
func (r *Throttler) WithFetcher(f Fetcher) IThrottler {
	r.phaseMutex.Lock()
	defer r.phaseMutex.Unlock()
	if r.phase != throttlerPhaseUninitialized {
		panic(InitializationOnlyError{})
	}
	r.fetcher = f
	return r
}

// Call this method to add an Operation into the buffer. The buffer is unbounded so Enqueue never
// blocks the producer; it is safe to call from any number of goroutines. Relative order of enqueues
// from the same goroutine is preserved. Once the drain has completed, Enqueue returns
// BufferClosedError.
func (r *Throttler) Enqueue(op *Operation) error {
	if op == nil {
		return NoOperationError{}
	}
	return r.buffer.push(envelope{op: op})
}

// This tells you how many operations are still in the buffer. It does not include an operation that
// is currently being throttled or dispatched.
func (r *Throttler) OperationsInBuffer() uint32 {
	return r.buffer.count()
}

// Call this method to start the processing loop. Configuration is validated here; the loop is never
// started with an invalid window. The loop pops one envelope at a time, asks the rate limiter how
// long to wait, sleeps for that duration, performs the fetch, and then routes the result: a
// successful response is raised as DispatchedEvent and handed to the Operation callback, a
// transport failure is raised as FailedEvent and the callback is not invoked. A failure never
// aborts the loop. The provided context is passed to every Fetch call.
func (r *Throttler) Start(ctx context.Context) (err error) {

	// only allow one phase at a time
	r.phaseMutex.Lock()
	defer r.phaseMutex.Unlock()
	if r.phase != throttlerPhaseUninitialized {
		err = ImproperOrderError{}
		return
	}

	// ensure buffer was provisioned
	if r.buffer == nil {
		err = BufferNotAllocated{}
		return
	}

	// build the default rate limiter and transport
	if r.ratelimiter == nil {
		r.ratelimiter, err = NewSlidingWindow(r.maxRequests, r.window)
		if err != nil {
			return
		}
	}
	if r.fetcher == nil {
		r.fetcher = NewHTTPFetcher(nil)
	}

	// prepare for shutdown
	r.shutdown.Add(1)

	// process
	go func() {

		// shutdown
		defer func() {
			r.buffer.close()
			r.emit(ShutdownEvent, 0, "", nil)
			r.shutdown.Done()
		}()

		// loop
		draining := false
		for {

			env, ok := r.buffer.pop()
			if !ok {
				// the buffer was closed underneath the loop; nothing is left to process
				return
			}

			if env.stop {
				// do not dispatch; keep draining whatever was queued ahead of the signal
				draining = true
				r.emit(DrainingEvent, int(r.buffer.count()), "", nil)
			} else {
				op := env.op

				// throttle before dispatching
				wait := r.ratelimiter.RecordAndWait(time.Now())
				if wait > 0 {
					r.emit(ThrottledEvent, int(wait.Milliseconds()), "", op)
					time.Sleep(wait)
				}

				// dispatch; a failure is isolated to this operation
				payload, status, ferr := r.fetcher.Fetch(ctx, op.Resource())
				if ferr != nil {
					r.emit(FailedEvent, 0, ferr.Error(), op)
				} else {
					r.emit(DispatchedEvent, status, "", op)
					if cb := op.Callback(); cb != nil {
						cb(payload, status)
					}
				}
			}

			// the loop only exits once the stop signal was seen and everything queued has drained
			if draining && r.buffer.isEmpty() {
				return
			}

		}

	}()

	// end starting
	r.phase = throttlerPhaseStarted

	return
}

// Call this method to stop the processing loop. A stop signal is appended to the buffer; everything
// queued ahead of it, and anything another producer manages to enqueue before the drain completes,
// is still dispatched. The first call blocks until the drain has finished; further calls during the
// drain return immediately. Calling Stop more than once, or without having called Start, is safe.
// You may not restart after stopping.
func (r *Throttler) Stop() {

	// only the first stop starts the drain
	r.phaseMutex.Lock()
	if r.phase != throttlerPhaseStarted {
		// NOTE: there should be no need for callers to handle errors at Stop(), we will just ignore them
		r.phaseMutex.Unlock()
		return
	}
	r.phase = throttlerPhaseDraining
	r.phaseMutex.Unlock()

	// signal the drain, then wait for the loop to finish
	_ = r.buffer.push(envelope{stop: true})
	r.shutdown.Wait()

	// update the phase
	r.phaseMutex.Lock()
	r.phase = throttlerPhaseStopped
	r.phaseMutex.Unlock()

}

package throttler

const (
	DispatchedEvent = "dispatched"
	FailedEvent     = "failed"
	ThrottledEvent  = "throttled"
	DrainingEvent   = "draining"
	ShutdownEvent   = "shutdown"
)

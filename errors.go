package throttler

type InvalidMaxRequestsError struct{}

func (e InvalidMaxRequestsError) Error() string {
	return "maxRequests must be greater than zero."
}

type InvalidTimeWindowError struct{}

func (e InvalidTimeWindowError) Error() string {
	return "the time window cannot be negative."
}

type NoOperationError struct{}

func (e NoOperationError) Error() string {
	return "no operation was provided."
}

type BufferClosedError struct{}

func (e BufferClosedError) Error() string {
	return "the buffer is closed, no more operations can be enqueued."
}

type BufferNotAllocated struct{}

func (e BufferNotAllocated) Error() string {
	return "the buffer was never allocated, make sure to create a Throttler by calling NewThrottler()."
}

type ImproperOrderError struct{}

func (e ImproperOrderError) Error() string {
	return "methods can only be called in this order Start() > Stop()."
}

type InitializationOnlyError struct{}

func (e InitializationOnlyError) Error() string {
	return "With methods can only be called before Start()."
}

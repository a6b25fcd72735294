package throttler

import "github.com/google/uuid"

// CompletionFunc receives the raw payload and status code of a completed dispatch. It is invoked at
// most once, on the processing goroutine, and only when the transport call succeeded; transport
// failures are reported through the FailedEvent instead.
type CompletionFunc func(payload []byte, status int)

// An Operation wraps a single resource to fetch along with an optional completion callback. It is
// immutable once created; ownership passes from the producer to the buffer to the processing loop.
type Operation struct {
	id       uuid.UUID
	resource string
	callback CompletionFunc
}

// This function creates a new Operation for the given resource. The callback is optional; pass nil
// if you do not care about the response.
func NewOperation(resource string, callback CompletionFunc) *Operation {
	return &Operation{
		id:       uuid.New(),
		resource: resource,
		callback: callback,
	}
}

// This returns a unique identifier for the Operation. Events raised while dispatching carry the
// Operation as metadata, so the id can be used to correlate them.
func (o *Operation) Id() uuid.UUID {
	return o.id
}

// This returns the resource identifier that will be handed to the Fetcher.
func (o *Operation) Resource() string {
	return o.resource
}

// This returns the completion callback, or nil if none was provided.
func (o *Operation) Callback() CompletionFunc {
	return o.callback
}

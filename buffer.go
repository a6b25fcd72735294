package throttler

import "sync"

// envelope is the element type of the buffer. It is a tagged union over a work Operation and the
// stop signal so the processing loop can switch on it exhaustively instead of comparing against a
// magic value.
type envelope struct {
	op   *Operation
	stop bool
}

type buffer struct {
	lock     *sync.Mutex
	notEmpty *sync.Cond
	size     uint32
	head     *links
	tail     *links
	closed   bool
}

type links struct {
	env envelope
	nxt *links
}

// FOR INTERNAL USE ONLY. This function creates a new buffer. The buffer is an unbounded linked list
// holding the envelopes that are enqueued. All methods in the buffer are threadsafe since they can
// be called from Throttler.Enqueue and the Throttler main processing loop which are commonly in
// different goroutines.
func newBuffer() *buffer {
	lock := &sync.Mutex{}
	return &buffer{
		lock:     lock,
		notEmpty: sync.NewCond(lock),
	}
}

// This appends an envelope to the tail of the buffer. Since the buffer is unbounded, push never
// blocks the producer. It returns BufferClosedError if the buffer was closed.
func (b *buffer) push(env envelope) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.closed {
		return BufferClosedError{}
	}

	link := &links{env: env}
	if b.tail == nil {
		b.head = link
		b.tail = link
	} else {
		b.tail.nxt = link
		b.tail = link
	}
	b.size++

	b.notEmpty.Signal()
	return nil
}

// This removes and returns the head envelope. It blocks while the buffer is empty; there is only a
// single consumer so a plain condition wait is appropriate. The second return value is false when
// the buffer was closed and fully drained.
func (b *buffer) pop() (envelope, bool) {
	b.lock.Lock()
	defer b.lock.Unlock()

	for b.head == nil && !b.closed {
		b.notEmpty.Wait()
	}
	if b.head == nil {
		return envelope{}, false
	}

	link := b.head
	b.head = link.nxt
	if b.head == nil {
		b.tail = nil
	}
	b.size--

	return link.env, true
}

// This reports whether the buffer currently holds no envelopes. The snapshot is racy by nature; the
// processing loop only consults it together with its draining flag.
func (b *buffer) isEmpty() bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.head == nil
}

// This returns the number of envelopes currently in the buffer.
func (b *buffer) count() uint32 {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.size
}

// This closes the buffer so further pushes fail with BufferClosedError. A blocked pop is woken so it
// can observe the close.
func (b *buffer) close() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.closed = true
	b.notEmpty.Broadcast()
}

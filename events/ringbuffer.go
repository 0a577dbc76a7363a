// Package events carries the two outbound event streams the core emits —
// trades and auction outcomes — off of the matching path. The transport is
// a fixed-size ring buffer gated by a pure semaphore (no CAS), with a
// per-consumer local batch cache to cut synchronization overhead on the
// read side. This is the same structure the teacher used for its order
// and trade queues, generified into one implementation shared by both
// event types the matching core actually produces.
package events

import (
	"sync/atomic"
	_ "unsafe" // for go:linkname
)

//go:linkname semacquireSafe sync.runtime_Semacquire
func semacquireSafe(s *uint32)

//go:linkname semreleaseSafe sync.runtime_Semrelease
func semreleaseSafe(s *uint32, handoff bool, skipframes int)

const batchSize = 128

// RingBuffer is a fixed-capacity, single-writer-friendly, multi-reader-safe
// queue of events of type T. Publish never blocks the matching path beyond
// waiting for a free slot; Consume blocks until at least one event is
// available, then opportunistically drains as many more as are already
// sitting in the buffer into a local cache.
type RingBuffer[T any] struct {
	buffer     []T
	mask       int64
	writeSeq   atomic.Int64
	readSeq    atomic.Int64
	emptySlots uint32
	fullSlots  uint32
}

// NewRingBuffer creates a RingBuffer of the given size, which must be a
// power of two.
func NewRingBuffer[T any](size int) *RingBuffer[T] {
	if size&(size-1) != 0 {
		panic("events: RingBuffer size must be a power of 2")
	}

	rb := &RingBuffer[T]{
		buffer: make([]T, size),
		mask:   int64(size - 1),
	}
	for i := 0; i < size; i++ {
		semreleaseSafe(&rb.emptySlots, false, 0)
	}
	return rb
}

// Pending reports how many published events have not yet been consumed.
func (rb *RingBuffer[T]) Pending() int64 {
	return rb.writeSeq.Load() - rb.readSeq.Load()
}

// Publish appends an event, blocking only if the buffer is momentarily
// full.
func (rb *RingBuffer[T]) Publish(event T) {
	semacquireSafe(&rb.emptySlots)

	seq := rb.writeSeq.Add(1) - 1
	rb.buffer[seq&rb.mask] = event

	semreleaseSafe(&rb.fullSlots, false, 0)
}

// Consumer is a single reader's batch-caching view over a RingBuffer.
// Consumers do not share cache state; each one calls Consume independently.
type Consumer[T any] struct {
	rb         *RingBuffer[T]
	localCache [batchSize]T
	cacheStart int
	cacheEnd   int
}

// NewConsumer returns a Consumer reading from rb.
func (rb *RingBuffer[T]) NewConsumer() *Consumer[T] {
	return &Consumer[T]{rb: rb}
}

// Consume blocks until an event is available and returns it.
func (c *Consumer[T]) Consume() T {
	if c.cacheStart < c.cacheEnd {
		event := c.localCache[c.cacheStart]
		c.cacheStart++
		return event
	}

	c.fillCache()

	event := c.localCache[c.cacheStart]
	c.cacheStart++
	return event
}

func (c *Consumer[T]) fillCache() {
	rb := c.rb

	semacquireSafe(&rb.fullSlots)
	seq := rb.readSeq.Add(1) - 1
	c.localCache[0] = rb.buffer[seq&rb.mask]
	semreleaseSafe(&rb.emptySlots, false, 0)

	acquired := 1

	currentWrite := rb.writeSeq.Load()
	currentRead := rb.readSeq.Load()
	available := int(currentWrite - currentRead)
	if available > batchSize-1 {
		available = batchSize - 1
	}

	for i := 0; i < available; i++ {
		semacquireSafe(&rb.fullSlots)
		seq := rb.readSeq.Add(1) - 1
		c.localCache[acquired] = rb.buffer[seq&rb.mask]
		semreleaseSafe(&rb.emptySlots, false, 0)
		acquired++
	}

	c.cacheStart = 0
	c.cacheEnd = acquired
}

// Package ingress is the admission boundary: the one place external
// producers (network handlers, the load simulator) hand an order to the
// engine.
package ingress

import (
	"sync"

	"cdaflow/domain"
	"cdaflow/queue"
)

// Handle is returned by Submit and resolves once the order has been
// pushed onto the queue. The push itself runs on its own goroutine so
// that Submit never blocks its caller on the queue's lock.
type Handle struct {
	wg *sync.WaitGroup
}

// Join blocks until the admission this handle represents has completed.
func (h *Handle) Join() {
	h.wg.Wait()
}

// OrderProcessor is the single admission point in front of a Queue.
type OrderProcessor struct {
	queue *queue.Queue
}

// New returns an OrderProcessor admitting into q.
func New(q *queue.Queue) *OrderProcessor {
	return &OrderProcessor{queue: q}
}

// Submit spawns an independent worker whose sole action is pushing o onto
// the queue, returning a Handle the caller can Join to learn the push has
// completed. Admission is modeled as non-blocking from the producer's
// perspective; the Queue's own locking linearizes concurrent pushes.
func (p *OrderProcessor) Submit(o *domain.Order) *Handle {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.queue.Push(o)
	}()
	return &Handle{wg: &wg}
}

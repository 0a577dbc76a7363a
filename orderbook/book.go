// Package orderbook implements the resting-order side of the book: a
// single-side, mutex-protected, price-ordered sequence plus a read-only
// depth index built from it on demand.
package orderbook

import (
	"errors"
	"math"
	"sync"

	"cdaflow/domain"
)

// ErrWrongSide is returned when an order destined for the other side of the
// book is passed to AddOrder.
var ErrWrongSide = errors.New("orderbook: order side does not match book side")

// ErrNotFound is returned when a cancel or lookup names a trader with no
// resting order on this book.
var ErrNotFound = errors.New("orderbook: no resting order for trader")

// Book is one side (bid or ask) of a symbol's resting orders. Orders are
// kept in a single slice ordered worst-to-best so that the tail is always
// the best price on this side — index 0 is never read by the crossing
// path, only Len, cancel, and the depth index walk it in full.
//
// This is deliberately a flat slice, not a price-level tree: the hot path
// only ever touches the tail, and a full rescan of minPrice/maxPrice after
// each mutation is cheap at the book sizes this engine targets. See
// depth_index.go for the structure that answers "what does the book look
// like N levels deep"; it is rebuilt from a snapshot of this slice on every
// query.
type Book struct {
	mu       sync.Mutex
	side     domain.Side
	orders   []*domain.Order
	minPrice float64
	maxPrice float64
}

// New returns an empty Book for the given side. An empty book reports the
// conventional extrema for an empty set: minPrice is +Inf, maxPrice is
// -Inf, so that neither GetMinPrice nor GetMaxPrice accidentally looks
// crossable against a populated book on the other side.
func New(side domain.Side) *Book {
	return &Book{
		side:     side,
		minPrice: math.Inf(1),
		maxPrice: math.Inf(-1),
	}
}

// betterOrEqual reports whether price p is at least as good as reference on this
// book's side: higher is better for bids, lower is better for asks.
func (b *Book) betterOrEqual(p, reference float64) bool {
	if b.side == domain.SideBid {
		return p >= reference
	}
	return p <= reference
}

// AddOrder inserts o into its sorted position. Ties go behind (away from
// the tail of) any existing order at the same price — the order that got
// here first keeps its queue position, the newcomer is inserted just
// ahead of it in the worst-to-best ordering. A trader with an existing
// resting order on this book is replaced, keeping at most one resting
// order per trader per side.
func (b *Book) AddOrder(o *domain.Order) error {
	if o.Side != b.side {
		return ErrWrongSide
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.removeByTraderLocked(o.TraderID)

	i := 0
	for ; i < len(b.orders); i++ {
		if b.betterOrEqual(b.orders[i].Price, o.Price) {
			break
		}
	}
	b.orders = append(b.orders, nil)
	copy(b.orders[i+1:], b.orders[i:])
	b.orders[i] = o

	b.recomputeExtremaLocked()
	return nil
}

// CancelOrder removes the resting order belonging to o.TraderID.
func (b *Book) CancelOrder(o *domain.Order) error {
	return b.CancelByTraderID(o.TraderID)
}

// CancelByTraderID removes the resting order belonging to traderID.
func (b *Book) CancelByTraderID(traderID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.removeByTraderLocked(traderID) {
		return ErrNotFound
	}
	b.recomputeExtremaLocked()
	return nil
}

// removeByTraderLocked removes the resting order for traderID, if any. The
// caller must hold b.mu and must call recomputeExtremaLocked afterward if
// it reports true.
func (b *Book) removeByTraderLocked(traderID string) bool {
	for i, o := range b.orders {
		if o.TraderID == traderID {
			b.orders = append(b.orders[:i], b.orders[i+1:]...)
			return true
		}
	}
	return false
}

// PeekIDPos reports the index of traderID's resting order, if any.
func (b *Book) PeekIDPos(traderID string) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, o := range b.orders {
		if o.TraderID == traderID {
			return i, true
		}
	}
	return 0, false
}

// PopFromEnd detaches and returns the best-priced (tail) resting order.
func (b *Book) PopFromEnd() (*domain.Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.orders)
	if n == 0 {
		return nil, false
	}
	o := b.orders[n-1]
	b.orders = b.orders[:n-1]
	b.recomputeExtremaLocked()
	return o, true
}

// PushToEnd appends o directly at the tail without re-sorting. Callers use
// this to push a partially-filled order back after a crossing attempt
// consumed part of it — it is still the best price on the book by
// construction, since nothing better arrived while it was popped.
func (b *Book) PushToEnd(o *domain.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.orders = append(b.orders, o)
	b.recomputeExtremaLocked()
}

// GetMinPrice returns the lowest resting price, or +Inf if the book is
// empty.
func (b *Book) GetMinPrice() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.minPrice
}

// GetMaxPrice returns the highest resting price, or -Inf if the book is
// empty.
func (b *Book) GetMaxPrice() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.maxPrice
}

// Len reports the number of resting orders.
func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.orders)
}

// Side reports which side this book holds.
func (b *Book) Side() domain.Side {
	return b.side
}

// Snapshot returns a shallow copy of the resting orders, worst-to-best.
// Intended for the depth index and for tests; callers must not mutate the
// returned orders.
func (b *Book) Snapshot() []*domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*domain.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

func (b *Book) recomputeExtremaLocked() {
	if len(b.orders) == 0 {
		b.minPrice = math.Inf(1)
		b.maxPrice = math.Inf(-1)
		return
	}
	min, max := b.orders[0].Price, b.orders[0].Price
	for _, o := range b.orders[1:] {
		if o.Price < min {
			min = o.Price
		}
		if o.Price > max {
			max = o.Price
		}
	}
	b.minPrice = min
	b.maxPrice = max
}

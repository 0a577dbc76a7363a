package orderbook

import (
	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"

	"cdaflow/domain"
)

// PriceLevel is one row of aggregated depth: how much quantity rests at a
// given price, and how many distinct orders make it up.
type PriceLevel struct {
	Price      float64
	Quantity   float64
	OrderCount int
}

// depthIndex is a read-only, price-aggregated view over a Book's resting
// orders. It exists purely to answer depth queries (DepthSnapshot) without
// forcing every caller to walk and aggregate the book's flat slice by
// hand; it is rebuilt from a Book snapshot on demand rather than
// incrementally maintained; the Book slice remains the single source of
// truth and the only structure the matching core's hot path touches.
//
// This is the descendant of a price-level tree keyed for direct O(log n)
// best-price lookups; here it is demoted to a reporting structure, so the
// comparator simply orders by price and traversal direction encodes which
// side reads "best first".
type depthIndex struct {
	side domain.Side
	tree *rbt.Tree[float64, *PriceLevel]
}

func newDepthIndex(side domain.Side) *depthIndex {
	return &depthIndex{
		side: side,
		tree: rbt.NewWith[float64, *PriceLevel](func(a, b float64) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		}),
	}
}

func (d *depthIndex) add(o *domain.Order) {
	if level, found := d.tree.Get(o.Price); found {
		level.Quantity += o.Quantity
		level.OrderCount++
		return
	}
	d.tree.Put(o.Price, &PriceLevel{Price: o.Price, Quantity: o.Quantity, OrderCount: 1})
}

// levels returns up to n price levels, best price first. The tree
// iterates ascending by price; asks read best-first in that same order,
// bids read best-first in reverse, so ascending levels are collected in
// full and then sliced or reversed as the side requires.
func (d *depthIndex) levels(n int) []PriceLevel {
	ascending := make([]PriceLevel, 0, d.tree.Size())
	it := d.tree.Iterator()
	for it.Next() {
		ascending = append(ascending, *it.Value())
	}

	if d.side == domain.SideAsk {
		if len(ascending) > n {
			ascending = ascending[:n]
		}
		return ascending
	}

	out := make([]PriceLevel, 0, n)
	for i := len(ascending) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, ascending[i])
	}
	return out
}

// DepthSnapshot returns up to levels price levels on this book, best
// price first, aggregated by price.
func (b *Book) DepthSnapshot(levels int) []PriceLevel {
	orders := b.Snapshot()
	idx := newDepthIndex(b.side)
	for _, o := range orders {
		idx.add(o)
	}
	return idx.levels(levels)
}

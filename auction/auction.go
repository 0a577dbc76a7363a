// Package auction implements the periodic frequent-batch-auction overlay:
// a repeating task that suspends continuous processing, hands both books
// to a pluggable clearing algorithm, and restores continuous processing.
package auction

import (
	"math"
	"time"

	"go.uber.org/zap"

	"cdaflow/controller"
	"cdaflow/domain"
	"cdaflow/events"
	"cdaflow/orderbook"
)

// ClearingFunc is the pluggable uniform-price clearing algorithm the
// source leaves unimplemented. It reads both books and, if supply and
// demand cross in aggregate, returns a clearing price; crossed reports
// whether one was found.
//
// No clearing algorithm is specified here — only the hook. Implementers
// own the decision of how to find a uniform price and how (or whether) to
// execute the crossing orders it implies; this package does not invent
// that behavior.
type ClearingFunc func(bids, asks *orderbook.Book) (price float64, crossed bool)

// NoopClearing is a placeholder ClearingFunc that never finds a cross. It
// is not a clearing algorithm — it exists so AuctionHook has a safe
// default when no real implementation has been wired in yet.
func NoopClearing(bids, asks *orderbook.Book) (float64, bool) {
	return 0, false
}

// Hook drives the batch-auction window for one symbol.
type Hook struct {
	Symbol     string
	Bids       *orderbook.Book
	Asks       *orderbook.Book
	Controller *controller.Controller
	Bus        *events.Bus
	Clear      ClearingFunc

	// Logger, if set, receives an Info entry for every auction window this
	// Hook runs. Nil is safe; nothing is logged.
	Logger *zap.Logger
}

// NewHook builds a Hook. If clear is nil, NoopClearing is used.
func NewHook(symbol string, bids, asks *orderbook.Book, ctl *controller.Controller, bus *events.Bus, clear ClearingFunc) *Hook {
	if clear == nil {
		clear = NoopClearing
	}
	return &Hook{Symbol: symbol, Bids: bids, Asks: asks, Controller: ctl, Bus: bus, Clear: clear}
}

// AsyncAuctionTask runs one batch-auction window: it acquires exclusive
// access by writing Auction to the controller, invokes the clearing hook,
// emits the outcome, then restores Process. While state is Auction the
// queue drainer is idle (see matching.AsyncQueueTask), so Clear observes
// a stable snapshot of both books and may mutate them freely.
func (h *Hook) AsyncAuctionTask() {
	h.Controller.Set(controller.Auction)
	defer h.Controller.Set(controller.Process)

	price, crossed := h.Clear(h.Bids, h.Asks)

	if h.Logger != nil {
		h.Logger.Info("auction window cleared",
			zap.String("symbol", h.Symbol),
			zap.Float64("price", price),
			zap.Bool("crossed", crossed),
		)
	}

	if h.Bus != nil {
		h.Bus.PublishOutcome(domain.AuctionOutcome{
			Symbol:    h.Symbol,
			Timestamp: time.Now(),
			Price:     price,
			Crossed:   crossed,
		})
	}
}

// GetPriceBounds returns the joint search interval a clearing algorithm
// may scan: the lower bound is the lower of the two books' minimums, the
// upper bound is the higher of the two books' maximums. An empty book
// contributes its neutral sentinel, which drops out once both books are
// considered together unless both are empty.
func GetPriceBounds(bids, asks *orderbook.Book) (low, high float64) {
	low = math.Min(bids.GetMinPrice(), asks.GetMinPrice())
	high = math.Max(bids.GetMaxPrice(), asks.GetMaxPrice())
	return low, high
}

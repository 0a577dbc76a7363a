// Package matching implements the CDA crossing algorithm and the queue
// drain loop that feeds it.
package matching

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"cdaflow/domain"
	"cdaflow/events"
	"cdaflow/floatcmp"
	"cdaflow/logging"
	"cdaflow/orderbook"
)

// ErrSideMismatch is the invariant-violation error the spec calls out as
// fatal: a worker tried to insert an order into the book for the wrong
// side. It should never happen if callers route orders by their own Side
// field, which CrossingEngine always does.
var ErrSideMismatch = errors.New("matching: order side does not match its target book")

// CrossingEngine walks opposing liquidity for one symbol's pair of books,
// publishing a Trade for every fill it produces.
type CrossingEngine struct {
	Bids *orderbook.Book
	Asks *orderbook.Book
	Bus  *events.Bus

	// Logger, if set, receives an Error-level entry for every invariant
	// violation (§7a) this engine detects and an Info-level entry for
	// every trade it emits. Nil is safe; nothing is logged.
	Logger *zap.Logger

	tradeIDs *IDGenerator
}

// NewCrossingEngine builds a CrossingEngine over an existing bid/ask book
// pair for symbol, publishing trades onto bus.
func NewCrossingEngine(symbol string, bids, asks *orderbook.Book, bus *events.Bus) *CrossingEngine {
	return &CrossingEngine{
		Bids:     bids,
		Asks:     asks,
		Bus:      bus,
		tradeIDs: NewIDGenerator(symbol),
	}
}

// logSideMismatch records an orderbook.ErrWrongSide invariant violation:
// AddOrder was called with an order whose Side doesn't match the book it
// was routed to. This should never happen since CrossingEngine always
// routes by the order's own Side field, so seeing it logged at all means
// a caller bypassed that routing.
func (e *CrossingEngine) logSideMismatch(o *domain.Order) {
	if e.Logger == nil {
		return
	}
	e.Logger.Error("order side does not match its target book", logging.Order(o)...)
}

// CalcAskCrossing walks the bid book against an arriving ask, recursively
// consuming resting bids at or above the ask's price until the ask is
// fully filled, the book runs out of crossable liquidity, or a resting
// bid outlasts it.
func (e *CrossingEngine) CalcAskCrossing(ask *domain.Order) error {
	if floatcmp.GreaterThanE(ask.Price, e.Bids.GetMaxPrice()) {
		if err := e.Asks.AddOrder(ask); err != nil {
			e.logSideMismatch(ask)
			return ErrSideMismatch
		}
		return nil
	}

	bestBid, ok := e.Bids.PopFromEnd()
	if !ok {
		if err := e.Asks.AddOrder(ask); err != nil {
			e.logSideMismatch(ask)
			return ErrSideMismatch
		}
		return nil
	}

	switch {
	case floatcmp.LessThanE(ask.Quantity, bestBid.Quantity):
		e.emitTrade(ask.Symbol, bestBid.TraderID, ask.TraderID, ask.Quantity, bestBid.Price)
		bestBid.Fill(ask.Quantity)
		ask.Fill(ask.Quantity)
		e.Bids.PushToEnd(bestBid)
		return nil

	case floatcmp.EqualE(ask.Quantity, bestBid.Quantity):
		e.emitTrade(ask.Symbol, bestBid.TraderID, ask.TraderID, ask.Quantity, bestBid.Price)
		bestBid.Fill(bestBid.Quantity)
		ask.Fill(ask.Quantity)
		return nil

	default:
		e.emitTrade(ask.Symbol, bestBid.TraderID, ask.TraderID, bestBid.Quantity, bestBid.Price)
		ask.Fill(bestBid.Quantity)
		bestBid.Fill(bestBid.Quantity)
		return e.CalcAskCrossing(ask)
	}
}

// CalcBidCrossing is the mirror of CalcAskCrossing: it walks the ask book
// against an arriving bid.
func (e *CrossingEngine) CalcBidCrossing(bid *domain.Order) error {
	if floatcmp.LessThanE(bid.Price, e.Asks.GetMinPrice()) {
		if err := e.Bids.AddOrder(bid); err != nil {
			e.logSideMismatch(bid)
			return ErrSideMismatch
		}
		return nil
	}

	bestAsk, ok := e.Asks.PopFromEnd()
	if !ok {
		if err := e.Bids.AddOrder(bid); err != nil {
			e.logSideMismatch(bid)
			return ErrSideMismatch
		}
		return nil
	}

	switch {
	case floatcmp.LessThanE(bid.Quantity, bestAsk.Quantity):
		e.emitTrade(bid.Symbol, bestAsk.TraderID, bid.TraderID, bid.Quantity, bestAsk.Price)
		bestAsk.Fill(bid.Quantity)
		bid.Fill(bid.Quantity)
		e.Asks.PushToEnd(bestAsk)
		return nil

	case floatcmp.EqualE(bid.Quantity, bestAsk.Quantity):
		e.emitTrade(bid.Symbol, bestAsk.TraderID, bid.TraderID, bid.Quantity, bestAsk.Price)
		bestAsk.Fill(bestAsk.Quantity)
		bid.Fill(bid.Quantity)
		return nil

	default:
		e.emitTrade(bid.Symbol, bestAsk.TraderID, bid.TraderID, bestAsk.Quantity, bestAsk.Price)
		bid.Fill(bestAsk.Quantity)
		bestAsk.Fill(bestAsk.Quantity)
		return e.CalcBidCrossing(bid)
	}
}

func (e *CrossingEngine) emitTrade(symbol, makerID, takerID string, quantity, price float64) {
	t := domain.Trade{
		ID:        e.tradeIDs.Next(),
		Symbol:    symbol,
		MakerID:   makerID,
		TakerID:   takerID,
		Quantity:  quantity,
		Price:     price,
		Timestamp: time.Now(),
	}

	if e.Logger != nil {
		e.Logger.Info("trade executed", logging.Trade(t)...)
	}
	if e.Bus != nil {
		e.Bus.PublishTrade(t)
	}
}

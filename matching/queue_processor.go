package matching

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"cdaflow/domain"
	"cdaflow/floatcmp"
	"cdaflow/logging"
	"cdaflow/queue"
)

// ErrNoSuchOrder is the benign-absence error reported when an Update or
// Cancel names a trader_id with no resting order on the targeted side.
// It is non-fatal: sibling workers in the same batch are unaffected.
var ErrNoSuchOrder = errors.New("matching: no resting order for trader on that side")

// QueueProcessor drains a Queue once per tick and dispatches each order to
// the handler selected by its OrderType, on its own goroutine.
type QueueProcessor struct {
	Queue  *queue.Queue
	Engine *CrossingEngine

	// Logger, if set, receives a Warn entry for every benign-absence error
	// (§7b, an Update/Cancel naming a trader_id with nothing resting) and
	// an Error entry for any invariant violation (§7a) surfaced here. Nil
	// is safe; nothing is logged.
	Logger *zap.Logger
}

// NewQueueProcessor builds a QueueProcessor over q, routing Enter/Update
// crossings through engine.
func NewQueueProcessor(q *queue.Queue, engine *CrossingEngine) *QueueProcessor {
	return &QueueProcessor{Queue: q, Engine: engine}
}

// ConcProcessOrderQueue drains the queue with PopAll and spawns one
// goroutine per drained order, dispatched by OrderType. It joins the whole
// batch before returning, surfacing the first error encountered (if any)
// after every sibling has finished — no partial-cross state is ever left
// dangling by an early return.
func (p *QueueProcessor) ConcProcessOrderQueue() error {
	drained := p.Queue.PopAll()
	if len(drained) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for _, o := range drained {
		wg.Add(1)
		go func(o *domain.Order) {
			defer wg.Done()
			record(p.dispatch(o))
		}(o)
	}
	wg.Wait()

	return firstErr
}

func (p *QueueProcessor) dispatch(o *domain.Order) error {
	switch o.Type {
	case domain.Enter:
		return p.processEnter(o)
	case domain.Update:
		return p.processUpdate(o)
	case domain.Cancel:
		return p.processCancel(o)
	default:
		return nil
	}
}

func (p *QueueProcessor) processEnter(o *domain.Order) error {
	e := p.Engine
	if o.Side == domain.SideAsk {
		if floatcmp.LessThanE(o.Price, e.Asks.GetMinPrice()) {
			return e.CalcAskCrossing(o)
		}
		if err := e.Asks.AddOrder(o); err != nil {
			p.logInvariantViolation(o, err)
			return err
		}
		return nil
	}

	if floatcmp.GreaterThanE(o.Price, e.Bids.GetMaxPrice()) {
		return e.CalcBidCrossing(o)
	}
	if err := e.Bids.AddOrder(o); err != nil {
		p.logInvariantViolation(o, err)
		return err
	}
	return nil
}

// processUpdate removes the previous resting order with the same
// trader_id from the same side's book, silently if absent, then processes
// the new fields as an Enter. This cancels from the side matching the
// order's own Side — the original source cancelled from the ask book on
// both branches, which this implementation does not reproduce.
func (p *QueueProcessor) processUpdate(o *domain.Order) error {
	e := p.Engine
	var err error
	if o.Side == domain.SideBid {
		err = e.Bids.CancelByTraderID(o.TraderID)
	} else {
		err = e.Asks.CancelByTraderID(o.TraderID)
	}
	if err != nil {
		p.logBenignAbsence(o, "update named no resting order to replace")
	}
	return p.processEnter(o)
}

func (p *QueueProcessor) processCancel(o *domain.Order) error {
	e := p.Engine
	var err error
	if o.Side == domain.SideBid {
		err = e.Bids.CancelByTraderID(o.TraderID)
	} else {
		err = e.Asks.CancelByTraderID(o.TraderID)
	}
	if err != nil {
		p.logBenignAbsence(o, "cancel named no resting order")
		return ErrNoSuchOrder
	}
	return nil
}

func (p *QueueProcessor) logBenignAbsence(o *domain.Order, msg string) {
	if p.Logger == nil {
		return
	}
	p.Logger.Warn(msg, logging.Order(o)...)
}

func (p *QueueProcessor) logInvariantViolation(o *domain.Order, err error) {
	if p.Logger == nil {
		return
	}
	p.Logger.Error(err.Error(), logging.Order(o)...)
}

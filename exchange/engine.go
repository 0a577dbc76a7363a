// Package exchange is a multi-symbol registry over the single-symbol
// core: one Engine (a bid/ask book pair, queue, controller, and scheduler)
// per traded symbol, looked up through a lock-free, copy-on-write map.
package exchange

import (
	"time"

	"go.uber.org/zap"

	"cdaflow/auction"
	"cdaflow/controller"
	"cdaflow/domain"
	"cdaflow/events"
	"cdaflow/ingress"
	"cdaflow/matching"
	"cdaflow/metrics"
	"cdaflow/orderbook"
	"cdaflow/queue"
)

// Engine is the complete CDA+FBA core for one symbol.
type Engine struct {
	Symbol     string
	Bids       *orderbook.Book
	Asks       *orderbook.Book
	Queue      *queue.Queue
	Crossing   *matching.CrossingEngine
	Processor  *matching.QueueProcessor
	Controller *controller.Controller
	Auction    *auction.Hook
	Bus        *events.Bus
	ingress    *ingress.OrderProcessor
	scheduler  *controller.Scheduler
	metrics    *metrics.Metrics
}

// Config parameterizes a new Engine per spec.md §6: tick periods and the
// clearing hook. QueueTickMS/AuctionTickMS of 0 leave the corresponding
// standing task unregistered — callers that only want to drive ticks
// manually (as tests do) can build an Engine without a live scheduler.
type Config struct {
	QueueTickMS   int
	AuctionTickMS int
	Clear         auction.ClearingFunc
	// Metrics, if set, receives counters for every order admitted, trade
	// executed, and auction outcome this Engine produces.
	Metrics *metrics.Metrics
	// Logger, if set, is threaded into the crossing engine, queue
	// processor, and auction hook so invariant-violation and
	// benign-absence errors (spec.md §7) are logged with structured
	// fields instead of silently returned.
	Logger *zap.Logger
}

// New builds a fully wired Engine for symbol and, if the config specifies
// nonzero tick periods, registers the standing queue-drain and
// auction tasks on a fresh Scheduler.
func New(symbol string, cfg Config) *Engine {
	bids := orderbook.New(domain.SideBid)
	asks := orderbook.New(domain.SideAsk)
	bus := events.NewBus()
	ctl := controller.New()

	q := queue.New()
	crossing := matching.NewCrossingEngine(symbol, bids, asks, bus)
	processor := matching.NewQueueProcessor(q, crossing)
	hook := auction.NewHook(symbol, bids, asks, ctl, bus, cfg.Clear)

	if cfg.Logger != nil {
		crossing.Logger = cfg.Logger
		processor.Logger = cfg.Logger
		hook.Logger = cfg.Logger
	}

	e := &Engine{
		Symbol:     symbol,
		Bids:       bids,
		Asks:       asks,
		Queue:      q,
		Crossing:   crossing,
		Processor:  processor,
		Controller: ctl,
		Auction:    hook,
		Bus:        bus,
		ingress:    ingress.New(q),
		scheduler:  controller.NewScheduler(),
		metrics:    cfg.Metrics,
	}

	if cfg.QueueTickMS > 0 {
		sp := matching.NewScheduledProcessor(processor, ctl)
		if cfg.Metrics != nil {
			sp.Symbol = symbol
			sp.Depth = cfg.Metrics
		}
		e.scheduler.Register(controller.RptTask(sp.AsyncQueueTask, time.Duration(cfg.QueueTickMS)*time.Millisecond))
	}
	if cfg.AuctionTickMS > 0 {
		e.scheduler.Register(controller.RptTask(hook.AsyncAuctionTask, time.Duration(cfg.AuctionTickMS)*time.Millisecond))
	}

	if cfg.Metrics != nil {
		e.reportMetrics(cfg.Metrics)
	}

	return e
}

// reportMetrics spawns the background consumers that translate the
// trade/outcome event streams into Prometheus observations. These run for
// the lifetime of the process; Stop does not attempt to cancel them,
// matching the engine's no-cancellation concurrency contract (spec.md §5).
func (e *Engine) reportMetrics(m *metrics.Metrics) {
	trades := e.Bus.Trades.NewConsumer()
	go func() {
		for {
			t := trades.Consume()
			m.TradesExecuted.WithLabelValues(t.Symbol).Inc()
			m.TradeQuantity.WithLabelValues(t.Symbol).Observe(t.Quantity)
		}
	}()

	outcomes := e.Bus.Outcomes.NewConsumer()
	go func() {
		for {
			o := outcomes.Consume()
			crossed := "false"
			if o.Crossed {
				crossed = "true"
			}
			m.AuctionOutcomes.WithLabelValues(o.Symbol, crossed).Inc()
		}
	}()
}

// Submit admits an order for this symbol's engine, recording an
// admission metric if one was configured.
func (e *Engine) Submit(o *domain.Order) *ingress.Handle {
	if e.metrics != nil {
		e.metrics.OrdersAdmitted.WithLabelValues(o.Symbol, o.Type.String()).Inc()
	}
	return e.ingress.Submit(o)
}

// Stop halts this engine's standing tasks.
func (e *Engine) Stop() {
	e.scheduler.Stop()
}

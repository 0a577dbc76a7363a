package exchange

import (
	"sync"
	"sync/atomic"

	"cdaflow/domain"
	"cdaflow/ingress"
)

// Exchange owns one Engine per symbol, created lazily on first use.
// Reads are lock-free: engines is an atomic.Value holding an immutable
// map[string]*Engine, swapped wholesale (copy-on-write) on the rare path
// that creates a new symbol's Engine. Grounded on the teacher's
// ExchangeEngine, which uses the same pattern to avoid an RWMutex on the
// read-heavy "get the engine for this symbol" path.
type Exchange struct {
	engines atomic.Value // map[string]*Engine
	mu      sync.Mutex   // serializes the copy-on-write path only
	cfg     Config
}

// NewExchange returns an Exchange that lazily builds per-symbol Engines using cfg.
func NewExchange(cfg Config) *Exchange {
	x := &Exchange{cfg: cfg}
	x.engines.Store(make(map[string]*Engine))
	return x
}

// GetEngine returns the Engine for symbol, creating it on first access.
func (x *Exchange) GetEngine(symbol string) *Engine {
	engines := x.engines.Load().(map[string]*Engine)
	if e, ok := engines[symbol]; ok {
		return e
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	engines = x.engines.Load().(map[string]*Engine)
	if e, ok := engines[symbol]; ok {
		return e
	}

	e := New(symbol, x.cfg)

	next := make(map[string]*Engine, len(engines)+1)
	for k, v := range engines {
		next[k] = v
	}
	next[symbol] = e
	x.engines.Store(next)

	return e
}

// Submit routes an order to its symbol's Engine, returning a handle the
// caller can Join to learn that admission has completed.
func (x *Exchange) Submit(o *domain.Order) *ingress.Handle {
	return x.GetEngine(o.Symbol).Submit(o)
}

// Symbols lists every symbol with a live Engine.
func (x *Exchange) Symbols() []string {
	engines := x.engines.Load().(map[string]*Engine)
	out := make([]string, 0, len(engines))
	for k := range engines {
		out = append(out, k)
	}
	return out
}

// StopAll halts every symbol's standing tasks.
func (x *Exchange) StopAll() {
	engines := x.engines.Load().(map[string]*Engine)
	for _, e := range engines {
		e.Stop()
	}
}

package matching

import (
	"strconv"
	"sync/atomic"
)

// IDGenerator produces unique trade IDs for one symbol's CrossingEngine.
// Uniqueness comes from the atomic counter alone; the symbol is folded
// into the ID so trade IDs stay distinguishable once they leave a single
// engine and land in the shared event bus or a cross-symbol log line.
type IDGenerator struct {
	symbol  string
	counter uint64
}

// NewIDGenerator creates a generator whose IDs are scoped to symbol.
func NewIDGenerator(symbol string) *IDGenerator {
	return &IDGenerator{symbol: symbol}
}

// Next generates the next unique ID, formatted "<symbol>-T<counter>"
// (e.g. "XYZ-T1", "XYZ-T2", ...).
func (g *IDGenerator) Next() string {
	count := atomic.AddUint64(&g.counter, 1)
	return g.symbol + "-T" + strconv.FormatUint(count, 10)
}

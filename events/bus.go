package events

import "cdaflow/domain"

// defaultCapacity is the ring buffer size used for both event streams.
// 65536 matches the teacher's order/trade queue sizing; event volume here
// is bounded by trade/outcome rate, not order arrival rate, so it is
// comfortably oversized.
const defaultCapacity = 65536

// Bus is the core's two outbound event streams: trades and auction
// outcomes. Concrete transport (network framing, persistence) is out of
// scope; Bus only buffers events between the matching path and whatever
// reads them out — logging, metrics, or a network publisher.
type Bus struct {
	Trades    *RingBuffer[domain.Trade]
	Outcomes  *RingBuffer[domain.AuctionOutcome]
}

// NewBus constructs a Bus with default-sized ring buffers.
func NewBus() *Bus {
	return &Bus{
		Trades:   NewRingBuffer[domain.Trade](defaultCapacity),
		Outcomes: NewRingBuffer[domain.AuctionOutcome](defaultCapacity),
	}
}

// PublishTrade records a trade event.
func (b *Bus) PublishTrade(t domain.Trade) {
	b.Trades.Publish(t)
}

// PublishOutcome records an auction-outcome event.
func (b *Bus) PublishOutcome(o domain.AuctionOutcome) {
	b.Outcomes.Publish(o)
}

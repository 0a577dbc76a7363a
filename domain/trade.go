package domain

import "time"

// Trade is the event emitted whenever CrossingEngine consumes liquidity.
// Price is always the resting (maker) order's price — price-time priority
// gives the passive side the quoted price, never the aggressor's.
type Trade struct {
	ID        string
	Symbol    string
	MakerID   string
	TakerID   string
	Quantity  float64
	Price     float64
	Timestamp time.Time
}

// AuctionOutcome is the event emitted at the end of every batch-auction
// window: either a uniform clearing price was found, or it wasn't.
type AuctionOutcome struct {
	Symbol    string
	Timestamp time.Time
	Price     float64
	Crossed   bool
}

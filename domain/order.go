// Package domain holds the data the matching core operates on: the Order
// record and the small enums that classify it.
package domain

import "time"

// Side identifies which book an order rests on.
type Side int

const (
	SideBid Side = iota
	SideAsk
)

func (s Side) String() string {
	if s == SideBid {
		return "bid"
	}
	return "ask"
}

// OrderType identifies how an incoming message should be applied to a book.
type OrderType int

const (
	// Enter admits a brand new resting order (or crosses it immediately).
	Enter OrderType = iota
	// Update replaces a trader's existing resting order wholesale.
	Update
	// Cancel removes a trader's resting order.
	Cancel
)

func (t OrderType) String() string {
	switch t {
	case Enter:
		return "enter"
	case Update:
		return "update"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Status is a telemetry-only projection of an order's lifecycle. Nothing in
// the crossing algorithm reads it back; it exists so logging and metrics
// have something richer to report than raw quantity deltas.
type Status int

const (
	StatusPending Status = iota
	StatusPartiallyFilled
	StatusFilled
	StatusCancelled
)

// Order is the immutable-after-admission record describing a trader's
// intention. Price and Quantity are real numbers by design (see
// floatcmp.Epsilon) — a fixed-point re-implementation is a forward note,
// not a requirement here. Quantity is the one field the matching engine
// mutates in place once an order is resting in a Book.
type Order struct {
	TraderID  string
	Symbol    string
	Type      OrderType
	Side      Side
	Price     float64
	Quantity  float64
	Status    Status
	CreatedAt time.Time
}

// New constructs an Order with all fields fixed at admission time.
func New(traderID, symbol string, orderType OrderType, side Side, price, quantity float64) *Order {
	return &Order{
		TraderID:  traderID,
		Symbol:    symbol,
		Type:      orderType,
		Side:      side,
		Price:     price,
		Quantity:  quantity,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
}

// Clone duplicates every field. The matching path does not call it: an
// Update is applied to the book as the order it arrived as.
func (o *Order) Clone() *Order {
	dup := *o
	return &dup
}

// Fill decrements Quantity by amt and updates the telemetry-only Status.
func (o *Order) Fill(amt float64) {
	o.Quantity -= amt
	switch {
	case o.Quantity <= 0:
		o.Status = StatusFilled
	default:
		o.Status = StatusPartiallyFilled
	}
}

// Cancel marks the order cancelled. Telemetry-only, see Status.
func (o *Order) Cancel() {
	o.Status = StatusCancelled
}

// Describe is the debug description the spec calls out as the only other
// thing Order exposes besides field reads.
func (o *Order) Describe() string {
	return o.TraderID + " " + o.Type.String() + " " + o.Side.String()
}

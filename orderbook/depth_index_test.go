package orderbook

import (
	"testing"

	"cdaflow/domain"
)

func TestDepthSnapshotBidOrdering(t *testing.T) {
	b := New(domain.SideBid)
	b.AddOrder(mkOrder("a", domain.SideBid, 10, 1))
	b.AddOrder(mkOrder("b", domain.SideBid, 30, 2))
	b.AddOrder(mkOrder("c", domain.SideBid, 20, 3))
	b.AddOrder(mkOrder("d", domain.SideBid, 30, 1))

	levels := b.DepthSnapshot(10)
	if len(levels) != 3 {
		t.Fatalf("expected 3 aggregated levels, got %d: %+v", len(levels), levels)
	}
	if levels[0].Price != 30 {
		t.Errorf("expected best bid level 30 first, got %v", levels[0].Price)
	}
	if levels[0].Quantity != 3 || levels[0].OrderCount != 2 {
		t.Errorf("expected aggregated qty 3 over 2 orders at 30, got %+v", levels[0])
	}
	if levels[len(levels)-1].Price != 10 {
		t.Errorf("expected worst bid level 10 last, got %v", levels[len(levels)-1].Price)
	}
}

func TestDepthSnapshotAskOrderingAndLimit(t *testing.T) {
	a := New(domain.SideAsk)
	a.AddOrder(mkOrder("x", domain.SideAsk, 50, 1))
	a.AddOrder(mkOrder("y", domain.SideAsk, 20, 1))
	a.AddOrder(mkOrder("z", domain.SideAsk, 35, 1))

	levels := a.DepthSnapshot(2)
	if len(levels) != 2 {
		t.Fatalf("expected depth limited to 2 levels, got %d", len(levels))
	}
	if levels[0].Price != 20 || levels[1].Price != 35 {
		t.Errorf("expected ascending [20, 35], got %+v", levels)
	}
}

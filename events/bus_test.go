package events

import (
	"testing"
	"time"

	"cdaflow/domain"
)

func TestBusPublishTradeAndOutcome(t *testing.T) {
	b := NewBus()
	tc := b.Trades.NewConsumer()
	oc := b.Outcomes.NewConsumer()

	b.PublishTrade(domain.Trade{MakerID: "m", TakerID: "t", Quantity: 5, Price: 10})
	trade := tc.Consume()
	if trade.MakerID != "m" || trade.Price != 10 {
		t.Fatalf("unexpected trade: %+v", trade)
	}

	b.PublishOutcome(domain.AuctionOutcome{Symbol: "XYZ", Timestamp: time.Now(), Crossed: true, Price: 42})
	outcome := oc.Consume()
	if !outcome.Crossed || outcome.Price != 42 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

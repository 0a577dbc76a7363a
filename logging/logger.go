// Package logging wires up the structured logger the rest of the engine
// depends on for trade, order, and lifecycle events.
package logging

import (
	"go.uber.org/zap"

	"cdaflow/domain"
)

// New returns a production zap.Logger, or a development logger when
// verbose is set (human-readable, DEBUG level).
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Order returns the structured fields describing o, suitable for
// `logger.Info("order admitted", logging.Order(o)...)`.
func Order(o *domain.Order) []zap.Field {
	return []zap.Field{
		zap.String("trader_id", o.TraderID),
		zap.String("symbol", o.Symbol),
		zap.String("side", o.Side.String()),
		zap.String("type", o.Type.String()),
		zap.Float64("price", o.Price),
		zap.Float64("quantity", o.Quantity),
	}
}

// Trade returns the structured fields describing a trade event.
func Trade(t domain.Trade) []zap.Field {
	return []zap.Field{
		zap.String("trade_id", t.ID),
		zap.String("symbol", t.Symbol),
		zap.String("maker_id", t.MakerID),
		zap.String("taker_id", t.TakerID),
		zap.Float64("price", t.Price),
		zap.Float64("quantity", t.Quantity),
	}
}

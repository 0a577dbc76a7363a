// Command simulate drives a short synthetic load against an in-process
// Exchange: a handful of producer goroutines submit overlapping bid/ask
// orders, a consumer goroutine drains the trade event stream, and a
// summary of throughput and depth prints at the end.
package main

import (
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cdaflow/auction"
	"cdaflow/domain"
	"cdaflow/exchange"
)

const symbol = "XYZ"

func main() {
	var (
		duration   time.Duration
		numWorkers int
	)

	root := &cobra.Command{
		Use:   "simulate",
		Short: "Run a synthetic load against an in-process matching engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			run(duration, numWorkers)
			return nil
		},
	}
	root.Flags().DurationVar(&duration, "duration", 5*time.Second, "how long to generate load")
	root.Flags().IntVar(&numWorkers, "workers", defaultWorkers(), "number of producer goroutines")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// defaultWorkers leaves one core for the queue-drain/auction ticks and one
// for the runtime's own bookkeeping.
func defaultWorkers() int {
	w := runtime.NumCPU() - 2
	if w < 1 {
		return 1
	}
	return w
}

func run(duration time.Duration, numWorkers int) {
	x := exchange.NewExchange(exchange.Config{
		QueueTickMS:   20,
		AuctionTickMS: 1000,
		Clear:         auction.NoopClearing,
	})
	e := x.GetEngine(symbol)
	defer x.StopAll()

	var orderCount, tradeCount atomic.Int64

	trades := e.Bus.Trades.NewConsumer()
	go func() {
		for {
			trades.Consume()
			tradeCount.Add(1)
		}
	}()

	fmt.Printf("workers: %d, duration: %v\n", numWorkers, duration)

	stop := make(chan struct{})
	for w := 0; w < numWorkers; w++ {
		go produce(e, w, stop, &orderCount)
	}

	start := time.Now()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	deadline := time.After(duration)

loop:
	for {
		select {
		case <-deadline:
			break loop
		case <-ticker.C:
			elapsed := time.Since(start).Seconds()
			fmt.Printf("[%.0fs] orders: %d (%.0f/s)  trades: %d (%.0f/s)\n",
				elapsed, orderCount.Load(), float64(orderCount.Load())/elapsed,
				tradeCount.Load(), float64(tradeCount.Load())/elapsed)
		}
	}
	close(stop)

	time.Sleep(100 * time.Millisecond)
	elapsed := time.Since(start).Seconds()
	totalOrders := orderCount.Load()
	totalTrades := tradeCount.Load()

	fmt.Println("\n=== summary ===")
	fmt.Printf("elapsed:         %v\n", time.Since(start))
	fmt.Printf("orders admitted: %d (%.0f/s)\n", totalOrders, float64(totalOrders)/elapsed)
	fmt.Printf("trades executed: %d (%.0f/s)\n", totalTrades, float64(totalTrades)/elapsed)

	fmt.Printf("\nbest bid: %.2f, best ask: %.2f\n", e.Bids.GetMaxPrice(), e.Asks.GetMinPrice())
	for i, level := range e.Bids.DepthSnapshot(5) {
		fmt.Printf("  bid %d: price=%.2f qty=%.2f orders=%d\n", i+1, level.Price, level.Quantity, level.OrderCount)
	}
	for i, level := range e.Asks.DepthSnapshot(5) {
		fmt.Printf("  ask %d: price=%.2f qty=%.2f orders=%d\n", i+1, level.Price, level.Quantity, level.OrderCount)
	}
}

// produce alternates bids and asks at overlapping prices so a steady
// fraction of arrivals cross immediately.
func produce(e *exchange.Engine, workerID int, stop <-chan struct{}, orderCount *atomic.Int64) {
	trader := uuid.NewString()
	n := 0
	for {
		select {
		case <-stop:
			return
		default:
		}

		side := domain.SideBid
		price := 100.0 + float64(n%20)
		if n%2 == 1 {
			side = domain.SideAsk
		}

		o := domain.New(trader, symbol, domain.Enter, side, price, 1.0)
		e.Submit(o).Join()
		orderCount.Add(1)
		n++
	}
}

// Command exchange serves the CDA+FBA matching engine: it loads
// configuration, wires logging and metrics, and runs the queue-drain and
// auction ticks for whichever symbols receive orders.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cdaflow/config"
	"cdaflow/exchange"
	"cdaflow/floatcmp"
	"cdaflow/logging"
	"cdaflow/metrics"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "exchange",
		Short: "Run the continuous double-auction matching engine with a periodic batch-auction overlay",
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".", "directory to search for cdaflow.yaml")

	root.AddCommand(newServeCmd(&configPath))
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the matching engine and its periodic tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			floatcmp.SetEpsilon(cfg.Epsilon)

			logger, err := logging.New(cfg.LogVerbose)
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			defer logger.Sync()

			m := metrics.New()
			go func() {
				logger.Info("serving metrics", zap.String("addr", cfg.MetricsAddr))
				if err := http.ListenAndServe(cfg.MetricsAddr, m.Handler()); err != nil {
					logger.Error("metrics server stopped", zap.Error(err))
				}
			}()

			x := exchange.NewExchange(exchange.Config{
				QueueTickMS:   cfg.QueueTickMS,
				AuctionTickMS: cfg.AuctionTickMS,
				Metrics:       m,
				Logger:        logger,
			})

			// Pre-create the bootstrap symbol's engine so its scheduler is
			// already ticking before the first order arrives, rather than
			// paying the lazy-creation cost on the hot path.
			_ = x.GetEngine(bootstrapSymbol)
			logger.Info("engine started", zap.String("symbol", bootstrapSymbol))

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			logger.Info("shutting down")
			x.StopAll()
			return nil
		},
	}
}

const bootstrapSymbol = "XYZ"

// Package config loads the engine's tunable parameters (spec.md §6) via
// viper: built-in defaults, a config file, and environment variables, in
// that order of increasing precedence. No command-line flags are bound.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every spec.md §6 configuration parameter, plus the handful
// of ambient settings (log verbosity, metrics port) this implementation
// adds.
type Config struct {
	QueueTickMS   int     `mapstructure:"queue_tick_ms"`
	AuctionTickMS int     `mapstructure:"auction_tick_ms"`
	Epsilon       float64 `mapstructure:"epsilon"`
	LogVerbose    bool    `mapstructure:"log_verbose"`
	MetricsAddr   string  `mapstructure:"metrics_addr"`
}

// defaults mirror spec.md §6: 1e-9 epsilon, and tick periods left to the
// operator (50ms/5s are reasonable starting points for a CDA+FBA demo).
func defaults() Config {
	return Config{
		QueueTickMS:   50,
		AuctionTickMS: 5000,
		Epsilon:       1e-9,
		LogVerbose:    false,
		MetricsAddr:   ":9090",
	}
}

// Load reads configuration from (in increasing precedence) built-in
// defaults, a config file named cdaflow.yaml/.json/.toml on the given
// search paths, and CDAFLOW_-prefixed environment variables.
func Load(configPaths ...string) (Config, error) {
	v := viper.New()
	cfg := defaults()

	v.SetDefault("queue_tick_ms", cfg.QueueTickMS)
	v.SetDefault("auction_tick_ms", cfg.AuctionTickMS)
	v.SetDefault("epsilon", cfg.Epsilon)
	v.SetDefault("log_verbose", cfg.LogVerbose)
	v.SetDefault("metrics_addr", cfg.MetricsAddr)

	v.SetConfigName("cdaflow")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix("cdaflow")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

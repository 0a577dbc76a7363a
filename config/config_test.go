package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithNoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, 1e-9, cfg.Epsilon)
	require.Equal(t, 50, cfg.QueueTickMS)
}

func TestLoadEnvOverride(t *testing.T) {
	os.Setenv("CDAFLOW_QUEUE_TICK_MS", "25")
	defer os.Unsetenv("CDAFLOW_QUEUE_TICK_MS")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, 25, cfg.QueueTickMS)
}

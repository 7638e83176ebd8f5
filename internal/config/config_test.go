package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Grid.Nodes)
	assert.Equal(t, 85.0, cfg.Grid.OverloadThreshold)
	assert.Equal(t, "http://localhost:8080", cfg.API.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Simulation.LoadUpdateInterval())
	assert.Equal(t, 300*time.Second, cfg.Simulation.Duration())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
grid:
  nodes: 3
  load_sources: 12
simulation:
  reporting_interval: 2
api:
  endpoint: http://localhost:9999
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Grid.Nodes)
	assert.Equal(t, 12, cfg.Grid.LoadSources)
	assert.Equal(t, 2*time.Second, cfg.Simulation.ReportingInterval())
	assert.Equal(t, "http://localhost:9999", cfg.API.Endpoint)
	// Untouched fields keep their defaults.
	assert.Equal(t, 85.0, cfg.Grid.OverloadThreshold)
	assert.Equal(t, 15*time.Second, cfg.Simulation.OptimizationInterval())
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
grid:
  overload_threshold: 30
  underload_threshold: 60
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overload_threshold")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

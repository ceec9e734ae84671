package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveeng/ndrsim/core/model"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"simulation": {"duration_seconds": 30, "seed": 42, "raw_buffer": 256},
		"pool": {"capacities": {"boats": 10, "trucks": 20}},
		"regions": [
			{"code": "KL", "name": "Kerala", "population": 35000000, "area_km2": 38863,
			 "terrain": "COASTAL", "risk": "HIGH", "weight": 1.5, "major_dam": true}
		]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Simulation.DurationSeconds)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 256, cfg.Simulation.RawBuffer)
	assert.Equal(t, map[string]int{"boats": 10, "trucks": 20}, cfg.Pool.Capacities)
	require.Len(t, cfg.Regions, 1)

	// Unset sections still get their defaults.
	assert.Equal(t, 500, cfg.Dispatch.RetryDelayMS)
	assert.Equal(t, ":9090", cfg.Metrics.PrometheusAddr)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
simulation:
  duration_seconds: 10
metrics:
  prometheus_enabled: true
  prometheus_addr: ":9191"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Simulation.DurationSeconds)
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, ":9191", cfg.Metrics.PrometheusAddr)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", "simulation:\n  duration_seconds: 10\n")
	t.Setenv("NDR_SIMULATION__DURATION_SECONDS", "99")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.Simulation.DurationSeconds)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "config.toml", "")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidRegion(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"regions": [{"code": "XX", "name": "Nowhere", "terrain": "SWAMP", "risk": "HIGH", "weight": 1}]
	}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultIsComplete(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.Regions, 6)
	assert.NotEmpty(t, cfg.Pool.Capacities)
	assert.Positive(t, cfg.Simulation.RawBuffer)
	for _, rc := range cfg.Regions {
		p, err := rc.Profile()
		require.NoError(t, err)
		assert.NoError(t, p.Validate())
	}
}

func TestRegionProfileParsing(t *testing.T) {
	rc := RegionConfig{Code: "UK", Name: "Uttarakhand", Population: 11_000_000,
		AreaKm2: 53_483, Terrain: "MOUNTAIN", Risk: "HIGH", Weight: 1.3, MajorDam: true}
	p, err := rc.Profile()
	require.NoError(t, err)
	assert.Equal(t, model.TerrainMountain, p.Terrain)
	assert.Equal(t, model.RiskHigh, p.Risk)
	assert.True(t, p.MajorDam)

	rc.Risk = "EXTREME"
	_, err = rc.Profile()
	assert.Error(t, err)
}

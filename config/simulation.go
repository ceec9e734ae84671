package config

import (
	"fmt"
	"time"
)

// SimulationConfig holds the run-wide timing parameters.
type SimulationConfig struct {
	// DurationSeconds bounds the run; zero means run until interrupted.
	DurationSeconds int `json:"duration_seconds"`
	// Seed makes the run reproducible; zero selects a time-based seed.
	Seed int64 `json:"seed"`
	// BaseIntervalMS is the nominal period between events per region,
	// before per-region weight scaling and jitter.
	BaseIntervalMS int `json:"base_interval_ms"`
	// RawBuffer is the raw-event channel capacity.
	RawBuffer int `json:"raw_buffer"`
	// ReportIntervalMS is the period between status reports.
	ReportIntervalMS int `json:"report_interval_ms"`
}

// SetDefaults applies the default timings.
func (c *SimulationConfig) SetDefaults() {
	if c.DurationSeconds == 0 {
		c.DurationSeconds = 60
	}
	if c.BaseIntervalMS == 0 {
		c.BaseIntervalMS = 3000
	}
	if c.RawBuffer == 0 {
		c.RawBuffer = 1024
	}
	if c.ReportIntervalMS == 0 {
		c.ReportIntervalMS = 5000
	}
}

// Validate rejects unusable values.
func (c SimulationConfig) Validate() error {
	if c.DurationSeconds < 0 {
		return fmt.Errorf("simulation: duration_seconds must be >= 0")
	}
	if c.BaseIntervalMS < 0 {
		return fmt.Errorf("simulation: base_interval_ms must be >= 0")
	}
	if c.RawBuffer < 1 {
		return fmt.Errorf("simulation: raw_buffer must be >= 1")
	}
	return nil
}

// Duration returns the configured run duration; zero means unbounded.
func (c SimulationConfig) Duration() time.Duration {
	return time.Duration(c.DurationSeconds) * time.Second
}

// BaseInterval returns the nominal event-generation period.
func (c SimulationConfig) BaseInterval() time.Duration {
	return time.Duration(c.BaseIntervalMS) * time.Millisecond
}

// ReportInterval returns the status-report period.
func (c SimulationConfig) ReportInterval() time.Duration {
	return time.Duration(c.ReportIntervalMS) * time.Millisecond
}

// PoolConfig holds the initial per-kind resource capacities.
type PoolConfig struct {
	Capacities map[string]int `json:"capacities"`
}

// SetDefaults installs the national default inventory when none is given.
func (c *PoolConfig) SetDefaults() {
	if len(c.Capacities) == 0 {
		c.Capacities = map[string]int{
			"rescue_units":  50,
			"trucks":        100,
			"boats":         40,
			"helicopters":   30,
			"medical_teams": 60,
		}
	}
}

// Validate rejects negative capacities.
func (c PoolConfig) Validate() error {
	for kind, n := range c.Capacities {
		if n < 0 {
			return fmt.Errorf("pool: capacity for %s must be >= 0", kind)
		}
	}
	return nil
}

// MetricsConfig selects the metrics sinks.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies the default Prometheus listen address.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}

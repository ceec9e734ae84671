package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/naveeng/ndrsim/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Simulation.DurationSeconds = 1
	cfg.Simulation.Seed = 42
	cfg.Simulation.BaseIntervalMS = 100
	cfg.Simulation.ReportIntervalMS = 500
	cfg.Dispatch.RetryDelayMS = 10
	cfg.Dispatch.ResponseStepMS = 1
	cfg.Dispatch.ResponseJitterMS = 1
	return cfg
}

func TestServiceRunsForConfiguredDuration(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc, err := New(testConfig())
	require.NoError(t, err)
	defer func() { require.NoError(t, svc.Close()) }()

	start := time.Now()
	require.NoError(t, svc.Run(context.Background()))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, time.Second)
	assert.Less(t, elapsed, 10*time.Second)

	// The floored generation interval guarantees activity within a second.
	assert.Positive(t, svc.stats.generated.Load())
	assert.Positive(t, svc.stats.scored.Load())
	assert.LessOrEqual(t, svc.stats.scored.Load(), svc.stats.generated.Load())
}

func TestServiceStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testConfig()
	cfg.Simulation.DurationSeconds = 3600
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, svc.Close()) }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	time.Sleep(500 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestServiceStatus(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc, err := New(testConfig())
	require.NoError(t, err)
	defer func() { require.NoError(t, svc.Close()) }()

	st := svc.Status()
	assert.Len(t, st.Pool, 5)
	assert.Zero(t, st.DispatchQueue)
	assert.Empty(t, st.TopPending)
}

func TestServiceRejectsBrokenConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Pool.Capacities = map[string]int{"": 1}
	_, err := New(cfg)
	assert.Error(t, err)
}

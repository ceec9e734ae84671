package source

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/naveeng/ndrsim/core/model"
	"github.com/naveeng/ndrsim/internal/simrand"
)

func coastalRegion() model.RegionProfile {
	return model.RegionProfile{
		Code:       "KL",
		Name:       "Kerala",
		Population: 35_000_000,
		AreaKm2:    38_863,
		Terrain:    model.TerrainCoastal,
		Risk:       model.RiskHigh,
		Weight:     1.5,
		MajorDam:   true,
	}
}

func TestGenerateFieldRanges(t *testing.T) {
	src, err := New(coastalRegion(), make(chan *model.DisasterEvent, 1), time.Second, simrand.New(42), nil, nil, nil)
	require.NoError(t, err)

	region := coastalRegion()
	for i := 0; i < 500; i++ {
		ev := src.Generate()
		assert.True(t, strings.HasPrefix(ev.ID, "KL-"), "id %q", ev.ID)
		assert.Equal(t, "KL", ev.Region)
		assert.False(t, ev.Created.IsZero())
		assert.Equal(t, model.SeverityUnscored, ev.Severity)

		assert.GreaterOrEqual(t, ev.Population, int64(0))
		assert.LessOrEqual(t, ev.Population, region.Population)
		assert.GreaterOrEqual(t, ev.InfraDamage, 0)
		assert.LessOrEqual(t, ev.InfraDamage, 100)
		assert.GreaterOrEqual(t, ev.Accessibility, 0)
		assert.LessOrEqual(t, ev.Accessibility, 100)
		assert.GreaterOrEqual(t, ev.CascadingRisk, 0)
		assert.LessOrEqual(t, ev.CascadingRisk, 100)
		assert.GreaterOrEqual(t, ev.SpreadRate, 0.0)
	}
}

func TestGenerateCategoriesFollowTerrain(t *testing.T) {
	src, err := New(coastalRegion(), make(chan *model.DisasterEvent, 1), time.Second, simrand.New(7), nil, nil, nil)
	require.NoError(t, err)

	counts := map[model.Category]int{}
	for i := 0; i < 1000; i++ {
		counts[src.Generate().Category]++
	}
	// Coastal regions are dominated by floods and cyclones and never see
	// wildfires or landslides.
	assert.Positive(t, counts[model.CategoryFlood])
	assert.Positive(t, counts[model.CategoryCyclone])
	assert.Zero(t, counts[model.CategoryWildfire])
	assert.Zero(t, counts[model.CategoryLandslide])
}

func TestGenerateIDsAreUnique(t *testing.T) {
	src, err := New(coastalRegion(), make(chan *model.DisasterEvent, 1), time.Second, simrand.New(9), nil, nil, nil)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := src.Generate().ID
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestRunEmitsAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	out := make(chan *model.DisasterEvent, 64)
	src, err := New(coastalRegion(), out, time.Millisecond, simrand.New(3), nil, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 700*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		src.Run(ctx)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
	// The interval is floored, so the run emits a bounded number of events.
	assert.NotEmpty(t, out)
}

func TestRunDoesNotBlockOnFullChannel(t *testing.T) {
	defer goleak.VerifyNone(t)

	out := make(chan *model.DisasterEvent) // unbuffered, never drained
	src, err := New(coastalRegion(), out, time.Millisecond, simrand.New(5), nil, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		src.Run(ctx)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run blocked on a full channel past cancellation")
	}
}

func TestNewValidatesInputs(t *testing.T) {
	_, err := New(model.RegionProfile{}, make(chan *model.DisasterEvent), time.Second, simrand.New(1), nil, nil, nil)
	assert.Error(t, err)

	_, err = New(coastalRegion(), nil, time.Second, simrand.New(1), nil, nil, nil)
	assert.Error(t, err)

	_, err = New(coastalRegion(), make(chan *model.DisasterEvent), time.Second, nil, nil, nil, nil)
	assert.Error(t, err)
}

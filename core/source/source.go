// Package source generates synthetic disaster events, one source per region.
package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naveeng/ndrsim/core/events"
	"github.com/naveeng/ndrsim/core/logger"
	"github.com/naveeng/ndrsim/core/metrics"
	"github.com/naveeng/ndrsim/core/model"
	"github.com/naveeng/ndrsim/internal/eventbus"
	"github.com/naveeng/ndrsim/internal/simrand"
)

// minInterval floors the jittered generation interval so a tiny base period
// cannot degenerate into a busy loop.
const minInterval = 200 * time.Millisecond

// Source manufactures events whose statistical shape follows its region's
// profile and publishes them on the raw channel at a jittered interval.
type Source struct {
	region model.RegionProfile
	out    chan<- *model.DisasterEvent
	base   time.Duration
	rng    *simrand.Rand
	log    logger.Logger
	sink   metrics.Sink
	bus    *eventbus.Bus[events.Event]
}

// New creates a source for the region. The base interval is scaled down by
// the region's event-generation weight: heavier regions emit more often.
func New(region model.RegionProfile, out chan<- *model.DisasterEvent, base time.Duration, rng *simrand.Rand, log logger.Logger, sink metrics.Sink, bus *eventbus.Bus[events.Event]) (*Source, error) {
	if err := region.Validate(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("source: output channel is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("source: randomness source is required")
	}
	if base <= 0 {
		base = 3 * time.Second
	}
	if region.Weight > 0 {
		base = time.Duration(float64(base) / region.Weight)
	}
	if base < minInterval {
		base = minInterval
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Source{
		region: region,
		out:    out,
		base:   base,
		rng:    rng,
		log:    log,
		sink:   sink,
		bus:    bus,
	}, nil
}

// Run generates events until the context is canceled. A publish either
// completes or the source exits without a partial write; it never blocks
// past cancellation.
func (s *Source) Run(ctx context.Context) {
	timer := time.NewTimer(s.nextInterval())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		ev := s.Generate()
		select {
		case s.out <- ev:
			_ = s.sink.RecordEventGenerated(ev.Region, ev.Category)
			if s.bus != nil {
				s.bus.Publish(events.Generated{Event: ev})
			}
			if s.log != nil {
				s.log.Debugf("generated %s type=%s pop=%d", ev.ID, ev.Category, ev.Population)
			}
		case <-ctx.Done():
			return
		}

		timer.Reset(s.nextInterval())
	}
}

// nextInterval re-rolls the jittered wait: base ± up to half the base.
func (s *Source) nextInterval() time.Duration {
	return s.rng.Jitter(s.base, s.base/2, minInterval)
}

// Generate builds one synthetic event from the region profile.
func (s *Source) Generate() *model.DisasterEvent {
	cat := s.pickCategory()

	// Affected population is a random fraction of the regional total,
	// boosted for high-risk regions.
	frac := s.rng.Float64Range(0.0001, 0.02)
	if s.region.Risk == model.RiskHigh {
		frac *= 3
	}
	population := int64(float64(s.region.Population) * frac)
	if population > s.region.Population {
		population = s.region.Population
	}

	infra := s.rng.IntRange(0, 60)
	switch cat {
	case model.CategoryCyclone:
		infra = s.rng.IntRange(20, 90)
	case model.CategoryEarthquake:
		infra = s.rng.IntRange(30, 100)
	}

	access := model.ClampPercent(terrainAccessibility(s.region.Terrain) + s.rng.IntRange(-10, 30))

	cascading := 0
	if s.region.MajorDam {
		cascading = 30
	}
	cascading = model.ClampPercent(cascading + infra/2 + s.rng.IntRange(0, 20))

	return &model.DisasterEvent{
		ID:            s.region.Code + "-" + strings.Split(uuid.NewString(), "-")[0],
		Category:      cat,
		Region:        s.region.Code,
		Created:       time.Now(),
		Population:    population,
		InfraDamage:   infra,
		Accessibility: access,
		SpreadRate:    s.spreadRate(cat),
		CascadingRisk: cascading,
		Severity:      model.SeverityUnscored,
	}
}

// terrainCategoryWeights gives the relative likelihood of each category per
// terrain class, indexed like model.Categories.
var terrainCategoryWeights = map[model.Terrain][]float64{
	//                          flood cyclone wildfire landslide earthquake industrial
	model.TerrainCoastal:  {0.45, 0.45, 0.00, 0.00, 0.05, 0.05},
	model.TerrainForest:   {0.25, 0.00, 0.70, 0.05, 0.00, 0.00},
	model.TerrainHilly:    {0.30, 0.00, 0.05, 0.55, 0.10, 0.00},
	model.TerrainMountain: {0.25, 0.00, 0.00, 0.55, 0.20, 0.00},
	model.TerrainPlain:    {0.45, 0.00, 0.15, 0.00, 0.10, 0.30},
}

func (s *Source) pickCategory() model.Category {
	w, ok := terrainCategoryWeights[s.region.Terrain]
	if !ok {
		w = terrainCategoryWeights[model.TerrainPlain]
	}
	return model.Categories[s.rng.WeightedPick(w)]
}

// spreadRate draws a category-appropriate value; units differ per category
// (see the rule files in core/severity).
func (s *Source) spreadRate(cat model.Category) float64 {
	switch cat {
	case model.CategoryWildfire:
		return s.rng.Float64Range(0.5, 60)
	case model.CategoryFlood:
		return s.rng.Float64Range(0.1, 6)
	case model.CategoryCyclone:
		return s.rng.Float64Range(30, 150)
	case model.CategoryEarthquake:
		return s.rng.Float64Range(0, 1)
	case model.CategoryLandslide:
		return s.rng.Float64Range(0.1, 3)
	default:
		return s.rng.Float64Range(0, 5)
	}
}

func terrainAccessibility(t model.Terrain) int {
	switch t {
	case model.TerrainPlain:
		return 10
	case model.TerrainCoastal:
		return 20
	case model.TerrainForest:
		return 40
	case model.TerrainHilly:
		return 60
	case model.TerrainMountain:
		return 80
	default:
		return 20
	}
}

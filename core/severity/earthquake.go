package severity

import (
	"math"

	"github.com/naveeng/ndrsim/core/model"
)

// earthquakeWeights emphasizes population and structural damage; the spread
// rate carries little weight since the main shock is already over.
var earthquakeWeights = weights{pop: 0.35, infra: 0.30, access: 0.10, urgency: 0.05, cascading: 0.20}

var earthquakePopBands = []band{
	{upTo: 1_000, index: 20},
	{upTo: 10_000, index: 45},
	{upTo: 100_000, index: 70},
	{upTo: 500_000, index: 85},
	{upTo: math.Inf(1), index: 95},
}

// Spread rate for earthquakes is an aftershock-risk proxy in [0, 1].
var earthquakeSpreadBands = []band{
	{upTo: 0.2, index: 15},
	{upTo: 0.5, index: 40},
	{upTo: 0.8, index: 70},
	{upTo: math.Inf(1), index: 90},
}

// EarthquakeRule scores EARTHQUAKE events.
type EarthquakeRule struct{}

func (EarthquakeRule) Name() string             { return "earthquake" }
func (EarthquakeRule) Category() model.Category { return model.CategoryEarthquake }

func (EarthquakeRule) Score(ev *model.DisasterEvent) (int, error) {
	if ev == nil {
		return 0, ErrNilEvent
	}
	f := ev.Factors()

	pIdx := popIndexFor(earthquakePopBands, f.Population)
	tIdx := indexFor(earthquakeSpreadBands, f.SpreadRate)
	raw := earthquakeWeights.combine(pIdx, f.InfraDamage, f.Accessibility, tIdx, f.CascadingRisk)

	bonus := 0.0
	if f.InfraDamage >= 80 {
		bonus += 10 // widespread structural collapse
	}
	if f.CascadingRisk >= 70 {
		bonus += 15 // dam, lifeline or aftershock threat
	}
	return finalize(raw, bonus), nil
}

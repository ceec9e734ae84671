package severity

import (
	"math"

	"github.com/naveeng/ndrsim/core/model"
)

// landslideWeights leans on infrastructure and cascading risk: landslides
// are slow-onset but sever roads and threaten follow-up slips.
var landslideWeights = weights{pop: 0.20, infra: 0.30, access: 0.15, urgency: 0.10, cascading: 0.25}

var landslidePopBands = []band{
	{upTo: 50, index: 10},
	{upTo: 500, index: 35},
	{upTo: 5_000, index: 65},
	{upTo: 20_000, index: 85},
	{upTo: math.Inf(1), index: 95},
}

// Spread rate for landslides is slope movement in meters per hour.
var landslideSpreadBands = []band{
	{upTo: 0.2, index: 10},
	{upTo: 1.0, index: 35},
	{upTo: 3.0, index: 70},
	{upTo: math.Inf(1), index: 90},
}

// LandslideRule scores LANDSLIDE events.
type LandslideRule struct{}

func (LandslideRule) Name() string             { return "landslide" }
func (LandslideRule) Category() model.Category { return model.CategoryLandslide }

func (LandslideRule) Score(ev *model.DisasterEvent) (int, error) {
	if ev == nil {
		return 0, ErrNilEvent
	}
	f := ev.Factors()

	pIdx := popIndexFor(landslidePopBands, f.Population)
	tIdx := indexFor(landslideSpreadBands, f.SpreadRate)
	raw := landslideWeights.combine(pIdx, f.InfraDamage, f.Accessibility, tIdx, f.CascadingRisk)

	bonus := 0.0
	if pIdx >= 35 && f.Accessibility >= 70 {
		bonus += 10 // cut-off settlements
	}
	if f.CascadingRisk >= 60 {
		bonus += 15 // unstable slope above the slide
	}
	return finalize(raw, bonus), nil
}

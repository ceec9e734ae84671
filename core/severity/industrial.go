package severity

import (
	"math"

	"github.com/naveeng/ndrsim/core/model"
)

// industrialWeights spreads the emphasis across exposure, plume urgency and
// cascading risk; industrial incidents escalate through secondary releases.
var industrialWeights = weights{pop: 0.30, infra: 0.20, access: 0.10, urgency: 0.20, cascading: 0.20}

var industrialPopBands = []band{
	{upTo: 100, index: 15},
	{upTo: 1_000, index: 35},
	{upTo: 10_000, index: 60},
	{upTo: 50_000, index: 80},
	{upTo: math.Inf(1), index: 95},
}

// Spread rate for industrial incidents is plume drift in km per hour.
var industrialSpreadBands = []band{
	{upTo: 0.5, index: 15},
	{upTo: 2.0, index: 40},
	{upTo: 5.0, index: 70},
	{upTo: math.Inf(1), index: 90},
}

// IndustrialRule scores INDUSTRIAL events.
type IndustrialRule struct{}

func (IndustrialRule) Name() string             { return "industrial" }
func (IndustrialRule) Category() model.Category { return model.CategoryIndustrial }

func (IndustrialRule) Score(ev *model.DisasterEvent) (int, error) {
	if ev == nil {
		return 0, ErrNilEvent
	}
	f := ev.Factors()

	pIdx := popIndexFor(industrialPopBands, f.Population)
	tIdx := indexFor(industrialSpreadBands, f.SpreadRate)
	raw := industrialWeights.combine(pIdx, f.InfraDamage, f.Accessibility, tIdx, f.CascadingRisk)

	bonus := 0.0
	if f.CascadingRisk >= 70 {
		bonus += 20 // secondary release or toxic chain reaction
	}
	if pIdx >= 60 && f.Accessibility >= 50 {
		bonus += 10 // shelter-in-place population
	}
	return finalize(raw, bonus), nil
}

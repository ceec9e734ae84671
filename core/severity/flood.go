package severity

import (
	"math"

	"github.com/naveeng/ndrsim/core/model"
)

// floodWeights favors population exposure; floods endanger people faster
// than they destroy infrastructure.
var floodWeights = weights{pop: 0.40, infra: 0.20, access: 0.15, urgency: 0.15, cascading: 0.10}

var floodPopBands = []band{
	{upTo: 100, index: 10},
	{upTo: 1_000, index: 30},
	{upTo: 10_000, index: 60},
	{upTo: 50_000, index: 80},
	{upTo: math.Inf(1), index: 95},
}

// Spread rate for floods is water-level rise per hour.
var floodSpreadBands = []band{
	{upTo: 0.5, index: 10},
	{upTo: 2.0, index: 30},
	{upTo: 5.0, index: 60},
	{upTo: math.Inf(1), index: 90},
}

// FloodRule scores FLOOD events.
type FloodRule struct{}

func (FloodRule) Name() string             { return "flood" }
func (FloodRule) Category() model.Category { return model.CategoryFlood }

func (FloodRule) Score(ev *model.DisasterEvent) (int, error) {
	if ev == nil {
		return 0, ErrNilEvent
	}
	f := ev.Factors()

	pIdx := popIndexFor(floodPopBands, f.Population)
	tIdx := indexFor(floodSpreadBands, f.SpreadRate)
	raw := floodWeights.combine(pIdx, f.InfraDamage, f.Accessibility, tIdx, f.CascadingRisk)

	bonus := 0.0
	if f.SpreadRate > 5.0 {
		bonus += 10 // flash-flood conditions
	}
	if pIdx >= 70 && f.Accessibility >= 50 {
		bonus += 10 // large trapped population
	}
	if f.CascadingRisk >= 70 {
		bonus += 15 // dam or embankment threat
	}
	return finalize(raw, bonus), nil
}

package severity

import (
	"math"

	"github.com/naveeng/ndrsim/core/model"
)

// wildfireWeights splits the emphasis between exposure and spread rate;
// a fast-moving fire outruns containment regardless of damage so far.
var wildfireWeights = weights{pop: 0.30, infra: 0.15, access: 0.10, urgency: 0.30, cascading: 0.15}

var wildfirePopBands = []band{
	{upTo: 50, index: 10},
	{upTo: 500, index: 30},
	{upTo: 5_000, index: 60},
	{upTo: 20_000, index: 80},
	{upTo: math.Inf(1), index: 95},
}

// Spread rate for wildfires is burned area per hour (hectares).
var wildfireSpreadBands = []band{
	{upTo: 1, index: 10},
	{upTo: 5, index: 30},
	{upTo: 20, index: 60},
	{upTo: 50, index: 85},
	{upTo: math.Inf(1), index: 95},
}

// WildfireRule scores WILDFIRE events.
type WildfireRule struct{}

func (WildfireRule) Name() string             { return "wildfire" }
func (WildfireRule) Category() model.Category { return model.CategoryWildfire }

func (WildfireRule) Score(ev *model.DisasterEvent) (int, error) {
	if ev == nil {
		return 0, ErrNilEvent
	}
	f := ev.Factors()

	pIdx := popIndexFor(wildfirePopBands, f.Population)
	tIdx := indexFor(wildfireSpreadBands, f.SpreadRate)
	raw := wildfireWeights.combine(pIdx, f.InfraDamage, f.Accessibility, tIdx, f.CascadingRisk)

	bonus := 0.0
	switch {
	case f.SpreadRate > 50:
		bonus += 20 // extreme fire behavior
	case f.SpreadRate > 20:
		bonus += 10
	}
	if pIdx >= 60 && f.Accessibility >= 50 {
		bonus += 10 // evacuation difficulty
	}
	if f.CascadingRisk >= 70 {
		bonus += 15 // air quality or powerline ignition risk
	}
	return finalize(raw, bonus), nil
}

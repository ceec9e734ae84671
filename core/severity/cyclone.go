package severity

import (
	"math"

	"github.com/naveeng/ndrsim/core/model"
)

// cycloneWeights emphasizes population and urgency: cyclones are fast-onset
// and landfall timing dominates the response window.
var cycloneWeights = weights{pop: 0.35, infra: 0.15, access: 0.10, urgency: 0.25, cascading: 0.15}

var cyclonePopBands = []band{
	{upTo: 100, index: 10},
	{upTo: 1_000, index: 30},
	{upTo: 10_000, index: 60},
	{upTo: 50_000, index: 80},
	{upTo: math.Inf(1), index: 95},
}

// Spread rate for cyclones is a wind-speed proxy in km/h.
var cycloneSpreadBands = []band{
	{upTo: 50, index: 20},
	{upTo: 90, index: 45},
	{upTo: 120, index: 70},
	{upTo: math.Inf(1), index: 90},
}

// CycloneRule scores CYCLONE events.
type CycloneRule struct{}

func (CycloneRule) Name() string             { return "cyclone" }
func (CycloneRule) Category() model.Category { return model.CategoryCyclone }

func (CycloneRule) Score(ev *model.DisasterEvent) (int, error) {
	if ev == nil {
		return 0, ErrNilEvent
	}
	f := ev.Factors()

	pIdx := popIndexFor(cyclonePopBands, f.Population)
	tIdx := indexFor(cycloneSpreadBands, f.SpreadRate)
	raw := cycloneWeights.combine(pIdx, f.InfraDamage, f.Accessibility, tIdx, f.CascadingRisk)

	bonus := 0.0
	if f.SpreadRate > 120 {
		bonus += 10 // severe cyclonic storm or stronger
	}
	if pIdx >= 70 && f.Accessibility >= 50 {
		bonus += 10 // evacuation bottleneck
	}
	if f.CascadingRisk >= 70 {
		bonus += 15 // storm surge onto critical infrastructure
	}
	return finalize(raw, bonus), nil
}

package severity

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/naveeng/ndrsim/core/model"
)

// weights is the per-category weighting of the five severity components.
// Each rule's weights sum to 1.0.
type weights struct {
	pop       float64 // population exposure
	infra     float64 // infrastructure damage
	access    float64 // accessibility difficulty
	urgency   float64 // time sensitivity derived from spread rate
	cascading float64 // cascading risk
}

// combine computes the weighted sum of the component indices.
func (w weights) combine(pop, infra, access, urgency, cascading int) float64 {
	return floats.Dot(
		[]float64{w.pop, w.infra, w.access, w.urgency, w.cascading},
		[]float64{float64(pop), float64(infra), float64(access), float64(urgency), float64(cascading)},
	)
}

// band maps values up to (and including) UpTo to Index. Band slices are
// ordered ascending; values past the last band take its Index.
type band struct {
	upTo  float64
	index int
}

// indexFor maps v through an ordered step function into a 0-100 index.
func indexFor(bands []band, v float64) int {
	for _, b := range bands {
		if v <= b.upTo {
			return b.index
		}
	}
	if len(bands) == 0 {
		return 0
	}
	return bands[len(bands)-1].index
}

// popIndexFor buckets an unbounded population count so its severity
// contribution saturates. A non-positive population contributes nothing.
func popIndexFor(bands []band, population int64) int {
	if population <= 0 {
		return 0
	}
	return indexFor(bands, float64(population))
}

// finalize rounds the raw weighted sum plus bonuses and clamps to [0, 100].
func finalize(raw, bonus float64) int {
	return model.ClampPercent(int(math.Round(raw + bonus)))
}

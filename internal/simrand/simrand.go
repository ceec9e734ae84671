// Package simrand provides the explicit randomness source used across the
// simulation. Every component receives its own *Rand by construction;
// seeding the root source with a fixed value makes a run reproducible.
package simrand

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is a lockable pseudo-random source. math/rand generators are not
// safe for concurrent use, so all draws go through the mutex.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New creates a Rand seeded with seed. A zero seed selects a time-based
// seed, giving a different run each time.
func New(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Fork derives an independent child source. Children of a seeded parent are
// themselves deterministic, so per-component sources stay reproducible.
func (r *Rand) Fork() *Rand {
	r.mu.Lock()
	seed := r.r.Int63()
	r.mu.Unlock()
	if seed == 0 {
		seed = 1
	}
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// IntRange returns a uniform integer in [min, max] inclusive.
func (r *Rand) IntRange(min, max int) int {
	if max < min {
		min, max = max, min
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.r.Intn(max-min+1)
}

// Int64Range returns a uniform int64 in [min, max] inclusive.
func (r *Rand) Int64Range(min, max int64) int64 {
	if max < min {
		min, max = max, min
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.r.Int63n(max-min+1)
}

// Float64 returns a uniform float64 in [0, 1).
func (r *Rand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Float64()
}

// Float64Range returns a uniform float64 in [min, max).
func (r *Rand) Float64Range(min, max float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.r.Float64()*(max-min)
}

// Chance returns true with the given probability.
func (r *Rand) Chance(p float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Float64() < p
}

// Jitter returns base plus a uniform offset in [-variance, +variance],
// floored at min.
func (r *Rand) Jitter(base, variance, min time.Duration) time.Duration {
	if variance <= 0 {
		if base < min {
			return min
		}
		return base
	}
	d := base + time.Duration(r.Int64Range(int64(-variance), int64(variance)))
	if d < min {
		return min
	}
	return d
}

// Duration returns a uniform duration in [0, max).
func (r *Rand) Duration(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.r.Int63n(int64(max)))
}

// WeightedPick returns an index into weights chosen proportionally to the
// weight values. Non-positive weights are never picked; if every weight is
// non-positive the first index is returned.
func (r *Rand) WeightedPick(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	roll := r.Float64() * total
	cum := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		if roll <= cum {
			return i
		}
	}
	return len(weights) - 1
}

// Package severity maps an event's five inputs (population, infrastructure
// damage, accessibility, spread rate, cascading risk) to an integer score
// in [0, 100] using category-specific rules.
package severity

import (
	"math"
	"sync"

	"github.com/naveeng/ndrsim/core/model"
)

// Engine combines the registered rules into a final severity score. Rules
// may be registered and removed at runtime while Score runs concurrently;
// readers always observe a complete rule set.
type Engine struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewEngine creates an engine with the given rules.
func NewEngine(rules ...Rule) *Engine {
	e := &Engine{}
	for _, r := range rules {
		e.Register(r)
	}
	return e
}

// DefaultEngine returns an engine with one rule per category.
func DefaultEngine() *Engine {
	return NewEngine(
		FloodRule{},
		CycloneRule{},
		WildfireRule{},
		LandslideRule{},
		EarthquakeRule{},
		IndustrialRule{},
	)
}

// Register adds a rule. Registering a nil rule is a no-op.
func (e *Engine) Register(r Rule) {
	if r == nil {
		return
	}
	e.mu.Lock()
	e.rules = append(e.rules, r)
	e.mu.Unlock()
}

// Unregister removes every rule with the given name.
func (e *Engine) Unregister(name string) {
	e.mu.Lock()
	kept := e.rules[:0]
	for _, r := range e.rules {
		if r.Name() != name {
			kept = append(kept, r)
		}
	}
	e.rules = kept
	e.mu.Unlock()
}

// Rules returns a snapshot of the registered rules.
func (e *Engine) Rules() []Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Score computes the event's severity as the rounded arithmetic mean of
// every rule registered for the event's category, clamped to [0, 100].
// It returns 0 when no rule matches and never mutates the event.
func (e *Engine) Score(ev *model.DisasterEvent) (int, error) {
	if ev == nil {
		return 0, ErrNilEvent
	}

	e.mu.RLock()
	matching := make([]Rule, 0, 1)
	for _, r := range e.rules {
		if r.Category() == ev.Category {
			matching = append(matching, r)
		}
	}
	e.mu.RUnlock()

	if len(matching) == 0 {
		return 0, nil
	}

	sum := 0
	for _, r := range matching {
		v, err := r.Score(ev)
		if err != nil {
			return 0, err
		}
		sum += model.ClampPercent(v)
	}
	avg := int(math.Round(float64(sum) / float64(len(matching))))
	return model.ClampPercent(avg), nil
}

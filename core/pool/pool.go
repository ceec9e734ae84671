// Package pool implements the national shared resource inventory. It is the
// only state in the core mutated by more than one component, so every
// operation runs under a single mutual-exclusion domain covering all kinds.
package pool

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrUnknownKind is returned when a request names a resource kind the
	// pool was not created with.
	ErrUnknownKind = errors.New("unknown resource kind")
	// ErrNegativeAmount is returned when a request carries a negative count.
	ErrNegativeAmount = errors.New("negative resource amount")
	// ErrInsufficient is returned when availability cannot cover a request.
	// It signals contention, not a defect; callers retry later.
	ErrInsufficient = errors.New("insufficient resources")
)

// ResourcePool holds per-kind availability counters. Allocation is an
// atomic all-or-nothing check-then-commit across every kind in a request.
type ResourcePool struct {
	mu        sync.Mutex
	capacity  map[string]int
	available map[string]int
}

// New creates a pool with the given per-kind capacities.
func New(capacities map[string]int) (*ResourcePool, error) {
	if len(capacities) == 0 {
		return nil, fmt.Errorf("pool: at least one resource kind is required")
	}
	capa := make(map[string]int, len(capacities))
	avail := make(map[string]int, len(capacities))
	for kind, n := range capacities {
		if kind == "" {
			return nil, fmt.Errorf("pool: empty resource kind name")
		}
		if n < 0 {
			return nil, fmt.Errorf("pool: %w: %s=%d", ErrNegativeAmount, kind, n)
		}
		capa[kind] = n
		avail[kind] = n
	}
	return &ResourcePool{capacity: capa, available: avail}, nil
}

// Allocate atomically reserves every (kind, amount) pair in the request.
// If any check fails the pool is left untouched and an error is returned:
// ErrUnknownKind or ErrNegativeAmount for invalid input, ErrInsufficient
// when availability is too low.
func (p *ResourcePool) Allocate(request map[string]int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for kind, amount := range request {
		if amount < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeAmount, kind, amount)
		}
		avail, ok := p.available[kind]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
		}
		if avail < amount {
			return fmt.Errorf("%w: %s need %d have %d", ErrInsufficient, kind, amount, avail)
		}
	}
	for kind, amount := range request {
		p.available[kind] -= amount
	}
	return nil
}

// Release returns the given amounts to the pool. It never fails; unknown
// kinds and non-positive amounts are ignored. Callers release exactly what
// they allocated, which keeps availability within capacity.
func (p *ResourcePool) Release(amounts map[string]int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for kind, amount := range amounts {
		if amount <= 0 {
			continue
		}
		if _, ok := p.available[kind]; ok {
			p.available[kind] += amount
		}
	}
}

// Snapshot returns a consistent point-in-time copy of availability.
func (p *ResourcePool) Snapshot() map[string]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]int, len(p.available))
	for kind, n := range p.available {
		out[kind] = n
	}
	return out
}

// Capacity returns a copy of the initial per-kind capacities.
func (p *ResourcePool) Capacity() map[string]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]int, len(p.capacity))
	for kind, n := range p.capacity {
		out[kind] = n
	}
	return out
}

// InUse returns capacity minus availability per kind, i.e. the amounts
// currently allocated and not yet released.
func (p *ResourcePool) InUse() map[string]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]int, len(p.capacity))
	for kind, c := range p.capacity {
		out[kind] = c - p.available[kind]
	}
	return out
}

// Kinds returns the pool's resource kinds in sorted order.
func (p *ResourcePool) Kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]string, 0, len(p.capacity))
	for kind := range p.capacity {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Summary renders availability as "kind=avail/cap" pairs in sorted order.
func (p *ResourcePool) Summary() string {
	p.mu.Lock()
	kinds := make([]string, 0, len(p.capacity))
	for kind := range p.capacity {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%d/%d", kind, p.available[kind], p.capacity[kind]))
	}
	p.mu.Unlock()
	return strings.Join(parts, " ")
}

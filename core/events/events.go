// Package events defines the lifecycle events published on the bus as a
// disaster event moves through the pipeline.
package events

import (
	"time"

	"github.com/naveeng/ndrsim/core/model"
)

// Event is any pipeline lifecycle event.
type Event any

// Generated is published when a regional source emits a new event.
type Generated struct {
	Event *model.DisasterEvent
}

// Scored is published when the coordinator assigns a severity score.
type Scored struct {
	Event *model.DisasterEvent
}

// Allocated is published after a successful resource allocation.
type Allocated struct {
	Event   *model.DisasterEvent
	Request map[string]int
}

// AllocationFailed is published when the pool cannot satisfy a request and
// the event is returned to the dispatch queue.
type AllocationFailed struct {
	Event   *model.DisasterEvent
	Request map[string]int
	Retries int
}

// Released is published when a simulated response completes and its
// resources return to the pool.
type Released struct {
	Event    *model.DisasterEvent
	Released map[string]int
	Duration time.Duration
}

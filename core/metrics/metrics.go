// Package metrics defines the observability interfaces the core reports
// through. Concrete sinks live under infra/metrics.
package metrics

import (
	"time"

	"github.com/naveeng/ndrsim/core/model"
)

// Sink records pipeline activity for observability purposes. Implementations
// must be safe for concurrent use.
type Sink interface {
	RecordEventGenerated(region string, cat model.Category) error
	RecordEventScored(cat model.Category, severity int) error
	RecordAllocation(cat model.Category, allocated bool) error
	RecordResponse(cat model.Category, duration time.Duration) error
}

// PoolRecorder records resource pool availability snapshots.
type PoolRecorder interface {
	RecordPool(available map[string]int) error
}

// QueueRecorder records the raw and dispatch queue depths.
type QueueRecorder interface {
	RecordQueues(raw, dispatch int) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordEventGenerated(string, model.Category) error  { return nil }
func (NopSink) RecordEventScored(model.Category, int) error        { return nil }
func (NopSink) RecordAllocation(model.Category, bool) error        { return nil }
func (NopSink) RecordResponse(model.Category, time.Duration) error { return nil }
func (NopSink) RecordPool(map[string]int) error                    { return nil }
func (NopSink) RecordQueues(int, int) error                        { return nil }

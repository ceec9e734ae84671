package metrics

import (
	"time"

	coremetrics "github.com/naveeng/ndrsim/core/metrics"
	"github.com/naveeng/ndrsim/core/model"
)

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordEventGenerated forwards to all sinks, returning the first error.
func (m *MultiSink) RecordEventGenerated(region string, cat model.Category) error {
	for _, s := range m.Sinks {
		if err := s.RecordEventGenerated(region, cat); err != nil {
			return err
		}
	}
	return nil
}

// RecordEventScored forwards to all sinks, returning the first error.
func (m *MultiSink) RecordEventScored(cat model.Category, severity int) error {
	for _, s := range m.Sinks {
		if err := s.RecordEventScored(cat, severity); err != nil {
			return err
		}
	}
	return nil
}

// RecordAllocation forwards to all sinks, returning the first error.
func (m *MultiSink) RecordAllocation(cat model.Category, allocated bool) error {
	for _, s := range m.Sinks {
		if err := s.RecordAllocation(cat, allocated); err != nil {
			return err
		}
	}
	return nil
}

// RecordResponse forwards to all sinks, returning the first error.
func (m *MultiSink) RecordResponse(cat model.Category, duration time.Duration) error {
	for _, s := range m.Sinks {
		if err := s.RecordResponse(cat, duration); err != nil {
			return err
		}
	}
	return nil
}

// RecordPool forwards pool snapshots to sinks that record them.
func (m *MultiSink) RecordPool(available map[string]int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.PoolRecorder); ok {
			if err := rec.RecordPool(available); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordQueues forwards queue depths to sinks that record them.
func (m *MultiSink) RecordQueues(raw, dispatch int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.QueueRecorder); ok {
			if err := rec.RecordQueues(raw, dispatch); err != nil {
				return err
			}
		}
	}
	return nil
}

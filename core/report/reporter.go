// Package report periodically snapshots the pipeline state: pool
// availability, queue depths and the top pending events by severity.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/naveeng/ndrsim/core/logger"
	"github.com/naveeng/ndrsim/core/metrics"
	"github.com/naveeng/ndrsim/core/model"
	"github.com/naveeng/ndrsim/core/pool"
	"github.com/naveeng/ndrsim/internal/pqueue"
)

// topPending is how many queued events a status snapshot lists.
const topPending = 3

// PendingEvent summarizes one queued event in a status snapshot.
type PendingEvent struct {
	ID       string
	Region   string
	Category model.Category
	Severity int
}

// Status is a consistent read-only view of the pipeline. Producing one has
// no side effect on core state.
type Status struct {
	Pool          map[string]int
	RawQueue      int
	DispatchQueue int
	TopPending    []PendingEvent
}

// Reporter logs a Status at a fixed interval and forwards queue and pool
// gauges to the metrics sink.
type Reporter struct {
	pool     *pool.ResourcePool
	queue    *pqueue.Queue
	rawLen   func() int
	interval time.Duration
	log      logger.Logger
	sink     metrics.Sink
}

// New creates a reporter. rawLen reports the current raw channel depth.
func New(rp *pool.ResourcePool, queue *pqueue.Queue, rawLen func() int, interval time.Duration, log logger.Logger, sink metrics.Sink) (*Reporter, error) {
	if rp == nil || queue == nil || rawLen == nil {
		return nil, fmt.Errorf("report: pool, queue and rawLen are required")
	}
	if interval < 500*time.Millisecond {
		interval = 500 * time.Millisecond
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Reporter{pool: rp, queue: queue, rawLen: rawLen, interval: interval, log: log, sink: sink}, nil
}

// Status builds a point-in-time snapshot.
func (r *Reporter) Status() Status {
	top := r.queue.TopN(topPending)
	pending := make([]PendingEvent, 0, len(top))
	for _, ev := range top {
		pending = append(pending, PendingEvent{ID: ev.ID, Region: ev.Region, Category: ev.Category, Severity: ev.Severity})
	}
	return Status{
		Pool:          r.pool.Snapshot(),
		RawQueue:      r.rawLen(),
		DispatchQueue: r.queue.Len(),
		TopPending:    pending,
	}
}

// Run emits status reports until the context is canceled.
func (r *Reporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.report()
		}
	}
}

func (r *Reporter) report() {
	st := r.Status()
	if rec, ok := r.sink.(metrics.PoolRecorder); ok {
		_ = rec.RecordPool(st.Pool)
	}
	if rec, ok := r.sink.(metrics.QueueRecorder); ok {
		_ = rec.RecordQueues(st.RawQueue, st.DispatchQueue)
	}
	if r.log == nil {
		return
	}
	r.log.Infof("status: %s raw=%d dispatch=%d", r.pool.Summary(), st.RawQueue, st.DispatchQueue)
	for _, p := range st.TopPending {
		r.log.Debugw("pending", map[string]any{
			"event":    p.ID,
			"region":   p.Region,
			"category": p.Category.String(),
			"severity": p.Severity,
		})
	}
}

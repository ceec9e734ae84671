// Package dispatch drains the priority queue and allocates shared resources
// to the highest-severity events first.
//
// Per event the dispatcher moves through: scored -> allocation attempt ->
// responding -> released, or back to the queue on allocation failure. There
// is no abandonment: an event whose request permanently exceeds capacity
// cycles through the queue forever.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/naveeng/ndrsim/core/events"
	"github.com/naveeng/ndrsim/core/logger"
	"github.com/naveeng/ndrsim/core/metrics"
	"github.com/naveeng/ndrsim/core/model"
	"github.com/naveeng/ndrsim/core/pool"
	"github.com/naveeng/ndrsim/internal/eventbus"
	"github.com/naveeng/ndrsim/internal/pqueue"
	"github.com/naveeng/ndrsim/internal/simrand"
)

// Dispatcher is the single consumer of the priority dispatch queue.
type Dispatcher struct {
	queue *pqueue.Queue
	pool  *pool.ResourcePool
	cfg   Config
	rng   *simrand.Rand
	log   logger.Logger
	sink  metrics.Sink
	bus   *eventbus.Bus[events.Event]

	mu      sync.Mutex
	retries map[string]int

	wg sync.WaitGroup
}

// New creates a dispatcher.
func New(queue *pqueue.Queue, rp *pool.ResourcePool, cfg Config, rng *simrand.Rand, log logger.Logger, sink metrics.Sink, bus *eventbus.Bus[events.Event]) (*Dispatcher, error) {
	if queue == nil || rp == nil || rng == nil {
		return nil, fmt.Errorf("dispatch: queue, pool and randomness source are required")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Dispatcher{
		queue:   queue,
		pool:    rp,
		cfg:     cfg,
		rng:     rng,
		log:     log,
		sink:    sink,
		bus:     bus,
		retries: make(map[string]int),
	}, nil
}

// Run drains the queue until the context is canceled, then waits for every
// in-flight simulated response to release its resources before returning.
func (d *Dispatcher) Run(ctx context.Context) {
	defer d.wg.Wait()
	for {
		ev, err := d.queue.Take(ctx)
		if err != nil {
			return
		}
		if !d.dispatchOne(ctx, ev) {
			return
		}
	}
}

// dispatchOne handles a single dequeued event. It returns false when the
// context was canceled during a backoff pause.
func (d *Dispatcher) dispatchOne(ctx context.Context, ev *model.DisasterEvent) bool {
	// The coordinator contract says this cannot happen; requeue and wait
	// briefly rather than crash if it ever does.
	if !ev.Scored() {
		if d.log != nil {
			d.log.Warnf("unscored event %s reached dispatcher, requeueing", ev.ID)
		}
		d.queue.Push(ev)
		return sleepCtx(ctx, d.cfg.unscoredDelay())
	}

	request := BuildRequest(ev, d.rng)
	if len(request) == 0 {
		d.finish(ev)
		return true
	}

	err := d.pool.Allocate(request)
	switch {
	case err == nil:
		_ = d.sink.RecordAllocation(ev.Category, true)
		if d.bus != nil {
			d.bus.Publish(events.Allocated{Event: ev, Request: request})
		}
		if d.log != nil {
			d.log.Infof("allocated for %s sev=%d request=%v", ev.ID, ev.Severity, request)
		}
		d.wg.Add(1)
		go d.respond(ctx, ev, request)
		return true

	case errors.Is(err, pool.ErrInsufficient):
		n := d.bumpRetries(ev.ID)
		_ = d.sink.RecordAllocation(ev.Category, false)
		if d.bus != nil {
			d.bus.Publish(events.AllocationFailed{Event: ev, Request: request, Retries: n})
		}
		if d.log != nil {
			if n == d.cfg.WarnAfterRetries {
				d.log.Warnf("event %s requeued %d times, request %v may exceed pool capacity", ev.ID, n, request)
			} else {
				d.log.Debugf("resources unavailable for %s sev=%d, requeueing: %v", ev.ID, ev.Severity, err)
			}
		}
		d.queue.Push(ev)
		return sleepCtx(ctx, d.cfg.retryDelay())

	default:
		// Unknown kind or negative amount out of our own request builder is
		// a programming defect; drop the event instead of looping on it.
		if d.log != nil {
			d.log.Errorf("invalid request for %s: %v", ev.ID, err)
		}
		d.finish(ev)
		return true
	}
}

// respond simulates the response asynchronously and releases the exact
// allocated amounts afterwards. Cancellation releases immediately.
func (d *Dispatcher) respond(ctx context.Context, ev *model.DisasterEvent, allocated map[string]int) {
	defer d.wg.Done()
	start := time.Now()

	duration := d.responseDuration(ev.Severity)
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}

	d.pool.Release(allocated)
	elapsed := time.Since(start)
	_ = d.sink.RecordResponse(ev.Category, elapsed)
	if d.bus != nil {
		d.bus.Publish(events.Released{Event: ev, Released: allocated, Duration: elapsed})
	}
	if d.log != nil {
		d.log.Infof("response complete for %s, released=%v", ev.ID, allocated)
	}
	d.finish(ev)
}

// responseDuration grows with severity, is capped, and carries bounded
// random jitter.
func (d *Dispatcher) responseDuration(sev int) time.Duration {
	if sev < 1 {
		sev = 1
	}
	base := time.Duration(sev) * d.cfg.responseStep()
	if limit := d.cfg.responseCap(); base > limit {
		base = limit
	}
	return base + d.rng.Duration(d.cfg.responseJitter())
}

func (d *Dispatcher) bumpRetries(id string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.retries[id]++
	return d.retries[id]
}

// finish forgets an event's retry counter once it reaches a terminal state.
func (d *Dispatcher) finish(ev *model.DisasterEvent) {
	d.mu.Lock()
	delete(d.retries, ev.ID)
	d.mu.Unlock()
}

// sleepCtx pauses for d or until the context is canceled; it reports
// whether the caller should keep running.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

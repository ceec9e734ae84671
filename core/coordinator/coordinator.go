// Package coordinator drains raw events, scores them and feeds the
// priority dispatch queue.
package coordinator

import (
	"context"
	"fmt"

	"github.com/naveeng/ndrsim/core/events"
	"github.com/naveeng/ndrsim/core/logger"
	"github.com/naveeng/ndrsim/core/metrics"
	"github.com/naveeng/ndrsim/core/model"
	"github.com/naveeng/ndrsim/core/severity"
	"github.com/naveeng/ndrsim/internal/eventbus"
	"github.com/naveeng/ndrsim/internal/pqueue"
)

// Coordinator is the single consumer of the raw-event channel. It invokes
// the severity engine exactly once per event and publishes the scored event
// onto the dispatch queue.
type Coordinator struct {
	engine *severity.Engine
	raw    <-chan *model.DisasterEvent
	queue  *pqueue.Queue
	log    logger.Logger
	sink   metrics.Sink
	bus    *eventbus.Bus[events.Event]
}

// New creates a coordinator.
func New(engine *severity.Engine, raw <-chan *model.DisasterEvent, queue *pqueue.Queue, log logger.Logger, sink metrics.Sink, bus *eventbus.Bus[events.Event]) (*Coordinator, error) {
	if engine == nil || raw == nil || queue == nil {
		return nil, fmt.Errorf("coordinator: engine, raw channel and queue are required")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Coordinator{engine: engine, raw: raw, queue: queue, log: log, sink: sink, bus: bus}, nil
}

// Run processes raw events until the context is canceled. An event already
// pulled from the channel is always scored and enqueued before the loop
// exits; events still sitting in the channel are abandoned.
func (c *Coordinator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-c.raw:
			if !ok {
				return
			}
			if ev == nil {
				continue
			}
			score, err := c.engine.Score(ev)
			if err != nil {
				// Invalid input is a programming defect, not a transient
				// condition; log it and drop the event.
				if c.log != nil {
					c.log.Errorf("score %s: %v", ev.ID, err)
				}
				continue
			}
			ev.Severity = score
			c.queue.Push(ev)
			_ = c.sink.RecordEventScored(ev.Category, score)
			if c.bus != nil {
				c.bus.Publish(events.Scored{Event: ev})
			}
			if c.log != nil {
				c.log.Debugf("queued for dispatch %s severity=%d %s", ev.ID, score, ev.Category)
			}
		}
	}
}

// Package pqueue implements the concurrent priority queue feeding the
// dispatcher. Events dequeue in descending severity order; ties dequeue
// oldest creation timestamp first, then in arrival order.
package pqueue

import (
	"container/heap"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/naveeng/ndrsim/core/model"
)

type item struct {
	ev  *model.DisasterEvent
	seq uint64
}

type eventHeap []item

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.ev.Severity != b.ev.Severity {
		return a.ev.Severity > b.ev.Severity
	}
	if !a.ev.Created.Equal(b.ev.Created) {
		return a.ev.Created.Before(b.ev.Created)
	}
	return a.seq < b.seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) { *h = append(*h, x.(item)) }

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = item{}
	*h = old[:n-1]
	return it
}

// pollInterval bounds how long a Take waits between wakeup checks, so a
// notification lost to a racing consumer cannot stall the queue.
const pollInterval = 100 * time.Millisecond

// Queue is a blocking priority queue of disaster events. Push never blocks;
// Take blocks until an event is available or the context is canceled.
type Queue struct {
	mu     sync.Mutex
	items  eventHeap
	seq    uint64
	notify chan struct{}
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Push enqueues the event. Re-enqueuing a previously taken event is allowed
// and preserves its original creation timestamp for ordering.
func (q *Queue) Push(ev *model.DisasterEvent) {
	if ev == nil {
		return
	}
	q.mu.Lock()
	q.seq++
	heap.Push(&q.items, item{ev: ev, seq: q.seq})
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Take removes and returns the highest-priority event, blocking until one
// is available. It returns the context error when ctx is canceled.
func (q *Queue) Take(ctx context.Context) (*model.DisasterEvent, error) {
	timer := time.NewTimer(pollInterval)
	defer timer.Stop()
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			it := heap.Pop(&q.items).(item)
			q.mu.Unlock()
			return it.ev, nil
		}
		q.mu.Unlock()

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(pollInterval)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.notify:
		case <-timer.C:
		}
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// TopN returns up to n pending events in dispatch order without removing
// them. The result is a snapshot; later pushes do not affect it.
func (q *Queue) TopN(n int) []*model.DisasterEvent {
	q.mu.Lock()
	snapshot := make(eventHeap, len(q.items))
	copy(snapshot, q.items)
	q.mu.Unlock()

	sort.Sort(snapshot)
	if n > len(snapshot) {
		n = len(snapshot)
	}
	out := make([]*model.DisasterEvent, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, snapshot[i].ev)
	}
	return out
}

package pqueue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveeng/ndrsim/core/model"
)

func ev(id string, severity int, created time.Time) *model.DisasterEvent {
	return &model.DisasterEvent{ID: id, Severity: severity, Created: created}
}

func TestTakeOrdersBySeverityDescending(t *testing.T) {
	q := New()
	now := time.Now()
	q.Push(ev("low", 20, now))
	q.Push(ev("high", 90, now))
	q.Push(ev("mid", 55, now))

	ctx := context.Background()
	for _, want := range []string{"high", "mid", "low"} {
		got, err := q.Take(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got.ID)
	}
}

func TestTakeBreaksTiesByOldestFirst(t *testing.T) {
	q := New()
	now := time.Now()
	q.Push(ev("newer", 50, now.Add(time.Second)))
	q.Push(ev("older", 50, now))

	ctx := context.Background()
	first, err := q.Take(ctx)
	require.NoError(t, err)
	assert.Equal(t, "older", first.ID)
}

func TestTakeBreaksFullTiesByArrivalOrder(t *testing.T) {
	q := New()
	now := time.Now()
	q.Push(ev("first", 50, now))
	q.Push(ev("second", 50, now))

	ctx := context.Background()
	got, err := q.Take(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", got.ID)
}

func TestTakeBlocksUntilPush(t *testing.T) {
	q := New()
	got := make(chan *model.DisasterEvent, 1)
	go func() {
		e, err := q.Take(context.Background())
		if err != nil {
			return
		}
		got <- e
	}()

	time.Sleep(20 * time.Millisecond)
	q.Push(ev("late", 10, time.Now()))

	select {
	case e := <-got:
		assert.Equal(t, "late", e.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("Take did not wake up after Push")
	}
}

func TestTakeReturnsOnCancel(t *testing.T) {
	q := New()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := q.Take(ctx)
		errCh <- err
	}()
	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Take did not return after cancel")
	}
}

func TestRequeuePreservesOriginalTimestamp(t *testing.T) {
	q := New()
	now := time.Now()
	old := ev("requeued", 50, now.Add(-time.Minute))
	q.Push(ev("fresh", 50, now))
	q.Push(old)

	got, err := q.Take(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "requeued", got.ID)
}

func TestTopNDoesNotRemove(t *testing.T) {
	q := New()
	now := time.Now()
	q.Push(ev("a", 30, now))
	q.Push(ev("b", 70, now))
	q.Push(ev("c", 50, now))

	top := q.TopN(2)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].ID)
	assert.Equal(t, "c", top[1].ID)
	assert.Equal(t, 3, q.Len())

	assert.Len(t, q.TopN(10), 3)
}

func TestPushNilIsNoop(t *testing.T) {
	q := New()
	q.Push(nil)
	assert.Equal(t, 0, q.Len())
}

package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T) *ResourcePool {
	t.Helper()
	p, err := New(map[string]int{"boats": 4, "trucks": 10})
	require.NoError(t, err)
	return p
}

func TestNewRejectsInvalidCapacities(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(map[string]int{"boats": -1})
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = New(map[string]int{"": 3})
	assert.Error(t, err)
}

func TestAllocateAndRelease(t *testing.T) {
	p := newTestPool(t)
	req := map[string]int{"boats": 2, "trucks": 5}

	require.NoError(t, p.Allocate(req))
	assert.Equal(t, map[string]int{"boats": 2, "trucks": 5}, p.Snapshot())
	assert.Equal(t, map[string]int{"boats": 2, "trucks": 5}, p.InUse())

	p.Release(req)
	assert.Equal(t, map[string]int{"boats": 4, "trucks": 10}, p.Snapshot())
}

func TestAllocateAllOrNothing(t *testing.T) {
	p := newTestPool(t)

	// trucks is satisfiable on its own but boats is not; nothing may be
	// deducted.
	err := p.Allocate(map[string]int{"boats": 5, "trucks": 3})
	require.ErrorIs(t, err, ErrInsufficient)
	assert.Equal(t, map[string]int{"boats": 4, "trucks": 10}, p.Snapshot())
}

func TestAllocateUnknownKindLeavesStateUnchanged(t *testing.T) {
	p := newTestPool(t)
	err := p.Allocate(map[string]int{"trucks": 3, "submarines": 1})
	require.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, map[string]int{"boats": 4, "trucks": 10}, p.Snapshot())
}

func TestAllocateNegativeAmount(t *testing.T) {
	p := newTestPool(t)
	err := p.Allocate(map[string]int{"boats": -2})
	require.ErrorIs(t, err, ErrNegativeAmount)
	assert.Equal(t, map[string]int{"boats": 4, "trucks": 10}, p.Snapshot())
}

func TestAllocateZeroAmountSucceeds(t *testing.T) {
	p := newTestPool(t)
	require.NoError(t, p.Allocate(map[string]int{"boats": 0}))
	assert.Equal(t, 4, p.Snapshot()["boats"])
}

func TestAllocateExactCapacity(t *testing.T) {
	p := newTestPool(t)
	require.NoError(t, p.Allocate(map[string]int{"boats": 4}))
	assert.Equal(t, 0, p.Snapshot()["boats"])

	err := p.Allocate(map[string]int{"boats": 1})
	assert.ErrorIs(t, err, ErrInsufficient)
}

func TestReleaseIgnoresUnknownAndNonPositive(t *testing.T) {
	p := newTestPool(t)
	require.NoError(t, p.Allocate(map[string]int{"boats": 2}))
	p.Release(map[string]int{"submarines": 3, "boats": 0, "trucks": -1})
	assert.Equal(t, map[string]int{"boats": 2, "trucks": 10}, p.Snapshot())
}

func TestKindsAndSummary(t *testing.T) {
	p := newTestPool(t)
	assert.Equal(t, []string{"boats", "trucks"}, p.Kinds())
	require.NoError(t, p.Allocate(map[string]int{"boats": 1}))
	assert.Equal(t, "boats=3/4 trucks=10/10", p.Summary())
}

func TestConcurrentAllocateReleaseInvariant(t *testing.T) {
	p, err := New(map[string]int{"boats": 8, "trucks": 8})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := map[string]int{"boats": 2, "trucks": 1}
			for j := 0; j < 200; j++ {
				if err := p.Allocate(req); err == nil {
					p.Release(req)
				}
			}
		}()
	}

	// Availability must stay within [0, capacity] under contention.
	done := make(chan struct{})
	go func() {
		defer close(done)
		capa := p.Capacity()
		for i := 0; i < 500; i++ {
			for kind, n := range p.Snapshot() {
				if n < 0 || n > capa[kind] {
					t.Errorf("availability out of range: %s=%d", kind, n)
					return
				}
			}
		}
	}()
	wg.Wait()
	<-done

	assert.Equal(t, map[string]int{"boats": 8, "trucks": 8}, p.Snapshot())
}

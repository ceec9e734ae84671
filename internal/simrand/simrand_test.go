package simrand

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeededRunsAreReproducible(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
	}
}

func TestForkIsDeterministicForSeededParent(t *testing.T) {
	a := New(7).Fork()
	b := New(7).Fork()
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestIntRangeInclusive(t *testing.T) {
	r := New(1)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := r.IntRange(2, 5)
		assert.GreaterOrEqual(t, v, 2)
		assert.LessOrEqual(t, v, 5)
		seen[v] = true
	}
	assert.True(t, seen[2])
	assert.True(t, seen[5])
}

func TestIntRangeSwapsInvertedBounds(t *testing.T) {
	r := New(1)
	v := r.IntRange(5, 2)
	assert.GreaterOrEqual(t, v, 2)
	assert.LessOrEqual(t, v, 5)
}

func TestFloat64RangeBounds(t *testing.T) {
	r := New(3)
	for i := 0; i < 1000; i++ {
		v := r.Float64Range(0.5, 1.5)
		assert.GreaterOrEqual(t, v, 0.5)
		assert.Less(t, v, 1.5)
	}
}

func TestJitterFloorsAtMin(t *testing.T) {
	r := New(9)
	base := 300 * time.Millisecond
	for i := 0; i < 200; i++ {
		d := r.Jitter(base, base, 200*time.Millisecond)
		assert.GreaterOrEqual(t, d, 200*time.Millisecond)
		assert.LessOrEqual(t, d, 600*time.Millisecond)
	}
}

func TestDurationBounds(t *testing.T) {
	r := New(5)
	assert.Equal(t, time.Duration(0), r.Duration(0))
	for i := 0; i < 200; i++ {
		d := r.Duration(time.Second)
		assert.GreaterOrEqual(t, d, time.Duration(0))
		assert.Less(t, d, time.Second)
	}
}

func TestWeightedPickSkipsZeroWeights(t *testing.T) {
	r := New(11)
	weights := []float64{0, 0.5, 0, 0.5}
	counts := map[int]int{}
	for i := 0; i < 1000; i++ {
		counts[r.WeightedPick(weights)]++
	}
	assert.Zero(t, counts[0])
	assert.Zero(t, counts[2])
	assert.Positive(t, counts[1])
	assert.Positive(t, counts[3])
}

func TestWeightedPickAllZeroReturnsFirst(t *testing.T) {
	r := New(13)
	assert.Equal(t, 0, r.WeightedPick([]float64{0, 0, 0}))
}

func TestConcurrentDraws(t *testing.T) {
	r := New(0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = r.IntRange(0, 100)
				_ = r.Float64()
			}
		}()
	}
	wg.Wait()
}

package pool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olejaaaaaaaa/minipool/pkg/types"
)

// fakeView stands in for a pool when exercising balancers directly.
type fakeView struct {
	count  int
	depths []int
}

func (v fakeView) WorkerCount() int     { return v.count }
func (v fakeView) QueueDepth(i int) int { return v.depths[i] }

func TestRoundRobinBalancer(t *testing.T) {
	t.Run("cycles in order", func(t *testing.T) {
		b := NewRoundRobinBalancer()
		view := fakeView{count: 3}

		want := []int{0, 1, 2, 0, 1, 2, 0}
		for i, w := range want {
			assert.Equal(t, w, b.Index(view), "call %d", i)
		}
	})

	t.Run("zero value starts at worker 0", func(t *testing.T) {
		var b RoundRobinBalancer
		view := fakeView{count: 2}

		assert.Equal(t, 0, b.Index(view))
		assert.Equal(t, 1, b.Index(view))
		assert.Equal(t, 0, b.Index(view))
	})

	t.Run("cursor wraps before the read", func(t *testing.T) {
		b := &RoundRobinBalancer{next: 3}
		assert.Equal(t, 0, b.Index(fakeView{count: 3}))
	})
}

func TestFixedBalancer(t *testing.T) {
	b := NewFixedBalancer(2)
	view := fakeView{count: 5}

	for i := 0; i < 10; i++ {
		assert.Equal(t, 2, b.Index(view))
	}
}

func TestRandomBalancer(t *testing.T) {
	const n = 4
	const draws = 1000

	b := NewRandomBalancer()
	view := fakeView{count: n}

	hits := make([]int, n)
	for i := 0; i < draws; i++ {
		idx := b.Index(view)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, n)
		hits[idx]++
	}

	// With 1000 draws over 4 workers an untouched worker means a broken
	// source, not bad luck.
	for i, h := range hits {
		assert.Positive(t, h, "worker %d never selected", i)
	}
}

// leastLoaded picks the worker with the shortest queue, the kind of strategy
// the PoolView exists for.
type leastLoaded struct{}

func (leastLoaded) Index(view types.PoolView) int {
	best := 0
	for i := 1; i < view.WorkerCount(); i++ {
		if view.QueueDepth(i) < view.QueueDepth(best) {
			best = i
		}
	}
	return best
}

func TestCustomBalancer_LeastLoaded(t *testing.T) {
	b := leastLoaded{}

	view := fakeView{count: 3, depths: []int{4, 1, 2}}
	assert.Equal(t, 1, b.Index(view))

	view = fakeView{count: 3, depths: []int{0, 0, 0}}
	assert.Equal(t, 0, b.Index(view))
}

func TestPool_CustomBalancer(t *testing.T) {
	p, err := New(&Config{Workers: 3, Balancer: leastLoaded{}})
	require.NoError(t, err)

	var counter int64
	const numTasks = 60

	for i := 0; i < numTasks; i++ {
		require.NoError(t, p.Submit(func() { atomic.AddInt64(&counter, 1) }))
	}
	p.JoinAll()

	assert.Equal(t, int64(numTasks), atomic.LoadInt64(&counter))
}

package pool

import (
	"math/rand"
	"time"

	"github.com/olejaaaaaaaa/minipool/pkg/types"
)

// RoundRobinBalancer cycles through worker indexes in order. It is the
// balancer a pool uses when Config.Balancer is nil.
//
// The zero value is ready to use. Like the pool handle that consults it, a
// RoundRobinBalancer is not safe for concurrent use.
type RoundRobinBalancer struct {
	next int
}

// NewRoundRobinBalancer creates a round-robin balancer starting at worker 0.
func NewRoundRobinBalancer() *RoundRobinBalancer {
	return &RoundRobinBalancer{}
}

// Index returns the next worker index in rotation. The cursor wraps to 0
// before the read, so submission i lands on worker i mod WorkerCount.
func (b *RoundRobinBalancer) Index(view types.PoolView) int {
	if b.next >= view.WorkerCount() {
		b.next = 0
	}
	idx := b.next
	b.next++
	return idx
}

// FixedBalancer routes every submission to the same worker, giving strict
// FIFO ordering across all submitted tasks.
type FixedBalancer struct {
	index int
}

// NewFixedBalancer creates a balancer pinned to the given worker index.
func NewFixedBalancer(index int) *FixedBalancer {
	return &FixedBalancer{index: index}
}

// Index returns the pinned worker index.
func (b *FixedBalancer) Index(types.PoolView) int {
	return b.index
}

// RandomBalancer selects a uniformly random worker for each submission.
type RandomBalancer struct {
	rng *rand.Rand
}

// NewRandomBalancer creates a balancer with its own pseudo-random source.
func NewRandomBalancer() *RandomBalancer {
	return &RandomBalancer{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Index returns a random worker index.
func (b *RandomBalancer) Index(view types.PoolView) int {
	return b.rng.Intn(view.WorkerCount())
}

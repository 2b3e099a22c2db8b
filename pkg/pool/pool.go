package pool

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/olejaaaaaaaa/minipool/pkg/types"
)

// Pool is a fixed-size worker pool. Every worker owns a private FIFO queue;
// submissions pick their target queue through the configured balancer.
//
// A Pool handle belongs to the goroutine that created it. Submit, JoinAll and
// the shipped balancers keep plain (non-atomic) state under that contract;
// calling them from multiple goroutines concurrently is outside it.
type Pool struct {
	workers  []*worker
	balancer types.Balancer
	clock    types.Clock
	log      *slog.Logger

	// error handling
	errorHandler types.ErrorHandler

	view     types.PoolView
	queueCap int
	joined   bool
}

// New creates a pool and spawns all of its workers before returning. A nil
// config selects all defaults. Construction is all-or-nothing: on a
// validation error no workers exist.
func New(cfg *Config) (*Pool, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// parameter validation
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers < 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d",
			types.ErrInvalidConfig, cfg.Workers)
	}

	queueSize := cfg.QueueSize
	if queueSize == 0 {
		queueSize = DefaultQueueSize
	}
	if queueSize < 0 {
		return nil, fmt.Errorf("%w: queue size must be positive, got %d",
			types.ErrInvalidConfig, cfg.QueueSize)
	}

	balancer := cfg.Balancer
	if balancer == nil {
		balancer = NewRoundRobinBalancer()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = types.NewRealClock()
	}

	log := cfg.Logger
	if log == nil {
		log = discardLogger()
	}

	p := &Pool{
		workers:      make([]*worker, workers),
		balancer:     balancer,
		clock:        clock,
		log:          log,
		errorHandler: cfg.ErrorHandler,
		queueCap:     queueSize,
	}
	p.view = poolView{p}

	for i := 0; i < workers; i++ {
		w := newWorker(i, queueSize, clock, cfg.LockOSThread, cfg.ErrorHandler, log)
		p.workers[i] = w
		go w.run()
	}

	p.log.Debug("pool ready", "workers", workers, "queue_capacity", queueSize)
	return p, nil
}

// Submit hands the task to the worker selected by the balancer and returns
// once it is queued. It blocks while that worker's queue is full. There is no
// completion signal and no channel for the task's own outcome; the returned
// error covers delivery only.
//
// Except for nil tasks, which are rejected before selection, the balancer is
// consulted exactly once per call, including calls that fail.
func (p *Pool) Submit(task types.Task) error {
	if task == nil {
		return types.ErrNilTask
	}

	idx := p.balancer.Index(p.view)
	if idx < 0 || idx >= len(p.workers) {
		return fmt.Errorf("%w: index %d with %d workers",
			types.ErrBalancerIndex, idx, len(p.workers))
	}

	if p.joined {
		return types.NewDeliveryError(idx, types.ErrPoolClosed)
	}

	w := p.workers[idx]
	if w.State() == WorkerStateTerminated {
		return types.NewDeliveryError(idx, types.ErrWorkerTerminated)
	}

	// The done branch keeps a full queue from wedging the caller when its
	// worker dies mid-wait.
	select {
	case w.tasks <- task:
		return nil
	case <-w.done:
		return types.NewDeliveryError(idx, types.ErrWorkerTerminated)
	}
}

// JoinAll closes every worker queue and blocks until each worker has exited,
// normally after draining its queue. It is idempotent, and afterwards every
// submission fails with ErrPoolClosed. Detached tasks started by
// SubmitWithTimeout are not waited for, and tasks still queued on a worker
// that terminated abnormally are abandoned with it.
//
// JoinAll blocks for as long as the longest queued task runs; there is no
// deadline and no error return.
func (p *Pool) JoinAll() {
	if p.joined {
		return
	}
	p.joined = true

	for _, w := range p.workers {
		close(w.tasks)
	}
	for _, w := range p.workers {
		<-w.done
	}

	p.log.Debug("join complete", "workers", len(p.workers))
}

// Size returns the worker count.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stats gets basic pool statistics
func (p *Pool) Stats() types.PoolStats {
	var executing, queued int
	for _, w := range p.workers {
		if w.State() == WorkerStateExecuting {
			executing++
		}
		queued += len(w.tasks)
	}

	return types.PoolStats{
		Workers:       len(p.workers),
		Executing:     executing,
		Queued:        queued,
		QueueCapacity: p.queueCap,
	}
}

// WorkerStats gets statistics of all workers
func (p *Pool) WorkerStats() []WorkerStats {
	stats := make([]WorkerStats, len(p.workers))
	for i, w := range p.workers {
		stats[i] = w.Stats()
	}
	return stats
}

// poolView is the read-only lens handed to balancers.
type poolView struct {
	p *Pool
}

func (v poolView) WorkerCount() int {
	return len(v.p.workers)
}

func (v poolView) QueueDepth(i int) int {
	return len(v.p.workers[i].tasks)
}

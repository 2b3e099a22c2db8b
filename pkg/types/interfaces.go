// Package types defines core interfaces and types for the minipool library
package types

// Task is a one-shot unit of work: no arguments, no return value, executed
// exactly once by a single worker. The pool defines no error type for task
// outcomes; a task handles and reports its own internal failures.
type Task func()

// PoolView is the read-only view of a pool handed to a Balancer on every
// submission.
type PoolView interface {
	// WorkerCount returns the fixed number of workers in the pool.
	WorkerCount() int

	// QueueDepth returns the number of tasks currently queued for the worker
	// at index i.
	QueueDepth(i int) int
}

// Balancer selects the target worker index for each submission.
//
// Index is invoked exactly once per submission and must return a value in
// [0, view.WorkerCount()); out-of-range results are rejected by the pool.
// Implementations need not be safe for concurrent use: the pool handle is
// confined to a single owning goroutine, so Index is never called
// concurrently.
type Balancer interface {
	Index(view PoolView) int
}

// ErrorHandler observes errors the pool recovers from task panics. The
// returned error is ignored; the handler exists for reporting, not recovery.
type ErrorHandler func(error) error

// PoolStats defines basic statistics for a pool.
type PoolStats struct {
	// Workers is the fixed worker count.
	Workers int

	// Executing is the number of workers currently running a task.
	Executing int

	// Queued is the total number of tasks waiting across all worker queues.
	Queued int

	// QueueCapacity is the per-worker queue capacity.
	QueueCapacity int
}

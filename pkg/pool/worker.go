package pool

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/olejaaaaaaaa/minipool/pkg/types"
)

// WorkerState defines the state of a worker
type WorkerState int32

const (
	// WorkerStateIdle represents a worker waiting for its next task
	WorkerStateIdle WorkerState = iota
	// WorkerStateExecuting represents a worker running a task
	WorkerStateExecuting
	// WorkerStateTerminated represents a worker whose goroutine has exited
	WorkerStateTerminated
)

// String returns the string representation of WorkerState
func (ws WorkerState) String() string {
	switch ws {
	case WorkerStateIdle:
		return "idle"
	case WorkerStateExecuting:
		return "executing"
	case WorkerStateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// worker owns one task queue and drains it in FIFO order on its own
// goroutine. The pool is the queue's only producer; the worker is its only
// consumer.
type worker struct {
	id    int
	state int32 // atomic state
	tasks chan types.Task
	done  chan struct{}

	// statistics
	processed    int64
	failed       int64
	lastTaskTime int64 // Unix nanosecond timestamp
	execTime     int64 // cumulative task execution time in nanoseconds

	lockOSThread bool
	clock        types.Clock

	// error handling
	errorHandler types.ErrorHandler
	log          *slog.Logger
}

func newWorker(id, queueSize int, clock types.Clock, lockOSThread bool, handler types.ErrorHandler, log *slog.Logger) *worker {
	return &worker{
		id:           id,
		state:        int32(WorkerStateIdle),
		tasks:        make(chan types.Task, queueSize),
		done:         make(chan struct{}),
		lockOSThread: lockOSThread,
		clock:        clock,
		errorHandler: handler,
		log:          log.With("worker", id),
	}
}

// State returns the current worker state
func (w *worker) State() WorkerState {
	return WorkerState(atomic.LoadInt32(&w.state))
}

// run drains the task queue until it is closed. A task that ends the
// goroutine abnormally (runtime.Goexit) still triggers the deferred
// teardown, so the slot is observably terminated either way.
func (w *worker) run() {
	drained := false
	defer func() {
		atomic.StoreInt32(&w.state, int32(WorkerStateTerminated))
		if !drained {
			w.log.Warn("worker terminated before queue close")
		}
		close(w.done)
	}()

	if w.lockOSThread {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}

	for task := range w.tasks {
		w.execute(task)
	}
	drained = true
}

// execute runs a single task under the panic boundary. A panicking task is
// counted failed and reported; the worker survives it. Only runtime.Goexit
// ends the worker, since recover cannot intercept it.
func (w *worker) execute(task types.Task) {
	atomic.StoreInt32(&w.state, int32(WorkerStateExecuting))
	defer atomic.StoreInt32(&w.state, int32(WorkerStateIdle))

	startTime := w.clock.Now()
	atomic.StoreInt64(&w.lastTaskTime, startTime.UnixNano())

	completed := false
	defer func() {
		atomic.AddInt64(&w.execTime, int64(w.clock.Since(startTime)))

		if r := recover(); r != nil {
			atomic.AddInt64(&w.failed, 1)
			w.reportPanic(r)
			return
		}
		if completed {
			atomic.AddInt64(&w.processed, 1)
		} else {
			// goroutine is unwinding via runtime.Goexit
			atomic.AddInt64(&w.failed, 1)
		}
	}()

	task()
	completed = true
}

// reportPanic logs a recovered panic with its stack trace and forwards the
// error to the configured handler.
func (w *worker) reportPanic(r interface{}) {
	var buf [4096]byte
	n := runtime.Stack(buf[:], false)

	err := panicError(r)
	w.log.Error("task panicked",
		"error", err,
		"stack", string(buf[:n]))

	if w.errorHandler != nil {
		w.errorHandler(err)
	}
}

// panicError converts a recovered value into an error.
func panicError(r interface{}) error {
	switch v := r.(type) {
	case error:
		return v
	case string:
		return fmt.Errorf("panic: %s", v)
	default:
		return fmt.Errorf("panic: %v", v)
	}
}

// Stats gets worker statistics
func (w *worker) Stats() WorkerStats {
	return WorkerStats{
		ID:           w.id,
		State:        w.State(),
		Processed:    atomic.LoadInt64(&w.processed),
		Failed:       atomic.LoadInt64(&w.failed),
		LastTaskTime: time.Unix(0, atomic.LoadInt64(&w.lastTaskTime)),
		ExecTime:     time.Duration(atomic.LoadInt64(&w.execTime)),
	}
}

// WorkerStats defines per-worker statistics
type WorkerStats struct {
	ID        int
	State     WorkerState
	Processed int64
	Failed    int64
	// LastTaskTime is when the most recent task started executing.
	LastTaskTime time.Time
	// ExecTime is the total time spent executing tasks.
	ExecTime time.Duration
}

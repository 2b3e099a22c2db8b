/*
Package pool provides a fixed-size worker pool with pluggable load balancing
and per-worker FIFO queues.

# Overview

This package implements a pool of pre-spawned worker goroutines supporting:
- Fixed worker count chosen at construction
- One private buffered queue per worker
- Pluggable balancing strategy deciding the target queue per submission
- Blocking join that drains every queue
- Best-effort timeout supervision of individual tasks
- Panic isolation between tasks and workers
- Per-worker statistics

# Core Components

## Pool

The pool owns the workers and the producer side of every queue. Operations:
- Submit: route one task through the balancer and enqueue it
- SubmitWithTimeout: bound the wait for a task, never its execution
- JoinAll: close all queues and block until every worker exits
- Stats, WorkerStats, Size: introspection

A Pool handle is owned by the goroutine that created it. The handle and the
shipped balancers keep unsynchronized state under that single-owner contract;
submitting from several goroutines at once is outside it. Worker-side state
that crosses goroutines (states, counters) is atomic.

## Balancer

Balancers implement types.Balancer and are consulted exactly once per
submission with a read-only view of the pool. Shipped strategies:
- RoundRobinBalancer: cycles through workers, the default
- FixedBalancer: pins every submission to one index
- RandomBalancer: uniform random choice

A custom strategy can inspect per-worker queue depths through the view, for
example to pick the least-loaded worker.

# Ordering and Delivery

Tasks routed to the same worker run in submission order; the pool makes no
ordering promise across workers. A submission either queues successfully or
returns an error immediately:
- types.ErrNilTask for nil tasks
- types.ErrBalancerIndex when a balancer breaks its range contract
- DeliveryError wrapping types.ErrPoolClosed after JoinAll
- DeliveryError wrapping types.ErrWorkerTerminated for a dead worker slot

Task outcomes are invisible to the pool: a task returns nothing, and the pool
offers no result or error channel for it. A panicking task is recovered,
logged, counted failed and reported to the configured ErrorHandler; the
worker survives and keeps draining its queue.

# Timeout Supervision

SubmitWithTimeout runs the task on its own goroutine and spends a worker slot
on a supervisor that waits for completion or the deadline, whichever is
first. The deadline does not cancel anything: a task still running at the
deadline keeps running, detached from the pool, and JoinAll will not wait for
it. The returned Detached handle is the only way to observe it afterwards:

	d, err := p.SubmitWithTimeout(task, 50*time.Millisecond)
	if err != nil {
		log.Fatal(err)
	}
	p.JoinAll()
	if d.TimedOut() {
		d.Wait() // the task finishes on its own schedule
	}

# Usage Examples

Basic usage:

	p, err := pool.New(nil) // runtime.NumCPU() workers
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		if err := p.Submit(func() { work() }); err != nil {
			log.Printf("submit: %v", err)
		}
	}

	p.JoinAll() // blocks until all queues drain

Custom configuration:

	p, err := pool.New(&pool.Config{
		Workers:   4,
		QueueSize: 256,
		Balancer:  pool.NewFixedBalancer(0),
		Logger:    slog.Default(),
	})

Retrieve statistics:

	stats := p.Stats()
	fmt.Printf("executing %d/%d, queued %d\n",
		stats.Executing, stats.Workers, stats.Queued)

# Configuration Options

Config supports the following knobs, all optional:
- Workers: worker count, default runtime.NumCPU()
- QueueSize: per-worker queue capacity, default 1024
- Balancer: routing strategy, default round-robin
- LockOSThread: pin each worker to an OS thread
- Clock: time source for deadlines, default real time
- Logger: structured event sink, default discard
- ErrorHandler: observer for recovered task panics

# Shutdown

JoinAll is terminal and idempotent. It blocks for as long as the longest
queued task runs and cannot fail; a pool is not reusable afterwards. Workers
killed mid-task by runtime.Goexit mark their slot terminated, and later
submissions routed there fail loudly instead of queueing into the void.
*/
package pool

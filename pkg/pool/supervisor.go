package pool

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/olejaaaaaaaa/minipool/pkg/types"
)

// Detached observes a task launched through SubmitWithTimeout. Once the
// supervisor stops waiting, the handle is the only remaining link to the
// still-running task.
type Detached struct {
	done     chan struct{}
	timedOut int32
}

// Done returns a channel that is closed when the detached task finishes,
// however long after the deadline that happens.
func (d *Detached) Done() <-chan struct{} {
	return d.done
}

// Wait blocks until the detached task finishes.
func (d *Detached) Wait() {
	<-d.done
}

// TimedOut reports whether the supervisor gave up waiting at the deadline
// before the task finished.
func (d *Detached) TimedOut() bool {
	return atomic.LoadInt32(&d.timedOut) == 1
}

// SubmitWithTimeout submits a task whose wait is bounded by timeout. The
// submission occupies one worker slot with a supervisor; the task itself runs
// on its own goroutine. The supervisor returns its slot when the task
// finishes or the deadline passes, whichever comes first.
//
// The deadline bounds only the supervisor's wait. The task is never
// interrupted: past the deadline it keeps running detached, holding whatever
// resources it holds, observable solely through the returned handle. JoinAll
// does not wait for it.
//
// The returned error covers delivery of the supervisor, with the same
// failure modes as Submit.
func (p *Pool) SubmitWithTimeout(task types.Task, timeout time.Duration) (*Detached, error) {
	if task == nil {
		return nil, types.ErrNilTask
	}

	d := &Detached{done: make(chan struct{})}

	supervise := func() {
		go p.runDetached(task, d)

		timer := p.clock.NewTimer(timeout)
		defer timer.Stop()

		select {
		case <-d.done:
		case <-timer.C():
			atomic.StoreInt32(&d.timedOut, 1)
			p.log.Warn("supervised task exceeded deadline, abandoning wait",
				"timeout", timeout)
		}
	}

	if err := p.Submit(supervise); err != nil {
		return nil, err
	}
	return d, nil
}

// runDetached executes the supervised task outside any worker. The panic
// boundary here is unconditional: an unrecovered panic on a plain goroutine
// would take down the whole process.
func (p *Pool) runDetached(task types.Task, d *Detached) {
	defer close(d.done)
	defer func() {
		if r := recover(); r != nil {
			var buf [4096]byte
			n := runtime.Stack(buf[:], false)

			err := panicError(r)
			p.log.Error("detached task panicked",
				"error", err,
				"stack", string(buf[:n]))

			if p.errorHandler != nil {
				p.errorHandler(err)
			}
		}
	}()

	task()
}

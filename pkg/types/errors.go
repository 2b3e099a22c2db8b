// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrInvalidConfig indicates the pool configuration failed validation.
	ErrInvalidConfig = errors.New("invalid pool configuration")

	// ErrNilTask indicates a nil task was submitted.
	ErrNilTask = errors.New("task cannot be nil")

	// ErrPoolClosed indicates the pool's queues were closed by a prior join.
	ErrPoolClosed = errors.New("pool is closed")

	// ErrWorkerTerminated indicates the target worker has terminated and its
	// queue no longer drains.
	ErrWorkerTerminated = errors.New("worker has terminated")

	// ErrBalancerIndex indicates a balancer returned an index outside
	// [0, workerCount).
	ErrBalancerIndex = errors.New("balancer index out of range")
)

// DeliveryError reports a failure to hand a task to its selected worker. It
// is returned synchronously by the submitting call; the pool never drops a
// submission silently.
type DeliveryError struct {
	// Worker is the index of the worker the submission targeted.
	Worker int

	// Err is the underlying cause.
	Err error
}

// NewDeliveryError creates a new delivery error for the given worker index.
func NewDeliveryError(worker int, cause error) *DeliveryError {
	return &DeliveryError{Worker: worker, Err: cause}
}

// Error implements the error interface
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to worker %d failed: %v", e.Worker, e.Err)
}

// Unwrap returns the underlying error
func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Is checks if the error is a specific error
func (e *DeliveryError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

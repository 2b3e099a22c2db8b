package pool

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/olejaaaaaaaa/minipool/pkg/types"
)

// DefaultQueueSize is the per-worker queue capacity used when Config.QueueSize
// is zero. It is generous enough that Submit rarely blocks in practice.
const DefaultQueueSize = 1024

// Config defines configuration for a Pool. The zero value of every field is
// usable; New fills in defaults.
type Config struct {
	// Workers is the number of workers. Zero selects the detected hardware
	// parallelism (runtime.NumCPU). Negative values fail validation.
	Workers int

	// QueueSize is the capacity of each worker's task queue. Zero selects
	// DefaultQueueSize. Negative values fail validation. Submit blocks while
	// the selected worker's queue is full.
	QueueSize int

	// Balancer selects the target worker for each submission. Nil selects a
	// fresh round-robin balancer.
	Balancer types.Balancer

	// LockOSThread pins each worker goroutine to its own OS thread for the
	// life of the pool.
	LockOSThread bool

	// Clock for time operations (optional, defaults to real clock). Drives
	// the SubmitWithTimeout deadline.
	Clock types.Clock

	// Logger receives structured pool events. Nil discards them.
	Logger *slog.Logger

	// ErrorHandler observes errors recovered from task panics.
	ErrorHandler types.ErrorHandler
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Workers:   runtime.NumCPU(),
		QueueSize: DefaultQueueSize,
		Clock:     types.NewRealClock(),
	}
}

// discardLogger is the library default: no output unless the caller injects
// a logger.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

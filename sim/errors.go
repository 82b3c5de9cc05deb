package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when admitting a process while the
	// live-process ceiling is reached. The process is not admitted.
	ErrCapacityExceeded = errors.New("process capacity exceeded")

	// ErrInvariantViolation signals kernel or policy state that correct
	// operation never produces, e.g. bursting a process with no segments left.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrInvalidProcess is returned for processes that cannot be admitted as given.
	ErrInvalidProcess = errors.New("invalid process")

	// ErrUnknownPolicy is returned for scheduler names no policy is registered under.
	ErrUnknownPolicy = errors.New("unknown scheduling policy")
)

// SimulationError is a fatal condition raised by the driver loop.
// It carries the offending process and the tick at which the run stopped.
type SimulationError struct {
	PID  ProcessID
	Tick int64
	Err  error
}

func (e *SimulationError) Error() string {
	if e.PID == NoProcess {
		return fmt.Sprintf("simulation aborted at tick %d: %v", e.Tick, e.Err)
	}
	return fmt.Sprintf("simulation aborted at tick %d (pid %d): %v", e.Tick, e.PID, e.Err)
}

func (e *SimulationError) Unwrap() error {
	return e.Err
}

package sim

import (
	"fmt"
	"math"

	"github.com/schedsim/schedsim/sim/timer"
)

const (
	// DefaultMaxProcesses is the default ceiling on live processes.
	DefaultMaxProcesses = 1 << 10
	// DefaultQuantum is the default round-robin time slice in ticks.
	DefaultQuantum = 4
	// DefaultTicketMultiplier converts a process weight into lottery tickets.
	DefaultTicketMultiplier = 100
	// MLFQLevels is the fixed number of MLFQ priority levels.
	MLFQLevels = 3
)

// DefaultMLFQQuanta are the time slices of MLFQ levels 0 and 1.
var DefaultMLFQQuanta = [MLFQLevels - 1]int64{2, 4}

// KernelConfig groups the driver parameters.
type KernelConfig struct {
	Interval        int64 // clock units advanced per tick (must be > 0, default 1)
	MaxProcesses    int   // ceiling on live processes (must be > 0)
	WheelSize       int   // timing wheel slot count (must be > 0, default 8)
	WheelResolution int64 // clock units per wheel tick (must divide Interval, default 1)
	Horizon         int64 // Run stops once the clock reaches this tick
}

// DefaultKernelConfig returns the kernel defaults.
func DefaultKernelConfig() KernelConfig {
	return KernelConfig{
		Interval:        1,
		MaxProcesses:    DefaultMaxProcesses,
		WheelSize:       timer.DefaultSize,
		WheelResolution: timer.DefaultResolution,
		Horizon:         math.MaxInt64,
	}
}

// Validate checks parameter ranges.
func (c KernelConfig) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be > 0, got %d", c.Interval)
	}
	if c.MaxProcesses <= 0 {
		return fmt.Errorf("max processes must be > 0, got %d", c.MaxProcesses)
	}
	if c.WheelSize <= 0 {
		return fmt.Errorf("wheel size must be > 0, got %d", c.WheelSize)
	}
	if c.WheelResolution <= 0 {
		return fmt.Errorf("wheel resolution must be > 0, got %d", c.WheelResolution)
	}
	if c.Interval%c.WheelResolution != 0 {
		return fmt.Errorf("interval %d must be a multiple of wheel resolution %d", c.Interval, c.WheelResolution)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be > 0, got %d", c.Horizon)
	}
	return nil
}

// PolicyConfig groups scheduling policy selection and its parameters.
type PolicyConfig struct {
	Scheduler        string                // "fcfs" (default), "sjf", "stcf", "rr", "mlfq", "lottery"
	Quantum          int64                 // round-robin time slice
	MLFQQuanta       [MLFQLevels - 1]int64 // time slices of MLFQ levels 0 and 1; level 2 has none
	TicketMultiplier int64                 // lottery tickets per unit of weight
}

// DefaultPolicyConfig returns FCFS with default parameters for the other policies.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		Scheduler:        "fcfs",
		Quantum:          DefaultQuantum,
		MLFQQuanta:       DefaultMLFQQuanta,
		TicketMultiplier: DefaultTicketMultiplier,
	}
}

// Validate checks the policy name and parameter ranges.
func (c PolicyConfig) Validate() error {
	if !IsValidScheduler(c.Scheduler) {
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, c.Scheduler)
	}
	if c.Quantum <= 0 {
		return fmt.Errorf("quantum must be > 0, got %d", c.Quantum)
	}
	for i, q := range c.MLFQQuanta {
		if q <= 0 {
			return fmt.Errorf("mlfq quantum for level %d must be > 0, got %d", i, q)
		}
	}
	if c.TicketMultiplier <= 0 {
		return fmt.Errorf("ticket multiplier must be > 0, got %d", c.TicketMultiplier)
	}
	return nil
}

// Defines the Process struct that models one simulated job in the kernel.
// Tracks its task segments, lifecycle state, and timing statistics for reporting.

package sim

import (
	"fmt"
	"strings"
)

// ProcessID identifies a live process in the kernel's process table.
// IDs are allocated by the kernel only; a process never assigns its own.
type ProcessID int

// NoProcess is the ProcessID used for "no process" (idle CPU, unadmitted process).
const NoProcess ProcessID = -1

// TaskKind distinguishes CPU-bound from I/O-bound execution segments.
type TaskKind string

const (
	CPUBound TaskKind = "cpu"
	IOBound  TaskKind = "io"
)

// Task is one execution segment. Remaining is consumed one tick at a time.
type Task struct {
	Kind      TaskKind
	Remaining int64
}

// CPU returns a CPU-bound task lasting d ticks.
func CPU(d int64) Task { return Task{Kind: CPUBound, Remaining: d} }

// IO returns an I/O-bound task lasting d ticks.
func IO(d int64) Task { return Task{Kind: IOBound, Remaining: d} }

func (t Task) String() string {
	return fmt.Sprintf("%s(%d)", t.Kind, t.Remaining)
}

// ProcessState represents the lifecycle state of a process.
//
//	runnable -> running -> {running, waiting, terminated}
//	waiting  -> runnable (timeout expiry)
type ProcessState string

const (
	StateRunnable   ProcessState = "runnable"
	StateRunning    ProcessState = "running"
	StateWaiting    ProcessState = "waiting"
	StateTerminated ProcessState = "terminated"
)

// Process models a single job's lifecycle in the simulation.
// Invariant: TimeBurst <= BurstTime and RemainingTime == BurstTime - TimeBurst.
type Process struct {
	ID   ProcessID // Assigned on admission; NoProcess before that
	Name string    // Optional label carried through to reports

	Tasks []Task       // Ordered segments; Tasks[0] is the active one
	State ProcessState // runnable, running, waiting, terminated

	ArrivalTick   int64 // Tick at which the process entered the system
	BurstTime     int64 // Sum of all segment durations
	TimeBurst     int64 // Ticks already consumed (CPU bursts plus completed I/O)
	RemainingTime int64 // BurstTime - TimeBurst
	CPUTime       int64 // Ticks actually spent on the processor
	BlockedTime   int64 // Ticks spent waiting on I/O timeouts

	ResponseSet    bool  // Tracks whether ResponseTime has been set
	ResponseTime   int64 // Ticks between arrival and first burst
	Complete       bool  // Set once, on termination
	CompletionTick int64 // Tick at which the process terminated
	TurnaroundTime int64 // CompletionTick - ArrivalTick

	Weight int64 // Share used by ticket-based policies; NewProcess defaults it to 1
}

// NewProcess creates an unadmitted process with the given segments and weight 1.
func NewProcess(name string, tasks ...Task) *Process {
	p := &Process{
		ID:     NoProcess,
		Name:   name,
		State:  StateRunnable,
		Weight: 1,
	}
	for _, t := range tasks {
		p.AppendTask(t)
	}
	return p
}

// AppendTask adds a segment at the back of the queue and grows BurstTime.
func (p *Process) AppendTask(t Task) {
	p.Tasks = append(p.Tasks, t)
	p.BurstTime += t.Remaining
	p.RemainingTime += t.Remaining
}

// ActiveTask returns the front segment, if any.
func (p *Process) ActiveTask() (Task, bool) {
	if len(p.Tasks) == 0 {
		return Task{}, false
	}
	return p.Tasks[0], true
}

// Burst consumes one tick of the active segment at the given clock.
// ok == false signals that the process has used its whole BurstTime and is now terminated.
// Otherwise the returned task is the active segment after the decrement, which may be exhausted.
func (p *Process) Burst(clock int64) (task Task, ok bool, err error) {
	if p.Complete {
		return Task{}, false, fmt.Errorf("%w: burst of terminated process %d", ErrInvariantViolation, p.ID)
	}
	if len(p.Tasks) == 0 {
		return Task{}, false, fmt.Errorf("%w: process %d has no task segments left but %d ticks remaining",
			ErrInvariantViolation, p.ID, p.RemainingTime)
	}
	if !p.ResponseSet {
		p.ResponseTime = clock - p.ArrivalTick - 1
		p.ResponseSet = true
	}
	p.TimeBurst++
	p.RemainingTime--
	p.CPUTime++

	if p.TimeBurst >= p.BurstTime {
		p.setComplete(clock)
		return Task{}, false, nil
	}

	p.Tasks[0].Remaining--
	return p.Tasks[0], true, nil
}

// BumpToNext pops the active segment and accounts any duration it still holds
// as already burst. Returns false if there was nothing to pop.
func (p *Process) BumpToNext() (Task, bool) {
	if len(p.Tasks) == 0 {
		return Task{}, false
	}
	t := p.Tasks[0]
	p.Tasks = p.Tasks[1:]
	if t.Remaining > 0 {
		p.TimeBurst += t.Remaining
		p.RemainingTime -= t.Remaining
	}
	return t, true
}

// setComplete terminates the process. Idempotent: the first completion wins.
func (p *Process) setComplete(clock int64) {
	if p.Complete {
		return
	}
	p.State = StateTerminated
	p.Complete = true
	p.CompletionTick = clock
	p.TurnaroundTime = clock - p.ArrivalTick
}

// IsComplete reports whether the process has terminated.
func (p *Process) IsComplete() bool {
	return p.State == StateTerminated
}

// WaitTime is the time spent neither on the processor nor blocked on I/O.
// Only meaningful once the process is complete. A trailing I/O segment is
// never waited on, so it counts toward neither term.
func (p *Process) WaitTime() int64 {
	return p.TurnaroundTime - p.CPUTime - p.BlockedTime
}

// Tickets returns the lottery tickets held by the process for the given multiplier.
func (p *Process) Tickets(multiplier int64) int64 {
	if p.Weight <= 0 {
		return 0
	}
	return p.Weight * multiplier
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	tasks := make([]string, len(p.Tasks))
	for i, t := range p.Tasks {
		tasks[i] = t.String()
	}
	return fmt.Sprintf("Process: (ID: %d, Name: %s, State: %s, Burst: %d/%d, Arrival: %d, Tasks: [%s])",
		p.ID, p.Name, p.State, p.TimeBurst, p.BurstTime, p.ArrivalTick, strings.Join(tasks, " "))
}

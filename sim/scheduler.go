package sim

import (
	"fmt"
	"math/rand"
)

// Scheduler is the dispatch protocol a policy implements. The kernel owns the
// processes; a policy keeps ids in its own ready structure and changes
// process state only through kernel calls.
type Scheduler interface {
	// Name returns the policy's registered name.
	Name() string
	// OnReady admits id into the policy's ready structure.
	OnReady(k *Kernel, id ProcessID)
	// Dispatch selects the next process and installs it with k.SwitchTo,
	// or calls k.SwitchTo(NoProcess) if no candidate exists.
	Dispatch(k *Kernel)
	// OnBurst runs after id has burst one tick and still holds the processor.
	// Preemptive policies requeue id and dispatch here.
	OnBurst(k *Kernel, id ProcessID)
}

// BaseScheduler provides the no-op OnBurst of non-preemptive policies.
type BaseScheduler struct{}

func (BaseScheduler) OnBurst(_ *Kernel, _ ProcessID) {}

// Advance is the per-tick algorithm shared by every policy:
//  1. processes whose wait expired become runnable and are handed to OnReady;
//  2. an idle processor is dispatched, so a process dispatched in tick t bursts in tick t;
//  3. the running process bursts one tick; completion and blocking trigger Dispatch;
//  4. OnBurst runs if the process that burst still holds the processor.
func Advance(k *Kernel, s Scheduler) error {
	for {
		id, ok := k.ExpiredTimeout()
		if !ok {
			break
		}
		if _, ok := k.Process(id); !ok {
			continue
		}
		k.MarkRunnable(id)
		s.OnReady(k, id)
	}

	if k.RunningID() == NoProcess {
		s.Dispatch(k)
	}

	id := k.RunningID()
	if id == NoProcess {
		return nil
	}
	p, ok := k.Process(id)
	if !ok {
		return &SimulationError{PID: id, Tick: k.Clock, Err: fmt.Errorf("%w: running pid %d not in process table", ErrInvariantViolation, id)}
	}

	task, ok, err := k.burst(p)
	if err != nil {
		return &SimulationError{PID: id, Tick: k.Clock, Err: err}
	}
	switch {
	case !ok:
		k.Complete(id)
		if k.IsRunning(id) {
			s.Dispatch(k)
		}
	case task.Kind == IOBound:
		block(k, s, p)
	case task.Remaining <= 0:
		// CPU segment boundary: an I/O segment next blocks the process.
		p.BumpToNext()
		next, ok := p.ActiveTask()
		if !ok {
			return &SimulationError{PID: id, Tick: k.Clock, Err: fmt.Errorf("%w: pid %d has %d ticks left but no segments",
				ErrInvariantViolation, id, p.RemainingTime)}
		}
		if next.Kind == IOBound {
			block(k, s, p)
		}
	}

	if k.IsRunning(id) {
		s.OnBurst(k, id)
	}
	return nil
}

// block pops the active I/O segment, along with any I/O segments directly
// behind it, and waits for their combined remaining duration, or completes
// the process if nothing remains. Either way the processor is re-dispatched.
func block(k *Kernel, s Scheduler, p *Process) {
	var wait int64
	for {
		t, ok := p.ActiveTask()
		if !ok || t.Kind != IOBound {
			break
		}
		p.BumpToNext()
		wait += t.Remaining
	}
	if p.TimeBurst >= p.BurstTime {
		k.Complete(p.ID)
	} else {
		k.AwaitTimeout(p.ID, wait)
	}
	s.Dispatch(k)
}

// ValidSchedulers is the set of recognized scheduler names.
var ValidSchedulers = map[string]bool{"": true, "fcfs": true, "sjf": true, "stcf": true, "rr": true, "mlfq": true, "lottery": true}

// SchedulerNames lists the policies in presentation order.
var SchedulerNames = []string{"fcfs", "sjf", "stcf", "rr", "mlfq", "lottery"}

// IsValidScheduler returns true if name is a recognized scheduler.
func IsValidScheduler(name string) bool {
	return ValidSchedulers[name]
}

// NewScheduler creates a Scheduler from cfg.
// Empty name defaults to FCFS. rng is used by the lottery policy only and may be nil otherwise.
// Panics on unrecognized names.
func NewScheduler(cfg PolicyConfig, rng *rand.Rand) Scheduler {
	if !IsValidScheduler(cfg.Scheduler) {
		panic(fmt.Sprintf("unknown scheduler %q", cfg.Scheduler))
	}
	switch cfg.Scheduler {
	case "", "fcfs":
		return NewFCFSScheduler()
	case "sjf":
		return NewSJFScheduler()
	case "stcf":
		return NewSTCFScheduler()
	case "rr":
		return NewRoundRobinScheduler(cfg.Quantum)
	case "mlfq":
		return NewMLFQScheduler(cfg.MLFQQuanta)
	case "lottery":
		if rng == nil {
			panic("lottery scheduler requires an rng")
		}
		return NewLotteryScheduler(cfg.TicketMultiplier, rng)
	default:
		panic(fmt.Sprintf("unhandled scheduler %q", cfg.Scheduler))
	}
}

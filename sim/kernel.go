// sim/kernel.go
package sim

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim/timer"
	"github.com/schedsim/schedsim/sim/trace"
)

// KernelStats are counters maintained by the kernel for reporting.
type KernelStats struct {
	BusyTicks       int64 // ticks in which a process burst
	ContextSwitches int   // changes of the running process between two distinct processes
	Dispatches      int   // calls to SwitchTo that installed a process
	Admitted        int   // processes admitted over the whole run
}

// Kernel is the simulation driver. It owns the process table, the clock,
// the timing wheel, and the running-process pointer. Policies reach processes
// only through the kernel, by id.
//
// Thread-safety: NOT thread-safe. One kernel runs on one goroutine.
type Kernel struct {
	Clock int64

	cfg       KernelConfig
	scheduler Scheduler

	// Arena process table indexed by ProcessID. Slots of retired
	// processes are nil until their id is handed out again.
	procs   []*Process
	live    int
	freeIDs []ProcessID
	running ProcessID

	wheel    *timer.Wheel[ProcessID]
	expired  []ProcessID
	arrivals ArrivalQueue
	seq      int64

	// First fault raised by a policy hook during the current tick.
	fault error

	// Retired holds terminated processes in completion order, for the reporter.
	Retired []*Process
	Stats   KernelStats
	Trace   *trace.SimulationTrace // optional; nil disables dispatch recording
}

// NewKernel creates a kernel driven by the given policy.
// Panics if cfg is invalid or s is nil; call cfg.Validate() first.
func NewKernel(cfg KernelConfig, s Scheduler) *Kernel {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("NewKernel: %v", err))
	}
	if s == nil {
		panic("NewKernel: scheduler must not be nil")
	}
	return &Kernel{
		cfg:       cfg,
		scheduler: s,
		running:   NoProcess,
		wheel:     timer.NewWheel[ProcessID](cfg.WheelSize, cfg.WheelResolution),
		arrivals:  make(ArrivalQueue, 0),
	}
}

// Config returns the kernel configuration.
func (k *Kernel) Config() KernelConfig {
	return k.cfg
}

// Scheduler returns the policy driving this kernel.
func (k *Kernel) Scheduler() Scheduler {
	return k.scheduler
}

// Admit assigns a fresh id to p, inserts it as runnable, and hands it to the policy.
// The arrival tick is stamped with the current clock.
// Returns ErrCapacityExceeded if MaxProcesses live processes already exist.
func (k *Kernel) Admit(p *Process) (ProcessID, error) {
	return k.admit(p, k.Clock)
}

// admit inserts p as having arrived at arrival. Submitted processes keep
// their own arrival tick, which may fall between two clock steps.
func (k *Kernel) admit(p *Process, arrival int64) (ProcessID, error) {
	if p == nil {
		return NoProcess, fmt.Errorf("%w: nil process", ErrInvalidProcess)
	}
	for i, t := range p.Tasks {
		if t.Remaining <= 0 {
			return NoProcess, fmt.Errorf("%w: %q segment %d has non-positive duration %d", ErrInvalidProcess, p.Name, i, t.Remaining)
		}
	}
	if k.live >= k.cfg.MaxProcesses {
		return NoProcess, fmt.Errorf("%w: cannot admit %q at tick %d, %d processes live", ErrCapacityExceeded, p.Name, k.Clock, k.live)
	}

	id := k.allocateID()
	p.ID = id
	p.State = StateRunnable
	p.ArrivalTick = arrival
	k.procs[id] = p
	k.live++
	k.Stats.Admitted++
	logrus.Debugf("[tick %07d] admit pid=%d name=%q burst=%d", k.Clock, id, p.Name, p.BurstTime)

	if p.BurstTime == 0 {
		p.setComplete(k.Clock)
		return id, nil
	}
	k.scheduler.OnReady(k, id)
	return id, nil
}

// Submit queues p for admission at p.ArrivalTick. A process whose arrival
// tick is not in the future is admitted immediately.
func (k *Kernel) Submit(p *Process) error {
	if p == nil {
		return fmt.Errorf("%w: nil process", ErrInvalidProcess)
	}
	if p.ArrivalTick <= k.Clock {
		_, err := k.Admit(p)
		return err
	}
	heap.Push(&k.arrivals, pendingArrival{proc: p, seq: k.seq})
	k.seq++
	return nil
}

// PendingArrivals returns the number of submitted processes not yet admitted.
func (k *Kernel) PendingArrivals() int {
	return k.arrivals.Len()
}

// allocateID hands out a freed id if one exists, else the next unused one.
func (k *Kernel) allocateID() ProcessID {
	if len(k.freeIDs) > 0 {
		id := k.freeIDs[0]
		k.freeIDs = k.freeIDs[1:]
		return id
	}
	k.procs = append(k.procs, nil)
	return ProcessID(len(k.procs) - 1)
}

// Process returns the live process with the given id.
// Returns false for unknown or retired ids.
func (k *Kernel) Process(id ProcessID) (*Process, bool) {
	if id < 0 || int(id) >= len(k.procs) || k.procs[id] == nil {
		return nil, false
	}
	return k.procs[id], true
}

// RunningProcess returns the process holding the processor, if any.
func (k *Kernel) RunningProcess() (*Process, bool) {
	return k.Process(k.running)
}

// RunningID returns the id of the running process, or NoProcess.
func (k *Kernel) RunningID() ProcessID {
	return k.running
}

// IsRunning reports whether id holds the processor.
func (k *Kernel) IsRunning(id ProcessID) bool {
	return id != NoProcess && k.running == id
}

// LiveProcesses returns the number of processes in the table.
func (k *Kernel) LiveProcesses() int {
	return k.live
}

// Live returns the processes still in the table, in id order.
func (k *Kernel) Live() []*Process {
	out := make([]*Process, 0, k.live)
	for _, p := range k.procs {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// SwitchTo installs id as the running process and marks it running.
// NoProcess leaves the processor idle. The outgoing process's state is
// left to the caller.
func (k *Kernel) SwitchTo(id ProcessID) {
	prev := k.running
	if id == NoProcess {
		if prev != NoProcess {
			k.recordDispatch(prev, NoProcess)
		}
		k.running = NoProcess
		return
	}
	p, ok := k.Process(id)
	if !ok {
		k.fail(id, fmt.Errorf("%w: dispatch of unknown pid %d", ErrInvariantViolation, id))
		return
	}
	if p.IsComplete() {
		k.fail(id, fmt.Errorf("%w: dispatch of terminated pid %d", ErrInvariantViolation, id))
		return
	}
	p.State = StateRunning
	k.Stats.Dispatches++
	if prev != id {
		if prev != NoProcess {
			k.Stats.ContextSwitches++
		}
		k.recordDispatch(prev, id)
		logrus.Debugf("[tick %07d] dispatch %d -> %d", k.Clock, prev, id)
	}
	k.running = id
}

// recordDispatch derives the switch reason from the outgoing process's state.
func (k *Kernel) recordDispatch(from, to ProcessID) {
	if !k.Trace.Enabled() {
		return
	}
	reason := trace.ReasonIdle
	if p, ok := k.Process(from); ok {
		switch p.State {
		case StateTerminated:
			reason = trace.ReasonComplete
		case StateWaiting:
			reason = trace.ReasonBlock
		default:
			reason = trace.ReasonPreempt
		}
	}
	k.Trace.RecordDispatch(trace.DispatchRecord{Clock: k.Clock, From: int(from), To: int(to), Reason: reason})
}

// MarkRunnable returns a preempted or woken process to the runnable state.
// Unknown and terminated ids are ignored.
func (k *Kernel) MarkRunnable(id ProcessID) {
	if p, ok := k.Process(id); ok && !p.IsComplete() {
		p.State = StateRunnable
	}
}

// AwaitTimeout blocks id for duration clock units and marks it waiting.
// The wait covers the next duration clock units; the process becomes
// runnable in the first tick after that.
func (k *Kernel) AwaitTimeout(id ProcessID, duration int64) {
	p, ok := k.Process(id)
	if !ok {
		k.fail(id, fmt.Errorf("%w: await of unknown pid %d", ErrInvariantViolation, id))
		return
	}
	p.State = StateWaiting
	p.BlockedTime += max(duration, 0)
	k.wheel.AddTimeout(id, max(duration, 0)+k.cfg.Interval)
	logrus.Debugf("[tick %07d] block pid=%d for %d", k.Clock, id, duration)
}

// ExpiredTimeout pops one process whose wait has elapsed this tick.
func (k *Kernel) ExpiredTimeout() (ProcessID, bool) {
	if len(k.expired) == 0 {
		return NoProcess, false
	}
	id := k.expired[0]
	k.expired = k.expired[1:]
	return id, true
}

// Complete terminates id at the current clock. Idempotent.
func (k *Kernel) Complete(id ProcessID) {
	p, ok := k.Process(id)
	if !ok {
		return
	}
	if !p.Complete {
		logrus.Debugf("[tick %07d] complete pid=%d turnaround=%d", k.Clock, id, k.Clock-p.ArrivalTick)
	}
	p.setComplete(k.Clock)
}

// burst consumes one tick of the running process.
func (k *Kernel) burst(p *Process) (Task, bool, error) {
	k.Stats.BusyTicks++
	return p.Burst(k.Clock)
}

// fail records the first fault of the tick; Tick reports it.
func (k *Kernel) fail(id ProcessID, err error) {
	if k.fault == nil {
		k.fault = &SimulationError{PID: id, Tick: k.Clock, Err: err}
	}
}

// Tick advances the clock by one interval: admits due arrivals, polls the
// timing wheel, runs the policy's shared advance step, and retires
// terminated processes.
func (k *Kernel) Tick() error {
	k.fault = nil
	for {
		p, ok := k.arrivals.popDue(k.Clock)
		if !ok {
			break
		}
		if _, err := k.admit(p, p.ArrivalTick); err != nil {
			return &SimulationError{PID: NoProcess, Tick: k.Clock, Err: err}
		}
	}

	k.Clock += k.cfg.Interval
	for i := int64(0); i < k.cfg.Interval/k.wheel.Resolution(); i++ {
		k.wheel.Tick()
		for {
			id, ok := k.wheel.ExpireTimeout()
			if !ok {
				break
			}
			k.expired = append(k.expired, id)
		}
	}
	logrus.Tracef("[tick %07d] running=%d live=%d waiting=%d", k.Clock, k.running, k.live, k.wheel.Len())

	err := Advance(k, k.scheduler)
	if err == nil {
		err = k.fault
	}
	if err != nil {
		k.dumpFault(err)
		return err
	}

	k.compact()
	return nil
}

// stalled reports whether no future tick can make progress.
func (k *Kernel) stalled() bool {
	return k.running == NoProcess && k.wheel.Empty() && len(k.expired) == 0 &&
		k.arrivals.Len() == 0 && !k.IsCompleted()
}

// compact moves terminated processes out of the table into Retired and frees their ids.
func (k *Kernel) compact() {
	for i, p := range k.procs {
		if p == nil || !p.IsComplete() {
			continue
		}
		id := ProcessID(i)
		if k.running == id {
			k.running = NoProcess
		}
		k.Retired = append(k.Retired, p)
		k.procs[i] = nil
		k.live--
		k.freeIDs = append(k.freeIDs, id)
	}
}

func (k *Kernel) dumpFault(err error) {
	logrus.Errorf("[tick %07d] %v", k.Clock, err)
	if !logrus.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	var se *SimulationError
	if errors.As(err, &se) {
		if p, ok := k.Process(se.PID); ok {
			logrus.Tracef("offending process:\n%s", spew.Sdump(p))
		}
	}
}

// IsCompleted reports whether every submitted process has terminated.
func (k *Kernel) IsCompleted() bool {
	if k.arrivals.Len() > 0 {
		return false
	}
	for _, p := range k.procs {
		if p != nil && !p.Complete {
			return false
		}
	}
	return true
}

// Run ticks until every process has terminated, the horizon is reached, or
// the policy leaves the processor idle with nothing waiting or due to arrive
// (e.g. lottery with only zero-ticket processes). The last two are not errors;
// IsCompleted stays false.
func (k *Kernel) Run() error {
	for !k.IsCompleted() {
		if k.Clock >= k.cfg.Horizon {
			logrus.Warnf("[tick %07d] horizon reached with %d live processes", k.Clock, k.live)
			return nil
		}
		if err := k.Tick(); err != nil {
			return err
		}
		if k.stalled() {
			logrus.Warnf("[tick %07d] no runnable work left for the policy, %d live processes stay incomplete", k.Clock, k.live)
			return nil
		}
	}
	// Processes that completed on admission are retired here.
	k.compact()
	logrus.Infof("[tick %07d] Simulation ended", k.Clock)
	return nil
}

// Step runs exactly one tick unless the simulation is already complete.
func (k *Kernel) Step() error {
	if k.IsCompleted() {
		return nil
	}
	return k.Tick()
}

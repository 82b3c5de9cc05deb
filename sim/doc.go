// Package sim provides the discrete-time CPU scheduling simulation engine.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - process.go: Process lifecycle (runnable → running → waiting/terminated) and segment bursting
//   - scheduler.go: the Scheduler dispatch protocol and the per-tick Advance algorithm
//   - kernel.go: the tick loop, process table, arrivals and the timing wheel for I/O waits
//
// # Architecture
//
// The kernel owns every process and the clock. A policy keeps only process ids
// in its own ready structure and changes process state only through kernel
// calls (SwitchTo, MarkRunnable, AwaitTimeout, Complete). Policies:
//   - sched_fcfs.go: first come, first served
//   - sched_sjf.go: shortest job first (non-preemptive)
//   - sched_stcf.go: shortest time to completion first (preemptive)
//   - sched_rr.go: round robin with a fixed quantum
//   - sched_mlfq.go: three-level feedback queue
//   - sched_lottery.go: proportional share by ticket draw
//
// Sub-packages:
//   - sim/timer/: hashed timing wheel used for I/O waits
//   - sim/workload/: workload specs, synthetic generation and presets
//   - sim/trace/: dispatch decision recording
//
// Randomness flows through PartitionedRNG so a run is reproducible from its seed.
package sim

// Package trace provides dispatch-decision recording for scheduling policy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Reason explains why the processor changed hands.
type Reason string

const (
	// ReasonIdle: the processor was idle.
	ReasonIdle Reason = "idle"
	// ReasonComplete: the previous process terminated.
	ReasonComplete Reason = "complete"
	// ReasonBlock: the previous process started waiting on I/O.
	ReasonBlock Reason = "block"
	// ReasonPreempt: the previous process was still runnable.
	ReasonPreempt Reason = "preempt"
)

// NoProcess mirrors the kernel's idle marker.
const NoProcess = -1

// DispatchRecord captures a single change of the running process.
type DispatchRecord struct {
	Clock  int64
	From   int // NoProcess when the processor was idle
	To     int // NoProcess when the processor goes idle
	Reason Reason
}

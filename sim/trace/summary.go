package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches int
	Preemptions     int
	Blocks          int
	IdleSwitches    int // dispatches that left the processor idle
	UniqueProcesses int
	DispatchCounts  map[int]int    // process id → times dispatched
	ReasonCounts    map[Reason]int // reason → count
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchCounts: make(map[int]int),
		ReasonCounts:   make(map[Reason]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDispatches = len(st.Dispatches)
	for _, d := range st.Dispatches {
		summary.ReasonCounts[d.Reason]++
		switch d.Reason {
		case ReasonPreempt:
			summary.Preemptions++
		case ReasonBlock:
			summary.Blocks++
		}
		if d.To == NoProcess {
			summary.IdleSwitches++
			continue
		}
		summary.DispatchCounts[d.To]++
	}
	summary.UniqueProcesses = len(summary.DispatchCounts)

	return summary
}

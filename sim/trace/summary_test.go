package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	// GIVEN no trace at all
	summary := Summarize(nil)

	// THEN all counts are zero and maps are usable
	assert.Equal(t, 0, summary.TotalDispatches)
	assert.Empty(t, summary.DispatchCounts)
	assert.Empty(t, summary.ReasonCounts)
}

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	assert.Equal(t, 0, summary.TotalDispatches)
	assert.Equal(t, 0, summary.Preemptions)
	assert.Equal(t, 0, summary.UniqueProcesses)
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with every kind of switch
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordDispatch(DispatchRecord{Clock: 1, From: NoProcess, To: 0, Reason: ReasonIdle})
	st.RecordDispatch(DispatchRecord{Clock: 3, From: 0, To: 1, Reason: ReasonPreempt})
	st.RecordDispatch(DispatchRecord{Clock: 5, From: 1, To: 0, Reason: ReasonBlock})
	st.RecordDispatch(DispatchRecord{Clock: 6, From: 0, To: NoProcess, Reason: ReasonComplete})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	assert.Equal(t, 4, summary.TotalDispatches)
	assert.Equal(t, 1, summary.Preemptions)
	assert.Equal(t, 1, summary.Blocks)
	assert.Equal(t, 1, summary.IdleSwitches)
	assert.Equal(t, 2, summary.UniqueProcesses)
	assert.Equal(t, map[int]int{0: 2, 1: 1}, summary.DispatchCounts)
	assert.Equal(t, 1, summary.ReasonCounts[ReasonComplete])
}

func TestSimulationTrace_Enabled(t *testing.T) {
	var nilTrace *SimulationTrace
	assert.False(t, nilTrace.Enabled())
	assert.False(t, NewSimulationTrace(TraceConfig{Level: TraceLevelNone}).Enabled())
	assert.True(t, NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions}).Enabled())
}

func TestIsValidTraceLevel(t *testing.T) {
	assert.True(t, IsValidTraceLevel(""))
	assert.True(t, IsValidTraceLevel("none"))
	assert.True(t, IsValidTraceLevel("decisions"))
	assert.False(t, IsValidTraceLevel("verbose"))
}

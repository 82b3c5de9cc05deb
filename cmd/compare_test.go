package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/workload"
)

func TestComparePolicies_OneResultPerPolicyInOrder(t *testing.T) {
	// GIVEN the convoy preset
	spec := workload.ScenarioConvoy(7, 8)

	// WHEN every policy is compared
	results, err := comparePolicies(sim.DefaultKernelConfig(), sim.DefaultPolicyConfig(), spec, 7, "cmp-1")
	require.NoError(t, err)

	// THEN results follow SchedulerNames and every run completes
	require.Len(t, results, len(sim.SchedulerNames))
	for i, m := range results {
		assert.Equal(t, sim.SchedulerNames[i], m.Scheduler)
		assert.Equal(t, "cmp-1", m.RunID)
		assert.Equal(t, 9, m.CompletedProcesses)
		assert.Equal(t, 0, m.IncompleteProcesses)
	}

	// AND the convoy hurts FCFS more than SJF
	assert.Greater(t, results[0].MeanTurnaround, results[1].MeanTurnaround)
}

func TestComparePolicies_InvalidSpec_ReturnsError(t *testing.T) {
	_, err := comparePolicies(sim.DefaultKernelConfig(), sim.DefaultPolicyConfig(), &workload.WorkloadSpec{}, 1, "")
	assert.Error(t, err)
}

func TestPrintComparison_ListsPolicies(t *testing.T) {
	results, err := comparePolicies(sim.DefaultKernelConfig(), sim.DefaultPolicyConfig(), workload.ScenarioConvoy(1, 3), 1, "run-x")
	require.NoError(t, err)

	var buf bytes.Buffer
	printComparison(&buf, results)

	out := buf.String()
	assert.Contains(t, out, "run-x")
	for _, name := range sim.SchedulerNames {
		assert.Contains(t, out, name)
	}
}

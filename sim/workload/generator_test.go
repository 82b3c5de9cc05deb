package workload

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/sim"
)

func constDist(v float64) DistSpec {
	return DistSpec{Type: "constant", Params: map[string]float64{"value": v}}
}

func TestGenerateProcesses_ExplicitProcesses(t *testing.T) {
	// GIVEN two listed processes, one unnamed
	w := int64(5)
	spec := &WorkloadSpec{Processes: []ProcessSpec{
		{Name: "editor", Arrival: 2, Weight: &w, Segments: []SegmentSpec{{"cpu", 2}, {"io", 3}, {"cpu", 1}}},
		{Segments: []SegmentSpec{{"cpu", 4}}},
	}}

	// WHEN generated
	procs, err := GenerateProcesses(spec)
	require.NoError(t, err)

	// THEN segments, arrival and weight carry over, sorted by arrival
	require.Len(t, procs, 2)
	assert.Equal(t, "p1", procs[0].Name)
	assert.Equal(t, int64(1), procs[0].Weight)
	editor := procs[1]
	assert.Equal(t, "editor", editor.Name)
	assert.Equal(t, int64(2), editor.ArrivalTick)
	assert.Equal(t, int64(5), editor.Weight)
	assert.Equal(t, []sim.Task{sim.CPU(2), sim.IO(3), sim.CPU(1)}, editor.Tasks)
	assert.Equal(t, int64(6), editor.BurstTime)
	assert.Equal(t, sim.NoProcess, editor.ID)
}

func TestGenerateProcesses_ClientAlternatesSegments(t *testing.T) {
	// GIVEN a client with constant arrivals every 2 ticks and 2 bursts per process
	io := constDist(3)
	spec := &WorkloadSpec{Clients: []ClientSpec{{
		ID: "batch", Count: 4, Weight: 3, Bursts: 2,
		Arrival: ArrivalSpec{Process: "constant", Rate: 0.5},
		CPUDist: constDist(5),
		IODist:  &io,
	}}}

	procs, err := GenerateProcesses(spec)
	require.NoError(t, err)

	// THEN each process is cpu, io, cpu and arrivals are evenly spaced
	require.Len(t, procs, 4)
	for i, p := range procs {
		assert.Equal(t, int64(2*i), p.ArrivalTick)
		assert.Equal(t, []sim.Task{sim.CPU(5), sim.IO(3), sim.CPU(5)}, p.Tasks)
		assert.Equal(t, int64(3), p.Weight)
	}
	assert.Equal(t, "batch-0", procs[0].Name)
	assert.Equal(t, "batch-3", procs[3].Name)
}

func TestGenerateProcesses_HorizonStopsArrivals(t *testing.T) {
	spec := &WorkloadSpec{Horizon: 10, Clients: []ClientSpec{{
		Count:   100,
		Arrival: ArrivalSpec{Process: "constant", Rate: 1},
		CPUDist: constDist(1),
	}}}

	procs, err := GenerateProcesses(spec)
	require.NoError(t, err)

	assert.Len(t, procs, 10)
	assert.Equal(t, int64(9), procs[len(procs)-1].ArrivalTick)
}

func TestGenerateProcesses_ExplicitBeforeGeneratedOnTies(t *testing.T) {
	spec := &WorkloadSpec{
		Processes: []ProcessSpec{{Name: "listed", Arrival: 5, Segments: []SegmentSpec{{"cpu", 1}}}},
		Clients: []ClientSpec{{
			ID: "c", Count: 3,
			Arrival: ArrivalSpec{Process: "constant", Rate: 0.2},
			CPUDist: constDist(1),
		}},
	}

	procs, err := GenerateProcesses(spec)
	require.NoError(t, err)

	var names []string
	for _, p := range procs {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"c-0", "listed", "c-1", "c-2"}, names)
}

func poissonSpec(seed int64) *WorkloadSpec {
	return &WorkloadSpec{Seed: seed, Clients: []ClientSpec{{
		ID: "c", Count: 50,
		Arrival: ArrivalSpec{Process: "poisson", Rate: 0.3},
		CPUDist: DistSpec{Type: "exponential", Params: map[string]float64{"mean": 6}},
	}}}
}

func TestGenerateProcesses_Deterministic(t *testing.T) {
	a, err := GenerateProcesses(poissonSpec(42))
	require.NoError(t, err)
	b, err := GenerateProcesses(poissonSpec(42))
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different workloads (-first +second):\n%s", diff)
	}
}

func TestGenerateProcesses_DifferentSeeds_Differ(t *testing.T) {
	a, err := GenerateProcesses(poissonSpec(1))
	require.NoError(t, err)
	b, err := GenerateProcesses(poissonSpec(2))
	require.NoError(t, err)

	assert.NotEmpty(t, cmp.Diff(a, b))
}

func TestGenerateProcesses_InvalidSpec(t *testing.T) {
	_, err := GenerateProcesses(&WorkloadSpec{})
	assert.ErrorContains(t, err, "invalid workload spec")
}

func TestGenerateProcesses_RunsToCompletion(t *testing.T) {
	// GIVEN a generated I/O-heavy workload
	procs, err := GenerateProcesses(ScenarioInteractive(3, 12))
	require.NoError(t, err)

	// WHEN submitted to a kernel under every policy
	for _, name := range sim.SchedulerNames {
		t.Run(name, func(t *testing.T) {
			cfg := sim.DefaultPolicyConfig()
			cfg.Scheduler = name
			rng := sim.NewPartitionedRNG(sim.NewSimulationKey(3))
			k := sim.NewKernel(sim.DefaultKernelConfig(), sim.NewScheduler(cfg, rng.ForSubsystem(sim.SubsystemLottery)))

			fresh, err := GenerateProcesses(ScenarioInteractive(3, 12))
			require.NoError(t, err)
			for _, p := range fresh {
				require.NoError(t, k.Submit(p))
			}

			// THEN every process completes
			require.NoError(t, k.Run())
			assert.True(t, k.IsCompleted())
			assert.Len(t, k.Retired, len(procs))
		})
	}
}

package workload

import "sort"

// Built-in scenario presets for classic scheduling workloads.
// Each returns a valid WorkloadSpec ready for use with GenerateProcesses.

// ScenarioConvoy is one long CPU hog arriving just ahead of many short jobs,
// the case where FCFS turnaround collapses and SJF/STCF shine.
func ScenarioConvoy(seed int64, count int) *WorkloadSpec {
	return &WorkloadSpec{
		Version: "1", Seed: seed,
		Processes: []ProcessSpec{{
			Name:     "hog",
			Segments: []SegmentSpec{{Kind: "cpu", Duration: 100}},
		}},
		Clients: []ClientSpec{{
			ID: "short", Count: count,
			Arrival: ArrivalSpec{Process: "constant", Rate: 1},
			CPUDist: DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 4, "std_dev": 2, "min": 1, "max": 10}},
		}},
	}
}

// ScenarioInteractive mixes I/O-heavy interactive processes with CPU-bound
// batch work, the case MLFQ is built for.
func ScenarioInteractive(seed int64, count int) *WorkloadSpec {
	return &WorkloadSpec{
		Version: "1", Seed: seed,
		Clients: []ClientSpec{
			{ID: "interactive", Count: count,
				Bursts:  5,
				Arrival: ArrivalSpec{Process: "poisson", Rate: 0.2},
				CPUDist: DistSpec{Type: "exponential", Params: map[string]float64{"mean": 2}},
				IODist:  &DistSpec{Type: "exponential", Params: map[string]float64{"mean": 6}},
			},
			{ID: "batch", Count: max(count/4, 1),
				Arrival: ArrivalSpec{Process: "poisson", Rate: 0.05},
				CPUDist: DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 60, "std_dev": 20, "min": 20, "max": 120}},
			},
		},
	}
}

// ScenarioBursty submits CPU-bound jobs in Gamma-distributed bursts.
func ScenarioBursty(seed int64, count int) *WorkloadSpec {
	cv := 3.0
	return &WorkloadSpec{
		Version: "1", Seed: seed,
		Clients: []ClientSpec{{
			ID: "bursty", Count: count,
			Arrival: ArrivalSpec{Process: "gamma", Rate: 0.1, CV: &cv},
			CPUDist: DistSpec{Type: "exponential", Params: map[string]float64{"mean": 8}},
		}},
	}
}

// ScenarioWeighted runs equal CPU-bound jobs with weights 1, 2 and 4,
// showing the lottery policy's proportional share.
func ScenarioWeighted(seed int64, count int) *WorkloadSpec {
	per := max(count/3, 1)
	client := func(id string, weight int64) ClientSpec {
		return ClientSpec{
			ID: id, Count: per, Weight: weight,
			Arrival: ArrivalSpec{Process: "constant", Rate: 1},
			CPUDist: DistSpec{Type: "constant", Params: map[string]float64{"value": 50}},
		}
	}
	return &WorkloadSpec{
		Version: "1", Seed: seed,
		Clients: []ClientSpec{client("light", 1), client("medium", 2), client("heavy", 4)},
	}
}

// Scenarios maps preset names to their constructors.
var Scenarios = map[string]func(seed int64, count int) *WorkloadSpec{
	"convoy":      ScenarioConvoy,
	"interactive": ScenarioInteractive,
	"bursty":      ScenarioBursty,
	"weighted":    ScenarioWeighted,
}

// ScenarioNames returns the preset names in sorted order.
func ScenarioNames() []string {
	names := make([]string, 0, len(Scenarios))
	for name := range Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package testutil provides shared test infrastructure for the simulator:
// the golden schedule dataset and assertion helpers used across sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-verified schedule: a policy, its parameters,
// the processes submitted, and the outcome every correct run must produce.
type GoldenTestCase struct {
	Name       string          `json:"name"`
	Scheduler  string          `json:"scheduler"`
	Quantum    int64           `json:"quantum,omitempty"`
	MLFQQuanta []int64         `json:"mlfq_quanta,omitempty"`
	Processes  []GoldenProcess `json:"processes"`
	Expected   GoldenMetrics   `json:"expected"`
	Sequence   []string        `json:"sequence,omitempty"` // process bursting in each tick, "" when idle
}

// GoldenProcess describes one submitted process.
type GoldenProcess struct {
	Name     string          `json:"name"`
	Arrival  int64           `json:"arrival"`
	Weight   int64           `json:"weight,omitempty"`
	Segments []GoldenSegment `json:"segments"`
}

// GoldenSegment is one execution segment of a GoldenProcess.
type GoldenSegment struct {
	Kind     string `json:"kind"`
	Duration int64  `json:"duration"`
}

// GoldenMetrics holds the expected per-process and run-wide outcome.
type GoldenMetrics struct {
	Completion      map[string]int64 `json:"completion"`
	Response        map[string]int64 `json:"response"`
	ContextSwitches int              `json:"context_switches"`
	MeanTurnaround  float64          `json:"mean_turnaround"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

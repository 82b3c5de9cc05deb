package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPolicyBundle_ValidYAML(t *testing.T) {
	path := writeTempYAML(t, `
scheduler: mlfq
quantum: 3
mlfq_quanta: [1, 5]
ticket_multiplier: 10
kernel:
  interval: 2
  max_processes: 64
  wheel_size: 16
  wheel_resolution: 1
  horizon: 1000
`)
	bundle, err := LoadPolicyBundle(path)
	require.NoError(t, err)
	require.NoError(t, bundle.Validate())

	assert.Equal(t, "mlfq", bundle.Scheduler)
	assert.Equal(t, int64Ptr(3), bundle.Quantum)
	assert.Equal(t, []int64{1, 5}, bundle.MLFQQuanta)
	assert.Equal(t, int64Ptr(10), bundle.TicketMultiplier)
	require.NotNil(t, bundle.Kernel.MaxProcesses)
	assert.Equal(t, 64, *bundle.Kernel.MaxProcesses)
	assert.Equal(t, int64Ptr(1000), bundle.Kernel.Horizon)
}

func TestLoadPolicyBundle_UnsetFieldsStayNil(t *testing.T) {
	// GIVEN a bundle that names only the scheduler
	path := writeTempYAML(t, "scheduler: rr\n")

	bundle, err := LoadPolicyBundle(path)
	require.NoError(t, err)

	// THEN no other field is set
	assert.Nil(t, bundle.Quantum)
	assert.Nil(t, bundle.TicketMultiplier)
	assert.Empty(t, bundle.MLFQQuanta)
	assert.Nil(t, bundle.Kernel.Interval)
	assert.Nil(t, bundle.Kernel.Horizon)
}

func TestLoadPolicyBundle_UnknownKey_Rejected(t *testing.T) {
	// GIVEN a typo in a key
	path := writeTempYAML(t, "scheduler: rr\nquantom: 3\n")

	// THEN strict parsing rejects it
	_, err := LoadPolicyBundle(path)
	assert.Error(t, err)
}

func TestLoadPolicyBundle_NonexistentFile(t *testing.T) {
	_, err := LoadPolicyBundle("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadPolicyBundle_MalformedYAML(t *testing.T) {
	_, err := LoadPolicyBundle(writeTempYAML(t, "{{invalid yaml"))
	assert.Error(t, err)
}

func TestPolicyBundle_Validate(t *testing.T) {
	zero := 0
	tests := []struct {
		name   string
		bundle PolicyBundle
		ok     bool
	}{
		{"empty", PolicyBundle{}, true},
		{"unknown scheduler", PolicyBundle{Scheduler: "edf"}, false},
		{"zero quantum", PolicyBundle{Quantum: int64Ptr(0)}, false},
		{"one mlfq quantum", PolicyBundle{MLFQQuanta: []int64{2}}, false},
		{"negative mlfq quantum", PolicyBundle{MLFQQuanta: []int64{2, -1}}, false},
		{"zero multiplier", PolicyBundle{TicketMultiplier: int64Ptr(0)}, false},
		{"zero interval", PolicyBundle{Kernel: KernelBundle{Interval: int64Ptr(0)}}, false},
		{"zero max processes", PolicyBundle{Kernel: KernelBundle{MaxProcesses: &zero}}, false},
		{"zero horizon", PolicyBundle{Kernel: KernelBundle{Horizon: int64Ptr(0)}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.bundle.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPolicyBundle_Validate_UnknownScheduler_IsUnknownPolicy(t *testing.T) {
	b := PolicyBundle{Scheduler: "edf"}
	assert.ErrorIs(t, b.Validate(), ErrUnknownPolicy)
}

func TestPolicyBundle_Apply_OverridesOnlySetFields(t *testing.T) {
	// GIVEN defaults and a bundle setting a subset of fields
	policy := DefaultPolicyConfig()
	kernel := DefaultKernelConfig()
	b := PolicyBundle{
		Scheduler:  "mlfq",
		MLFQQuanta: []int64{3, 6},
		Kernel:     KernelBundle{Horizon: int64Ptr(50)},
	}

	// WHEN applied
	b.ApplyPolicy(&policy)
	b.ApplyKernel(&kernel)

	// THEN set fields change and the rest keep their defaults
	assert.Equal(t, "mlfq", policy.Scheduler)
	assert.Equal(t, [MLFQLevels - 1]int64{3, 6}, policy.MLFQQuanta)
	assert.Equal(t, int64(DefaultQuantum), policy.Quantum)
	assert.Equal(t, int64(DefaultTicketMultiplier), policy.TicketMultiplier)
	assert.Equal(t, int64(50), kernel.Horizon)
	assert.Equal(t, int64(1), kernel.Interval)
	assert.Equal(t, DefaultMaxProcesses, kernel.MaxProcesses)
}

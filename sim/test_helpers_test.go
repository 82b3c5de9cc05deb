package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestKernel builds a kernel with default configuration around s.
func newTestKernel(s Scheduler) *Kernel {
	return NewKernel(DefaultKernelConfig(), s)
}

// newPolicy builds the named policy with default parameters and a seeded rng.
func newPolicy(name string) Scheduler {
	cfg := DefaultPolicyConfig()
	cfg.Scheduler = name
	return NewScheduler(cfg, rand.New(rand.NewSource(42)))
}

// admitAll admits procs in order at the current clock.
func admitAll(t *testing.T, k *Kernel, procs ...*Process) []ProcessID {
	t.Helper()
	ids := make([]ProcessID, len(procs))
	for i, p := range procs {
		id, err := k.Admit(p)
		require.NoError(t, err)
		ids[i] = id
	}
	return ids
}

// burstSequence steps k until completion (or maxTicks) and returns, per tick,
// the name of the process that burst in it ("" for an idle tick).
func burstSequence(t *testing.T, k *Kernel, maxTicks int, procs ...*Process) []string {
	t.Helper()
	var seq []string
	for i := 0; i < maxTicks && !k.IsCompleted(); i++ {
		before := make([]int64, len(procs))
		for j, p := range procs {
			before[j] = p.CPUTime
		}
		require.NoError(t, k.Step())
		name := ""
		for j, p := range procs {
			if p.CPUTime > before[j] {
				require.Empty(t, name, "two processes burst in tick %d", k.Clock)
				name = p.Name
			}
		}
		seq = append(seq, name)
	}
	return seq
}

// repeat returns name n times.
func repeat(name string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = name
	}
	return out
}

// concat joins name runs.
func concat(runs ...[]string) []string {
	var out []string
	for _, r := range runs {
		out = append(out, r...)
	}
	return out
}

package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
	"github.com/schedsim/schedsim/sim/workload"
)

// flagSet reports whether the user set name on the command line.
// Unknown flags (e.g. --scheduler on compare) count as unset.
func flagSet(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// resolveConfigs layers defaults, the optional policy bundle, and explicitly
// set flags, in that order of increasing precedence.
func resolveConfigs(cmd *cobra.Command) (sim.KernelConfig, sim.PolicyConfig, error) {
	kcfg := sim.DefaultKernelConfig()
	pcfg := sim.DefaultPolicyConfig()

	if policyConfigPath != "" {
		bundle, err := sim.LoadPolicyBundle(policyConfigPath)
		if err != nil {
			return kcfg, pcfg, err
		}
		if err := bundle.Validate(); err != nil {
			return kcfg, pcfg, fmt.Errorf("policy config %s: %w", policyConfigPath, err)
		}
		bundle.ApplyPolicy(&pcfg)
		bundle.ApplyKernel(&kcfg)
		logrus.Infof("Loaded policy config %s", policyConfigPath)
	}

	if flagSet(cmd, "scheduler") || policyConfigPath == "" {
		pcfg.Scheduler = schedulerName
	}
	if flagSet(cmd, "quantum") {
		pcfg.Quantum = quantum
	}
	if flagSet(cmd, "mlfq-quanta") {
		if len(mlfqQuanta) != sim.MLFQLevels-1 {
			return kcfg, pcfg, fmt.Errorf("--mlfq-quanta needs %d values, got %d", sim.MLFQLevels-1, len(mlfqQuanta))
		}
		copy(pcfg.MLFQQuanta[:], mlfqQuanta)
	}
	if flagSet(cmd, "ticket-multiplier") {
		pcfg.TicketMultiplier = ticketMultiplier
	}
	if flagSet(cmd, "interval") {
		kcfg.Interval = interval
	}
	if flagSet(cmd, "max-processes") {
		kcfg.MaxProcesses = maxProcesses
	}
	if flagSet(cmd, "wheel-size") {
		kcfg.WheelSize = wheelSize
	}
	if flagSet(cmd, "wheel-resolution") {
		kcfg.WheelResolution = wheelResolution
	}
	if flagSet(cmd, "horizon") {
		kcfg.Horizon = simulationHorizon
	}

	if err := kcfg.Validate(); err != nil {
		return kcfg, pcfg, err
	}
	if err := pcfg.Validate(); err != nil {
		return kcfg, pcfg, err
	}
	return kcfg, pcfg, nil
}

// resolveWorkload loads --workload-spec if given, else builds the --scenario preset.
// An explicit --seed overrides the seed in the spec file.
func resolveWorkload(cmd *cobra.Command) (*workload.WorkloadSpec, error) {
	if workloadSpecPath != "" {
		spec, err := workload.LoadWorkloadSpec(workloadSpecPath)
		if err != nil {
			return nil, err
		}
		if flagSet(cmd, "seed") {
			spec.Seed = seed
		}
		logrus.Infof("Loaded workload spec %s (seed %d)", workloadSpecPath, spec.Seed)
		return spec, spec.Validate()
	}

	preset, ok := workload.Scenarios[scenarioName]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q; valid: %s", scenarioName, strings.Join(workload.ScenarioNames(), ", "))
	}
	if numProcesses <= 0 {
		return nil, fmt.Errorf("--num-processes must be > 0, got %d", numProcesses)
	}
	logrus.Infof("Using preset workload %s with %d processes", scenarioName, numProcesses)
	return preset(seed, numProcesses), nil
}

// simulate generates the workload, submits it to a fresh kernel and runs it.
// The kernel is returned even on error so callers can inspect partial state.
func simulate(kcfg sim.KernelConfig, pcfg sim.PolicyConfig, spec *workload.WorkloadSpec, seed int64, level trace.TraceLevel) (*sim.Kernel, error) {
	procs, err := workload.GenerateProcesses(spec)
	if err != nil {
		return nil, err
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
	k := sim.NewKernel(kcfg, sim.NewScheduler(pcfg, rng.ForSubsystem(sim.SubsystemLottery)))
	if level == trace.TraceLevelDecisions {
		k.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
	}
	for _, p := range procs {
		if err := k.Submit(p); err != nil {
			return k, fmt.Errorf("submitting %q: %w", p.Name, err)
		}
	}
	return k, k.Run()
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	_, _ = fmt.Fprintln(w, "=== Dispatch Trace ===")
	_, _ = fmt.Fprintf(w, "Dispatches: %d  Preemptions: %d  Blocks: %d  Idle switches: %d  Processes: %d\n",
		s.TotalDispatches, s.Preemptions, s.Blocks, s.IdleSwitches, s.UniqueProcesses)
	pids := make([]int, 0, len(s.DispatchCounts))
	for pid := range s.DispatchCounts {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	for _, pid := range pids {
		_, _ = fmt.Fprintf(w, "  pid %d dispatched %d times\n", pid, s.DispatchCounts[pid])
	}
}

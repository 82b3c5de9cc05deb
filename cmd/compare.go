package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
	"github.com/schedsim/schedsim/sim/workload"
)

// compareCmd runs every policy on the same workload and prints one summary row per policy.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every scheduling policy on the same workload",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		kcfg, pcfg, err := resolveConfigs(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		spec, err := resolveWorkload(cmd)
		if err != nil {
			logrus.Fatalf("Invalid workload: %v", err)
		}

		results, err := comparePolicies(kcfg, pcfg, spec, seed, uuid.NewString())
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		printComparison(os.Stdout, results)
	},
}

// comparePolicies runs each policy in sim.SchedulerNames concurrently, one
// kernel per goroutine, and returns their metrics in SchedulerNames order.
// Each run regenerates the workload so no process is shared between kernels.
func comparePolicies(kcfg sim.KernelConfig, pcfg sim.PolicyConfig, spec *workload.WorkloadSpec, seed int64, runID string) ([]*sim.Metrics, error) {
	results := make([]*sim.Metrics, len(sim.SchedulerNames))
	var g errgroup.Group
	for i, name := range sim.SchedulerNames {
		i, name := i, name
		cfg := pcfg
		cfg.Scheduler = name
		g.Go(func() error {
			k, err := simulate(kcfg, cfg, spec, seed, trace.TraceLevelNone)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = sim.CollectMetrics(k, runID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printComparison(w io.Writer, results []*sim.Metrics) {
	if len(results) > 0 {
		_, _ = fmt.Fprintf(w, "=== Policy comparison (run %s) ===\n", results[0].RunID)
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Completed", "Response", "Wait", "Turnaround", "P95 Turnaround", "Throughput", "Util", "Switches"})
	for _, m := range results {
		table.Append([]string{
			m.Scheduler,
			fmt.Sprintf("%d/%d", m.CompletedProcesses, m.CompletedProcesses+m.IncompleteProcesses),
			fmt.Sprintf("%.2f", m.MeanResponse),
			fmt.Sprintf("%.2f", m.MeanWait),
			fmt.Sprintf("%.2f", m.MeanTurnaround),
			fmt.Sprintf("%.2f", m.P95Turnaround),
			fmt.Sprintf("%.3f", m.Throughput),
			fmt.Sprintf("%.1f%%", 100*m.Utilization),
			fmt.Sprintf("%d", m.ContextSwitches),
		})
	}
	table.Render()
}

package cmd

import (
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
)

var (
	// CLI flags shared by run and compare
	seed              int64   // Seed for workload generation and lottery draws
	simulationHorizon int64   // Run stops once the clock reaches this tick
	logLevel          string  // Log verbosity level
	interval          int64   // Clock units per tick
	maxProcesses      int     // Ceiling on live processes
	wheelSize         int     // Timing wheel slot count
	wheelResolution   int64   // Clock units per wheel tick
	quantum           int64   // Round-robin time slice
	mlfqQuanta        []int64 // MLFQ time slices for levels 0 and 1
	ticketMultiplier  int64   // Lottery tickets per unit of weight
	policyConfigPath  string  // YAML policy bundle
	workloadSpecPath  string  // YAML workload spec
	scenarioName      string  // Built-in workload preset
	numProcesses      int     // Process count for presets

	// run-only flags
	schedulerName string // Policy to run
	traceLevel    string // Dispatch trace verbosity
	resultsPath   string // JSON report destination
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "Discrete-time CPU scheduling simulator",
}

// runCmd simulates one policy on one workload and prints its schedule table.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation under one scheduling policy",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		kcfg, pcfg, err := resolveConfigs(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q; valid: none, decisions", traceLevel)
		}
		spec, err := resolveWorkload(cmd)
		if err != nil {
			logrus.Fatalf("Invalid workload: %v", err)
		}

		runID := uuid.NewString()
		logrus.Infof("Starting run %s: scheduler=%s seed=%d horizon=%d", runID, pcfg.Scheduler, seed, kcfg.Horizon)

		k, err := simulate(kcfg, pcfg, spec, seed, trace.TraceLevel(traceLevel))
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		m := sim.CollectMetrics(k, runID)
		if err := m.SaveResults(os.Stdout, resultsPath); err != nil {
			logrus.Fatalf("Saving results: %v", err)
		}
		if k.Trace.Enabled() {
			printTraceSummary(os.Stdout, trace.Summarize(k.Trace))
		}
		logrus.Info("Simulation complete.")
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerSharedFlags attaches the flags common to run and compare.
func registerSharedFlags(c *cobra.Command) {
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for workload generation and lottery draws")
	c.Flags().Int64Var(&simulationHorizon, "horizon", math.MaxInt64, "Total simulation horizon (in ticks)")
	c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Kernel
	c.Flags().Int64Var(&interval, "interval", 1, "Clock units advanced per tick")
	c.Flags().IntVar(&maxProcesses, "max-processes", sim.DefaultMaxProcesses, "Maximum number of live processes")
	c.Flags().IntVar(&wheelSize, "wheel-size", 8, "Timing wheel slot count")
	c.Flags().Int64Var(&wheelResolution, "wheel-resolution", 1, "Clock units per timing wheel tick")

	// Policy parameters
	c.Flags().Int64Var(&quantum, "quantum", sim.DefaultQuantum, "Round-robin time slice (ticks)")
	c.Flags().Int64SliceVar(&mlfqQuanta, "mlfq-quanta", sim.DefaultMLFQQuanta[:], "MLFQ time slices for levels 0 and 1")
	c.Flags().Int64Var(&ticketMultiplier, "ticket-multiplier", sim.DefaultTicketMultiplier, "Lottery tickets per unit of process weight")
	c.Flags().StringVar(&policyConfigPath, "policy-config", "", "YAML policy bundle; explicitly set flags take precedence")

	// Workload
	c.Flags().StringVar(&workloadSpecPath, "workload-spec", "", "YAML workload spec (overrides --scenario)")
	c.Flags().StringVar(&scenarioName, "scenario", "convoy", "Built-in workload preset (bursty, convoy, interactive, weighted)")
	c.Flags().IntVar(&numProcesses, "num-processes", 20, "Number of processes generated by the preset")
}

// init sets up CLI flags and subcommands
func init() {
	registerSharedFlags(runCmd)
	runCmd.Flags().StringVar(&schedulerName, "scheduler", "fcfs", "Scheduling policy (fcfs, sjf, stcf, rr, mlfq, lottery)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Dispatch trace verbosity (none, decisions)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Write the JSON report to this file")

	registerSharedFlags(compareCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}

// Collects per-process outcomes and run-wide statistics once a kernel stops,
// and renders them as a table or JSON.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
)

// ProcessResult is the reported outcome of one process.
type ProcessResult struct {
	ID             ProcessID `json:"pid"`
	Name           string    `json:"name"`
	Weight         int64     `json:"weight"`
	ArrivalTick    int64     `json:"arrival_tick"`
	BurstTime      int64     `json:"burst_time"`
	CPUTime        int64     `json:"cpu_time"`
	BlockedTime    int64     `json:"blocked_time"`
	ResponseTime   int64     `json:"response_time"`
	CompletionTick int64     `json:"completion_tick"`
	TurnaroundTime int64     `json:"turnaround_time"`
	WaitTime       int64     `json:"wait_time"`
	Complete       bool      `json:"complete"`
}

// Metrics aggregates the results of one run for final reporting.
type Metrics struct {
	RunID     string `json:"run_id"`
	Scheduler string `json:"scheduler"`

	SimEndedTick        int64 `json:"sim_ended_tick"`
	CompletedProcesses  int   `json:"completed_processes"`
	IncompleteProcesses int   `json:"incomplete_processes"`

	MeanResponse   float64 `json:"mean_response"`
	MeanTurnaround float64 `json:"mean_turnaround"`
	MeanWait       float64 `json:"mean_wait"`
	P95Turnaround  float64 `json:"p95_turnaround"`

	Throughput      float64 `json:"throughput"`  // completed processes per tick
	Utilization     float64 `json:"utilization"` // fraction of ticks the processor was busy
	ContextSwitches int     `json:"context_switches"`
	Dispatches      int     `json:"dispatches"`

	// Completed processes in completion order, followed by any still live.
	Processes []ProcessResult `json:"processes"`
}

func newProcessResult(p *Process) ProcessResult {
	r := ProcessResult{
		ID:           p.ID,
		Name:         p.Name,
		Weight:       p.Weight,
		ArrivalTick:  p.ArrivalTick,
		BurstTime:    p.BurstTime,
		CPUTime:      p.CPUTime,
		BlockedTime:  p.BlockedTime,
		ResponseTime: p.ResponseTime,
		Complete:     p.Complete,
	}
	if p.Complete {
		r.CompletionTick = p.CompletionTick
		r.TurnaroundTime = p.TurnaroundTime
		r.WaitTime = p.WaitTime()
	}
	return r
}

// CollectMetrics summarizes the state of k after Run returned.
// Averages cover completed processes only; processes cut off by the
// horizon are listed but counted as incomplete.
func CollectMetrics(k *Kernel, runID string) *Metrics {
	m := &Metrics{
		RunID:           runID,
		Scheduler:       k.Scheduler().Name(),
		SimEndedTick:    k.Clock,
		ContextSwitches: k.Stats.ContextSwitches,
		Dispatches:      k.Stats.Dispatches,
	}

	var responses, turnarounds, waits []int64
	for _, p := range k.Retired {
		r := newProcessResult(p)
		m.Processes = append(m.Processes, r)
		m.CompletedProcesses++
		turnarounds = append(turnarounds, r.TurnaroundTime)
		waits = append(waits, r.WaitTime)
		// A process with no work never reached the processor.
		if p.ResponseSet {
			responses = append(responses, r.ResponseTime)
		}
	}
	for _, p := range k.Live() {
		m.Processes = append(m.Processes, newProcessResult(p))
		m.IncompleteProcesses++
	}

	m.MeanResponse = CalculateMean(responses)
	m.MeanTurnaround = CalculateMean(turnarounds)
	m.MeanWait = CalculateMean(waits)
	m.P95Turnaround = CalculatePercentile(turnarounds, 95)

	if ticks := k.Clock / k.Config().Interval; ticks > 0 {
		m.Throughput = float64(m.CompletedProcesses) / float64(k.Clock)
		m.Utilization = float64(k.Stats.BusyTicks) / float64(ticks)
	}
	return m
}

// PrintTable writes a per-process table with the run averages as footer.
func (m *Metrics) PrintTable(w io.Writer) {
	_, _ = fmt.Fprintf(w, "=== Schedule (%s) ===\n", m.Scheduler)
	rows := make([][]string, 0, len(m.Processes))
	for _, r := range m.Processes {
		completion, turnaround, wait := "-", "-", "-"
		if r.Complete {
			completion = strconv.FormatInt(r.CompletionTick, 10)
			turnaround = strconv.FormatInt(r.TurnaroundTime, 10)
			wait = strconv.FormatInt(r.WaitTime, 10)
		}
		rows = append(rows, []string{
			strconv.Itoa(int(r.ID)),
			r.Name,
			strconv.FormatInt(r.Weight, 10),
			strconv.FormatInt(r.ArrivalTick, 10),
			strconv.FormatInt(r.BurstTime, 10),
			strconv.FormatInt(r.ResponseTime, 10),
			wait,
			turnaround,
			completion,
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Name", "Weight", "Arrival", "Burst", "Response", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "",
		fmt.Sprintf("Average\n%.2f", m.MeanResponse),
		fmt.Sprintf("Average\n%.2f", m.MeanWait),
		fmt.Sprintf("Average\n%.2f", m.MeanTurnaround),
		fmt.Sprintf("Throughput\n%.3f/t", m.Throughput)})
	table.Render()

	_, _ = fmt.Fprintf(w, "Completed: %d  Incomplete: %d  Utilization: %.1f%%  Context switches: %d\n",
		m.CompletedProcesses, m.IncompleteProcesses, 100*m.Utilization, m.ContextSwitches)
}

// WriteJSON writes the metrics as indented JSON.
func (m *Metrics) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}
	return nil
}

// SaveResults prints the table to w and, if outputPath is set, writes the JSON report there.
func (m *Metrics) SaveResults(w io.Writer, outputPath string) error {
	m.PrintTable(w)
	if outputPath == "" {
		return nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Errorf("closing %s: %v", outputPath, closeErr)
		}
	}()
	if err := m.WriteJSON(file); err != nil {
		return err
	}
	logrus.Infof("Metrics written to: %s", outputPath)
	return nil
}

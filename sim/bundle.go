package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PolicyBundle holds policy and kernel configuration loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and leave the current value alone,
// so an explicit zero is distinguishable from an omitted key.
// The scheduler name uses empty string for "not set".
type PolicyBundle struct {
	Scheduler        string       `yaml:"scheduler"`
	Quantum          *int64       `yaml:"quantum"`
	MLFQQuanta       []int64      `yaml:"mlfq_quanta"`
	TicketMultiplier *int64       `yaml:"ticket_multiplier"`
	Kernel           KernelBundle `yaml:"kernel"`
}

// KernelBundle holds the kernel section of a PolicyBundle.
type KernelBundle struct {
	Interval        *int64 `yaml:"interval"`
	MaxProcesses    *int   `yaml:"max_processes"`
	WheelSize       *int   `yaml:"wheel_size"`
	WheelResolution *int64 `yaml:"wheel_resolution"`
	Horizon         *int64 `yaml:"horizon"`
}

// LoadPolicyBundle reads and parses a YAML policy configuration file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadPolicyBundle(path string) (*PolicyBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy config: %w", err)
	}
	var bundle PolicyBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing policy config: %w", err)
	}
	return &bundle, nil
}

// Validate checks the scheduler name and parameter ranges of every set field.
func (b *PolicyBundle) Validate() error {
	if !IsValidScheduler(b.Scheduler) {
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, b.Scheduler)
	}
	if b.Quantum != nil && *b.Quantum <= 0 {
		return fmt.Errorf("quantum must be > 0, got %d", *b.Quantum)
	}
	if len(b.MLFQQuanta) != 0 && len(b.MLFQQuanta) != MLFQLevels-1 {
		return fmt.Errorf("mlfq_quanta must list %d values, got %d", MLFQLevels-1, len(b.MLFQQuanta))
	}
	for i, q := range b.MLFQQuanta {
		if q <= 0 {
			return fmt.Errorf("mlfq_quanta[%d] must be > 0, got %d", i, q)
		}
	}
	if b.TicketMultiplier != nil && *b.TicketMultiplier <= 0 {
		return fmt.Errorf("ticket_multiplier must be > 0, got %d", *b.TicketMultiplier)
	}
	kb := b.Kernel
	if kb.Interval != nil && *kb.Interval <= 0 {
		return fmt.Errorf("kernel.interval must be > 0, got %d", *kb.Interval)
	}
	if kb.MaxProcesses != nil && *kb.MaxProcesses <= 0 {
		return fmt.Errorf("kernel.max_processes must be > 0, got %d", *kb.MaxProcesses)
	}
	if kb.WheelSize != nil && *kb.WheelSize <= 0 {
		return fmt.Errorf("kernel.wheel_size must be > 0, got %d", *kb.WheelSize)
	}
	if kb.WheelResolution != nil && *kb.WheelResolution <= 0 {
		return fmt.Errorf("kernel.wheel_resolution must be > 0, got %d", *kb.WheelResolution)
	}
	if kb.Horizon != nil && *kb.Horizon <= 0 {
		return fmt.Errorf("kernel.horizon must be > 0, got %d", *kb.Horizon)
	}
	return nil
}

// ApplyPolicy overwrites the fields of cfg that the bundle sets.
func (b *PolicyBundle) ApplyPolicy(cfg *PolicyConfig) {
	if b.Scheduler != "" {
		cfg.Scheduler = b.Scheduler
	}
	if b.Quantum != nil {
		cfg.Quantum = *b.Quantum
	}
	if len(b.MLFQQuanta) == MLFQLevels-1 {
		copy(cfg.MLFQQuanta[:], b.MLFQQuanta)
	}
	if b.TicketMultiplier != nil {
		cfg.TicketMultiplier = *b.TicketMultiplier
	}
}

// ApplyKernel overwrites the fields of cfg that the bundle sets.
func (b *PolicyBundle) ApplyKernel(cfg *KernelConfig) {
	kb := b.Kernel
	if kb.Interval != nil {
		cfg.Interval = *kb.Interval
	}
	if kb.MaxProcesses != nil {
		cfg.MaxProcesses = *kb.MaxProcesses
	}
	if kb.WheelSize != nil {
		cfg.WheelSize = *kb.WheelSize
	}
	if kb.WheelResolution != nil {
		cfg.WheelResolution = *kb.WheelResolution
	}
	if kb.Horizon != nil {
		cfg.Horizon = *kb.Horizon
	}
}

// Package workload describes the processes fed to a simulation run: an
// explicit list loaded from YAML, synthetic clients sampled from length and
// arrival distributions, or both.
package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// WorkloadSpec is the top-level workload configuration.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version   string        `yaml:"version"`
	Seed      int64         `yaml:"seed"`
	Processes []ProcessSpec `yaml:"processes,omitempty"`
	Clients   []ClientSpec  `yaml:"clients,omitempty"`
	Horizon   int64         `yaml:"horizon,omitempty"` // synthetic arrivals stop before this tick; 0 = unbounded
}

// ProcessSpec is one explicitly listed process.
type ProcessSpec struct {
	Name     string        `yaml:"name"`
	Arrival  int64         `yaml:"arrival"`
	Weight   *int64        `yaml:"weight,omitempty"` // nil = 1
	Segments []SegmentSpec `yaml:"segments"`
}

// SegmentSpec is one execution segment of a ProcessSpec.
type SegmentSpec struct {
	Kind     string `yaml:"kind"` // "cpu" or "io"
	Duration int64  `yaml:"duration"`
}

// ClientSpec generates Count processes with sampled arrivals and segment lengths.
// Each process alternates CPU and I/O segments, starting and ending on CPU:
// Bursts CPU segments separated by Bursts-1 I/O segments.
type ClientSpec struct {
	ID      string      `yaml:"id"`
	Count   int         `yaml:"count"`
	Weight  int64       `yaml:"weight,omitempty"` // 0 = 1
	Bursts  int         `yaml:"bursts,omitempty"` // 0 = 1
	Arrival ArrivalSpec `yaml:"arrival"`
	CPUDist DistSpec    `yaml:"cpu_distribution"`
	IODist  *DistSpec   `yaml:"io_distribution,omitempty"` // required when Bursts > 1
}

// ArrivalSpec configures the inter-arrival process of a client.
type ArrivalSpec struct {
	Process string   `yaml:"process"` // "poisson", "gamma" or "constant"
	Rate    float64  `yaml:"rate"`    // processes per tick
	CV      *float64 `yaml:"cv,omitempty"`
}

// DistSpec parameterizes a segment length distribution.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// Valid value registries.
var (
	validArrivalProcesses = map[string]bool{
		"poisson": true, "gamma": true, "constant": true,
	}
	validDistTypes = map[string]bool{
		"gaussian": true, "exponential": true, "constant": true,
	}
	validSegmentKinds = map[string]bool{
		"cpu": true, "io": true,
	}
)

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *WorkloadSpec) Validate() error {
	if s.Version != "" && s.Version != "1" {
		return fmt.Errorf("unsupported workload version %q", s.Version)
	}
	if len(s.Processes) == 0 && len(s.Clients) == 0 {
		return fmt.Errorf("at least one process or client required")
	}
	if s.Horizon < 0 {
		return fmt.Errorf("horizon must be non-negative, got %d", s.Horizon)
	}
	for i := range s.Processes {
		if err := validateProcess(&s.Processes[i], i); err != nil {
			return err
		}
	}
	for i := range s.Clients {
		if err := validateClient(&s.Clients[i], i); err != nil {
			return err
		}
	}
	return nil
}

func validateProcess(p *ProcessSpec, idx int) error {
	prefix := fmt.Sprintf("processes[%d]", idx)
	if p.Arrival < 0 {
		return fmt.Errorf("%s: arrival must be non-negative, got %d", prefix, p.Arrival)
	}
	if p.Weight != nil && *p.Weight < 0 {
		return fmt.Errorf("%s: weight must be non-negative, got %d", prefix, *p.Weight)
	}
	for j, seg := range p.Segments {
		if !validSegmentKinds[seg.Kind] {
			return fmt.Errorf("%s.segments[%d]: unknown kind %q; valid: cpu, io", prefix, j, seg.Kind)
		}
		if seg.Duration <= 0 {
			return fmt.Errorf("%s.segments[%d]: duration must be positive, got %d", prefix, j, seg.Duration)
		}
	}
	return nil
}

func validateClient(c *ClientSpec, idx int) error {
	prefix := fmt.Sprintf("clients[%d]", idx)
	if c.Count <= 0 {
		return fmt.Errorf("%s: count must be positive, got %d", prefix, c.Count)
	}
	if c.Weight < 0 {
		return fmt.Errorf("%s: weight must be non-negative, got %d", prefix, c.Weight)
	}
	if c.Bursts < 0 {
		return fmt.Errorf("%s: bursts must be non-negative, got %d", prefix, c.Bursts)
	}
	if !validArrivalProcesses[c.Arrival.Process] {
		return fmt.Errorf("%s: unknown arrival process %q; valid: poisson, gamma, constant", prefix, c.Arrival.Process)
	}
	if err := validateFinitePositive(prefix+".arrival.rate", c.Arrival.Rate); err != nil {
		return err
	}
	if c.Arrival.CV != nil {
		if err := validateFinitePositive(prefix+".arrival.cv", *c.Arrival.CV); err != nil {
			return err
		}
	}
	if err := validateDistSpec(prefix+".cpu_distribution", &c.CPUDist); err != nil {
		return err
	}
	if c.Bursts > 1 && c.IODist == nil {
		return fmt.Errorf("%s: io_distribution required when bursts > 1", prefix)
	}
	if c.IODist != nil {
		if err := validateDistSpec(prefix+".io_distribution", c.IODist); err != nil {
			return err
		}
	}
	return nil
}

func validateDistSpec(prefix string, d *DistSpec) error {
	if !validDistTypes[d.Type] {
		return fmt.Errorf("%s: unknown distribution type %q; valid: gaussian, exponential, constant", prefix, d.Type)
	}
	for name, val := range d.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%s.params.%s must be a finite number, got %f", prefix, name, val)
		}
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}

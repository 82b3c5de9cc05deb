package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultKernelConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultKernelConfig().Validate())
}

func TestKernelConfig_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*KernelConfig)
	}{
		{"zero interval", func(c *KernelConfig) { c.Interval = 0 }},
		{"zero max processes", func(c *KernelConfig) { c.MaxProcesses = 0 }},
		{"zero wheel size", func(c *KernelConfig) { c.WheelSize = 0 }},
		{"zero wheel resolution", func(c *KernelConfig) { c.WheelResolution = 0 }},
		{"interval not a multiple of resolution", func(c *KernelConfig) { c.Interval = 3; c.WheelResolution = 2 }},
		{"zero horizon", func(c *KernelConfig) { c.Horizon = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultKernelConfig()
			tc.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestKernelConfig_Validate_IntervalMultipleOfResolution(t *testing.T) {
	cfg := DefaultKernelConfig()
	cfg.Interval = 4
	cfg.WheelResolution = 2
	assert.NoError(t, cfg.Validate())
}

func TestDefaultPolicyConfig(t *testing.T) {
	cfg := DefaultPolicyConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "fcfs", cfg.Scheduler)
	assert.Equal(t, [MLFQLevels - 1]int64{2, 4}, cfg.MLFQQuanta)
}

func TestPolicyConfig_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*PolicyConfig)
	}{
		{"unknown scheduler", func(c *PolicyConfig) { c.Scheduler = "edf" }},
		{"zero quantum", func(c *PolicyConfig) { c.Quantum = 0 }},
		{"zero mlfq quantum", func(c *PolicyConfig) { c.MLFQQuanta[1] = 0 }},
		{"zero multiplier", func(c *PolicyConfig) { c.TicketMultiplier = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultPolicyConfig()
			tc.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPolicyConfig_Validate_UnknownScheduler_IsUnknownPolicy(t *testing.T) {
	cfg := DefaultPolicyConfig()
	cfg.Scheduler = "edf"
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownPolicy)
}

package workload

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/schedsim/schedsim/sim"
)

// GenerateProcesses builds the process list of a WorkloadSpec.
// Deterministic given the same spec (including its seed). Returns unadmitted
// processes sorted by ArrivalTick; explicit processes precede generated ones
// arriving in the same tick.
func GenerateProcesses(spec *WorkloadSpec) ([]*sim.Process, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload spec: %w", err)
	}

	var all []*sim.Process
	for i := range spec.Processes {
		all = append(all, buildProcess(&spec.Processes[i], i))
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	workloadRNG := rng.ForSubsystem(sim.SubsystemWorkload)
	for i := range spec.Clients {
		client := &spec.Clients[i]
		// Per-client RNG derived from the workload stream, so adding a client
		// does not reshuffle the ones before it.
		clientRNG := rand.New(rand.NewSource(workloadRNG.Int63()))
		procs, err := generateClient(client, i, spec.Horizon, clientRNG)
		if err != nil {
			return nil, err
		}
		all = append(all, procs...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ArrivalTick < all[j].ArrivalTick
	})
	return all, nil
}

func buildProcess(ps *ProcessSpec, idx int) *sim.Process {
	name := ps.Name
	if name == "" {
		name = fmt.Sprintf("p%d", idx)
	}
	p := sim.NewProcess(name)
	for _, seg := range ps.Segments {
		if seg.Kind == string(sim.IOBound) {
			p.AppendTask(sim.IO(seg.Duration))
		} else {
			p.AppendTask(sim.CPU(seg.Duration))
		}
	}
	p.ArrivalTick = ps.Arrival
	if ps.Weight != nil {
		p.Weight = *ps.Weight
	}
	return p
}

func generateClient(c *ClientSpec, idx int, horizon int64, rng *rand.Rand) ([]*sim.Process, error) {
	id := c.ID
	if id == "" {
		id = fmt.Sprintf("client%d", idx)
	}
	cpuSampler, err := NewLengthSampler(c.CPUDist)
	if err != nil {
		return nil, fmt.Errorf("client %q cpu distribution: %w", id, err)
	}
	var ioSampler LengthSampler
	if c.IODist != nil {
		if ioSampler, err = NewLengthSampler(*c.IODist); err != nil {
			return nil, fmt.Errorf("client %q io distribution: %w", id, err)
		}
	}
	arrivals := NewArrivalSampler(c.Arrival)
	bursts := max(c.Bursts, 1)

	var out []*sim.Process
	tick := int64(0)
	for n := 0; n < c.Count; n++ {
		if horizon > 0 && tick >= horizon {
			break
		}
		p := sim.NewProcess(fmt.Sprintf("%s-%d", id, n))
		for b := 0; b < bursts; b++ {
			if b > 0 {
				p.AppendTask(sim.IO(ioSampler.Sample(rng)))
			}
			p.AppendTask(sim.CPU(cpuSampler.Sample(rng)))
		}
		p.ArrivalTick = tick
		if c.Weight > 0 {
			p.Weight = c.Weight
		}
		out = append(out, p)
		tick += arrivals.SampleIAT(rng)
	}
	return out, nil
}

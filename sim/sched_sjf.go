package sim

// SJFScheduler runs the ready process with the shortest total burst time.
// Non-preemptive. Ties: earlier arrival, then earlier readiness.
// Warning: SJF can starve long processes under sustained load.
type SJFScheduler struct {
	BaseScheduler
	ready KeyedQueue
}

// NewSJFScheduler creates an empty SJF policy.
func NewSJFScheduler() *SJFScheduler {
	return &SJFScheduler{}
}

func (s *SJFScheduler) Name() string { return "sjf" }

func (s *SJFScheduler) OnReady(k *Kernel, id ProcessID) {
	if p, ok := k.Process(id); ok {
		s.ready.Push(id, p.BurstTime, p.ArrivalTick)
	}
}

func (s *SJFScheduler) Dispatch(k *Kernel) {
	k.SwitchTo(s.ready.Pop())
}

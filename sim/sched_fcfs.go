package sim

// FCFSScheduler runs processes to completion or blocking in the order they became ready.
type FCFSScheduler struct {
	BaseScheduler
	ready ReadyQueue
}

// NewFCFSScheduler creates an empty FCFS policy.
func NewFCFSScheduler() *FCFSScheduler {
	return &FCFSScheduler{}
}

func (f *FCFSScheduler) Name() string { return "fcfs" }

func (f *FCFSScheduler) OnReady(_ *Kernel, id ProcessID) {
	f.ready.Enqueue(id)
}

func (f *FCFSScheduler) Dispatch(k *Kernel) {
	k.SwitchTo(f.ready.Dequeue())
}

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// RoundRobinScheduler runs ready processes in FIFO order for at most
// Quantum consecutive ticks each before requeuing them at the tail.
type RoundRobinScheduler struct {
	Quantum int64

	ready ReadyQueue
	used  int64 // ticks the running process has used of its slice
}

// NewRoundRobinScheduler creates a round-robin policy. Panics if quantum is not positive.
func NewRoundRobinScheduler(quantum int64) *RoundRobinScheduler {
	if quantum <= 0 {
		panic(fmt.Sprintf("NewRoundRobinScheduler: quantum must be > 0, got %d", quantum))
	}
	return &RoundRobinScheduler{Quantum: quantum}
}

func (r *RoundRobinScheduler) Name() string { return "rr" }

func (r *RoundRobinScheduler) OnReady(_ *Kernel, id ProcessID) {
	r.ready.Enqueue(id)
}

func (r *RoundRobinScheduler) Dispatch(k *Kernel) {
	r.used = 0
	k.SwitchTo(r.ready.Dequeue())
}

// OnBurst charges the tick to the running slice and rotates on expiry.
func (r *RoundRobinScheduler) OnBurst(k *Kernel, id ProcessID) {
	r.used++
	if r.used < r.Quantum {
		return
	}
	logrus.Tracef("[tick %07d] rr: slice expired for pid=%d, ready=%s", k.Clock, id, &r.ready)
	k.MarkRunnable(id)
	r.ready.Enqueue(id)
	r.Dispatch(k)
}

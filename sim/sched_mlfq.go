package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// MLFQScheduler is a multi-level feedback queue with MLFQLevels FIFO levels,
// 0 being the highest priority. Every newly ready process, including one
// returning from a wait, enters level 0. Using up a level's quantum demotes
// the process one level. The lowest level has no quantum; a process there
// runs until it blocks unless a higher level has work, in which case it is
// requeued at the lowest level.
type MLFQScheduler struct {
	Quanta [MLFQLevels - 1]int64

	levels [MLFQLevels]ReadyQueue
	level  map[ProcessID]int
	used   int64 // ticks the running process has used at its current level
}

// NewMLFQScheduler creates an MLFQ policy with the given quanta for levels 0 and 1.
// Panics if a quantum is not positive.
func NewMLFQScheduler(quanta [MLFQLevels - 1]int64) *MLFQScheduler {
	for i, q := range quanta {
		if q <= 0 {
			panic(fmt.Sprintf("NewMLFQScheduler: quantum for level %d must be > 0, got %d", i, q))
		}
	}
	return &MLFQScheduler{
		Quanta: quanta,
		level:  make(map[ProcessID]int),
	}
}

func (m *MLFQScheduler) Name() string { return "mlfq" }

// Level returns the priority level id was last queued at.
func (m *MLFQScheduler) Level(id ProcessID) (int, bool) {
	l, ok := m.level[id]
	return l, ok
}

func (m *MLFQScheduler) OnReady(_ *Kernel, id ProcessID) {
	m.level[id] = 0
	m.levels[0].Enqueue(id)
}

// Dispatch runs the front of the highest non-empty level.
// A terminated outgoing process is forgotten, since its id may be reused.
func (m *MLFQScheduler) Dispatch(k *Kernel) {
	m.used = 0
	if prev, ok := k.RunningProcess(); ok && prev.IsComplete() {
		delete(m.level, prev.ID)
	}
	for i := range m.levels {
		if m.levels[i].Len() > 0 {
			k.SwitchTo(m.levels[i].Dequeue())
			return
		}
	}
	k.SwitchTo(NoProcess)
}

// OnBurst demotes on quantum expiry and preempts the lowest level for higher-level work.
func (m *MLFQScheduler) OnBurst(k *Kernel, id ProcessID) {
	m.used++
	lvl := m.level[id]
	lowest := MLFQLevels - 1

	if lvl < lowest {
		if m.used < m.Quanta[lvl] {
			return
		}
		logrus.Tracef("[tick %07d] mlfq: demote pid=%d %d -> %d", k.Clock, id, lvl, lvl+1)
		m.requeue(k, id, lvl+1)
		return
	}

	if m.pendingAbove(lowest) {
		logrus.Tracef("[tick %07d] mlfq: preempt pid=%d at lowest level, queued above: %s %s", k.Clock, id, &m.levels[0], &m.levels[1])
		m.requeue(k, id, lowest)
	}
}

func (m *MLFQScheduler) requeue(k *Kernel, id ProcessID, lvl int) {
	k.MarkRunnable(id)
	m.level[id] = lvl
	m.levels[lvl].Enqueue(id)
	m.Dispatch(k)
}

// pendingAbove reports whether any level above lvl has queued work.
func (m *MLFQScheduler) pendingAbove(lvl int) bool {
	for i := 0; i < lvl; i++ {
		if m.levels[i].Len() > 0 {
			return true
		}
	}
	return false
}

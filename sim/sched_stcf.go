package sim

import "github.com/sirupsen/logrus"

// STCFScheduler runs the ready process with the least remaining time and
// preempts the running process as soon as a ready one has strictly less.
type STCFScheduler struct {
	ready KeyedQueue
}

// NewSTCFScheduler creates an empty STCF policy.
func NewSTCFScheduler() *STCFScheduler {
	return &STCFScheduler{}
}

func (s *STCFScheduler) Name() string { return "stcf" }

func (s *STCFScheduler) OnReady(k *Kernel, id ProcessID) {
	if p, ok := k.Process(id); ok {
		s.ready.Push(id, p.RemainingTime, p.ArrivalTick)
	}
}

func (s *STCFScheduler) Dispatch(k *Kernel) {
	k.SwitchTo(s.ready.Pop())
}

// OnBurst preempts id when the best ready process needs strictly less time.
func (s *STCFScheduler) OnBurst(k *Kernel, id ProcessID) {
	best, ok := s.ready.PeekKey()
	if !ok {
		return
	}
	p, ok := k.Process(id)
	if !ok || best >= p.RemainingTime {
		return
	}
	logrus.Debugf("[tick %07d] stcf: preempt pid=%d remaining=%d for remaining=%d", k.Clock, id, p.RemainingTime, best)
	k.MarkRunnable(id)
	next := s.ready.Pop()
	s.ready.Push(id, p.RemainingTime, p.ArrivalTick)
	k.SwitchTo(next)
}

package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// LotteryScheduler is a proportional-share policy. Each process holds
// Weight × Multiplier tickets; the winner of a uniform draw over all
// tickets runs.
//
// The lottery is continuous: it is redrawn on every tick the running process
// bursts, with the running process back in the pool, rather than only when the
// processor falls idle. A process may therefore lose the processor after any tick.
type LotteryScheduler struct {
	Multiplier int64

	pool ReadyQueue
	rng  *rand.Rand
}

// NewLotteryScheduler creates a lottery policy drawing from rng.
// Panics if multiplier is not positive or rng is nil.
func NewLotteryScheduler(multiplier int64, rng *rand.Rand) *LotteryScheduler {
	if multiplier <= 0 {
		panic(fmt.Sprintf("NewLotteryScheduler: multiplier must be > 0, got %d", multiplier))
	}
	if rng == nil {
		panic("NewLotteryScheduler: rng must not be nil")
	}
	return &LotteryScheduler{Multiplier: multiplier, rng: rng}
}

func (l *LotteryScheduler) Name() string { return "lottery" }

func (l *LotteryScheduler) OnReady(_ *Kernel, id ProcessID) {
	l.pool.Enqueue(id)
}

// Dispatch runs the winner of a draw over the ready pool.
func (l *LotteryScheduler) Dispatch(k *Kernel) {
	winner := l.draw(k)
	if winner != NoProcess {
		l.pool.Remove(winner)
	}
	k.SwitchTo(winner)
}

// OnBurst returns id to the pool and redraws.
func (l *LotteryScheduler) OnBurst(k *Kernel, id ProcessID) {
	k.MarkRunnable(id)
	l.pool.Enqueue(id)
	l.Dispatch(k)
}

// draw picks a ticket holder with probability proportional to its tickets.
// Returns NoProcess if the pool holds no tickets.
func (l *LotteryScheduler) draw(k *Kernel) ProcessID {
	var total int64
	for _, id := range l.pool.Items() {
		if p, ok := k.Process(id); ok {
			total += p.Tickets(l.Multiplier)
		}
	}
	if total <= 0 {
		return NoProcess
	}
	ticket := l.rng.Int63n(total) + 1
	for _, id := range l.pool.Items() {
		p, ok := k.Process(id)
		if !ok {
			continue
		}
		ticket -= p.Tickets(l.Multiplier)
		if ticket <= 0 {
			return id
		}
	}
	logrus.Errorf("[tick %07d] lottery: draw fell through with total %d", k.Clock, total)
	return NoProcess
}

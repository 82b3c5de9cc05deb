package sim

import "container/heap"

// pendingArrival is a submitted process waiting for its arrival tick.
// seq preserves submission order among equal arrival ticks.
type pendingArrival struct {
	proc *Process
	seq  int64
}

// ArrivalQueue implements heap.Interface and orders pending arrivals by tick.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type ArrivalQueue []pendingArrival

func (aq ArrivalQueue) Len() int { return len(aq) }
func (aq ArrivalQueue) Less(i, j int) bool {
	if aq[i].proc.ArrivalTick != aq[j].proc.ArrivalTick {
		return aq[i].proc.ArrivalTick < aq[j].proc.ArrivalTick
	}
	return aq[i].seq < aq[j].seq
}
func (aq ArrivalQueue) Swap(i, j int) { aq[i], aq[j] = aq[j], aq[i] }

func (aq *ArrivalQueue) Push(x any) {
	*aq = append(*aq, x.(pendingArrival))
}

func (aq *ArrivalQueue) Pop() any {
	old := *aq
	n := len(old)
	item := old[n-1]
	old[n-1] = pendingArrival{}
	*aq = old[0 : n-1]
	return item
}

// popDue removes and returns the earliest pending process whose arrival tick is <= now.
func (aq *ArrivalQueue) popDue(now int64) (*Process, bool) {
	if aq.Len() == 0 || (*aq)[0].proc.ArrivalTick > now {
		return nil, false
	}
	return heap.Pop(aq).(pendingArrival).proc, true
}

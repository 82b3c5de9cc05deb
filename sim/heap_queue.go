package sim

import "container/heap"

// keyedEntry is a ready process with the key it was queued under.
type keyedEntry struct {
	id      ProcessID
	key     int64
	arrival int64
	seq     int64
}

// KeyedQueue is a min-heap of process ids ordered by key, then arrival tick,
// then insertion order for determinism. Keys are snapshotted at insertion:
// a queued process does not run, so its key cannot go stale.
type KeyedQueue struct {
	entries keyedHeap
	seq     int64
}

// Push queues id under key.
func (q *KeyedQueue) Push(id ProcessID, key, arrival int64) {
	heap.Push(&q.entries, keyedEntry{id: id, key: key, arrival: arrival, seq: q.seq})
	q.seq++
}

// Pop removes and returns the id with the smallest key.
// Returns NoProcess if the queue is empty.
func (q *KeyedQueue) Pop() ProcessID {
	if len(q.entries) == 0 {
		return NoProcess
	}
	return heap.Pop(&q.entries).(keyedEntry).id
}

// PeekKey returns the smallest key, or false if the queue is empty.
func (q *KeyedQueue) PeekKey() (int64, bool) {
	if len(q.entries) == 0 {
		return 0, false
	}
	return q.entries[0].key, true
}

// Len returns the number of queued ids.
func (q *KeyedQueue) Len() int {
	return len(q.entries)
}

type keyedHeap []keyedEntry

func (h keyedHeap) Len() int { return len(h) }
func (h keyedHeap) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	if h[i].arrival != h[j].arrival {
		return h[i].arrival < h[j].arrival
	}
	return h[i].seq < h[j].seq
}
func (h keyedHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *keyedHeap) Push(x any) {
	*h = append(*h, x.(keyedEntry))
}

func (h *keyedHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

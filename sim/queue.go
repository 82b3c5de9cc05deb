// Implements the ReadyQueue, which holds the ids of processes waiting for the processor.
// Processes are enqueued on admission, on timeout expiry, and on preemption.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is a FIFO queue of process ids.
// Policies hold ids only; the process itself stays in the kernel's table.
type ReadyQueue struct {
	queue []ProcessID
}

// Enqueue adds an id to the back of the queue.
func (rq *ReadyQueue) Enqueue(id ProcessID) {
	rq.queue = append(rq.queue, id)
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, id := range rq.queue {
		sb.WriteString(fmt.Sprint(id))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of queued ids.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Items returns the queue contents for iteration.
// Callers MUST NOT append to or reslice the returned slice.
func (rq *ReadyQueue) Items() []ProcessID {
	return rq.queue
}

// Dequeue removes and returns the id at the front of the queue.
// Returns NoProcess if the queue is empty.
func (rq *ReadyQueue) Dequeue() ProcessID {
	if len(rq.queue) == 0 {
		return NoProcess
	}
	id := rq.queue[0]
	rq.queue = rq.queue[1:]
	return id
}

// Remove deletes the first occurrence of id, preserving order.
// Returns false if id is not queued.
func (rq *ReadyQueue) Remove(id ProcessID) bool {
	for i, q := range rq.queue {
		if q == id {
			rq.queue = append(rq.queue[:i], rq.queue[i+1:]...)
			return true
		}
	}
	return false
}

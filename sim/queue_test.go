package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadyQueue_Empty_ReturnsNoProcess(t *testing.T) {
	// GIVEN an empty queue
	rq := &ReadyQueue{}

	// THEN Dequeue returns NoProcess and the queue renders empty
	assert.Equal(t, NoProcess, rq.Dequeue())
	assert.Equal(t, "[]", rq.String())
}

func TestReadyQueue_String_ListsIdsInOrder(t *testing.T) {
	// GIVEN a queue with ids [9, 1, 2]
	rq := &ReadyQueue{}
	for _, id := range []ProcessID{9, 1, 2} {
		rq.Enqueue(id)
	}

	// THEN the rendering follows queue order
	assert.Equal(t, []ProcessID{9, 1, 2}, rq.Items())
	assert.Equal(t, "[9 1 2]", rq.String())
}

func TestReadyQueue_DequeueAndRemove_PreserveFIFO(t *testing.T) {
	// GIVEN a queue with ids [1, 2, 3, 4]
	rq := &ReadyQueue{}
	for _, id := range []ProcessID{1, 2, 3, 4} {
		rq.Enqueue(id)
	}

	// WHEN 3 is removed and the front dequeued
	assert.True(t, rq.Remove(3))
	assert.False(t, rq.Remove(42))
	front := rq.Dequeue()

	// THEN the rest keeps arrival order
	assert.Equal(t, ProcessID(1), front)
	assert.Equal(t, []ProcessID{2, 4}, rq.Items())
}

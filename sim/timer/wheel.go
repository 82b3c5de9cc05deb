// Package timer provides a hashed timing wheel used by the kernel to wake
// waiting processes. Insertion is O(1) and each Tick touches only the slot
// the cursor lands on, so no global ordering of pending timeouts is kept.
//
// This package has no dependencies on sim/; it stores opaque items.
package timer

import "fmt"

const (
	// DefaultSize is the number of slots in a default wheel.
	DefaultSize = 8
	// DefaultResolution is the number of clock units one Tick covers.
	DefaultResolution = 1
)

// timeout pairs an item with the number of cursor visits to its slot that
// remain before it is due. An entry with rounds == 0 is due.
type timeout[T any] struct {
	item   T
	rounds int64
}

// Wheel is a fixed-size circular array of slots with a cursor advanced by Tick.
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type Wheel[T any] struct {
	slots      [][]timeout[T]
	cursor     int
	size       int
	resolution int64
	pending    int

	// CurrentTick is the clock position of the cursor, advanced by resolution per Tick.
	CurrentTick int64
}

// NewWheel creates a wheel with the given slot count and resolution.
// Panics if either is not positive.
func NewWheel[T any](size int, resolution int64) *Wheel[T] {
	if size <= 0 {
		panic(fmt.Sprintf("timer.NewWheel: size must be > 0, got %d", size))
	}
	if resolution <= 0 {
		panic(fmt.Sprintf("timer.NewWheel: resolution must be > 0, got %d", resolution))
	}
	return &Wheel[T]{
		slots:      make([][]timeout[T], size),
		size:       size,
		resolution: resolution,
	}
}

// NewDefaultWheel creates a wheel with DefaultSize slots and DefaultResolution.
func NewDefaultWheel[T any]() *Wheel[T] {
	return NewWheel[T](DefaultSize, DefaultResolution)
}

// AddTimeout schedules item to become due deadline clock units from now.
// A deadline of zero or less is due at the next Tick.
func (w *Wheel[T]) AddTimeout(item T, deadline int64) {
	ticks := (deadline + w.resolution - 1) / w.resolution
	if ticks < 1 {
		ticks = 1
	}
	slot := (w.cursor + int(ticks%int64(w.size))) % w.size
	// The cursor reaches slot once every size ticks; the last of those
	// visits is the one at which the deadline elapses.
	rounds := (ticks-1)/int64(w.size) + 1
	w.slots[slot] = append(w.slots[slot], timeout[T]{item: item, rounds: rounds})
	w.pending++
}

// Tick advances the cursor one slot. Only entries in the slot the cursor
// reaches have their round counters decremented.
func (w *Wheel[T]) Tick() {
	w.CurrentTick += w.resolution
	w.cursor = (w.cursor + 1) % w.size
	slot := w.slots[w.cursor]
	for i := range slot {
		if slot[i].rounds > 0 {
			slot[i].rounds--
		}
	}
}

// ExpireTimeout pops one due item from the current slot.
// Due items leave in insertion order; call repeatedly to drain a tick.
func (w *Wheel[T]) ExpireTimeout() (T, bool) {
	slot := w.slots[w.cursor]
	for i, t := range slot {
		if t.rounds == 0 {
			copy(slot[i:], slot[i+1:])
			var zero timeout[T]
			slot[len(slot)-1] = zero
			w.slots[w.cursor] = slot[:len(slot)-1]
			w.pending--
			return t.item, true
		}
	}
	var zero T
	return zero, false
}

// Len returns the number of pending timeouts, due or not.
func (w *Wheel[T]) Len() int {
	return w.pending
}

// Empty reports whether no timeouts are pending.
func (w *Wheel[T]) Empty() bool {
	return w.pending == 0
}

// Resolution returns the clock units covered by one Tick.
func (w *Wheel[T]) Resolution() int64 {
	return w.resolution
}

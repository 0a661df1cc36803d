package world

import (
	"slices"
	"time"
)

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id  TimerID
	due time.Duration
	fn  func()
}

// Timers runs callbacks after a delay measured in game time.
// It only advances when Update is called, so pausing the game pauses timers.
type Timers struct {
	now     time.Duration
	nextID  TimerID
	pending []*timer // Sorted by due time, then by scheduling order
}

// NewTimers creates an empty timer queue.
func NewTimers() *Timers {
	return &Timers{}
}

// After schedules fn to run once d of game time has passed.
func (t *Timers) After(d time.Duration, fn func()) TimerID {
	t.nextID++
	tm := &timer{id: t.nextID, due: t.now + max(d, 0), fn: fn}
	i, _ := slices.BinarySearchFunc(t.pending, tm, func(a, b *timer) int {
		if a.due <= b.due {
			return -1
		}
		return 1
	})
	t.pending = slices.Insert(t.pending, i, tm)
	return tm.id
}

// Cancel removes a pending callback. It reports whether one was removed.
func (t *Timers) Cancel(id TimerID) bool {
	i := slices.IndexFunc(t.pending, func(tm *timer) bool { return tm.id == id })
	if i < 0 {
		return false
	}
	t.pending = slices.Delete(t.pending, i, i+1)
	return true
}

// Update advances game time by dt and fires every callback that became due.
// Callbacks scheduled while firing run on a later Update at the earliest.
func (t *Timers) Update(dt time.Duration) {
	t.now += max(dt, 0)

	n := 0
	for n < len(t.pending) && t.pending[n].due <= t.now {
		n++
	}
	if n == 0 {
		return
	}
	due := slices.Clone(t.pending[:n])
	t.pending = slices.Delete(t.pending, 0, n)
	for _, tm := range due {
		tm.fn()
	}
}

// Len returns the number of pending callbacks.
func (t *Timers) Len() int {
	return len(t.pending)
}

// Clear drops every pending callback.
func (t *Timers) Clear() {
	t.pending = nil
}

package tui

import (
	"time"

	"github.com/vovakirdan/treasure-run/internal/core"
)

// holdWindow is how long a direction counts as held after its last key
// event. Terminals report key presses and auto-repeats but never releases.
const holdWindow = 250 * time.Millisecond

// holdTracker turns key events into held directions on game time.
type holdTracker struct {
	now       time.Duration
	until     map[core.Action]time.Duration
	jumpUntil time.Duration // Jump events before this are auto-repeats
}

func newHoldTracker() *holdTracker {
	return &holdTracker{until: make(map[core.Action]time.Duration)}
}

// press records a key event for a and reports whether it is a fresh press.
// A direction cancels its opposite. A jump event inside the hold window of
// the previous one is an auto-repeat of a key still down.
func (h *holdTracker) press(a core.Action) bool {
	switch a {
	case core.ActionLeft:
		delete(h.until, core.ActionRight)
	case core.ActionRight:
		delete(h.until, core.ActionLeft)
	case core.ActionJump:
		repeat := h.now < h.jumpUntil
		h.jumpUntil = h.now + holdWindow
		return !repeat
	default:
		return true
	}
	h.until[a] = h.now + holdWindow
	return true
}

// apply marks the directions still held in frame.
func (h *holdTracker) apply(frame *core.InputFrame) {
	for a, until := range h.until {
		if h.now < until {
			frame.Hold(a)
		}
	}
}

// advance moves game time forward and forgets expired directions.
func (h *holdTracker) advance(dt time.Duration) {
	h.now += dt
	for a, until := range h.until {
		if h.now >= until {
			delete(h.until, a)
		}
	}
}

// reset forgets every held direction.
func (h *holdTracker) reset() {
	clear(h.until)
	h.jumpUntil = 0
}

package world

import (
	"time"

	"github.com/vovakirdan/treasure-run/internal/core"
)

// RepeatForever makes an animation loop until another one is played.
const RepeatForever = -1

// Animation describes a frame sequence.
// Each frame is a string with one rune per body row, top to bottom;
// shorter frames wrap.
type Animation struct {
	Name      string
	Frames    []string
	FrameRate int        // Frames per second
	Repeat    int        // Extra plays after the first; RepeatForever loops
	Color     core.Color // Colour of every frame
}

// frameDuration returns how long a single frame is shown.
func (a Animation) frameDuration() time.Duration {
	if a.FrameRate <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(a.FrameRate)
}

// Animator plays animations from a fixed set and reports completion.
type Animator struct {
	anims   map[string]Animation
	current string
	frame   int           // Index into Frames
	elapsed time.Duration // Time spent on the current frame
	plays   int           // Completed passes over Frames
	done    bool          // Non-looping animation finished
	once    []func()      // Fired at the next completion
}

// NewAnimator creates an animator knowing the given animations.
func NewAnimator(anims ...Animation) *Animator {
	a := &Animator{anims: make(map[string]Animation, len(anims))}
	for _, anim := range anims {
		a.anims[anim.Name] = anim
	}
	return a
}

// Has reports whether the animation is known.
func (a *Animator) Has(name string) bool {
	_, ok := a.anims[name]
	return ok
}

// Play restarts the named animation from its first frame.
// Unknown names are ignored and reported with false.
func (a *Animator) Play(name string) bool {
	if _, ok := a.anims[name]; !ok {
		return false
	}
	a.current = name
	a.frame = 0
	a.elapsed = 0
	a.plays = 0
	a.done = false
	return true
}

// Current returns the name of the playing animation, or "" if none.
func (a *Animator) Current() string {
	return a.current
}

// Done reports whether the current non-looping animation has finished.
func (a *Animator) Done() bool {
	return a.done
}

// OnceComplete registers fn to run the next time any non-looping
// animation completes. Listeners survive Play calls.
func (a *Animator) OnceComplete(fn func()) {
	a.once = append(a.once, fn)
}

// Frame returns the frame being shown and its colour.
func (a *Animator) Frame() (string, core.Color) {
	anim, ok := a.anims[a.current]
	if !ok || len(anim.Frames) == 0 {
		return "", core.ColorDefault
	}
	return anim.Frames[a.frame], anim.Color
}

// Update advances the current animation by dt.
func (a *Animator) Update(dt time.Duration) {
	anim, ok := a.anims[a.current]
	if !ok || a.done || len(anim.Frames) == 0 {
		return
	}

	a.elapsed += dt
	step := anim.frameDuration()
	for a.elapsed >= step {
		a.elapsed -= step
		if a.frame+1 < len(anim.Frames) {
			a.frame++
			continue
		}

		a.plays++
		if anim.Repeat != RepeatForever && a.plays > anim.Repeat {
			a.done = true
			a.elapsed = 0
			a.complete()
			return
		}
		a.frame = 0
	}
}

// complete fires the pending listeners. Listeners registered while
// firing wait for the next completion.
func (a *Animator) complete() {
	listeners := a.once
	a.once = nil
	for _, fn := range listeners {
		fn()
	}
}

package world

import (
	"testing"
	"time"
)

func testAnimator() *Animator {
	return NewAnimator(
		Animation{Name: "idle", Frames: []string{"a", "b", "c"}, FrameRate: 10, Repeat: RepeatForever},
		Animation{Name: "hit", Frames: []string{"x", "y"}, FrameRate: 10, Repeat: 1},
	)
}

func TestAnimatorLoops(t *testing.T) {
	a := testAnimator()
	a.Play("idle")

	a.Update(100 * time.Millisecond)
	if f, _ := a.Frame(); f != "b" {
		t.Errorf("frame = %q, expected b", f)
	}
	a.Update(200 * time.Millisecond)
	if f, _ := a.Frame(); f != "a" {
		t.Errorf("frame after wrap = %q, expected a", f)
	}
	if a.Done() {
		t.Error("looping animation should never be done")
	}
}

func TestAnimatorRepeatCompletes(t *testing.T) {
	a := testAnimator()
	fired := 0
	a.OnceComplete(func() { fired++ })
	a.Play("hit")

	// Two frames played twice at 10fps.
	a.Update(300 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("completed too early")
	}
	a.Update(100 * time.Millisecond)
	if fired != 1 {
		t.Errorf("fired = %d, expected 1", fired)
	}
	if !a.Done() {
		t.Error("animation should be done")
	}

	// Listeners are one-shot.
	a.Play("hit")
	a.Update(time.Second)
	if fired != 1 {
		t.Errorf("fired = %d after second play, expected 1", fired)
	}
}

func TestAnimatorListenerSurvivesPlay(t *testing.T) {
	a := testAnimator()
	fired := 0
	a.Play("hit")
	a.OnceComplete(func() { fired++ })
	a.Update(100 * time.Millisecond)

	a.Play("idle")
	a.Update(time.Second)
	if fired != 0 {
		t.Fatal("looping animation must not complete")
	}

	a.Play("hit")
	a.Update(time.Second)
	if fired != 1 {
		t.Errorf("fired = %d, expected 1", fired)
	}
}

func TestAnimatorUnknown(t *testing.T) {
	a := testAnimator()
	a.Play("idle")
	if a.Play("missing") {
		t.Error("Play(missing) should report false")
	}
	if a.Current() != "idle" {
		t.Errorf("Current() = %q, expected idle", a.Current())
	}
}

package world

import (
	"time"

	"github.com/vovakirdan/treasure-run/internal/core"
)

// BodyDef describes a body to be created by World.NewBody.
type BodyDef struct {
	Kind    string         // Tag read by collision handlers ("coin", "terrain", ...)
	Rect    core.Rect      // Initial bounds
	Static  bool           // Never moves
	Sensor  bool           // Reports contacts but never blocks movement
	Gravity bool           // Affected by world gravity (dynamic bodies only)
	Values  map[string]int // Extra integer properties, e.g. "health_points"
	Glyph   rune           // Shown when the body has no animation
	Color   core.Color

	Animations []Animation
	Initial    string // Animation played on creation
}

// Body is a rectangle simulated by a World.
type Body struct {
	id     core.EntityID
	world  *World
	kind   string
	rect   core.Rect
	vel    core.Vec
	static bool
	sensor bool

	gravity    bool
	collidable bool
	grounded   bool // Resting on a solid after the last step
	flipX      bool
	destroyed  bool
	outside    bool // Already reported as out of bounds

	values    map[string]int
	glyph     rune
	color     core.Color
	anim      *Animator
	onCollide func(other *Body)
}

// ID returns the body's identity.
func (b *Body) ID() core.EntityID { return b.id }

// Kind returns the body's tag.
func (b *Body) Kind() string { return b.kind }

// Value returns an integer property.
func (b *Body) Value(key string) (int, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Position returns the center of the body.
func (b *Body) Position() core.Vec { return b.rect.Center() }

// Bounds returns the body's rectangle.
func (b *Body) Bounds() core.Rect { return b.rect }

// Velocity returns the body's velocity in cells per second.
func (b *Body) Velocity() core.Vec { return b.vel }

// SetVelocityX sets the horizontal velocity.
func (b *Body) SetVelocityX(v float64) {
	if !b.static {
		b.vel.X = v
	}
}

// SetVelocityY sets the vertical velocity.
func (b *Body) SetVelocityY(v float64) {
	if !b.static {
		b.vel.Y = v
	}
}

// MoveTo places the top-left corner of the body at p.
func (b *Body) MoveTo(p core.Vec) {
	b.rect.X, b.rect.Y = p.X, p.Y
}

// FlipX reports whether the body faces left.
func (b *Body) FlipX() bool { return b.flipX }

// SetFlipX makes the body face left (true) or right (false).
func (b *Body) SetFlipX(flip bool) { b.flipX = flip }

// Grounded reports whether the body rested on a solid after the last step.
func (b *Body) Grounded() bool { return b.grounded }

// Static reports whether the body never moves.
func (b *Body) Static() bool { return b.static }

// Sensor reports whether the body only reports contacts.
func (b *Body) Sensor() bool { return b.sensor }

// Play starts the named animation.
func (b *Body) Play(name string) {
	if b.anim == nil || !b.anim.Play(name) {
		b.world.logger.Warn("unknown animation", "body", b.id, "kind", b.kind, "animation", name)
	}
}

// Animation returns the name of the playing animation.
func (b *Body) Animation() string {
	if b.anim == nil {
		return ""
	}
	return b.anim.Current()
}

// OnceAnimationComplete runs fn the next time a non-looping animation
// of this body completes.
func (b *Body) OnceAnimationComplete(fn func()) {
	if b.anim != nil {
		b.anim.OnceComplete(fn)
	}
}

// SetCollidable enables or disables contact reporting for the body.
// A non-collidable body still rests on solids.
func (b *Body) SetCollidable(on bool) { b.collidable = on }

// Collidable reports whether contacts are reported for the body.
func (b *Body) Collidable() bool { return b.collidable }

// OnCollide sets the handler called when a contact with another body starts.
func (b *Body) OnCollide(fn func(other *Body)) { b.onCollide = fn }

// Destroy marks the body for removal at the end of the current step.
func (b *Body) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.collidable = false
}

// Destroyed reports whether the body was destroyed.
func (b *Body) Destroyed() bool { return b.destroyed }

// Appearance returns the runes (one per row) and colour used to draw the body.
func (b *Body) Appearance() (string, core.Color) {
	if b.anim != nil {
		if frame, c := b.anim.Frame(); frame != "" {
			if b.flipX {
				frame = mirror(frame)
			}
			return frame, c
		}
	}
	return string(b.glyph), b.color
}

func (b *Body) update(dt time.Duration) {
	if b.anim != nil {
		b.anim.Update(dt)
	}
}

var mirrored = map[rune]rune{
	'<': '>', '>': '<',
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'/': '\\', '\\': '/',
	'd': 'b', 'b': 'd',
	'p': 'q', 'q': 'p',
}

// mirror swaps direction-dependent glyphs.
func mirror(frame string) string {
	out := []rune(frame)
	for i, r := range out {
		if m, ok := mirrored[r]; ok {
			out[i] = m
		}
	}
	return string(out)
}

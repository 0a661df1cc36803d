// Package world is a small deterministic rigid-body simulation on a grid of
// terminal cells: gravity, axis-separated movement against static solids,
// collision-start contacts, sprite animation and game-time timers.
package world

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/treasure-run/internal/core"
)

const (
	// contactSlop is how far bodies may be apart and still touch.
	contactSlop = 0.05
	// maxSubstep bounds the distance a body moves per sub-step so it cannot
	// tunnel through one-cell tiles.
	maxSubstep = 0.5
)

// Physics holds world-wide simulation parameters.
type Physics struct {
	Gravity      float64 // Cells per second squared, positive is down
	MaxFallSpeed float64 // Terminal vertical speed; 0 means unbounded
	Friction     float64 // Horizontal deceleration while grounded
}

type cell struct{ x, y int }

// pair identifies a contact between two bodies, lower ID first.
type pair struct{ a, b core.EntityID }

func makePair(a, b core.EntityID) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// World owns every body of a level.
type World struct {
	width, height int
	physics       Physics

	nextID   core.EntityID
	bodies   []*Body           // Creation order
	solids   map[cell]*Body    // Static non-sensor bodies by covered cell
	contacts map[pair]struct{} // Contacts active after the last step
	onOut    func(*Body)

	logger *log.Logger
}

// New creates an empty world of the given size in cells.
func New(width, height int, physics Physics, opts ...Option) *World {
	w := &World{
		width:    width,
		height:   height,
		physics:  physics,
		solids:   make(map[cell]*Body),
		contacts: make(map[pair]struct{}),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Size returns the world dimensions in cells.
func (w *World) Size() (width, height int) {
	return w.width, w.height
}

// NewBody creates a body and adds it to the world.
func (w *World) NewBody(def BodyDef) *Body {
	w.nextID++
	b := &Body{
		id:         w.nextID,
		world:      w,
		kind:       def.Kind,
		rect:       def.Rect,
		static:     def.Static,
		sensor:     def.Sensor,
		gravity:    def.Gravity && !def.Static,
		collidable: true,
		values:     def.Values,
		glyph:      def.Glyph,
		color:      def.Color,
	}
	if len(def.Animations) > 0 {
		b.anim = NewAnimator(def.Animations...)
		if def.Initial != "" {
			b.anim.Play(def.Initial)
		}
	}
	if b.static && !b.sensor {
		x0, y0, x1, y1 := b.rect.Cells()
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				w.solids[cell{x, y}] = b
			}
		}
	}
	w.bodies = append(w.bodies, b)
	return b
}

// Bodies returns the live bodies in creation order.
// The slice must not be modified.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Body looks up a live body by ID.
func (w *World) Body(id core.EntityID) (*Body, bool) {
	for _, b := range w.bodies {
		if b.id == id && !b.destroyed {
			return b, true
		}
	}
	return nil, false
}

// SolidAt reports whether a static solid covers the cell.
func (w *World) SolidAt(x, y int) bool {
	b, ok := w.solids[cell{x, y}]
	return ok && !b.destroyed
}

// OnOutOfBounds sets the handler called once for each dynamic body that
// falls below the bottom of the world.
func (w *World) OnOutOfBounds(fn func(*Body)) {
	w.onOut = fn
}

// Step advances the simulation by dt: movement, contacts, animations,
// bounds and finally removal of destroyed bodies.
func (w *World) Step(dt time.Duration) {
	if s := dt.Seconds(); s > 0 {
		for _, b := range w.bodies {
			if b.static || b.destroyed {
				continue
			}
			w.integrate(b, s)
		}
	}

	w.detectContacts()

	for _, b := range w.bodies {
		if !b.destroyed {
			b.update(dt)
		}
	}

	w.checkBounds()
	w.sweep()
}

func (w *World) integrate(b *Body, s float64) {
	if b.gravity {
		b.vel.Y += w.physics.Gravity * s
		if w.physics.MaxFallSpeed > 0 {
			b.vel.Y = math.Min(b.vel.Y, w.physics.MaxFallSpeed)
		}
	}

	dx, dy := b.vel.X*s, b.vel.Y*s
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)) / maxSubstep))
	steps = max(steps, 1)

	b.grounded = false
	for range steps {
		w.moveX(b, dx/float64(steps))
		w.moveY(b, dy/float64(steps))
	}

	if b.grounded && w.physics.Friction > 0 {
		decel := w.physics.Friction * s
		if math.Abs(b.vel.X) <= decel {
			b.vel.X = 0
		} else {
			b.vel.X -= math.Copysign(decel, b.vel.X)
		}
	}
}

func (w *World) moveX(b *Body, d float64) {
	if d == 0 {
		return
	}
	next := b.rect
	next.X += d

	// World edges act as walls.
	if lim := float64(w.width) - next.W; next.X < 0 || next.X > lim {
		next.X = core.ClampF(next.X, 0, lim)
		b.vel.X = 0
	}

	if hits := w.solidsHit(b, next); len(hits) > 0 {
		if d > 0 {
			edge := math.Inf(1)
			for _, s := range hits {
				edge = math.Min(edge, s.rect.X)
			}
			next.X = edge - next.W
		} else {
			edge := math.Inf(-1)
			for _, s := range hits {
				edge = math.Max(edge, s.rect.Right())
			}
			next.X = edge
		}
		b.vel.X = 0
	}
	b.rect = next
}

func (w *World) moveY(b *Body, d float64) {
	if d == 0 {
		return
	}
	next := b.rect
	next.Y += d

	if hits := w.solidsHit(b, next); len(hits) > 0 {
		if d > 0 {
			edge := math.Inf(1)
			for _, s := range hits {
				edge = math.Min(edge, s.rect.Y)
			}
			next.Y = edge - next.H
			b.grounded = true
		} else {
			edge := math.Inf(-1)
			for _, s := range hits {
				edge = math.Max(edge, s.rect.Bottom())
			}
			next.Y = edge
		}
		b.vel.Y = 0
	}
	b.rect = next
}

// solidsHit returns the static solids overlapping r.
func (w *World) solidsHit(self *Body, r core.Rect) []*Body {
	var hits []*Body
	x0, y0, x1, y1 := r.Cells()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s, ok := w.solids[cell{x, y}]
			if !ok || s == self || s.destroyed || !s.rect.Intersects(r) {
				continue
			}
			hits = append(hits, s)
		}
	}
	return hits
}

// detectContacts finds touching pairs that involve at least one dynamic
// body and dispatches the ones that were not touching after the last step.
func (w *World) detectContacts() {
	active := make(map[pair]struct{}, len(w.contacts))
	var started [][2]*Body

	for _, a := range w.bodies {
		if a.static || a.destroyed || !a.collidable {
			continue
		}
		reach := a.rect.Expand(contactSlop)
		visit := func(o *Body) {
			if o == a || o.destroyed || !o.collidable || !reach.Intersects(o.rect) {
				return
			}
			k := makePair(a.id, o.id)
			if _, seen := active[k]; seen {
				return
			}
			active[k] = struct{}{}
			if _, was := w.contacts[k]; !was {
				started = append(started, [2]*Body{a, o})
			}
		}

		x0, y0, x1, y1 := reach.Cells()
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if s, ok := w.solids[cell{x, y}]; ok {
					visit(s)
				}
			}
		}
		for _, o := range w.bodies {
			if !o.static || o.sensor {
				visit(o)
			}
		}
	}
	w.contacts = active

	// Handlers may destroy bodies or disable collisions; later contacts
	// involving those bodies are dropped.
	for _, p := range started {
		a, o := p[0], p[1]
		if !a.collidable || !o.collidable {
			continue
		}
		if a.onCollide != nil {
			a.onCollide(o)
		}
		if !o.static && o.onCollide != nil && a.collidable && o.collidable {
			o.onCollide(a)
		}
	}
}

func (w *World) checkBounds() {
	for _, b := range w.bodies {
		if b.static || b.destroyed || b.outside {
			continue
		}
		if b.rect.Y > float64(w.height) {
			b.outside = true
			w.logger.Debug("body left the world", "body", b.id, "kind", b.kind)
			if w.onOut != nil {
				w.onOut(b)
			}
		}
	}
}

// sweep removes destroyed bodies.
func (w *World) sweep() {
	live := w.bodies[:0]
	var gone []core.EntityID
	for _, b := range w.bodies {
		if !b.destroyed {
			live = append(live, b)
			continue
		}
		gone = append(gone, b.id)
		if b.static && !b.sensor {
			x0, y0, x1, y1 := b.rect.Cells()
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					if w.solids[cell{x, y}] == b {
						delete(w.solids, cell{x, y})
					}
				}
			}
		}
	}
	clear(w.bodies[len(live):])
	w.bodies = live

	if len(gone) == 0 {
		return
	}
	for k := range w.contacts {
		for _, id := range gone {
			if k.a == id || k.b == id {
				delete(w.contacts, k)
				break
			}
		}
	}
}

// Draw renders every live body onto scr, shifted by the camera offset.
// Static bodies are drawn first so moving ones stay visible.
func (w *World) Draw(scr *core.Screen, offX, offY int) {
	for _, static := range []bool{true, false} {
		for _, b := range w.bodies {
			if b.destroyed || b.static != static {
				continue
			}
			w.drawBody(scr, b, offX, offY)
		}
	}
}

func (w *World) drawBody(scr *core.Screen, b *Body, offX, offY int) {
	frame, color := b.Appearance()
	runes := []rune(frame)
	if len(runes) == 0 {
		return
	}
	x := int(math.Round(b.rect.X)) - offX
	y := int(math.Round(b.rect.Y)) - offY
	cw := max(1, int(math.Round(b.rect.W)))
	ch := max(1, int(math.Round(b.rect.H)))
	for row := range ch {
		r := runes[row%len(runes)]
		for col := range cw {
			scr.SetColored(x+col, y+row, r, color)
		}
	}
}

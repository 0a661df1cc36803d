package actors

import (
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/treasure-run/internal/config"
	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/eventbus"
	"github.com/vovakirdan/treasure-run/internal/obstacles"
)

// fakeActor records what controllers do to their body.
type fakeActor struct {
	id         core.EntityID
	kind       string
	values     map[string]int
	rect       core.Rect
	vel        core.Vec
	flip       bool
	anim       string
	once       []func()
	collidable bool
	destroyed  bool
}

func newFakeActor(id core.EntityID, kind string, rect core.Rect) *fakeActor {
	return &fakeActor{id: id, kind: kind, rect: rect, collidable: true}
}

func (a *fakeActor) ID() core.EntityID {
	return a.id
}

func (a *fakeActor) Kind() string {
	return a.kind
}

func (a *fakeActor) Position() core.Vec {
	return a.rect.Center()
}

func (a *fakeActor) Bounds() core.Rect {
	return a.rect
}

func (a *fakeActor) Velocity() core.Vec {
	return a.vel
}

func (a *fakeActor) Play(anim string) {
	a.anim = anim
}

func (a *fakeActor) SetVelocityX(v float64) {
	a.vel.X = v
}

func (a *fakeActor) SetVelocityY(v float64) {
	a.vel.Y = v
}

func (a *fakeActor) FlipX() bool {
	return a.flip
}

func (a *fakeActor) SetFlipX(flip bool) {
	a.flip = flip
}

func (a *fakeActor) SetCollidable(on bool) {
	a.collidable = on
}

func (a *fakeActor) Destroy() {
	a.destroyed = true
}

func (a *fakeActor) Value(key string) (int, bool) {
	v, ok := a.values[key]
	return v, ok
}

func (a *fakeActor) OnceAnimationComplete(fn func()) {
	a.once = append(a.once, fn)
}

// completeAnimation fires the pending completion listeners.
func (a *fakeActor) completeAnimation() {
	listeners := a.once
	a.once = nil
	for _, fn := range listeners {
		fn()
	}
}

type delayed struct {
	d  time.Duration
	fn func()
}

// fakeEffects queues delayed callbacks until fire is called.
type fakeEffects struct {
	pending []delayed
	screens []string
}

func (f *fakeEffects) After(d time.Duration, fn func()) {
	f.pending = append(f.pending, delayed{d, fn})
}

func (f *fakeEffects) SwitchScreen(name string) {
	f.screens = append(f.screens, name)
}

func (f *fakeEffects) fire() {
	pending := f.pending
	f.pending = nil
	for _, p := range pending {
		p.fn()
	}
}

type testEnv struct {
	Env
	input   *core.InputFrame
	effects *fakeEffects
	trace   []string
}

func newTestEnv() *testEnv {
	in := core.NewInputFrame()
	te := &testEnv{input: &in, effects: &fakeEffects{}}
	te.Env = Env{
		Bus:       eventbus.New(nil),
		Obstacles: obstacles.New(),
		Input:     te.input,
		Effects:   te.effects,
		Config:    config.Default(),
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Observer: func(machine, from, to string) {
			te.trace = append(te.trace, machine+":"+from+">"+to)
		},
	}
	return te
}

// playerRect is where test players stand: feet on row 8.
var playerRect = core.NewRect(5, 6, 1, 2)

// Package scene wires the game together: it owns the per-session event bus
// and timers, builds levels into physics worlds with their controllers, and
// switches between the level, game-over and game-win screens.
package scene

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/treasure-run/internal/config"
	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/eventbus"
	"github.com/vovakirdan/treasure-run/internal/level"
	"github.com/vovakirdan/treasure-run/internal/world"
)

// RunResult summarises a finished run.
type RunResult struct {
	Level    string
	Coins    int
	Health   int
	Won      bool
	Stomps   int
	Duration time.Duration
}

// Options configures a Director.
type Options struct {
	Config config.Config
	Level  level.Level
	Seed   uint64
	Logger *log.Logger

	// OnRunEnd is called once for every run that ended in a win or a death.
	OnRunEnd func(RunResult)
}

// Director runs one game session. It implements actors.Effects: delayed
// callbacks run on game time, and screen switches requested during a tick
// are applied once the tick is over.
type Director struct {
	opts   Options
	logger *log.Logger
	bus    *eventbus.Bus
	timers *world.Timers
	rng    *rand.Rand

	current Scene
	pending string // Screen requested during the current tick
	lastRun *RunResult
}

// NewDirector creates a director. Call Start to enter the first scene.
func NewDirector(opts Options) *Director {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Director{
		opts:   opts,
		logger: logger,
		bus:    eventbus.New(logger.With("component", "bus")),
		timers: world.NewTimers(),
		rng:    rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}
}

// Start enters the named scene.
func (d *Director) Start(name string) error {
	return d.switchTo(name)
}

// Update advances the current scene and the timers, then applies any
// requested screen switch.
func (d *Director) Update(in core.InputFrame, dt time.Duration) error {
	if d.current == nil {
		return nil
	}

	d.current.Update(in, dt)
	if !d.Paused() {
		d.timers.Update(dt)
	}

	if d.pending != "" {
		name := d.pending
		d.pending = ""
		return d.switchTo(name)
	}
	return nil
}

// Render draws the current scene.
func (d *Director) Render(dst *core.Screen) {
	if d.current != nil {
		d.current.Render(dst)
	}
}

// Close exits the current scene and drops all subscriptions.
func (d *Director) Close() {
	if d.current != nil {
		d.current.Exit()
		d.current = nil
	}
	d.timers.Clear()
	d.bus.Reset()
}

func (d *Director) switchTo(name string) error {
	next, err := Create(name)
	if err != nil {
		return err
	}

	if d.current != nil {
		d.current.Exit()
	}
	d.timers.Clear()
	d.bus.Reset()

	d.current = next
	if err := next.Enter(d); err != nil {
		d.current = nil
		return fmt.Errorf("scene: entering %s: %w", name, err)
	}
	d.logger.Info("scene started", "scene", name)
	return nil
}

// After runs fn once d of game time has passed in the current scene.
// Pending callbacks are dropped when the scene changes.
func (d *Director) After(delay time.Duration, fn func()) {
	d.timers.After(delay, fn)
}

// SwitchScreen requests the named scene at the end of the current tick.
func (d *Director) SwitchScreen(name string) {
	d.pending = name
}

// Current returns the name of the current scene.
func (d *Director) Current() string {
	if d.current == nil {
		return ""
	}
	return d.current.Name()
}

// Paused reports whether the current scene is paused.
func (d *Director) Paused() bool {
	p, ok := d.current.(interface{ Paused() bool })
	return ok && p.Paused()
}

// State returns the status of the current scene.
func (d *Director) State() core.GameState {
	if s, ok := d.current.(interface{ State() core.GameState }); ok {
		return s.State()
	}
	return core.GameState{Finished: d.lastRun != nil, Won: d.lastRun != nil && d.lastRun.Won}
}

// LastRun returns the result of the latest finished run.
func (d *Director) LastRun() (RunResult, bool) {
	if d.lastRun == nil {
		return RunResult{}, false
	}
	return *d.lastRun, true
}

func (d *Director) recordRun(r RunResult) {
	d.lastRun = &r
	d.logger.Info("run finished",
		"level", r.Level,
		"coins", r.Coins,
		"won", r.Won,
		"stomps", r.Stomps,
		"duration", r.Duration.Round(time.Millisecond),
	)
	if d.opts.OnRunEnd != nil {
		d.opts.OnRunEnd(r)
	}
}

// Bus returns the session's event bus.
func (d *Director) Bus() *eventbus.Bus { return d.bus }

// Config returns the game configuration.
func (d *Director) Config() config.Config { return d.opts.Config }

// Level returns the level being played.
func (d *Director) Level() level.Level { return d.opts.Level }

// Rand returns the session's random source.
func (d *Director) Rand() *rand.Rand { return d.rng }

// Logger returns the session logger.
func (d *Director) Logger() *log.Logger { return d.logger }

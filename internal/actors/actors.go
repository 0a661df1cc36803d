// Package actors holds the behavioural controllers of the game: the player
// and the patrolling enemies. Each controller drives one physical body
// through its own fsm.Machine and coordinates with the others only through
// the event bus.
package actors

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/treasure-run/internal/config"
	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/eventbus"
	"github.com/vovakirdan/treasure-run/internal/fsm"
	"github.com/vovakirdan/treasure-run/internal/obstacles"
)

// Kind tags of collectible bodies.
const (
	KindCoin   = "coin"
	KindHealth = "health"
)

// ValueHealthPoints is the body property holding a potion's strength.
const ValueHealthPoints = "health_points"

// Screens requested through Effects.SwitchScreen.
const (
	ScreenGameOver = "game-over"
	ScreenGameWin  = "game-win"
)

// Animation names played on actor bodies.
const (
	AnimCaptainIdle    = "captain-idle"
	AnimCaptainRun     = "captain-run"
	AnimCaptainDamaged = "captain-damaged"
	AnimCaptainDead    = "captain-dead"
	AnimEnemyIdle      = "enemy-idle"
	AnimEnemyWalk      = "enemy-walk"
	AnimEnemyDead      = "enemy-dead"
)

// Actor is the physical body a controller drives.
type Actor interface {
	ID() core.EntityID
	Kind() string
	Value(key string) (int, bool)
	Position() core.Vec
	Bounds() core.Rect
	Velocity() core.Vec
	Play(anim string)
	SetVelocityX(v float64)
	SetVelocityY(v float64)
	FlipX() bool
	SetFlipX(flip bool)
	OnceAnimationComplete(fn func())
	SetCollidable(on bool)
	Destroy()
}

// Input reports the state of the player's controls for the current tick.
type Input interface {
	Held(a core.Action) bool
	JustPressed(a core.Action) bool
}

// Effects are requests a controller makes to the scene that owns it.
type Effects interface {
	After(d time.Duration, fn func())
	SwitchScreen(name string)
}

// Env holds the collaborators shared by every controller of a session.
type Env struct {
	Bus       *eventbus.Bus
	Obstacles *obstacles.Registry
	Input     Input
	Effects   Effects
	Config    config.Config
	Rand      *rand.Rand
	Logger    *log.Logger

	// Observer, if set, is told about every state transition.
	Observer func(machine, from, to string)
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

func (e Env) machineOptions(id string) []fsm.Option {
	opts := []fsm.Option{fsm.WithLogger(e.Logger)}
	if e.Observer != nil {
		observe := e.Observer
		opts = append(opts, fsm.WithObserver(func(from, to string) {
			observe(id, from, to)
		}))
	}
	return opts
}

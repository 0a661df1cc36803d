package actors

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/treasure-run/internal/config"
	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/eventbus"
	"github.com/vovakirdan/treasure-run/internal/fsm"
)

// Player states.
const (
	StateIdle       = "idle"
	StateWalk       = "walk"
	StateJump       = "jump"
	StateSpikeHit   = "spike-hit"
	StateEnemyHit   = "enemy-hit"
	StateStompEnemy = "stomp-enemy"
	StateDead       = "dead"
)

// Player is the controller of the captain.
type Player struct {
	actor   Actor
	env     Env
	cfg     config.PlayerConfig
	rules   config.RulesConfig
	machine *fsm.Machine[*Player]
	logger  *log.Logger

	health    int
	coins     int
	won       bool          // Win screen already requested
	airTime   time.Duration // Time spent in the jump state
	fallSpeed float64       // Vertical speed at the start of the tick
	lastEnemy Actor         // Enemy of the latest enemy contact
}

// NewPlayer creates the controller for actor and puts it in the idle state.
func NewPlayer(actor Actor, env Env) *Player {
	p := &Player{
		actor:  actor,
		env:    env,
		cfg:    env.Config.Player,
		rules:  env.Config.Rules,
		logger: env.logger().With("actor", "player"),
		health: env.Config.Player.StartHealth,
	}

	p.machine = fsm.New(p, "player", env.machineOptions("player")...)
	p.machine.
		AddState(StateIdle, fsm.State[*Player]{
			OnEnter:  (*Player).idleEnter,
			OnUpdate: (*Player).idleUpdate,
		}).
		AddState(StateWalk, fsm.State[*Player]{
			OnEnter:  (*Player).walkEnter,
			OnUpdate: (*Player).walkUpdate,
		}).
		AddState(StateJump, fsm.State[*Player]{
			OnEnter:  (*Player).jumpEnter,
			OnUpdate: (*Player).jumpUpdate,
		}).
		AddState(StateSpikeHit, fsm.State[*Player]{
			OnEnter:  (*Player).spikeHitEnter,
			OnUpdate: (*Player).steer,
		}).
		AddState(StateEnemyHit, fsm.State[*Player]{
			OnEnter: (*Player).enemyHitEnter,
		}).
		AddState(StateStompEnemy, fsm.State[*Player]{
			OnEnter: (*Player).stompEnemyEnter,
		}).
		AddState(StateDead, fsm.State[*Player]{
			OnEnter: (*Player).deadEnter,
		})
	p.machine.MustSetState(StateIdle)

	return p
}

// Update advances the player's current state.
func (p *Player) Update(dt time.Duration) {
	p.fallSpeed = p.actor.Velocity().Y
	p.machine.Update(dt)
}

// State returns the current state name.
func (p *Player) State() string { return p.machine.Current() }

// Health returns the current health.
func (p *Player) Health() int { return p.health }

// Coins returns the number of coins collected.
func (p *Player) Coins() int { return p.coins }

// Dead reports whether the player has died.
func (p *Player) Dead() bool { return p.machine.IsCurrentState(StateDead) }

// Won reports whether the coin target was reached.
func (p *Player) Won() bool { return p.won }

// Actor returns the body driven by the player.
func (p *Player) Actor() Actor { return p.actor }

// Kill drops health to zero, e.g. after falling out of the world.
func (p *Player) Kill() {
	if p.Dead() {
		return
	}
	p.setHealth(0)
}

// setState refuses every transition once the player is dead.
func (p *Player) setState(name string) {
	if p.Dead() {
		return
	}
	p.machine.MustSetState(name)
}

func (p *Player) setHealth(value int) {
	p.health = core.Clamp(value, 0, p.cfg.MaxHealth)
	p.env.Bus.Emit(eventbus.HealthChanged{Value: p.health})

	if p.health <= 0 {
		p.setState(StateDead)
	}
}

func (p *Player) idleEnter(...any) {
	p.actor.Play(AnimCaptainIdle)
}

func (p *Player) idleUpdate(time.Duration) {
	in := p.env.Input
	if in.Held(core.ActionLeft) || in.Held(core.ActionRight) {
		p.setState(StateWalk)
	}
	if in.JustPressed(core.ActionJump) {
		p.setState(StateJump)
	}
}

func (p *Player) walkEnter(...any) {
	p.actor.Play(AnimCaptainRun)
}

func (p *Player) walkUpdate(time.Duration) {
	in := p.env.Input
	switch {
	case in.Held(core.ActionLeft):
		p.actor.SetFlipX(true)
		p.actor.SetVelocityX(-p.cfg.Speed)
	case in.Held(core.ActionRight):
		p.actor.SetFlipX(false)
		p.actor.SetVelocityX(p.cfg.Speed)
	default:
		p.actor.SetVelocityX(0)
		p.setState(StateIdle)
	}

	if in.JustPressed(core.ActionJump) {
		p.setState(StateJump)
	}
}

func (p *Player) jumpEnter(...any) {
	p.airTime = 0
	p.actor.SetVelocityY(-p.cfg.JumpImpulse)
}

func (p *Player) jumpUpdate(dt time.Duration) {
	p.steer(dt)

	// Landing normally ends the jump through a terrain contact.
	if p.cfg.JumpTimeout > 0 {
		p.airTime += dt
		if p.airTime >= p.cfg.JumpTimeout {
			p.logger.Debug("jump timed out", "air_time", p.airTime)
			p.setState(StateIdle)
		}
	}
}

// steer applies horizontal input without changing state.
func (p *Player) steer(time.Duration) {
	in := p.env.Input
	switch {
	case in.Held(core.ActionLeft):
		p.actor.SetFlipX(true)
		p.actor.SetVelocityX(-p.cfg.Speed)
	case in.Held(core.ActionRight):
		p.actor.SetFlipX(false)
		p.actor.SetVelocityX(p.cfg.Speed)
	}
}

func (p *Player) spikeHitEnter(...any) {
	p.actor.SetVelocityY(-p.cfg.SpikeKnockback)
	p.takeDamage()
}

func (p *Player) enemyHitEnter(...any) {
	if p.lastEnemy != nil {
		if p.actor.Position().X < p.lastEnemy.Position().X {
			p.actor.SetVelocityX(-p.cfg.EnemyKnockback)
		} else {
			p.actor.SetVelocityX(p.cfg.EnemyKnockback)
		}
	} else {
		p.actor.SetVelocityY(-p.cfg.SpikeKnockback)
	}
	p.takeDamage()
}

// takeDamage removes one health point and plays the damage animation,
// returning to idle when it completes. Losing the last point ends in dead.
func (p *Player) takeDamage() {
	p.setHealth(p.health - 1)
	if p.Dead() {
		return
	}

	p.actor.Play(AnimCaptainDamaged)
	p.actor.OnceAnimationComplete(func() {
		p.setState(StateIdle)
	})
}

func (p *Player) stompEnemyEnter(...any) {
	p.actor.SetVelocityY(-p.cfg.StompBounce)

	if p.lastEnemy != nil {
		p.env.Bus.Emit(eventbus.EnemyStomped{Target: p.lastEnemy.ID()})
	}

	p.setState(StateIdle)
}

func (p *Player) deadEnter(...any) {
	p.actor.Play(AnimCaptainDead)
	p.logger.Info("player died", "coins", p.coins)

	p.env.Effects.After(p.rules.DeathDelay, func() {
		p.env.Effects.SwitchScreen(ScreenGameOver)
	})
}

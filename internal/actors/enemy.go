package actors

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/treasure-run/internal/eventbus"
	"github.com/vovakirdan/treasure-run/internal/fsm"
	"github.com/vovakirdan/treasure-run/internal/obstacles"
)

// Enemy states.
const (
	StateMoveLeft  = "move-left"
	StateMoveRight = "move-right"
)

// Enemy is the controller of a patrolling enemy.
type Enemy struct {
	actor   Actor
	env     Env
	machine *fsm.Machine[*Enemy]
	rng     *rand.Rand

	speed      float64
	turnAfter  time.Duration
	moveTime   time.Duration // Time spent walking in the current direction
	token      eventbus.Token
	subscribed bool
}

// NewEnemy creates the controller for actor, subscribes it to stomps and
// puts it in the idle state.
func NewEnemy(actor Actor, env Env) *Enemy {
	e := &Enemy{
		actor:     actor,
		env:       env,
		rng:       env.Rand,
		speed:     env.Config.Enemy.Speed,
		turnAfter: env.Config.Enemy.TurnAfter,
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(uint64(actor.ID()), 0))
	}

	id := fmt.Sprintf("enemy-%d", actor.ID())
	e.machine = fsm.New(e, id, env.machineOptions(id)...)
	e.machine.
		AddState(StateIdle, fsm.State[*Enemy]{
			OnEnter:  (*Enemy).idleEnter,
			OnUpdate: (*Enemy).idleUpdate,
		}).
		AddState(StateMoveLeft, fsm.State[*Enemy]{
			OnEnter:  (*Enemy).moveLeftEnter,
			OnUpdate: (*Enemy).moveLeftUpdate,
		}).
		AddState(StateMoveRight, fsm.State[*Enemy]{
			OnEnter:  (*Enemy).moveRightEnter,
			OnUpdate: (*Enemy).moveRightUpdate,
		}).
		AddState(StateDead, fsm.State[*Enemy]{})
	e.machine.MustSetState(StateIdle)

	e.token = eventbus.Subscribe(env.Bus, e, e.handleStomped)
	e.subscribed = true

	return e
}

// Update advances the enemy's current state.
func (e *Enemy) Update(dt time.Duration) {
	e.machine.Update(dt)
}

// State returns the current state name.
func (e *Enemy) State() string { return e.machine.Current() }

// Actor returns the body driven by the enemy.
func (e *Enemy) Actor() Actor { return e.actor }

// Destroy detaches the controller from the event bus.
func (e *Enemy) Destroy() {
	e.unsubscribe()
}

func (e *Enemy) unsubscribe() {
	if !e.subscribed {
		return
	}
	e.env.Bus.Off(eventbus.KindEnemyStomped, e.token, e)
	e.subscribed = false
}

func (e *Enemy) idleEnter(...any) {
	e.actor.Play(AnimEnemyIdle)
}

// idleUpdate picks the first patrol direction at random.
func (e *Enemy) idleUpdate(time.Duration) {
	if e.rng.IntN(2) == 0 {
		e.machine.MustSetState(StateMoveLeft)
	} else {
		e.machine.MustSetState(StateMoveRight)
	}
}

func (e *Enemy) moveLeftEnter(...any) {
	e.moveTime = 0
	e.actor.Play(AnimEnemyWalk)
	e.actor.SetFlipX(false)
}

func (e *Enemy) moveLeftUpdate(dt time.Duration) {
	e.moveTime += dt
	e.actor.SetVelocityX(-e.speed)

	if e.moveTime >= e.turnAfter {
		e.machine.MustSetState(StateMoveRight)
	}
}

func (e *Enemy) moveRightEnter(...any) {
	e.moveTime = 0
	e.actor.Play(AnimEnemyWalk)
	e.actor.SetFlipX(true)
}

func (e *Enemy) moveRightUpdate(dt time.Duration) {
	e.moveTime += dt
	e.actor.SetVelocityX(e.speed)

	if e.moveTime >= e.turnAfter {
		e.machine.MustSetState(StateMoveLeft)
	}
}

func (e *Enemy) handleStomped(ev eventbus.EnemyStomped) {
	if ev.Target != e.actor.ID() {
		return
	}

	e.unsubscribe()

	e.actor.Play(AnimEnemyDead)
	e.actor.SetVelocityX(0)
	e.actor.SetCollidable(false)
	e.actor.OnceAnimationComplete(func() {
		e.env.Obstacles.Remove(obstacles.CategoryEnemy, e.actor.ID())
		e.actor.Destroy()
	})

	e.machine.MustSetState(StateDead)
}

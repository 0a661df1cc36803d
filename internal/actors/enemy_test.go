package actors

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/eventbus"
	"github.com/vovakirdan/treasure-run/internal/obstacles"
)

func newTestEnemy(te *testEnv, id core.EntityID) (*Enemy, *fakeActor) {
	body := newFakeActor(id, "enemy", core.NewRect(10, 7, 1, 1))
	if err := te.Obstacles.Add(obstacles.CategoryEnemy, id); err != nil {
		panic(err)
	}
	return NewEnemy(body, te.Env), body
}

func TestEnemyStartsIdleThenPicksDirection(t *testing.T) {
	seen := map[string]bool{}
	for seed := range uint64(32) {
		te := newTestEnv()
		te.Rand = rand.New(rand.NewPCG(seed, seed))
		e, body := newTestEnemy(te, 7)

		if e.State() != StateIdle {
			t.Fatalf("seed %d: State() = %q, expected idle", seed, e.State())
		}
		if body.anim != AnimEnemyIdle {
			t.Errorf("seed %d: animation = %q, expected %q", seed, body.anim, AnimEnemyIdle)
		}

		e.Update(frame)

		switch e.State() {
		case StateMoveLeft, StateMoveRight:
			seen[e.State()] = true
		default:
			t.Fatalf("seed %d: State() = %q after first update", seed, e.State())
		}
		if body.anim != AnimEnemyWalk {
			t.Errorf("seed %d: animation = %q, expected %q", seed, body.anim, AnimEnemyWalk)
		}
	}
	if !seen[StateMoveLeft] || !seen[StateMoveRight] {
		t.Errorf("expected both directions across seeds, got %v", seen)
	}
}

func TestEnemyAlternatesEveryTurnInterval(t *testing.T) {
	te := newTestEnv()
	e, body := newTestEnemy(te, 7)
	e.Update(frame)

	opposite := map[string]string{StateMoveLeft: StateMoveRight, StateMoveRight: StateMoveLeft}
	speed := te.Config.Enemy.Speed

	for turn := range 4 {
		start := e.State()
		for range 3 {
			e.Update(500 * time.Millisecond)
		}
		if e.State() != start {
			t.Fatalf("turn %d: changed direction after 1500ms", turn)
		}
		wantVel := speed
		if start == StateMoveLeft {
			wantVel = -speed
		}
		if body.vel.X != wantVel {
			t.Errorf("turn %d: vx = %v, expected %v", turn, body.vel.X, wantVel)
		}
		if body.flip != (start == StateMoveRight) {
			t.Errorf("turn %d: flip = %v in %s", turn, body.flip, start)
		}

		e.Update(500 * time.Millisecond)
		if e.State() != opposite[start] {
			t.Fatalf("turn %d: State() = %q after 2000ms, expected %q", turn, e.State(), opposite[start])
		}
	}
}

func TestEnemyStompedByIdentity(t *testing.T) {
	te := newTestEnv()
	a, bodyA := newTestEnemy(te, 7)
	b, bodyB := newTestEnemy(te, 8)

	te.Bus.Emit(eventbus.EnemyStomped{Target: 7})

	if a.State() != StateDead {
		t.Errorf("target State() = %q, expected dead", a.State())
	}
	if b.State() != StateIdle {
		t.Errorf("bystander State() = %q, expected idle", b.State())
	}
	if bodyA.anim != AnimEnemyDead || bodyA.collidable {
		t.Errorf("target body: animation = %q collidable = %v", bodyA.anim, bodyA.collidable)
	}
	if bodyB.anim == AnimEnemyDead {
		t.Error("bystander should not play the death animation")
	}
	if n := te.Bus.Count(eventbus.KindEnemyStomped); n != 1 {
		t.Errorf("stomp subscribers = %d, expected 1 (dead enemy unsubscribed)", n)
	}

	// Dead is terminal.
	a.Update(5 * time.Second)
	te.Bus.Emit(eventbus.EnemyStomped{Target: 7})
	if a.State() != StateDead {
		t.Errorf("State() = %q, expected dead to be terminal", a.State())
	}

	if bodyA.destroyed {
		t.Fatal("body destroyed before the death animation completed")
	}
	bodyA.completeAnimation()
	if !bodyA.destroyed {
		t.Error("body should be destroyed after the death animation")
	}
	if te.Obstacles.Is(obstacles.CategoryEnemy, 7) {
		t.Error("destroyed enemy should leave the obstacle registry")
	}
}

func TestEnemyDestroyUnsubscribes(t *testing.T) {
	te := newTestEnv()
	e, _ := newTestEnemy(te, 7)

	e.Destroy()
	e.Destroy()

	if n := te.Bus.Count(eventbus.KindEnemyStomped); n != 0 {
		t.Errorf("subscribers = %d, expected 0", n)
	}
	te.Bus.Emit(eventbus.EnemyStomped{Target: 7})
	if e.State() == StateDead {
		t.Error("destroyed controller reacted to a stomp")
	}
}

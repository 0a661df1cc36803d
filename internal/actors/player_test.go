package actors

import (
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/eventbus"
	"github.com/vovakirdan/treasure-run/internal/obstacles"
)

const frame = 33 * time.Millisecond

func newTestPlayer(te *testEnv) (*Player, *fakeActor) {
	body := newFakeActor(1, "player", playerRect)
	return NewPlayer(body, te.Env), body
}

// recordHealth collects every HealthChanged value emitted on the bus.
func recordHealth(te *testEnv) *[]int {
	var values []int
	eventbus.Subscribe(te.Bus, te, func(e eventbus.HealthChanged) {
		values = append(values, e.Value)
	})
	return &values
}

func TestPlayerStartsIdle(t *testing.T) {
	te := newTestEnv()
	p, body := newTestPlayer(te)

	if p.State() != StateIdle {
		t.Errorf("State() = %q, expected idle", p.State())
	}
	if p.Health() != 10 {
		t.Errorf("Health() = %d, expected 10", p.Health())
	}
	if body.anim != AnimCaptainIdle {
		t.Errorf("animation = %q, expected %q", body.anim, AnimCaptainIdle)
	}
}

func TestPlayerWalk(t *testing.T) {
	te := newTestEnv()
	p, body := newTestPlayer(te)
	speed := te.Config.Player.Speed

	te.input.Hold(core.ActionRight)
	p.Update(frame)
	if p.State() != StateWalk {
		t.Fatalf("State() = %q, expected walk", p.State())
	}
	if body.anim != AnimCaptainRun {
		t.Errorf("animation = %q, expected %q", body.anim, AnimCaptainRun)
	}

	p.Update(frame)
	if body.vel.X != speed || body.flip {
		t.Errorf("walking right: vx = %v flip = %v", body.vel.X, body.flip)
	}

	te.input.Clear()
	te.input.Hold(core.ActionLeft)
	p.Update(frame)
	if body.vel.X != -speed || !body.flip {
		t.Errorf("walking left: vx = %v flip = %v", body.vel.X, body.flip)
	}

	te.input.Clear()
	p.Update(frame)
	if p.State() != StateIdle {
		t.Errorf("State() = %q, expected idle after release", p.State())
	}
	if body.vel.X != 0 {
		t.Errorf("vx = %v, expected 0 after release", body.vel.X)
	}
}

func TestPlayerJumpEndsOnTerrainBelow(t *testing.T) {
	te := newTestEnv()
	p, body := newTestPlayer(te)

	te.input.Press(core.ActionJump)
	p.Update(frame)
	te.input.Clear()
	if p.State() != StateJump {
		t.Fatalf("State() = %q, expected jump", p.State())
	}
	if body.vel.Y != -te.Config.Player.JumpImpulse {
		t.Errorf("vy = %v, expected %v", body.vel.Y, -te.Config.Player.JumpImpulse)
	}

	// Steering only.
	te.input.Hold(core.ActionLeft)
	p.Update(frame)
	if p.State() != StateJump || body.vel.X != -te.Config.Player.Speed {
		t.Errorf("steering: state = %q vx = %v", p.State(), body.vel.X)
	}

	wall := newFakeActor(50, "terrain", core.NewRect(6, 6, 1, 1))
	p.HandleContact(wall)
	if p.State() != StateJump {
		t.Errorf("terrain beside the player should not end the jump, state = %q", p.State())
	}

	floor := newFakeActor(51, "terrain", core.NewRect(5, 8, 1, 1))
	p.HandleContact(floor)
	if p.State() != StateIdle {
		t.Errorf("State() = %q, expected idle after landing", p.State())
	}
}

func TestPlayerTerrainIgnoredOutsideJump(t *testing.T) {
	te := newTestEnv()
	p, _ := newTestPlayer(te)

	te.input.Hold(core.ActionRight)
	p.Update(frame)
	p.HandleContact(newFakeActor(50, "terrain", core.NewRect(5, 8, 1, 1)))
	if p.State() != StateWalk {
		t.Errorf("State() = %q, expected walk", p.State())
	}
}

func TestPlayerJumpTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    string
	}{
		{"disabled", 0, StateJump},
		{"enabled", time.Second, StateIdle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			te := newTestEnv()
			te.Config.Player.JumpTimeout = tc.timeout
			p, _ := newTestPlayer(te)

			te.input.Press(core.ActionJump)
			p.Update(frame)
			te.input.Clear()

			for range 10 {
				p.Update(200 * time.Millisecond)
			}
			if p.State() != tc.want {
				t.Errorf("State() = %q, expected %q", p.State(), tc.want)
			}
		})
	}
}

func TestPlayerSpikeHit(t *testing.T) {
	te := newTestEnv()
	health := recordHealth(te)
	p, body := newTestPlayer(te)
	spikes := newFakeActor(20, "spikes", core.NewRect(5, 8, 1, 1))
	if err := te.Obstacles.Add(obstacles.CategorySpikes, spikes.ID()); err != nil {
		t.Fatal(err)
	}

	p.HandleContact(spikes)

	if p.State() != StateSpikeHit {
		t.Fatalf("State() = %q, expected spike-hit", p.State())
	}
	if p.Health() != 9 {
		t.Errorf("Health() = %d, expected 9", p.Health())
	}
	if !slices.Equal(*health, []int{9}) {
		t.Errorf("health events = %v, expected [9]", *health)
	}
	if body.vel.Y != -te.Config.Player.SpikeKnockback {
		t.Errorf("vy = %v, expected %v", body.vel.Y, -te.Config.Player.SpikeKnockback)
	}
	if body.anim != AnimCaptainDamaged {
		t.Errorf("animation = %q, expected %q", body.anim, AnimCaptainDamaged)
	}

	// A second contact while hurt is a no-op transition.
	p.HandleContact(spikes)
	if p.Health() != 9 {
		t.Errorf("Health() = %d, expected 9 while still hurt", p.Health())
	}

	body.completeAnimation()
	if p.State() != StateIdle {
		t.Errorf("State() = %q, expected idle after the damage animation", p.State())
	}
}

func TestPlayerTenSpikeHitsKill(t *testing.T) {
	te := newTestEnv()
	health := recordHealth(te)
	p, body := newTestPlayer(te)
	spikes := newFakeActor(20, "spikes", core.NewRect(5, 8, 1, 1))
	if err := te.Obstacles.Add(obstacles.CategorySpikes, spikes.ID()); err != nil {
		t.Fatal(err)
	}

	for range 10 {
		p.HandleContact(spikes)
		body.completeAnimation()
	}

	if !p.Dead() || p.State() != StateDead {
		t.Fatalf("State() = %q, expected dead", p.State())
	}
	if p.Health() != 0 {
		t.Errorf("Health() = %d, expected 0", p.Health())
	}
	want := []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	if !slices.Equal(*health, want) {
		t.Errorf("health events = %v, expected %v", *health, want)
	}
	if body.anim != AnimCaptainDead {
		t.Errorf("animation = %q, expected %q", body.anim, AnimCaptainDead)
	}

	// Nothing reaches a dead player.
	p.HandleContact(spikes)
	p.Kill()
	body.completeAnimation()
	if len(*health) != len(want) || p.State() != StateDead {
		t.Errorf("dead player reacted: events = %v state = %q", *health, p.State())
	}

	if len(te.effects.pending) != 1 || te.effects.pending[0].d != te.Config.Rules.DeathDelay {
		t.Fatalf("expected one game-over request after %v, got %+v", te.Config.Rules.DeathDelay, te.effects.pending)
	}
	te.effects.fire()
	if !slices.Equal(te.effects.screens, []string{ScreenGameOver}) {
		t.Errorf("screens = %v, expected [game-over]", te.effects.screens)
	}
}

func TestPlayerDeathCancelsDamageRecovery(t *testing.T) {
	te := newTestEnv()
	p, body := newTestPlayer(te)
	spikes := newFakeActor(20, "spikes", core.NewRect(5, 8, 1, 1))
	if err := te.Obstacles.Add(obstacles.CategorySpikes, spikes.ID()); err != nil {
		t.Fatal(err)
	}

	p.HandleContact(spikes)
	p.Kill()
	body.completeAnimation()

	if p.State() != StateDead {
		t.Errorf("State() = %q, expected dead", p.State())
	}
}

func TestPlayerEnemyHitKnockback(t *testing.T) {
	tests := []struct {
		name    string
		enemyX  float64
		wantVel float64
	}{
		{"enemy on the right", 7, -17},
		{"enemy on the left", 3, 17},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			te := newTestEnv()
			p, body := newTestPlayer(te)
			enemy := newFakeActor(30, "enemy", core.NewRect(tc.enemyX, 7, 1, 1))
			if err := te.Obstacles.Add(obstacles.CategoryEnemy, enemy.ID()); err != nil {
				t.Fatal(err)
			}

			p.HandleContact(enemy)

			if p.State() != StateEnemyHit {
				t.Fatalf("State() = %q, expected enemy-hit", p.State())
			}
			if body.vel.X != tc.wantVel {
				t.Errorf("vx = %v, expected %v", body.vel.X, tc.wantVel)
			}
			if p.Health() != 9 {
				t.Errorf("Health() = %d, expected 9", p.Health())
			}
		})
	}
}

func TestPlayerStompTargetsOneEnemy(t *testing.T) {
	te := newTestEnv()
	p, body := newTestPlayer(te)

	var enemies []*Enemy
	for i, x := range []float64{2, 5, 9} {
		a := newFakeActor(core.EntityID(30+i), "enemy", core.NewRect(x, 9, 1, 1))
		if err := te.Obstacles.Add(obstacles.CategoryEnemy, a.ID()); err != nil {
			t.Fatal(err)
		}
		enemies = append(enemies, NewEnemy(a, te.Env))
	}

	var stomped []core.EntityID
	eventbus.Subscribe(te.Bus, te, func(e eventbus.EnemyStomped) {
		stomped = append(stomped, e.Target)
	})

	te.trace = nil
	target := enemies[1].Actor()
	body.vel.Y = 5
	p.HandleContact(target)

	if p.State() != StateIdle {
		t.Errorf("State() = %q, expected idle right after the stomp", p.State())
	}
	wantTrace := []string{"player:idle>stomp-enemy", "enemy-31:idle>dead", "player:stomp-enemy>idle"}
	if !slices.Equal(te.trace, wantTrace) {
		t.Errorf("transitions = %v, expected %v", te.trace, wantTrace)
	}
	if !slices.Equal(stomped, []core.EntityID{target.ID()}) {
		t.Errorf("stomped = %v, expected [%d]", stomped, target.ID())
	}
	if body.vel.Y != -te.Config.Player.StompBounce {
		t.Errorf("vy = %v, expected %v", body.vel.Y, -te.Config.Player.StompBounce)
	}
	for i, e := range enemies {
		dead := e.State() == StateDead
		if dead != (i == 1) {
			t.Errorf("enemy %d state = %q", i, e.State())
		}
	}
	if p.Health() != 10 {
		t.Errorf("Health() = %d, stomping should not hurt", p.Health())
	}
}

func TestPlayerStompNeedsFall(t *testing.T) {
	tests := []struct {
		name      string
		player    core.Rect
		enemy     core.Rect
		vy        float64 // velocity at contact
		tickVY    float64 // velocity when the tick started
		wantState string
	}{
		{"falling onto the top", playerRect, core.NewRect(5, 8, 1, 1), 8, 8, StateStompEnemy},
		{"sunk deep in one tick", core.NewRect(5, 6.9, 1, 2), core.NewRect(5, 8, 1, 1), 30, 30, StateStompEnemy},
		{"landed in the same tick", playerRect, core.NewRect(5, 8, 1, 1), 0, 12, StateStompEnemy},
		{"walking into a shorter enemy", playerRect, core.NewRect(6, 7, 1, 1), 0, 0, StateEnemyHit},
		{"rising through from below", core.NewRect(5, 8.5, 1, 2), core.NewRect(5, 8, 1, 1), -10, -10, StateEnemyHit},
		{"falling beside it", core.NewRect(5, 8, 1, 2), core.NewRect(6, 8, 1, 1), 5, 5, StateEnemyHit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			te := newTestEnv()
			body := newFakeActor(1, "player", tc.player)
			p := NewPlayer(body, te.Env)
			enemy := newFakeActor(30, "enemy", tc.enemy)
			if err := te.Obstacles.Add(obstacles.CategoryEnemy, enemy.ID()); err != nil {
				t.Fatal(err)
			}

			p.fallSpeed = tc.tickVY
			body.vel.Y = tc.vy
			te.trace = nil
			p.HandleContact(enemy)

			if !slices.Contains(te.trace, "player:idle>"+tc.wantState) {
				t.Errorf("transitions = %v, expected idle>%s", te.trace, tc.wantState)
			}
		})
	}
}

func TestPlayerCoinsRequestWinOnce(t *testing.T) {
	te := newTestEnv()
	p, _ := newTestPlayer(te)

	var counts []int
	eventbus.Subscribe(te.Bus, te, func(e eventbus.CoinCollected) {
		counts = append(counts, e.Count)
	})

	var coins []*fakeActor
	for i := range 25 {
		coin := newFakeActor(core.EntityID(100+i), KindCoin, core.NewRect(5, 7, 1, 1))
		coins = append(coins, coin)
		p.HandleContact(coin)
	}

	if p.Coins() != 25 || len(counts) != 25 || counts[19] != 20 {
		t.Fatalf("coins = %d counts = %v", p.Coins(), counts)
	}
	for i, c := range coins {
		if !c.destroyed {
			t.Errorf("coin %d not destroyed", i)
		}
	}
	if !p.Won() {
		t.Error("Won() should be true")
	}
	if len(te.effects.pending) != 1 || te.effects.pending[0].d != te.Config.Rules.WinDelay {
		t.Fatalf("expected exactly one win request after %v, got %d", te.Config.Rules.WinDelay, len(te.effects.pending))
	}
	te.effects.fire()
	if !slices.Equal(te.effects.screens, []string{ScreenGameWin}) {
		t.Errorf("screens = %v, expected [game-win]", te.effects.screens)
	}
}

func TestPlayerHealthPotion(t *testing.T) {
	te := newTestEnv()
	te.Config.Player.StartHealth = 5
	health := recordHealth(te)
	p, _ := newTestPlayer(te)

	strong := newFakeActor(60, KindHealth, core.NewRect(5, 7, 1, 1))
	strong.values = map[string]int{ValueHealthPoints: 3}
	plain := newFakeActor(61, KindHealth, core.NewRect(5, 7, 1, 1))
	extra := newFakeActor(62, KindHealth, core.NewRect(5, 7, 1, 1))

	p.HandleContact(strong)
	p.HandleContact(plain)
	p.HandleContact(extra)

	if !slices.Equal(*health, []int{8, 10, 10}) {
		t.Errorf("health events = %v, expected [8 10 10]", *health)
	}
	if !strong.destroyed || !plain.destroyed || !extra.destroyed {
		t.Error("potions should be destroyed")
	}
	if p.State() != StateIdle {
		t.Errorf("State() = %q, potions should not change state", p.State())
	}
}

func TestPlayerKill(t *testing.T) {
	te := newTestEnv()
	health := recordHealth(te)
	p, _ := newTestPlayer(te)

	p.Kill()

	if !p.Dead() || p.Health() != 0 {
		t.Errorf("after Kill: state = %q health = %d", p.State(), p.Health())
	}
	if !slices.Equal(*health, []int{0}) {
		t.Errorf("health events = %v, expected [0]", *health)
	}
}

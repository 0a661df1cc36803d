package actors

import (
	"github.com/vovakirdan/treasure-run/internal/eventbus"
	"github.com/vovakirdan/treasure-run/internal/obstacles"
)

// restMargin is how far terrain may reach above the player's feet and
// still count as ground.
const restMargin = 0.1

// HandleContact reacts to the start of a contact between the player and other.
//
// Obstacles are checked first (spikes, then enemies), then the kind tag of
// collectibles; anything else is terrain, which only ends a jump when it is
// below the player.
func (p *Player) HandleContact(other Actor) {
	if p.Dead() {
		return
	}

	reg := p.env.Obstacles
	id := other.ID()

	if reg.Is(obstacles.CategorySpikes, id) {
		p.setState(StateSpikeHit)
		return
	}

	if reg.Is(obstacles.CategoryEnemy, id) {
		p.lastEnemy = other
		if p.above(other) {
			p.setState(StateStompEnemy)
		} else {
			p.setState(StateEnemyHit)
		}
		return
	}

	switch other.Kind() {
	case KindCoin:
		p.collectCoin(other)
	case KindHealth:
		p.drinkPotion(other)
	default:
		if p.machine.IsCurrentState(StateJump) && p.resting(other) {
			p.setState(StateIdle)
		}
	}
}

func (p *Player) collectCoin(coin Actor) {
	p.coins++
	p.env.Bus.Emit(eventbus.CoinCollected{Count: p.coins})
	coin.Destroy()

	if p.coins == p.rules.CoinTarget && !p.won {
		p.won = true
		p.logger.Info("coin target reached", "coins", p.coins)
		p.env.Effects.After(p.rules.WinDelay, func() {
			p.env.Effects.SwitchScreen(ScreenGameWin)
		})
	}
}

func (p *Player) drinkPotion(potion Actor) {
	points, ok := potion.Value(ValueHealthPoints)
	if !ok {
		points = p.rules.PotionPoints
	}
	p.setHealth(p.health + points)
	potion.Destroy()
}

// above reports whether the player came down on enemy: its centre is
// higher than the enemy's and it was falling. Walking into a shorter enemy
// also puts the player's centre higher, but without falling.
func (p *Player) above(enemy Actor) bool {
	falling := p.fallSpeed > 0 || p.actor.Velocity().Y > 0
	return falling && p.actor.Position().Y < enemy.Position().Y
}

// resting reports whether terrain lies under the player rather than beside
// or above it.
func (p *Player) resting(terrain Actor) bool {
	return terrain.Bounds().Y >= p.actor.Bounds().Bottom()-restMargin
}

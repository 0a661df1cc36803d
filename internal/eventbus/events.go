package eventbus

import "github.com/vovakirdan/treasure-run/internal/core"

// Kind identifies an event type. Kinds are compared by value; there are no
// wildcards or namespaces.
type Kind int

const (
	KindCoinCollected Kind = iota + 1
	KindHealthChanged
	KindEnemyStomped
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindCoinCollected:
		return "coin-collected"
	case KindHealthChanged:
		return "health-changed"
	case KindEnemyStomped:
		return "enemy-stomped"
	default:
		return "unknown"
	}
}

// Event is the closed set of payloads carried by the bus.
// Only types in this package can implement it.
type Event interface {
	Kind() Kind
	event()
}

// CoinCollected reports the player's running coin count.
type CoinCollected struct {
	Count int
}

func (CoinCollected) Kind() Kind { return KindCoinCollected }
func (CoinCollected) event()     {}

// HealthChanged reports the player's health after a change.
type HealthChanged struct {
	Value int
}

func (HealthChanged) Kind() Kind { return KindHealthChanged }
func (HealthChanged) event()     {}

// EnemyStomped is broadcast to every enemy; only the one whose body matches
// Target reacts.
type EnemyStomped struct {
	Target core.EntityID
}

func (EnemyStomped) Kind() Kind { return KindEnemyStomped }
func (EnemyStomped) event()     {}

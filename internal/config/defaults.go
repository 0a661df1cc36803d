package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/treasure.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. It matches
// defaults/treasure.yaml and is the last fallback of Load.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:      60,
			MaxFallSpeed: 30,
			Friction:     60,
		},
		Player: PlayerConfig{
			Width:          1,
			Height:         2,
			Speed:          10,
			JumpImpulse:    20,
			SpikeKnockback: 23,
			EnemyKnockback: 17,
			StompBounce:    23,
			MaxHealth:      10,
			StartHealth:    10,
		},
		Enemy: EnemyConfig{
			Width:     1,
			Height:    1,
			Speed:     3.5,
			TurnAfter: 2 * time.Second,
		},
		Rules: RulesConfig{
			CoinTarget:   20,
			PotionPoints: 2,
			WinDelay:     time.Second,
			DeathDelay:   1500 * time.Millisecond,
		},
	}
}

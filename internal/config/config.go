// Package config provides YAML-based game configuration loading and
// difficulty presets for the platformer.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all tunables of a run.
type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Enemy   EnemyConfig   `yaml:"enemy"`
	Rules   RulesConfig   `yaml:"rules"`
}

// PhysicsConfig defines world-wide physics parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	Friction     float64 `yaml:"friction"` // Horizontal deceleration on the ground
}

// PlayerConfig defines the player's body and movement.
type PlayerConfig struct {
	Width          float64       `yaml:"width"`
	Height         float64       `yaml:"height"`
	Speed          float64       `yaml:"speed"`
	JumpImpulse    float64       `yaml:"jump_impulse"`
	SpikeKnockback float64       `yaml:"spike_knockback"`
	EnemyKnockback float64       `yaml:"enemy_knockback"`
	StompBounce    float64       `yaml:"stomp_bounce"`
	MaxHealth      int           `yaml:"max_health"`
	StartHealth    int           `yaml:"start_health"`
	JumpTimeout    time.Duration `yaml:"jump_timeout"`
}

// EnemyConfig defines the patrolling enemies.
type EnemyConfig struct {
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	Speed     float64       `yaml:"speed"`
	TurnAfter time.Duration `yaml:"turn_after"`
}

// RulesConfig defines win/lose rules.
type RulesConfig struct {
	CoinTarget   int           `yaml:"coin_target"`
	PotionPoints int           `yaml:"potion_points"`
	WinDelay     time.Duration `yaml:"win_delay"`
	DeathDelay   time.Duration `yaml:"death_delay"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the config describes a playable game.
func (c Config) Validate() error {
	switch {
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("config: %w: physics.gravity must be positive", ErrInvalid)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("config: %w: player size must be positive", ErrInvalid)
	case c.Enemy.Width <= 0 || c.Enemy.Height <= 0:
		return fmt.Errorf("config: %w: enemy size must be positive", ErrInvalid)
	case c.Player.MaxHealth <= 0:
		return fmt.Errorf("config: %w: player.max_health must be positive", ErrInvalid)
	case c.Player.StartHealth <= 0 || c.Player.StartHealth > c.Player.MaxHealth:
		return fmt.Errorf("config: %w: player.start_health must be in [1, %d]", ErrInvalid, c.Player.MaxHealth)
	case c.Player.JumpTimeout < 0:
		return fmt.Errorf("config: %w: player.jump_timeout must not be negative", ErrInvalid)
	case c.Enemy.TurnAfter <= 0:
		return fmt.Errorf("config: %w: enemy.turn_after must be positive", ErrInvalid)
	case c.Rules.CoinTarget <= 0:
		return fmt.Errorf("config: %w: rules.coin_target must be positive", ErrInvalid)
	case c.Rules.WinDelay < 0 || c.Rules.DeathDelay < 0:
		return fmt.Errorf("config: %w: rule delays must not be negative", ErrInvalid)
	}
	return nil
}

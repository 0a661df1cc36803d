package config

import (
	"fmt"
	"time"
)

// DifficultyPreset is a named adjustment applied on top of the loaded config.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. The empty string means "keep the config as loaded".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Enemy.Speed *= 0.75
		cfg.Enemy.TurnAfter = cfg.Enemy.TurnAfter * 3 / 2
		cfg.Rules.PotionPoints++
		cfg.Player.JumpTimeout = 3 * time.Second
	case DifficultyHard:
		cfg.Enemy.Speed *= 1.5
		cfg.Player.StartHealth = max(1, cfg.Player.MaxHealth/2)
		cfg.Rules.PotionPoints = max(1, cfg.Rules.PotionPoints-1)
	}
}

// Package level loads platformer levels. A level is a YAML document whose
// map is drawn in ASCII, one character per cell.
package level

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/treasure-run/internal/core"
)

// Map symbols.
const (
	SymbolEmpty   = '.'
	SymbolTerrain = '#'
	SymbolSpikes  = '^'
	SymbolCoin    = 'c'
	SymbolHealth  = 'h'
	SymbolEnemy   = 'e'
	SymbolSpawn   = 'P'
)

var (
	// ErrInvalid is wrapped by every level validation failure.
	ErrInvalid = errors.New("invalid level")

	// ErrNotFound is returned when no level matches a name.
	ErrNotFound = errors.New("level not found")
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description,omitempty"`
	PotionPoints int               `yaml:"potion_points,omitempty"`
	Theme        map[string]string `yaml:"theme,omitempty"`
	Map          string            `yaml:"map"`
}

// Pos is a cell position, X to the right and Y down.
type Pos struct {
	X, Y int
}

// Theme holds the colours of a level's tiles.
type Theme struct {
	Terrain core.Color
	Spikes  core.Color
	Coin    core.Color
	Health  core.Color
	Enemy   core.Color
}

// DefaultTheme returns the colours used when a level does not set them.
func DefaultTheme() Theme {
	return Theme{
		Terrain: core.ColorBrown,
		Spikes:  core.ColorGray,
		Coin:    core.ColorBrightYellow,
		Health:  core.ColorRed,
		Enemy:   core.ColorMagenta,
	}
}

// Level represents a parsed level ready for use.
type Level struct {
	ID           string
	Name         string
	Description  string
	Width        int
	Height       int
	PotionPoints int // 0 means use the configured default
	Theme        Theme

	Spawn   Pos
	Terrain []Pos
	Spikes  []Pos
	Coins   []Pos
	Potions []Pos
	Enemies []Pos

	FilePath string // Empty for built-in levels
}

// Parse parses and validates a YAML level.
func Parse(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("level: yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Level{}, fmt.Errorf("level: %w: missing id", ErrInvalid)
	}
	if yl.PotionPoints < 0 {
		return Level{}, fmt.Errorf("level %s: %w: potion_points must not be negative", yl.ID, ErrInvalid)
	}

	lvl := Level{
		ID:           yl.ID,
		Name:         yl.Name,
		Description:  yl.Description,
		PotionPoints: yl.PotionPoints,
		Theme:        DefaultTheme(),
	}
	if lvl.Name == "" {
		lvl.Name = yl.ID
	}

	if err := lvl.applyTheme(yl.Theme); err != nil {
		return Level{}, err
	}
	if err := lvl.parseMap(yl.Map); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

func (l *Level) applyTheme(theme map[string]string) error {
	targets := map[string]*core.Color{
		"terrain": &l.Theme.Terrain,
		"spikes":  &l.Theme.Spikes,
		"coin":    &l.Theme.Coin,
		"health":  &l.Theme.Health,
		"enemy":   &l.Theme.Enemy,
	}
	for key, name := range theme {
		target, ok := targets[key]
		if !ok {
			return fmt.Errorf("level %s: %w: unknown theme key %q", l.ID, ErrInvalid, key)
		}
		c, ok := core.ParseColor(name)
		if !ok {
			return fmt.Errorf("level %s: %w: unknown color %q for %s", l.ID, ErrInvalid, name, key)
		}
		*target = c
	}
	return nil
}

func (l *Level) parseMap(raw string) error {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return fmt.Errorf("level %s: %w: empty map", l.ID, ErrInvalid)
	}

	l.Height = len(lines)
	l.Width = len([]rune(lines[0]))
	spawns := 0

	for y, line := range lines {
		row := []rune(line)
		if len(row) != l.Width {
			return fmt.Errorf("level %s: %w: row %d has %d cells, expected %d", l.ID, ErrInvalid, y, len(row), l.Width)
		}
		for x, r := range row {
			p := Pos{x, y}
			switch r {
			case SymbolEmpty, ' ':
			case SymbolTerrain:
				l.Terrain = append(l.Terrain, p)
			case SymbolSpikes:
				l.Spikes = append(l.Spikes, p)
			case SymbolCoin:
				l.Coins = append(l.Coins, p)
			case SymbolHealth:
				l.Potions = append(l.Potions, p)
			case SymbolEnemy:
				l.Enemies = append(l.Enemies, p)
			case SymbolSpawn:
				if y == 0 {
					return fmt.Errorf("level %s: %w: spawn needs a free cell above it", l.ID, ErrInvalid)
				}
				l.Spawn = p
				spawns++
			default:
				return fmt.Errorf("level %s: %w: unknown symbol %q at %d,%d", l.ID, ErrInvalid, r, x, y)
			}
		}
	}

	if spawns != 1 {
		return fmt.Errorf("level %s: %w: found %d spawn points, expected 1", l.ID, ErrInvalid, spawns)
	}
	return nil
}

// CheckCoins reports an error when the level holds fewer coins than a run
// needs to be won.
func (l Level) CheckCoins(target int) error {
	if len(l.Coins) < target {
		return fmt.Errorf("level %s: %w: %d coins, but %d are needed to win", l.ID, ErrInvalid, len(l.Coins), target)
	}
	return nil
}

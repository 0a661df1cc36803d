package scene

import (
	"github.com/vovakirdan/treasure-run/internal/actors"
	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/world"
)

// Glyphs of static tiles.
const (
	glyphTerrain = '#'
	glyphSpikes  = '^'
	glyphPotion  = '+'
)

const animCoinSpin = "coin-spin"

// captainAnimations returns the player's animations. Frames are two cells
// tall (head, body) and face right.
func captainAnimations() []world.Animation {
	return []world.Animation{
		{
			Name:      actors.AnimCaptainIdle,
			Frames:    []string{"o)", "o)", "O)", "o)", "o)"},
			FrameRate: 10,
			Repeat:    world.RepeatForever,
			Color:     core.ColorOrange,
		},
		{
			Name:      actors.AnimCaptainRun,
			Frames:    []string{"o/", "o>", "o\\", "o/", "o>", "o\\"},
			FrameRate: 10,
			Repeat:    world.RepeatForever,
			Color:     core.ColorOrange,
		},
		{
			Name:      actors.AnimCaptainDamaged,
			Frames:    []string{"*]", "x]", "*]", "x]"},
			FrameRate: 10,
			Repeat:    1,
			Color:     core.ColorBrightRed,
		},
		{
			Name:      actors.AnimCaptainDead,
			Frames:    []string{" x", " X", " x", " _"},
			FrameRate: 10,
			Repeat:    world.RepeatForever,
			Color:     core.ColorGray,
		},
	}
}

// enemyAnimations returns an enemy's animations. Frames are one cell and
// face left.
func enemyAnimations(c core.Color) []world.Animation {
	return []world.Animation{
		{
			Name:      actors.AnimEnemyIdle,
			Frames:    []string{"<", "<", "<", "{", "<", "<", "<", "{"},
			FrameRate: 10,
			Repeat:    world.RepeatForever,
			Color:     c,
		},
		{
			Name:      actors.AnimEnemyWalk,
			Frames:    []string{"<", "(", "<", "(", "<", "("},
			FrameRate: 10,
			Repeat:    world.RepeatForever,
			Color:     c,
		},
		{
			Name:      actors.AnimEnemyDead,
			Frames:    []string{"x", "X", "x", "."},
			FrameRate: 10,
			Repeat:    1,
			Color:     core.ColorGray,
		},
	}
}

func coinAnimations(c core.Color) []world.Animation {
	return []world.Animation{
		{
			Name:      animCoinSpin,
			Frames:    []string{"o", "O", "0", "O"},
			FrameRate: 6,
			Repeat:    world.RepeatForever,
			Color:     c,
		},
	}
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/treasure-run/internal/core"
)

// Palette maps cell colours to lipgloss styles.
type Palette map[core.Color]lipgloss.Style

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// ANSIPalette renders cell colours with the terminal's own palette, plus a
// few 256-colour extras for the Captain and the terrain.
func ANSIPalette() Palette {
	return Palette{
		core.ColorDefault:      lipgloss.NewStyle(),
		core.ColorRed:          fg("1"),
		core.ColorGreen:        fg("2"),
		core.ColorYellow:       fg("3"),
		core.ColorBlue:         fg("4"),
		core.ColorMagenta:      fg("5"),
		core.ColorCyan:         fg("6"),
		core.ColorWhite:        fg("7"),
		core.ColorBrightRed:    fg("9"),
		core.ColorBrightGreen:  fg("10"),
		core.ColorBrightYellow: fg("11"),
		core.ColorOrange:       fg("208"),
		core.ColorGray:         fg("245"),
		core.ColorBrown:        fg("130"),
	}
}

// MonoPalette drops colour; hazards stay recognisable by weight.
func MonoPalette() Palette {
	return Palette{
		core.ColorDefault:   lipgloss.NewStyle(),
		core.ColorRed:       lipgloss.NewStyle().Bold(true),
		core.ColorBrightRed: lipgloss.NewStyle().Bold(true),
		core.ColorGray:      lipgloss.NewStyle().Faint(true),
	}
}

func (p Palette) style(c core.Color) lipgloss.Style {
	if st, ok := p[c]; ok {
		return st
	}
	return p[core.ColorDefault]
}

// Render converts a Screen buffer to a styled string. Runs of cells with
// the same colour share one style so the ANSI output stays small.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width() && s.GetCell(x, y).Color == color; x++ {
				run.WriteRune(s.GetCell(x, y).Rune)
			}
			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

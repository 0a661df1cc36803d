package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles of the screens drawn with lipgloss rather than
// through the cell buffer: level picker, run history and help footer.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Description lipgloss.Style
	Border      lipgloss.Style
	Help        lipgloss.Style
	Empty       lipgloss.Style
	Won         lipgloss.Style
	Lost        lipgloss.Style

	// Cells colours the game screen.
	Cells Palette
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Treasure gold
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Empty: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
		Won:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Lost:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Cells: ANSIPalette(),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Title = lipgloss.NewStyle().Bold(true)
	theme.ItemActive = lipgloss.NewStyle().Reverse(true)
	theme.Won = lipgloss.NewStyle().Bold(true)
	theme.Lost = lipgloss.NewStyle()
	theme.Cells = MonoPalette()
	return theme
}

// ThemeByName returns a theme by name; unknown names get the default.
func ThemeByName(name string) Theme {
	if name == "mono" || name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

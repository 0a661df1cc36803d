package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorOrange
	ColorGray
	ColorBrown
)

// ParseColor maps a config/level color name to a Color.
func ParseColor(name string) (Color, bool) {
	switch name {
	case "", "default":
		return ColorDefault, true
	case "red":
		return ColorRed, true
	case "green":
		return ColorGreen, true
	case "yellow":
		return ColorYellow, true
	case "blue":
		return ColorBlue, true
	case "magenta":
		return ColorMagenta, true
	case "cyan":
		return ColorCyan, true
	case "white":
		return ColorWhite, true
	case "bright-red":
		return ColorBrightRed, true
	case "bright-green":
		return ColorBrightGreen, true
	case "bright-yellow", "gold":
		return ColorBrightYellow, true
	case "orange":
		return ColorOrange, true
	case "gray", "grey":
		return ColorGray, true
	case "brown":
		return ColorBrown, true
	}
	return ColorDefault, false
}

package core

import "strings"

// Color represents a foreground color for a screen cell.
// The platform maps it to an ANSI 256-color code.
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
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPurple
	ColorTeal
)

var colorNames = map[Color]string{
	ColorDefault:       "default",
	ColorRed:           "red",
	ColorGreen:         "green",
	ColorYellow:        "yellow",
	ColorBlue:          "blue",
	ColorMagenta:       "magenta",
	ColorCyan:          "cyan",
	ColorWhite:         "white",
	ColorBrightRed:     "bright_red",
	ColorBrightGreen:   "bright_green",
	ColorBrightYellow:  "bright_yellow",
	ColorBrightBlue:    "bright_blue",
	ColorBrightMagenta: "bright_magenta",
	ColorBrightCyan:    "bright_cyan",
	ColorBrightWhite:   "bright_white",
	ColorOrange:        "orange",
	ColorGray:          "gray",
	ColorPurple:        "purple",
	ColorTeal:          "teal",
}

// String returns the config name of the color.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColor looks up a color by its config name (case-insensitive).
func ParseColor(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name {
			return c, true
		}
	}
	return ColorDefault, false
}

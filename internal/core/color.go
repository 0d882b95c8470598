package core

// Color is the paint of a screen cell or arena rectangle.
// The terminal front end maps each value to an ANSI colour.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorNames = map[Color]string{
	ColorDefault:     "default",
	ColorRed:         "red",
	ColorGreen:       "green",
	ColorYellow:      "yellow",
	ColorBlue:        "blue",
	ColorMagenta:     "magenta",
	ColorCyan:        "cyan",
	ColorWhite:       "white",
	ColorBrightWhite: "bright-white",
	ColorOrange:      "orange",
	ColorGray:        "gray",
}

// String returns the lower-case colour name, used in logs.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

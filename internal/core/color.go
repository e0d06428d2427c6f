package core

// Color is the foreground color of a screen cell.
// The platform layer maps it to an ANSI 256-color code.
type Color uint8

// Colors used by the mirrorgrid board and panels.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorMagenta
	ColorGray
	ColorBrightWhite
)

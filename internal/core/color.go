package core

// Color is a foreground colour for a screen cell. The viewer maps it to an
// ANSI palette entry.
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
	ColorGray
)

// BallColors cycles through distinct colours for the ball pool.
var BallColors = []Color{ColorYellow, ColorCyan, ColorMagenta, ColorGreen, ColorRed}

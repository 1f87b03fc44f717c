package core

// Color is a foreground color tag for a screen cell.
// The terminal front end maps each tag to an ANSI 256-color code.
type Color uint8

// Predefined colors. The first eight are the playfield palette: one per
// tetromino plus the default used for empty cells and text.
const (
	ColorDefault Color = iota
	ColorCyan
	ColorYellow
	ColorMagenta
	ColorOrange
	ColorBlue
	ColorGreen
	ColorRed
	ColorGray
	ColorWhite
	ColorBrightYellow
)

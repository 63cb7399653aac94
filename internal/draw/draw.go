package draw

import (
	"fmt"
	"io"
	"strconv"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a palette entry for canvas pixels. The zero value is an unset pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorYellow
	ColorRed
	ColorGreen
	ColorCyan
)

// ColorReset restores the default terminal attributes.
const ColorReset = "\033[0m"

// ANSI foreground codes, indexed by Color. Background is foreground+10.
var fgCodes = [...]int{
	ColorNone:   39,
	ColorWhite:  97,
	ColorYellow: 93,
	ColorRed:    91,
	ColorGreen:  92,
	ColorCyan:   96,
}

func (c Color) fg() int {
	if int(c) < len(fgCodes) {
		return fgCodes[c]
	}
	return fgCodes[ColorNone]
}

func (c Color) bg() int {
	if c == ColorNone {
		return 49
	}
	return c.fg() + 10
}

// appendSGR appends an escape sequence selecting fg and bg.
func appendSGR(b []byte, fg, bg Color) []byte {
	b = append(b, "\033[0;"...)
	b = strconv.AppendInt(b, int64(fg.fg()), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(bg.bg()), 10)
	return append(b, 'm')
}

// Escape returns the escape sequence that switches text to color c.
func (c Color) Escape() string {
	return string(appendSGR(nil, c, ColorNone))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

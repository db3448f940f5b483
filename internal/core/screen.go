package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Color is a cell's foreground. The platform maps each value to an
// ANSI 256-color style.
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
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorGray
)

// Cell is a single character position on the screen.
// A Rune of 0 marks the right half of a double-width glyph.
type Cell struct {
	Rune  rune
	Color Color
}

// widths measures glyphs with ambiguous-width runes (box drawing) forced
// narrow, regardless of the host locale.
var widths = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// continuation occupies the second column of a wide glyph.
const continuation rune = 0

// Screen is a 2D character buffer for rendering game graphics.
// Games draw into it with simple rune operations; the platform turns it
// into styled terminal output.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in columns.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in rows.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	copyW := min(s.width, width)
	copyH := min(s.height, height)

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	for y := range copyH {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a rune at the given position in the default color.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColor(x, y, r, ColorDefault)
}

// SetColor places a colored rune at the given position and returns the
// number of columns it occupies (0 if it was clipped or zero-width).
// Wide glyphs take two columns; one that does not fit is replaced by a space.
func (s *Screen) SetColor(x, y int, r rune, c Color) int {
	if !s.inBounds(x, y) {
		return 0
	}

	w := widths.RuneWidth(r)
	switch {
	case w == 0:
		return 0
	case w == 2 && x+1 >= s.width:
		s.cells[y][x] = Cell{Rune: ' ', Color: c}
		return 1
	}

	s.breakWide(x, y)
	s.cells[y][x] = Cell{Rune: r, Color: c}
	if w == 2 {
		s.breakWide(x+1, y)
		s.cells[y][x+1] = Cell{Rune: continuation, Color: c}
	}
	return w
}

// breakWide blanks the other half of a wide glyph that (x, y) is about to
// overwrite, so no orphaned half is left behind.
func (s *Screen) breakWide(x, y int) {
	row := s.cells[y]
	if row[x].Rune == continuation && x > 0 {
		row[x-1] = Cell{Rune: ' ', Color: row[x-1].Color}
	}
	if x+1 < s.width && row[x+1].Rune == continuation && row[x].Rune != continuation {
		row[x+1] = Cell{Rune: ' ', Color: row[x+1].Color}
	}
}

func (s *Screen) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates and for the right half of a
// wide glyph.
func (s *Screen) Get(x, y int) rune {
	if !s.inBounds(x, y) {
		return ' '
	}
	r := s.cells[y][x].Rune
	if r == continuation {
		return ' '
	}
	return r
}

// GetCell returns the raw cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inBounds(x, y) {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor writes a colored string starting at (x, y).
func (s *Screen) DrawTextColor(x, y int, text string, c Color) {
	for _, r := range text {
		w := widths.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetColor(x, y, r, c)
		x += w
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	x := (s.width - TextWidth(text)) / 2
	s.DrawText(x, y, text)
}

// DrawRect fills a rectangular area with the given rune.
func (s *Screen) DrawRect(r Rect, fill rune) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.Set(x, y, fill)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect) {
	s.DrawBoxColor(r, ColorDefault)
}

// DrawBoxColor draws a colored box outline.
func (s *Screen) DrawBoxColor(r Rect, c Color) {
	s.SetColor(r.X, r.Y, '┌', c)
	s.SetColor(r.Right()-1, r.Y, '┐', c)
	s.SetColor(r.X, r.Bottom()-1, '└', c)
	s.SetColor(r.Right()-1, r.Bottom()-1, '┘', c)

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.SetColor(x, r.Y, '─', c)
		s.SetColor(x, r.Bottom()-1, '─', c)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.SetColor(r.X, y, '│', c)
		s.SetColor(r.Right()-1, y, '│', c)
	}
}

// String converts the screen buffer to plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := range s.height {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}

	var sb strings.Builder
	for _, c := range s.cells[y] {
		if c.Rune == continuation {
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// TextWidth returns the number of terminal columns text occupies.
func TextWidth(text string) int {
	return widths.StringWidth(text)
}

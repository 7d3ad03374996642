package application

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	DefaultStyle = tcell.StyleDefault
	LightStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	StatusStyle  = tcell.StyleDefault.Reverse(true)
	ErrorStyle   = tcell.StyleDefault.Reverse(true).Foreground(tcell.ColorRed)
)

// cellWidth is the number of screen cells r takes when drawn at display column
// col. Tabs stop at multiples of tabWidth.
func cellWidth(r rune, col, tabWidth int) int {
	if r == '\t' {
		return tabWidth - col%tabWidth
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// displayColumn is the screen offset of rune index col in line.
func displayColumn(line []rune, col, tabWidth int) int {
	x := 0
	for _, r := range line[:col] {
		x += cellWidth(r, x, tabWidth)
	}
	return x
}

// columnAt is the rune index of line drawn at screen offset x, the inverse of
// displayColumn. Offsets past the end of the line give the line length.
func columnAt(line []rune, x, tabWidth int) int {
	col := 0
	for i, r := range line {
		w := cellWidth(r, col, tabWidth)
		if x < col+w {
			return i
		}
		col += w
	}
	return len(line)
}

// drawLine draws line from (x, y), clipped at maxX, expanding tabs.
func drawLine(s tcell.Screen, x, y, maxX int, style tcell.Style, line []rune, tabWidth int) {
	col := 0
	for _, r := range line {
		w := cellWidth(r, col, tabWidth)
		if x+col+w > maxX {
			return
		}
		switch {
		case r == '\t':
			for i := 0; i < w; i++ {
				s.SetContent(x+col+i, y, ' ', nil, style)
			}
		case unicode.IsControl(r) || runewidth.RuneWidth(r) == 0:
			s.SetContent(x+col, y, '?', nil, style.Reverse(true))
		default:
			s.SetContent(x+col, y, r, nil, style)
		}
		col += w
	}
}

// drawText draws text on one row starting at x, clipped at maxX, and returns the
// column after the last cell drawn.
func drawText(s tcell.Screen, x, y, maxX int, style tcell.Style, text string) int {
	for _, r := range text {
		w := cellWidth(r, 0, 1)
		if x+w > maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

// fill paints the rectangle [x1, x2) x [y1, y2) with spaces in style.
func fill(s tcell.Screen, x1, y1, x2, y2 int, style tcell.Style) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

// Package buffer holds the document as an ordered sequence of lines.
//
// Positions are (row, col) pairs where col indexes the runes of a line and may be
// equal to the line length, meaning end of line. Out of range positions are
// programmer errors and panic with an index-out-of-range error.
package buffer

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strings"
	"unicode/utf8"
)

// ErrInvalidEncoding is returned when content read into a buffer is not UTF-8.
// Decoding it would replace bytes and saving would not give the file back.
var ErrInvalidEncoding = errors.New("content is not valid UTF-8")

// Buffer is a line buffer. It always contains at least one line.
type Buffer struct {
	lines [][]rune
}

// New returns a buffer holding a single empty line.
func New() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// NewString returns a buffer holding s, split on line separators.
func NewString(s string) *Buffer {
	b := New()
	b.setText(s)
	return b
}

// Reset empties the document down to one empty line.
func (b *Buffer) Reset() {
	b.lines = [][]rune{{}}
}

func (b *Buffer) LineCount() int {
	return len(b.lines)
}

func (b *Buffer) Line(row int) string {
	return string(b.lines[row])
}

func (b *Buffer) LineLen(row int) int {
	return len(b.lines[row])
}

// Lines returns a copy of every line.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, line := range b.lines {
		out[i] = string(line)
	}
	return out
}

// InsertChar inserts c before col on row.
func (b *Buffer) InsertChar(row, col int, c rune) {
	b.lines[row] = slices.Insert(b.lines[row], col, c)
}

// DeleteChar removes the rune before col. At the start of a line it joins the line
// onto the previous one; at (0, 0) there is nothing to delete.
func (b *Buffer) DeleteChar(row, col int) {
	line := b.lines[row]
	if col > 0 {
		b.lines[row] = slices.Delete(line, col-1, col)
		return
	}
	if col < 0 {
		panic("buffer: negative column")
	}
	if row == 0 {
		return
	}
	b.lines[row-1] = append(b.lines[row-1], line...)
	b.lines = slices.Delete(b.lines, row, row+1)
}

// InsertNewLine splits row at col. The text right of col becomes row+1.
func (b *Buffer) InsertNewLine(row, col int) {
	line := b.lines[row]
	right := slices.Clone(line[col:])
	b.lines[row] = line[:col:col]
	b.lines = slices.Insert(b.lines, row+1, right)
}

// TrimTrailingSpace strips trailing blanks from every line and returns how many
// lines changed.
func (b *Buffer) TrimTrailingSpace() int {
	changed := 0
	for i, line := range b.lines {
		end := len(line)
		for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t') {
			end--
		}
		if end != len(line) {
			b.lines[i] = line[:end:end]
			changed++
		}
	}
	return changed
}

// String joins the lines with "\n".
func (b *Buffer) String() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// ReadFrom replaces the document with everything read from r. "\r\n", "\r" and
// "\n" all end a line. On a read error or invalid UTF-8 the document is left
// unchanged.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	var content bytes.Buffer
	n, err := content.ReadFrom(r)
	if err != nil {
		return n, err
	}
	if !utf8.Valid(content.Bytes()) {
		return n, ErrInvalidEncoding
	}
	b.setText(content.String())
	return n, nil
}

// WriteTo writes the document to w, lines joined with "\n".
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (b *Buffer) setText(s string) {
	lines := [][]rune{}
	cur := []rune{}
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		switch rs[i] {
		case '\r':
			if i+1 < len(rs) && rs[i+1] == '\n' {
				i++
			}
			fallthrough
		case '\n':
			lines = append(lines, cur)
			cur = []rune{}
		default:
			cur = append(cur, rs[i])
		}
	}
	b.lines = append(lines, cur)
}

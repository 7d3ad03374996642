// Package cursor implements the edit position and its movement rules.
//
// A State is a value. Every movement is a function from a State and a read-only
// View of the document to a new State, so callers never share a mutable cursor.
package cursor

// View is the part of a line buffer the cursor needs to move.
type View interface {
	LineCount() int
	LineLen(row int) int
}

// State is a cursor position plus the column vertical moves try to return to.
type State struct {
	Row, Col int
	// PreferredCol is set by horizontal moves and repositioning and left alone by
	// vertical moves.
	PreferredCol int
}

// SetPosition places the cursor at (row, col) and remembers col.
func SetPosition(row, col int) State {
	return State{Row: row, Col: col, PreferredCol: col}
}

func MoveLeft(s State, v View) State {
	switch {
	case s.Col > 0:
		return SetPosition(s.Row, s.Col-1)
	case s.Row > 0:
		return SetPosition(s.Row-1, v.LineLen(s.Row-1))
	}
	return s
}

func MoveRight(s State, v View) State {
	switch {
	case s.Col < v.LineLen(s.Row):
		return SetPosition(s.Row, s.Col+1)
	case s.Row < v.LineCount()-1:
		return SetPosition(s.Row+1, 0)
	}
	return s
}

func MoveUp(s State, v View) State {
	if s.Row == 0 {
		return s
	}
	return vertical(s, v, s.Row-1)
}

func MoveDown(s State, v View) State {
	if s.Row >= v.LineCount()-1 {
		return s
	}
	return vertical(s, v, s.Row+1)
}

// MoveLineStart and MoveLineEnd are horizontal moves, they reset PreferredCol.
func MoveLineStart(s State, _ View) State {
	return SetPosition(s.Row, 0)
}

func MoveLineEnd(s State, v View) State {
	return SetPosition(s.Row, v.LineLen(s.Row))
}

// Clamp pulls s back inside the document, e.g. after the document was replaced.
// PreferredCol is kept.
func Clamp(s State, v View) State {
	s.Row = min(max(s.Row, 0), v.LineCount()-1)
	s.Col = min(max(s.Col, 0), v.LineLen(s.Row))
	return s
}

func vertical(s State, v View, row int) State {
	return State{
		Row:          row,
		Col:          min(s.PreferredCol, v.LineLen(row)),
		PreferredCol: s.PreferredCol,
	}
}

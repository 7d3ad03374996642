// Package viewport tracks which rows of the document are on screen.
package viewport

// Viewport is the visible window over the document: rows
// [ScrollRow, ScrollRow+VisibleRows).
type Viewport struct {
	ScrollRow   int
	VisibleRows int
}

// New returns a viewport at the top of the document. visibleRows is clamped to a
// minimum of 1.
func New(visibleRows int) Viewport {
	return Viewport{VisibleRows: max(visibleRows, 1)}
}

// End is one past the last visible row.
func (v Viewport) End() int {
	return v.ScrollRow + v.VisibleRows
}

func (v Viewport) Contains(row int) bool {
	return row >= v.ScrollRow && row < v.End()
}

// Reconcile scrolls v so cursorRow is visible, then clamps the scroll offset to
// [0, max(0, lineCount-VisibleRows)].
func Reconcile(cursorRow int, v Viewport, lineCount int) Viewport {
	v.VisibleRows = max(v.VisibleRows, 1)
	if cursorRow < v.ScrollRow {
		v.ScrollRow = cursorRow
	} else if cursorRow >= v.End() {
		v.ScrollRow = cursorRow - v.VisibleRows + 1
	}
	v.ScrollRow = min(v.ScrollRow, max(0, lineCount-v.VisibleRows))
	v.ScrollRow = max(v.ScrollRow, 0)
	return v
}

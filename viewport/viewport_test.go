package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewClampsRows(t *testing.T) {
	assert.Equal(t, Viewport{VisibleRows: 1}, New(0))
	assert.Equal(t, Viewport{VisibleRows: 1}, New(-3))
	assert.Equal(t, Viewport{VisibleRows: 20}, New(20))
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name      string
		cursorRow int
		in        Viewport
		lineCount int
		want      Viewport
	}{
		{"visible cursor stays", 2, Viewport{0, 4}, 10, Viewport{0, 4}},
		{"scroll up to cursor", 1, Viewport{5, 4}, 10, Viewport{1, 4}},
		{"scroll down so cursor is last", 7, Viewport{0, 4}, 10, Viewport{4, 4}},
		{"clamp past end", 6, Viewport{8, 4}, 10, Viewport{6, 4}},
		{"short document", 0, Viewport{3, 10}, 2, Viewport{0, 10}},
		{"zero rows", 3, Viewport{0, 0}, 10, Viewport{3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconcile(tt.cursorRow, tt.in, tt.lineCount))
		})
	}
}

func TestContains(t *testing.T) {
	v := Viewport{ScrollRow: 3, VisibleRows: 2}
	assert.False(t, v.Contains(2))
	assert.True(t, v.Contains(3))
	assert.True(t, v.Contains(4))
	assert.False(t, v.Contains(5))
	assert.Equal(t, 5, v.End())
}

func TestPropertyReconcileInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lineCount := rapid.IntRange(1, 200).Draw(t, "lineCount")
		cursorRow := rapid.IntRange(0, lineCount-1).Draw(t, "cursorRow")
		v := Viewport{
			ScrollRow:   rapid.IntRange(0, 300).Draw(t, "scroll"),
			VisibleRows: rapid.IntRange(1, 50).Draw(t, "rows"),
		}

		got := Reconcile(cursorRow, v, lineCount)
		require.GreaterOrEqual(t, got.ScrollRow, 0)
		require.LessOrEqual(t, got.ScrollRow, max(0, lineCount-got.VisibleRows))
		require.True(t, got.Contains(cursorRow))
	})
}

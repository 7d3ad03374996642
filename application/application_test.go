package application

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teichholz/goditor/commands"
	"github.com/teichholz/goditor/config"
	"github.com/teichholz/goditor/editor"
	"github.com/teichholz/goditor/files"
)

type harness struct {
	screen tcell.SimulationScreen
	fs     afero.Fs
	editor *editor.Controller
	app    *Application
}

func newHarness(t *testing.T, settings config.Settings) *harness {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(30, 6)

	fs := afero.NewMemMapFs()
	ed := editor.NewController(logr.Discard(), editor.WithStore(files.NewStore(fs)))
	app := New(logr.Discard(), s, ed, commands.DefaultRegistry(logr.Discard()), settings)
	return &harness{screen: s, fs: fs, editor: ed, app: app}
}

func (h *harness) run(t *testing.T) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- h.app.Run() }()
	return done
}

func (h *harness) typeText(text string) {
	for _, r := range text {
		if r == '\n' {
			h.screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
			continue
		}
		h.screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

func (h *harness) key(k tcell.Key) {
	h.screen.InjectKey(k, 0, tcell.ModNone)
}

func (h *harness) row(y int) string {
	cells, w, _ := h.screen.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(sb.String(), " ")
}

func waitDone(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("editor did not quit")
	}
}

func TestTypeSaveQuit(t *testing.T) {
	h := newHarness(t, config.Default())
	done := h.run(t)

	h.typeText("hi\nyo")
	h.key(tcell.KeyCtrlS) // no file name yet, reported in the status line
	h.key(tcell.KeyCtrlP)
	h.typeText("save out.txt")
	h.key(tcell.KeyEnter)
	h.key(tcell.KeyCtrlQ)
	waitDone(t, done)

	content, err := afero.ReadFile(h.fs, "out.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi\nyo", string(content))
	assert.False(t, h.editor.Modified())
}

func TestQuitWithUnsavedChangesNeedsConfirmation(t *testing.T) {
	h := newHarness(t, config.Default())
	done := h.run(t)

	h.typeText("x")
	h.key(tcell.KeyCtrlQ)
	h.key(tcell.KeyCtrlQ)
	waitDone(t, done)
	assert.True(t, h.editor.Modified())
	assert.Equal(t, "x", h.editor.Text())
}

func TestQuitConfirmationResetsOnEdit(t *testing.T) {
	h := newHarness(t, config.Default())
	h.app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	h.app.handleEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModNone))
	assert.False(t, h.app.quit)
	assert.True(t, h.app.isError)

	h.app.handleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	h.app.handleEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModNone))
	assert.False(t, h.app.quit)

	h.app.handleEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModNone))
	assert.True(t, h.app.quit)
}

func TestSettingsChangedAppliesTrim(t *testing.T) {
	h := newHarness(t, config.Default())
	s := config.Default()
	s.Editor.TrimFiles = true
	h.app.SettingsChanged(s)
	done := h.run(t)

	h.typeText("a  ")
	h.key(tcell.KeyCtrlP)
	h.typeText("w f.txt")
	h.key(tcell.KeyEnter)
	h.key(tcell.KeyCtrlQ)
	waitDone(t, done)

	content, err := afero.ReadFile(h.fs, "f.txt")
	require.NoError(t, err)
	assert.Equal(t, "a", string(content))
}

func TestPromptErrors(t *testing.T) {
	h := newHarness(t, config.Default())
	h.app.handleEvent(tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModNone))
	require.NotNil(t, h.app.prompt)
	for _, r := range "bogus" {
		h.app.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	h.app.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Nil(t, h.app.prompt)
	assert.True(t, h.app.isError)
	assert.Contains(t, h.app.message, "unknown command")
	assert.Contains(t, h.app.message, "load, new, open, save, write")

	// backspace on an empty prompt closes it
	h.app.handleEvent(tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModNone))
	h.app.handleEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	assert.Nil(t, h.app.prompt)
	assert.Equal(t, "", h.editor.Text())
}

func TestDraw(t *testing.T) {
	h := newHarness(t, config.Default())
	for _, r := range "one\ntwo\nthree" {
		if r == '\n' {
			require.NoError(t, h.editor.Execute(commands.InsertNewLine{}))
			continue
		}
		require.NoError(t, h.editor.Execute(commands.InsertChar{Char: r}))
	}
	h.app.draw()

	assert.Equal(t, "1 one", h.row(0))
	assert.Equal(t, "2 two", h.row(1))
	assert.Equal(t, "3 three", h.row(2))
	assert.Equal(t, "", h.row(3))
	assert.True(t, strings.HasPrefix(h.row(5), " [No Name] [+]"))
	assert.True(t, strings.HasSuffix(h.row(5), "3:6"))

	x, y, visible := h.screen.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 7, x)
	assert.Equal(t, 2, y)
	assert.Equal(t, 5, h.editor.Viewport().VisibleRows)
}

func TestDrawRelativeNumbersAndTabs(t *testing.T) {
	s := config.Default()
	s.Editor.LineNumbers = config.LineNumbersRelative
	s.Editor.TabWidth = 4
	h := newHarness(t, s)
	for _, cmd := range []commands.Command{
		commands.InsertChar{Char: 'a'}, commands.InsertNewLine{},
		commands.InsertChar{Char: '\t'}, commands.InsertChar{Char: 'b'}, commands.InsertNewLine{},
		commands.InsertChar{Char: 'c'}, commands.MoveUp{},
	} {
		require.NoError(t, h.editor.Execute(cmd))
	}
	h.app.draw()

	assert.Equal(t, "1 a", h.row(0))
	assert.Equal(t, "2     b", h.row(1))
	assert.Equal(t, "1 c", h.row(2))

	x, y, _ := h.screen.GetCursor()
	assert.Equal(t, 2+4, x)
	assert.Equal(t, 1, y)
}

func TestDrawWithoutLineNumbers(t *testing.T) {
	s := config.Default()
	s.Editor.LineNumbers = config.LineNumbersOff
	s.Editor.StatusLine = false
	h := newHarness(t, s)
	require.NoError(t, h.editor.Execute(commands.InsertChar{Char: 'z'}))
	h.app.draw()

	assert.Equal(t, "z", h.row(0))
	assert.Equal(t, "", h.row(5))
	assert.Equal(t, 6, h.editor.Viewport().VisibleRows)
}

func TestDrawScrolls(t *testing.T) {
	h := newHarness(t, config.Default())
	for i := 0; i < 9; i++ {
		require.NoError(t, h.editor.Execute(commands.InsertChar{Char: rune('a' + i)}))
		require.NoError(t, h.editor.Execute(commands.InsertNewLine{}))
	}
	require.NoError(t, h.editor.Execute(commands.InsertChar{Char: 'j'}))
	h.app.draw()

	// ten lines, five text rows, cursor on the last line
	assert.Equal(t, 5, h.editor.Viewport().ScrollRow)
	assert.Equal(t, " 6 f", h.row(0))
	assert.Equal(t, "10 j", h.row(4))
	_, y, _ := h.screen.GetCursor()
	assert.Equal(t, 4, y)
}

func click(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)
}

func TestClickMovesCursor(t *testing.T) {
	h := newHarness(t, config.Default())
	for _, cmd := range []commands.Command{
		commands.InsertChar{Char: 'o'}, commands.InsertChar{Char: 'n'}, commands.InsertChar{Char: 'e'},
		commands.InsertNewLine{}, commands.InsertChar{Char: '\t'}, commands.InsertChar{Char: 'b'},
		commands.InsertNewLine{}, commands.InsertChar{Char: 't'}, commands.InsertChar{Char: 'w'},
		commands.InsertChar{Char: 'o'},
	} {
		require.NoError(t, h.editor.Execute(cmd))
	}
	h.app.draw() // gutter is two cells wide, text starts at x = 2

	tests := []struct {
		name     string
		x, y     int
		row, col int
	}{
		{"inside text", 3, 0, 0, 1},
		{"inside tab", 4, 1, 1, 0},
		{"after tab", 6, 1, 1, 1},
		{"past end of line", 20, 1, 1, 2},
		{"below last line", 3, 4, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.app.handleEvent(click(tt.x, tt.y))
			cur := h.editor.Cursor()
			assert.Equal(t, tt.row, cur.Row)
			assert.Equal(t, tt.col, cur.Col)
			assert.Equal(t, tt.col, cur.PreferredCol)
		})
	}

	// the gutter, the status line and other buttons leave the cursor alone
	require.NoError(t, h.editor.Execute(commands.MoveTo{Row: 0, Col: 0}))
	h.app.handleEvent(click(0, 1))
	h.app.handleEvent(click(5, 5))
	h.app.handleEvent(tcell.NewEventMouse(4, 1, tcell.Button2, tcell.ModNone))
	assert.Equal(t, 0, h.editor.Cursor().Row)
	assert.Equal(t, 0, h.editor.Cursor().Col)
}

func TestClickWhileRunning(t *testing.T) {
	h := newHarness(t, config.Default())
	done := h.run(t)

	h.typeText("hello\nworld")
	h.screen.InjectMouse(4, 0, tcell.Button1, tcell.ModNone)
	h.typeText("X")
	h.key(tcell.KeyCtrlQ)
	h.key(tcell.KeyCtrlQ)
	waitDone(t, done)

	assert.Equal(t, "heXllo\nworld", h.editor.Text())
}

func TestPasteInsertsControlKeysLiterally(t *testing.T) {
	h := newHarness(t, config.Default())
	h.app.handleEvent(tcell.NewEventPaste(true))
	for _, ev := range []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone),
	} {
		h.app.handleEvent(ev)
	}
	h.app.handleEvent(tcell.NewEventPaste(false))

	assert.Equal(t, "a\n\tb", h.editor.Text())
	assert.Nil(t, h.app.prompt)
	assert.False(t, h.app.quit)
	assert.False(t, h.app.quitArmed)

	// after the paste Escape quits again
	h.app.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.True(t, h.app.quitArmed)
}

func TestZeroSettingsTabWidth(t *testing.T) {
	h := newHarness(t, config.Settings{})
	require.NoError(t, h.editor.Execute(commands.InsertChar{Char: '\t'}))
	require.NoError(t, h.editor.Execute(commands.InsertChar{Char: 'x'}))
	assert.NotPanics(t, func() { h.app.draw() })
	assert.Equal(t, config.Default().Editor.TabWidth, h.app.settings.Editor.TabWidth)
	assert.Equal(t, "1     x", h.row(0))
}

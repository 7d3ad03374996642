// Package application runs the editor in a terminal: it owns the tcell screen,
// feeds input to the editor controller and draws the result.
package application

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"

	"github.com/teichholz/goditor/commands"
	"github.com/teichholz/goditor/config"
	"github.com/teichholz/goditor/editor"
	"github.com/teichholz/goditor/input"
	"github.com/teichholz/goditor/layout"
)

type Application struct {
	log      logr.Logger
	screen   tcell.Screen
	editor   *editor.Controller
	registry *commands.Registry
	settings config.Settings

	queue  input.Queue
	prompt *prompt

	textArea, gutterArea, statusArea layout.Dimensions

	message string
	isError bool

	// quitArmed is set after a quit request was refused because of unsaved
	// changes; a second request quits anyway.
	quitArmed bool
	quit      bool
	// pasting is set between the start and end of a bracketed paste.
	pasting bool
}

// New returns an application drawing on screen, which must already be
// initialized. Run finalizes it.
func New(log logr.Logger, screen tcell.Screen, ed *editor.Controller, registry *commands.Registry, settings config.Settings) *Application {
	app := &Application{
		log:      log.WithName("app"),
		screen:   screen,
		editor:   ed,
		registry: registry,
	}
	app.applySettings(settings)
	return app
}

// SettingsChanged hands new settings to the event loop. It may be called from
// any goroutine.
func (app *Application) SettingsChanged(s config.Settings) {
	if err := app.screen.PostEvent(tcell.NewEventInterrupt(s)); err != nil {
		app.log.Error(err, "dropped settings update")
	}
}

func (app *Application) applySettings(s config.Settings) {
	if s.Editor.TabWidth < 1 {
		s.Editor.TabWidth = config.Default().Editor.TabWidth
	}
	app.settings = s
	app.editor.SetTrimOnSave(s.Editor.TrimFiles)
}

// Run draws and processes input until the user quits. Events that arrive while
// one is processed are queued and all handled before the next redraw.
func (app *Application) Run() (err error) {
	events := make(chan tcell.Event, 64)
	stop := make(chan struct{})
	go app.screen.ChannelEvents(events, stop)

	defer func() {
		// restore the terminal before a panic reaches the user
		maybePanic := recover()
		close(stop)
		app.screen.Fini()
		if maybePanic != nil {
			panic(maybePanic)
		}
	}()

	for !app.quit {
		app.draw()

		ev, ok := <-events
		if !ok {
			return nil
		}
		app.queue.Push(ev)
		app.queue.Fill(events)
		app.queue.Drain(app.handleEvent)
	}
	app.log.Info("quit", "path", app.editor.Path(), "modified", app.editor.Modified())
	return nil
}

func (app *Application) handleEvent(ev tcell.Event) {
	if app.quit {
		return
	}
	switch ev := ev.(type) {
	case *tcell.EventResize:
		app.screen.Sync()
		return
	case *tcell.EventInterrupt:
		if s, ok := ev.Data().(config.Settings); ok {
			app.applySettings(s)
			app.setMessage("config reloaded")
		}
		return
	case *tcell.EventPaste:
		app.pasting = ev.Start()
		return
	case *tcell.EventMouse:
		app.handleMouse(ev)
		return
	}

	if app.prompt != nil {
		app.handlePrompt(ev)
		return
	}

	// pasted text is inserted as typed, control keys inside it do nothing
	if app.pasting {
		if cmd, ok := input.TryMap(ev); ok {
			app.execute(cmd)
		}
		return
	}

	if input.IsQuit(ev) {
		app.requestQuit()
		return
	}
	app.quitArmed = false

	if input.IsCommandLine(ev) {
		app.prompt = &prompt{}
		return
	}

	cmd, ok := input.TryMap(ev)
	if !ok {
		return
	}
	app.execute(cmd)
}

// handleMouse moves the cursor to a left click inside the text area.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons() != tcell.Button1 || app.prompt != nil {
		return
	}
	x, y := ev.Position()
	area := app.textArea
	if !area.Contains(x, y) {
		return
	}
	row := min(app.editor.Viewport().ScrollRow+y-area.Origin.Y, app.editor.LineCount()-1)
	line := []rune(app.editor.Line(row))
	col := columnAt(line, x-area.Origin.X, app.settings.Editor.TabWidth)
	app.quitArmed = false
	app.execute(commands.MoveTo{Row: row, Col: col})
}

func (app *Application) execute(cmd commands.Command) {
	app.message, app.isError = "", false
	if err := app.editor.Execute(cmd); err != nil {
		app.setError(err)
		return
	}
	switch cmd.(type) {
	case commands.Save:
		app.setMessage(fmt.Sprintf("wrote %s", app.editor.Path()))
	case commands.Load:
		app.setMessage(fmt.Sprintf("opened %s", app.editor.Path()))
	}
}

func (app *Application) requestQuit() {
	if app.editor.Modified() && !app.quitArmed {
		app.quitArmed = true
		app.setError(errors.New("unsaved changes, quit again to discard them"))
		return
	}
	app.quit = true
}

func (app *Application) setMessage(msg string) {
	app.message, app.isError = msg, false
}

func (app *Application) setError(err error) {
	app.message, app.isError = err.Error(), true
}

// draw lays out the screen: line numbers and text on top, status line below.
// The layout only records the areas; drawing starts once the text area height is
// known, so the viewport is settled before anything reads it.
func (app *Application) draw() {
	s := app.screen
	s.Clear()
	width, height := s.Size()

	app.textArea, app.gutterArea, app.statusArea = layout.Dimensions{}, layout.Dimensions{}, layout.Dimensions{}
	top := []layout.FlexItem{}
	if app.settings.Editor.LineNumbers != config.LineNumbersOff {
		gutter := len(strconv.Itoa(app.editor.LineCount())) + 1
		top = append(top, layout.FlexItemBox(func(d layout.Dimensions) { app.gutterArea = d }, layout.Exact(layout.Abs(gutter)), nil))
	}
	top = append(top, layout.FlexItemBox(func(d layout.Dimensions) { app.textArea = d }, layout.Max(layout.Rel(1)), nil))

	rows := []layout.FlexItem{
		layout.FlexItemBox(nil, layout.Max(layout.Rel(1)), layout.Row(top...)),
	}
	if app.settings.Editor.StatusLine || app.prompt != nil || app.message != "" {
		rows = append(rows, layout.FlexItemBox(func(d layout.Dimensions) { app.statusArea = d }, layout.Exact(layout.Abs(1)), nil))
	}
	layout.Column(rows...).StartLayouting(width, height)

	app.editor.SetVisibleRows(app.textArea.Height)
	app.bufferBox(app.textArea)
	app.lineNumberBox(app.gutterArea)
	app.statusLineBox(app.statusArea)

	if app.prompt != nil {
		s.ShowCursor(app.promptCursor(width, height))
	} else if x, y, ok := app.cursorPosition(); ok {
		s.ShowCursor(x, y)
	} else {
		s.HideCursor()
	}
	s.Show()
}

func (app *Application) bufferBox(dims layout.Dimensions) {
	tab := app.settings.Editor.TabWidth
	for i, line := range app.editor.VisibleLines() {
		if i >= dims.Height {
			break
		}
		drawLine(app.screen, dims.Origin.X, dims.Origin.Y+i, dims.Origin.X+dims.Width, DefaultStyle, []rune(line), tab)
	}
}

func (app *Application) lineNumberBox(dims layout.Dimensions) {
	if dims.Width == 0 {
		return
	}
	vp := app.editor.Viewport()
	cur := app.editor.Cursor()
	pad := dims.Width - 1
	xmax := dims.Origin.X + dims.Width

	for i := 0; i < dims.Height; i++ {
		row := vp.ScrollRow + i
		if row >= app.editor.LineCount() {
			break
		}
		y := dims.Origin.Y + i
		switch {
		case app.settings.Editor.LineNumbers == config.LineNumbersRelative && row != cur.Row:
			distance := max(row-cur.Row, cur.Row-row)
			drawText(app.screen, dims.Origin.X, y, xmax, LightStyle, fmt.Sprintf("%*d ", pad, distance))
		case row == cur.Row:
			drawText(app.screen, dims.Origin.X, y, xmax, DefaultStyle, fmt.Sprintf("%*d ", pad, row+1))
		default:
			drawText(app.screen, dims.Origin.X, y, xmax, LightStyle, fmt.Sprintf("%*d ", pad, row+1))
		}
	}
}

func (app *Application) statusLineBox(dims layout.Dimensions) {
	if dims.Height == 0 {
		return
	}
	s := app.screen
	xmax := dims.Origin.X + dims.Width
	y := dims.Origin.Y
	fill(s, dims.Origin.X, y, xmax, y+dims.Height, StatusStyle)

	if app.prompt != nil {
		drawText(s, dims.Origin.X, y, xmax, StatusStyle, ":"+string(app.prompt.text))
		return
	}

	name := "[No Name]"
	if p := app.editor.Path(); p != "" {
		name = filepath.Base(p)
	}
	if app.editor.Modified() {
		name += " [+]"
	}
	x := drawText(s, dims.Origin.X, y, xmax, StatusStyle, " "+name+"  ")
	if app.message != "" {
		style := StatusStyle
		if app.isError {
			style = ErrorStyle
		}
		drawText(s, x, y, xmax, style, app.message)
	}

	cur := app.editor.Cursor()
	pos := fmt.Sprintf(" %d:%d ", cur.Row+1, cur.Col+1)
	drawText(s, max(dims.Origin.X, xmax-len(pos)), y, xmax, StatusStyle, pos)
}

// cursorPosition maps the editor cursor to a screen cell inside the text area.
func (app *Application) cursorPosition() (x, y int, ok bool) {
	area := app.textArea
	if area.Width <= 0 || area.Height <= 0 {
		return 0, 0, false
	}
	cur := app.editor.Cursor()
	vp := app.editor.Viewport()
	if !vp.Contains(cur.Row) {
		return 0, 0, false
	}
	line := []rune(app.editor.Line(cur.Row))
	x = area.Origin.X + displayColumn(line, cur.Col, app.settings.Editor.TabWidth)
	x = min(x, area.Origin.X+area.Width-1)
	y = area.Origin.Y + cur.Row - vp.ScrollRow
	return x, y, true
}

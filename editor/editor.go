// Package editor is the editing state machine. A Controller owns one document,
// one cursor and one viewport and changes them only in response to Commands.
//
// A Controller is not safe for concurrent use; every Execute runs to completion
// before the next one starts.
package editor

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/teichholz/goditor/buffer"
	"github.com/teichholz/goditor/commands"
	"github.com/teichholz/goditor/cursor"
	"github.com/teichholz/goditor/viewport"
)

var (
	// ErrNoPath is returned by Save and Load when neither the command nor the
	// controller names a file.
	ErrNoPath  = errors.New("no file name")
	ErrNoStore = errors.New("no file store configured")
)

// Store is where documents are read from and written to.
type Store interface {
	Read(path string, dest io.ReaderFrom) error
	Write(path string, src io.WriterTo) error
}

type Controller struct {
	log   logr.Logger
	store Store

	buf *buffer.Buffer
	cur cursor.State
	vp  viewport.Viewport

	path       string
	modified   bool
	trimOnSave bool
}

type Option func(*Controller)

func WithStore(s Store) Option {
	return func(c *Controller) { c.store = s }
}

// WithTrimOnSave strips trailing blanks from every line before saving.
func WithTrimOnSave(trim bool) Option {
	return func(c *Controller) { c.trimOnSave = trim }
}

func WithVisibleRows(n int) Option {
	return func(c *Controller) { c.vp = viewport.New(n) }
}

// NewController returns a controller editing an empty document.
func NewController(log logr.Logger, opts ...Option) *Controller {
	c := &Controller{
		log: log,
		buf: buffer.New(),
		vp:  viewport.New(1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute applies cmd and then brings the viewport back around the cursor. Only
// document commands (save, load) can fail; editing commands always succeed.
func (c *Controller) Execute(cmd commands.Command) error {
	err := c.apply(cmd)
	c.reconcile()
	if err != nil {
		c.log.Error(err, "command failed", "command", name(cmd))
		return err
	}
	c.log.V(2).Info("executed", "command", name(cmd), "row", c.cur.Row, "col", c.cur.Col, "scroll", c.vp.ScrollRow)
	return nil
}

func name(cmd commands.Command) string {
	if cmd == nil {
		return "<nil>"
	}
	return cmd.Kind().String()
}

func (c *Controller) apply(cmd commands.Command) error {
	switch cmd := cmd.(type) {
	case commands.InsertChar:
		if cmd.Char == '\n' || cmd.Char == '\r' {
			c.insertNewLine()
			break
		}
		c.buf.InsertChar(c.cur.Row, c.cur.Col, cmd.Char)
		c.cur = cursor.SetPosition(c.cur.Row, c.cur.Col+1)
		c.modified = true
	case commands.MoveLeft:
		c.cur = cursor.MoveLeft(c.cur, c.buf)
	case commands.MoveRight:
		c.cur = cursor.MoveRight(c.cur, c.buf)
	case commands.MoveUp:
		c.cur = cursor.MoveUp(c.cur, c.buf)
	case commands.MoveDown:
		c.cur = cursor.MoveDown(c.cur, c.buf)
	case commands.MoveLineStart:
		c.cur = cursor.MoveLineStart(c.cur, c.buf)
	case commands.MoveLineEnd:
		c.cur = cursor.MoveLineEnd(c.cur, c.buf)
	case commands.MoveTo:
		target := cursor.Clamp(cursor.SetPosition(cmd.Row, cmd.Col), c.buf)
		c.cur = cursor.SetPosition(target.Row, target.Col)
	case commands.DeleteBackward:
		c.deleteBackward()
	case commands.DeleteForward:
		c.deleteForward()
	case commands.InsertNewLine:
		c.insertNewLine()
	case commands.Save:
		return c.save(cmd.Path)
	case commands.Load:
		return c.load(cmd.Path)
	case commands.New:
		c.reset()
	default:
		return fmt.Errorf("%w: %T", commands.ErrUnknownCommand, cmd)
	}
	return nil
}

func (c *Controller) insertNewLine() {
	c.buf.InsertNewLine(c.cur.Row, c.cur.Col)
	c.cur = cursor.SetPosition(c.cur.Row+1, 0)
	c.modified = true
}

func (c *Controller) deleteBackward() {
	row, col := c.cur.Row, c.cur.Col
	switch {
	case col > 0:
		c.buf.DeleteChar(row, col)
		c.cur = cursor.SetPosition(row, col-1)
	case row > 0:
		prevLen := c.buf.LineLen(row - 1)
		c.buf.DeleteChar(row, 0)
		c.cur = cursor.SetPosition(row-1, prevLen)
	default:
		return
	}
	c.modified = true
}

// deleteForward removes the rune under the cursor, or joins the next line onto
// the current one at end of line. The cursor does not move.
func (c *Controller) deleteForward() {
	row, col := c.cur.Row, c.cur.Col
	switch {
	case col < c.buf.LineLen(row):
		c.buf.DeleteChar(row, col+1)
	case row < c.buf.LineCount()-1:
		c.buf.DeleteChar(row+1, 0)
	default:
		return
	}
	c.modified = true
}

func (c *Controller) save(path string) error {
	if path == "" {
		path = c.path
	}
	if path == "" {
		return ErrNoPath
	}
	if c.store == nil {
		return ErrNoStore
	}
	if c.trimOnSave {
		if n := c.buf.TrimTrailingSpace(); n > 0 {
			c.log.V(1).Info("trimmed trailing whitespace", "lines", n)
			c.cur = cursor.Clamp(c.cur, c.buf)
		}
	}
	if err := c.store.Write(path, c.buf); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	c.log.Info("saved", "path", path, "lines", c.buf.LineCount())
	c.path = path
	c.modified = false
	return nil
}

// load replaces the document with the file at path. On failure the current
// document, cursor and file name are kept.
func (c *Controller) load(path string) error {
	if path == "" {
		path = c.path
	}
	if path == "" {
		return ErrNoPath
	}
	if c.store == nil {
		return ErrNoStore
	}
	next := buffer.New()
	if err := c.store.Read(path, next); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	c.log.Info("loaded", "path", path, "lines", next.LineCount())
	c.buf = next
	c.cur = cursor.SetPosition(0, 0)
	c.vp.ScrollRow = 0
	c.path = path
	c.modified = false
	return nil
}

func (c *Controller) reset() {
	c.buf.Reset()
	c.cur = cursor.SetPosition(0, 0)
	c.vp.ScrollRow = 0
	c.path = ""
	c.modified = false
}

func (c *Controller) reconcile() {
	c.vp = viewport.Reconcile(c.cur.Row, c.vp, c.buf.LineCount())
}

// SetVisibleRows is called whenever the text area is resized. n is clamped to
// at least 1.
func (c *Controller) SetVisibleRows(n int) {
	c.vp.VisibleRows = max(n, 1)
	c.reconcile()
}

// SetPath names the file Save writes to without reading it, e.g. for a file that
// does not exist yet.
func (c *Controller) SetPath(path string) {
	c.path = path
}

func (c *Controller) SetTrimOnSave(trim bool) {
	c.trimOnSave = trim
}

func (c *Controller) Cursor() cursor.State        { return c.cur }
func (c *Controller) Viewport() viewport.Viewport { return c.vp }
func (c *Controller) Path() string                { return c.path }
func (c *Controller) Modified() bool              { return c.modified }
func (c *Controller) LineCount() int              { return c.buf.LineCount() }
func (c *Controller) Line(row int) string         { return c.buf.Line(row) }
func (c *Controller) Text() string                { return c.buf.String() }

// VisibleLines returns the lines inside the viewport.
func (c *Controller) VisibleLines() []string {
	end := min(c.vp.End(), c.buf.LineCount())
	lines := make([]string, 0, end-c.vp.ScrollRow)
	for row := c.vp.ScrollRow; row < end; row++ {
		lines = append(lines, c.buf.Line(row))
	}
	return lines
}

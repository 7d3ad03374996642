// Package commands defines the editing intentions the editor executes.
package commands

import "fmt"

// Kind tags a Command.
type Kind int

const (
	KindMoveLeft Kind = iota
	KindMoveRight
	KindMoveUp
	KindMoveDown
	KindMoveLineStart
	KindMoveLineEnd
	KindMoveTo
	KindDeleteBackward
	KindDeleteForward
	KindInsertNewLine
	KindInsertChar
	KindSave
	KindLoad
	KindNew

	kindCount
)

var kindNames = [...]string{
	KindMoveLeft:       "move-left",
	KindMoveRight:      "move-right",
	KindMoveUp:         "move-up",
	KindMoveDown:       "move-down",
	KindMoveLineStart:  "move-line-start",
	KindMoveLineEnd:    "move-line-end",
	KindMoveTo:         "move-to",
	KindDeleteBackward: "delete-backward",
	KindDeleteForward:  "delete-forward",
	KindInsertNewLine:  "insert-newline",
	KindInsertChar:     "insert-char",
	KindSave:           "save",
	KindLoad:           "load",
	KindNew:            "new",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every Kind.
func Kinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Command is one editing intention. The set of implementations is closed; only
// the types in this package satisfy it.
type Command interface {
	Kind() Kind
	sealed()
}

type (
	MoveLeft       struct{}
	MoveRight      struct{}
	MoveUp         struct{}
	MoveDown       struct{}
	MoveLineStart  struct{}
	MoveLineEnd    struct{}
	DeleteBackward struct{}
	DeleteForward  struct{}
	InsertNewLine  struct{}
	Load           struct{ Path string }
	New            struct{}
)

// MoveTo places the cursor at (Row, Col), clamped into the document.
type MoveTo struct{ Row, Col int }

// InsertChar inserts Char at the cursor. '\n' and '\r' split the line like
// InsertNewLine.
type InsertChar struct{ Char rune }

// Save writes the document to Path, or to the current file when Path is empty.
type Save struct{ Path string }

func (MoveLeft) Kind() Kind       { return KindMoveLeft }
func (MoveRight) Kind() Kind      { return KindMoveRight }
func (MoveUp) Kind() Kind         { return KindMoveUp }
func (MoveDown) Kind() Kind       { return KindMoveDown }
func (MoveLineStart) Kind() Kind  { return KindMoveLineStart }
func (MoveLineEnd) Kind() Kind    { return KindMoveLineEnd }
func (MoveTo) Kind() Kind         { return KindMoveTo }
func (DeleteBackward) Kind() Kind { return KindDeleteBackward }
func (DeleteForward) Kind() Kind  { return KindDeleteForward }
func (InsertNewLine) Kind() Kind  { return KindInsertNewLine }
func (InsertChar) Kind() Kind     { return KindInsertChar }
func (Save) Kind() Kind           { return KindSave }
func (Load) Kind() Kind           { return KindLoad }
func (New) Kind() Kind            { return KindNew }

func (MoveLeft) sealed()       {}
func (MoveRight) sealed()      {}
func (MoveUp) sealed()         {}
func (MoveDown) sealed()       {}
func (MoveLineStart) sealed()  {}
func (MoveLineEnd) sealed()    {}
func (MoveTo) sealed()         {}
func (DeleteBackward) sealed() {}
func (DeleteForward) sealed()  {}
func (InsertNewLine) sealed()  {}
func (InsertChar) sealed()     {}
func (Save) sealed()           {}
func (Load) sealed()           {}
func (New) sealed()            {}

// Sample returns a representative Command of kind k, or nil for an unknown kind.
func Sample(k Kind) Command {
	switch k {
	case KindMoveLeft:
		return MoveLeft{}
	case KindMoveRight:
		return MoveRight{}
	case KindMoveUp:
		return MoveUp{}
	case KindMoveDown:
		return MoveDown{}
	case KindMoveLineStart:
		return MoveLineStart{}
	case KindMoveLineEnd:
		return MoveLineEnd{}
	case KindMoveTo:
		return MoveTo{Row: 1, Col: 1}
	case KindDeleteBackward:
		return DeleteBackward{}
	case KindDeleteForward:
		return DeleteForward{}
	case KindInsertNewLine:
		return InsertNewLine{}
	case KindInsertChar:
		return InsertChar{Char: 'x'}
	case KindSave:
		return Save{}
	case KindLoad:
		return Load{}
	case KindNew:
		return New{}
	}
	return nil
}

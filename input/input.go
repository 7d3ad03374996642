// Package input turns terminal events into editor commands.
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/teichholz/goditor/commands"
)

var keyCommands = map[tcell.Key]commands.Command{
	tcell.KeyLeft:       commands.MoveLeft{},
	tcell.KeyRight:      commands.MoveRight{},
	tcell.KeyUp:         commands.MoveUp{},
	tcell.KeyDown:       commands.MoveDown{},
	tcell.KeyHome:       commands.MoveLineStart{},
	tcell.KeyEnd:        commands.MoveLineEnd{},
	tcell.KeyCtrlA:      commands.MoveLineStart{},
	tcell.KeyCtrlE:      commands.MoveLineEnd{},
	tcell.KeyBackspace:  commands.DeleteBackward{},
	tcell.KeyBackspace2: commands.DeleteBackward{},
	tcell.KeyDelete:     commands.DeleteForward{},
	tcell.KeyEnter:      commands.InsertNewLine{},
	tcell.KeyTab:        commands.InsertChar{Char: '\t'},
	tcell.KeyCtrlS:      commands.Save{},
	tcell.KeyCtrlN:      commands.New{},
}

// TryMap returns the command for ev, if any. Printable keys always map to
// InsertChar.
func TryMap(ev tcell.Event) (commands.Command, bool) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return nil, false
	}
	if key.Key() == tcell.KeyRune {
		return commands.InsertChar{Char: key.Rune()}, true
	}
	cmd, ok := keyCommands[key.Key()]
	return cmd, ok
}

// IsQuit reports whether ev asks the editor to exit.
func IsQuit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	}
	return false
}

// IsCommandLine reports whether ev opens the command line.
func IsCommandLine(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	return ok && key.Key() == tcell.KeyCtrlP
}

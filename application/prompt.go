package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/teichholz/goditor/commands"
)

// prompt is the command line opened with Ctrl-P, e.g. ":save notes.txt".
type prompt struct {
	text []rune
}

func (app *Application) handlePrompt(ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}
	p := app.prompt
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		app.prompt = nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.text) == 0 {
			app.prompt = nil
			return
		}
		p.text = p.text[:len(p.text)-1]
	case tcell.KeyEnter:
		app.prompt = nil
		cmd, err := app.registry.Parse(string(p.text))
		if errors.Is(err, commands.ErrUnknownCommand) {
			err = fmt.Errorf("%w, try %s", err, strings.Join(app.registry.Names(), ", "))
		}
		if err != nil {
			app.setError(err)
			return
		}
		app.execute(cmd)
	case tcell.KeyRune:
		p.text = append(p.text, key.Rune())
	}
}

func (app *Application) promptCursor(width, height int) (int, int) {
	x := 1 + runewidth.StringWidth(string(app.prompt.text))
	return min(x, width-1), height - 1
}

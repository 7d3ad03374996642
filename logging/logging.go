// Package logging sets up the editor's log file. The terminal belongs to the
// editor, so nothing is ever logged to stdout or stderr while it runs.
package logging

import (
	"io"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// New opens (or creates) path for appending and returns a logger writing to it,
// plus a function closing the file. Messages with V-level above verbosity are
// dropped.
func New(path string, verbosity int) (logr.Logger, func() error, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return logr.Discard(), nil, err
	}
	return NewWriter(file, verbosity), file.Close, nil
}

// NewWriter returns a logger writing to w.
func NewWriter(w io.Writer, verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.NewWithOptions(
		log.New(w, "", log.LstdFlags|log.Lshortfile),
		stdr.Options{LogCaller: stdr.Error},
	).WithName("goditor")
}

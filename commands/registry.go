package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-logr/logr"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrAmbiguousCommand = errors.New("ambiguous command")
)

// Factory builds a Command from the argument typed after its name.
type Factory func(arg string) Command

// Registry resolves typed command names, e.g. from a command line, to Commands.
// A name may be abbreviated to any prefix that matches exactly one entry.
type Registry struct {
	log       logr.Logger
	factories map[string]Factory
}

func NewRegistry(log logr.Logger) *Registry {
	return &Registry{log: log, factories: make(map[string]Factory)}
}

// DefaultRegistry knows the document commands.
func DefaultRegistry(log logr.Logger) *Registry {
	r := NewRegistry(log)
	r.Register("save", func(arg string) Command { return Save{Path: arg} })
	r.Register("write", func(arg string) Command { return Save{Path: arg} })
	r.Register("load", func(arg string) Command { return Load{Path: arg} })
	r.Register("open", func(arg string) Command { return Load{Path: arg} })
	r.Register("new", func(string) Command { return New{} })
	return r
}

func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse turns "name [argument]" into a Command.
func (r *Registry) Parse(line string) (Command, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	f, err := r.lookup(name)
	if err != nil {
		r.log.V(1).Info("command not resolved", "input", line, "error", err.Error())
		return nil, err
	}
	return f(strings.TrimSpace(arg)), nil
}

func (r *Registry) lookup(prefix string) (Factory, error) {
	if prefix == "" {
		return nil, ErrUnknownCommand
	}
	if f, ok := r.factories[prefix]; ok {
		return f, nil
	}
	var matches []string
	for name := range r.factories {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, prefix)
	case 1:
		return r.factories[matches[0]], nil
	}
	sort.Strings(matches)
	return nil, fmt.Errorf("%w: %q matches %s", ErrAmbiguousCommand, prefix, strings.Join(matches, ", "))
}

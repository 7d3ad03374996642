// Package files reads and writes whole documents.
package files

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// ErrNotFound is returned when the file to read does not exist.
var ErrNotFound = errors.New("file not found")

// Store is a path-addressed file store. The zero value is not usable; use
// NewStore or NewOsStore.
type Store struct {
	fs afero.Fs
}

func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// NewOsStore stores files on the real filesystem.
func NewOsStore() *Store {
	return NewStore(afero.NewOsFs())
}

// Read copies the whole file at path into dest.
func (s *Store) Read(path string, dest io.ReaderFrom) error {
	file, err := s.fs.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := dest.ReadFrom(bufio.NewReader(file)); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// Write truncates path and writes src into it.
func (s *Store) Write(path string, src io.WriterTo) error {
	file, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	if _, err := src.WriteTo(w); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}

// Exists reports whether path names an existing file.
func (s *Store) Exists(path string) bool {
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrAlreadyExists = errors.New("output file already exists")
var ErrIO = errors.New("output file I/O failure")

// Sink owns a freshly created destination file and appends chunks to it in
// the order they are produced.
type Sink struct {
	file     *os.File
	path     string
	released bool
}

// Create refuses to overwrite an existing file and creates any missing parent
// directories before creating the file itself.
func Create(path string) (*Sink, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, path)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: creating directory %s: %v", ErrIO, dir, err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, path)
		}
		return nil, fmt.Errorf("%w: creating %s: %v", ErrIO, path, err)
	}
	return &Sink{file: file, path: path}, nil
}

func (s *Sink) Path() string {
	return s.path
}

// Append writes the chunk before returning; the caller never has writes in
// flight across calls.
func (s *Sink) Append(data []byte) error {
	if _, err := s.file.Write(data); err != nil {
		return fmt.Errorf("%w: writing to %s: %v", ErrIO, s.path, err)
	}
	return nil
}

// Release flushes and closes the file. The first call does the work; any
// later call is a no-op, so it is safe to defer unconditionally.
func (s *Sink) Release() error {
	if s.released {
		return nil
	}
	s.released = true
	if err := s.file.Sync(); err != nil {
		s.file.Close()
		return fmt.Errorf("%w: syncing %s: %v", ErrIO, s.path, err)
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", ErrIO, s.path, err)
	}
	return nil
}

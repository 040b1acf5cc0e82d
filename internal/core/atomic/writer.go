package atomic

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SafeWriter writes to a temporary file next to its destination and only
// makes the content visible under the destination name on Commit, after the
// data has been flushed to disk.
type SafeWriter struct {
	path     string
	file     *os.File
	finished bool
}

// NewSafeWriter creates a temporary file in dir
func NewSafeWriter(dir, prefix string) (*SafeWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", prefix, uuid.New().String()))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &SafeWriter{path: path, file: f}, nil
}

// Write writes data to the temporary file
func (w *SafeWriter) Write(p []byte) (int, error) {
	if w.finished {
		return 0, errors.New("write to finished writer")
	}
	return w.file.Write(p)
}

// Commit flushes the temporary file and renames it to dst, replacing any
// previous file at dst.
func (w *SafeWriter) Commit(dst string) error {
	if w.finished {
		return errors.New("commit finished writer")
	}
	w.finished = true

	if err := w.file.Sync(); err != nil {
		w.discard()
		return fmt.Errorf("sync file: %w", err)
	}
	if err := w.file.Close(); err != nil {
		os.Remove(w.path)
		return fmt.Errorf("close file: %w", err)
	}

	if err := os.Rename(w.path, dst); err != nil {
		os.Remove(w.path)
		return fmt.Errorf("rename to destination: %w", err)
	}

	syncDir(filepath.Dir(dst))
	return nil
}

// Cleanup removes the temporary file unless it was committed
func (w *SafeWriter) Cleanup() {
	if w.finished {
		return
	}
	w.finished = true
	w.discard()
}

func (w *SafeWriter) discard() {
	w.file.Close()
	os.Remove(w.path)
}

// syncDir persists directory entries. Not every platform allows opening a
// directory for sync, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}

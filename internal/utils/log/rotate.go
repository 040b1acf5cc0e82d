package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/docker/go-units"
)

// RotateWriter is an io.Writer over a log file that is renamed aside once it
// would grow past maxSize. At most maxFiles rotated files are kept.
type RotateWriter struct {
	mu       sync.Mutex
	file     *os.File
	size     int64
	maxSize  int64
	maxFiles int
	path     string
}

// NewRotateWriter opens path for appending. maxSize is a human size such as "10MB".
func NewRotateWriter(path, maxSize string, maxFiles int) (*RotateWriter, error) {
	limit, err := units.FromHumanSize(maxSize)
	if err != nil {
		return nil, fmt.Errorf("invalid max size format: %w", err)
	}

	w := &RotateWriter{
		maxSize:  limit,
		maxFiles: maxFiles,
		path:     path,
	}
	if err := w.openFile(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotateWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.maxSize > 0 && w.size+int64(len(p)) > w.maxSize {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *RotateWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

func (w *RotateWriter) openFile() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	if w.file != nil {
		w.file.Close()
	}
	w.file = f
	w.size = info.Size()
	return nil
}

// rotate must be called with w.mu held
func (w *RotateWriter) rotate() error {
	if w.file != nil {
		w.file.Close()
		w.file = nil
	}

	backupPath := fmt.Sprintf("%s.%s", w.path, time.Now().Format("20060102-150405.000"))
	if err := os.Rename(w.path, backupPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	if err := w.removeOldFiles(); err != nil {
		return err
	}
	return w.openFile()
}

func (w *RotateWriter) removeOldFiles() error {
	if w.maxFiles <= 0 {
		return nil
	}

	dir := filepath.Dir(w.path)
	base := filepath.Base(w.path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var rotated []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), base+".") {
			rotated = append(rotated, e.Name())
		}
	}

	if len(rotated) > w.maxFiles {
		sort.Strings(rotated)
		for _, name := range rotated[:len(rotated)-w.maxFiles] {
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

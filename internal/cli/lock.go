package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockName = ".imgsort.lock"

var errLocked = errors.New("another imgsort is committing in this directory")

// dirLock holds an exclusive lock on a target directory so two commits
// never interleave their renames.
type dirLock struct {
	path string
	lock *flock.Flock
}

// lockDir takes the lock of dir, or fails with errLocked when another
// process holds it.
func lockDir(dir string) (*dirLock, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", dir)
	}

	path := filepath.Join(dir, lockName)
	l := &dirLock{path: path, lock: flock.New(path)}

	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file: %s)", errLocked, path)
	}
	slog.Debug("directory locked", "lock", path)
	return l, nil
}

func (l *dirLock) release() {
	if err := l.lock.Unlock(); err != nil {
		slog.Warn("failed to release lock", "lock", l.path, "error", err)
		return
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove lock file", "lock", l.path, "error", err)
	}
}

package atomic

import (
	"errors"
	"io/fs"
	"os"
)

// Rename moves src to dst without ever replacing an existing dst.
// A missing src yields ErrSourceNotFound and an occupied dst yields
// ErrDestinationExists, both wrapped in a *MoveError.
func Rename(src, dst string) error {
	if src == "" || dst == "" {
		return &MoveError{Op: "rename", Src: src, Dst: dst, Err: ErrInvalidPath}
	}

	if _, err := os.Lstat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrSourceNotFound
		}
		return &MoveError{Op: "stat_source", Src: src, Dst: dst, Err: err}
	}

	if err := renameNoReplace(src, dst); err != nil {
		op := "rename"
		if errors.Is(err, fs.ErrExist) {
			err = ErrDestinationExists
			op = "check_destination"
		} else if errors.Is(err, fs.ErrNotExist) {
			err = ErrSourceNotFound
		}
		return &MoveError{Op: op, Src: src, Dst: dst, Err: err}
	}
	return nil
}

// renameChecked is the portable fallback: check, then rename. The window
// between the two calls is closed by the caller holding the directory lock.
func renameChecked(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fs.ErrExist
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(src, dst)
}

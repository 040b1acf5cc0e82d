//go:build linux

package atomic

import (
	"errors"

	"golang.org/x/sys/unix"
)

// renameNoReplace uses renameat2(RENAME_NOREPLACE) so that the existence
// check and the rename happen in one syscall. Filesystems without support
// fall back to renameChecked.
func renameNoReplace(src, dst string) error {
	err := unix.Renameat2(unix.AT_FDCWD, src, unix.AT_FDCWD, dst, unix.RENAME_NOREPLACE)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.ENOSYS), errors.Is(err, unix.EINVAL):
		return renameChecked(src, dst)
	}
	return err
}

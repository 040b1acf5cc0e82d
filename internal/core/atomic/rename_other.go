//go:build !linux

package atomic

func renameNoReplace(src, dst string) error {
	return renameChecked(src, dst)
}

package rename

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/babarot/imgsort/internal/core/atomic"
	"github.com/babarot/imgsort/internal/core/types"
)

// ManifestEntry is one line of the backup manifest
type ManifestEntry struct {
	Rank     int
	Original string
}

var manifestLine = regexp.MustCompile(`^(\d+)\. (.+)$`)

// WriteManifest writes "{rank}. {originalBasename}" for every item in seq to
// path. The file is synced before it becomes visible under its name.
func WriteManifest(path string, seq []types.Item) error {
	w, err := atomic.NewSafeWriter(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return err
	}
	defer w.Cleanup()

	bw := bufio.NewWriter(w)
	for i, item := range seq {
		if _, err := fmt.Fprintf(bw, "%d. %s\n", i+1, item.Name()); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush manifest: %w", err)
	}
	return w.Commit(path)
}

// ReadManifest parses a manifest written by WriteManifest
func ReadManifest(path string) ([]ManifestEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []ManifestEntry
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if line == "" {
			continue
		}
		m := manifestLine.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%s:%d: malformed manifest line %q", path, n, line)
		}
		rank, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, n, err)
		}
		entries = append(entries, ManifestEntry{Rank: rank, Original: m[2]})
	}
	return entries, scanner.Err()
}

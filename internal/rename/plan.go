package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/babarot/imgsort/internal/core/types"
	"github.com/samber/lo"
)

// Step is the planned rename of one item
type Step struct {
	Rank     int // 1-based
	Item     types.Item
	Dst      string // final full-resolution path
	ThumbDst string // final thumbnail path, empty when the item has no thumbnail
}

// Unchanged reports whether the item already carries its final name
func (s Step) Unchanged() bool {
	return s.Item.FullPath == s.Dst
}

// Plan derives the final names for seq without renaming anything. It fails
// when the sequence is too long, contains duplicate items, maps two items to
// one name, or when a final name is already taken by a file that is not part
// of seq (an excluded image, for instance).
func (t *Transaction) Plan(seq []types.Item) ([]Step, error) {
	if t.opts.MaxItems > 0 && len(seq) > t.opts.MaxItems {
		return nil, fmt.Errorf("%w: %d items exceeds the limit of %d", ErrTooManyItems, len(seq), t.opts.MaxItems)
	}

	if dups := lo.FindDuplicatesBy(seq, func(i types.Item) types.ItemID { return i.ID }); len(dups) > 0 {
		return nil, fmt.Errorf("%w: id %d", ErrDuplicateItem, dups[0].ID)
	}
	if dups := lo.FindDuplicatesBy(seq, func(i types.Item) string { return filepath.Clean(i.FullPath) }); len(dups) > 0 {
		return nil, fmt.Errorf("%w: path %s", ErrDuplicateItem, dups[0].FullPath)
	}

	owned := make(map[string]bool, 2*len(seq))
	for _, item := range seq {
		owned[filepath.Clean(item.FullPath)] = true
		if item.HasThumb() {
			owned[filepath.Clean(item.ThumbPath)] = true
		}
	}

	steps := make([]Step, len(seq))
	seen := make(map[string]types.ItemID, len(seq))
	for i, item := range seq {
		name := FinalName(i+1, item.Name())
		if other, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: items %d and %d both map to %s", ErrNameCollision, other, item.ID, name)
		}
		seen[name] = item.ID

		step := Step{
			Rank: i + 1,
			Item: item,
			Dst:  filepath.Join(t.opts.TargetDir, name),
		}
		if item.HasThumb() {
			step.ThumbDst = filepath.Join(t.thumbDir(item), name)
		}
		if err := occupied(step.Dst, owned); err != nil {
			return nil, err
		}
		if err := occupied(step.ThumbDst, owned); err != nil {
			return nil, err
		}
		steps[i] = step
	}
	return steps, nil
}

// occupied fails when path is taken by a file the sequence does not own.
// Such a file would only be noticed in the finalize pass, after every item
// has already been quarantined.
func occupied(path string, owned map[string]bool) error {
	if path == "" || owned[filepath.Clean(path)] {
		return nil
	}
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s is taken by a file outside the sequence", ErrNameCollision, path)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	}
	return fmt.Errorf("stat %s: %w", path, err)
}

package rename

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/babarot/imgsort/internal/core/atomic"
	"github.com/samber/lo"
)

// RecoverResult is the outcome of Recover
type RecoverResult struct {
	// RunIDs lists the interrupted transactions found, sorted
	RunIDs []string

	// Moves lists every quarantined file moved to its final name
	Moves []Move

	// Collisions lists quarantined files whose final name was already
	// taken. They are left untouched.
	Collisions []Warning
}

// Recovered is the number of files moved to their final name
func (r RecoverResult) Recovered() int {
	return len(r.Moves)
}

// Recover finishes interrupted transactions. Every file under a quarantine
// name in TargetDir (and ThumbDir, when set) is moved to the final name
// encoded in it. An occupied final name is reported as a collision and the
// file is left where it is. The context is checked between renames.
func (t *Transaction) Recover(ctx context.Context) (RecoverResult, error) {
	var res RecoverResult

	dirs := []string{t.opts.TargetDir}
	if t.opts.ThumbDir != "" && filepath.Clean(t.opts.ThumbDir) != filepath.Clean(t.opts.TargetDir) {
		dirs = append(dirs, t.opts.ThumbDir)
	}

	parser := newTempParser(t.opts.TempPrefix)
	runs := make(map[string]struct{})

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) && dir != t.opts.TargetDir {
				slog.Debug("thumbnail directory not found, skipping", "dir", dir)
				continue
			}
			return res, fmt.Errorf("read %s: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			temp, ok := parser.Parse(entry.Name())
			if !ok {
				continue
			}
			if err := ctx.Err(); err != nil {
				return res, err
			}
			runs[temp.RunID] = struct{}{}

			src := filepath.Join(dir, entry.Name())
			dst := filepath.Join(dir, FinalName(temp.Rank(), temp.Original))
			err := atomic.Rename(src, dst)
			switch {
			case err == nil:
				slog.Info("recovered", "run_id", temp.RunID, "from", src, "to", dst)
				res.Moves = append(res.Moves, Move{Src: src, Dst: dst})
			case atomic.IsDestinationExists(err):
				slog.Warn("final name already taken", "run_id", temp.RunID, "path", src, "final", dst)
				res.Collisions = append(res.Collisions, Warning{
					Name: entry.Name(),
					Path: src,
					Err:  fmt.Errorf("%w: %s", ErrNameCollision, filepath.Base(dst)),
				})
			default:
				return res, &TxError{Phase: PhaseFinalize, Name: temp.Original, Path: src, Err: err}
			}
		}
	}

	res.RunIDs = lo.Keys(runs)
	slices.Sort(res.RunIDs)
	return res, nil
}

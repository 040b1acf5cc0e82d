// Package rename persists a sequence of items to disk by renaming every
// file to a rank-prefixed name.
//
// A commit runs three strictly ordered passes:
//
//  1. a backup manifest of the original names is written and synced;
//  2. every file is moved to a quarantine name that embeds the run id, its
//     index and its original basename;
//  3. every quarantined file is moved to "{rank:02d}_{cleanName}".
//
// Routing every file through a unique quarantine name means no rename ever
// targets a name still held by another file of the sequence, whatever the
// permutation. If a commit is interrupted, the manifest and the quarantine
// names are enough to finish it (see Recover).
package rename

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/babarot/imgsort/internal/core/atomic"
	"github.com/babarot/imgsort/internal/core/types"
	"github.com/rs/xid"
)

const (
	DefaultBackupDir    = "_backup_original_names"
	DefaultManifestName = "original_names.txt"
	DefaultTempPrefix   = "_tmp_"
	DefaultMaxItems     = 10000
)

// Options configures a Transaction
type Options struct {
	// TargetDir holds the full-resolution files
	TargetDir string

	// ThumbDir holds the thumbnails. When empty, each thumbnail is renamed
	// inside the directory it was found in.
	ThumbDir string

	// BackupDir receives the manifest. Relative paths are resolved against TargetDir.
	BackupDir    string
	ManifestName string

	// TempPrefix starts every quarantine name. It must never look like a rank prefix.
	TempPrefix string

	// MaxItems bounds the sequence length
	MaxItems int

	// RunID is embedded in quarantine names; a new xid is used when empty
	RunID string
}

// Transaction commits one sequence. It is not safe for concurrent use and
// callers must not run two transactions against the same directories.
type Transaction struct {
	opts Options
}

// New returns a Transaction with defaults filled in
func New(opts Options) *Transaction {
	if opts.BackupDir == "" {
		opts.BackupDir = DefaultBackupDir
	}
	if !filepath.IsAbs(opts.BackupDir) {
		opts.BackupDir = filepath.Join(opts.TargetDir, opts.BackupDir)
	}
	if opts.ManifestName == "" {
		opts.ManifestName = DefaultManifestName
	}
	if opts.TempPrefix == "" {
		opts.TempPrefix = DefaultTempPrefix
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = DefaultMaxItems
	}
	if opts.RunID == "" {
		opts.RunID = xid.New().String()
	}
	return &Transaction{opts: opts}
}

// RunID returns the id embedded in this transaction's quarantine names
func (t *Transaction) RunID() string {
	return t.opts.RunID
}

// ManifestPath returns where the backup manifest is written
func (t *Transaction) ManifestPath() string {
	return filepath.Join(t.opts.BackupDir, t.opts.ManifestName)
}

func (t *Transaction) thumbDir(item types.Item) string {
	if t.opts.ThumbDir != "" {
		return t.opts.ThumbDir
	}
	return filepath.Dir(item.ThumbPath)
}

// Move is one rename performed by a transaction
type Move struct {
	Src string
	Dst string
}

// Result is the outcome of Execute
type Result struct {
	// Success is true when every present file reached its final name.
	// Missing files only produce warnings.
	Success bool

	// Count is the number of items in the committed sequence
	Count int

	// Renamed is the number of full-resolution files now at their final name
	Renamed int

	Warnings []Warning

	// Err is the fatal error that aborted the transaction, a *TxError once
	// the manifest pass has started
	Err error

	// Phase is the last phase the transaction reached
	Phase Phase

	ManifestPath string
	RunID        string

	// Moves lists every rename performed, in order
	Moves []Move
}

// Partial reports whether a failed transaction may have left files under
// quarantine or final names. The manifest maps them back.
func (r Result) Partial() bool {
	return !r.Success && len(r.Moves) > 0
}

// WarningsByID returns the warning messages keyed by item id
func (r Result) WarningsByID() map[types.ItemID]string {
	m := make(map[types.ItemID]string, len(r.Warnings))
	for _, w := range r.Warnings {
		if prev, ok := m[w.ItemID]; ok {
			m[w.ItemID] = prev + "; " + w.Err.Error()
			continue
		}
		m[w.ItemID] = w.Err.Error()
	}
	return m
}

// quarantined holds the quarantine paths of one item; empty means the file
// was missing and nothing was moved.
type quarantined struct {
	full  string
	thumb string
}

// Execute commits seq. A context canceled before the manifest pass leaves
// everything untouched; once files start moving the transaction runs to
// completion or failure.
func (t *Transaction) Execute(ctx context.Context, seq []types.Item) Result {
	st := newState(t.opts.RunID)
	res := Result{
		Count:        len(seq),
		Phase:        PhaseInitial,
		ManifestPath: t.ManifestPath(),
		RunID:        t.opts.RunID,
	}

	fail := func(err error) Result {
		if terr := st.transition(PhaseFailed); terr != nil {
			slog.Error("failed to mark transaction failed", "error", terr)
		}
		res.Err = err
		slog.Error("transaction failed",
			"run_id", t.opts.RunID,
			"phase", res.Phase,
			"moves", len(res.Moves),
			"error", err)
		return res
	}

	if err := ctx.Err(); err != nil {
		slog.Info("transaction canceled before start", "run_id", t.opts.RunID)
		res.Err = err
		return res
	}

	steps, err := t.Plan(seq)
	if err != nil {
		return fail(err)
	}

	slog.Info("transaction started",
		"run_id", t.opts.RunID,
		"items", len(seq),
		"target", t.opts.TargetDir,
		"thumbs", t.opts.ThumbDir)

	// Pass 1: manifest
	if err := t.enter(st, &res, PhaseManifest); err != nil {
		return fail(err)
	}
	if err := WriteManifest(res.ManifestPath, seq); err != nil {
		return fail(&TxError{Phase: PhaseManifest, Path: res.ManifestPath, Err: err})
	}

	// Pass 2: quarantine
	if err := t.enter(st, &res, PhaseQuarantine); err != nil {
		return fail(err)
	}
	temps := make([]quarantined, len(steps))
	for i, step := range steps {
		q, err := t.quarantine(&res, i, step.Item)
		if err != nil {
			return fail(err)
		}
		temps[i] = q
	}

	// Pass 3: finalize
	if err := t.enter(st, &res, PhaseFinalize); err != nil {
		return fail(err)
	}
	for i, step := range steps {
		if err := t.finalize(&res, step, temps[i]); err != nil {
			return fail(err)
		}
	}

	if err := t.enter(st, &res, PhaseCommitted); err != nil {
		return fail(err)
	}
	res.Success = true

	slog.Info("transaction committed",
		"run_id", t.opts.RunID,
		"items", res.Count,
		"renamed", res.Renamed,
		"warnings", len(res.Warnings),
		"duration", st.duration())
	return res
}

func (t *Transaction) enter(st *state, res *Result, phase Phase) error {
	if err := st.transition(phase); err != nil {
		return err
	}
	res.Phase = phase
	return nil
}

func (t *Transaction) quarantine(res *Result, index int, item types.Item) (quarantined, error) {
	var q quarantined

	full := filepath.Join(t.opts.TargetDir, TempName(t.opts.TempPrefix, t.opts.RunID, index, item.Name()))
	moved, err := t.rename(res, PhaseQuarantine, item, item.FullPath, full)
	if err != nil {
		return q, err
	}
	if moved {
		q.full = full
	}

	if !item.HasThumb() {
		return q, nil
	}
	thumb := filepath.Join(t.thumbDir(item), TempName(t.opts.TempPrefix, t.opts.RunID, index, filepath.Base(item.ThumbPath)))
	moved, err = t.rename(res, PhaseQuarantine, item, item.ThumbPath, thumb)
	if err != nil {
		return q, err
	}
	if moved {
		q.thumb = thumb
	}
	return q, nil
}

func (t *Transaction) finalize(res *Result, step Step, q quarantined) error {
	if q.full != "" {
		moved, err := t.rename(res, PhaseFinalize, step.Item, q.full, step.Dst)
		if err != nil {
			return err
		}
		if moved {
			res.Renamed++
		}
	}
	if q.thumb != "" {
		if _, err := t.rename(res, PhaseFinalize, step.Item, q.thumb, step.ThumbDst); err != nil {
			return err
		}
	}
	return nil
}

// rename moves src to dst. A missing src is recorded as a warning and
// reported as moved=false; every other failure is returned as a *TxError.
func (t *Transaction) rename(res *Result, phase Phase, item types.Item, src, dst string) (bool, error) {
	err := atomic.Rename(src, dst)
	switch {
	case err == nil:
		res.Moves = append(res.Moves, Move{Src: src, Dst: dst})
		slog.Debug("renamed", "phase", phase, "id", item.ID, "from", src, "to", dst)
		return true, nil

	case atomic.IsSourceNotFound(err) && phase == PhaseQuarantine:
		slog.Warn("skipping missing file", "id", item.ID, "path", src)
		res.Warnings = append(res.Warnings, Warning{
			ItemID: item.ID,
			Name:   filepath.Base(src),
			Path:   src,
			Err:    ErrMissingSource,
		})
		return false, nil

	case atomic.IsDestinationExists(err) && phase == PhaseFinalize:
		err = fmt.Errorf("%w: %s: %w", ErrNameCollision, dst, err)
	}

	var merr *atomic.MoveError
	if errors.As(err, &merr) {
		slog.Debug("rename failed", "op", merr.Op, "from", merr.Src, "to", merr.Dst)
	}
	return false, &TxError{
		Phase:  phase,
		ItemID: item.ID,
		Name:   item.Name(),
		Path:   src,
		Err:    err,
	}
}

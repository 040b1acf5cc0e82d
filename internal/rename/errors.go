package rename

import (
	"errors"
	"fmt"

	"github.com/babarot/imgsort/internal/core/types"
)

var (
	// ErrMissingSource marks a file that vanished between load and commit.
	// It is reported as a per-item warning, never as a failure.
	ErrMissingSource = errors.New("source file no longer exists")

	// ErrNameCollision means a final name was already taken. Unique rank
	// prefixes make this impossible unless something else writes to the
	// directory during the commit, so it aborts the transaction.
	ErrNameCollision = errors.New("name collision during finalize")

	// ErrTooManyItems is returned when a sequence exceeds Options.MaxItems
	ErrTooManyItems = errors.New("too many items")

	// ErrDuplicateItem is returned when two items share an id or a path
	ErrDuplicateItem = errors.New("duplicate item")
)

// TxError describes the failure that aborted a transaction: the phase it
// happened in, the item being processed and the underlying cause.
type TxError struct {
	Phase  Phase
	ItemID types.ItemID
	Name   string // original basename of the item
	Path   string // path being renamed when the failure happened
	Err    error
}

func (e *TxError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("%s %s (item %d): %v", e.Phase, e.Name, e.ItemID, e.Err)
}

func (e *TxError) Unwrap() error {
	return e.Err
}

// Warning is a non-fatal, per-item problem recorded during a commit
type Warning struct {
	ItemID types.ItemID
	Name   string
	Path   string
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Name, w.Err)
}

// Package order keeps the rank order of a session's items under repeated
// drag-and-drop relocations.
package order

import (
	"errors"
	"fmt"

	"github.com/babarot/imgsort/internal/core/types"
)

var (
	// ErrInvalidIndex is returned by Move when an index is out of range.
	// The sequence is left untouched.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrDuplicateID is returned by New when two items share an id
	ErrDuplicateID = errors.New("duplicate item id")
)

// IndexError reports which index of a MoveRequest was out of range
type IndexError struct {
	Field string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: %s %d not in [0, %d)", ErrInvalidIndex, e.Field, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrInvalidIndex
}

// Collection is an ordered sequence of items. Move is the only operation
// that mutates it; it permutes items and never adds or removes them.
type Collection struct {
	items []types.Item
}

// New builds a collection from items in their load order
func New(items []types.Item) (*Collection, error) {
	seen := make(map[types.ItemID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	c := &Collection{items: make([]types.Item, len(items))}
	copy(c.items, items)
	return c, nil
}

// Len returns the number of items
func (c *Collection) Len() int {
	return len(c.items)
}

// At returns the item at index i
func (c *Collection) At(i int) (types.Item, bool) {
	if i < 0 || i >= len(c.items) {
		return types.Item{}, false
	}
	return c.items[i], true
}

// Items returns a copy of the current sequence
func (c *Collection) Items() []types.Item {
	items := make([]types.Item, len(c.items))
	copy(items, c.items)
	return items
}

// IndexOf returns the current index of the item with the given id, or -1
func (c *Collection) IndexOf(id types.ItemID) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Move relocates the item at req.SourceIndex next to req.TargetIndex and
// returns its new index. When the effective position equals the origin the
// call is a no-op and SourceIndex is returned.
func (c *Collection) Move(req types.MoveRequest) (int, error) {
	if err := c.validate(req); err != nil {
		return -1, err
	}

	insert, moves := c.destination(req)
	if !moves {
		return req.SourceIndex, nil
	}

	item := c.items[req.SourceIndex]
	c.items = append(c.items[:req.SourceIndex], c.items[req.SourceIndex+1:]...)
	c.items = append(c.items, types.Item{})
	copy(c.items[insert+1:], c.items[insert:])
	c.items[insert] = item

	return insert, nil
}

// WouldMove reports whether req would change the sequence. Callers use it to
// suppress the drop affordance over positions identical to the origin.
func (c *Collection) WouldMove(req types.MoveRequest) bool {
	if c.validate(req) != nil {
		return false
	}
	_, moves := c.destination(req)
	return moves
}

func (c *Collection) validate(req types.MoveRequest) error {
	n := len(c.items)
	if req.SourceIndex < 0 || req.SourceIndex >= n {
		return &IndexError{Field: "source", Index: req.SourceIndex, Len: n}
	}
	if req.TargetIndex < 0 || req.TargetIndex >= n {
		return &IndexError{Field: "target", Index: req.TargetIndex, Len: n}
	}
	return nil
}

// destination computes the insertion index in the sequence after the source
// item has been removed.
func (c *Collection) destination(req types.MoveRequest) (int, bool) {
	insert := req.TargetIndex
	if req.InsertAfter {
		insert++
	}
	// Removing the source shifts everything behind it down by one
	if req.SourceIndex < insert {
		insert--
	}
	insert = max(0, min(insert, len(c.items)-1))
	return insert, insert != req.SourceIndex
}

package types

import "path/filepath"

// ItemID identifies an Item for the lifetime of a session. IDs are assigned
// at load time and are never reused, so an item can be traced back to its
// source file however many times the sequence is permuted.
type ItemID int

// Item is one logical image: a full-resolution file and an optional thumbnail
type Item struct {
	ID        ItemID `json:"id"`
	FullPath  string `json:"full_path"`
	ThumbPath string `json:"thumb_path,omitempty"` // empty when no thumbnail exists
}

// Name returns the basename of the full-resolution file
func (i Item) Name() string {
	return filepath.Base(i.FullPath)
}

// HasThumb reports whether a thumbnail was found for the item at load time
func (i Item) HasThumb() bool {
	return i.ThumbPath != ""
}

// MoveRequest describes the outcome of a drag gesture
type MoveRequest struct {
	SourceIndex int  // index of the dragged item
	TargetIndex int  // index of the item under the pointer at release
	InsertAfter bool // pointer was over the trailing half of the target
}

// Rect is the horizontal extent [X0, X0+W) and vertical extent [Y0, Y0+H)
// of an on-screen cell.
type Rect struct {
	X0, Y0 int
	W, H   int
}

// Contains reports whether (x, y) falls inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X0 && x < r.X0+r.W && y >= r.Y0 && y < r.Y0+r.H
}

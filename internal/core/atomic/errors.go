package atomic

import (
	"errors"
	"fmt"
)

var (
	// ErrDestinationExists indicates that the destination path already exists
	ErrDestinationExists = errors.New("destination already exists")

	// ErrSourceNotFound indicates that the source file does not exist
	ErrSourceNotFound = errors.New("source file not found")

	// ErrInvalidPath indicates an empty or otherwise unusable path
	ErrInvalidPath = errors.New("invalid path specified")
)

// MoveError represents an error that occurred during a rename
type MoveError struct {
	Op  string // Operation being performed
	Src string // Source path
	Dst string // Destination path
	Err error  // Underlying error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s %q to %q: %v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// IsDestinationExists checks if the error indicates the destination exists
func IsDestinationExists(err error) bool {
	return errors.Is(err, ErrDestinationExists)
}

// IsSourceNotFound checks if the error indicates the source is missing
func IsSourceNotFound(err error) bool {
	return errors.Is(err, ErrSourceNotFound)
}

package content

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPath is returned for any sandbox violation.
	ErrInvalidPath = errors.New("invalid path")
	// ErrNotFound is returned when a document that must exist does not.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a document that must not exist does.
	ErrAlreadyExists = errors.New("already exists")
	// ErrSameSource is returned when a rename source and destination are the same document.
	ErrSameSource = errors.New("source and destination are the same")
	// ErrTooLarge is matched by *TooLargeError.
	ErrTooLarge = errors.New("document too large")
)

// TooLargeError reports a document above the configured size cap.
type TooLargeError struct {
	Limit int64
	Size  int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("document is %d bytes, limit is %d", e.Size, e.Limit)
}

// Is makes errors.Is(err, ErrTooLarge) match.
func (e *TooLargeError) Is(target error) bool {
	return target == ErrTooLarge
}

func alreadyExists(path string) error {
	return &PathError{Path: path, Reason: "already exists", Err: ErrAlreadyExists}
}

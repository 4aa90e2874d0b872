package object

import (
	"errors"
	"fmt"
)

var (
	// ErrObjectNotFound means no loose object file exists for a hash.
	ErrObjectNotFound = errors.New("object not found")
	// ErrCorruptObject means the object file could not be inflated.
	ErrCorruptObject = errors.New("corrupt object")
	// ErrMalformedObject means the inflated bytes do not parse as the expected kind.
	ErrMalformedObject = errors.New("malformed object")
	// ErrInvalidPrefix means a search prefix is not 1-40 hex characters.
	ErrInvalidPrefix = errors.New("invalid hash prefix")
)

// Error records a failed operation on one object.
type Error struct {
	Op   string
	Hash Hash
	Err  error
}

func (e *Error) Error() string {
	if e.Hash == "" {
		return fmt.Sprintf("object %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("object %s %s: %v", e.Op, e.Hash, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is, or wraps, ErrObjectNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrObjectNotFound) }

// IsCorrupt reports whether err is, or wraps, ErrCorruptObject.
func IsCorrupt(err error) bool { return errors.Is(err, ErrCorruptObject) }

// IsMalformed reports whether err is, or wraps, ErrMalformedObject.
func IsMalformed(err error) bool { return errors.Is(err, ErrMalformedObject) }

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedObject, fmt.Sprintf(format, args...))
}

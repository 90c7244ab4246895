// Package herrors defines the typed error kinds shared across the huffgo
// core: bit vector, frequency list, Huffman tree, and pipeline packages all
// fail through this package so callers can branch on errors.Is instead of
// string matching.
package herrors

import "fmt"

// Kind distinguishes the broad category of a core failure.
type Kind string

const (
	// AllocationFailure covers memory allocation failures (rare in Go, kept
	// for parity with the originating design's explicit allocation checks).
	AllocationFailure Kind = "allocation_failure"
	// IoShort means fewer bytes were read or written than requested.
	IoShort Kind = "io_short"
	// IoOpen means a file could not be opened.
	IoOpen Kind = "io_open"
	// InvalidArgument covers out-of-range indices, nil receivers, and
	// invalid opcodes.
	InvalidArgument Kind = "invalid_argument"
	// InvalidState covers operations attempted in an invalid state, such as
	// serializing an unparsed tree or extracting two minima from a list of
	// fewer than two elements.
	InvalidState Kind = "invalid_state"
	// UsageError covers CLI argument validation failures.
	UsageError Kind = "usage_error"
)

// Error is a herrors-kinded error that wraps an optional cause.
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is a *Error of the same Kind, so callers can
// write errors.Is(err, herrors.InvalidState)-style checks against a bare
// Kind by wrapping it first with Match, or compare two *Error values.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New constructs an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error of the given kind around an existing cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), cause: cause}
}

// Match returns a sentinel of the given Kind suitable for errors.Is checks,
// e.g. errors.Is(err, herrors.Match(herrors.InvalidState)).
func Match(kind Kind) *Error {
	return &Error{Kind: kind}
}

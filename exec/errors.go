package exec

import "errors"

// Error kinds surfaced by the execution core. None of these are swallowed:
// they unwind the pull chain to the caller, who must still invoke
// CleanUp on the root plan node.
var (
	// ErrUnsupported is returned for scalar subqueries and other
	// select-value variants that are not implemented.
	ErrUnsupported = errors.New("unsupported")
	// ErrInvalidState is returned when a select-value variant is not
	// recognized at runtime; a programming error.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnknownColumn is returned when an expression references a column
	// that does not resolve against any bound schema.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrAmbiguousColumn is returned when a column reference matches more
	// than one column of the same binding.
	ErrAmbiguousColumn = errors.New("ambiguous column")
	// ErrIO wraps a page fetch or write failure surfaced by a leaf plan
	// node.
	ErrIO = errors.New("io error")
)

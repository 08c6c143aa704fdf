package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a conversion failure so callers can branch on the cause
// without matching message text.
type Kind int

const (
	// KindUnexpected is any failure outside the taxonomy below (filesystem
	// errors, bad parameters). Zero value so an untagged error maps here.
	KindUnexpected Kind = iota

	// KindInputNotFound: the source file does not exist at call time.
	// Raised before any subprocess is spawned.
	KindInputNotFound

	// KindToolMissing: the engine binary is not on the executable search path.
	KindToolMissing

	// KindToolProbeFailed: the engine was found but its version query exited
	// non-zero.
	KindToolProbeFailed

	// KindEngineFailed: a spawned engine process exited with a non-zero
	// status; the error carries the captured diagnostic text verbatim.
	KindEngineFailed
)

// String returns the kind's short label, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindInputNotFound:
		return "input not found"
	case KindToolMissing:
		return "tool not installed"
	case KindToolProbeFailed:
		return "tool probe failed"
	case KindEngineFailed:
		return "engine failed"
	default:
		return "unexpected failure"
	}
}

// Error is the tagged failure type returned by both converters.
type Error struct {
	Kind   Kind
	Op     string // Operation that failed: "transcode", "palettegen", "paletteuse", "probe".
	Path   string // Path involved, when relevant.
	Stderr string // Engine diagnostic output, verbatim, when a process ran.
	Err    error  // Underlying cause.
}

// Error renders a single human-readable line; engine stderr is appended so
// operators see the engine's own diagnosis.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		fmt.Fprintf(&b, ": %s", e.Path)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		fmt.Fprintf(&b, ": %s", s)
	}
	return b.String()
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from any error in the chain, or
// KindUnexpected when the error carries no tag.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// InputNotFound builds the fail-fast error for a missing source file.
func InputNotFound(op, path string, cause error) *Error {
	return &Error{Kind: KindInputNotFound, Op: op, Path: path, Err: cause}
}

// Failure builds the error for a non-zero engine exit, attaching the
// process's captured diagnostic output.
func Failure(op string, res Result) *Error {
	return &Error{Kind: KindEngineFailed, Op: op, Stderr: res.Stderr, Err: res.Err}
}

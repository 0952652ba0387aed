// Package engineerr is the typed error taxonomy shared by every package in
// this module, grounded on the (code, message, wrapped cause) shape of
// noah-isme's pkg/errors but dropping the HTTP-status field this module has
// no transport layer to use.
package engineerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the categories spec.md §7 requires
// every caller be able to distinguish.
type Kind string

const (
	// KindInvalidInput covers malformed or structurally inconsistent
	// teams/facilities/rules supplied to Generate.
	KindInvalidInput Kind = "invalid_input"
	// KindInfeasible means no schedule satisfying the hard constraints
	// exists even after exhausting every relaxation tier.
	KindInfeasible Kind = "infeasible"
	// KindTimedOut means a stage exceeded its configured time budget.
	KindTimedOut Kind = "timed_out"
	// KindInternal covers anything that should never happen given valid
	// input — an invariant broken by this module's own code.
	KindInternal Kind = "internal"
	// KindCanceled means the caller's context was canceled mid-run.
	KindCanceled Kind = "canceled"
)

// Error is the concrete error type returned across package boundaries in
// this module. It always carries a Kind so callers can branch with
// errors.Is/As instead of string matching.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is(err, engineerr.New(kind, "")) match on Kind alone,
// ignoring the message — useful in tests that only care about the kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New creates an Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a Kind and message to an existing error, preserving it as
// the cause for Unwrap.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err if it is (or wraps) an *Error, and
// KindInternal otherwise — every error leaving this module's public
// surface should have a Kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

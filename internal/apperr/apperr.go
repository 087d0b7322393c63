// Package apperr defines the typed failures returned by the todo kernel and
// the command parser.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the shell can react to it without parsing
// messages.
type Kind string

const (
	// KindInvalidArgument indicates a malformed or missing required argument.
	KindInvalidArgument Kind = "invalid_argument"
	// KindNotLoggedIn indicates the operation needs an active session.
	KindNotLoggedIn Kind = "not_logged_in"
	// KindEmptyText indicates add was called with blank text.
	KindEmptyText Kind = "empty_text"
	// KindCapacityExceeded indicates the active-todo cap was reached.
	KindCapacityExceeded Kind = "capacity_exceeded"
	// KindNotFound indicates the id does not exist for the active user.
	KindNotFound Kind = "not_found"
	// KindAlreadyDone indicates complete was called on a completed todo.
	KindAlreadyDone Kind = "already_done"
	// KindInvalidFilter indicates an unrecognized list filter.
	KindInvalidFilter Kind = "invalid_filter"
	// KindUnknownCommand indicates the shell did not recognize a command name.
	KindUnknownCommand Kind = "unknown_command"
	// KindInternal indicates a storage failure.
	KindInternal Kind = "internal"
)

// Error is a failure carrying its Kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind, so the package
// sentinels match any error of their kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps a storage failure.
func Internal(op string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: op, Cause: cause}
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidArgument  = New(KindInvalidArgument, "invalid argument")
	ErrNotLoggedIn      = New(KindNotLoggedIn, "Login first!")
	ErrEmptyText        = New(KindEmptyText, "Todo cannot be empty")
	ErrCapacityExceeded = New(KindCapacityExceeded, "too many unfinished todos")
	ErrNotFound         = New(KindNotFound, "Todo not found")
	ErrAlreadyDone      = New(KindAlreadyDone, "Already finished")
	ErrInvalidFilter    = New(KindInvalidFilter, "invalid filter")
	ErrUnknownCommand   = New(KindUnknownCommand, "unknown command")
	ErrInternal         = New(KindInternal, "internal error")
)

// KindOf returns the Kind of the first *Error in err's chain, or
// KindInternal when err carries none. It returns "" for a nil error.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

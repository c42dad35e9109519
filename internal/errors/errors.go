// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages. Commands inspect the kind to decide how a failure is
// presented (session expiry hint, network troubleshooting, plain message).
//
// The package supports wrapping underlying errors while maintaining error kind information,
// so callers can still reach the original cause with the standard errors.Is/As helpers.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// NetworkFailure covers timeouts and connection errors. No response was received.
	NetworkFailure Kind = "network_failure"
	// AuthorizationExpired is raised when the backend answers 401. The session has
	// already been cleared by the time the caller sees it.
	AuthorizationExpired Kind = "authorization_expired"
	// InvalidToken rejects an attempt to store an empty session token.
	InvalidToken Kind = "invalid_token"
	// HTTPFailure is any other non-2xx response.
	HTTPFailure Kind = "http_failure"
	// ConfigInvalid reports an unusable configuration value.
	ConfigInvalid Kind = "config_invalid"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause.
func (e *E) Unwrap() error { return e.Err }

// Is reports kind equality so a sentinel *E matches any error of the same kind.
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether any error in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*E); ok && e.Kind == kind {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

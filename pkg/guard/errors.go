package guard

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an access-control or lifecycle failure. Each kind maps to
// exactly one HTTP status so handlers never pick status codes by hand.
type Kind int

const (
	// KindUnauthenticated covers missing/malformed/expired credentials and
	// principals that no longer exist. Clients should log in again.
	KindUnauthenticated Kind = iota
	// KindForbidden covers role mismatches, suspended accounts, tenant-scope
	// violations and ownership violations. Logging in again will not help.
	KindForbidden
	// KindNotFound covers resources referenced during an ownership check
	// that do not exist.
	KindNotFound
	// KindConflict covers conditional writes that lost a race to another
	// writer. The caller may retry with freshly reloaded state.
	KindConflict
	// KindInvalidTransition covers order status edges not present in the
	// lifecycle table.
	KindInvalidTransition
)

// Error is the terminal, per-request outcome of an authorization or
// lifecycle check. It is never retried internally.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status code this error maps to.
func (e *Error) Status() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Unauthenticated builds a 401 error.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// Forbidden builds a 403 error.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NotFound builds a 404 error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict builds a 409 error for a lost conditional write.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// InvalidTransition builds a 409 error naming both the current and the
// requested status.
func InvalidTransition(current, requested string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("invalid status transition from %s to %s", current, requested),
	}
}

// As unwraps err into a *Error, or nil if err is not one.
func As(err error) *Error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}
	return nil
}

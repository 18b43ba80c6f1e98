package api

import (
	"errors"
	"fmt"
)

// Kind classifies API failures so callers can tell an authorization
// rejection from a transient transport problem or a success=false payload.
type Kind string

const (
	// KindTransport covers network errors, timeouts, and unexpected HTTP
	// statuses. The caller keeps its state and may simply try again later.
	KindTransport Kind = "transport"

	// KindApplication means the server answered but declared failure in the
	// response envelope (success: false).
	KindApplication Kind = "application"

	// KindAuth means the server rejected the credential outright (401/403).
	KindAuth Kind = "auth"
)

// Error is the failure type returned by every Client operation.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("api: %s: %s (%s)", e.Op, msg, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// IsAuth reports whether err is an authorization rejection.
func IsAuth(err error) bool { return hasKind(err, KindAuth) }

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool { return hasKind(err, KindTransport) }

func hasKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

package consult

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a submission failed its input constraints.
	ErrValidation = errors.New("validation error")

	// ErrNoCredential indicates no bearer credential was available at
	// session start. No connection is attempted in that case.
	ErrNoCredential = errors.New("no bearer credential")

	// ErrStreamClosed indicates an operation on a closed frame stream.
	ErrStreamClosed = errors.New("stream closed")
)

// FailureKind classifies the single fatal outcome of a session.
type FailureKind int

const (
	FailUnauthenticated FailureKind = iota // no credential; never connected
	FailTransport                          // connection refusal or drop; no retry
	FailRemote                             // service reported failure; message verbatim
	FailSchema                             // terminal payload failed validation
	FailCancelled                          // caller cancelled the session
)

// String returns the kind name for logging and display.
func (k FailureKind) String() string {
	switch k {
	case FailUnauthenticated:
		return "unauthenticated"
	case FailTransport:
		return "transport error"
	case FailRemote:
		return "remote error"
	case FailSchema:
		return "schema violation"
	case FailCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// SessionError is the failed terminal resolution of a streaming session.
// Kind classifies the failure; Err carries the detail. For FailSchema the
// wrapped error is the validator's full violation list, reachable through
// errors.As.
type SessionError struct {
	Kind FailureKind
	Err  error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("session failed: %s", e.Kind)
	}
	return fmt.Sprintf("session failed: %s: %v", e.Kind, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *SessionError) Unwrap() error { return e.Err }

// Detail returns the human-readable failure detail. For a remote error this
// is the service's message, unmodified.
func (e *SessionError) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

package svcensure

import (
	"errors"
	"fmt"
)

// Common errors returned by service-control operations
var (
	// ErrNotFound indicates the name does not resolve to a known service
	ErrNotFound = errors.New("svcensure: service not found")

	// ErrUnsupported indicates the backend is not available on this platform
	ErrUnsupported = errors.New("svcensure: backend not supported on this platform")

	// ErrWaitTimeout indicates a state wait elapsed before the target state
	ErrWaitTimeout = errors.New("svcensure: wait timeout")

	// ErrControlNotReady indicates a supervise control socket/FIFO is not
	// accepting commands
	ErrControlNotReady = errors.New("svcensure: control not accepting connections")

	// ErrDecode indicates a supervise status record could not be decoded
	ErrDecode = errors.New("svcensure: status decode")
)

// OpError represents an error from a service-control operation
type OpError struct {
	// Op is the operation that failed
	Op Operation
	// Service is the service name involved in the operation
	Service string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	return fmt.Sprintf("svcensure %s %q: %v", e.Op.String(), e.Service, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err indicates an unresolvable service name.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

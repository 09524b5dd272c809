package svcensure

import "time"

// Defaults used by the Reconciler and backends
const (
	// DefaultDelay is the settle delay before a reconciliation pass begins
	DefaultDelay = 60 * time.Second

	// DefaultOpTimeout is the per-operation timeout for backend calls
	DefaultOpTimeout = 10 * time.Second

	// DefaultWatchDebounce is the debounce time for status file watching
	DefaultWatchDebounce = 25 * time.Millisecond

	// DefaultWaitPollInterval is the polling interval used by backends
	// whose WaitRunning has no event source to watch
	DefaultWaitPollInterval = 250 * time.Millisecond
)

// Operation represents a service-control operation type
type Operation int

const (
	// OpUnknown represents an unknown operation
	OpUnknown Operation = iota
	// OpQuery reads a service's current descriptor
	OpQuery
	// OpStart starts a stopped service
	OpStart
	// OpRestart restarts a running service
	OpRestart
	// OpWait waits for a service to reach a state
	OpWait
)

// Operation string constants
const (
	opUnknownStr = "unknown"
	opQueryStr   = "query"
	opStartStr   = "start"
	opRestartStr = "restart"
	opWaitStr    = "wait"
)

// String returns the string representation of an Operation
func (op Operation) String() string {
	switch op {
	case OpQuery:
		return opQueryStr
	case OpStart:
		return opStartStr
	case OpRestart:
		return opRestartStr
	case OpWait:
		return opWaitStr
	default:
		return opUnknownStr
	}
}

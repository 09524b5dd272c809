package svcensure

import "time"

// State represents the current run state of a service as reported by the
// host's service registry.
type State int

const (
	// StateUnknown indicates the state could not be determined
	StateUnknown State = iota
	// StateStopped indicates the service exists but is not running
	StateStopped
	// StateStarting indicates the service is starting but not running yet
	StateStarting
	// StateRunning indicates the service is running
	StateRunning
	// StateFailed indicates the service exited in a failed condition
	StateFailed
)

// State string constants
const (
	stateUnknownStr  = "unknown"
	stateStoppedStr  = "stopped"
	stateStartingStr = "starting"
	stateRunningStr  = "running"
	stateFailedStr   = "failed"
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateStopped:
		return stateStoppedStr
	case StateStarting:
		return stateStartingStr
	case StateRunning:
		return stateRunningStr
	case StateFailed:
		return stateFailedStr
	default:
		return stateUnknownStr
	}
}

// ServiceInfo is the descriptor returned by a ServiceControl query.
type ServiceInfo struct {
	// Name is the service name as resolved by the backend
	Name string

	// State is the run state at the moment of the query. Descriptors are
	// never cached; the Reconciler reads fresh before and after actions.
	State State

	// PID is the main process ID (0 if not running)
	PID int

	// Since is when the service entered its current state, if the backend
	// reports it (zero otherwise)
	Since time.Time
}

// Running reports whether the descriptor shows a running service.
func (si ServiceInfo) Running() bool {
	return si.State == StateRunning
}

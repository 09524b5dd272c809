package svcensure

// Process exit codes produced by a reconciliation pass
const (
	// ExitSuccess indicates every named service ended in a running state
	ExitSuccess = 0
	// ExitInvalidName indicates at least one name did not resolve to an
	// existing service and no corrective action failed
	ExitInvalidName = 2
	// ExitActionFailed indicates at least one corrective action failed to
	// bring a service to a running state
	ExitActionFailed = 11
)

// Action is the per-service outcome of a reconciliation pass
type Action int

const (
	// ActionNone indicates no outcome was recorded
	ActionNone Action = iota
	// ActionStarted indicates a stopped service was started and verified
	ActionStarted
	// ActionRestarted indicates a running service was restarted and verified
	ActionRestarted
	// ActionSkippedNotRunning indicates a non-running service was left
	// alone because force-start was not set
	ActionSkippedNotRunning
	// ActionNotFound indicates the name did not resolve to a known service
	ActionNotFound
	// ActionFailed indicates a start or restart did not produce a running
	// service on re-query
	ActionFailed
	// ActionAccessError indicates the service registry could not be
	// queried (manager unreachable, insufficient privilege)
	ActionAccessError
)

// Action string constants
const (
	actionNoneStr       = "none"
	actionStartedStr    = "started"
	actionRestartedStr  = "restarted"
	actionSkippedStr    = "skipped-not-running"
	actionNotFoundStr   = "not-found"
	actionFailedStr     = "failed"
	actionAccessErrStr  = "access-error"
	actionUnknownActStr = "unknown"
)

// String returns the string representation of an Action
func (a Action) String() string {
	switch a {
	case ActionNone:
		return actionNoneStr
	case ActionStarted:
		return actionStartedStr
	case ActionRestarted:
		return actionRestartedStr
	case ActionSkippedNotRunning:
		return actionSkippedStr
	case ActionNotFound:
		return actionNotFoundStr
	case ActionFailed:
		return actionFailedStr
	case ActionAccessError:
		return actionAccessErrStr
	default:
		return actionUnknownActStr
	}
}

// Result is the outcome recorded for a single service in a pass.
type Result struct {
	// Service is the trimmed service name
	Service string
	// Action is what the pass did (or failed to do) for the service
	Action Action
	// State is the last state observed for the service
	State State
	// Err is the underlying error for NotFound/Failed/AccessError results
	Err error
}

// Outcome aggregates the results of one reconciliation pass. Exactly one
// Result is recorded per input name, in input order. The two failure
// flags are independent: both are recorded, neither short-circuits the
// other, because the exit-code mapping distinguishes them.
type Outcome struct {
	// Results holds the per-service outcomes in input order
	Results []Result

	// InvalidName is set when any name failed to resolve
	InvalidName bool

	// ActionFailed is set when any corrective action failed, when a
	// non-running service was skipped without force-start, or when a
	// registry access error occurred
	ActionFailed bool
}

// OK reports whether the pass completed with no failure flag set.
func (o *Outcome) OK() bool {
	return !o.InvalidName && !o.ActionFailed
}

// ExitCode maps the aggregate flags to the process exit code. When both
// flags are set the action failure wins: it is the more severe condition.
func (o *Outcome) ExitCode() int {
	switch {
	case o.ActionFailed:
		return ExitActionFailed
	case o.InvalidName:
		return ExitInvalidName
	default:
		return ExitSuccess
	}
}

func (o *Outcome) record(res Result) {
	o.Results = append(o.Results, res)

	switch res.Action {
	case ActionNotFound:
		o.InvalidName = true
	case ActionSkippedNotRunning, ActionFailed, ActionAccessError:
		o.ActionFailed = true
	}
}

package svcensure

import (
	"context"
	"time"
)

// ServiceControl is the registry binding the Reconciler depends on. Each
// backend adapts one supervision system (systemd, runit) to these three
// operations. Implementations must be safe for sequential reuse across
// services; the Reconciler never calls them concurrently.
type ServiceControl interface {
	// Query resolves name and returns the service's current descriptor.
	// It returns an error wrapping ErrNotFound when the name does not
	// resolve to an existing service, and any other error for registry
	// access failures.
	Query(ctx context.Context, name string) (ServiceInfo, error)

	// Start starts a stopped service. The command is issued once; the
	// caller verifies the outcome with a fresh Query.
	Start(ctx context.Context, name string) error

	// Restart forcibly restarts a service regardless of its state.
	Restart(ctx context.Context, name string) error
}

// StateWaiter is an optional capability of a ServiceControl. Backends
// that can observe state transitions (file watch, polling) implement it
// so the Reconciler can wait for a started service to come up instead of
// judging a single immediate re-query.
type StateWaiter interface {
	// WaitRunning blocks until the service reaches StateRunning or the
	// timeout elapses, returning the last observed descriptor.
	WaitRunning(ctx context.Context, name string, timeout time.Duration) (ServiceInfo, error)
}

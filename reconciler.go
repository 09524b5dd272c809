package svcensure

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Reconciler runs reconciliation passes against a ServiceControl backend.
// Services are processed strictly sequentially, in input order; a
// per-service failure never aborts the pass.
type Reconciler struct {
	control ServiceControl
	logger  *zap.Logger

	// verifyWait bounds how long to wait for a service to come up after a
	// corrective action. Zero means a single immediate re-query.
	verifyWait time.Duration

	// sleep implements the settle delay; replaced in tests
	sleep func(time.Duration)
}

// ReconcilerOption configures a Reconciler
type ReconcilerOption func(*Reconciler)

// WithLogger sets the logger used for per-service status lines
func WithLogger(l *zap.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		r.logger = l
	}
}

// WithVerifyWait sets how long to wait for a running state after a
// corrective action before recording the action as failed
func WithVerifyWait(d time.Duration) ReconcilerOption {
	return func(r *Reconciler) {
		r.verifyWait = d
	}
}

// WithSleep replaces the settle-delay sleep function
func WithSleep(f func(time.Duration)) ReconcilerOption {
	return func(r *Reconciler) {
		r.sleep = f
	}
}

// NewReconciler creates a Reconciler for the given backend with default
// settings applied.
func NewReconciler(control ServiceControl, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		control: control,
		logger:  zap.NewNop(),
		sleep:   time.Sleep,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Reconcile runs one reconciliation pass. It blocks for cfg.Delay, then
// processes every service in cfg.Services in order: unresolvable names
// are recorded as not found, non-running services are started (when
// cfg.ForceStart is set) or reported as skipped, and running services are
// restarted. Every corrective action is verified with a fresh query.
// Exactly one Result is recorded per input name.
func (r *Reconciler) Reconcile(ctx context.Context, cfg RunConfig) *Outcome {
	if cfg.Delay > 0 {
		r.logger.Info("waiting before reconciliation",
			zap.Duration("delay", cfg.Delay))
		r.sleep(cfg.Delay)
	}

	outcome := &Outcome{Results: make([]Result, 0, len(cfg.Services))}

	for _, raw := range cfg.Services {
		name := strings.TrimSpace(raw)
		outcome.record(r.reconcileOne(ctx, name, cfg.ForceStart))
	}

	if outcome.OK() {
		r.logger.Info("all services running",
			zap.Int("services", len(outcome.Results)))
	}

	return outcome
}

// reconcileOne handles a single service and returns its terminal result
// for this pass. One start or restart attempt is made at most; there is
// no per-service retry.
func (r *Reconciler) reconcileOne(ctx context.Context, name string, forceStart bool) Result {
	info, err := r.control.Query(ctx, name)
	switch {
	case IsNotFound(err):
		r.logger.Warn("service not found", zap.String("service", name))
		return Result{Service: name, Action: ActionNotFound, State: StateUnknown, Err: err}
	case err != nil:
		r.logger.Warn("service query failed",
			zap.String("service", name), zap.Error(err))
		return Result{Service: name, Action: ActionAccessError, State: StateUnknown, Err: err}
	}

	if !info.Running() {
		if !forceStart {
			r.logger.Warn("service not running, pass --force-start to start it",
				zap.String("service", name),
				zap.Stringer("state", info.State))
			return Result{Service: name, Action: ActionSkippedNotRunning, State: info.State}
		}

		r.logger.Info("starting service",
			zap.String("service", name),
			zap.Stringer("state", info.State))

		if err := r.control.Start(ctx, name); err != nil {
			r.logger.Warn("service start failed",
				zap.String("service", name), zap.Error(err))
			return Result{Service: name, Action: ActionFailed, State: info.State, Err: err}
		}
		return r.verify(ctx, name, ActionStarted)
	}

	// Running services are always restarted; force-start has no effect here.
	r.logger.Info("restarting service",
		zap.String("service", name),
		zap.Int("pid", info.PID))

	if err := r.control.Restart(ctx, name); err != nil {
		r.logger.Warn("service restart failed",
			zap.String("service", name), zap.Error(err))
		return Result{Service: name, Action: ActionFailed, State: info.State, Err: err}
	}
	return r.verify(ctx, name, ActionRestarted)
}

// verify re-queries the service after a corrective action and records
// success only if it is running. With a verify wait configured and a
// backend that can observe transitions, a not-yet-running service is
// given that long to come up first.
func (r *Reconciler) verify(ctx context.Context, name string, onSuccess Action) Result {
	info, err := r.control.Query(ctx, name)
	if err != nil {
		r.logger.Warn("service verification query failed",
			zap.String("service", name), zap.Error(err))
		return Result{Service: name, Action: ActionFailed, State: StateUnknown, Err: err}
	}

	if !info.Running() && r.verifyWait > 0 {
		if waiter, ok := r.control.(StateWaiter); ok {
			if waited, werr := waiter.WaitRunning(ctx, name, r.verifyWait); werr == nil {
				info = waited
			}
		}
	}

	if !info.Running() {
		r.logger.Warn("service did not reach running state",
			zap.String("service", name),
			zap.Stringer("state", info.State))
		return Result{Service: name, Action: ActionFailed, State: info.State}
	}

	r.logger.Info("service running",
		zap.String("service", name),
		zap.Stringer("action", onSuccess),
		zap.Int("pid", info.PID))
	return Result{Service: name, Action: onSuccess, State: info.State}
}

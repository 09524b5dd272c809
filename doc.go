// Package svcensure ensures named operating-system services are running.
//
// It is built around a single reconciliation pass: given a list of service
// names, a settle delay, and a force-start flag, the Reconciler queries each
// service's current state, applies a state-dependent corrective action
// (start for stopped services when forced, restart for running ones),
// re-queries to verify the outcome, and aggregates per-service results into
// a single exit status:
//
//	control, err := svcensure.NewControl(svcensure.BackendSystemd)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rec := svcensure.NewReconciler(control)
//	outcome := rec.Reconcile(ctx, svcensure.RunConfig{
//	    Services:   svcensure.ParseServiceList("nginx, redis"),
//	    Delay:      60 * time.Second,
//	    ForceStart: true,
//	})
//	os.Exit(outcome.ExitCode())
//
// # Fail-forward semantics
//
// A reconciliation pass never stops early: every input name yields exactly
// one Result, in input order, and per-service failures (unknown name,
// service-manager access error, failed start or restart) are recorded in
// the Outcome rather than propagated. The Outcome tracks two independent
// failure flags - invalid name and failed action - because they map to
// distinct exit codes.
//
// # Backends
//
// The Reconciler talks to the host's service registry through the
// ServiceControl interface. Two backends are provided: systemd (via
// systemctl) and runit (direct supervise control/status access without
// shelling out to sv). A fake ServiceControl backs deterministic tests.
//
// This library runs one pass to completion and exits; it is not a
// scheduler, daemon, or monitor.
package svcensure

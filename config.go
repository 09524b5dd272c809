package svcensure

import (
	"errors"
	"strings"
	"time"
)

// RunConfig is the immutable configuration for a single reconciliation
// pass. It is created once from the invocation parameters and never
// mutated afterwards.
type RunConfig struct {
	// Services is the list of service names to reconcile, in order.
	// Names are trimmed again at reconcile time; identity is whatever the
	// backend's registry says it is (case-insensitive on some systems).
	Services []string

	// Delay is the settle delay applied before the pass begins, giving
	// external systems (a deployment, a prior restart) time to settle.
	// It is a single unconditional blocking delay, not a retry interval.
	Delay time.Duration

	// ForceStart permits starting services found not running. Without it
	// a non-running service is reported as a problem and left alone.
	ForceStart bool
}

// Validate checks the preconditions for a reconciliation pass.
func (c RunConfig) Validate() error {
	if len(c.Services) == 0 {
		return errors.New("svcensure: no services specified")
	}
	for _, s := range c.Services {
		if strings.TrimSpace(s) == "" {
			return errors.New("svcensure: empty service name")
		}
	}
	if c.Delay < 0 {
		return errors.New("svcensure: negative delay")
	}
	return nil
}

// ParseServiceList splits a comma-separated list of service names,
// trimming surrounding whitespace and dropping empty entries.
// " Svc1 , Svc2 " parses identically to "Svc1,Svc2".
func ParseServiceList(list string) []string {
	parts := strings.Split(list, ",")
	services := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			services = append(services, name)
		}
	}
	return services
}

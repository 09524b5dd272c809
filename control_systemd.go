//go:build linux

package svcensure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ControlSystemd addresses services through systemctl. It shells out for
// every operation; systemd offers no stable on-disk status format to read
// directly.
type ControlSystemd struct {
	// SystemctlPath is the path to the systemctl binary
	SystemctlPath string

	// UseSudo indicates whether to prefix systemctl commands with sudo
	UseSudo bool

	// SudoCommand is the sudo command to use
	SudoCommand string

	// Timeout bounds a single systemctl invocation
	Timeout time.Duration

	// PollInterval is the re-query interval used by WaitRunning
	PollInterval time.Duration
}

func newSystemdControl(cfg *ControlConfig) (ServiceControl, error) {
	c := &ControlSystemd{
		SystemctlPath: cfg.SystemctlPath,
		UseSudo:       cfg.UseSudo,
		SudoCommand:   cfg.SudoCommand,
		Timeout:       cfg.OpTimeout,
		PollInterval:  DefaultWaitPollInterval,
	}
	if c.SystemctlPath == "" {
		c.SystemctlPath = "systemctl"
	}
	if c.SudoCommand == "" {
		c.SudoCommand = "sudo"
	}
	return c, nil
}

// execSystemctl runs a systemctl subcommand against a unit, capturing
// stderr into the returned error.
func (c *ControlSystemd) execSystemctl(ctx context.Context, args ...string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var cmd *exec.Cmd
	if c.UseSudo {
		sudoArgs := append([]string{c.SystemctlPath}, args...)
		cmd = exec.CommandContext(ctx, c.SudoCommand, sudoArgs...)
	} else {
		cmd = exec.CommandContext(ctx, c.SystemctlPath, args...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("%w (stderr: %s)", err, bytes.TrimSpace(stderr.Bytes()))
	}

	return stdout.String(), nil
}

// Query reads the unit's load and run state via systemctl show.
func (c *ControlSystemd) Query(ctx context.Context, name string) (ServiceInfo, error) {
	output, err := c.execSystemctl(ctx, "show", "--property="+systemdQueryProperties, unitName(name))
	if err != nil {
		// Newer systemctl exits 4 for unknown units instead of reporting
		// LoadState=not-found
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == systemctlExitNoSuchUnit {
			return ServiceInfo{}, &OpError{Op: OpQuery, Service: name, Err: ErrNotFound}
		}
		return ServiceInfo{}, &OpError{Op: OpQuery, Service: name, Err: err}
	}

	return infoFromUnitProperties(name, parseUnitProperties(output))
}

// Start starts the unit
func (c *ControlSystemd) Start(ctx context.Context, name string) error {
	if _, err := c.execSystemctl(ctx, "start", unitName(name)); err != nil {
		return &OpError{Op: OpStart, Service: name, Err: err}
	}
	return nil
}

// Restart restarts the unit regardless of its current state
func (c *ControlSystemd) Restart(ctx context.Context, name string) error {
	if _, err := c.execSystemctl(ctx, "restart", unitName(name)); err != nil {
		return &OpError{Op: OpRestart, Service: name, Err: err}
	}
	return nil
}

// WaitRunning polls the unit until it reports running or the timeout
// elapses. The last observed descriptor is returned either way.
func (c *ControlSystemd) WaitRunning(ctx context.Context, name string, timeout time.Duration) (ServiceInfo, error) {
	deadline := time.Now().Add(timeout)

	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()

	var last ServiceInfo
	for {
		info, err := c.Query(ctx, name)
		if err != nil {
			return last, err
		}
		if info.Running() {
			return info, nil
		}
		last = info

		if time.Now().After(deadline) {
			return last, &OpError{Op: OpWait, Service: name, Err: ErrWaitTimeout}
		}

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Ensure ControlSystemd implements both interfaces
var (
	_ ServiceControl = (*ControlSystemd)(nil)
	_ StateWaiter    = (*ControlSystemd)(nil)
)

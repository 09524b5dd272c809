package svcensure

import (
	"fmt"
	"time"
)

// Backend represents the type of service supervision system
type Backend int

const (
	// BackendUnknown represents an unrecognized supervision system
	BackendUnknown Backend = iota
	// BackendSystemd addresses services through systemctl
	BackendSystemd
	// BackendRunit addresses services through runit supervise directories
	BackendRunit
)

// Backend string constants
const (
	backendUnknownStr = "unknown"
	backendSystemdStr = "systemd"
	backendRunitStr   = "runit"
)

// String returns the string representation of a Backend
func (b Backend) String() string {
	switch b {
	case BackendSystemd:
		return backendSystemdStr
	case BackendRunit:
		return backendRunitStr
	default:
		return backendUnknownStr
	}
}

// ParseBackend resolves a backend name as accepted on the command line.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case backendSystemdStr:
		return BackendSystemd, nil
	case backendRunitStr:
		return BackendRunit, nil
	default:
		return BackendUnknown, fmt.Errorf("svcensure: unknown backend %q", s)
	}
}

// ControlConfig carries backend construction settings. Zero values are
// replaced with the backend's defaults.
type ControlConfig struct {
	// ServiceDir is the base service directory for directory-addressed
	// backends (runit: /etc/service)
	ServiceDir string

	// SystemctlPath is the systemctl binary path for the systemd backend
	SystemctlPath string

	// UseSudo prefixes systemctl invocations with SudoCommand
	UseSudo bool

	// SudoCommand is the sudo binary to use when UseSudo is set
	SudoCommand string

	// OpTimeout bounds a single query/start/restart call
	OpTimeout time.Duration
}

// ControlOption configures backend construction
type ControlOption func(*ControlConfig)

// WithServiceDir sets the base service directory for the runit backend
func WithServiceDir(dir string) ControlOption {
	return func(c *ControlConfig) {
		c.ServiceDir = dir
	}
}

// WithSystemctlPath sets the systemctl binary path
func WithSystemctlPath(path string) ControlOption {
	return func(c *ControlConfig) {
		c.SystemctlPath = path
	}
}

// WithSudo configures sudo usage for the systemd backend
func WithSudo(use bool, command string) ControlOption {
	return func(c *ControlConfig) {
		c.UseSudo = use
		if command != "" {
			c.SudoCommand = command
		}
	}
}

// WithOpTimeout bounds each backend operation
func WithOpTimeout(d time.Duration) ControlOption {
	return func(c *ControlConfig) {
		c.OpTimeout = d
	}
}

// NewControl creates the ServiceControl for the requested backend. It
// returns an error wrapping ErrUnsupported when the backend is not
// available on this platform.
func NewControl(backend Backend, opts ...ControlOption) (ServiceControl, error) {
	cfg := &ControlConfig{
		SudoCommand: "sudo",
		OpTimeout:   DefaultOpTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch backend {
	case BackendSystemd:
		return newSystemdControl(cfg)
	case BackendRunit:
		return newRunitControl(cfg)
	default:
		return nil, fmt.Errorf("svcensure: unknown backend %d", backend)
	}
}

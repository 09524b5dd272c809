//go:build !linux

package svcensure

// newSystemdControl reports systemd as unavailable on non-Linux systems
func newSystemdControl(_ *ControlConfig) (ServiceControl, error) {
	return nil, &OpError{Op: OpUnknown, Service: backendSystemdStr, Err: ErrUnsupported}
}

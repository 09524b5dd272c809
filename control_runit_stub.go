//go:build !linux && !darwin

package svcensure

// newRunitControl reports runit as unavailable on this platform
func newRunitControl(_ *ControlConfig) (ServiceControl, error) {
	return nil, &OpError{Op: OpUnknown, Service: backendRunitStr, Err: ErrUnsupported}
}

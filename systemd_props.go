package svcensure

import (
	"strconv"
	"strings"
)

// systemctlExitNoSuchUnit is the exit code systemctl uses when a unit
// cannot be found
// Reference: systemctl(1)
const systemctlExitNoSuchUnit = 4

// Unit properties read by the systemd backend
const (
	propLoadState   = "LoadState"
	propActiveState = "ActiveState"
	propSubState    = "SubState"
	propMainPID     = "MainPID"
)

// systemdQueryProperties is the property set requested from systemctl show
const systemdQueryProperties = propLoadState + "," + propActiveState + "," + propSubState + "," + propMainPID

// parseUnitProperties parses the key=value lines emitted by
// "systemctl show --property=...".
func parseUnitProperties(output string) map[string]string {
	props := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return props
}

// infoFromUnitProperties maps systemd unit properties to a descriptor.
// A LoadState of not-found reports ErrNotFound: the name does not resolve
// to an existing unit.
func infoFromUnitProperties(name string, props map[string]string) (ServiceInfo, error) {
	if props[propLoadState] == "not-found" {
		return ServiceInfo{}, &OpError{Op: OpQuery, Service: name, Err: ErrNotFound}
	}

	info := ServiceInfo{Name: name, State: stateFromUnitProperties(props)}
	if pid, err := strconv.Atoi(props[propMainPID]); err == nil && pid > 0 {
		info.PID = pid
	}
	return info, nil
}

// stateFromUnitProperties infers the run state from ActiveState/SubState.
func stateFromUnitProperties(props map[string]string) State {
	switch props[propActiveState] {
	case "active":
		// Oneshot units report active/exited; only running counts
		if props[propSubState] == "running" {
			return StateRunning
		}
		return StateStopped
	case "activating":
		return StateStarting
	case "inactive", "deactivating":
		return StateStopped
	case "failed":
		return StateFailed
	default:
		return StateUnknown
	}
}

// unitName qualifies a bare service name with the .service suffix.
// Names already carrying a unit suffix are passed through.
func unitName(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return name + ".service"
}

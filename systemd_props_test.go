package svcensure

import (
	"errors"
	"testing"
)

func TestParseUnitProperties(t *testing.T) {
	output := "LoadState=loaded\nActiveState=active\nSubState=running\nMainPID=1234\n"

	props := parseUnitProperties(output)

	want := map[string]string{
		"LoadState":   "loaded",
		"ActiveState": "active",
		"SubState":    "running",
		"MainPID":     "1234",
	}
	for key, value := range want {
		if props[key] != value {
			t.Errorf("props[%q] = %q, want %q", key, props[key], value)
		}
	}
}

func TestParseUnitPropertiesValueWithEquals(t *testing.T) {
	props := parseUnitProperties("ExecStart={ path=/usr/bin/app }\n")

	if props["ExecStart"] != "{ path=/usr/bin/app }" {
		t.Errorf("ExecStart = %q, want the full value", props["ExecStart"])
	}
}

func TestInfoFromUnitProperties(t *testing.T) {
	tests := []struct {
		name      string
		props     map[string]string
		wantState State
		wantPID   int
	}{
		{
			name: "running",
			props: map[string]string{
				"LoadState": "loaded", "ActiveState": "active",
				"SubState": "running", "MainPID": "1234",
			},
			wantState: StateRunning,
			wantPID:   1234,
		},
		{
			name: "oneshot exited is not running",
			props: map[string]string{
				"LoadState": "loaded", "ActiveState": "active",
				"SubState": "exited", "MainPID": "0",
			},
			wantState: StateStopped,
		},
		{
			name: "inactive",
			props: map[string]string{
				"LoadState": "loaded", "ActiveState": "inactive",
				"SubState": "dead", "MainPID": "0",
			},
			wantState: StateStopped,
		},
		{
			name: "activating",
			props: map[string]string{
				"LoadState": "loaded", "ActiveState": "activating",
				"SubState": "start", "MainPID": "0",
			},
			wantState: StateStarting,
		},
		{
			name: "failed",
			props: map[string]string{
				"LoadState": "loaded", "ActiveState": "failed",
				"SubState": "failed", "MainPID": "0",
			},
			wantState: StateFailed,
		},
		{
			name:      "unrecognized active state",
			props:     map[string]string{"LoadState": "loaded", "ActiveState": "reloading"},
			wantState: StateUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := infoFromUnitProperties("svc", tt.props)
			if err != nil {
				t.Fatal(err)
			}
			if info.State != tt.wantState {
				t.Errorf("State = %v, want %v", info.State, tt.wantState)
			}
			if info.PID != tt.wantPID {
				t.Errorf("PID = %d, want %d", info.PID, tt.wantPID)
			}
		})
	}
}

func TestInfoFromUnitPropertiesNotFound(t *testing.T) {
	props := map[string]string{"LoadState": "not-found", "ActiveState": "inactive"}

	_, err := infoFromUnitProperties("ghost", props)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("err = %T, want *OpError", err)
	}
	if opErr.Op != OpQuery || opErr.Service != "ghost" {
		t.Errorf("OpError = %+v, want query on ghost", opErr)
	}
}

func TestUnitName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"nginx", "nginx.service"},
		{"nginx.service", "nginx.service"},
		{"backup.timer", "backup.timer"},
	}

	for _, tt := range tests {
		if got := unitName(tt.in); got != tt.want {
			t.Errorf("unitName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

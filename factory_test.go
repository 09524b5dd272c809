package svcensure

import "testing"

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"systemd", BackendSystemd, false},
		{"runit", BackendRunit, false},
		{"", BackendUnknown, true},
		{"launchd", BackendUnknown, true},
		{"Systemd", BackendUnknown, true},
	}

	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBackend(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseBackend(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBackendStringRoundTrip(t *testing.T) {
	for _, backend := range []Backend{BackendSystemd, BackendRunit} {
		got, err := ParseBackend(backend.String())
		if err != nil {
			t.Fatalf("ParseBackend(%q): %v", backend.String(), err)
		}
		if got != backend {
			t.Errorf("round trip %v = %v", backend, got)
		}
	}
}

func TestNewControlUnknownBackend(t *testing.T) {
	if _, err := NewControl(BackendUnknown); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if _, err := NewControl(Backend(42)); err == nil {
		t.Fatal("expected error for out-of-range backend")
	}
}

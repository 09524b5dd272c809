package svcensure

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

// makeSuperviseStatus builds a 20-byte supervise status record for tests
func makeSuperviseStatus(pid int, want byte, paused, finishing bool) []byte {
	data := make([]byte, runitStatusSize)

	now := time.Now()
	binary.BigEndian.PutUint64(data[runitOffsetTAISec:], uint64(now.Unix())+tai64Base)
	binary.BigEndian.PutUint32(data[runitOffsetTAINano:], uint32(now.Nanosecond()))
	binary.BigEndian.PutUint32(data[runitOffsetPID:], uint32(pid))

	if paused {
		data[runitOffsetPaused] = 1
	}
	data[runitOffsetWant] = want
	if finishing {
		data[runitOffsetTerm] = 1
	}

	return data
}

func TestDecodeSuperviseStatus(t *testing.T) {
	tests := []struct {
		name      string
		pid       int
		want      byte
		paused    bool
		finishing bool
		wantState State
	}{
		{"running", 1234, runitCtlUp, false, false, StateRunning},
		{"down", 0, runitCtlDown, false, false, StateStopped},
		{"wants up but no process", 0, runitCtlUp, false, false, StateStarting},
		{"paused", 1234, runitCtlUp, true, false, StateStopped},
		{"finishing", 1234, runitCtlDown, false, true, StateStopped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := makeSuperviseStatus(tt.pid, tt.want, tt.paused, tt.finishing)

			info, err := decodeSuperviseStatus("svc", data)
			if err != nil {
				t.Fatal(err)
			}

			if info.PID != tt.pid {
				t.Errorf("PID = %d, want %d", info.PID, tt.pid)
			}
			if info.State != tt.wantState {
				t.Errorf("State = %v, want %v", info.State, tt.wantState)
			}
			if info.Running() != (tt.wantState == StateRunning) {
				t.Errorf("Running() = %v for state %v", info.Running(), info.State)
			}
		})
	}
}

func TestDecodeSuperviseStatusTimestamp(t *testing.T) {
	data := makeSuperviseStatus(1234, runitCtlUp, false, false)

	info, err := decodeSuperviseStatus("svc", data)
	if err != nil {
		t.Fatal(err)
	}

	if info.Since.IsZero() {
		t.Fatal("Since is zero, want the record timestamp")
	}
	if age := time.Since(info.Since); age < 0 || age > time.Minute {
		t.Errorf("Since = %v, want within the last minute", info.Since)
	}
}

func TestDecodeSuperviseStatusBadSize(t *testing.T) {
	for _, size := range []int{0, 18, 19, 21, 40} {
		if _, err := decodeSuperviseStatus("svc", make([]byte, size)); !errors.Is(err, ErrDecode) {
			t.Errorf("size %d: err = %v, want ErrDecode", size, err)
		}
	}
}

func TestDecodeSuperviseStatusZeroTimestamp(t *testing.T) {
	data := make([]byte, runitStatusSize)
	binary.BigEndian.PutUint32(data[runitOffsetPID:], 99)
	data[runitOffsetWant] = runitCtlUp

	info, err := decodeSuperviseStatus("svc", data)
	if err != nil {
		t.Fatal(err)
	}

	if !info.Since.IsZero() {
		t.Errorf("Since = %v, want zero for an empty timestamp", info.Since)
	}
	if info.State != StateRunning {
		t.Errorf("State = %v, want StateRunning", info.State)
	}
}

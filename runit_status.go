package svcensure

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Runit supervise directory and file constants
const (
	// runitSuperviseDir is the subdirectory containing supervise files
	runitSuperviseDir = "supervise"

	// runitControlFile is the control socket/FIFO file name
	runitControlFile = "control"

	// runitStatusFile is the binary status file name
	runitStatusFile = "status"

	// runitStatusSize is the exact size of the binary status record:
	// char svstatus[20] in the runit source
	runitStatusSize = 20
)

// Control bytes written to the supervise control endpoint
const (
	runitCtlUp   = 'u'
	runitCtlDown = 'd'
)

// Status record layout offsets (from the runit source)
const (
	runitOffsetTAISec  = 0  // bytes 0-7: TAI64N seconds
	runitOffsetTAINano = 8  // bytes 8-11: TAI64N nanoseconds
	runitOffsetPID     = 12 // bytes 12-15: PID (big endian)
	runitOffsetPaused  = 16 // byte 16: paused flag
	runitOffsetWant    = 17 // byte 17: want flag ('u' or 'd')
	runitOffsetTerm    = 18 // byte 18: finish script running
)

// tai64Base is the TAI64 epoch offset from the Unix epoch: 2^62 plus the
// 10 seconds TAI was ahead of UTC at the Unix epoch.
const tai64Base = uint64(1<<62) + 10

// decodeSuperviseStatus decodes a 20-byte runit supervise status record
// into a service descriptor.
func decodeSuperviseStatus(name string, data []byte) (ServiceInfo, error) {
	if len(data) != runitStatusSize {
		return ServiceInfo{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrDecode, runitStatusSize, len(data))
	}

	info := ServiceInfo{Name: name}

	info.PID = int(binary.BigEndian.Uint32(data[runitOffsetPID : runitOffsetPID+4]))
	info.State = runitState(info.PID, data)

	if sec := binary.BigEndian.Uint64(data[runitOffsetTAISec : runitOffsetTAISec+8]); sec > tai64Base {
		unixSec := int64(sec - tai64Base)
		nano := binary.BigEndian.Uint32(data[runitOffsetTAINano : runitOffsetTAINano+4])
		if unixSec < 253402300800 { // before year 10000
			info.Since = time.Unix(unixSec, int64(nano))
		}
	}

	return info, nil
}

// runitState infers the run state from the PID and the record flags.
func runitState(pid int, data []byte) State {
	wantUp := data[runitOffsetWant] == runitCtlUp
	paused := data[runitOffsetPaused] != 0
	finishing := data[runitOffsetTerm] != 0

	switch {
	case pid == 0 && wantUp:
		// Down but wants up: crashed or still coming up
		return StateStarting
	case pid == 0:
		return StateStopped
	case paused || finishing:
		return StateStopped
	default:
		return StateRunning
	}
}

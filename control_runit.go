//go:build linux || darwin

package svcensure

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"
)

// Runit backend defaults
const (
	// DefaultRunitServiceDir is where runsvdir scans for services
	DefaultRunitServiceDir = "/etc/service"

	defaultRunitDialTimeout  = 2 * time.Second
	defaultRunitWriteTimeout = 1 * time.Second
	defaultRunitBackoffMin   = 10 * time.Millisecond
	defaultRunitBackoffMax   = 1 * time.Second
	defaultRunitMaxAttempts  = 10

	// runitRestartSettle is the pause between the down and up commands of
	// a restart, giving supervise time to reap the old process
	runitRestartSettle = 100 * time.Millisecond
)

// ControlRunit addresses services as subdirectories of a base service
// directory and talks to each service's supervise process directly
// through its control socket/FIFO and binary status file, without
// shelling out to sv.
type ControlRunit struct {
	// ServiceDir is the base directory containing one subdirectory per
	// service
	ServiceDir string

	// DialTimeout is the timeout for control socket connections
	DialTimeout time.Duration

	// WriteTimeout is the timeout for control command writes
	WriteTimeout time.Duration

	// BackoffMin is the minimum duration between control retry attempts
	BackoffMin time.Duration

	// BackoffMax is the maximum duration between control retry attempts
	BackoffMax time.Duration

	// MaxAttempts is the maximum number of control write attempts
	MaxAttempts int

	// WatchDebounce coalesces rapid status file changes during waits
	WatchDebounce time.Duration

	// mu serializes control writes
	mu sync.Mutex
}

func newRunitControl(cfg *ControlConfig) (ServiceControl, error) {
	c := &ControlRunit{
		ServiceDir:    cfg.ServiceDir,
		DialTimeout:   defaultRunitDialTimeout,
		WriteTimeout:  defaultRunitWriteTimeout,
		BackoffMin:    defaultRunitBackoffMin,
		BackoffMax:    defaultRunitBackoffMax,
		MaxAttempts:   defaultRunitMaxAttempts,
		WatchDebounce: DefaultWatchDebounce,
	}
	if c.ServiceDir == "" {
		c.ServiceDir = DefaultRunitServiceDir
	}

	absPath, err := filepath.Abs(c.ServiceDir)
	if err != nil {
		return nil, fmt.Errorf("resolving service dir: %w", err)
	}
	c.ServiceDir = absPath

	return c, nil
}

// superviseDir returns the supervise directory for a named service
func (c *ControlRunit) superviseDir(name string) string {
	return filepath.Join(c.ServiceDir, name, runitSuperviseDir)
}

// Query reads and decodes the service's binary supervise status record.
// A missing service or supervise directory means the name does not
// resolve to a supervised service.
func (c *ControlRunit) Query(_ context.Context, name string) (ServiceInfo, error) {
	superviseDir := c.superviseDir(name)
	if _, err := os.Stat(superviseDir); err != nil {
		if os.IsNotExist(err) {
			return ServiceInfo{}, &OpError{Op: OpQuery, Service: name, Err: ErrNotFound}
		}
		return ServiceInfo{}, &OpError{Op: OpQuery, Service: name, Err: err}
	}

	statusPath := filepath.Join(superviseDir, runitStatusFile)
	file, err := os.Open(statusPath)
	if err != nil {
		return ServiceInfo{}, &OpError{Op: OpQuery, Service: name, Err: err}
	}
	defer func() { _ = file.Close() }()

	var buf [runitStatusSize]byte
	n, err := io.ReadFull(file, buf[:])
	if err != nil && err != io.ErrUnexpectedEOF {
		return ServiceInfo{}, &OpError{Op: OpQuery, Service: name, Err: err}
	}
	if n != runitStatusSize {
		return ServiceInfo{}, &OpError{Op: OpQuery, Service: name, Err: ErrDecode}
	}

	info, err := decodeSuperviseStatus(name, buf[:])
	if err != nil {
		return ServiceInfo{}, &OpError{Op: OpQuery, Service: name, Err: err}
	}

	return info, nil
}

// Start sets the service's want state to up
func (c *ControlRunit) Start(ctx context.Context, name string) error {
	if err := c.send(ctx, name, runitCtlUp); err != nil {
		return &OpError{Op: OpStart, Service: name, Err: err}
	}
	return nil
}

// Restart forces a restart by taking the service down and bringing it
// back up
func (c *ControlRunit) Restart(ctx context.Context, name string) error {
	if err := c.send(ctx, name, runitCtlDown); err != nil {
		return &OpError{Op: OpRestart, Service: name, Err: err}
	}
	time.Sleep(runitRestartSettle)
	if err := c.send(ctx, name, runitCtlUp); err != nil {
		return &OpError{Op: OpRestart, Service: name, Err: err}
	}
	return nil
}

// send writes a single control byte to the service's control endpoint.
// It retries with exponential backoff: a supervise process that is still
// coming up has not opened its control FIFO yet.
func (c *ControlRunit) send(ctx context.Context, name string, cmd byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	controlPath := filepath.Join(c.superviseDir(name), runitControlFile)

	var lastErr error
	backoff := c.BackoffMin

	for attempt := 0; attempt < c.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}

			backoff *= 2
			if backoff > c.BackoffMax {
				backoff = c.BackoffMax
			}
		}

		// Newer supervise exposes a unix socket; older uses a FIFO
		conn, err := net.DialTimeout("unix", controlPath, c.DialTimeout)
		if err == nil {
			if c.WriteTimeout > 0 {
				_ = conn.SetWriteDeadline(time.Now().Add(c.WriteTimeout))
			}

			_, werr := conn.Write([]byte{cmd})
			_ = conn.Close()
			if werr == nil {
				return nil
			}
			lastErr = werr
			continue
		}

		file, err := os.OpenFile(controlPath, os.O_WRONLY|syscall.O_NONBLOCK, 0)
		if err == nil {
			_, werr := file.Write([]byte{cmd})
			_ = file.Close()
			if werr == nil {
				return nil
			}
			lastErr = werr
			continue
		}

		lastErr = err
	}

	if lastErr != nil {
		return lastErr
	}
	return ErrControlNotReady
}

// Ensure ControlRunit implements both interfaces
var (
	_ ServiceControl = (*ControlRunit)(nil)
	_ StateWaiter    = (*ControlRunit)(nil)
)

//go:build linux || darwin

package svcensure

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"vawter.tech/stopper"
)

// WaitRunning blocks until the service reaches a running state or the
// timeout elapses. It watches the supervise status file for writes
// instead of polling; supervise rewrites the record on every state
// change. The last observed descriptor is returned either way.
func (c *ControlRunit) WaitRunning(ctx context.Context, name string, timeout time.Duration) (ServiceInfo, error) {
	last, err := c.Query(ctx, name)
	if err != nil {
		return ServiceInfo{}, err
	}
	if last.Running() {
		return last, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return last, &OpError{Op: OpWait, Service: name, Err: err}
	}
	if err := watcher.Add(c.superviseDir(name)); err != nil {
		_ = watcher.Close()
		return last, &OpError{Op: OpWait, Service: name, Err: err}
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sctx := stopper.WithContext(waitCtx)
	sctx.Defer(func() { _ = watcher.Close() })
	defer func() {
		sctx.Stop(100 * time.Millisecond)
		_ = sctx.Wait()
	}()

	updates := make(chan ServiceInfo, 1)

	sctx.Go(func(sctx *stopper.Context) error {
		var debounce *time.Timer
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()

		requery := func() {
			info, qerr := c.Query(waitCtx, name)
			if qerr != nil {
				return
			}
			select {
			case updates <- info:
			case <-sctx.Stopping():
			}
		}

		for {
			select {
			case <-sctx.Stopping():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Base(event.Name) != runitStatusFile {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(c.WatchDebounce, requery)

			case _, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	})

	// The transition may have happened between the first query and the
	// watch being established; check once more before blocking.
	if info, qerr := c.Query(waitCtx, name); qerr == nil {
		if info.Running() {
			return info, nil
		}
		last = info
	}

	for {
		select {
		case info := <-updates:
			last = info
			if info.Running() {
				return info, nil
			}
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return last, ctx.Err()
			}
			return last, &OpError{Op: OpWait, Service: name, Err: ErrWaitTimeout}
		}
	}
}

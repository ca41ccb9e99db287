//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlsrc

import (
	"context"
	"os"
	"time"
)

// watchdog cancels a transfer that did not receive data for longer than
// timeout. A zero timeout disables it, the context is then only cancelled
// by Stop or by the parent.
type watchdog struct {
	ctx     context.Context
	cancel  context.CancelCauseFunc
	timer   *time.Timer
	timeout time.Duration
}

func newWatchdog(parent context.Context, timeout time.Duration) *watchdog {
	ctx, cancel := context.WithCancelCause(parent)
	wd := &watchdog{
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
	}
	if timeout > 0 {
		wd.timer = time.AfterFunc(timeout, func() {
			cancel(os.ErrDeadlineExceeded)
		})
	}
	return wd
}

// Kick postpones the deadline, it must be called every time data arrives.
func (wd *watchdog) Kick() {
	if wd.timer != nil {
		wd.timer.Reset(wd.timeout)
	}
}

// Err returns the reason of the cancellation, os.ErrDeadlineExceeded if the
// watchdog fired, or nil if the context is still alive.
func (wd *watchdog) Err() error {
	return context.Cause(wd.ctx)
}

func (wd *watchdog) Stop() {
	if wd.timer != nil {
		wd.timer.Stop()
	}
	wd.cancel(nil)
}

//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlsrc

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// Progress reports the advancement of downloads and extractions.
// A nil Progress means that no progress is reported.
type Progress interface {
	// Start begins tracking a unit of work: the bytes of a download or the
	// members of an archive. total is -1 when the size is unknown.
	Start(label string, total int64) Tracker
}

// Tracker follows a single unit of work started with Progress.Start.
type Tracker interface {
	// Update sets the amount of work done so far.
	Update(current int64)
	// Done marks the end of the work, successful or not.
	Done()
}

// ProgressFunc adapts a function to the Progress interface, the function is
// called on every update and once more when the work is done.
type ProgressFunc func(label string, current, total int64, done bool)

// Start implements Progress.
func (f ProgressFunc) Start(label string, total int64) Tracker {
	return &funcTracker{f: f, label: label, total: total}
}

type funcTracker struct {
	f       ProgressFunc
	label   string
	total   int64
	current int64
}

func (t *funcTracker) Update(current int64) {
	t.current = current
	t.f(t.label, current, t.total, false)
}

func (t *funcTracker) Done() {
	t.f(t.label, t.current, t.total, true)
}

// BarProgress draws a progress bar on a terminal.
type BarProgress struct {
	out      io.Writer
	width    int
	interval time.Duration
}

// NewBarProgress returns a Progress drawing a bar of the given width on out.
func NewBarProgress(out io.Writer, width int) *BarProgress {
	if width <= 0 {
		width = 40
	}
	return &BarProgress{out: out, width: width, interval: 100 * time.Millisecond}
}

var counterStyle = lipgloss.NewStyle().Faint(true)

// Start implements Progress.
func (p *BarProgress) Start(label string, total int64) Tracker {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(p.width))
	fmt.Fprintln(p.out, label)
	return &barTracker{p: p, bar: bar, total: total}
}

type barTracker struct {
	p       *BarProgress
	bar     progress.Model
	total   int64
	current int64
	last    time.Time
	mu      sync.Mutex
}

func (t *barTracker) Update(current int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = current
	if time.Since(t.last) < t.p.interval {
		return
	}
	t.last = time.Now()
	t.draw()
}

func (t *barTracker) Done() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.draw()
	fmt.Fprintln(t.p.out)
}

func (t *barTracker) draw() {
	if t.total <= 0 {
		// Unknown total, only the counter is shown.
		fmt.Fprintf(t.p.out, "\r%s", counterStyle.Render(formatCount(t.current)))
		return
	}
	percent := float64(t.current) / float64(t.total)
	fmt.Fprintf(t.p.out, "\r%s %s", t.bar.ViewAs(percent),
		counterStyle.Render(formatCount(t.current)+"/"+formatCount(t.total)))
}

// LogProgress reports progress as log entries, at most one every interval.
// It fits non interactive outputs such as CI logs.
type LogProgress struct {
	log      logrus.FieldLogger
	interval time.Duration
}

// NewLogProgress returns a Progress logging at info level on log.
func NewLogProgress(log logrus.FieldLogger, interval time.Duration) *LogProgress {
	return &LogProgress{log: log, interval: interval}
}

// Start implements Progress.
func (p *LogProgress) Start(label string, total int64) Tracker {
	return &logTracker{
		log:      p.log.WithField("item", label),
		interval: p.interval,
		total:    total,
		last:     time.Now(),
	}
}

type logTracker struct {
	log      logrus.FieldLogger
	interval time.Duration
	total    int64
	current  int64
	last     time.Time
}

func (t *logTracker) Update(current int64) {
	t.current = current
	if time.Since(t.last) < t.interval {
		return
	}
	t.last = time.Now()
	t.log.WithField("total", t.total).Infof("progress %d", current)
}

func (t *logTracker) Done() {
	t.log.WithField("total", t.total).Infof("completed %d", t.current)
}

func formatCount(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ci", float64(n)/float64(div), "KMGTPE"[exp])
}

// Package progress renders a textual activity indicator while a blocking
// pipeline stage runs.
//
// The indicator is purely cosmetic: it animates a spinner on its own
// goroutine while the caller blocks on external work. Correctness matters
// only in its lifecycle: the render goroutine polls an atomic flag and Stop
// always waits for it to exit before returning, so no stage result is ever
// reported while the spinner is still drawing.
package progress

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// frames are the spinner glyphs, cycled at the render interval.
var frames = []string{"|", "/", "-", "\\"}

// DefaultInterval is the render interval for interactive use.
const DefaultInterval = 100 * time.Millisecond

// Indicator renders "{label}... {frame}" on a carriage-returned line until
// stopped, then prints the final "{label}... Done!" line. One Indicator
// serves one stage invocation; create a fresh one per stage.
type Indicator struct {
	label    string
	out      io.Writer
	interval time.Duration

	running atomic.Bool
	done    chan struct{}
}

// New creates an indicator writing to out. A nil out or non-positive interval
// falls back to io.Discard and DefaultInterval respectively.
func New(label string, out io.Writer, interval time.Duration) *Indicator {
	if out == nil {
		out = io.Discard
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Indicator{
		label:    label,
		out:      out,
		interval: interval,
	}
}

// Start begins rendering on a background goroutine. Calling Start on an
// already-running indicator is a no-op.
func (in *Indicator) Start() {
	if !in.running.CompareAndSwap(false, true) {
		return
	}
	in.done = make(chan struct{})
	go in.render()
}

// Stop halts rendering, waits for the render goroutine to exit, and prints
// the final Done line. Safe to call when not running, and safe to call twice;
// the stage executor relies on this so a failed stage can stop the spinner
// unconditionally before reporting the error.
func (in *Indicator) Stop() {
	if !in.running.CompareAndSwap(true, false) {
		return
	}
	<-in.done
	fmt.Fprintf(in.out, "\r%s... Done!   \n", in.label)
}

func (in *Indicator) render() {
	defer close(in.done)
	idx := 0
	for in.running.Load() {
		fmt.Fprintf(in.out, "\r%s... %s", in.label, frames[idx%len(frames)])
		idx++
		time.Sleep(in.interval)
	}
}

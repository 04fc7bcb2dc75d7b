package calc

import "time"

// AutoClearDelay is how long a division-by-zero message stays on screen
// before the machine clears itself.
const AutoClearDelay = 2000 * time.Millisecond

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// Scheduler runs fn once after d. fn may run on any goroutine; the Machine
// locks itself inside its callbacks. Schedule must not call fn before it
// returns.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Timer
}

// ClockScheduler schedules callbacks on the wall clock. When Dispatch is
// set the callback is handed to it from the timer goroutine, which lets a
// host post the work onto its own event loop. A nil Dispatch runs the
// callback directly on the timer goroutine. The zero value is the
// Machine's default scheduler.
type ClockScheduler struct {
	Dispatch func(fn func())
}

// Schedule implements Scheduler.
func (s ClockScheduler) Schedule(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		if s.Dispatch != nil {
			s.Dispatch(fn)
			return
		}
		fn()
	})
}

// Sink receives the text the display should show.
type Sink interface {
	Render(text string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(text string)

// Render implements Sink.
func (f SinkFunc) Render(text string) { f(text) }

type discardSink struct{}

func (discardSink) Render(string) {}

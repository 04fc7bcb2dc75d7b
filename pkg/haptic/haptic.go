// Package haptic produces short feedback pulses on button presses. A
// terminal has no vibration motor, so the pulse is the terminal bell, which
// most emulators map to a visual flash or a system haptic.
package haptic

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Trigger emits one feedback pulse. Pulse never fails; implementations
// swallow hardware and capability errors.
type Trigger interface {
	Pulse()
}

// Nop is a Trigger that does nothing.
type Nop struct{}

// Pulse implements Trigger.
func (Nop) Pulse() {}

// Bell rings the terminal bell on w.
type Bell struct {
	w       io.Writer
	capable bool

	// minGap drops pulses that arrive closer together than this.
	minGap time.Duration
	now    func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewBell returns a Bell writing to f. The bell is only capable when f is
// a terminal.
func NewBell(f *os.File, minGap time.Duration) *Bell {
	capable := f != nil && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	return newBell(f, capable, minGap)
}

func newBell(w io.Writer, capable bool, minGap time.Duration) *Bell {
	return &Bell{w: w, capable: capable, minGap: minGap, now: time.Now}
}

// Capable reports whether the output can produce a pulse.
func (b *Bell) Capable() bool { return b.capable }

// Pulse implements Trigger.
func (b *Bell) Pulse() {
	if !b.capable || b.w == nil {
		return
	}

	b.mu.Lock()
	now := b.now()
	if !b.last.IsZero() && now.Sub(b.last) < b.minGap {
		b.mu.Unlock()
		return
	}
	b.last = now
	b.mu.Unlock()

	_, _ = io.WriteString(b.w, "\a")
}

// Gated forwards pulses only while enabled reports true.
type Gated struct {
	Trigger Trigger
	Enabled func() bool
}

// Pulse implements Trigger.
func (g Gated) Pulse() {
	if g.Trigger == nil || g.Enabled == nil || !g.Enabled() {
		return
	}
	g.Trigger.Pulse()
}

// Package app is the Bubbletea host for the calculator. It owns one
// calc.Machine, turns key presses and mouse clicks on the on-screen keypad
// into machine operations, and renders the machine's display.
package app

import "time"

// timerFiredMsg is delivered when a scheduled machine callback is due.
type timerFiredMsg struct {
	id int
}

// statusExpiredMsg clears the transient status line if it is still the
// one identified by seq.
type statusExpiredMsg struct {
	seq int
}

// statusTTL is how long a toggle confirmation stays visible.
const statusTTL = 1500 * time.Millisecond

package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/calcpad/pkg/calc"
)

// timerQueue implements calc.Scheduler on top of the Bubbletea loop.
// Schedule only records the request; Update drains it into tea.Tick
// commands and runs the callback when the matching timerFiredMsg arrives,
// so callbacks always execute on the event loop.
type timerQueue struct {
	nextID  int
	live    map[int]*queuedTimer
	pending []*queuedTimer
}

type queuedTimer struct {
	q    *timerQueue
	id   int
	d    time.Duration
	fn   func()
	done bool
}

func newTimerQueue() *timerQueue {
	return &timerQueue{live: make(map[int]*queuedTimer)}
}

// Schedule implements calc.Scheduler.
func (q *timerQueue) Schedule(d time.Duration, fn func()) calc.Timer {
	q.nextID++
	t := &queuedTimer{q: q, id: q.nextID, d: d, fn: fn}
	q.live[t.id] = t
	q.pending = append(q.pending, t)
	return t
}

// Stop implements calc.Timer.
func (t *queuedTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	delete(t.q.live, t.id)
	return true
}

// drain converts newly scheduled timers into tick commands. Timers stopped
// before the drain produce no command.
func (q *timerQueue) drain() []tea.Cmd {
	if len(q.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(q.pending))
	for _, t := range q.pending {
		if t.done {
			continue
		}
		id := t.id
		cmds = append(cmds, tea.Tick(t.d, func(time.Time) tea.Msg {
			return timerFiredMsg{id: id}
		}))
	}
	q.pending = q.pending[:0]
	return cmds
}

// fire runs the callback for id unless it was stopped.
func (q *timerQueue) fire(id int) bool {
	t, ok := q.live[id]
	if !ok {
		return false
	}
	t.done = true
	delete(q.live, id)
	t.fn()
	return true
}

// armed returns the ids of timers that have not fired or been stopped.
func (q *timerQueue) armed() []int {
	ids := make([]int, 0, len(q.live))
	for id := range q.live {
		ids = append(ids, id)
	}
	return ids
}

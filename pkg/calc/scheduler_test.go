package calc

import (
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestClockSchedulerDispatches(t *testing.T) {
	queue := make(chan func(), 1)
	s := ClockScheduler{Dispatch: func(fn func()) { queue <- fn }}

	ran := false
	s.Schedule(5*time.Millisecond, func() { ran = true })

	select {
	case fn := <-queue:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timer never dispatched")
	}
	if !ran {
		t.Error("dispatched callback did not run")
	}
}

func TestClockSchedulerStop(t *testing.T) {
	fired := make(chan struct{}, 1)
	s := ClockScheduler{}

	timer := s.Schedule(time.Hour, func() { fired <- struct{}{} })
	if !timer.Stop() {
		t.Fatal("Stop() = false on a pending timer")
	}
	if timer.Stop() {
		t.Error("second Stop() = true, want false")
	}

	select {
	case <-fired:
		t.Error("stopped timer fired")
	default:
	}
}

func TestMachineWithClockScheduler(t *testing.T) {
	queue := make(chan func(), 1)
	m := New(WithScheduler(ClockScheduler{Dispatch: func(fn func()) { queue <- fn }}))
	press(m, "1/0=")

	if !m.AutoClearPending() {
		t.Fatal("expected auto-clear to be armed")
	}
	m.Clear()

	select {
	case fn := <-queue:
		t.Errorf("cancelled auto-clear was dispatched")
		fn()
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDefaultSchedulerAutoClearsConcurrently(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the real auto-clear delay")
	}
	m := New()
	press(m, "1/0=")
	if got := m.Display(); got != MsgDivisionByZero {
		t.Fatalf("Display() = %q, want %q", got, MsgDivisionByZero)
	}

	deadline := time.Now().Add(AutoClearDelay + time.Second)
	for m.Display() != "0" {
		if time.Now().After(deadline) {
			t.Fatalf("auto-clear never ran, Display() = %q", m.Display())
		}
		_ = m.Snapshot()
		time.Sleep(time.Millisecond)
	}
	if m.AutoClearPending() {
		t.Error("auto-clear still pending after it ran")
	}
	if got := m.Snapshot(); got != InitialSnapshot() {
		t.Errorf("snapshot after auto-clear = %+v, want initial", got)
	}
}

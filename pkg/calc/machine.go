package calc

import (
	"errors"
	"strings"
	"sync"
)

// OutcomeKind classifies the result of Calculate.
type OutcomeKind int

const (
	// OutcomeNone means Calculate had nothing to do.
	OutcomeNone OutcomeKind = iota
	OutcomeOK
	OutcomeOverflow
	OutcomeDivisionByZero
	OutcomeInputError
)

var outcomeNames = [...]string{
	OutcomeNone:           "none",
	OutcomeOK:             "ok",
	OutcomeOverflow:       "overflow",
	OutcomeDivisionByZero: "division_by_zero",
	OutcomeInputError:     "input_error",
}

func (k OutcomeKind) String() string {
	if k >= 0 && int(k) < len(outcomeNames) {
		return outcomeNames[k]
	}
	return "unknown"
}

// Outcome is what Calculate did and the text it left on the display.
type Outcome struct {
	Kind OutcomeKind
	Text string
}

// Failed reports whether the evaluation did not produce a number.
func (o Outcome) Failed() bool {
	return o.Kind == OutcomeDivisionByZero || o.Kind == OutcomeInputError
}

// Option configures a Machine.
type Option func(*Machine)

// WithSink sets the display sink.
func WithSink(s Sink) Option {
	return func(m *Machine) {
		if s != nil {
			m.sink = s
		}
	}
}

// WithScheduler sets the scheduler used for the division-by-zero auto-clear.
func WithScheduler(s Scheduler) Option {
	return func(m *Machine) {
		if s != nil {
			m.sched = s
		}
	}
}

// WithMaxInputLength caps the number of digits accepted in one operand.
// Zero or a negative value leaves entry unbounded.
func WithMaxInputLength(n int) Option {
	return func(m *Machine) {
		if n > 0 {
			m.maxDigits = n
		}
	}
}

// Machine is the calculator state machine. It is safe for concurrent use,
// so an auto-clear callback may arrive on a timer goroutine. The Sink is
// called with the machine locked and must not call back into it.
type Machine struct {
	mu sync.Mutex

	buffer  string
	op      Operator
	stored  float64
	fresh   bool
	display string

	sink      Sink
	sched     Scheduler
	maxDigits int

	// timer is the pending auto-clear; gen invalidates callbacks that
	// were already queued when the timer was cancelled.
	timer Timer
	gen   uint64
}

// New returns a Machine in its initial state.
func New(opts ...Option) *Machine {
	m := &Machine{
		sink:  discardSink{},
		sched: ClockScheduler{},
	}
	for _, o := range opts {
		o(m)
	}
	m.reset()
	m.display = m.buffer
	return m
}

// Buffer returns the operand text being entered or the last result.
func (m *Machine) Buffer() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buffer
}

// Display returns the text most recently sent to the sink.
func (m *Machine) Display() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.display
}

// Operator returns the pending operator.
func (m *Machine) Operator() Operator {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.op
}

// StoredOperand returns the left-hand operand of the pending operation.
func (m *Machine) StoredOperand() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stored
}

// AwaitingNewInput reports whether the next digit starts a new operand.
func (m *Machine) AwaitingNewInput() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fresh
}

// AutoClearPending reports whether a division-by-zero auto-clear is armed.
func (m *Machine) AutoClearPending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timer != nil
}

// AppendDigit enters one digit. Runes outside '0'-'9' are ignored.
func (m *Machine) AppendDigit(d rune) {
	if d < '0' || d > '9' {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelAutoClear()

	switch {
	case m.fresh:
		m.buffer = string(d)
		m.fresh = false
	case m.buffer == "0":
		m.buffer = string(d)
	case m.maxDigits > 0 && digitCount(m.buffer) >= m.maxDigits:
		// at capacity
	default:
		m.buffer += string(d)
	}
	m.render(m.buffer)
}

// AppendDecimalPoint enters a decimal point. A second point in the same
// operand is ignored.
func (m *Machine) AppendDecimalPoint() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelAutoClear()

	switch {
	case m.fresh:
		m.buffer = "0."
		m.fresh = false
	case strings.Contains(m.buffer, "."):
	default:
		m.buffer += "."
	}
	m.render(m.buffer)
}

// SetOperator makes op the pending operator. If an operator is already
// pending and a new operand has been entered, that operation is evaluated
// first so that chained input runs left to right. When the chained
// evaluation fails, op is discarded and the error stays on the display.
func (m *Machine) SetOperator(op Operator) {
	if op == OpNone {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelAutoClear()

	if m.op != OpNone && !m.fresh {
		if out := m.calculate(); out.Failed() {
			return
		}
	}

	v, err := parseBuffer(m.buffer)
	if err != nil {
		m.failInput()
		return
	}
	m.stored = v
	m.op = op
	m.fresh = true
	m.render(m.buffer)
}

// Calculate applies the pending operator to the stored operand and the
// buffer. It does nothing when no operator is pending or when no operand
// has been entered since the operator was set.
func (m *Machine) Calculate() Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calculate()
}

func (m *Machine) calculate() Outcome {
	if m.op == OpNone || m.fresh {
		return Outcome{Kind: OutcomeNone, Text: m.display}
	}
	m.cancelAutoClear()

	current, err := parseBuffer(m.buffer)
	if err != nil {
		return m.failInput()
	}

	result, err := Apply(m.op, m.stored, current)
	kind := OutcomeOK
	switch {
	case errors.Is(err, ErrDivisionByZero):
		m.render(MsgDivisionByZero)
		m.scheduleAutoClear()
		return Outcome{Kind: OutcomeDivisionByZero, Text: MsgDivisionByZero}
	case errors.Is(err, ErrOverflow):
		kind = OutcomeOverflow
	case err != nil:
		return m.failInput()
	}

	text := Format(result)
	m.buffer = text
	m.stored = result
	m.op = OpNone
	m.fresh = true
	m.render(text)
	return Outcome{Kind: kind, Text: text}
}

// Clear resets the machine to its initial state.
func (m *Machine) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clear()
}

func (m *Machine) clear() {
	m.cancelAutoClear()
	m.reset()
	m.render(m.buffer)
}

func (m *Machine) reset() {
	m.buffer = "0"
	m.op = OpNone
	m.stored = 0
	m.fresh = true
}

// failInput handles an unparsable buffer: full reset, then the message.
func (m *Machine) failInput() Outcome {
	m.cancelAutoClear()
	m.reset()
	m.render(MsgInputError)
	return Outcome{Kind: OutcomeInputError, Text: MsgInputError}
}

func (m *Machine) scheduleAutoClear() {
	m.gen++
	gen := m.gen
	m.timer = m.sched.Schedule(AutoClearDelay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.gen != gen {
			return
		}
		m.timer = nil
		m.clear()
	})
}

func (m *Machine) cancelAutoClear() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
}

func (m *Machine) render(text string) {
	m.display = text
	m.sink.Render(text)
}

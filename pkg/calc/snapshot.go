package calc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidSnapshot is returned by Restore when a snapshot cannot be
// applied. The machine is left in its initial state.
var ErrInvalidSnapshot = errors.New("calc: invalid snapshot")

// Snapshot is the complete calculator state, sufficient to resume after
// the host is suspended. StoredOperator is nil when no operator is pending.
type Snapshot struct {
	CurrentInput   string
	StoredOperator *string
	StoredValue    float64
	IsNewInput     bool
}

// InitialSnapshot returns the snapshot of a newly constructed Machine.
func InitialSnapshot() Snapshot {
	return Snapshot{CurrentInput: "0", IsNewInput: true}
}

// Snapshot captures the machine state. A pending auto-clear is not part
// of the snapshot.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		CurrentInput: m.buffer,
		StoredValue:  m.stored,
		IsNewInput:   m.fresh,
	}
	if m.op != OpNone {
		sym := m.op.String()
		s.StoredOperator = &sym
	}
	return s
}

// Restore replaces the machine state with s and renders the buffer. On
// error the machine is reset to its initial state. A restored message
// buffer always awaits new input.
func (m *Machine) Restore(s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.restore(s)
}

func (m *Machine) restore(s Snapshot) error {
	m.cancelAutoClear()

	op := OpNone
	if s.StoredOperator != nil && *s.StoredOperator != "" {
		parsed, err := ParseOperator(*s.StoredOperator)
		if err != nil {
			m.clear()
			return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		op = parsed
	}

	buf := s.CurrentInput
	if buf == "" {
		buf = "0"
	}
	if _, err := parseBuffer(buf); err != nil && buf != MsgOverflow {
		m.clear()
		return fmt.Errorf("%w: buffer %q", ErrInvalidSnapshot, s.CurrentInput)
	}

	m.buffer = buf
	m.op = op
	m.stored = s.StoredValue
	m.fresh = s.IsNewInput || !IsNumeral(buf)
	m.render(m.buffer)
	return nil
}

// snapshotJSON is the wire form. Pointer fields distinguish absent keys.
type snapshotJSON struct {
	CurrentInput   *string    `json:"currentInput"`
	StoredOperator *string    `json:"storedOperator"`
	StoredValue    *jsonFloat `json:"storedValue"`
	IsNewInput     *bool      `json:"isNewInput"`
}

// MarshalJSON encodes every field. Non-finite stored values, which follow
// an overflow, are written as strings.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	v := jsonFloat(s.StoredValue)
	return json.Marshal(snapshotJSON{
		CurrentInput:   &s.CurrentInput,
		StoredOperator: s.StoredOperator,
		StoredValue:    &v,
		IsNewInput:     &s.IsNewInput,
	})
}

// UnmarshalJSON decodes a snapshot, using initial-state values for any
// field that is absent.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var w snapshotJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = InitialSnapshot()
	if w.CurrentInput != nil {
		s.CurrentInput = *w.CurrentInput
	}
	s.StoredOperator = w.StoredOperator
	if w.StoredValue != nil {
		s.StoredValue = float64(*w.StoredValue)
	}
	if w.IsNewInput != nil {
		s.IsNewInput = *w.IsNewInput
	}
	return nil
}

type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte(strconv.Quote(strconv.FormatFloat(v, 'g', -1, 64))), nil
	}
	return json.Marshal(v)
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("calc: stored value %q: %w", s, err)
		}
		*f = jsonFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

package calc

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		keys string
	}{
		{"initial", ""},
		{"mid entry", "12.5"},
		{"pending operator", "12.5*"},
		{"second operand", "12.5*3"},
		{"after result", "12.5*3="},
		{"negative result", "2-5="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, _, _ := newTestMachine(t)
			press(src, tt.keys)
			snap := src.Snapshot()

			dst, _, sink := newTestMachine(t)
			require.NoError(t, dst.Restore(snap))
			assert.Equal(t, snap, dst.Snapshot())
			assert.Equal(t, src.Buffer(), sink.last())
		})
	}
}

func TestRestoredMachineContinues(t *testing.T) {
	src, _, _ := newTestMachine(t)
	press(src, "4+5")

	dst, _, _ := newTestMachine(t)
	require.NoError(t, dst.Restore(src.Snapshot()))
	press(dst, "+1=")
	assert.Equal(t, "10", dst.Buffer())
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	m, _, _ := newTestMachine(t)
	press(m, "7-2")
	snap := m.Snapshot()

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currentInput":"2","storedOperator":"-","storedValue":7,"isNewInput":false}`, string(data))

	var back Snapshot
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, snap, back)
}

func TestSnapshotJSONMissingFieldsUseDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Snapshot
	}{
		{"empty object", `{}`, InitialSnapshot()},
		{"only input", `{"currentInput":"42"}`, Snapshot{CurrentInput: "42", IsNewInput: true}},
		{"null operator", `{"storedOperator":null,"isNewInput":false}`, Snapshot{CurrentInput: "0"}},
		{"only value", `{"storedValue":2.5}`, Snapshot{CurrentInput: "0", StoredValue: 2.5, IsNewInput: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Snapshot
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapshotJSONNonFiniteStoredValue(t *testing.T) {
	m, _, _ := newTestMachine(t)
	press(m, "1")
	require.NoError(t, m.Restore(Snapshot{CurrentInput: MsgOverflow, StoredValue: math.Inf(1), IsNewInput: true}))

	data, err := json.Marshal(m.Snapshot())
	require.NoError(t, err)

	var back Snapshot
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, math.IsInf(back.StoredValue, 1))
	assert.Equal(t, MsgOverflow, back.CurrentInput)
}

func TestRestoreRejectsInvalidSnapshots(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"garbage buffer", Snapshot{CurrentInput: "12abc"}},
		{"unknown operator", Snapshot{CurrentInput: "1", StoredOperator: strPtr("%")}},
		{"exponent buffer", Snapshot{CurrentInput: "1e9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, sink := newTestMachine(t)
			press(m, "99+")

			err := m.Restore(tt.snap)
			require.True(t, errors.Is(err, ErrInvalidSnapshot), "got %v", err)
			assert.Equal(t, InitialSnapshot(), m.Snapshot())
			assert.Equal(t, "0", sink.last())
		})
	}
}

func TestRestoreAcceptsGlyphOperator(t *testing.T) {
	m, _, _ := newTestMachine(t)
	require.NoError(t, m.Restore(Snapshot{CurrentInput: "3", StoredOperator: strPtr("×"), StoredValue: 4}))
	assert.Equal(t, OpMultiply, m.Operator())

	m.Calculate()
	assert.Equal(t, "12", m.Buffer())
}

func TestRestoreCancelsAutoClear(t *testing.T) {
	m, sched, _ := newTestMachine(t)
	press(m, "1/0=")
	require.True(t, m.AutoClearPending())

	snap := Snapshot{CurrentInput: "8", IsNewInput: false}
	require.NoError(t, m.Restore(snap))
	sched.Advance(AutoClearDelay)
	assert.Equal(t, snap, m.Snapshot())
}

func TestRestoreMessageBufferAwaitsNewInput(t *testing.T) {
	m, _, sink := newTestMachine(t)
	require.NoError(t, m.Restore(Snapshot{CurrentInput: MsgOverflow, IsNewInput: false}))
	assert.Equal(t, MsgOverflow, sink.last())
	assert.True(t, m.AwaitingNewInput())

	press(m, "5")
	assert.Equal(t, "5", m.Buffer())

	require.NoError(t, m.Restore(Snapshot{CurrentInput: MsgOverflow, IsNewInput: false}))
	press(m, ".")
	assert.Equal(t, "0.", m.Buffer())
}

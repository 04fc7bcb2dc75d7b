// Package calc implements the calculator's input and evaluation state
// machine: digit entry into a display buffer, a single pending binary
// operator with its stored left operand, and result formatting.
//
// The package has no terminal or storage dependencies. A host drives a
// Machine from one event loop and receives display updates through a Sink.
package calc

import (
	"errors"
	"fmt"
	"math"
)

// Operator is a pending binary operation.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// divisionEpsilon is the divisor magnitude below which division fails.
const divisionEpsilon = 1e-10

var (
	// ErrDivisionByZero is returned by Apply when the divisor magnitude is
	// below 1e-10.
	ErrDivisionByZero = errors.New("calc: division by zero")

	// ErrOverflow is returned by Apply when the result is infinite or NaN.
	// The result value is still returned alongside it.
	ErrOverflow = errors.New("calc: numeric overflow")

	// ErrInvalidInput reports a buffer or operator that cannot be evaluated.
	ErrInvalidInput = errors.New("calc: invalid input")
)

var operatorSymbols = [...]string{
	OpNone:     "",
	OpAdd:      "+",
	OpSubtract: "-",
	OpMultiply: "*",
	OpDivide:   "/",
}

// String returns the ASCII symbol of the operator, or "" for OpNone.
func (o Operator) String() string {
	if o >= 0 && int(o) < len(operatorSymbols) {
		return operatorSymbols[o]
	}
	return ""
}

// Glyph returns the symbol shown on the keypad.
func (o Operator) Glyph() string {
	switch o {
	case OpSubtract:
		return "−"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return o.String()
	}
}

// ParseOperator maps an ASCII symbol or keypad glyph to an Operator.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-", "−":
		return OpSubtract, nil
	case "*", "×", "x":
		return OpMultiply, nil
	case "/", "÷":
		return OpDivide, nil
	}
	return OpNone, fmt.Errorf("%w: unknown operator %q", ErrInvalidInput, s)
}

// Apply evaluates a op b with float64 arithmetic.
func Apply(op Operator, a, b float64) (float64, error) {
	var r float64
	switch op {
	case OpAdd:
		r = a + b
	case OpSubtract:
		r = a - b
	case OpMultiply:
		r = a * b
	case OpDivide:
		if math.Abs(b) < divisionEpsilon {
			return 0, ErrDivisionByZero
		}
		r = a / b
	default:
		return 0, fmt.Errorf("%w: no operator pending", ErrInvalidInput)
	}
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return r, ErrOverflow
	}
	return r, nil
}

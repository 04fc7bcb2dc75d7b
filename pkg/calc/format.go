package calc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Messages rendered in place of a number.
const (
	MsgDivisionByZero = "division by zero"
	MsgOverflow       = "overflow"
	MsgInputError     = "input error"
)

// numeralPattern matches the buffer contents the machine can evaluate.
// Results may be negative; typed input never is.
var numeralPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]*)?$`)

// Format renders a computed result for display.
//
// Values within 1e-10 of an integer are printed through an int64
// conversion, which saturates for magnitudes beyond the int64 range and
// loses digits above 2^53. Other values use 8 fractional digits with
// trailing zeros and a trailing point removed.
func Format(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return MsgOverflow
	}
	if math.Abs(math.Mod(v, 1)) < divisionEpsilon {
		return strconv.FormatInt(saturatingInt64(v), 10)
	}
	s := strconv.FormatFloat(v, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return "0"
	}
	return s
}

// saturatingInt64 converts v to int64, clamping at the type bounds instead
// of relying on the platform's out-of-range conversion result.
func saturatingInt64(v float64) int64 {
	switch {
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}

// IsNumeral reports whether s is a number rather than a message.
func IsNumeral(s string) bool {
	return numeralPattern.MatchString(s)
}

// parseBuffer converts buffer text to a float. Message strings and
// anything outside numeralPattern fail with ErrInvalidInput.
func parseBuffer(s string) (float64, error) {
	if !numeralPattern.MatchString(s) {
		return 0, ErrInvalidInput
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidInput
	}
	return v, nil
}

// digitCount returns the number of decimal digits in s.
func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

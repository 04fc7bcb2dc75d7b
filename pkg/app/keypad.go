package app

import (
	"gitlab.com/tinyland/lab/calcpad/pkg/calc"
	"gitlab.com/tinyland/lab/calcpad/pkg/theme"
)

// Action is what a keypad button does.
type Action int

const (
	ActDigit Action = iota
	ActDecimal
	ActOperator
	ActEquals
	ActClear
	ActThemeLight
	ActThemeDark
	ActVibration
)

// Button is one on-screen key.
type Button struct {
	ID     string
	Label  string
	Kind   theme.KeyKind
	Action Action
	Digit  rune
	Op     calc.Operator
}

func digitButton(d rune) Button {
	return Button{ID: "digit-" + string(d), Label: string(d), Kind: theme.KeyDigit, Action: ActDigit, Digit: d}
}

func operatorButton(op calc.Operator) Button {
	return Button{ID: "op-" + op.String(), Label: op.Glyph(), Kind: theme.KeyOperator, Action: ActOperator, Op: op}
}

// defaultKeypad is the button grid, top row first.
func defaultKeypad() [][]Button {
	return [][]Button{
		{
			{ID: "theme-light", Label: "Light", Kind: theme.KeyToggle, Action: ActThemeLight},
			{ID: "theme-dark", Label: "Dark", Kind: theme.KeyToggle, Action: ActThemeDark},
			{ID: "vibration", Label: "Vib", Kind: theme.KeyToggle, Action: ActVibration},
			{ID: "clear", Label: "C", Kind: theme.KeyAction, Action: ActClear},
		},
		{digitButton('7'), digitButton('8'), digitButton('9'), operatorButton(calc.OpDivide)},
		{digitButton('4'), digitButton('5'), digitButton('6'), operatorButton(calc.OpMultiply)},
		{digitButton('1'), digitButton('2'), digitButton('3'), operatorButton(calc.OpSubtract)},
		{
			digitButton('0'),
			{ID: "decimal", Label: ".", Kind: theme.KeyDigit, Action: ActDecimal},
			{ID: "equals", Label: "=", Kind: theme.KeyAction, Action: ActEquals},
			operatorButton(calc.OpAdd),
		},
	}
}

// buttonIndex maps button ids to buttons.
func buttonIndex(pad [][]Button) map[string]Button {
	idx := make(map[string]Button)
	for _, row := range pad {
		for _, b := range row {
			idx[b.ID] = b
		}
	}
	return idx
}

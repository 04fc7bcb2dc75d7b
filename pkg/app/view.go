package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/calcpad/pkg/calc"
)

const (
	keyWidth     = 7
	keyOuter     = keyWidth + 2 // rounded border
	keypadCols   = 4
	displayWidth = keypadCols * keyOuter
	displayText  = displayWidth - 2 // padding
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.viewPending(),
		m.viewDisplay(),
		m.viewKeypad(),
		m.styles.Status.Render(m.status),
		m.help.View(m.keys),
	}
	return m.zones.Scan(m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...)))
}

// viewDisplay renders the display right-aligned. Text wider than the panel
// keeps its least significant digits.
func (m Model) viewDisplay() string {
	text := m.machine.Display()
	style := m.styles.Display
	if !calc.IsNumeral(text) {
		style = m.styles.DisplayError
	}
	if w := ansi.StringWidth(text); w > displayText {
		text = ansi.TruncateLeft(text, w-displayText+1, "…")
	}
	return style.Width(displayWidth).Render(text)
}

func (m Model) viewPending() string {
	line := ""
	if op := m.machine.Operator(); op != calc.OpNone {
		line = calc.Format(m.machine.StoredOperand()) + " " + op.Glyph()
	}
	return m.styles.Pending.Width(displayWidth).Align(lipgloss.Right).Render(line)
}

func (m Model) viewKeypad() string {
	rows := make([]string, 0, len(m.keypad))
	for _, row := range m.keypad {
		cells := make([]string, 0, len(row))
		for _, b := range row {
			cells = append(cells, m.zones.Mark(b.ID, m.viewButton(b)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewButton(b Button) string {
	label := b.Label
	switch b.Action {
	case ActVibration:
		if m.prefs.Current().VibrationEnabled {
			label += "●"
		} else {
			label += "○"
		}
	case ActThemeLight, ActThemeDark:
		if ("theme-"+string(m.themeMode)) == b.ID {
			label = "[" + label + "]"
		}
	}
	return m.styles.Key(b.Kind).Width(keyWidth).Render(label)
}

package theme

import "github.com/charmbracelet/lipgloss"

// KeyKind groups keypad buttons by color.
type KeyKind int

const (
	KeyDigit KeyKind = iota
	KeyOperator
	KeyAction
	KeyToggle
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	App          lipgloss.Style
	Display      lipgloss.Style
	DisplayError lipgloss.Style
	Pending      lipgloss.Style
	Status       lipgloss.Style
	HelpKey      lipgloss.Style
	HelpDesc     lipgloss.Style

	keys map[KeyKind]lipgloss.Style
}

// NewStyles builds the style set for t.
func NewStyles(t Theme) Styles {
	key := func(bg string) lipgloss.Style {
		return lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color(t.KeyText)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.KeyBorder)).
			Bold(true).
			Align(lipgloss.Center)
	}

	display := lipgloss.NewStyle().
		Background(lipgloss.Color(t.DisplayBG)).
		Foreground(lipgloss.Color(t.DisplayFG)).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Right)

	return Styles{
		App:          lipgloss.NewStyle().Foreground(lipgloss.Color(t.Foreground)).Padding(1, 2),
		Display:      display,
		DisplayError: display.Foreground(lipgloss.Color(t.DisplayError)),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim)).Italic(true),
		HelpKey:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.HelpKey)),
		HelpDesc:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.HelpDesc)),
		keys: map[KeyKind]lipgloss.Style{
			KeyDigit:    key(t.DigitKey),
			KeyOperator: key(t.OperatorKey),
			KeyAction:   key(t.ActionKey),
			KeyToggle:   key(t.ToggleKey),
		},
	}
}

// Key returns the button style for kind.
func (s Styles) Key(kind KeyKind) lipgloss.Style {
	if st, ok := s.keys[kind]; ok {
		return st
	}
	return s.keys[KeyDigit]
}

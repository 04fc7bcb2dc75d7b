package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"

	"gitlab.com/tinyland/lab/calcpad/pkg/calc"
	"gitlab.com/tinyland/lab/calcpad/pkg/haptic"
	"gitlab.com/tinyland/lab/calcpad/pkg/prefs"
	"gitlab.com/tinyland/lab/calcpad/pkg/theme"
)

// Options configures a Model.
type Options struct {
	// Prefs holds theme and vibration preferences. Defaults to an
	// in-memory store.
	Prefs prefs.Store

	// Feedback is pulsed on every press while vibration is enabled.
	Feedback haptic.Trigger

	// DarkBackground resolves the system theme mode.
	DarkBackground bool

	// ThemeOverride, when set, replaces the stored theme mode for this run
	// only. Theme buttons still persist their choice.
	ThemeOverride prefs.ThemeMode

	// MaxInputLength caps digits per operand; 0 is unbounded.
	MaxInputLength int

	// Restore is applied to the machine at startup when non-nil.
	Restore *calc.Snapshot

	// SaveSession receives the final snapshot when the user quits.
	SaveSession func(calc.Snapshot) error

	Logger *zap.Logger
}

// Model is the root Bubbletea model.
type Model struct {
	machine *calc.Machine
	timers  *timerQueue
	prefs   prefs.Store
	pulse   haptic.Trigger
	save    func(calc.Snapshot) error
	log     *zap.Logger

	keypad  [][]Button
	buttons map[string]Button
	zones   *zone.Manager
	keys    keyMap
	help    help.Model

	themeMode prefs.ThemeMode
	darkBG    bool
	theme     theme.Theme
	styles    theme.Styles

	status    string
	statusSeq int

	width    int
	height   int
	quitting bool
}

// New builds a Model. It never fails; an invalid Restore snapshot is
// logged and the machine starts fresh.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	store := opts.Prefs
	if store == nil {
		store = prefs.NewMemoryStore(prefs.Defaults())
	}
	feedback := opts.Feedback
	if feedback == nil {
		feedback = haptic.Nop{}
	}

	timers := newTimerQueue()
	machine := calc.New(
		calc.WithScheduler(timers),
		calc.WithMaxInputLength(opts.MaxInputLength),
		calc.WithSink(calc.SinkFunc(func(text string) {
			log.Debug("display", zap.String("text", text))
		})),
	)
	if opts.Restore != nil {
		if err := machine.Restore(*opts.Restore); err != nil {
			log.Warn("discarding saved session", zap.Error(err))
		} else {
			log.Info("session restored", zap.String("input", opts.Restore.CurrentInput))
		}
	}

	mode := store.Current().ThemeMode
	if opts.ThemeOverride != "" {
		mode = prefs.ParseThemeMode(string(opts.ThemeOverride))
	}

	pad := defaultKeypad()
	m := Model{
		machine: machine,
		timers:  timers,
		prefs:   store,
		pulse: haptic.Gated{
			Trigger: feedback,
			Enabled: func() bool { return store.Current().VibrationEnabled },
		},
		save:      opts.SaveSession,
		log:       log,
		keypad:    pad,
		buttons:   buttonIndex(pad),
		zones:     zone.New(),
		keys:      defaultKeyMap(),
		help:      help.New(),
		themeMode: mode,
		darkBG:    opts.DarkBackground,
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("calcpad")
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			break
		}
		for id, b := range m.buttons {
			if m.zones.Get(id).InBounds(msg) {
				var cmd tea.Cmd
				m, cmd = m.press(b)
				cmds = append(cmds, cmd)
				break
			}
		}

	case timerFiredMsg:
		if m.timers.fire(msg.id) {
			m.log.Debug("timer fired", zap.Int("id", msg.id))
		}

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
	}

	cmds = append(cmds, m.timers.drain()...)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Digits):
		return m.press(m.buttons["digit-"+msg.String()])
	}

	bindings := []struct {
		binding key.Binding
		id      string
	}{
		{m.keys.Decimal, "decimal"},
		{m.keys.Add, "op-" + calc.OpAdd.String()},
		{m.keys.Subtract, "op-" + calc.OpSubtract.String()},
		{m.keys.Multiply, "op-" + calc.OpMultiply.String()},
		{m.keys.Divide, "op-" + calc.OpDivide.String()},
		{m.keys.Equals, "equals"},
		{m.keys.Clear, "clear"},
		{m.keys.Light, "theme-light"},
		{m.keys.Dark, "theme-dark"},
		{m.keys.Vibration, "vibration"},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return m.press(m.buttons[b.id])
		}
	}
	return m, nil
}

// press runs one button. The feedback pulse comes first, as on a device.
func (m Model) press(b Button) (Model, tea.Cmd) {
	m.pulse.Pulse()
	m.log.Debug("press", zap.String("button", b.ID))

	switch b.Action {
	case ActDigit:
		m.machine.AppendDigit(b.Digit)
	case ActDecimal:
		m.machine.AppendDecimalPoint()
	case ActOperator:
		m.machine.SetOperator(b.Op)
	case ActEquals:
		out := m.machine.Calculate()
		m.logOutcome(out)
	case ActClear:
		m.machine.Clear()
	case ActThemeLight:
		return m.setThemeMode(prefs.ThemeLight)
	case ActThemeDark:
		return m.setThemeMode(prefs.ThemeDark)
	case ActVibration:
		return m.toggleVibration()
	}
	return m, nil
}

func (m Model) logOutcome(out calc.Outcome) {
	switch out.Kind {
	case calc.OutcomeOK:
		m.log.Debug("calculated", zap.String("result", out.Text))
	case calc.OutcomeNone:
	default:
		m.log.Info("calculation failed", zap.Stringer("outcome", out.Kind))
	}
}

func (m Model) setThemeMode(mode prefs.ThemeMode) (Model, tea.Cmd) {
	if err := m.prefs.SetThemeMode(mode); err != nil {
		m.log.Warn("saving theme preference", zap.Error(err))
	}
	m.themeMode = mode
	m.applyTheme()
	return m.setStatus(string(mode) + " theme")
}

func (m Model) toggleVibration() (Model, tea.Cmd) {
	enabled := !m.prefs.Current().VibrationEnabled
	if err := m.prefs.SetVibration(enabled); err != nil {
		m.log.Warn("saving vibration preference", zap.Error(err))
	}
	if enabled {
		return m.setStatus("vibration on")
	}
	return m.setStatus("vibration off")
}

func (m *Model) applyTheme() {
	m.theme = theme.Resolve(m.themeMode, m.darkBG)
	m.styles = theme.NewStyles(m.theme)
	m.help.Styles.ShortKey = m.styles.HelpKey
	m.help.Styles.FullKey = m.styles.HelpKey
	m.help.Styles.ShortDesc = m.styles.HelpDesc
	m.help.Styles.FullDesc = m.styles.HelpDesc
}

func (m Model) setStatus(text string) (Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	seq := m.statusSeq
	return m, tea.Tick(statusTTL, func(_ time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	if m.save != nil {
		if err := m.save(m.machine.Snapshot()); err != nil {
			m.log.Warn("saving session", zap.Error(err))
		}
	}
	return m, tea.Quit
}

// Close stops the mouse zone worker. Call it after the program exits.
func (m Model) Close() { m.zones.Close() }

package terminal

import (
	"os"
	"sync"
)

// Capabilities summarizes the detected terminal for the calculator host.
type Capabilities struct {
	Term      Terminal
	Mouse     bool // keypad clicks can be reported
	Bell      bool // BEL is a usable press feedback
	TrueColor bool
	SSH       bool
	Mux       bool // inside tmux or screen
}

var (
	cached     *Capabilities
	detectOnce sync.Once
)

// DetectCapabilities runs detection once and caches the result.
func DetectCapabilities() *Capabilities {
	detectOnce.Do(func() {
		cached = detect()
	})
	return cached
}

func detect() *Capabilities {
	term := Detect()

	trueColor := term.SupportsTrueColor()
	if !trueColor {
		ct := os.Getenv("COLORTERM")
		trueColor = ct == "truecolor" || ct == "24bit"
	}

	return &Capabilities{
		Term:      term,
		Mouse:     term.SupportsMouse(),
		Bell:      term.SupportsBell(),
		TrueColor: trueColor,
		SSH:       isSSH(),
		Mux:       os.Getenv("TMUX") != "" || os.Getenv("STY") != "",
	}
}

func isSSH() bool {
	return os.Getenv("SSH_TTY") != "" || os.Getenv("SSH_CONNECTION") != "" || os.Getenv("SSH_CLIENT") != ""
}

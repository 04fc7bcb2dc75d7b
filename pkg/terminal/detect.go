// Package terminal identifies the terminal emulator from the environment
// and summarizes what the calculator can rely on: mouse reporting, an
// audible bell and color depth. Detection inspects environment variables
// only and performs no I/O.
package terminal

import (
	"os"
	"strings"
)

// Terminal identifies the terminal emulator in use.
type Terminal int

const (
	TermUnknown   Terminal = iota
	TermGhostty            // Ghostty
	TermKitty              // Kitty
	TermWezTerm            // WezTerm
	TermITerm2             // iTerm2
	TermAlacritty          // Alacritty
	TermTilix              // Tilix (VTE)
	TermGNOME              // GNOME Terminal (VTE)
	TermTmux               // tmux multiplexer
	TermScreen             // GNU Screen multiplexer
	TermVSCode             // VS Code integrated terminal
	TermEmacs              // Emacs vterm/eat
	TermDumb               // TERM=dumb, no cursor addressing
	TermGeneric            // Unknown terminal with basic capabilities
)

var terminalNames = [...]string{
	TermUnknown:   "unknown",
	TermGhostty:   "ghostty",
	TermKitty:     "kitty",
	TermWezTerm:   "wezterm",
	TermITerm2:    "iterm2",
	TermAlacritty: "alacritty",
	TermTilix:     "tilix",
	TermGNOME:     "gnome-terminal",
	TermTmux:      "tmux",
	TermScreen:    "screen",
	TermVSCode:    "vscode",
	TermEmacs:     "emacs",
	TermDumb:      "dumb",
	TermGeneric:   "generic",
}

// String returns the human-readable name of the terminal.
func (t Terminal) String() string {
	if int(t) < len(terminalNames) {
		return terminalNames[t]
	}
	return "unknown"
}

// SupportsTrueColor reports whether the terminal supports 24-bit color.
func (t Terminal) SupportsTrueColor() bool {
	switch t {
	case TermGhostty, TermKitty, TermWezTerm, TermITerm2,
		TermAlacritty, TermTilix, TermGNOME, TermVSCode:
		return true
	default:
		return false
	}
}

// SupportsMouse reports whether clicks on the keypad can be reported.
// Emacs terminals forward mouse events to the editor instead.
func (t Terminal) SupportsMouse() bool {
	switch t {
	case TermEmacs, TermDumb, TermUnknown:
		return false
	default:
		return true
	}
}

// SupportsBell reports whether BEL produces feedback. VS Code and Emacs
// swallow it by default.
func (t Terminal) SupportsBell() bool {
	switch t {
	case TermVSCode, TermEmacs, TermDumb, TermUnknown:
		return false
	default:
		return true
	}
}

// Detect identifies the terminal emulator from environment variables.
// Signals are checked in order of reliability:
//
//  1. TERM=dumb
//  2. TERM_PROGRAM
//  3. TERM (xterm-ghostty, xterm-kitty, alacritty, screen)
//  4. emulator-specific vars (KITTY_WINDOW_ID, ITERM_SESSION_ID, ...)
//  5. VTE_VERSION for GNOME Terminal and Tilix
//  6. INSIDE_EMACS
//  7. TMUX / STY
func Detect() Terminal {
	term := os.Getenv("TERM")
	if term == "dumb" {
		return TermDumb
	}

	if tp := os.Getenv("TERM_PROGRAM"); tp != "" {
		switch strings.ToLower(tp) {
		case "ghostty":
			return TermGhostty
		case "kitty":
			return TermKitty
		case "wezterm":
			return TermWezTerm
		case "iterm.app":
			return TermITerm2
		case "vscode":
			return TermVSCode
		case "alacritty":
			return TermAlacritty
		case "tmux":
			return TermTmux
		}
	}

	switch {
	case term == "xterm-ghostty":
		return TermGhostty
	case term == "xterm-kitty":
		return TermKitty
	case strings.HasPrefix(term, "alacritty"):
		return TermAlacritty
	case strings.HasPrefix(term, "screen") && os.Getenv("STY") != "":
		return TermScreen
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return TermKitty
	}
	if os.Getenv("ITERM_SESSION_ID") != "" || os.Getenv("LC_TERMINAL") == "iTerm2" {
		return TermITerm2
	}
	if os.Getenv("WEZTERM_EXECUTABLE") != "" {
		return TermWezTerm
	}

	if os.Getenv("VTE_VERSION") != "" {
		if os.Getenv("TILIX_ID") != "" {
			return TermTilix
		}
		return TermGNOME
	}

	if os.Getenv("INSIDE_EMACS") != "" {
		return TermEmacs
	}

	// Multiplexers last so the inner terminal wins when it is known.
	if os.Getenv("TMUX") != "" {
		return TermTmux
	}
	if os.Getenv("STY") != "" {
		return TermScreen
	}

	if term == "" {
		return TermUnknown
	}
	return TermGeneric
}

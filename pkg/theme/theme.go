// Package theme defines the calculator's light and dark palettes and turns
// them into lipgloss styles.
package theme

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/calcpad/pkg/prefs"
)

// Theme is a complete color palette. All colors are "#RRGGBB".
type Theme struct {
	Name string

	// Base colors
	Background string
	Foreground string
	Dim        string
	Accent     string

	// Display panel
	DisplayBG    string
	DisplayFG    string
	DisplayError string

	// Keypad
	DigitKey    string
	OperatorKey string
	ActionKey   string
	ToggleKey   string
	KeyText     string
	KeyBorder   string

	// Help footer
	HelpKey  string
	HelpDesc string
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegister(thLightTheme())
	thRegister(thDarkTheme())
}

// Get returns a named theme, falling back to dark if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["dark"]
}

// Names returns all registered theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Override replaces a registered palette, for example with one loaded from
// a user TOML file.
func Override(t Theme) {
	thRegister(t)
}

// Resolve picks the palette for a preference mode. ThemeSystem follows
// darkBackground, which the caller obtains from the terminal.
func Resolve(mode prefs.ThemeMode, darkBackground bool) Theme {
	switch mode {
	case prefs.ThemeLight:
		return Get("light")
	case prefs.ThemeDark:
		return Get("dark")
	}
	if darkBackground {
		return Get("dark")
	}
	return Get("light")
}

// DetectDarkBackground asks the terminal on stdout for its background
// color. Terminals that do not answer are treated as dark.
func DetectDarkBackground() bool {
	return termenv.NewOutput(os.Stdout).HasDarkBackground()
}

// thRegister adds a theme to the registry under its lowercase name.
func thRegister(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}

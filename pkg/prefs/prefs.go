// Package prefs persists the user's presentation preferences: the theme
// mode and whether button presses produce feedback pulses. Preferences are
// read once at startup and written through on every toggle.
package prefs

import "strings"

// ThemeMode selects the light or dark palette, or defers to the terminal.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// ParseThemeMode maps a stored string to a ThemeMode. Unknown values fall
// back to ThemeSystem.
func ParseThemeMode(s string) ThemeMode {
	switch m := ThemeMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ThemeLight, ThemeDark, ThemeSystem:
		return m
	}
	return ThemeSystem
}

// Preferences is the persisted preference set.
type Preferences struct {
	ThemeMode        ThemeMode `toml:"theme_mode" yaml:"theme_mode"`
	VibrationEnabled bool      `toml:"vibration_enabled" yaml:"vibration_enabled"`
}

// Defaults returns the preferences used when nothing has been stored.
func Defaults() Preferences {
	return Preferences{
		ThemeMode:        ThemeSystem,
		VibrationEnabled: true,
	}
}

// normalize repairs values read from disk.
func (p Preferences) normalize() Preferences {
	p.ThemeMode = ParseThemeMode(string(p.ThemeMode))
	return p
}

// Store reads and writes preferences.
type Store interface {
	// Current returns the preferences as last loaded or written.
	Current() Preferences

	// SetThemeMode stores a new theme mode.
	SetThemeMode(mode ThemeMode) error

	// SetVibration stores the vibration flag.
	SetVibration(enabled bool) error
}

// MemoryStore keeps preferences in memory only.
type MemoryStore struct {
	prefs Preferences
}

// NewMemoryStore returns a MemoryStore seeded with p.
func NewMemoryStore(p Preferences) *MemoryStore {
	return &MemoryStore{prefs: p.normalize()}
}

// Current implements Store.
func (s *MemoryStore) Current() Preferences { return s.prefs }

// SetThemeMode implements Store.
func (s *MemoryStore) SetThemeMode(mode ThemeMode) error {
	s.prefs.ThemeMode = ParseThemeMode(string(mode))
	return nil
}

// SetVibration implements Store.
func (s *MemoryStore) SetVibration(enabled bool) error {
	s.prefs.VibrationEnabled = enabled
	return nil
}

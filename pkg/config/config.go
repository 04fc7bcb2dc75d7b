package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Config is the top-level calcpad configuration.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Input    InputConfig    `toml:"input"`
	Feedback FeedbackConfig `toml:"feedback"`
	Session  SessionConfig  `toml:"session"`
}

// GeneralConfig holds paths and logging settings.
type GeneralConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFile receives structured logs. The TUI owns stdout, so logs never
	// go to the terminal.
	LogFile string `toml:"log_file"`

	// StateDir holds the session snapshot store.
	StateDir string `toml:"state_dir"`

	// PrefsFile is the preference store location.
	PrefsFile string `toml:"prefs_file"`

	// Theme forces a theme mode for this run without persisting it.
	Theme string `toml:"theme"`
}

// InputConfig controls operand entry.
type InputConfig struct {
	// MaxLength caps digits per operand. 0 means unbounded.
	MaxLength int `toml:"max_length"`
}

// FeedbackConfig controls button feedback pulses.
type FeedbackConfig struct {
	// Pulse is the minimum spacing between two pulses.
	Pulse Duration `toml:"pulse"`
}

// SessionConfig controls suspend/resume of calculator state.
type SessionConfig struct {
	// Restore loads the last snapshot at startup.
	Restore bool `toml:"restore"`

	// TTL discards snapshots older than this. 0 keeps them forever.
	TTL Duration `toml:"ttl"`

	// Cleanup is how often expired snapshots are swept from disk while
	// the calculator runs. 0 disables the sweeper.
	Cleanup Duration `toml:"cleanup"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !validLogLevels[strings.ToLower(c.General.LogLevel)] {
		return fmt.Errorf("config: invalid log_level %q (want debug, info, warn or error)", c.General.LogLevel)
	}
	if c.Input.MaxLength < 0 {
		return fmt.Errorf("config: input.max_length must be >= 0, got %d", c.Input.MaxLength)
	}
	if c.General.StateDir == "" {
		return fmt.Errorf("config: general.state_dir is empty")
	}
	if c.General.PrefsFile == "" {
		return fmt.Errorf("config: general.prefs_file is empty")
	}
	return nil
}

// defaultPulse matches a short 50ms vibration.
const defaultPulse = 50 * time.Millisecond

func defaultPaths(home string) (logFile, stateDir, prefsFile string) {
	stateDir = filepath.Join(xdgStateHome(home), "calcpad")
	logFile = filepath.Join(stateDir, "calcpad.log")
	prefsFile = filepath.Join(xdgConfigHome(home), "calcpad", "preferences.toml")
	return logFile, stateDir, prefsFile
}

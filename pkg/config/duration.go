// Package config provides TOML-based configuration for calcpad.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Duration is a time.Duration written as a Go duration string in TOML.
// It backs feedback.pulse ("50ms"), session.ttl ("720h") and
// session.cleanup ("1h"). An empty value, "0" or "off" is zero, which
// session.ttl and session.cleanup read as disabled.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	switch strings.ToLower(s) {
	case "", "0", "off":
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("config: duration %q is negative", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler. Zero is written as "off".
func (d Duration) MarshalText() ([]byte, error) {
	if d.Duration == 0 {
		return []byte("off"), nil
	}
	return []byte(d.Duration.String()), nil
}

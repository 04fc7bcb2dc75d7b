package theme

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name    string        `toml:"name"`
	Base    thTOMLBase    `toml:"base"`
	Display thTOMLDisplay `toml:"display"`
	Keys    thTOMLKeys    `toml:"keys"`
	Help    thTOMLHelp    `toml:"help"`
}

type thTOMLBase struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
}

type thTOMLDisplay struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Error      string `toml:"error"`
}

type thTOMLKeys struct {
	Digit    string `toml:"digit"`
	Operator string `toml:"operator"`
	Action   string `toml:"action"`
	Toggle   string `toml:"toggle"`
	Text     string `toml:"text"`
	Border   string `toml:"border"`
}

type thTOMLHelp struct {
	Key  string `toml:"key"`
	Desc string `toml:"desc"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a TOML palette. Keys left out keep the value of the
// built-in palette with the same name, so a file may override one color.
func LoadFromTOML(data []byte) (Theme, error) {
	var probe struct {
		Name string `toml:"name"`
	}
	if err := toml.Unmarshal(data, &probe); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}
	if probe.Name == "" {
		return Theme{}, fmt.Errorf("theme: missing required field %q", "name")
	}

	tt := thToTOML(Get(probe.Name))
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}
	t := thFromTOML(tt)
	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// SaveToTOML serializes a theme to TOML bytes.
func SaveToTOML(t Theme) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(thToTOML(t)); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadOverrides reads light.toml and dark.toml from dir, when present, and
// registers them in place of the built-ins. It returns the names loaded.
func LoadOverrides(dir string) ([]string, error) {
	var loaded []string
	for _, name := range []string{"light", "dark"} {
		data, err := os.ReadFile(filepath.Join(dir, name+".toml"))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return loaded, fmt.Errorf("theme: read %s override: %w", name, err)
		}
		t, err := LoadFromTOML(data)
		if err != nil {
			return loaded, fmt.Errorf("theme: %s override: %w", name, err)
		}
		t.Name = name
		Override(t)
		loaded = append(loaded, name)
	}
	return loaded, nil
}

func thToTOML(t Theme) thTOMLTheme {
	return thTOMLTheme{
		Name: t.Name,
		Base: thTOMLBase{
			Background: t.Background,
			Foreground: t.Foreground,
			Dim:        t.Dim,
			Accent:     t.Accent,
		},
		Display: thTOMLDisplay{
			Background: t.DisplayBG,
			Foreground: t.DisplayFG,
			Error:      t.DisplayError,
		},
		Keys: thTOMLKeys{
			Digit:    t.DigitKey,
			Operator: t.OperatorKey,
			Action:   t.ActionKey,
			Toggle:   t.ToggleKey,
			Text:     t.KeyText,
			Border:   t.KeyBorder,
		},
		Help: thTOMLHelp{
			Key:  t.HelpKey,
			Desc: t.HelpDesc,
		},
	}
}

func thFromTOML(tt thTOMLTheme) Theme {
	return Theme{
		Name:       tt.Name,
		Background: tt.Base.Background,
		Foreground: tt.Base.Foreground,
		Dim:        tt.Base.Dim,
		Accent:     tt.Base.Accent,

		DisplayBG:    tt.Display.Background,
		DisplayFG:    tt.Display.Foreground,
		DisplayError: tt.Display.Error,

		DigitKey:    tt.Keys.Digit,
		OperatorKey: tt.Keys.Operator,
		ActionKey:   tt.Keys.Action,
		ToggleKey:   tt.Keys.Toggle,
		KeyText:     tt.Keys.Text,
		KeyBorder:   tt.Keys.Border,

		HelpKey:  tt.Help.Key,
		HelpDesc: tt.Help.Desc,
	}
}

// thColorFields lists every color of t by its TOML-ish field name.
func thColorFields(t Theme) map[string]string {
	return map[string]string{
		"background":         t.Background,
		"foreground":         t.Foreground,
		"dim":                t.Dim,
		"accent":             t.Accent,
		"display_background": t.DisplayBG,
		"display_foreground": t.DisplayFG,
		"display_error":      t.DisplayError,
		"key_digit":          t.DigitKey,
		"key_operator":       t.OperatorKey,
		"key_action":         t.ActionKey,
		"key_toggle":         t.ToggleKey,
		"key_text":           t.KeyText,
		"key_border":         t.KeyBorder,
		"help_key":           t.HelpKey,
		"help_desc":          t.HelpDesc,
	}
}

// thValidateTheme checks that every color is present and valid hex.
func thValidateTheme(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}
	for field, value := range thColorFields(t) {
		if value == "" {
			return fmt.Errorf("theme: missing required field %q", field)
		}
		if !thHexColorRegex.MatchString(value) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", value, field)
		}
	}
	return nil
}

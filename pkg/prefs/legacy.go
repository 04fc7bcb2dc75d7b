package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LegacyFileName is the YAML preference file written by earlier releases.
const LegacyFileName = "preferences.yaml"

// legacyPath returns the YAML file that sits next to the TOML file.
func legacyPath(tomlPath string) string {
	return filepath.Join(filepath.Dir(tomlPath), LegacyFileName)
}

// importLegacy reads the YAML preference file next to tomlPath. The YAML
// file is renamed to *.bak once read so the import runs once. ok is false
// when there is nothing to import.
func importLegacy(tomlPath string) (p Preferences, ok bool, err error) {
	src := legacyPath(tomlPath)
	data, err := os.ReadFile(src)
	if errors.Is(err, os.ErrNotExist) {
		return Preferences{}, false, nil
	}
	if err != nil {
		return Preferences{}, false, fmt.Errorf("prefs: read legacy %s: %w", src, err)
	}

	p = Defaults()
	if strings.TrimSpace(string(data)) != "" {
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Preferences{}, false, fmt.Errorf("prefs: parse legacy %s: %w", src, err)
		}
	}

	if err := os.Rename(src, src+".bak"); err != nil {
		return Preferences{}, false, fmt.Errorf("prefs: back up legacy %s: %w", src, err)
	}
	return p.normalize(), true, nil
}

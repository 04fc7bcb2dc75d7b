package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

// FileName is the preference file name inside the config directory.
const FileName = "preferences.toml"

// FileStore persists preferences as TOML.
type FileStore struct {
	path  string
	prefs Preferences
	log   *zap.Logger
}

// Open loads preferences from path. A missing file yields Defaults; if a
// legacy preferences.yaml sits next to it, that file is imported and
// rewritten as TOML first.
func Open(path string, log *zap.Logger) (*FileStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &FileStore{path: path, prefs: Defaults(), log: log}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		p := Defaults()
		if _, err := toml.Decode(string(data), &p); err != nil {
			return nil, fmt.Errorf("prefs: parse %s: %w", path, err)
		}
		s.prefs = p.normalize()
	case errors.Is(err, os.ErrNotExist):
		imported, ok, err := importLegacy(path)
		if err != nil {
			return nil, err
		}
		if ok {
			s.prefs = imported
			if err := s.save(); err != nil {
				return nil, err
			}
			log.Info("imported legacy preferences", zap.String("path", path))
		}
	default:
		return nil, fmt.Errorf("prefs: read %s: %w", path, err)
	}

	log.Debug("preferences loaded",
		zap.String("theme_mode", string(s.prefs.ThemeMode)),
		zap.Bool("vibration_enabled", s.prefs.VibrationEnabled))
	return s, nil
}

// Path returns the file the store writes to.
func (s *FileStore) Path() string { return s.path }

// Current implements Store.
func (s *FileStore) Current() Preferences { return s.prefs }

// SetThemeMode implements Store.
func (s *FileStore) SetThemeMode(mode ThemeMode) error {
	s.prefs.ThemeMode = ParseThemeMode(string(mode))
	return s.save()
}

// SetVibration implements Store.
func (s *FileStore) SetVibration(enabled bool) error {
	s.prefs.VibrationEnabled = enabled
	return s.save()
}

func (s *FileStore) save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.prefs); err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prefs: create directory: %w", err)
	}
	if err := atomicWrite(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("prefs: write %s: %w", s.path, err)
	}
	return nil
}

// atomicWrite writes data to path via a temporary file and rename.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".prefs-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

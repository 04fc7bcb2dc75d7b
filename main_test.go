package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/calcpad/pkg/cache"
	"gitlab.com/tinyland/lab/calcpad/pkg/calc"
)

// writeTestConfig points every path at a temp dir.
func writeTestConfig(t *testing.T) (cfgPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	cfgPath = filepath.Join(dir, "config.toml")
	body := fmt.Sprintf(`[general]
log_file = %q
state_dir = %q
prefs_file = %q
`, filepath.Join(dir, "calcpad.log"), filepath.Join(dir, "state"), filepath.Join(dir, "preferences.toml"))
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPrefsCommand(t *testing.T) {
	cfgPath, dir := writeTestConfig(t)

	out, err := execute(t, "prefs", "--config", cfgPath)
	if err != nil {
		t.Fatalf("prefs: %v", err)
	}
	if !strings.Contains(out, "theme:     system") || !strings.Contains(out, "vibration: true") {
		t.Errorf("defaults not shown:\n%s", out)
	}

	out, err = execute(t, "prefs", "--config", cfgPath, "--theme", "dark", "--vibration", "off")
	if err != nil {
		t.Fatalf("prefs set: %v", err)
	}
	if !strings.Contains(out, "theme:     dark") || !strings.Contains(out, "vibration: false") {
		t.Errorf("update not shown:\n%s", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "preferences.toml"))
	if err != nil {
		t.Fatalf("preferences not written: %v", err)
	}
	if !strings.Contains(string(data), `theme_mode = "dark"`) {
		t.Errorf("preferences file:\n%s", data)
	}
}

func TestPrefsCommandRejectsUnknownValues(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)
	if _, err := execute(t, "prefs", "--config", cfgPath, "--theme", "sepia"); err == nil {
		t.Error("expected error for unknown theme")
	}
	if _, err := execute(t, "prefs", "--config", cfgPath, "--vibration", "maybe"); err == nil {
		t.Error("expected error for unknown vibration setting")
	}
}

func TestResetCommand(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	out, err := execute(t, "reset", "--config", cfgPath)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.Contains(out, "no saved session") {
		t.Errorf("reset on empty store: %q", out)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	store, err := openSessionStore(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	snap := calc.InitialSnapshot()
	snap.CurrentInput = "42"
	if err := cache.PutTyped(store, sessionKey, snap); err != nil {
		t.Fatal(err)
	}
	store.Close()

	out, err = execute(t, "reset", "--config", cfgPath)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.Contains(out, "session cleared") {
		t.Errorf("reset output: %q", out)
	}

	store, err = openSessionStore(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if store.Has(sessionKey) {
		t.Error("session still present after reset")
	}
}

func TestRootRejectsArgs(t *testing.T) {
	if _, err := execute(t, "extra"); err == nil {
		t.Error("expected error for positional argument")
	}
}

func TestThemeCommands(t *testing.T) {
	cfgPath, dir := writeTestConfig(t)

	out, err := execute(t, "theme", "list", "--config", cfgPath)
	if err != nil {
		t.Fatalf("theme list: %v", err)
	}
	if out != "dark\nlight\n" {
		t.Errorf("theme list = %q", out)
	}

	out, err = execute(t, "theme", "export", "light", "--config", cfgPath)
	if err != nil {
		t.Fatalf("theme export: %v", err)
	}
	if !strings.Contains(out, `name = "light"`) || !strings.Contains(out, "[keys]") {
		t.Errorf("export output:\n%s", out)
	}

	// An exported palette is a valid override file.
	themes := filepath.Join(dir, "themes")
	if err := os.MkdirAll(themes, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(themes, "light.toml"), []byte(out), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "theme", "list", "--config", cfgPath)
	if err != nil {
		t.Fatalf("theme list: %v", err)
	}
	if !strings.Contains(out, "light (overridden)") {
		t.Errorf("theme list = %q", out)
	}

	if _, err := execute(t, "theme", "export", "sepia", "--config", cfgPath); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestOpenSessionStoreSweepsExpired(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)
	configPath = cfgPath
	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Session.TTL.Duration = time.Millisecond
	cfg.Session.Cleanup.Duration = 5 * time.Millisecond

	store, err := openSessionStore(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if err := cache.PutTyped(store, sessionKey, calc.InitialSnapshot()); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for store.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("expired session was never swept")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

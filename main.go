// calcpad is a four-function terminal calculator with a clickable keypad,
// a light/dark theme preference and bell feedback on each press.
//
// Usage:
//
//	calcpad [flags]
//	calcpad prefs [--theme light|dark|system] [--vibration on|off]
//	calcpad reset
//
// Flags:
//
//	--config string   Path to configuration file (default: $XDG_CONFIG_HOME/calcpad/config.toml)
//	--no-restore      Start from a cleared calculator instead of the saved session
//	--verbose         Enable debug logging
//	--version         Print version and exit
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitlab.com/tinyland/lab/calcpad/pkg/app"
	"gitlab.com/tinyland/lab/calcpad/pkg/cache"
	"gitlab.com/tinyland/lab/calcpad/pkg/calc"
	"gitlab.com/tinyland/lab/calcpad/pkg/config"
	"gitlab.com/tinyland/lab/calcpad/pkg/haptic"
	"gitlab.com/tinyland/lab/calcpad/pkg/logging"
	"gitlab.com/tinyland/lab/calcpad/pkg/prefs"
	"gitlab.com/tinyland/lab/calcpad/pkg/terminal"
	"gitlab.com/tinyland/lab/calcpad/pkg/theme"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// sessionKey names the snapshot entry in the state store.
const sessionKey = "session"

var (
	configPath string
	noRestore  bool
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "calcpad",
		Short:        "Four-function terminal calculator",
		Version:      fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file")
	root.Flags().BoolVar(&noRestore, "no-restore", false, "start from a cleared calculator")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	root.AddCommand(prefsCmd(), resetCmd(), themeCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openSessionStore(cfg *config.Config, log *zap.Logger) (*cache.Store, error) {
	return cache.NewStore(cache.StoreConfig{
		Dir:             filepath.Join(cfg.General.StateDir, "session"),
		DefaultTTL:      cfg.Session.TTL.Duration,
		CleanupInterval: cfg.Session.Cleanup.Duration,
		Logger:          log,
	})
}

// themeDir holds light.toml and dark.toml palette overrides.
func themeDir(cfg *config.Config) string {
	return filepath.Join(filepath.Dir(cfg.General.PrefsFile), "themes")
}

func run(cfg *config.Config) error {
	log, closeLog, err := logging.New(cfg.General.LogFile, cfg.General.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Info("starting calcpad", zap.String("version", version))

	store, err := prefs.Open(cfg.General.PrefsFile, log)
	if err != nil {
		log.Warn("preferences unavailable, using defaults", zap.Error(err))
	}
	var prefStore prefs.Store = prefs.NewMemoryStore(prefs.Defaults())
	if store != nil {
		prefStore = store
	}

	if loaded, err := theme.LoadOverrides(themeDir(cfg)); err != nil {
		log.Warn("theme overrides", zap.Error(err))
	} else if len(loaded) > 0 {
		log.Info("theme overrides loaded", zap.Strings("themes", loaded))
	}

	sessions, err := openSessionStore(cfg, log)
	if err != nil {
		log.Warn("session store unavailable", zap.Error(err))
	} else {
		defer sessions.Close()
		log.Debug("session store opened", zap.Int("entries", sessions.Len()))
	}

	caps := terminal.DetectCapabilities()
	log.Info("terminal detected",
		zap.Stringer("term", caps.Term),
		zap.Bool("mouse", caps.Mouse),
		zap.Bool("bell", caps.Bell),
		zap.Bool("truecolor", caps.TrueColor),
		zap.Bool("ssh", caps.SSH),
		zap.Bool("mux", caps.Mux))

	// Multiplexers often drop COLORTERM; trust the detected emulator.
	if caps.TrueColor {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	var feedback haptic.Trigger = haptic.Nop{}
	if caps.Bell {
		if bell := haptic.NewBell(os.Stdout, cfg.Feedback.Pulse.Duration); bell.Capable() {
			feedback = bell
		} else {
			log.Info("stdout is not a terminal, press feedback disabled")
		}
	}

	opts := app.Options{
		Prefs:          prefStore,
		Feedback:       feedback,
		DarkBackground: theme.DetectDarkBackground(),
		ThemeOverride:  prefs.ThemeMode(cfg.General.Theme),
		MaxInputLength: cfg.Input.MaxLength,
		Logger:         log,
	}
	if sessions != nil {
		if cfg.Session.Restore && !noRestore {
			snap, ok, err := cache.GetTyped[calc.Snapshot](sessions, sessionKey)
			if err != nil {
				log.Warn("discarding unreadable session", zap.Error(err))
			} else if ok {
				opts.Restore = &snap
			}
		}
		opts.SaveSession = func(s calc.Snapshot) error {
			return cache.PutTyped(sessions, sessionKey, s)
		}
	}

	model := app.New(opts)
	defer model.Close()

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if caps.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, progOpts...)
	if _, err := p.Run(); err != nil {
		log.Error("TUI error", zap.Error(err))
		return err
	}
	return nil
}

func prefsCmd() *cobra.Command {
	var themeMode, vibration string
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := prefs.Open(cfg.General.PrefsFile, zap.NewNop())
			if err != nil {
				return err
			}
			if themeMode != "" {
				mode := prefs.ThemeMode(themeMode)
				if prefs.ParseThemeMode(themeMode) != mode {
					return fmt.Errorf("unknown theme %q (want light, dark or system)", themeMode)
				}
				if err := store.SetThemeMode(mode); err != nil {
					return err
				}
			}
			switch vibration {
			case "":
			case "on":
				if err := store.SetVibration(true); err != nil {
					return err
				}
			case "off":
				if err := store.SetVibration(false); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown vibration setting %q (want on or off)", vibration)
			}

			cur := store.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "file:      %s\ntheme:     %s\nvibration: %t\n",
				store.Path(), cur.ThemeMode, cur.VibrationEnabled)
			return nil
		},
	}
	cmd.Flags().StringVar(&themeMode, "theme", "", "set theme mode (light, dark, system)")
	cmd.Flags().StringVar(&vibration, "vibration", "", "set press feedback (on, off)")
	return cmd
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved calculator session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			sessions, err := openSessionStore(cfg, zap.NewNop())
			if err != nil {
				return err
			}
			defer sessions.Close()
			if !sessions.Has(sessionKey) {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved session")
				return nil
			}
			if err := sessions.Delete(sessionKey); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
			return nil
		},
	}
}

func themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "List palettes or export one as an editable TOML override",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List palette names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loaded, err := theme.LoadOverrides(themeDir(cfg))
			if err != nil {
				return err
			}
			overridden := make(map[string]bool, len(loaded))
			for _, name := range loaded {
				overridden[name] = true
			}
			for _, name := range theme.Names() {
				if overridden[name] {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (overridden)\n", name)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export <name>",
		Short: "Print a palette as TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if _, err := theme.LoadOverrides(themeDir(cfg)); err != nil {
				return err
			}
			known := false
			for _, name := range theme.Names() {
				known = known || name == args[0]
			}
			if !known {
				return fmt.Errorf("unknown theme %q", args[0])
			}
			data, err := theme.SaveToTOML(theme.Get(args[0]))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}

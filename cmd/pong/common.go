package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/savegame"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// newLogger creates the process logger and installs it as the default.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pong",
		Level:           level,
	})
	log.SetDefault(logger)
	return logger, nil
}

// fileLogger logs to --log-file, since the terminal belongs to the UI.
// The returned function closes the file.
func fileLogger() (*log.Logger, func(), error) {
	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

func loadConfig(logger *log.Logger) (config.PongConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.PongConfig{}, err
	}
	logger.Debug("config loaded", "levels", strings.Join(cfg.LevelNames(), ","), "frame_rate", cfg.FrameRate())
	return cfg, nil
}

// openStore opens the database. The game still works without one, so a
// failure is only logged.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// newEnv wires the local player's UI environment and loads their
// suspended game.
func newEnv(cfg config.PongConfig, store *storage.Store, logger *log.Logger) *tui.Env {
	env := &tui.Env{
		Config:        cfg,
		DB:            store,
		Saves:         savegame.NewStore(logger.WithPrefix("savegame")),
		Logger:        logger,
		ScreenshotDir: expandHome("~/.pong/screenshots"),
	}
	if store != nil {
		slot := store.Slot(storage.DefaultSlot)
		if err := env.Saves.Load(slot); err != nil {
			logger.Warn("could not load saved game", "error", err)
		}
		env.Slot = slot
	}
	return env
}

// terminalSize returns the size of stdout, or 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// parseDifficulty accepts a level name or a table index.
func parseDifficulty(cfg config.PongConfig, s string) (int, error) {
	if i := cfg.IndexOf(strings.ToLower(s)); i >= 0 {
		return i, nil
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < len(cfg.Difficulties) {
		return i, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q (choose from %s)", s, strings.Join(cfg.LevelNames(), ", "))
}

// runUI runs the terminal UI with logs going to the log file.
func runUI(play func(cfg config.PongConfig, env *tui.Env) (*tui.Settings, error)) error {
	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	env := newEnv(cfg, store, logger)

	var settings *tui.Settings
	if play != nil {
		if settings, err = play(cfg, env); err != nil {
			return err
		}
	}

	width, height := terminalSize()
	if err := tui.Run(env, settings, width, height); err != nil {
		logger.Error("ui failed", "error", err)
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

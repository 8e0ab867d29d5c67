package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/papuso/internal/app"
	"github.com/vovakirdan/papuso/internal/config"
	"github.com/vovakirdan/papuso/internal/registry"
	"github.com/vovakirdan/papuso/internal/sound"
	"github.com/vovakirdan/papuso/internal/sound/synth"
	"github.com/vovakirdan/papuso/internal/storage"
	"github.com/vovakirdan/papuso/internal/timeline"
)

// env is everything a command needs after flags and config are merged.
type env struct {
	cfg     config.Config
	games   []registry.Definition
	source  timeline.Source
	logger  *log.Logger
	logFile *os.File
	store   *storage.Store
}

// loadEnv merges config file, environment and flags. Flags win.
func loadEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagData != "" {
		cfg.Data.Source = flagData
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return nil, err
		}
		cfg.Difficulty = preset
	}

	return &env{
		cfg:    cfg,
		games:  app.ApplyOverrides(registry.List(), cfg.Games),
		source: timeline.NewSource(cfg.Data.Source),
	}, nil
}

// fileLogger sends logs to ~/.papuso/papuso.log with --debug and nowhere
// otherwise, so nothing lands on the screen under the TUI.
func (e *env) fileLogger() *log.Logger {
	if !flagDebug {
		return log.New(io.Discard)
	}
	path := filepath.Join(config.Dir(), "papuso.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(io.Discard)
	}
	e.logFile = f
	e.logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "papuso",
		Level:           log.DebugLevel,
	})
	return e.logger
}

// serverLogger logs to stderr for the SSH and web hosts.
func (e *env) serverLogger(prefix string) *log.Logger {
	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	e.logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return e.logger
}

// recorder opens the history database. A failure is reported and play goes
// on without history.
func (e *env) recorder() app.Recorder {
	store, err := storage.Open(e.cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return nil
	}
	e.store = store
	return store
}

// sound starts the synth unless sound is off or --mute was given.
func (e *env) sound() sound.Service {
	if flagMute || !e.cfg.Sound.Enabled {
		return &sound.Nop{}
	}
	out := synth.New(e.cfg.Sound.SampleRate, e.cfg.Sound.Volume)
	if err := out.Start(); err != nil {
		if e.logger != nil {
			e.logger.Warn("audio unavailable", "error", err)
		}
		return &sound.Nop{}
	}
	return out
}

func (e *env) rand() *rand.Rand {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (e *env) holdWindow() time.Duration {
	return time.Duration(e.cfg.Controls.HoldMs) * time.Millisecond
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// requireTTY refuses to start a TUI without an interactive terminal.
func requireTTY() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("papuso needs an interactive terminal; try 'papuso web' instead")
	}
	return nil
}

// screenSize returns the terminal size, falling back to 80x24.
func screenSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func findGame(games []registry.Definition, id string) (registry.Definition, bool) {
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return registry.Definition{}, false
}

// lookupGame resolves a command-line game id against the configured
// catalog, telling a disabled game apart from an unknown one.
func lookupGame(games []registry.Definition, id string) (registry.Definition, error) {
	if def, ok := findGame(games, id); ok {
		return def, nil
	}
	if registry.Exists(id) {
		return registry.Definition{}, fmt.Errorf("minigame %q is disabled in the config", id)
	}
	return registry.Definition{}, fmt.Errorf("%w %q; known minigames: %s",
		registry.ErrUnknownGame, id, strings.Join(registry.IDs(), ", "))
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/papuso/internal/app"
	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/platform/tui"
)

func runTerminal(_ *cobra.Command, _ []string) error {
	if err := requireTTY(); err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	logger := e.fileLogger()
	snd := e.sound()
	defer snd.Stop()

	// the terminal enables them when a minigame starts
	opts := []core.ControlsOption{core.WithEnabled(false)}
	if len(e.cfg.Controls.Prevent) > 0 {
		opts = append(opts, core.WithPrevent(e.cfg.Controls.Prevent...))
	}

	term := app.New(app.FromConfig(e.cfg), app.Deps{
		Sound:    snd,
		Recorder: e.recorder(),
		Rand:     e.rand(),
		Source:   e.source,
		Games:    e.games,
		Controls: core.NewControls(opts...),
	})
	logger.Debug("terminal starting", "source", e.source.Name(), "games", len(e.games), "difficulty", e.cfg.Difficulty)

	return tui.Run(term, tui.Options{
		UITick:     e.cfg.App.UITick(),
		HoldWindow: e.holdWindow(),
		Logger:     logger,
	})
}

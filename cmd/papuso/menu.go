package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/papuso/internal/platform/tui"
	"github.com/vovakirdan/papuso/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick minigames to practice",
	Long: `Start an interactive menu of minigames.

After a practice run you return to the menu to pick again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select minigame
  Tab/H        - Session history
  Q            - Quit

Examples:
  papuso menu
  papuso menu --difficulty easy`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := requireTTY(); err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	// History is read only when asked for
	var history tui.HistorySource
	openHistory := func() tui.HistorySource {
		if history != nil {
			return history
		}
		if e.recorder() != nil {
			history = e.store
		}
		return history
	}

	rng := e.rand()
	for {
		res, err := tui.RunMenu(e.games)
		if err != nil {
			return err
		}
		if res.Quit {
			return nil
		}

		if res.WantsHistory {
			width, height := screenSize()
			goBack, err := tui.RunHistory(openHistory(), e.games, width, height)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return nil
		}

		def, ok := findGame(e.games, res.GameID)
		if !ok {
			return nil
		}
		goBack, err := tui.RunPractice(def, rng.Int63(), e.cfg.Difficulty.TickScale(), e.holdWindow())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running minigame: %v\n", err)
		}
		if !goBack {
			return nil
		}
	}
}

var _ tui.HistorySource = (*storage.Store)(nil)

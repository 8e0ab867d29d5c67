package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/papuso/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Practice a minigame",
	Long: `Play one minigame on its own. Practice runs are not recorded and
nothing gets decrypted.

Controls:
  Arrows/WASD  - Move
  Space        - Action
  R            - Restart
  Esc/B        - Leave
  Q/Ctrl+C     - Quit

Examples:
  papuso play snake
  papuso play tetris --difficulty hard
  papuso play pong --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	if err := requireTTY(); err != nil {
		return err
	}
	e, err := loadEnv()
	if err != nil {
		return err
	}

	def, err := lookupGame(e.games, args[0])
	if err != nil {
		return err
	}

	_, err = tui.RunPractice(def, e.rand().Int63(), e.cfg.Difficulty.TickScale(), e.holdWindow())
	return err
}

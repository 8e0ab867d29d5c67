// papuso is a retro operating-system terminal that walks through the history
// of computing. Each milestone arrives encrypted; arcade minigames win back
// its words one point at a time.
//
// Usage:
//
//	papuso                   - Boot the terminal
//	papuso list              - List the minigames
//	papuso play <game>       - Practice one minigame
//	papuso menu              - Pick minigames to practice
//	papuso history [game]    - Show recorded sessions
//	papuso serve             - Serve the terminal over SSH
//	papuso web               - Serve the terminal to browsers
//
// Global flags:
//
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - History database (default: ~/.papuso/papuso.db)
//	--config <path>       - Config file
//	--data <location>     - Timeline file or URL
//	--difficulty <preset> - easy, normal or hard
//	--mute                - Disable sound
//	--debug               - Log to ~/.papuso/papuso.log
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import minigames to register them
	_ "github.com/vovakirdan/papuso/internal/games/asteroids"
	_ "github.com/vovakirdan/papuso/internal/games/breakout"
	_ "github.com/vovakirdan/papuso/internal/games/dodge"
	_ "github.com/vovakirdan/papuso/internal/games/invaders"
	_ "github.com/vovakirdan/papuso/internal/games/missile"
	_ "github.com/vovakirdan/papuso/internal/games/pong"
	_ "github.com/vovakirdan/papuso/internal/games/snake"
	_ "github.com/vovakirdan/papuso/internal/games/t2048"
	_ "github.com/vovakirdan/papuso/internal/games/tetris"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagData       string
	flagDifficulty string
	flagMute       bool
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "papuso",
	Short: "PapuSO - decrypt the history of computing",
	Long: `PapuSO boots a retro operating system that guards the history of
computing. Every milestone is encrypted; win minigames to reveal its words.

Available commands:
  list     - Show all minigames
  play     - Practice a minigame
  menu     - Interactive practice menu
  history  - Show recorded sessions
  serve    - Serve the terminal over SSH
  web      - Serve the terminal to browsers

Examples:
  papuso
  papuso --difficulty hard
  papuso --data ./timeline.yaml
  papuso play tetris
  papuso serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runTerminal,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "Timeline file or http(s) URL")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs to ~/.papuso/papuso.log")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

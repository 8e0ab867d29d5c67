package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/papuso/internal/registry"
	"github.com/vovakirdan/papuso/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history [game]",
	Short: "Show recorded sessions",
	Long: `Display per-minigame totals and the most recent sessions. With a
minigame id, only that minigame's sessions are listed.

Examples:
  papuso history
  papuso history tetris --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to show")
}

func runHistory(_ *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	store, err := storage.Open(e.cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	if len(args) == 1 {
		def, err := lookupGame(e.games, args[0])
		if err != nil {
			return err
		}
		return printGameHistory(store, def)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	fmt.Println("Session history")
	fmt.Println()
	if len(all) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("  %-12s  %8s  %4s  %4s  %7s  %6s\n", "Minigame", "Sessions", "Won", "Lost", "Aborted", "Words")
	fmt.Printf("  %-12s  %8s  %4s  %4s  %7s  %6s\n", "--------", "--------", "---", "----", "-------", "-----")
	for _, g := range e.games {
		st, ok := all[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-12s  %8d  %4d  %4d  %7d  %6d\n", g.ID, st.Sessions, st.Won, st.Lost, st.Aborted, st.WordsRevealed)
	}

	recent, err := store.RecentSessions(flagHistoryLimit)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Recent sessions:")
	printSessions(recent, true)
	return nil
}

func printGameHistory(store *storage.Store, def registry.Definition) error {
	st, err := store.GetGameStats(def.ID)
	if err != nil {
		return err
	}
	sessions, err := store.GameSessions(def.ID, flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Session history - %s\n", def.Name)
	fmt.Println()
	if st.Sessions == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}
	fmt.Printf("Sessions: %d  Won: %d  Win rate: %.0f%%  Words: %d\n",
		st.Sessions, st.Won, st.WinRate()*100, st.WordsRevealed)
	fmt.Println()
	printSessions(sessions, false)
	return nil
}

func printSessions(sessions []storage.Session, withGame bool) {
	if len(sessions) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, s := range sessions {
		date := s.CreatedAt.Format("2006-01-02 15:04")
		if withGame {
			fmt.Printf("  %s  %-12s  %-10s  %d/%d  lives %d  %s\n", date, s.GameID, s.EventID, s.Points, s.Target, s.LivesLeft, s.Outcome)
			continue
		}
		fmt.Printf("  %s  %-10s  %d/%d  lives %d  %s\n", date, s.EventID, s.Points, s.Target, s.LivesLeft, s.Outcome)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all minigames",
	Long:  `Shows the minigames the terminal can pick from, after config overrides.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	games := e.games

	if len(games) == 0 {
		fmt.Println("No minigames available.")
		return nil
	}

	fmt.Println("Available minigames:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxNameLen := 4
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxNameLen = max(maxNameLen, len(g.Name))
	}

	fmt.Printf("  %-*s  %-*s  %-6s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Target", "Tick")
	fmt.Printf("  %-*s  %-*s  %-6s  %s\n", maxIDLen, "--", maxNameLen, "----", "------", "----")
	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %-6d  %dms\n", maxIDLen, g.ID, maxNameLen, g.Name, g.BaseTarget, g.TickMs)
	}

	fmt.Println()
	fmt.Println("Run 'papuso play <id>' to practice a minigame.")
	return nil
}

// Package tui hosts the papuSO terminal in Bubble Tea, locally and over SSH.
// It maps terminal key presses onto the terminal's keys, schedules UI and
// minigame ticks, and renders views with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// UITickMsg advances the terminal's boot and briefing sequences.
type UITickMsg time.Time

// GameTickMsg steps the minigame of generation Gen. Ticks for a session that
// already ended carry an old generation and are dropped.
type GameTickMsg struct {
	Gen uint64
}

// releaseMsg ends a synthesized key hold unless the key was pressed again.
type releaseMsg struct {
	key string
	seq uint64
}

func uiTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return UITickMsg(t)
	})
}

func gameTickCmd(gen uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return GameTickMsg{Gen: gen}
	})
}

package tui

import (
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/papuso/internal/app"
	"github.com/vovakirdan/papuso/internal/core"
)

// KeyMap holds the host-level bindings shown in the help bar.
type KeyMap struct {
	Move       key.Binding
	Action     key.Binding
	Select     key.Binding
	Abort      key.Binding
	Mute       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Action, k.Select, k.Abort, k.Mute, k.Screenshot, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Action, k.Select, k.Abort},
		{k.Mute, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Move: key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "w", "a", "s", "d"),
			key.WithHelp("flechas/wasd", "mover"),
		),
		Action: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("espacio", "accion"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "elegir"),
		),
		Abort: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "abortar"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "silencio"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "captura"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "salir"),
		),
	}
}

// MapKey translates a Bubble Tea key message to a terminal key name. The
// second result is false for keys the terminal does not use.
func MapKey(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return core.KeyUp, true
	case tea.KeyDown:
		return core.KeyDown, true
	case tea.KeyLeft:
		return core.KeyLeft, true
	case tea.KeyRight:
		return core.KeyRight, true
	case tea.KeySpace:
		return core.KeySpace, true
	case tea.KeyEnter:
		return app.KeyEnter, true
	case tea.KeyEsc:
		return app.KeyEscape, true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return "", false
		}
		return core.Normalize(string(msg.Runes)), true
	}
	return "", false
}

// holdable reports whether k is a minigame key that needs a synthesized
// release.
func holdable(k string) bool {
	return slices.Contains(core.Vocabulary, k)
}

// firstHold covers the pause before a terminal starts auto-repeating a
// held key, typically 250 to 500 ms.
const firstHold = 550 * time.Millisecond

// holds fakes key releases. Terminals only report presses, so a key counts
// as held until no press for it arrived within the hold window. A fresh
// press waits at least firstHold; repeats of a held key wait only window.
type holds struct {
	window time.Duration
	first  time.Duration
	seq    map[string]uint64
	next   uint64
}

func newHolds(window time.Duration) *holds {
	if window <= 0 {
		window = 160 * time.Millisecond
	}
	return &holds{window: window, first: max(window, firstHold), seq: make(map[string]uint64)}
}

// press records a press of k and returns the command that releases it.
func (h *holds) press(k string) tea.Cmd {
	seq, wait := h.hold(k)
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return releaseMsg{key: k, seq: seq}
	})
}

// hold renews k and returns its sequence and how long to wait before
// releasing it.
func (h *holds) hold(k string) (uint64, time.Duration) {
	wait := h.window
	if _, held := h.seq[k]; !held {
		wait = h.first
	}
	h.next++
	h.seq[k] = h.next
	return h.next, wait
}

// release reports whether msg is the latest press of its key and forgets it.
func (h *holds) release(msg releaseMsg) bool {
	if h.seq[msg.key] != msg.seq {
		return false
	}
	delete(h.seq, msg.key)
	return true
}

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/papuso/internal/app"
	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/engine"
	"github.com/vovakirdan/papuso/internal/registry"
)

// PracticeKeyMap holds the bindings of practice mode.
type PracticeKeyMap struct {
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PracticeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PracticeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultPracticeKeyMap returns default key bindings.
func DefaultPracticeKeyMap() PracticeKeyMap {
	return PracticeKeyMap{
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reiniciar")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "volver")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "salir")),
	}
}

// PracticeModel plays one minigame on its own, without an event to decrypt.
// Points and lost lives are only counted.
type PracticeModel struct {
	def       registry.Definition
	controls  *core.Controls
	runner    engine.Runner
	seed      int64
	tickScale float64
	gen       uint64
	points    int
	lost      int
	holds     *holds
	keys      PracticeKeyMap
	help      help.Model
	back      bool
	quitting  bool
}

// NewPracticeModel creates a practice session for def. A zero seed picks a
// time-based one on every restart.
func NewPracticeModel(def registry.Definition, seed int64, tickScale float64, holdWindow time.Duration) PracticeModel {
	m := PracticeModel{
		def:       def,
		controls:  core.NewControls(),
		seed:      seed,
		tickScale: tickScale,
		holds:     newHolds(holdWindow),
		keys:      DefaultPracticeKeyMap(),
		help:      help.New(),
	}
	m.restart()
	return m
}

func (m *PracticeModel) restart() {
	if m.runner != nil {
		m.runner.Stop()
	}
	m.controls.Reset()
	m.gen++
	m.points, m.lost = 0, 0
	m.runner = m.def.New(engine.Options{
		Keys:      m.controls,
		Seed:      m.seed,
		TickScale: m.tickScale,
	})
}

// Init starts ticking.
func (m PracticeModel) Init() tea.Cmd {
	return gameTickCmd(m.gen, m.runner.Interval())
}

// Update handles messages.
func (m PracticeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case GameTickMsg:
		if msg.Gen != m.gen || m.back || m.quitting {
			return m, nil
		}
		for _, ev := range m.runner.Step() {
			switch ev {
			case core.EventPoint:
				m.points++
			case core.EventLifeLost:
				m.lost++
			}
		}
		return m, gameTickCmd(m.gen, m.runner.Interval())

	case releaseMsg:
		if m.holds.release(msg) {
			m.controls.TriggerUp(msg.key)
		}
		return m, nil
	}
	return m, nil
}

func (m PracticeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.runner.Stop()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.runner.Stop()
		m.back = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return m, gameTickCmd(m.gen, m.runner.Interval())
	}

	k, ok := MapKey(msg)
	if !ok || !holdable(k) {
		return m, nil
	}
	m.controls.TriggerDown(k)
	return m, m.holds.press(k)
}

// View renders the game frame with its counters.
func (m PracticeModel) View() string {
	if m.quitting || m.back {
		return ""
	}
	lines := []app.Line{
		{Text: "Practica: " + m.def.Name, Tone: core.ToneHeading},
		{Text: m.def.Description, Tone: core.ToneDim},
		{Text: fmt.Sprintf("Puntos: %d  Vidas perdidas: %d", m.points, m.lost)},
	}
	for _, row := range m.runner.Frame() {
		lines = append(lines, app.Line{Text: row})
	}
	lines = append(lines, app.Line{Text: "Controles: " + m.def.Controls, Tone: core.ToneDim})
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderFrame(lines),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// Points returns the points scored since the last restart.
func (m PracticeModel) Points() int { return m.points }

// BackToMenu reports whether the player asked to return to the menu.
func (m PracticeModel) BackToMenu() bool { return m.back }

// RunPractice plays def until the player leaves. It reports whether they
// asked to go back to the menu.
func RunPractice(def registry.Definition, seed int64, tickScale float64, holdWindow time.Duration) (goBack bool, err error) {
	p := tea.NewProgram(
		NewPracticeModel(def, seed, tickScale, holdWindow),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(PracticeModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}

package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/papuso/internal/app"
	"github.com/vovakirdan/papuso/internal/timeline"
)

// loadTimeout bounds a single timeline fetch.
const loadTimeout = 15 * time.Second

// Options configures a terminal Model.
type Options struct {
	UITick     time.Duration
	HoldWindow time.Duration
	// ScreenshotDir receives ctrl+s captures. Empty means
	// ~/.papuso/screenshots.
	ScreenshotDir string
	// NoScreenshots turns ctrl+s off, for remote sessions.
	NoScreenshots bool
	Logger        *log.Logger
}

type dataMsg struct {
	entries []timeline.Entry
	err     error
}

// Model is the Bubble Tea model around an app.Terminal.
type Model struct {
	term      *app.Terminal
	opts      Options
	keys      KeyMap
	help      help.Model
	holds     *holds
	scheduled uint64 // generation with a pending game tick
	width     int
	height    int
	notice    string
	quitting  bool
}

// NewModel wraps term. The model owns term from here on: every call into it
// happens on the Bubble Tea update goroutine.
func NewModel(term *app.Terminal, opts Options) Model {
	if opts.UITick <= 0 {
		opts.UITick = 20 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return Model{
		term:  term,
		opts:  opts,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		holds: newHolds(opts.HoldWindow),
	}
}

// Init starts the terminal and its UI tick.
func (m Model) Init() tea.Cmd {
	m.term.Start()
	return tea.Batch(uiTickCmd(m.opts.UITick), m.loadCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case UITickMsg:
		m.term.Tick()
		cmd := m.follow()
		return m, tea.Batch(uiTickCmd(m.opts.UITick), cmd)

	case GameTickMsg:
		return m.handleGameTick(msg)

	case releaseMsg:
		if m.holds.release(msg) {
			m.term.KeyUp(msg.key)
		}
		return m, nil

	case dataMsg:
		if msg.err != nil {
			m.opts.Logger.Warn("timeline load failed", "source", m.term.SourceName(), "error", msg.err)
		}
		m.term.SetData(msg.entries, msg.err)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.term.Close()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	k, ok := MapKey(msg)
	if !ok {
		return m, nil
	}
	m.notice = ""
	m.term.KeyDown(k)

	var cmds []tea.Cmd
	if holdable(k) {
		cmds = append(cmds, m.holds.press(k))
	}
	cmds = append(cmds, m.follow())
	cmd := tea.Batch(cmds...)
	return m, cmd
}

func (m Model) handleGameTick(msg GameTickMsg) (tea.Model, tea.Cmd) {
	if !m.term.StepGame(msg.Gen) {
		return m, nil
	}
	gen, interval, ok := m.term.Game()
	if !ok || gen != msg.Gen {
		cmd := m.follow()
		return m, cmd
	}
	return m, gameTickCmd(gen, interval)
}

// follow schedules whatever the last terminal transition asked for: a data
// load or the first tick of a new minigame.
func (m *Model) follow() tea.Cmd {
	var cmds []tea.Cmd
	if cmd := m.loadCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if gen, interval, ok := m.term.Game(); ok && gen != m.scheduled {
		m.scheduled = gen
		cmds = append(cmds, gameTickCmd(gen, interval))
	}
	return tea.Batch(cmds...)
}

func (m Model) loadCmd() tea.Cmd {
	if !m.term.TakeLoadRequest() {
		return nil
	}
	term := m.term
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		entries, err := term.Fetch(ctx)
		return dataMsg{entries: entries, err: err}
	}
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	if m.opts.NoScreenshots {
		m.notice = "captura no disponible"
		return
	}
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.notice = "captura fallida"
			return
		}
		dir = filepath.Join(home, ".papuso", "screenshots")
	}
	path, err := SaveScreenshot(dir, m.term.View(), time.Now())
	if err != nil {
		m.opts.Logger.Error("screenshot failed", "error", err)
		m.notice = "captura fallida"
		return
	}
	m.notice = "captura guardada: " + path
}

// SaveScreenshot writes v to a timestamped file in dir and returns its path.
func SaveScreenshot(dir string, v app.View, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot dir: %w", err)
	}
	name := fmt.Sprintf("papuso_%s_%s.txt", v.Stage, now.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(PlainText(v.Lines)), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

var (
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the terminal.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	body := RenderFrame(m.term.View().Lines)
	footer := helpStyle.Render(m.help.View(m.keys))
	if m.notice != "" {
		footer = noticeStyle.Render(m.notice) + "\n" + footer
	}
	content := lipgloss.JoinVertical(lipgloss.Left, body, footer)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Run starts the Bubble Tea program for term on the local terminal.
func Run(term *app.Terminal, opts Options) error {
	p := tea.NewProgram(
		NewModel(term, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

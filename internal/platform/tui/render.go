package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/papuso/internal/app"
	"github.com/vovakirdan/papuso/internal/core"
)

// toneStyles maps core.Tone to lipgloss styles. A green phosphor palette.
var toneStyles = map[core.Tone]lipgloss.Style{
	core.ToneDefault:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ToneHeading:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ToneGood:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	core.ToneInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ToneWarn:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ToneDim:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ToneBanner:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	core.ToneSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("22")),
}

var frameStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("22")).
	Padding(0, 1)

// RenderLines styles every line by its tone.
func RenderLines(lines []app.Line) string {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteRune('\n')
		}
		style, ok := toneStyles[l.Tone]
		if !ok {
			style = toneStyles[core.ToneDefault]
		}
		sb.WriteString(style.Render(l.Text))
	}
	return sb.String()
}

// RenderFrame draws lines inside the terminal bezel.
func RenderFrame(lines []app.Line) string {
	return frameStyle.Render(RenderLines(lines))
}

// PlainText joins the unstyled text of lines, for screenshots.
func PlainText(lines []app.Line) string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n") + "\n"
}

package app

import (
	"fmt"

	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/encryption"
	"github.com/vovakirdan/papuso/internal/timeline"
)

// Line is one row of terminal output.
type Line struct {
	Text string
	Tone core.Tone
}

// View is everything a host needs to draw the terminal.
type View struct {
	Stage Stage
	Lines []Line
}

// Texts returns the plain text of every line.
func (v View) Texts() []string {
	out := make([]string, len(v.Lines))
	for i, l := range v.Lines {
		out[i] = l.Text
	}
	return out
}

type lines []Line

func (ls *lines) add(tone core.Tone, text string) {
	*ls = append(*ls, Line{Text: text, Tone: tone})
}

func (ls *lines) addf(tone core.Tone, format string, args ...any) {
	ls.add(tone, fmt.Sprintf(format, args...))
}

func (ls *lines) blank() { ls.add(core.ToneDefault, "") }

func (ls *lines) button(label string, selected bool) {
	if selected {
		ls.add(core.ToneSelected, "> "+label)
		return
	}
	ls.add(core.ToneDefault, "  "+label)
}

// View renders the current screen.
func (t *Terminal) View() View {
	var ls lines
	switch t.stage {
	case StageBoot:
		t.viewBoot(&ls)
	case StageBriefing:
		t.viewBriefing(&ls)
	case StagePrompt:
		t.viewPrompt(&ls)
	case StageMinigame:
		t.viewMinigame(&ls)
	case StageVictory:
		ls.add(core.ToneGood, textVictory)
		ls.add(core.ToneDefault, textCleared)
		ls.blank()
		ls.button(textContinue, true)
	case StageExit:
		for _, l := range ExitLines {
			ls.add(core.ToneDefault, l)
		}
		ls.add(core.ToneGood, textExitSafe)
		ls.blank()
		ls.button(textRestart, true)
	}
	if t.sound.Muted() {
		ls.blank()
		ls.add(core.ToneDim, textMuted)
	}
	return View{Stage: t.stage, Lines: ls}
}

func (t *Terminal) viewBoot(ls *lines) {
	ls.add(core.ToneHeading, textHeader)
	ls.blank()
	n := VisibleCount(t.elapsed, len(BootLines), t.tm.bootStep)
	for _, l := range BootLines[:n] {
		ls.add(core.ToneInfo, l)
	}
	ls.blank()
	switch t.status {
	case timeline.StatusLoading:
		ls.add(core.ToneDim, textLoading)
	case timeline.StatusError:
		ls.add(core.ToneWarn, textLoadError)
		ls.button(textRetry, true)
	case timeline.StatusReady:
		if t.BootDone() {
			ls.add(core.ToneGood, textAnyKey)
		}
	}
}

func (t *Terminal) viewBriefing(ls *lines) {
	n := VisibleCount(t.elapsed-t.tm.briefingDelay, len(BriefingLines), t.tm.briefingStep)
	for i, l := range BriefingLines[:n] {
		tone := core.ToneDefault
		if i == 0 {
			tone = core.ToneHeading
		}
		ls.add(tone, l)
	}
	if n == len(BriefingLines) {
		ls.blank()
		ls.add(core.ToneDim, textBriefingWait)
	}
}

func (t *Terminal) viewPrompt(ls *lines) {
	if len(t.events) == 0 {
		ls.add(core.ToneWarn, textNoEvents)
		ls.blank()
		ls.button(OptionExit.String(), true)
		return
	}
	ls.addf(core.ToneHeading, "%s %d / %d", textSequence, t.index+1, len(t.events))
	if t.showBanner {
		for _, b := range BannerLines {
			ls.add(core.ToneBanner, b)
		}
	}
	ls.blank()
	ev := t.events[t.index]
	eventLines(ls, ev)
	ls.blank()
	ls.add(core.ToneInfo, textQuestion)
	cur := t.Cursor()
	for _, o := range t.Options() {
		ls.button(o.String(), o == cur)
	}
	if !t.CanDecrypt() {
		ls.blank()
		ls.add(core.ToneDim, textUnavailable)
	}
}

func eventLines(ls *lines, ev encryption.Event) {
	tone := core.ToneDefault
	switch {
	case encryption.IsComplete(ev):
		tone = core.ToneGood
	case !ev.Decryptable:
		tone = core.ToneWarn
	}
	for _, l := range ev.Lines {
		ls.add(tone, l.Display())
	}
}

func (t *Terminal) viewMinigame(ls *lines) {
	s := t.session
	ev := t.events[t.index]
	revealed, total := ev.Progress()
	ls.addf(core.ToneInfo, textProgress, revealed, total)
	ls.addf(core.ToneHeading, textActive, s.Definition.Name)
	ls.add(core.ToneDim, s.Definition.Description)
	ls.addf(core.ToneDefault, textScore, s.Points, s.Target, s.Lives)
	for _, row := range s.runner.Frame() {
		ls.add(core.ToneDefault, row)
	}
	ls.addf(core.ToneDim, textControls, s.Definition.Controls)
	ls.add(core.ToneDim, textAbort)
	ls.blank()
	eventLines(ls, ev)
}

// Package app is the papuSO terminal itself: the boot and briefing
// sequences, the event prompt, minigame sessions and the exit loop.
//
// A Terminal is a plain state machine. Hosts feed it key events and UI ticks
// from a single goroutine (or under one lock), step the running minigame on
// its own interval, and draw whatever View returns.
package app

import (
	"context"
	"math/rand"
	"time"

	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/encryption"
	"github.com/vovakirdan/papuso/internal/engine"
	"github.com/vovakirdan/papuso/internal/registry"
	"github.com/vovakirdan/papuso/internal/sound"
	"github.com/vovakirdan/papuso/internal/storage"
	"github.com/vovakirdan/papuso/internal/timeline"
)

// Stage is the screen the terminal is on.
type Stage int

const (
	StageBoot Stage = iota
	StageBriefing
	StagePrompt
	StageMinigame
	StageVictory
	StageExit
)

func (s Stage) String() string {
	switch s {
	case StageBoot:
		return "boot"
	case StageBriefing:
		return "briefing"
	case StagePrompt:
		return "prompt"
	case StageMinigame:
		return "minigame"
	case StageVictory:
		return "victory"
	case StageExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Terminal-level keys, on top of the minigame vocabulary in core.
const (
	KeyEnter  = "enter"
	KeyEscape = "esc"
	KeyRetry  = "r"
	KeyMute   = "m"
)

// Option is one answer of the event prompt.
type Option int

const (
	OptionContinue Option = iota
	OptionDecrypt
	OptionExit
)

func (o Option) String() string {
	switch o {
	case OptionContinue:
		return "Si (continuar)"
	case OptionDecrypt:
		return "Desencriptar"
	case OptionExit:
		return "Salir"
	default:
		return "?"
	}
}

// Recorder persists finished minigame sessions.
type Recorder interface {
	SaveSession(sess storage.Session) (string, error)
}

type nopRecorder struct{}

func (nopRecorder) SaveSession(storage.Session) (string, error) { return "", nil }

// Deps are the collaborators of a Terminal. Zero fields get silent or
// default implementations.
type Deps struct {
	Sound    sound.Service
	Recorder Recorder
	Rand     *rand.Rand
	Source   timeline.Source
	// Games is the catalog minigames are picked from. Nil means every
	// registered game.
	Games []registry.Definition
	// Controls is shared with the minigame loops. Hosts write key events
	// into it through the Terminal.
	Controls *core.Controls
}

// Session is a running minigame.
type Session struct {
	Definition registry.Definition
	Target     int
	Points     int
	Lives      int

	gen    uint64
	runner engine.Runner
}

// Terminal is the papuSO state machine.
type Terminal struct {
	cfg Config
	tm  timings

	sound    sound.Service
	recorder Recorder
	rng      *rand.Rand
	source   timeline.Source
	games    []registry.Definition
	controls *core.Controls

	stage   Stage
	elapsed int // UI ticks spent in the current stage

	status      timeline.Status
	loadErr     error
	loadPending bool
	entries     []timeline.Entry

	events     []encryption.Event
	index      int
	showBanner bool
	cursor     int

	session *Session
	gen     uint64
	last    storage.Outcome
	started bool
}

// New creates a terminal on the boot screen with a data load pending.
func New(cfg Config, deps Deps) *Terminal {
	cfg = cfg.normalized()
	t := &Terminal{
		cfg:         cfg,
		tm:          cfg.timings(),
		sound:       deps.Sound,
		recorder:    deps.Recorder,
		rng:         deps.Rand,
		source:      deps.Source,
		games:       deps.Games,
		controls:    deps.Controls,
		stage:       StageBoot,
		status:      timeline.StatusLoading,
		loadPending: true,
	}
	if t.sound == nil {
		t.sound = &sound.Nop{}
	}
	if t.recorder == nil {
		t.recorder = nopRecorder{}
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if t.source == nil {
		t.source = timeline.Embedded{}
	}
	if t.games == nil {
		t.games = registry.List()
	}
	if t.controls == nil {
		t.controls = core.NewControls(core.WithEnabled(false))
	} else {
		t.controls.SetEnabled(false)
	}
	return t
}

// Start plays the boot sweep and starts the hum. Call it once the host's
// audio is up.
func (t *Terminal) Start() {
	if t.started {
		return
	}
	t.started = true
	t.sound.Play(sound.CueBoot)
	t.sound.StartHum()
}

// Close aborts a running minigame and stops the hum.
func (t *Terminal) Close() {
	if t.session != nil {
		t.finish(storage.OutcomeAborted)
	}
	t.sound.StopHum()
	t.started = false
}

// Stage returns the current screen.
func (t *Terminal) Stage() Stage { return t.stage }

// Status returns the timeline load status.
func (t *Terminal) Status() timeline.Status { return t.status }

// LoadError returns the last load failure, if any.
func (t *Terminal) LoadError() error { return t.loadErr }

// Index returns the position of the current event.
func (t *Terminal) Index() int { return t.index }

// Events returns a deep copy of the event list.
func (t *Terminal) Events() []encryption.Event {
	out := make([]encryption.Event, len(t.events))
	for i, e := range t.events {
		out[i] = e.Clone()
	}
	return out
}

// Current returns the event on screen.
func (t *Terminal) Current() (encryption.Event, bool) {
	if t.index < 0 || t.index >= len(t.events) {
		return encryption.Event{}, false
	}
	return t.events[t.index].Clone(), true
}

// Session returns a copy of the running minigame session.
func (t *Terminal) Session() (Session, bool) {
	if t.session == nil {
		return Session{}, false
	}
	return *t.session, true
}

// LastOutcome returns how the most recent session ended.
func (t *Terminal) LastOutcome() storage.Outcome { return t.last }

// Muted reports whether sound is muted.
func (t *Terminal) Muted() bool { return t.sound.Muted() }

// Prevented reports whether the host should swallow key instead of handling
// it itself.
func (t *Terminal) Prevented(key string) bool {
	return t.stage == StageMinigame && t.controls.Prevented(key)
}

// PreventedKeys lists the keys whose host default action must be swallowed
// right now. Outside minigames it is empty.
func (t *Terminal) PreventedKeys() []string {
	if t.stage != StageMinigame {
		return nil
	}
	return t.controls.PreventedKeys()
}

// TakeLoadRequest reports and clears a pending data load. The host then
// calls Fetch off the UI path and hands the result to SetData.
func (t *Terminal) TakeLoadRequest() bool {
	pending := t.loadPending
	t.loadPending = false
	return pending
}

// Fetch loads the timeline from the configured source. It does not touch
// terminal state and may run on any goroutine.
func (t *Terminal) Fetch(ctx context.Context) ([]timeline.Entry, error) {
	return t.source.Load(ctx)
}

// SourceName names the timeline source for display.
func (t *Terminal) SourceName() string { return t.source.Name() }

// SetData installs a load result.
func (t *Terminal) SetData(entries []timeline.Entry, err error) {
	if err != nil {
		t.status = timeline.StatusError
		t.loadErr = err
		return
	}
	t.status = timeline.StatusReady
	t.loadErr = nil
	t.entries = entries
	t.resetEvents()
}

func (t *Terminal) resetEvents() {
	t.events = encryption.BuildAll(t.entries)
	t.index = 0
	t.cursor = 0
	t.showBanner = false
}

// Tick advances the boot and briefing sequences by one UI tick.
func (t *Terminal) Tick() {
	switch t.stage {
	case StageBoot:
		t.elapsed++
	case StageBriefing:
		t.elapsed++
		if t.elapsed >= briefingDone(len(BriefingLines), t.tm)+t.tm.briefingHold {
			t.showBanner = true
			t.enter(StagePrompt)
		}
	}
}

// BootDone reports whether every boot line is out and the minimum boot time
// has passed.
func (t *Terminal) BootDone() bool {
	return t.elapsed >= bootDone(len(BootLines), t.tm)
}

// KeyDown handles a key press. Key names are the core vocabulary plus the
// terminal keys above.
func (t *Terminal) KeyDown(key string) {
	key = core.Normalize(key)
	if key == KeyMute {
		t.sound.ToggleMute()
		return
	}

	switch t.stage {
	case StageBoot:
		t.bootKey(key)
	case StagePrompt:
		t.promptKey(key)
	case StageMinigame:
		if key == KeyEscape {
			t.finish(storage.OutcomeAborted)
			t.enter(StagePrompt)
			return
		}
		t.controls.TriggerDown(key)
	case StageVictory:
		if isSelect(key) {
			t.sound.Play(sound.CueBeep)
			t.showBanner = false
			t.enter(StagePrompt)
		}
	case StageExit:
		if isSelect(key) {
			t.sound.Play(sound.CueBeep)
			t.Restart()
		}
	}
}

// KeyUp handles a key release.
func (t *Terminal) KeyUp(key string) {
	t.controls.TriggerUp(key)
}

func (t *Terminal) bootKey(key string) {
	switch {
	case t.status == timeline.StatusError && key == KeyRetry:
		t.sound.Play(sound.CueBeep)
		t.status = timeline.StatusLoading
		t.loadErr = nil
		t.loadPending = true
	case t.status == timeline.StatusReady && t.BootDone():
		t.sound.Play(sound.CueKeystroke)
		t.enter(StageBriefing)
	}
}

func (t *Terminal) promptKey(key string) {
	opts := t.Options()
	switch key {
	case core.KeyUp, core.KeyW:
		t.sound.Play(sound.CueKeystroke)
		t.cursor = core.Wrap(t.cursor-1, 0, len(opts)-1)
	case core.KeyDown, core.KeyS:
		t.sound.Play(sound.CueKeystroke)
		t.cursor = core.Wrap(t.cursor+1, 0, len(opts)-1)
	case KeyEnter, core.KeySpace:
		t.sound.Play(sound.CueBeep)
		t.Choose(opts[core.Clamp(t.cursor, 0, len(opts)-1)])
	}
}

func isSelect(key string) bool {
	return key == KeyEnter || key == core.KeySpace
}

// Options lists the prompt answers available for the current event.
func (t *Terminal) Options() []Option {
	var opts []Option
	if len(t.events) > 0 && !t.isLast() {
		opts = append(opts, OptionContinue)
	}
	if t.CanDecrypt() {
		opts = append(opts, OptionDecrypt)
	}
	return append(opts, OptionExit)
}

// Cursor returns the highlighted prompt option.
func (t *Terminal) Cursor() Option {
	opts := t.Options()
	return opts[core.Clamp(t.cursor, 0, len(opts)-1)]
}

func (t *Terminal) isLast() bool {
	return t.index >= len(t.events)-1
}

// CanDecrypt reports whether the current event still has words to win.
func (t *Terminal) CanDecrypt() bool {
	ev, ok := t.Current()
	return ok && ev.Decryptable && ev.RevealedWords < ev.TotalWords
}

// Choose applies a prompt answer. Answers that are not on offer are ignored.
func (t *Terminal) Choose(o Option) {
	if t.stage != StagePrompt {
		return
	}
	switch o {
	case OptionContinue:
		t.showBanner = false
		if !t.isLast() {
			t.index++
		}
		t.cursor = 0
	case OptionDecrypt:
		if !t.CanDecrypt() {
			return
		}
		t.showBanner = false
		t.startMinigame()
	case OptionExit:
		t.enter(StageExit)
	}
}

func (t *Terminal) startMinigame() {
	def, ok := registry.Pick(t.rng, t.games)
	if !ok {
		return
	}
	ev := t.events[t.index]
	target := max(1, min(def.BaseTarget, ev.Remaining()))

	t.controls.Reset()
	t.controls.SetEnabled(true)
	t.gen++
	t.session = &Session{
		Definition: def,
		Target:     target,
		Lives:      t.cfg.Lives,
		gen:        t.gen,
		runner: def.New(engine.Options{
			Keys:      t.controls,
			Seed:      t.rng.Int63(),
			TickScale: t.cfg.TickScale,
		}),
	}
	t.enter(StageMinigame)
}

// Game reports the generation and tick interval of the running minigame.
func (t *Terminal) Game() (gen uint64, interval time.Duration, ok bool) {
	if t.session == nil {
		return 0, 0, false
	}
	return t.session.gen, t.session.runner.Interval(), true
}

// StepGame runs one minigame tick when gen is still the running session and
// applies its events in order. It reports whether a tick ran.
func (t *Terminal) StepGame(gen uint64) bool {
	if t.session == nil || t.session.gen != gen {
		return false
	}
	for _, ev := range t.session.runner.Step() {
		if t.session == nil {
			break
		}
		switch ev {
		case core.EventPoint:
			t.gainPoint()
		case core.EventLifeLost:
			t.loseLife()
		}
	}
	return true
}

// Frame returns the running minigame's rows.
func (t *Terminal) Frame() []string {
	if t.session == nil {
		return nil
	}
	return t.session.runner.Frame()
}

func (t *Terminal) gainPoint() {
	ev := encryption.RevealNextWord(t.events[t.index])
	t.events[t.index] = ev
	t.session.Points++
	if encryption.IsComplete(ev) || t.session.Points >= t.session.Target {
		t.sound.Play(sound.CueSuccess)
		t.finish(storage.OutcomeWon)
		t.enter(StageVictory)
	}
}

func (t *Terminal) loseLife() {
	t.sound.Play(sound.CueError)
	t.session.Lives--
	if t.session.Lives > 0 {
		return
	}
	t.events[t.index] = t.events[t.index].MarkUndecryptable()
	t.finish(storage.OutcomeLost)
	t.enter(StagePrompt)
}

// finish stops the running session and reports it.
func (t *Terminal) finish(outcome storage.Outcome) {
	s := t.session
	t.session = nil
	s.runner.Stop()
	t.controls.SetEnabled(false)
	t.last = outcome

	t.recorder.SaveSession(storage.Session{ //nolint:errcheck
		EventID:   t.events[t.index].ID,
		GameID:    s.Definition.ID,
		Points:    s.Points,
		Target:    s.Target,
		LivesLeft: max(0, s.Lives),
		Outcome:   outcome,
	})
}

// Restart goes back to the boot screen. Ready data is re-encrypted from
// scratch; otherwise the source is loaded again.
func (t *Terminal) Restart() {
	if t.session != nil {
		t.finish(storage.OutcomeAborted)
	}
	t.enter(StageBoot)
	t.sound.Play(sound.CueBoot)
	if t.status == timeline.StatusReady {
		t.resetEvents()
		return
	}
	t.status = timeline.StatusLoading
	t.loadErr = nil
	t.loadPending = true
}

func (t *Terminal) enter(s Stage) {
	t.stage = s
	t.elapsed = 0
	t.cursor = 0
}

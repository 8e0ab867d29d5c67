package app

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/papuso/internal/config"
	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/engine"
	"github.com/vovakirdan/papuso/internal/registry"
	"github.com/vovakirdan/papuso/internal/sound"
	"github.com/vovakirdan/papuso/internal/storage"
	"github.com/vovakirdan/papuso/internal/timeline"
)

// probe emits a point for every space press and loses a life for every s
// press.
func probe(base int) registry.Definition {
	v := engine.Variant[int]{
		Initial: func(*rand.Rand) int { return 0 },
		Update: func(s int, in core.Input) core.Result[int] {
			res := core.Result[int]{State: s + 1}
			if in.Keys.Consume(core.KeySpace) {
				res.Emit(core.EventPoint)
			}
			if in.Keys.Consume(core.KeyS) {
				res.Emit(core.EventLifeLost)
			}
			return res
		},
		Render: func(s int) []string { return []string{fmt.Sprintf("tick %03d", s)} },
		TickMs: 100,
	}
	return registry.Definition{
		ID:          "probe",
		Name:        "Probe",
		Description: "test game",
		Controls:    "space",
		BaseTarget:  base,
		TickMs:      100,
		Width:       8,
		Height:      1,
		New:         func(o engine.Options) engine.Runner { return engine.New(v, o) },
	}
}

// framed is probe drawn inside its own border, like the real minigames.
func framed(base int) registry.Definition {
	def := probe(base)
	v := engine.Variant[int]{
		Initial: func(*rand.Rand) int { return 0 },
		Update:  func(s int, _ core.Input) core.Result[int] { return core.Result[int]{State: s + 1} },
		Render: func(s int) []string {
			return core.WithBorder([]string{fmt.Sprintf("tick %03d", s)})
		},
		TickMs: 100,
	}
	def.New = func(o engine.Options) engine.Runner { return engine.New(v, o) }
	return def
}

type recorder struct {
	saved []storage.Session
	err   error
}

func (r *recorder) SaveSession(s storage.Session) (string, error) {
	r.saved = append(r.saved, s)
	return "id", r.err
}

type cues struct {
	sound.Nop
	played []sound.Cue
	hum    bool
}

func (c *cues) Play(cue sound.Cue) { c.played = append(c.played, cue) }
func (c *cues) StartHum()          { c.hum = true }
func (c *cues) StopHum()           { c.hum = false }

var testEntries = []timeline.Entry{
	{Title: "ENIAC", Year: "1946", Description: "Electronica"},
	{Title: "UNIX", Year: "1971", Description: "Bell Labs"},
}

type fixture struct {
	term  *Terminal
	rec   *recorder
	sound *cues
}

func testConfig() Config {
	return Config{
		UITick:        20 * time.Millisecond,
		BootStep:      40 * time.Millisecond,
		BootMin:       200 * time.Millisecond,
		BriefingDelay: 40 * time.Millisecond,
		BriefingStep:  20 * time.Millisecond,
		BriefingHold:  100 * time.Millisecond,
		Lives:         3,
	}
}

func newFixture(t *testing.T, base int) fixture {
	t.Helper()
	f := fixture{rec: &recorder{}, sound: &cues{}}
	f.term = New(testConfig(), Deps{
		Sound:    f.sound,
		Recorder: f.rec,
		Rand:     rand.New(rand.NewSource(1)),
		Games:    []registry.Definition{probe(base)},
	})
	return f
}

func ticks(term *Terminal, n int) {
	for range n {
		term.Tick()
	}
}

// toPrompt loads the test entries and runs boot and briefing to the prompt.
func (f fixture) toPrompt(t *testing.T) {
	t.Helper()
	f.term.TakeLoadRequest()
	f.term.SetData(testEntries, nil)
	ticks(f.term, 16)
	f.term.KeyDown(KeyEnter)
	ticks(f.term, 15)
	if f.term.Stage() != StagePrompt {
		t.Fatalf("stage = %v, want prompt", f.term.Stage())
	}
}

func (f fixture) press(t *testing.T, key string) {
	t.Helper()
	gen, _, ok := f.term.Game()
	if !ok {
		t.Fatalf("no minigame running")
	}
	f.term.KeyDown(key)
	f.term.StepGame(gen)
	f.term.KeyUp(key)
}

func TestVisibleCount(t *testing.T) {
	tests := []struct {
		elapsed, total, step, want int
	}{
		{-1, 5, 2, 0},
		{0, 5, 2, 1},
		{1, 5, 2, 1},
		{2, 5, 2, 2},
		{8, 5, 2, 5},
		{100, 5, 2, 5},
		{3, 0, 2, 0},
		{0, 4, 0, 4},
	}
	for _, tt := range tests {
		if got := VisibleCount(tt.elapsed, tt.total, tt.step); got != tt.want {
			t.Errorf("VisibleCount(%d, %d, %d) = %d, want %d", tt.elapsed, tt.total, tt.step, got, tt.want)
		}
	}
}

func TestConfigTicks(t *testing.T) {
	cfg := Config{UITick: 20 * time.Millisecond}
	for _, tt := range []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{20 * time.Millisecond, 1},
		{30 * time.Millisecond, 2},
		{180 * time.Millisecond, 9},
		{3500 * time.Millisecond, 175},
	} {
		if got := cfg.ticks(tt.d); got != tt.want {
			t.Errorf("ticks(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestFromConfig(t *testing.T) {
	c := config.Default()
	c.Difficulty = config.DifficultyHard
	got := FromConfig(c)
	if got.BootStep != 180*time.Millisecond || got.BootMin != 3*time.Second {
		t.Errorf("boot timings = %v/%v", got.BootStep, got.BootMin)
	}
	if got.BriefingHold != 3500*time.Millisecond || got.Lives != 5 {
		t.Errorf("briefing hold %v, lives %d", got.BriefingHold, got.Lives)
	}
	if got.TickScale != c.Difficulty.TickScale() {
		t.Errorf("tick scale = %v", got.TickScale)
	}
}

func TestBootSequence(t *testing.T) {
	f := newFixture(t, 2)
	term := f.term

	if term.Stage() != StageBoot || term.Status() != timeline.StatusLoading {
		t.Fatalf("initial stage %v status %v", term.Stage(), term.Status())
	}
	if !term.TakeLoadRequest() {
		t.Fatal("expected a pending load")
	}
	if term.TakeLoadRequest() {
		t.Fatal("load request should be taken once")
	}

	if n := strings.Count(strings.Join(term.View().Texts(), "\n"), "OK"); n != 0 {
		t.Errorf("boot lines with OK at tick 0 = %d, want 0", n)
	}

	ticks(term, 16)
	if !term.BootDone() {
		t.Fatal("boot should be done after max(8*2, 10) ticks")
	}
	term.KeyDown(KeyEnter)
	if term.Stage() != StageBoot {
		t.Fatal("key before data is ready must not leave boot")
	}

	term.SetData(testEntries, nil)
	view := term.View().Texts()
	if !slices.Contains(view, BootLines[len(BootLines)-1]) || !slices.Contains(view, textAnyKey) {
		t.Errorf("boot view missing final line or continue hint: %q", view)
	}
	term.KeyDown("x")
	if term.Stage() != StageBriefing {
		t.Errorf("stage = %v, want briefing", term.Stage())
	}
}

func TestBootWaitsForMinimum(t *testing.T) {
	f := newFixture(t, 2)
	f.term.SetData(testEntries, nil)
	ticks(f.term, 15)
	f.term.KeyDown(KeyEnter)
	if f.term.Stage() != StageBoot {
		t.Fatal("left boot before it was done")
	}
	f.term.Tick()
	f.term.KeyDown(KeyEnter)
	if f.term.Stage() != StageBriefing {
		t.Fatal("did not leave boot once done")
	}
}

func TestLoadErrorRetry(t *testing.T) {
	f := newFixture(t, 2)
	term := f.term
	term.TakeLoadRequest()
	term.SetData(nil, errors.New("boom"))
	if term.Status() != timeline.StatusError || term.LoadError() == nil {
		t.Fatalf("status %v err %v", term.Status(), term.LoadError())
	}
	if !slices.Contains(term.View().Texts(), textLoadError) {
		t.Error("error line not shown")
	}

	ticks(term, 20)
	term.KeyDown(KeyEnter)
	if term.Stage() != StageBoot {
		t.Fatal("error status must not leave boot")
	}
	term.KeyDown(KeyRetry)
	if term.Status() != timeline.StatusLoading || !term.TakeLoadRequest() {
		t.Error("retry should request a new load")
	}
}

func TestBriefingToPrompt(t *testing.T) {
	f := newFixture(t, 2)
	term := f.term
	term.SetData(testEntries, nil)
	ticks(term, 16)
	term.KeyDown(KeyEnter)

	// done at 2 + 8*1 = 10 ticks, then held 5
	ticks(term, 10)
	if got := term.View().Texts(); !slices.Contains(got, BriefingLines[len(BriefingLines)-1]) {
		t.Errorf("last briefing line missing at tick 10: %q", got)
	}
	ticks(term, 4)
	if term.Stage() != StageBriefing {
		t.Fatal("left briefing before the hold")
	}
	term.Tick()
	if term.Stage() != StagePrompt {
		t.Fatalf("stage = %v, want prompt", term.Stage())
	}
	view := term.View().Texts()
	if !slices.Contains(view, BannerLines[1]) {
		t.Error("banner should follow the briefing")
	}
	if !slices.Contains(view, "Secuencia 1 / 2") {
		t.Errorf("missing sequence header: %q", view)
	}
}

func TestBriefingLinesDelayed(t *testing.T) {
	f := newFixture(t, 2)
	term := f.term
	term.SetData(testEntries, nil)
	ticks(term, 16)
	term.KeyDown(KeyEnter)
	term.Tick()
	if n := len(term.View().Lines); n != 0 {
		t.Errorf("lines before the initial delay = %d", n)
	}
	term.Tick()
	if got := term.View().Texts(); len(got) != 1 || got[0] != BriefingLines[0] {
		t.Errorf("after delay = %q", got)
	}
}

func TestPromptOptions(t *testing.T) {
	f := newFixture(t, 2)
	f.toPrompt(t)
	term := f.term

	want := []Option{OptionContinue, OptionDecrypt, OptionExit}
	if got := term.Options(); !slices.Equal(got, want) {
		t.Errorf("options = %v, want %v", got, want)
	}
	term.Choose(OptionContinue)
	if term.Index() != 1 {
		t.Fatalf("index = %d", term.Index())
	}
	if slices.Contains(term.View().Texts(), BannerLines[1]) {
		t.Error("continue should hide the banner")
	}
	want = []Option{OptionDecrypt, OptionExit}
	if got := term.Options(); !slices.Equal(got, want) {
		t.Errorf("last event options = %v, want %v", got, want)
	}
	term.Choose(OptionContinue)
	if term.Index() != 1 {
		t.Error("continue past the last event moved the index")
	}
}

func TestPromptNavigation(t *testing.T) {
	f := newFixture(t, 2)
	f.toPrompt(t)
	term := f.term

	if term.Cursor() != OptionContinue {
		t.Fatalf("cursor = %v", term.Cursor())
	}
	term.KeyDown(core.KeyDown)
	if term.Cursor() != OptionDecrypt {
		t.Errorf("after down = %v", term.Cursor())
	}
	term.KeyDown(core.KeyUp)
	term.KeyDown(core.KeyUp)
	if term.Cursor() != OptionExit {
		t.Errorf("up should wrap to the last option, got %v", term.Cursor())
	}
	if !slices.Contains(term.View().Texts(), "> Salir") {
		t.Error("selected option not marked")
	}
	term.KeyDown(KeyEnter)
	if term.Stage() != StageExit {
		t.Errorf("stage = %v, want exit", term.Stage())
	}
	if !slices.Contains(f.sound.played, sound.CueKeystroke) || !slices.Contains(f.sound.played, sound.CueBeep) {
		t.Errorf("cues = %v", f.sound.played)
	}
}

func TestDecryptToVictory(t *testing.T) {
	f := newFixture(t, 2)
	f.toPrompt(t)
	term := f.term

	term.Choose(OptionDecrypt)
	if term.Stage() != StageMinigame {
		t.Fatalf("stage = %v", term.Stage())
	}
	s, _ := term.Session()
	if s.Target != 2 || s.Lives != 3 || s.Definition.ID != "probe" {
		t.Fatalf("session = %+v", s)
	}

	f.press(t, core.KeySpace)
	ev, _ := term.Current()
	if ev.RevealedWords != 1 {
		t.Errorf("revealed = %d, want 1", ev.RevealedWords)
	}
	if term.Stage() != StageMinigame {
		t.Fatal("won too early")
	}

	f.press(t, core.KeySpace)
	if term.Stage() != StageVictory {
		t.Fatalf("stage = %v, want victory", term.Stage())
	}
	if term.LastOutcome() != storage.OutcomeWon {
		t.Errorf("outcome = %v", term.LastOutcome())
	}
	if len(f.rec.saved) != 1 {
		t.Fatalf("saved %d sessions", len(f.rec.saved))
	}
	got := f.rec.saved[0]
	if got.GameID != "probe" || got.EventID != "evento-1" || got.Points != 2 || got.Target != 2 || got.Outcome != storage.OutcomeWon {
		t.Errorf("recorded = %+v", got)
	}
	if !slices.Contains(f.sound.played, sound.CueSuccess) {
		t.Error("no success cue")
	}

	term.KeyDown(KeyEnter)
	if term.Stage() != StagePrompt {
		t.Errorf("victory continue -> %v", term.Stage())
	}
	if _, ok := term.Session(); ok {
		t.Error("session should be gone")
	}
}

func TestTargetClampedToRemaining(t *testing.T) {
	f := newFixture(t, 100)
	f.toPrompt(t)
	term := f.term
	term.Choose(OptionDecrypt)
	s, _ := term.Session()
	if s.Target != 6 {
		t.Fatalf("target = %d, want the 6 words left", s.Target)
	}
	for range 6 {
		f.press(t, core.KeySpace)
	}
	ev, _ := term.Current()
	if ev.RevealedWords != ev.TotalWords {
		t.Errorf("revealed %d of %d", ev.RevealedWords, ev.TotalWords)
	}
	if term.Stage() != StageVictory {
		t.Errorf("stage = %v", term.Stage())
	}

	term.KeyDown(KeyEnter)
	if term.CanDecrypt() {
		t.Error("complete event must not be decryptable again")
	}
	if slices.Contains(term.Options(), OptionDecrypt) {
		t.Error("decrypt offered on a complete event")
	}
}

func TestLifeExhaustionLocksEvent(t *testing.T) {
	f := newFixture(t, 4)
	f.toPrompt(t)
	term := f.term

	term.Choose(OptionDecrypt)
	f.press(t, core.KeySpace)
	f.press(t, core.KeyS)
	f.press(t, core.KeyS)
	if s, _ := term.Session(); s.Lives != 1 {
		t.Fatalf("lives = %d, want 1", s.Lives)
	}
	f.press(t, core.KeyS)

	if term.Stage() != StagePrompt {
		t.Fatalf("stage = %v, want prompt", term.Stage())
	}
	ev, _ := term.Current()
	if ev.Decryptable {
		t.Error("event should be undecryptable")
	}
	if ev.RevealedWords != 1 {
		t.Errorf("revealed words changed to %d", ev.RevealedWords)
	}
	if slices.Contains(term.Options(), OptionDecrypt) {
		t.Error("decrypt still offered")
	}
	if !slices.Contains(term.View().Texts(), textUnavailable) {
		t.Error("missing unavailable footer")
	}
	if term.LastOutcome() != storage.OutcomeLost || f.rec.saved[0].LivesLeft != 0 {
		t.Errorf("outcome %v, saved %+v", term.LastOutcome(), f.rec.saved)
	}
	if n := strings.Count(fmt.Sprint(f.sound.played), sound.CueError.String()); n != 3 {
		t.Errorf("error cues = %d, want 3", n)
	}
}

func TestEscapeAborts(t *testing.T) {
	f := newFixture(t, 4)
	f.toPrompt(t)
	term := f.term

	before, _ := term.Current()
	term.Choose(OptionDecrypt)
	gen, _, _ := term.Game()
	term.KeyDown(KeyEscape)

	if term.Stage() != StagePrompt {
		t.Fatalf("stage = %v", term.Stage())
	}
	after, _ := term.Current()
	if after.RevealedWords != before.RevealedWords || !after.Decryptable {
		t.Errorf("abort changed the event: %+v", after)
	}
	if term.StepGame(gen) {
		t.Error("stale generation should not step")
	}
	if len(f.rec.saved) != 1 || f.rec.saved[0].Outcome != storage.OutcomeAborted {
		t.Errorf("saved = %+v", f.rec.saved)
	}
}

func TestGenerationAdvances(t *testing.T) {
	f := newFixture(t, 4)
	f.toPrompt(t)
	term := f.term

	term.Choose(OptionDecrypt)
	first, iv, _ := term.Game()
	if iv != 100*time.Millisecond {
		t.Errorf("interval = %v", iv)
	}
	term.KeyDown(KeyEscape)
	term.Choose(OptionDecrypt)
	second, _, _ := term.Game()
	if second == first {
		t.Fatal("generation reused")
	}
	if term.StepGame(first) || !term.StepGame(second) {
		t.Error("only the current generation may step")
	}
	if got := term.Frame(); len(got) != 1 || got[0] != "tick 001" {
		t.Errorf("frame = %q", got)
	}
}

func TestControlsOnlyDuringMinigame(t *testing.T) {
	controls := core.NewControls()
	term := New(testConfig(), Deps{Games: []registry.Definition{probe(2)}, Controls: controls})
	if controls.Enabled() {
		t.Fatal("controls enabled on boot")
	}
	term.SetData(testEntries, nil)
	ticks(term, 16)
	term.KeyDown(KeyEnter)
	ticks(term, 15)

	term.KeyDown(core.KeyA)
	if controls.Pressed(core.KeyA) {
		t.Error("prompt keys leaked into the controls")
	}
	term.Choose(OptionDecrypt)
	if !controls.Enabled() {
		t.Fatal("controls disabled in a minigame")
	}
	if !term.Prevented(core.KeyUp) || term.Prevented("q") {
		t.Error("unexpected prevented set")
	}
	if got := term.PreventedKeys(); !slices.Equal(got, controls.PreventedKeys()) || len(got) == 0 {
		t.Errorf("PreventedKeys() = %q during a minigame", got)
	}
	term.KeyDown(KeyEscape)
	if controls.Enabled() || term.Prevented(core.KeyUp) {
		t.Error("controls still live after abort")
	}
	if got := term.PreventedKeys(); got != nil {
		t.Errorf("PreventedKeys() = %q on the prompt", got)
	}
}

func TestRestart(t *testing.T) {
	f := newFixture(t, 2)
	f.toPrompt(t)
	term := f.term

	term.Choose(OptionDecrypt)
	f.press(t, core.KeySpace)
	f.press(t, core.KeySpace)
	term.KeyDown(KeyEnter)
	term.Choose(OptionContinue)
	term.Choose(OptionExit)
	if term.Stage() != StageExit {
		t.Fatalf("stage = %v", term.Stage())
	}
	if !slices.Contains(term.View().Texts(), textExitSafe) {
		t.Error("exit screen text missing")
	}

	term.KeyDown(KeyEnter)
	if term.Stage() != StageBoot {
		t.Fatalf("restart -> %v", term.Stage())
	}
	if term.TakeLoadRequest() {
		t.Error("ready data should not be reloaded")
	}
	events := term.Events()
	if term.Index() != 0 || events[0].RevealedWords != 0 {
		t.Errorf("restart kept progress: index %d revealed %d", term.Index(), events[0].RevealedWords)
	}
	if f.sound.played[len(f.sound.played)-1] != sound.CueBoot {
		t.Error("restart should replay the boot cue")
	}
}

func TestRestartReloadsFailedData(t *testing.T) {
	f := newFixture(t, 2)
	term := f.term
	term.TakeLoadRequest()
	term.SetData(nil, errors.New("offline"))
	term.Restart()
	if term.Status() != timeline.StatusLoading || !term.TakeLoadRequest() {
		t.Error("restart should reload after a failure")
	}
}

func TestNoEvents(t *testing.T) {
	f := newFixture(t, 2)
	term := f.term
	term.SetData([]timeline.Entry{}, nil)
	ticks(term, 16)
	term.KeyDown(KeyEnter)
	ticks(term, 15)

	if got := term.Options(); !slices.Equal(got, []Option{OptionExit}) {
		t.Errorf("options = %v", got)
	}
	if !slices.Contains(term.View().Texts(), textNoEvents) {
		t.Error("empty data message missing")
	}
	term.Choose(OptionDecrypt)
	if term.Stage() != StagePrompt {
		t.Error("decrypt with no events changed stage")
	}
}

func TestMinigameView(t *testing.T) {
	f := newFixture(t, 2)
	f.term.games = []registry.Definition{framed(2)}
	f.toPrompt(t)
	f.term.Choose(OptionDecrypt)

	view := f.term.View()
	if view.Stage != StageMinigame {
		t.Fatalf("stage = %v", view.Stage)
	}
	texts := view.Texts()
	for _, want := range []string{
		"0 / 6 palabras descifradas",
		"Minijuego activo: Probe",
		"Puntos: 0  Meta: 2  Vidas: 3",
		"|tick 000|",
		"Controles: space",
	} {
		if !slices.Contains(texts, want) {
			t.Errorf("minigame view missing %q in %q", want, texts)
		}
	}
	borders := 0
	for _, row := range texts {
		if strings.HasPrefix(row, "|+") || strings.HasPrefix(row, "||") {
			t.Errorf("frame drawn twice: %q", row)
		}
		if row == "+--------+" {
			borders++
		}
	}
	if borders != 2 {
		t.Errorf("frame border rows = %d, want 2", borders)
	}
}

func TestMuteToggle(t *testing.T) {
	f := newFixture(t, 2)
	f.term.KeyDown(KeyMute)
	if !f.term.Muted() {
		t.Fatal("m should mute")
	}
	if !slices.Contains(f.term.View().Texts(), textMuted) {
		t.Error("muted marker missing")
	}
	f.term.KeyDown(KeyMute)
	if f.term.Muted() {
		t.Error("second m should unmute")
	}
}

func TestStartAndClose(t *testing.T) {
	f := newFixture(t, 2)
	f.term.Start()
	f.term.Start()
	if !f.sound.hum {
		t.Error("hum not started")
	}
	if n := len(f.sound.played); n != 1 || f.sound.played[0] != sound.CueBoot {
		t.Errorf("cues = %v", f.sound.played)
	}

	f.toPrompt(t)
	f.term.Choose(OptionDecrypt)
	f.term.Close()
	if f.sound.hum {
		t.Error("hum still running")
	}
	if len(f.rec.saved) != 1 || f.rec.saved[0].Outcome != storage.OutcomeAborted {
		t.Errorf("close should record an abort, got %+v", f.rec.saved)
	}
}

func TestFetchUsesSource(t *testing.T) {
	term := New(testConfig(), Deps{})
	entries, err := term.Fetch(t.Context())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(entries) == 0 {
		t.Error("embedded timeline is empty")
	}
	if term.SourceName() != "data.json" {
		t.Errorf("source name = %q", term.SourceName())
	}
}

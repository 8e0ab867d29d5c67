package synth

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/papuso/internal/sound"
)

func drain(t *testing.T, st beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := st.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never ended")
	return 0
}

func TestSynthWithoutSpeaker(t *testing.T) {
	s := New(0, 0)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("cues panicked before Start: %v", r)
		}
	}()

	s.Play(sound.CueBeep)
	s.StartHum()
	s.StopHum()
	s.Stop()

	if !s.ToggleMute() || !s.Muted() {
		t.Error("mute should work before Start")
	}
}

func TestCueLengths(t *testing.T) {
	s := New(8000, 0.5)
	tests := []struct {
		cue      sound.Cue
		duration time.Duration
	}{
		{sound.CueKeystroke, 50 * time.Millisecond},
		{sound.CueBeep, 100 * time.Millisecond},
		{sound.CueSuccess, 400 * time.Millisecond},
		{sound.CueError, 300 * time.Millisecond},
		{sound.CueBoot, 1500 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.cue.String(), func(t *testing.T) {
			got := drain(t, s.cue(tc.cue))
			if expected := s.sr.N(tc.duration); got != expected {
				t.Errorf("samples = %d, expected %d", got, expected)
			}
		})
	}
}

func TestWaveSamples(t *testing.T) {
	tests := []struct {
		name     string
		wave     Wave
		phase    float64
		expected float64
	}{
		{"sine peak", WaveSine, 0.25, 1},
		{"square high", WaveSquare, 0.1, 1},
		{"square low", WaveSquare, 0.6, -1},
		{"saw start", WaveSaw, 0, -1},
		{"saw middle", WaveSaw, 0.5, 0},
		{"triangle peak", WaveTriangle, 0.5, 1},
		{"triangle trough", WaveTriangle, 0, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.wave.sample(tc.phase, nil); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("sample = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestEnvelopes(t *testing.T) {
	decay := ExpDecay(0.1, 0.01, time.Second)
	if got := decay(0); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("decay(0) = %v, expected 0.1", got)
	}
	if got := decay(2); got != 0.01 {
		t.Errorf("decay past the end = %v, expected 0.01", got)
	}

	swell := Swell(0.2, 0.01, 500*time.Millisecond, 1500*time.Millisecond)
	if swell(0) != 0 {
		t.Errorf("swell(0) = %v, expected 0", swell(0))
	}
	if got := swell(0.5); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("swell at the peak = %v, expected 0.2", got)
	}
}

func TestSweepEndsAtTarget(t *testing.T) {
	v := NewVoice(8000, WaveTriangle, 110, time.Second, Constant(1)).Sweep(110, 880)
	if got := v.freqAt(0); got != 110 {
		t.Errorf("start = %v, expected 110", got)
	}
	if got := v.freqAt(1); got != 880 {
		t.Errorf("end = %v, expected 880", got)
	}
	if mid := v.freqAt(0.5); mid <= 110 || mid >= 880 {
		t.Errorf("midpoint %v outside the sweep", mid)
	}
}

func TestFilters(t *testing.T) {
	hp := newFilter(1000, 8000, true)
	lp := newFilter(120, 8000, false)
	var h, l float64
	for i := 0; i < 8000; i++ {
		h = hp.apply(1)
		l = lp.apply(1)
	}
	if math.Abs(h) > 1e-3 {
		t.Errorf("high-pass of DC = %v, expected ~0", h)
	}
	if math.Abs(l-1) > 1e-3 {
		t.Errorf("low-pass of DC = %v, expected ~1", l)
	}
}

func TestEndlessVoiceKeepsStreaming(t *testing.T) {
	v := NewVoice(8000, WaveSaw, 60, 0, Constant(0.03))
	buf := make([][2]float64, 256)
	for i := 0; i < 100; i++ {
		if n, ok := v.Stream(buf); n != len(buf) || !ok {
			t.Fatalf("endless voice stopped at chunk %d", i)
		}
	}
}

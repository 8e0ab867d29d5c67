// Package synth plays sound cues through the system speaker with gopxl/beep.
// Only the binary imports it, so hosts and tests stay free of audio drivers.
package synth

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/papuso/internal/sound"
)

const (
	DefaultSampleRate = 44100
	DefaultVolume     = 0.35
)

// Synth renders cues through the system speaker with gopxl/beep. All voices
// feed one mixer behind a master volume used for muting.
type Synth struct {
	mu      sync.Mutex
	sr      beep.SampleRate
	mixer   *beep.Mixer
	master  *effects.Volume
	hum     *beep.Ctrl
	muted   bool
	started bool
}

// New creates a synth. Non-positive arguments fall back to the defaults.
func New(sampleRate int, volume float64) *Synth {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if volume <= 0 {
		volume = DefaultVolume
	}
	mixer := &beep.Mixer{}
	return &Synth{
		sr:     beep.SampleRate(sampleRate),
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2, Volume: math.Log2(volume)},
	}
}

// Start opens the speaker. Calling it twice is a no-op.
func (s *Synth) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if err := speaker.Init(s.sr, s.sr.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("synth: init speaker: %w", err)
	}
	s.master.Silent = s.muted
	speaker.Play(s.master)
	s.started = true
	return nil
}

// Stop silences every voice and closes the speaker.
func (s *Synth) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.hum = nil
	s.started = false
}

// Play mixes in a one-shot cue.
func (s *Synth) Play(c sound.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.muted {
		return
	}
	s.add(s.cue(c))
}

func (s *Synth) add(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Synth) tone(freq float64, d time.Duration, w Wave) beep.Streamer {
	return NewVoice(s.sr, w, freq, d, ExpDecay(0.1, 0.01, d))
}

// cue builds the streamer for c. Every cue is finite.
func (s *Synth) cue(c sound.Cue) beep.Streamer {
	switch c {
	case sound.CueKeystroke:
		return NewVoice(s.sr, WaveNoise, 0, 50*time.Millisecond, ExpDecay(0.15, 0.01, 30*time.Millisecond)).
			HighPass(1000)
	case sound.CueSuccess:
		return beep.Seq(
			s.tone(440, 100*time.Millisecond, WaveSine),
			s.tone(554, 100*time.Millisecond, WaveSine),
			s.tone(659, 200*time.Millisecond, WaveSine),
		)
	case sound.CueError:
		return s.tone(150, 300*time.Millisecond, WaveSaw)
	case sound.CueBoot:
		return NewVoice(s.sr, WaveTriangle, 110, 1500*time.Millisecond,
			Swell(0.2, 0.01, 500*time.Millisecond, 1500*time.Millisecond)).
			Sweep(110, 880)
	default:
		return s.tone(800, 100*time.Millisecond, WaveSquare)
	}
}

// StartHum loops a filtered 60 Hz sawtooth under everything else.
func (s *Synth) StartHum() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.muted || s.hum != nil {
		return
	}
	s.hum = &beep.Ctrl{Streamer: NewVoice(s.sr, WaveSaw, 60, 0, Constant(0.03)).LowPass(120)}
	s.add(s.hum)
}

// StopHum pauses the hum loop.
func (s *Synth) StopHum() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hum == nil {
		return
	}
	speaker.Lock()
	s.hum.Paused = true
	speaker.Unlock()
	s.hum = nil
}

// ToggleMute flips the master volume between silent and the base volume.
func (s *Synth) ToggleMute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.muted = !s.muted
	if s.started {
		speaker.Lock()
		s.master.Silent = s.muted
		speaker.Unlock()
	}
	return s.muted
}

func (s *Synth) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

var _ sound.Service = (*Synth)(nil)

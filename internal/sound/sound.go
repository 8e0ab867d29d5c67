// Package sound defines the cue service the terminal plays through. The
// speaker-backed implementation lives in internal/sound/synth.
//
// Hosts own the lifecycle: Start opens the audio device, Stop releases it.
// Every cue is fire-and-forget and silently dropped when the service is
// muted or was never started.
package sound

import "sync"

// Cue names a short sound effect.
type Cue int

const (
	CueKeystroke Cue = iota // mechanical click on navigation
	CueBeep                 // generic UI confirmation
	CueSuccess              // rising arpeggio on victory
	CueError                // low buzz on a lost life
	CueBoot                 // capacitor charge sweep on boot
)

func (c Cue) String() string {
	switch c {
	case CueKeystroke:
		return "keystroke"
	case CueBeep:
		return "beep"
	case CueSuccess:
		return "success"
	case CueError:
		return "error"
	case CueBoot:
		return "boot"
	default:
		return "unknown"
	}
}

// Service is the sound backend used by the terminal.
type Service interface {
	Start() error
	Stop()
	Play(c Cue)
	// StartHum starts the mains hum loop; it is a no-op if already running.
	StartHum()
	StopHum()
	// ToggleMute flips the mute state and returns the new value.
	ToggleMute() bool
	Muted() bool
}

// Nop is a silent Service for tests, SSH sessions and web clients. It only
// tracks the mute flag.
type Nop struct {
	mu    sync.Mutex
	muted bool
}

func (*Nop) Start() error { return nil }
func (*Nop) Stop()        {}
func (*Nop) Play(Cue)     {}
func (*Nop) StartHum()    {}
func (*Nop) StopHum()     {}

func (n *Nop) ToggleMute() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.muted = !n.muted
	return n.muted
}

func (n *Nop) Muted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.muted
}

var _ Service = (*Nop)(nil)

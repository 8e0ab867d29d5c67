package synth

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// sample evaluates a periodic wave at phase p in [0, 1).
func (w Wave) sample(p float64, rng *rand.Rand) float64 {
	switch w {
	case WaveSquare:
		if p < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*p - 1
	case WaveTriangle:
		return 1 - 4*math.Abs(p-0.5)
	case WaveNoise:
		return rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

// Envelope returns the gain at time t seconds into a voice.
type Envelope func(t float64) float64

// Constant holds a fixed gain.
func Constant(gain float64) Envelope {
	return func(float64) float64 { return gain }
}

// ExpDecay ramps exponentially from start to end over d.
func ExpDecay(start, end float64, d time.Duration) Envelope {
	secs := d.Seconds()
	return func(t float64) float64 {
		if t >= secs {
			return end
		}
		return start * math.Pow(end/start, t/secs)
	}
}

// Swell rises linearly to peak over attack, then decays exponentially to
// floor by total.
func Swell(peak, floor float64, attack, total time.Duration) Envelope {
	a := attack.Seconds()
	decay := ExpDecay(peak, floor, total-attack)
	return func(t float64) float64 {
		if t < a {
			return peak * t / a
		}
		return decay(t - a)
	}
}

// Voice is a finite oscillator implementing beep.Streamer. Frequency may
// change over time; the phase accumulates so sweeps stay continuous.
type Voice struct {
	sr     beep.SampleRate
	wave   Wave
	freqAt func(t float64) float64
	gainAt Envelope
	filter filter
	rng    *rand.Rand

	phase float64
	pos   int
	n     int // total samples, 0 for endless
}

// NewVoice builds a voice of duration d (0 for endless) at a fixed frequency.
func NewVoice(sr beep.SampleRate, wave Wave, freq float64, d time.Duration, env Envelope) *Voice {
	return &Voice{
		sr:     sr,
		wave:   wave,
		freqAt: func(float64) float64 { return freq },
		gainAt: env,
		rng:    rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
		n:      sr.N(d),
	}
}

// Sweep makes the frequency glide exponentially from f0 to f1 over the
// voice's duration.
func (v *Voice) Sweep(f0, f1 float64) *Voice {
	secs := float64(v.n) / float64(v.sr)
	v.freqAt = func(t float64) float64 {
		if secs <= 0 || t >= secs {
			return f1
		}
		return f0 * math.Pow(f1/f0, t/secs)
	}
	return v
}

// HighPass runs the output through a one-pole high-pass filter.
func (v *Voice) HighPass(cutoff float64) *Voice {
	v.filter = newFilter(cutoff, float64(v.sr), true)
	return v
}

// LowPass runs the output through a one-pole low-pass filter.
func (v *Voice) LowPass(cutoff float64) *Voice {
	v.filter = newFilter(cutoff, float64(v.sr), false)
	return v
}

func (v *Voice) Stream(samples [][2]float64) (int, bool) {
	if v.n > 0 && v.pos >= v.n {
		return 0, false
	}
	count := len(samples)
	if v.n > 0 {
		count = min(count, v.n-v.pos)
	}
	for i := 0; i < count; i++ {
		t := float64(v.pos) / float64(v.sr)
		s := v.wave.sample(v.phase, v.rng)
		if v.filter != nil {
			s = v.filter.apply(s)
		}
		s *= v.gainAt(t)

		samples[i][0] = s
		samples[i][1] = s

		v.phase += v.freqAt(t) / float64(v.sr)
		v.phase -= math.Floor(v.phase)
		v.pos++
	}
	return count, true
}

func (v *Voice) Err() error { return nil }

type filter interface {
	apply(x float64) float64
}

// onePole is the classic RC filter pair.
type onePole struct {
	alpha    float64
	highPass bool
	prevIn   float64
	prevOut  float64
}

func newFilter(cutoff, rate float64, highPass bool) *onePole {
	rc := 1 / (2 * math.Pi * cutoff)
	dt := 1 / rate
	alpha := dt / (rc + dt)
	if highPass {
		alpha = rc / (rc + dt)
	}
	return &onePole{alpha: alpha, highPass: highPass}
}

func (f *onePole) apply(x float64) float64 {
	if f.highPass {
		f.prevOut = f.alpha * (f.prevOut + x - f.prevIn)
	} else {
		f.prevOut += f.alpha * (x - f.prevOut)
	}
	f.prevIn = x
	return f.prevOut
}

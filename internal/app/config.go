package app

import (
	"time"

	"github.com/vovakirdan/papuso/internal/config"
)

// Config holds the terminal's sequencing parameters.
type Config struct {
	UITick        time.Duration
	BootStep      time.Duration
	BootMin       time.Duration
	BriefingDelay time.Duration
	BriefingStep  time.Duration
	BriefingHold  time.Duration
	Lives         int
	// TickScale multiplies every minigame interval.
	TickScale float64
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return FromConfig(config.Default())
}

// FromConfig converts the loaded configuration.
func FromConfig(c config.Config) Config {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return Config{
		UITick:        c.App.UITick(),
		BootStep:      ms(c.App.BootStepMs),
		BootMin:       ms(c.App.BootMinMs),
		BriefingDelay: ms(c.App.BriefingDelayMs),
		BriefingStep:  ms(c.App.BriefingStepMs),
		BriefingHold:  ms(c.App.BriefingHoldMs),
		Lives:         c.App.Lives,
		TickScale:     c.Difficulty.TickScale(),
	}
}

// timings is Config expressed in UI ticks.
type timings struct {
	bootStep      int
	bootMin       int
	briefingDelay int
	briefingStep  int
	briefingHold  int
}

func (c Config) timings() timings {
	return timings{
		bootStep:      c.ticks(c.BootStep),
		bootMin:       c.ticks(c.BootMin),
		briefingDelay: c.ticks(c.BriefingDelay),
		briefingStep:  c.ticks(c.BriefingStep),
		briefingHold:  c.ticks(c.BriefingHold),
	}
}

// ticks rounds d up to whole UI ticks.
func (c Config) ticks(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	if c.UITick <= 0 {
		return int(d / time.Millisecond)
	}
	return int((d + c.UITick - 1) / c.UITick)
}

func (c Config) normalized() Config {
	if c.UITick <= 0 {
		c.UITick = 20 * time.Millisecond
	}
	if c.Lives <= 0 {
		c.Lives = 5
	}
	if c.TickScale <= 0 {
		c.TickScale = 1
	}
	return c
}

package app

import (
	"github.com/vovakirdan/papuso/internal/config"
	"github.com/vovakirdan/papuso/internal/engine"
	"github.com/vovakirdan/papuso/internal/registry"
)

// ApplyOverrides returns a copy of defs with the configured metadata applied.
// Disabled games are dropped. The input slice is left untouched.
func ApplyOverrides(defs []registry.Definition, overrides map[string]config.GameOverride) []registry.Definition {
	out := make([]registry.Definition, 0, len(defs))
	for _, d := range defs {
		o, ok := overrides[d.ID]
		if !ok {
			out = append(out, d)
			continue
		}
		if o.Disabled {
			continue
		}
		if o.Name != "" {
			d.Name = o.Name
		}
		if o.Description != "" {
			d.Description = o.Description
		}
		if o.BaseTarget > 0 {
			d.BaseTarget = o.BaseTarget
		}
		if o.TickMs > 0 && o.TickMs != d.TickMs {
			d = retime(d, o.TickMs)
		}
		out = append(out, d)
	}
	return out
}

// retime makes d's loops tick every tickMs by folding the ratio into the
// engine's tick scale.
func retime(d registry.Definition, tickMs int) registry.Definition {
	base := d.TickMs
	if base <= 0 {
		base = engine.DefaultTickMs
	}
	ratio := float64(tickMs) / float64(base)
	newLoop := d.New
	d.New = func(opts engine.Options) engine.Runner {
		scale := opts.TickScale
		if scale <= 0 {
			scale = 1
		}
		opts.TickScale = scale * ratio
		return newLoop(opts)
	}
	d.TickMs = tickMs
	return d
}

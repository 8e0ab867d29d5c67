// Package dodge implements a falling-items minigame: catch the good ones,
// avoid the bad ones.
package dodge

import (
	"math/rand"

	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/engine"
	"github.com/vovakirdan/papuso/internal/registry"
)

const (
	Width  = 40
	Height = 24
	TickMs = 120

	SpawnChance = 0.35
	GoodChance  = 0.3
)

// ControlsHelp is the one-line control hint shown under the board.
const ControlsHelp = "Flechas o A/D para mover"

// Kind tells good items from bad ones.
type Kind int

const (
	Bad Kind = iota
	Good
)

// Item is a falling object.
type Item struct {
	Pos  core.Point
	Kind Kind
}

// State is the complete Dodge simulation state.
type State struct {
	PlayerX int
	Items   []Item
	Tick    int
}

// Initial centres the player with an empty sky.
func Initial(*rand.Rand) State {
	return State{PlayerX: Width / 2}
}

// Update moves the player, drops every item one row, resolves catches on the
// bottom row and maybe spawns a new item.
func Update(s State, in core.Input) core.Result[State] {
	var res core.Result[State]

	if in.AnyPressed(core.KeyLeft, core.KeyA) {
		s.PlayerX--
	}
	if in.AnyPressed(core.KeyRight, core.KeyD) {
		s.PlayerX++
	}
	s.PlayerX = core.Clamp(s.PlayerX, 0, Width-1)

	items := make([]Item, 0, len(s.Items)+1)
	for _, it := range s.Items {
		it.Pos.Y++
		if it.Pos.Y == Height-1 && it.Pos.X == s.PlayerX {
			if it.Kind == Good {
				res.Emit(core.EventPoint)
			} else {
				res.Emit(core.EventLifeLost)
			}
			continue
		}
		if it.Pos.Y < Height {
			items = append(items, it)
		}
	}

	if in.Rand.Float64() < SpawnChance {
		kind := Bad
		if in.Rand.Float64() < GoodChance {
			kind = Good
		}
		items = append(items, Item{
			Pos:  core.Point{X: core.RandomInt(in.Rand, 0, Width-1), Y: 0},
			Kind: kind,
		})
	}

	s.Items = items
	s.Tick++
	res.State = s
	return res
}

// Render draws good items as '.', bad ones as 'X' and the player on the
// bottom row.
func Render(s State) []string {
	g := core.NewGrid(Width, Height, ' ')
	for _, it := range s.Items {
		glyph := 'X'
		if it.Kind == Good {
			glyph = '.'
		}
		g.Set(it.Pos.X, it.Pos.Y, glyph)
	}
	g.Set(s.PlayerX, Height-1, '@')
	return core.WithBorder(g.Rows())
}

// Variant returns the engine descriptor.
func Variant() engine.Variant[State] {
	return engine.Variant[State]{Initial: Initial, Update: Update, Render: Render, TickMs: TickMs}
}

func init() {
	registry.Register(registry.Definition{
		ID:          "dodge",
		Name:        "Dodge",
		Description: "Esquiva objetos que caen por filas.",
		Controls:    ControlsHelp,
		BaseTarget:  20,
		TickMs:      TickMs,
		Width:       Width,
		Height:      Height,
		Order:       3,
		New: func(opts engine.Options) engine.Runner {
			return engine.New(Variant(), opts)
		},
	})
}

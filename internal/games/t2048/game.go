// Package t2048 implements Binary 2048: slide to merge powers of two, one
// point per merge.
package t2048

import (
	"math/rand"
	"strconv"

	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/engine"
	"github.com/vovakirdan/papuso/internal/registry"
)

const (
	Width  = 26
	Height = 12
	TickMs = 150

	// FourChance is the probability a spawned tile is a 4 instead of a 2.
	FourChance = 0.1

	originX = 5
	originY = 2
	cellW   = 4
	cellH   = 2
)

// ControlsHelp is the one-line control hint shown under the board.
const ControlsHelp = "WASD o Flechas para deslizar"

// StuckHint is drawn under the board once no slide can change it.
const StuckHint = "sin movimientos"

// State is the complete 2048 simulation state.
type State struct {
	Board Board
}

// Initial starts a board with two random tiles.
func Initial(rng *rand.Rand) State {
	var b Board
	b = addTile(b, rng)
	b = addTile(b, rng)
	return State{Board: b}
}

func addTile(b Board, rng *rand.Rand) Board {
	cells := EmptyCells(b)
	if len(cells) == 0 {
		return b
	}
	cell := cells[rng.Intn(len(cells))]
	v := 2
	if rng.Float64() >= 1-FourChance {
		v = 4
	}
	b[cell[0]][cell[1]] = v
	return b
}

var directions = []struct {
	dir  Direction
	keys []string
}{
	{DirUp, []string{core.KeyW, core.KeyUp}},
	{DirDown, []string{core.KeyS, core.KeyDown}},
	{DirLeft, []string{core.KeyA, core.KeyLeft}},
	{DirRight, []string{core.KeyD, core.KeyRight}},
}

// Update applies at most one slide per tick, checking up, down, left and
// right in that order. A slide that changes the board spawns a tile and
// scores one point per merge.
func Update(s State, in core.Input) core.Result[State] {
	var res core.Result[State]
	res.State = s

	for _, d := range directions {
		if !in.ConsumeAny(d.keys...) {
			continue
		}
		b, merges, moved := Slide(s.Board, d.dir)
		if moved {
			res.State.Board = addTile(b, in.Rand)
			for range merges {
				res.Emit(core.EventPoint)
			}
		}
		break
	}
	return res
}

// Render lays the tiles out on a fixed 26x12 frame; empty cells are '.'.
func Render(s State) []string {
	g := core.NewGrid(Width, Height, ' ')
	for r, row := range s.Board {
		for c, v := range row {
			text := "."
			if v != 0 {
				text = strconv.Itoa(v)
			}
			g.DrawText(originX+c*cellW, originY+r*cellH, text)
		}
	}
	if !CanMove(s.Board) {
		g.DrawText((Width-len(StuckHint))/2, Height-2, StuckHint)
	}
	return core.WithBorder(g.Rows())
}

// Variant returns the engine descriptor.
func Variant() engine.Variant[State] {
	return engine.Variant[State]{Initial: Initial, Update: Update, Render: Render, TickMs: TickMs}
}

func init() {
	registry.Register(registry.Definition{
		ID:          "2048",
		Name:        "Binary 2048",
		Description: "Combina potencias de 2 para optimizar el espacio.",
		Controls:    ControlsHelp,
		BaseTarget:  20,
		TickMs:      TickMs,
		Width:       Width,
		Height:      Height,
		Order:       8,
		New: func(opts engine.Options) engine.Runner {
			return engine.New(Variant(), opts)
		},
	})
}

// Package snake implements a wrapping Snake: eat data bits, never bite
// yourself.
package snake

import (
	"math/rand"

	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/engine"
	"github.com/vovakirdan/papuso/internal/registry"
)

const (
	Width  = 50
	Height = 24
	TickMs = 140
)

// ControlsHelp is the one-line control hint shown under the board.
const ControlsHelp = "WASD o Flechas para mover"

// State is the complete Snake simulation state. Body[0] is the head.
type State struct {
	Body []core.Point
	Food core.Point
	Dir  core.Vec
}

// Initial places a three-segment snake heading right and drops the first
// food pellet.
func Initial(rng *rand.Rand) State {
	body := []core.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}
	return State{
		Body: body,
		Food: spawnFood(rng, body, body[0]),
		Dir:  core.Vec{DX: 1},
	}
}

// spawnFood picks a uniformly random free cell. With no free cell left the
// food stays at fallback.
func spawnFood(rng *rand.Rand, body []core.Point, fallback core.Point) core.Point {
	free := make([]core.Point, 0, Width*Height-len(body))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if p := (core.Point{X: x, Y: y}); !occupies(body, p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return fallback
	}
	return free[rng.Intn(len(free))]
}

func occupies(body []core.Point, p core.Point) bool {
	for _, b := range body {
		if b == p {
			return true
		}
	}
	return false
}

// Update turns (only perpendicular to the current heading), advances the
// head and resolves food and self collisions. A bite restarts the game.
func Update(s State, in core.Input) core.Result[State] {
	var res core.Result[State]

	dir := s.Dir
	if in.AnyPressed(core.KeyW, core.KeyUp) && s.Dir.DY == 0 {
		dir = core.Vec{DY: -1}
	}
	if in.AnyPressed(core.KeyS, core.KeyDown) && s.Dir.DY == 0 {
		dir = core.Vec{DY: 1}
	}
	if in.AnyPressed(core.KeyA, core.KeyLeft) && s.Dir.DX == 0 {
		dir = core.Vec{DX: -1}
	}
	if in.AnyPressed(core.KeyD, core.KeyRight) && s.Dir.DX == 0 {
		dir = core.Vec{DX: 1}
	}

	head := core.WrapPoint(s.Body[0].Add(dir), Width, Height)
	if occupies(s.Body, head) {
		res.Emit(core.EventLifeLost)
		res.State = Initial(in.Rand)
		return res
	}

	body := make([]core.Point, 0, len(s.Body)+1)
	body = append(body, head)
	body = append(body, s.Body...)

	food := s.Food
	if head == food {
		res.Emit(core.EventPoint)
		food = spawnFood(in.Rand, body, food)
	} else {
		body = body[:len(body)-1]
	}

	res.State = State{Body: body, Food: food, Dir: dir}
	return res
}

// Render draws the food as '*', the head as '@' and the rest as 'o'.
func Render(s State) []string {
	g := core.NewGrid(Width, Height, ' ')
	g.Set(s.Food.X, s.Food.Y, '*')
	for i, p := range s.Body {
		glyph := 'o'
		if i == 0 {
			glyph = '@'
		}
		g.Set(p.X, p.Y, glyph)
	}
	return core.WithBorder(g.Rows())
}

// Variant returns the engine descriptor.
func Variant() engine.Variant[State] {
	return engine.Variant[State]{Initial: Initial, Update: Update, Render: Render, TickMs: TickMs}
}

func init() {
	registry.Register(registry.Definition{
		ID:          "snake",
		Name:        "Snake Parser",
		Description: "Recolecta bits de datos sin chocar con las paredes.",
		Controls:    ControlsHelp,
		BaseTarget:  12,
		TickMs:      TickMs,
		Width:       Width,
		Height:      Height,
		Order:       5,
		New: func(opts engine.Options) engine.Runner {
			return engine.New(Variant(), opts)
		},
	})
}

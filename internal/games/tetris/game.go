// Package tetris implements a small falling-block puzzle. Every lock that
// clears at least one row scores a single point.
package tetris

import (
	"math/rand"

	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/engine"
	"github.com/vovakirdan/papuso/internal/registry"
)

const (
	Width  = 12
	Height = 14
	TickMs = 150

	// DropEvery is how many ticks pass between gravity steps.
	DropEvery = 5
)

// ControlsHelp is the one-line control hint shown under the board.
const ControlsHelp = "WASD/Flechas: mover/rotar"

// Shape is a tetromino as four cell offsets around its pivot.
type Shape [4]core.Point

// Shapes lists the available pieces: O, I, T, L and J.
var Shapes = []Shape{
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
	{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: -1}},
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: -1}},
}

// Rotate turns the shape a quarter clockwise around its pivot.
func (sh Shape) Rotate() Shape {
	var out Shape
	for i, p := range sh {
		out[i] = core.Point{X: -p.Y, Y: p.X}
	}
	return out
}

func (sh Shape) top() int {
	m := 0
	for _, p := range sh {
		m = core.Min(m, p.Y)
	}
	return m
}

// Piece is the falling tetromino.
type Piece struct {
	Shape Shape
	Pos   core.Point
}

// Cells returns the board coordinates the piece covers.
func (p Piece) Cells() [4]core.Point {
	var out [4]core.Point
	for i, c := range p.Shape {
		out[i] = core.Point{X: c.X + p.Pos.X, Y: c.Y + p.Pos.Y}
	}
	return out
}

// Board holds locked cells. It is an array so State copies stay independent.
type Board [Height][Width]bool

// State is the complete Tetris simulation state.
type State struct {
	Board    Board
	Active   Piece
	NextDrop int
}

// Initial starts an empty board with a random piece.
func Initial(rng *rand.Rand) State {
	return State{Active: spawn(rng), NextDrop: DropEvery}
}

// spawn centres a random shape on the top row with every cell inside the
// board.
func spawn(rng *rand.Rand) Piece {
	sh := Shapes[rng.Intn(len(Shapes))]
	return Piece{Shape: sh, Pos: core.Point{X: Width / 2, Y: -sh.top()}}
}

// Fits reports whether p lies inside the board without overlapping locked
// cells.
func (b *Board) Fits(p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= Width || c.Y < 0 || c.Y >= Height || b[c.Y][c.X] {
			return false
		}
	}
	return true
}

func (b *Board) lock(p Piece) {
	for _, c := range p.Cells() {
		if c.Y >= 0 && c.Y < Height && c.X >= 0 && c.X < Width {
			b[c.Y][c.X] = true
		}
	}
}

// clearRows removes full rows, shifting everything above down, and returns
// how many were removed.
func (b *Board) clearRows() int {
	cleared := 0
	for y := Height - 1; y >= 0; {
		if !full(b[y]) {
			y--
			continue
		}
		for r := y; r > 0; r-- {
			b[r] = b[r-1]
		}
		b[0] = [Width]bool{}
		cleared++
	}
	return cleared
}

func full(row [Width]bool) bool {
	for _, c := range row {
		if !c {
			return false
		}
	}
	return true
}

// Update applies one shift, one rotation and gravity, then locks the piece
// when it cannot fall further.
func Update(s State, in core.Input) core.Result[State] {
	var res core.Result[State]
	b := s.Board

	dx := 0
	if in.ConsumeAny(core.KeyA, core.KeyLeft) {
		dx = -1
	}
	if in.ConsumeAny(core.KeyD, core.KeyRight) {
		dx = 1
	}
	if dx != 0 {
		moved := s.Active
		moved.Pos.X += dx
		if b.Fits(moved) {
			s.Active = moved
		}
	}

	if in.ConsumeAny(core.KeyW, core.KeyUp) {
		turned := s.Active
		turned.Shape = turned.Shape.Rotate()
		if b.Fits(turned) {
			s.Active = turned
		}
	}

	if s.NextDrop > 0 && !in.ConsumeAny(core.KeyS, core.KeyDown) {
		s.NextDrop--
		res.State = s
		return res
	}

	s.NextDrop = DropEvery
	fallen := s.Active
	fallen.Pos.Y++
	if b.Fits(fallen) {
		s.Active = fallen
		res.State = s
		return res
	}

	b.lock(s.Active)
	if b.clearRows() > 0 {
		res.Emit(core.EventPoint)
	}
	s.Board = b
	s.Active = spawn(in.Rand)
	if !b.Fits(s.Active) {
		res.Emit(core.EventLifeLost)
		res.State = Initial(in.Rand)
		return res
	}

	res.State = s
	return res
}

// Render draws locked cells as '#' and the falling piece as 'O'.
func Render(s State) []string {
	g := core.NewGrid(Width, Height, ' ')
	for y, row := range s.Board {
		for x, filled := range row {
			if filled {
				g.Set(x, y, '#')
			}
		}
	}
	for _, c := range s.Active.Cells() {
		g.Set(c.X, c.Y, 'O')
	}
	return core.WithBorder(g.Rows())
}

// Variant returns the engine descriptor.
func Variant() engine.Variant[State] {
	return engine.Variant[State]{Initial: Initial, Update: Update, Render: Render, TickMs: TickMs}
}

func init() {
	registry.Register(registry.Definition{
		ID:          "tetris",
		Name:        "Tetris Grid",
		Description: "Ordena bloques de codigo para liberar memoria.",
		Controls:    ControlsHelp,
		BaseTarget:  4,
		TickMs:      TickMs,
		Width:       Width,
		Height:      Height,
		Order:       6,
		New: func(opts engine.Options) engine.Runner {
			return engine.New(Variant(), opts)
		},
	})
}

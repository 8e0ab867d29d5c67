// Package breakout implements the Breakout minigame: a held-key paddle, a
// served ball and three rows of blocks that regenerate once cleared.
package breakout

import (
	"math/rand"

	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/engine"
	"github.com/vovakirdan/papuso/internal/registry"
)

const (
	Width  = 24
	Height = 12
	TickMs = 90

	BlockRows   = 3
	BlockStartY = 1
	PaddleWidth = 5
	ServeDelay  = 8
)

// ControlsHelp is the one-line control hint shown under the board.
const ControlsHelp = "Flechas o A/D para mover"

// State is the complete Breakout simulation state.
type State struct {
	PaddleX    int
	Ball       core.Point
	Vel        core.Vec
	ServeDelay int
	Blocks     [BlockRows][Width]bool
}

func fullBlocks() [BlockRows][Width]bool {
	var b [BlockRows][Width]bool
	for r := range b {
		for c := range b[r] {
			b[r][c] = true
		}
	}
	return b
}

// Initial returns the opening layout with the ball waiting to serve.
func Initial(*rand.Rand) State {
	return State{
		PaddleX:    (Width - PaddleWidth) / 2,
		Ball:       core.Point{X: Width / 2, Y: Height - 3},
		Vel:        core.Vec{DX: 1, DY: -1},
		ServeDelay: ServeDelay,
		Blocks:     fullBlocks(),
	}
}

// resetBall puts the ball back above the paddle with a random horizontal
// direction and a fresh serve countdown.
func resetBall(s State, rng *rand.Rand) State {
	s.Ball = core.Point{X: Width / 2, Y: Height - 3}
	s.Vel = core.Vec{DX: -1, DY: -1}
	if rng.Float64() > 0.5 {
		s.Vel.DX = 1
	}
	s.ServeDelay = ServeDelay
	return s
}

// Reflect maps a paddle hit offset from the paddle centre to a horizontal
// velocity: centre goes straight, left goes left, right goes right.
func Reflect(offset int) int {
	return core.Sign(offset)
}

func hasBlocks(b [BlockRows][Width]bool) bool {
	for r := range b {
		for c := range b[r] {
			if b[r][c] {
				return true
			}
		}
	}
	return false
}

// Update advances one tick: paddle, serve or move, walls, paddle bounce,
// ball loss, block hit, regeneration.
func Update(s State, in core.Input) core.Result[State] {
	var res core.Result[State]

	if in.AnyPressed(core.KeyLeft, core.KeyA) {
		s.PaddleX--
	}
	if in.AnyPressed(core.KeyRight, core.KeyD) {
		s.PaddleX++
	}
	s.PaddleX = core.Clamp(s.PaddleX, 0, Width-PaddleWidth)

	if s.ServeDelay > 0 {
		s.ServeDelay--
	} else {
		s.Ball = s.Ball.Add(s.Vel)
	}

	if s.Ball.X <= 0 {
		s.Ball.X = 0
		s.Vel.DX = 1
	}
	if s.Ball.X >= Width-1 {
		s.Ball.X = Width - 1
		s.Vel.DX = -1
	}
	if s.Ball.Y <= 0 {
		s.Ball.Y = 0
		s.Vel.DY = 1
	}

	paddleY := Height - 2
	if s.Ball.Y == paddleY && s.Ball.X >= s.PaddleX && s.Ball.X < s.PaddleX+PaddleWidth {
		s.Vel.DY = -1
		s.Vel.DX = Reflect(s.Ball.X - (s.PaddleX + PaddleWidth/2))
	}

	if s.Ball.Y > Height-1 {
		res.Emit(core.EventLifeLost)
		res.State = resetBall(s, in.Rand)
		return res
	}

	row := s.Ball.Y - BlockStartY
	if row >= 0 && row < BlockRows && s.Blocks[row][s.Ball.X] {
		s.Blocks[row][s.Ball.X] = false
		res.Emit(core.EventPoint)
		s.Vel.DY = -s.Vel.DY
	}

	if !hasBlocks(s.Blocks) {
		s.Blocks = fullBlocks()
	}

	res.State = s
	return res
}

// Render draws blocks, the paddle and, once served, the ball.
func Render(s State) []string {
	g := core.NewGrid(Width, Height, ' ')
	for r := range s.Blocks {
		for c, alive := range s.Blocks[r] {
			if alive {
				g.Set(c, BlockStartY+r, '#')
			}
		}
	}
	for i := 0; i < PaddleWidth; i++ {
		g.Set(s.PaddleX+i, Height-2, '=')
	}
	if s.ServeDelay == 0 {
		g.Set(s.Ball.X, s.Ball.Y, 'o')
	}
	return core.WithBorder(g.Rows())
}

// Variant returns the engine descriptor.
func Variant() engine.Variant[State] {
	return engine.Variant[State]{Initial: Initial, Update: Update, Render: Render, TickMs: TickMs}
}

func init() {
	registry.Register(registry.Definition{
		ID:          "breakout",
		Name:        "Breakout",
		Description: "Rebotes por zonas y bloques en grid.",
		Controls:    ControlsHelp,
		BaseTarget:  20,
		TickMs:      TickMs,
		Width:       Width,
		Height:      Height,
		Order:       1,
		New: func(opts engine.Options) engine.Runner {
			return engine.New(Variant(), opts)
		},
	})
}

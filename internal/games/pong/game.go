// Package pong implements Pong against a tracking AI paddle that idles on a
// fraction of ticks so it can be beaten.
package pong

import (
	"math/rand"

	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/engine"
	"github.com/vovakirdan/papuso/internal/registry"
)

const (
	Width  = 28
	Height = 12
	TickMs = 90

	PaddleSize = 3

	initialServe = 10
	resetServe   = 8

	// aiIdleChance is the probability the AI skips tracking on a tick.
	aiIdleChance = 0.2
)

// ControlsHelp is the one-line control hint shown under the board.
const ControlsHelp = "W/S o Flechas arriba/abajo"

// State is the complete Pong simulation state.
type State struct {
	PlayerY    int
	AIY        int
	Ball       core.Point
	Vel        core.Vec
	ServeDelay int
}

// Initial centres both paddles and the ball.
func Initial(*rand.Rand) State {
	return State{
		PlayerY:    Height/2 - 1,
		AIY:        Height/2 - 1,
		Ball:       core.Point{X: Width / 2, Y: Height / 2},
		Vel:        core.Vec{DX: 1, DY: 1},
		ServeDelay: initialServe,
	}
}

func resetBall(s State, dirX int, rng *rand.Rand) State {
	s.Ball = core.Point{X: Width / 2, Y: Height / 2}
	s.Vel = core.Vec{DX: dirX, DY: -1}
	if rng.Float64() > 0.5 {
		s.Vel.DY = 1
	}
	s.ServeDelay = resetServe
	return s
}

// Reflect maps a hit offset from the paddle centre to a vertical velocity.
func Reflect(offset int) int {
	return core.Sign(offset)
}

func onPaddle(ballY, paddleY int) bool {
	return ballY >= paddleY && ballY < paddleY+PaddleSize
}

// Update advances one tick: player paddle, AI paddle, serve or move, top and
// bottom walls, then the player side and the AI side.
func Update(s State, in core.Input) core.Result[State] {
	var res core.Result[State]

	if in.AnyPressed(core.KeyUp, core.KeyW) {
		s.PlayerY--
	}
	if in.AnyPressed(core.KeyDown, core.KeyS) {
		s.PlayerY++
	}
	s.PlayerY = core.Clamp(s.PlayerY, 0, Height-PaddleSize)

	if in.Rand.Float64() > aiIdleChance {
		switch {
		case s.Ball.Y < s.AIY:
			s.AIY--
		case s.Ball.Y > s.AIY+PaddleSize-1:
			s.AIY++
		}
	}
	s.AIY = core.Clamp(s.AIY, 0, Height-PaddleSize)

	if s.ServeDelay > 0 {
		s.ServeDelay--
	} else {
		s.Ball = s.Ball.Add(s.Vel)
	}

	if s.Ball.Y <= 0 {
		s.Ball.Y = 0
		s.Vel.DY = 1
	}
	if s.Ball.Y >= Height-1 {
		s.Ball.Y = Height - 1
		s.Vel.DY = -1
	}

	if s.Ball.X <= 1 {
		if onPaddle(s.Ball.Y, s.PlayerY) {
			s.Ball.X = 1
			s.Vel.DX = 1
			s.Vel.DY = Reflect(s.Ball.Y - (s.PlayerY + 1))
		} else if s.Ball.X < 0 {
			res.Emit(core.EventLifeLost)
			res.State = resetBall(s, 1, in.Rand)
			return res
		}
	}

	if s.Ball.X >= Width-2 {
		if onPaddle(s.Ball.Y, s.AIY) {
			s.Ball.X = Width - 2
			s.Vel.DX = -1
			s.Vel.DY = Reflect(s.Ball.Y - (s.AIY + 1))
		} else if s.Ball.X > Width-1 {
			res.Emit(core.EventPoint)
			res.State = resetBall(s, -1, in.Rand)
			return res
		}
	}

	res.State = s
	return res
}

// Render draws the paddles at the outer columns and the served ball.
func Render(s State) []string {
	g := core.NewGrid(Width, Height, ' ')
	for i := 0; i < PaddleSize; i++ {
		g.Set(0, s.PlayerY+i, '|')
		g.Set(Width-1, s.AIY+i, '|')
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
		ID:          "pong",
		Name:        "Pong",
		Description: "Paletas verticales con rebote por zona.",
		Controls:    ControlsHelp,
		BaseTarget:  15,
		TickMs:      TickMs,
		Width:       Width,
		Height:      Height,
		Order:       2,
		New: func(opts engine.Options) engine.Runner {
			return engine.New(Variant(), opts)
		},
	})
}

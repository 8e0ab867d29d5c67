// Package asteroids implements a wrap-around Asteroids minigame. The ship
// moves while keys are held and fires on a fresh space press.
package asteroids

import (
	"math/rand"

	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/engine"
	"github.com/vovakirdan/papuso/internal/registry"
)

const (
	Width  = 26
	Height = 12
	TickMs = 110

	asteroidCount = 4
	bulletLife    = 14
	fireCooldown  = 4
	hitRadius     = 1

	asteroidGlyph = 'O'
	bulletGlyph   = '*'
	shipGlyph     = '^'
)

// ControlsHelp is the one-line control hint shown under the board.
const ControlsHelp = "Flechas o WASD para mover, espacio dispara"

// Asteroid is a rock drifting one cell per tick.
type Asteroid struct {
	Pos core.Point
	Vel core.Vec
}

// Bullet is a shot with a finite number of ticks left.
type Bullet struct {
	Pos  core.Point
	Vel  core.Vec
	Life int
}

// State is the complete Asteroids simulation state.
type State struct {
	Ship      core.Point
	Dir       core.Vec // last non-zero movement, used as the fire direction
	Asteroids []Asteroid
	Bullets   []Bullet
	Cooldown  int
}

func center() core.Point {
	return core.Point{X: Width / 2, Y: Height / 2}
}

// Initial returns a fresh field with the ship centred.
func Initial(rng *rand.Rand) State {
	ship := center()
	rocks := make([]Asteroid, 0, asteroidCount)
	for i := 0; i < asteroidCount; i++ {
		rocks = append(rocks, spawnAsteroid(rng, ship))
	}
	return State{
		Ship:      ship,
		Dir:       core.Vec{DX: 1},
		Asteroids: rocks,
	}
}

// spawnAsteroid places a rock at a random cell, nudged off the ship.
func spawnAsteroid(rng *rand.Rand, ship core.Point) Asteroid {
	x := core.RandomInt(rng, 0, Width-1)
	y := core.RandomInt(rng, 0, Height-1)
	if x == ship.X && y == ship.Y {
		x = (x + 3) % Width
		y = (y + 2) % Height
	}
	vx := core.RandomInt(rng, -1, 1)
	if vx == 0 {
		vx = 1
	}
	vy := core.RandomInt(rng, -1, 1)
	return Asteroid{Pos: core.Point{X: x, Y: y}, Vel: core.Vec{DX: vx, DY: vy}}
}

func heldMove(in core.Input) core.Vec {
	var v core.Vec
	if in.AnyPressed(core.KeyLeft, core.KeyA) {
		v.DX--
	}
	if in.AnyPressed(core.KeyRight, core.KeyD) {
		v.DX++
	}
	if in.AnyPressed(core.KeyUp, core.KeyW) {
		v.DY--
	}
	if in.AnyPressed(core.KeyDown, core.KeyS) {
		v.DY++
	}
	return v
}

func isHit(b Bullet, a Asteroid) bool {
	return core.WrappedDistance(b.Pos.X, a.Pos.X, Width) <= hitRadius &&
		core.WrappedDistance(b.Pos.Y, a.Pos.Y, Height) <= hitRadius
}

// Update advances one tick: ship, cooldown, bullets, fire, rocks, hits,
// refill and finally the ship collision.
func Update(s State, in core.Input) core.Result[State] {
	var res core.Result[State]

	move := heldMove(in)
	if !move.IsZero() {
		s.Dir = move
	}
	s.Ship = core.WrapPoint(s.Ship.Add(move), Width, Height)
	s.Cooldown = core.Countdown(s.Cooldown)

	bullets := make([]Bullet, 0, len(s.Bullets)+1)
	for _, b := range s.Bullets {
		b.Pos = core.WrapPoint(b.Pos.Add(b.Vel), Width, Height)
		b.Life--
		if b.Life > 0 {
			bullets = append(bullets, b)
		}
	}

	if in.Keys.Consume(core.KeySpace) && s.Cooldown == 0 {
		dir := s.Dir
		if dir.IsZero() {
			dir = core.Vec{DX: 1}
		}
		bullets = append(bullets, Bullet{Pos: s.Ship, Vel: dir, Life: bulletLife})
		s.Cooldown = fireCooldown
	}

	rocks := make([]Asteroid, len(s.Asteroids))
	for i, a := range s.Asteroids {
		a.Pos = core.WrapPoint(a.Pos.Add(a.Vel), Width, Height)
		rocks[i] = a
	}

	destroyed := make(map[int]bool)
	remaining := make([]Bullet, 0, len(bullets))
	for _, b := range bullets {
		hit := -1
		for i, a := range rocks {
			if isHit(b, a) {
				hit = i
				break
			}
		}
		if hit >= 0 {
			destroyed[hit] = true
			res.Emit(core.EventPoint)
			continue
		}
		remaining = append(remaining, b)
	}

	survivors := make([]Asteroid, 0, asteroidCount)
	for i, a := range rocks {
		if !destroyed[i] {
			survivors = append(survivors, a)
		}
	}
	for len(survivors) < asteroidCount {
		survivors = append(survivors, spawnAsteroid(in.Rand, s.Ship))
	}

	for _, a := range survivors {
		if a.Pos == s.Ship {
			res.Emit(core.EventLifeLost)
			s.Ship = center()
			break
		}
	}

	s.Asteroids = survivors
	s.Bullets = remaining
	res.State = s
	return res
}

// Render draws rocks, then bullets, then the ship on top.
func Render(s State) []string {
	g := core.NewGrid(Width, Height, ' ')
	for _, a := range s.Asteroids {
		g.Set(a.Pos.X, a.Pos.Y, asteroidGlyph)
	}
	for _, b := range s.Bullets {
		g.Set(b.Pos.X, b.Pos.Y, bulletGlyph)
	}
	g.Set(s.Ship.X, s.Ship.Y, shipGlyph)
	return core.WithBorder(g.Rows())
}

// Variant returns the engine descriptor.
func Variant() engine.Variant[State] {
	return engine.Variant[State]{Initial: Initial, Update: Update, Render: Render, TickMs: TickMs}
}

func init() {
	registry.Register(registry.Definition{
		ID:          "asteroids",
		Name:        "Asteroids ASCII",
		Description: "Arcade rapido con wrap-around y disparos discretos.",
		Controls:    ControlsHelp,
		BaseTarget:  12,
		TickMs:      TickMs,
		Width:       Width,
		Height:      Height,
		Order:       0,
		New: func(opts engine.Options) engine.Runner {
			return engine.New(Variant(), opts)
		},
	})
}

// Package missile implements a Missile Command style defence: park the
// cursor in a missile's path and detonate before it reaches the ground.
package missile

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/engine"
	"github.com/vovakirdan/papuso/internal/registry"
)

const (
	Width  = 50
	Height = 24
	TickMs = 120

	MissileSpeed  = 0.5
	ExplosionLife = 3
	SpawnEvery    = 15
	BlastRadius   = 2.0
)

// ControlsHelp is the one-line control hint shown under the board.
const ControlsHelp = "Flechas: mover cursor, Espacio: disparar"

// Missile flies in a straight line from its spawn point to its target.
type Missile struct {
	X, Y   float64
	TX, TY float64
}

// Explosion is a short-lived blast left by the cursor.
type Explosion struct {
	Pos  core.Point
	Life int
}

// State is the complete Missile Defense simulation state.
type State struct {
	Cursor     core.Point
	Missiles   []Missile
	Explosions []Explosion
	NextSpawn  int
}

// Initial centres the cursor. The first missile spawns on the first tick.
func Initial(*rand.Rand) State {
	return State{Cursor: core.Point{X: Width / 2, Y: Height / 2}}
}

func (m Missile) advance() Missile {
	dx, dy := m.TX-m.X, m.TY-m.Y
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		m.Y = Height
		return m
	}
	m.X = core.ClampF(m.X+dx/dist*MissileSpeed, 0, Width-1)
	m.Y = core.ClampF(m.Y+dy/dist*MissileSpeed, 0, Height-1)
	return m
}

func caught(m Missile, blasts []Explosion) bool {
	for _, e := range blasts {
		if math.Abs(float64(e.Pos.X)-m.X) < BlastRadius && math.Abs(float64(e.Pos.Y)-m.Y) < BlastRadius {
			return true
		}
	}
	return false
}

// Update moves the cursor, detonates on space, advances missiles, scores
// intercepts and charges a life for every missile that lands.
func Update(s State, in core.Input) core.Result[State] {
	var res core.Result[State]

	if in.AnyPressed(core.KeyLeft, core.KeyA) {
		s.Cursor.X--
	}
	if in.AnyPressed(core.KeyRight, core.KeyD) {
		s.Cursor.X++
	}
	if in.AnyPressed(core.KeyUp, core.KeyW) {
		s.Cursor.Y--
	}
	if in.AnyPressed(core.KeyDown, core.KeyS) {
		s.Cursor.Y++
	}
	s.Cursor = core.WrapPoint(s.Cursor, Width, Height)

	blasts := make([]Explosion, len(s.Explosions), len(s.Explosions)+1)
	copy(blasts, s.Explosions)
	if in.Keys.Consume(core.KeySpace) {
		blasts = append(blasts, Explosion{Pos: s.Cursor, Life: ExplosionLife})
	}

	missiles := make([]Missile, 0, len(s.Missiles)+1)
	for _, m := range s.Missiles {
		m = m.advance()
		switch {
		case caught(m, blasts):
			res.Emit(core.EventPoint)
		case m.Y >= Height-1:
			res.Emit(core.EventLifeLost)
		default:
			missiles = append(missiles, m)
		}
	}

	live := blasts[:0]
	for _, e := range blasts {
		e.Life--
		if e.Life > 0 {
			live = append(live, e)
		}
	}

	if s.NextSpawn <= 0 {
		missiles = append(missiles, Missile{
			X:  core.ClampF(in.Rand.Float64()*Width, 0, Width-1),
			TX: core.ClampF(in.Rand.Float64()*Width, 0, Width-1),
			TY: Height - 1,
		})
		s.NextSpawn = SpawnEvery
	} else {
		s.NextSpawn--
	}

	s.Missiles = missiles
	s.Explosions = live
	res.State = s
	return res
}

// Render draws missiles as 'v', blasts as '#' and the cursor as '+'.
func Render(s State) []string {
	g := core.NewGrid(Width, Height, ' ')
	for _, m := range s.Missiles {
		g.Set(int(math.Floor(m.X)), int(math.Floor(m.Y)), 'v')
	}
	for _, e := range s.Explosions {
		g.Set(e.Pos.X, e.Pos.Y, '#')
	}
	g.Set(s.Cursor.X, s.Cursor.Y, '+')
	return core.WithBorder(g.Rows())
}

// Variant returns the engine descriptor.
func Variant() engine.Variant[State] {
	return engine.Variant[State]{Initial: Initial, Update: Update, Render: Render, TickMs: TickMs}
}

func init() {
	registry.Register(registry.Definition{
		ID:          "missile",
		Name:        "Missile Defense",
		Description: "Protege la base de datos de ataques orbitales.",
		Controls:    ControlsHelp,
		BaseTarget:  15,
		TickMs:      TickMs,
		Width:       Width,
		Height:      Height,
		Order:       7,
		New: func(opts engine.Options) engine.Runner {
			return engine.New(Variant(), opts)
		},
	})
}

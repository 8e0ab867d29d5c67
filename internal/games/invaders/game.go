// Package invaders implements a Space Invaders minigame with a lockstep
// formation, a small player bullet pool and probabilistic enemy fire.
package invaders

import (
	"math/rand"

	"github.com/vovakirdan/papuso/internal/core"
	"github.com/vovakirdan/papuso/internal/engine"
	"github.com/vovakirdan/papuso/internal/registry"
)

const (
	Width  = 50
	Height = 24
	TickMs = 120

	EnemyStep        = 3 // formation moves every EnemyStep ticks
	PlayerCooldown   = 3
	MaxPlayerBullets = 3
	MaxEnemyBullets  = 2
	EnemyFireChance  = 0.2

	formationCols    = 12
	formationRows    = 4
	formationSpacing = 2
	hitRadius        = 1
)

// ControlsHelp is the one-line control hint shown under the board.
const ControlsHelp = "Flechas o A/D para mover, espacio dispara"

// Bullet is a vertical shot.
type Bullet struct {
	Pos core.Point
	VY  int
}

// State is the complete Invaders simulation state.
type State struct {
	PlayerX       int
	Enemies       []core.Point
	Dir           int // formation heading, 1 or -1
	Step          int
	PlayerBullets []Bullet
	EnemyBullets  []Bullet
	Cooldown      int
}

// Formation returns a fresh, centred wave.
func Formation() []core.Point {
	offsetX := (Width - formationCols*formationSpacing) / 2
	enemies := make([]core.Point, 0, formationCols*formationRows)
	for row := 0; row < formationRows; row++ {
		for col := 0; col < formationCols; col++ {
			enemies = append(enemies, core.Point{X: offsetX + col*formationSpacing, Y: 1 + row})
		}
	}
	return enemies
}

// Initial returns the opening wave.
func Initial(*rand.Rand) State {
	return State{
		PlayerX: Width / 2,
		Enemies: Formation(),
		Dir:     1,
	}
}

func near(a, b core.Point) bool {
	return core.Abs(a.X-b.X) <= hitRadius && core.Abs(a.Y-b.Y) <= hitRadius
}

func advance(bullets []Bullet, keep func(Bullet) bool) []Bullet {
	out := make([]Bullet, 0, len(bullets)+1)
	for _, b := range bullets {
		b.Pos.Y += b.VY
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func moveFormation(enemies []core.Point, dir int) ([]core.Point, int) {
	edgeHit := false
	for _, e := range enemies {
		if (dir == 1 && e.X >= Width-1) || (dir == -1 && e.X <= 0) {
			edgeHit = true
			break
		}
	}
	moved := make([]core.Point, len(enemies))
	for i, e := range enemies {
		if edgeHit {
			e.Y++
		} else {
			e.X += dir
		}
		moved[i] = e
	}
	if edgeHit {
		dir = -dir
	}
	return moved, dir
}

// resetWave brings back a full formation and clears every bullet.
func resetWave(s State) State {
	s.Enemies = Formation()
	s.PlayerBullets = nil
	s.EnemyBullets = nil
	return s
}

// Update advances one tick: player, cooldown, fire, formation, bullets,
// enemy fire, hits on enemies, hits on the player, invasion, regeneration.
func Update(s State, in core.Input) core.Result[State] {
	var res core.Result[State]

	if in.AnyPressed(core.KeyLeft, core.KeyA) {
		s.PlayerX--
	}
	if in.AnyPressed(core.KeyRight, core.KeyD) {
		s.PlayerX++
	}
	s.PlayerX = core.Clamp(s.PlayerX, 0, Width-1)
	s.Cooldown = core.Countdown(s.Cooldown)

	playerBullets := s.PlayerBullets
	if in.Keys.Consume(core.KeySpace) && s.Cooldown == 0 && len(playerBullets) < MaxPlayerBullets {
		playerBullets = append(append([]Bullet(nil), playerBullets...),
			Bullet{Pos: core.Point{X: s.PlayerX, Y: Height - 2}, VY: -1})
		s.Cooldown = PlayerCooldown
	}

	enemies := s.Enemies
	if s.Step%EnemyStep == 0 {
		enemies, s.Dir = moveFormation(enemies, s.Dir)
	}
	s.Step++

	playerBullets = advance(playerBullets, func(b Bullet) bool { return b.Pos.Y >= 0 })
	enemyBullets := advance(s.EnemyBullets, func(b Bullet) bool { return b.Pos.Y < Height })

	if len(enemies) > 0 && len(enemyBullets) < MaxEnemyBullets && in.Rand.Float64() < EnemyFireChance {
		shooter := enemies[core.RandomInt(in.Rand, 0, len(enemies)-1)]
		enemyBullets = append(enemyBullets, Bullet{Pos: core.Point{X: shooter.X, Y: shooter.Y + 1}, VY: 1})
	}

	hit := make(map[int]bool)
	remaining := make([]Bullet, 0, len(playerBullets))
	for _, b := range playerBullets {
		idx := -1
		for i, e := range enemies {
			if near(e, b.Pos) {
				idx = i
				break
			}
		}
		if idx >= 0 {
			hit[idx] = true
			continue
		}
		remaining = append(remaining, b)
	}
	if len(hit) > 0 {
		alive := make([]core.Point, 0, len(enemies)-len(hit))
		for i, e := range enemies {
			if !hit[i] {
				alive = append(alive, e)
			}
		}
		enemies = alive
		// One point per destroyed enemy, even if two bullets found the same one.
		for range hit {
			res.Emit(core.EventPoint)
		}
	}

	s.Enemies = enemies
	s.PlayerBullets = remaining
	s.EnemyBullets = enemyBullets

	player := core.Point{X: s.PlayerX, Y: Height - 1}
	for _, b := range enemyBullets {
		if near(b.Pos, player) {
			res.Emit(core.EventLifeLost)
			res.State = resetWave(s)
			return res
		}
	}

	for _, e := range enemies {
		if e.Y >= player.Y-1 {
			res.Emit(core.EventLifeLost)
			res.State = resetWave(s)
			return res
		}
	}

	if len(enemies) == 0 {
		s.Enemies = Formation()
	}
	res.State = s
	return res
}

// Render draws enemies as W, player shots as |, enemy shots as ! and the
// player as A on the bottom row.
func Render(s State) []string {
	g := core.NewGrid(Width, Height, ' ')
	for _, e := range s.Enemies {
		g.Set(e.X, e.Y, 'W')
	}
	for _, b := range s.PlayerBullets {
		g.Set(b.Pos.X, b.Pos.Y, '|')
	}
	for _, b := range s.EnemyBullets {
		g.Set(b.Pos.X, b.Pos.Y, '!')
	}
	g.Set(s.PlayerX, Height-1, 'A')
	return core.WithBorder(g.Rows())
}

// Variant returns the engine descriptor.
func Variant() engine.Variant[State] {
	return engine.Variant[State]{Initial: Initial, Update: Update, Render: Render, TickMs: TickMs}
}

func init() {
	registry.Register(registry.Definition{
		ID:          "invaders",
		Name:        "Space Invaders",
		Description: "Formacion descendente con disparos limitados.",
		Controls:    ControlsHelp,
		BaseTarget:  15,
		TickMs:      TickMs,
		Width:       Width,
		Height:      Height,
		Order:       4,
		New: func(opts engine.Options) engine.Runner {
			return engine.New(Variant(), opts)
		},
	})
}

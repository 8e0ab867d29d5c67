package tetris

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/papuso/internal/core"
)

func input(c *core.Controls, seed int64) core.Input {
	return core.Input{Keys: c, Rand: rand.New(rand.NewSource(seed))}
}

var square = Shapes[0]

func fillRow(b *Board, y int, except ...int) {
	for x := 0; x < Width; x++ {
		b[y][x] = true
	}
	for _, x := range except {
		b[y][x] = false
	}
}

func TestEveryShapeSpawnsInside(t *testing.T) {
	var empty Board
	for seed := int64(0); seed < 50; seed++ {
		p := spawn(rand.New(rand.NewSource(seed)))
		if !empty.Fits(p) {
			t.Fatalf("seed %d: spawned piece %v does not fit an empty board", seed, p)
		}
	}
}

func TestRotate(t *testing.T) {
	i := Shapes[1]
	r := i.Rotate()
	expected := Shape{{X: 0, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}, {X: 0, Y: 2}}
	if r != expected {
		t.Errorf("Rotate = %v, expected %v", r, expected)
	}
	if i.Rotate().Rotate().Rotate().Rotate() != i {
		t.Error("four rotations should return the original shape")
	}
}

func TestHorizontalMove(t *testing.T) {
	tests := []struct {
		name     string
		x        int
		key      string
		expected int
	}{
		{"left", 5, core.KeyA, 4},
		{"right", 5, core.KeyRight, 6},
		{"blocked by left wall", 0, core.KeyLeft, 0},
		{"blocked by right wall", Width - 2, core.KeyD, Width - 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := core.NewControls()
			c.TriggerDown(tc.key)
			s := State{Active: Piece{Shape: square, Pos: core.Point{X: tc.x, Y: 3}}, NextDrop: DropEvery}

			res := Update(s, input(c, 1))
			if res.State.Active.Pos.X != tc.expected {
				t.Errorf("X = %d, expected %d", res.State.Active.Pos.X, tc.expected)
			}
		})
	}
}

func TestMoveIsConsumedOnce(t *testing.T) {
	c := core.NewControls()
	c.TriggerDown(core.KeyA)
	s := State{Active: Piece{Shape: square, Pos: core.Point{X: 5, Y: 3}}, NextDrop: DropEvery}

	s = Update(s, input(c, 1)).State
	s = Update(s, input(c, 1)).State
	if s.Active.Pos.X != 4 {
		t.Errorf("X = %d, expected a single step to 4", s.Active.Pos.X)
	}
}

func TestGravityCadence(t *testing.T) {
	c := core.NewControls()
	s := State{Active: Piece{Shape: square, Pos: core.Point{X: 5, Y: 0}}, NextDrop: DropEvery}

	for i := 0; i < DropEvery; i++ {
		s = Update(s, input(c, 1)).State
		if s.Active.Pos.Y != 0 {
			t.Fatalf("tick %d: piece fell early", i)
		}
	}
	s = Update(s, input(c, 1)).State
	if s.Active.Pos.Y != 1 || s.NextDrop != DropEvery {
		t.Errorf("Y = %d NextDrop = %d, expected 1 and %d", s.Active.Pos.Y, s.NextDrop, DropEvery)
	}
}

func TestSoftDrop(t *testing.T) {
	c := core.NewControls()
	c.TriggerDown(core.KeyS)
	s := State{Active: Piece{Shape: square, Pos: core.Point{X: 5, Y: 0}}, NextDrop: DropEvery}

	s = Update(s, input(c, 1)).State
	if s.Active.Pos.Y != 1 {
		t.Errorf("Y = %d, expected soft drop to 1", s.Active.Pos.Y)
	}
}

func TestLockWithoutClearScoresNothing(t *testing.T) {
	s := State{Active: Piece{Shape: square, Pos: core.Point{X: 0, Y: Height - 2}}}
	res := Update(s, input(core.NewControls(), 1))

	if len(res.Events) != 0 {
		t.Errorf("events = %v, expected none", res.Events)
	}
	if !res.State.Board[Height-1][0] || !res.State.Board[Height-2][1] {
		t.Error("piece should be locked into the board")
	}
}

func TestClearingTwoRowsScoresOnePoint(t *testing.T) {
	var b Board
	fillRow(&b, Height-1, 0, 1)
	fillRow(&b, Height-2, 0, 1)
	b[Height-3][5] = true

	s := State{Board: b, Active: Piece{Shape: square, Pos: core.Point{X: 0, Y: Height - 2}}}
	res := Update(s, input(core.NewControls(), 1))

	if !reflect.DeepEqual(res.Events, []core.Event{core.EventPoint}) {
		t.Fatalf("events = %v, expected a single point", res.Events)
	}
	if res.State.Board[Height-2] != ([Width]bool{}) {
		t.Error("row above the shifted marker should be empty")
	}
	expected := [Width]bool{}
	expected[5] = true
	if res.State.Board[Height-1] != expected {
		t.Errorf("bottom row = %v, expected only the shifted marker", res.State.Board[Height-1])
	}
}

func TestClearedCellsAreEmpty(t *testing.T) {
	var b Board
	fillRow(&b, Height-1, 0, 1)

	s := State{Board: b, Active: Piece{Shape: square, Pos: core.Point{X: 0, Y: Height - 2}}}
	res := Update(s, input(core.NewControls(), 1))

	if res.Count(core.EventPoint) != 1 {
		t.Fatalf("events = %v, expected one point", res.Events)
	}
	expected := [Width]bool{}
	expected[0], expected[1] = true, true
	if res.State.Board[Height-1] != expected {
		t.Errorf("bottom row = %v, expected the upper half of the square", res.State.Board[Height-1])
	}
	if res.State.Board[Height-2] != ([Width]bool{}) {
		t.Error("cleared row should be empty after the shift")
	}
}

func TestBlockedSpawnCostsLife(t *testing.T) {
	var b Board
	for y := 0; y < 3; y++ {
		for x := 4; x <= 8; x++ {
			b[y][x] = true
		}
	}
	s := State{Board: b, Active: Piece{Shape: square, Pos: core.Point{X: 0, Y: Height - 2}}}
	res := Update(s, input(core.NewControls(), 1))

	if res.Count(core.EventLifeLost) != 1 {
		t.Fatalf("events = %v, expected lifeLost", res.Events)
	}
	if res.State.Board != (Board{}) {
		t.Error("board should restart empty")
	}
}

func TestUpdateDoesNotMutateInput(t *testing.T) {
	var b Board
	fillRow(&b, Height-1, 0, 1)
	s := State{Board: b, Active: Piece{Shape: square, Pos: core.Point{X: 0, Y: Height - 2}}}
	Update(s, input(core.NewControls(), 1))

	if s.Board != b || s.Board[Height-1][0] {
		t.Error("input board mutated")
	}
}

func TestRender(t *testing.T) {
	var b Board
	b[Height-1][0] = true
	s := State{Board: b, Active: Piece{Shape: square, Pos: core.Point{X: 3, Y: 0}}}
	rows := Render(s)

	if len(rows) != Height+2 {
		t.Fatalf("rows = %d, expected %d", len(rows), Height+2)
	}
	if got := rows[1][4:6]; got != "OO" {
		t.Errorf("top row = %q, expected OO", got)
	}
	if rows[Height][1] != '#' {
		t.Errorf("bottom row = %q, expected a locked cell", rows[Height])
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []string {
		c := core.NewControls()
		rng := rand.New(rand.NewSource(42))
		s := Initial(rng)
		in := core.Input{Keys: c, Rand: rng}
		for i := 0; i < 60; i++ {
			switch i % 8 {
			case 0:
				c.TriggerUp(core.KeyUp)
				c.TriggerDown(core.KeyLeft)
			case 4:
				c.TriggerUp(core.KeyLeft)
				c.TriggerDown(core.KeyUp)
			}
			s = Update(s, in).State
		}
		return Render(s)
	}

	if !reflect.DeepEqual(run(), run()) {
		t.Error("same seed and inputs produced different frames")
	}
}

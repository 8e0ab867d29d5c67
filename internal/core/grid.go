package core

import "strings"

// Grid is a fixed-size character matrix that minigames draw into every tick.
// Rows always hold exactly Width cells.
type Grid struct {
	width  int
	height int
	cells  [][]rune
}

// NewGrid creates a width x height grid with every cell set to fill.
func NewGrid(width, height int, fill rune) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{width: width, height: height}
	g.cells = make([][]rune, height)
	for y := range g.cells {
		g.cells[y] = make([]rune, width)
	}
	g.Fill(fill)
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Fill sets every cell to ch.
func (g *Grid) Fill(ch rune) {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = ch
		}
	}
}

// Set writes ch at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, ch rune) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y][x] = ch
}

// Get returns the cell at (x, y), or a space when out of bounds.
func (g *Grid) Get(x, y int) rune {
	if !g.InBounds(x, y) {
		return ' '
	}
	return g.cells[y][x]
}

// DrawText writes s horizontally starting at (x, y), clipping at the edge.
func (g *Grid) DrawText(x, y int, s string) {
	for i, r := range []rune(s) {
		g.Set(x+i, y, r)
	}
}

// Rows joins each row into a string, top to bottom. The result is rebuilt on
// every call.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	for y, row := range g.cells {
		rows[y] = string(row)
	}
	return rows
}

// String renders the grid as newline-separated rows.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

// WithBorder frames rows with a +, - and | border. The width comes from the
// first row, so an empty slice produces a zero-width frame.
func WithBorder(rows []string) []string {
	width := 0
	if len(rows) > 0 {
		width = len([]rune(rows[0]))
	}
	edge := "+" + strings.Repeat("-", width) + "+"

	out := make([]string, 0, len(rows)+2)
	out = append(out, edge)
	for _, row := range rows {
		out = append(out, "|"+row+"|")
	}
	out = append(out, edge)
	return out
}
